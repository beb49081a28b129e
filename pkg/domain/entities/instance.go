package entities

import (
	"fmt"
)

// Order is a sparse mapping of item id to demanded quantity.
// Orders are identified by their index in the Instance.
type Order map[int]int

// Aisle is a sparse mapping of item id to available quantity.
// Aisles are identified by their index in the Instance.
type Aisle map[int]int

// TotalUnits returns the sum of all quantities demanded by the order.
func (o Order) TotalUnits() int {
	total := 0
	for _, qty := range o {
		total += qty
	}
	return total
}

// TotalUnits returns the sum of all quantities stocked in the aisle.
func (a Aisle) TotalUnits() int {
	total := 0
	for _, qty := range a {
		total += qty
	}
	return total
}

// Instance is an immutable view of one wave-picking run: the customer
// orders, the storage aisles, the item universe and the inclusive wave
// size bounds. It is constructed once from external input and never
// mutated afterwards.
type Instance struct {
	orders     []Order
	aisles     []Aisle
	nItems     int
	waveSizeLB int
	waveSizeUB int

	orderUnits  []int
	totalSupply int
}

// NewInstance creates a validated Instance. Order and aisle maps are
// deep-copied so later mutation of the inputs cannot leak into the run.
func NewInstance(orders []Order, aisles []Aisle, nItems, waveSizeLB, waveSizeUB int) (*Instance, error) {
	if nItems < 0 {
		return nil, fmt.Errorf("item count cannot be negative, got %d", nItems)
	}
	if waveSizeLB < 0 {
		return nil, fmt.Errorf("wave size lower bound cannot be negative, got %d", waveSizeLB)
	}
	if waveSizeLB > waveSizeUB {
		return nil, fmt.Errorf("wave size lower bound %d exceeds upper bound %d", waveSizeLB, waveSizeUB)
	}

	inst := &Instance{
		orders:     make([]Order, len(orders)),
		aisles:     make([]Aisle, len(aisles)),
		nItems:     nItems,
		waveSizeLB: waveSizeLB,
		waveSizeUB: waveSizeUB,
		orderUnits: make([]int, len(orders)),
	}

	for i, order := range orders {
		copied := make(Order, len(order))
		for item, qty := range order {
			if item < 0 || item >= nItems {
				return nil, fmt.Errorf("order %d references item %d outside [0, %d)", i, item, nItems)
			}
			if qty <= 0 {
				return nil, fmt.Errorf("order %d has non-positive quantity %d for item %d", i, qty, item)
			}
			copied[item] = qty
		}
		inst.orders[i] = copied
		inst.orderUnits[i] = copied.TotalUnits()
	}

	for i, aisle := range aisles {
		copied := make(Aisle, len(aisle))
		for item, qty := range aisle {
			if item < 0 || item >= nItems {
				return nil, fmt.Errorf("aisle %d references item %d outside [0, %d)", i, item, nItems)
			}
			if qty <= 0 {
				return nil, fmt.Errorf("aisle %d has non-positive quantity %d for item %d", i, qty, item)
			}
			copied[item] = qty
		}
		inst.aisles[i] = copied
		inst.totalSupply += copied.TotalUnits()
	}

	return inst, nil
}

// NumOrders returns the number of orders in the instance.
func (inst *Instance) NumOrders() int { return len(inst.orders) }

// NumAisles returns the number of aisles in the instance.
func (inst *Instance) NumAisles() int { return len(inst.aisles) }

// NItems returns the size of the item universe; all item ids lie in [0, NItems).
func (inst *Instance) NItems() int { return inst.nItems }

// WaveSizeLB returns the inclusive lower bound on total picked units.
func (inst *Instance) WaveSizeLB() int { return inst.waveSizeLB }

// WaveSizeUB returns the inclusive upper bound on total picked units.
func (inst *Instance) WaveSizeUB() int { return inst.waveSizeUB }

// Order returns the order at the given index. The returned map must be
// treated as read-only.
func (inst *Instance) Order(i int) Order { return inst.orders[i] }

// Aisle returns the aisle at the given index. The returned map must be
// treated as read-only.
func (inst *Instance) Aisle(i int) Aisle { return inst.aisles[i] }

// OrderUnits returns the precomputed total demanded units of order i.
func (inst *Instance) OrderUnits(i int) int { return inst.orderUnits[i] }

// TotalSupply returns the sum of available units across every aisle.
func (inst *Instance) TotalSupply() int { return inst.totalSupply }
