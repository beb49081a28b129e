package services

// Preprocessing derives the read-only relations the greedy fallback works
// from. A fresh result is computed per run; nothing carries across
// invocations.
//
// ItemToAisles and OrderEligibleAisles describe which aisles *could* help
// supply an item or an order. Eligibility is an upper bound, not a
// committed per-item assignment: an order's eligible aisles stock at least
// one item the order demands, with no guarantee that any subset of them
// covers the full demand.

import (
	"github.com/vroliveira/wavepick/pkg/domain/entities"
)

// PreprocessOptions tunes the preprocessing pass.
type PreprocessOptions struct {
	// DominanceMaxOrders caps the order count for which dominance pruning
	// runs; the pass is quadratic in the number of orders, so above the
	// cap it is skipped and every order stays valid. Zero means no cap.
	DominanceMaxOrders int
	// RealUpperBound overrides the derived cap on greedy accumulation.
	// Zero derives it as min(waveSizeUB, total aisle supply). A positive
	// override is clamped to waveSizeUB.
	RealUpperBound int
}

// Preprocessing holds the derived relations for one run.
type Preprocessing struct {
	// ItemToAisles maps each item id to the set of aisles with positive
	// supply of that item.
	ItemToAisles []map[int]bool
	// OrderEligibleAisles maps each order id to the union of ItemToAisles
	// over the items the order demands.
	OrderEligibleAisles []map[int]bool
	// ValidOrders lists the order ids surviving dominance pruning, in
	// ascending id order. Only the greedy fallback consults this; the
	// exact model always works over the full order set.
	ValidOrders []int
	// RealUpperBound caps the units the greedy fallback may accumulate.
	RealUpperBound int
	// DominanceSkipped records that the pruning pass was skipped because
	// the instance exceeded DominanceMaxOrders.
	DominanceSkipped bool
}

// Preprocessor computes Preprocessing results.
type Preprocessor struct {
	opts PreprocessOptions
}

// NewPreprocessor creates a preprocessor with the given options.
func NewPreprocessor(opts PreprocessOptions) *Preprocessor {
	return &Preprocessor{opts: opts}
}

// Run derives the item/aisle relations and the dominance-pruned order list
// for the instance.
func (p *Preprocessor) Run(inst *entities.Instance) *Preprocessing {
	prep := &Preprocessing{
		ItemToAisles:        make([]map[int]bool, inst.NItems()),
		OrderEligibleAisles: make([]map[int]bool, inst.NumOrders()),
	}

	for item := 0; item < inst.NItems(); item++ {
		prep.ItemToAisles[item] = make(map[int]bool)
	}
	for a := 0; a < inst.NumAisles(); a++ {
		for item := range inst.Aisle(a) {
			prep.ItemToAisles[item][a] = true
		}
	}

	for o := 0; o < inst.NumOrders(); o++ {
		eligible := make(map[int]bool)
		for item := range inst.Order(o) {
			for a := range prep.ItemToAisles[item] {
				eligible[a] = true
			}
		}
		prep.OrderEligibleAisles[o] = eligible
	}

	prep.RealUpperBound = inst.WaveSizeUB()
	if inst.TotalSupply() < prep.RealUpperBound {
		prep.RealUpperBound = inst.TotalSupply()
	}
	if p.opts.RealUpperBound > 0 && p.opts.RealUpperBound < prep.RealUpperBound {
		prep.RealUpperBound = p.opts.RealUpperBound
	}

	if p.opts.DominanceMaxOrders > 0 && inst.NumOrders() > p.opts.DominanceMaxOrders {
		prep.DominanceSkipped = true
		prep.ValidOrders = make([]int, inst.NumOrders())
		for o := range prep.ValidOrders {
			prep.ValidOrders[o] = o
		}
		return prep
	}

	for o := 0; o < inst.NumOrders(); o++ {
		if !p.isOrderDominated(inst, prep, o) {
			prep.ValidOrders = append(prep.ValidOrders, o)
		}
	}

	return prep
}

// isOrderDominated reports whether some other order renders order o
// redundant for the greedy fallback: equal-or-more total units from
// equal-or-fewer eligible aisles, demanding at least as much of every item
// o demands. When two orders tie on every metric, only the higher id is
// pruned, so mutual domination cannot remove both twins.
func (p *Preprocessor) isOrderDominated(inst *entities.Instance, prep *Preprocessing, o int) bool {
	order := inst.Order(o)
	units := inst.OrderUnits(o)
	eligible := len(prep.OrderEligibleAisles[o])

	for other := 0; other < inst.NumOrders(); other++ {
		if other == o {
			continue
		}
		if inst.OrderUnits(other) < units {
			continue
		}
		if len(prep.OrderEligibleAisles[other]) > eligible {
			continue
		}

		covers := true
		for item, qty := range order {
			if inst.Order(other)[item] < qty {
				covers = false
				break
			}
		}
		if !covers {
			continue
		}

		strictlyBetter := inst.OrderUnits(other) > units ||
			len(prep.OrderEligibleAisles[other]) < eligible
		if strictlyBetter || other < o {
			return true
		}
	}

	return false
}
