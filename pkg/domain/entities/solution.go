package entities

import (
	"sort"
)

// Solution is a candidate wave: a set of selected order ids and a set of
// visited aisle ids. The two sets are owned independently; nothing ties an
// order to a specific aisle beyond the feasibility relation checked by the
// domain services. Solutions are not mutated after creation.
type Solution struct {
	orders map[int]bool
	aisles map[int]bool
}

// NewSolution creates a Solution from the given order and aisle ids.
// Duplicate ids collapse into the set.
func NewSolution(orderIDs, aisleIDs []int) *Solution {
	sol := &Solution{
		orders: make(map[int]bool, len(orderIDs)),
		aisles: make(map[int]bool, len(aisleIDs)),
	}
	for _, id := range orderIDs {
		sol.orders[id] = true
	}
	for _, id := range aisleIDs {
		sol.aisles[id] = true
	}
	return sol
}

// NumOrders returns the number of selected orders.
func (s *Solution) NumOrders() int { return len(s.orders) }

// NumAisles returns the number of visited aisles.
func (s *Solution) NumAisles() int { return len(s.aisles) }

// HasOrder reports whether order id is selected.
func (s *Solution) HasOrder(id int) bool { return s.orders[id] }

// HasAisle reports whether aisle id is visited.
func (s *Solution) HasAisle(id int) bool { return s.aisles[id] }

// OrderIDs returns the selected order ids in ascending order.
func (s *Solution) OrderIDs() []int { return sortedKeys(s.orders) }

// AisleIDs returns the visited aisle ids in ascending order.
func (s *Solution) AisleIDs() []int { return sortedKeys(s.aisles) }

func sortedKeys(set map[int]bool) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
