package services

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vroliveira/wavepick/pkg/domain/entities"
)

// ErrFallbackExhausted is returned when the greedy construction cannot
// accumulate enough units to reach the wave size lower bound from the
// valid orders.
var ErrFallbackExhausted = errors.New("greedy fallback could not reach the wave size lower bound")

// GreedyFallback constructs a wave heuristically when the exact path
// fails. It operates only over the dominance-pruned valid orders.
//
// Orders are ranked by efficiency (total units per eligible aisle,
// descending; ties broken by ascending order id) and accepted while the
// running total stays under the preprocessing's real upper bound. Aisles
// are accumulated as the union of the accepted orders' eligible aisles and
// never removed. Scanning stops as soon as the lower bound is met.
//
// The construction guarantees the aggregate unit bounds but not per-item
// coverage: eligible aisles are aisles that could help supply an order,
// not a committed assignment, so a returned wave can still fail the
// per-item half of the feasibility check. Callers that need the full
// guarantee must re-validate.
type GreedyFallback struct {
	inst *entities.Instance
	prep *Preprocessing
}

// NewGreedyFallback creates a fallback bound to an instance and its
// preprocessing result.
func NewGreedyFallback(inst *entities.Instance, prep *Preprocessing) *GreedyFallback {
	return &GreedyFallback{inst: inst, prep: prep}
}

// Build runs the greedy construction. It returns ErrFallbackExhausted when
// the accumulated units land outside [waveSizeLB, waveSizeUB], or when
// either id set comes out empty; a wave must select at least one order and
// visit at least one aisle even when the lower bound is zero.
func (g *GreedyFallback) Build() (*entities.Solution, error) {
	ranked := g.rankedOrders()

	var orderIDs []int
	visited := make(map[int]bool)
	runningUnits := 0

	for _, o := range ranked {
		units := g.inst.OrderUnits(o)
		if runningUnits+units > g.prep.RealUpperBound {
			continue
		}

		orderIDs = append(orderIDs, o)
		runningUnits += units
		for a := range g.prep.OrderEligibleAisles[o] {
			visited[a] = true
		}

		if runningUnits >= g.inst.WaveSizeLB() {
			break
		}
	}

	if runningUnits < g.inst.WaveSizeLB() || runningUnits > g.inst.WaveSizeUB() {
		return nil, ErrFallbackExhausted
	}
	if len(orderIDs) == 0 || len(visited) == 0 {
		return nil, ErrFallbackExhausted
	}

	aisleIDs := make([]int, 0, len(visited))
	for a := range visited {
		aisleIDs = append(aisleIDs, a)
	}

	return entities.NewSolution(orderIDs, aisleIDs), nil
}

// rankedOrders sorts the valid orders by efficiency score, descending.
// Scores are compared as exact decimals so equal ratios reached through
// different divisions still tie, and ties fall back to ascending id for
// determinism.
func (g *GreedyFallback) rankedOrders() []int {
	ranked := make([]int, len(g.prep.ValidOrders))
	copy(ranked, g.prep.ValidOrders)

	scores := make(map[int]decimal.Decimal, len(ranked))
	for _, o := range ranked {
		aisles := len(g.prep.OrderEligibleAisles[o])
		if aisles < 1 {
			aisles = 1
		}
		scores[o] = decimal.NewFromInt(int64(g.inst.OrderUnits(o))).
			DivRound(decimal.NewFromInt(int64(aisles)), 12)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		cmp := scores[ranked[i]].Cmp(scores[ranked[j]])
		if cmp != 0 {
			return cmp > 0
		}
		return ranked[i] < ranked[j]
	})

	return ranked
}
