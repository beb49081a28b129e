package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vroliveira/wavepick/pkg/domain/entities"
)

func greedyFixture(t *testing.T, lb, ub int, opts PreprocessOptions) (*entities.Instance, *GreedyFallback) {
	t.Helper()
	orders := []entities.Order{
		{0: 3, 1: 2}, // 5 units over 2 eligible aisles, score 2.5
		{0: 1},       // 1 unit over 2 eligible aisles, score 0.5
		{1: 3},       // 3 units over 1 eligible aisle, score 3
	}
	aisles := []entities.Aisle{
		{0: 4, 1: 5},
		{0: 1},
	}
	inst, err := entities.NewInstance(orders, aisles, 2, lb, ub)
	require.NoError(t, err)
	prep := NewPreprocessor(opts).Run(inst)
	return inst, NewGreedyFallback(inst, prep)
}

func TestGreedy_StopsAtLowerBound(t *testing.T) {
	_, fallback := greedyFixture(t, 5, 9, PreprocessOptions{})

	sol, err := fallback.Build()
	require.NoError(t, err)

	// Best score first (order 2), then order 0 reaches the lower bound;
	// order 1 is never considered.
	assert.Equal(t, []int{0, 2}, sol.OrderIDs())
	assert.Equal(t, []int{0, 1}, sol.AisleIDs())
}

func TestGreedy_SkipsOrdersOverTheCap(t *testing.T) {
	// Cap at 4 units: order 2 fits (3), order 0 would overflow (8) and is
	// skipped, order 1 tops the wave up to exactly 4. Pruning is skipped
	// so order 1 (dominated by order 0) stays available.
	_, fallback := greedyFixture(t, 4, 9, PreprocessOptions{RealUpperBound: 4, DominanceMaxOrders: 1})

	sol, err := fallback.Build()
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, sol.OrderIDs())
}

func TestGreedy_Exhaustion(t *testing.T) {
	_, fallback := greedyFixture(t, 15, 20, PreprocessOptions{})

	sol, err := fallback.Build()
	require.ErrorIs(t, err, ErrFallbackExhausted)
	assert.Nil(t, sol)
}

func TestGreedy_TieBreaksByAscendingID(t *testing.T) {
	inst, err := entities.NewInstance(
		[]entities.Order{{0: 2}, {0: 2}},
		[]entities.Aisle{{0: 4}},
		1, 2, 2,
	)
	require.NoError(t, err)

	// Skip pruning so the identical twin stays rankable.
	prep := NewPreprocessor(PreprocessOptions{DominanceMaxOrders: 1}).Run(inst)
	sol, err := NewGreedyFallback(inst, prep).Build()
	require.NoError(t, err)

	assert.Equal(t, []int{0}, sol.OrderIDs())
}

func TestGreedy_RejectsEmptyWaveAtZeroLowerBound(t *testing.T) {
	// Zero bounds leave no headroom for the only order, so nothing is
	// accepted. Zero accumulated units satisfy [0, 0], but an empty wave
	// is never a result; the construction must fail instead.
	inst, err := entities.NewInstance(
		[]entities.Order{{0: 1}},
		[]entities.Aisle{{0: 1}},
		1, 0, 0,
	)
	require.NoError(t, err)
	prep := NewPreprocessor(PreprocessOptions{}).Run(inst)

	sol, err := NewGreedyFallback(inst, prep).Build()
	require.ErrorIs(t, err, ErrFallbackExhausted)
	assert.Nil(t, sol)
}

func TestGreedy_RejectsWaveWithNoAisles(t *testing.T) {
	// The accepted order demands an item no aisle stocks, so its eligible
	// set is empty and the wave would visit no aisles.
	inst, err := entities.NewInstance(
		[]entities.Order{{0: 2}},
		[]entities.Aisle{{1: 3}},
		2, 2, 5,
	)
	require.NoError(t, err)
	prep := NewPreprocessor(PreprocessOptions{}).Run(inst)

	sol, err := NewGreedyFallback(inst, prep).Build()
	require.ErrorIs(t, err, ErrFallbackExhausted)
	assert.Nil(t, sol)
}

func TestGreedy_PruningKeepsBoundReachable(t *testing.T) {
	// Order 1 dominates order 0 on every metric, so pruning drops order 0.
	// Anything order 0 could contribute, order 1 reproduces: the pruned
	// set still reaches the wave bounds.
	inst, err := entities.NewInstance(
		[]entities.Order{{0: 2}, {0: 3}},
		[]entities.Aisle{{0: 5}},
		1, 3, 5,
	)
	require.NoError(t, err)
	prep := NewPreprocessor(PreprocessOptions{}).Run(inst)
	require.Equal(t, []int{1}, prep.ValidOrders)

	sol, err := NewGreedyFallback(inst, prep).Build()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, sol.OrderIDs())
	assert.True(t, NewFeasibilityChecker(inst).IsFeasible(sol))
}

func TestGreedy_WaveCanFailPerItemCoverage(t *testing.T) {
	inst, err := entities.NewInstance(
		[]entities.Order{{0: 3}, {1: 2}},
		[]entities.Aisle{{0: 1, 1: 4}, {0: 1}},
		2, 5, 5,
	)
	require.NoError(t, err)
	prep := NewPreprocessor(PreprocessOptions{}).Run(inst)

	sol, err := NewGreedyFallback(inst, prep).Build()
	require.NoError(t, err)

	// The aggregate bounds hold, but item 0 demands 3 units against a
	// visited supply of 2. Eligibility is an upper bound, not a coverage
	// guarantee, so the independent check rejects the wave.
	assert.Equal(t, []int{0, 1}, sol.OrderIDs())
	assert.False(t, NewFeasibilityChecker(inst).IsFeasible(sol))
}
