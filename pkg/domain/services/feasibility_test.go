package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vroliveira/wavepick/pkg/domain/entities"
)

func checkerFixture(t *testing.T) (*entities.Instance, *FeasibilityChecker) {
	t.Helper()
	orders := []entities.Order{
		{0: 3, 1: 2}, // 5 units
		{0: 1},       // 1 unit
		{1: 3},       // 3 units
	}
	aisles := []entities.Aisle{
		{0: 4, 1: 5},
		{0: 1},
	}
	inst, err := entities.NewInstance(orders, aisles, 2, 5, 9)
	require.NoError(t, err)
	return inst, NewFeasibilityChecker(inst)
}

func TestFeasibility_AcceptsValidWave(t *testing.T) {
	_, checker := checkerFixture(t)

	sol := entities.NewSolution([]int{0, 1, 2}, []int{0})
	require.True(t, checker.IsFeasible(sol))
}

func TestFeasibility_RejectsEmptySets(t *testing.T) {
	_, checker := checkerFixture(t)

	require.False(t, checker.IsFeasible(nil))
	require.False(t, checker.IsFeasible(entities.NewSolution(nil, []int{0})))
	require.False(t, checker.IsFeasible(entities.NewSolution([]int{0}, nil)))
}

func TestFeasibility_RejectsEmptyWaveEvenWithZeroLowerBound(t *testing.T) {
	inst, err := entities.NewInstance(
		[]entities.Order{{0: 1}},
		[]entities.Aisle{{0: 1}},
		1, 0, 5,
	)
	require.NoError(t, err)
	checker := NewFeasibilityChecker(inst)

	require.False(t, checker.IsFeasible(entities.NewSolution(nil, nil)))
}

func TestFeasibility_RejectsUnitsOutsideBounds(t *testing.T) {
	_, checker := checkerFixture(t)

	// 1 unit, below the lower bound of 5.
	require.False(t, checker.IsFeasible(entities.NewSolution([]int{1}, []int{0})))
}

func TestFeasibility_RejectsUncoveredItem(t *testing.T) {
	inst, err := entities.NewInstance(
		[]entities.Order{{0: 3}, {1: 2}},
		[]entities.Aisle{{0: 1, 1: 4}, {0: 1}},
		2, 5, 5,
	)
	require.NoError(t, err)
	checker := NewFeasibilityChecker(inst)

	// Aggregate bounds hold (5 units) but item 0 demands 3 against a
	// visited supply of 2.
	sol := entities.NewSolution([]int{0, 1}, []int{0, 1})
	require.False(t, checker.IsFeasible(sol))
}
