package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vroliveira/wavepick/pkg/domain/entities"
)

func builderFixture(t *testing.T) *entities.Instance {
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
	return inst
}

func TestModelBuilder_Variables(t *testing.T) {
	inst := builderFixture(t)
	bm, err := NewModelBuilder(0).Build(inst)
	require.NoError(t, err)

	// 3 order booleans, 2 aisle booleans, 2 bounded totals.
	assert.Equal(t, 7, bm.Model.NumVars())
	require.Len(t, bm.OrderVars, 3)
	require.Len(t, bm.AisleVars, 2)

	for _, v := range bm.OrderVars {
		assert.True(t, bm.Model.IsBool(v))
	}
	for _, v := range bm.AisleVars {
		assert.True(t, bm.Model.IsBool(v))
	}

	lo, hi := bm.Model.VarBounds(bm.TotalUnits)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 9.0, hi)

	lo, hi = bm.Model.VarBounds(bm.TotalAisles)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 2.0, hi)
}

func TestModelBuilder_Rows(t *testing.T) {
	inst := builderFixture(t)
	bm, err := NewModelBuilder(0).Build(inst)
	require.NoError(t, err)

	// units equality, wave lower bound, wave upper bound, one row per
	// item, aisles equality.
	rows := bm.Model.Constraints()
	require.Len(t, rows, 3+inst.NItems()+1)

	unitsEq := rows[0]
	lb, ub := unitsEq.Bounds()
	assert.Equal(t, 0.0, lb)
	assert.Equal(t, 0.0, ub)
	assert.Equal(t, 1.0, unitsEq.Coef(bm.TotalUnits))
	assert.Equal(t, -5.0, unitsEq.Coef(bm.OrderVars[0]))
	assert.Equal(t, -1.0, unitsEq.Coef(bm.OrderVars[1]))
	assert.Equal(t, -3.0, unitsEq.Coef(bm.OrderVars[2]))

	lbRow := rows[1]
	lb, ub = lbRow.Bounds()
	assert.Equal(t, 5.0, lb)
	assert.True(t, math.IsInf(ub, 1))
	assert.Equal(t, 1.0, lbRow.Coef(bm.TotalUnits))

	// Item 0: aisle supply 4 and 1 against demands 3 and 1.
	item0 := rows[3]
	assert.Equal(t, 4.0, item0.Coef(bm.AisleVars[0]))
	assert.Equal(t, 1.0, item0.Coef(bm.AisleVars[1]))
	assert.Equal(t, -3.0, item0.Coef(bm.OrderVars[0]))
	assert.Equal(t, -1.0, item0.Coef(bm.OrderVars[1]))
	assert.Zero(t, item0.Coef(bm.OrderVars[2]))

	aislesEq := rows[len(rows)-1]
	lb, ub = aislesEq.Bounds()
	assert.Equal(t, 0.0, lb)
	assert.Equal(t, 0.0, ub)
	assert.Equal(t, 1.0, aislesEq.Coef(bm.TotalAisles))
	assert.Equal(t, -1.0, aislesEq.Coef(bm.AisleVars[0]))
	assert.Equal(t, -1.0, aislesEq.Coef(bm.AisleVars[1]))
}

func TestModelBuilder_Objective(t *testing.T) {
	inst := builderFixture(t)
	builder := NewModelBuilder(0)
	bm, err := builder.Build(inst)
	require.NoError(t, err)

	obj := bm.Model.Objective()
	assert.True(t, obj.IsMaximize())
	assert.Equal(t, 1.0, obj.Coef(bm.TotalUnits))
	assert.InDelta(t, -2.2, obj.Coef(bm.TotalAisles), 1e-9)
	assert.InDelta(t, 2.2, builder.AislePenalty(inst), 1e-9)
}

func TestModelBuilder_CustomPenaltyMultiplier(t *testing.T) {
	inst := builderFixture(t)
	builder := NewModelBuilder(2.0)

	assert.InDelta(t, 4.0, builder.AislePenalty(inst), 1e-9)

	// Non-positive multipliers fall back to the default.
	assert.InDelta(t, 2.2, NewModelBuilder(-1).AislePenalty(inst), 1e-9)
}

func TestModelBuilder_RejectsDegenerateInstances(t *testing.T) {
	noOrders, err := entities.NewInstance(nil, []entities.Aisle{{0: 1}}, 1, 0, 5)
	require.NoError(t, err)
	_, err = NewModelBuilder(0).Build(noOrders)
	require.Error(t, err)

	noAisles, err := entities.NewInstance([]entities.Order{{0: 1}}, nil, 1, 0, 5)
	require.NoError(t, err)
	_, err = NewModelBuilder(0).Build(noAisles)
	require.Error(t, err)
}
