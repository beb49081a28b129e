package services

import (
	"fmt"
	"math"

	"github.com/vroliveira/wavepick/pkg/domain/entities"
	"github.com/vroliveira/wavepick/pkg/mip"
)

// DefaultAislePenaltyMultiplier scales the per-aisle penalty weight; the
// weight itself is nItems times this multiplier.
const DefaultAislePenaltyMultiplier = 1.1

// ModelBuilder turns an instance into a mathematical program. The true
// goal, picked units per visited aisle, is not linear; the built objective
// maximizes totalUnits - w*totalAisles instead, where w exceeds any single
// item's possible contribution so an extra aisle is only ever worth opening
// when the unit bounds require it.
type ModelBuilder struct {
	penaltyMultiplier float64
}

// NewModelBuilder creates a builder with the given per-aisle penalty
// multiplier; a non-positive value falls back to the default.
func NewModelBuilder(penaltyMultiplier float64) *ModelBuilder {
	if penaltyMultiplier <= 0 {
		penaltyMultiplier = DefaultAislePenaltyMultiplier
	}
	return &ModelBuilder{penaltyMultiplier: penaltyMultiplier}
}

// BuiltModel pairs the program with the variable handles needed to read a
// solution back out.
type BuiltModel struct {
	Model       *mip.Model
	OrderVars   []mip.Var
	AisleVars   []mip.Var
	TotalUnits  mip.Var
	TotalAisles mip.Var
}

// Build constructs the program: one boolean per order and per aisle, the
// bounded totals, the zero-bound equality rows tying the totals to their
// sums, the wave size rows, and one supply-coverage row per item.
func (b *ModelBuilder) Build(inst *entities.Instance) (*BuiltModel, error) {
	if inst.NumOrders() == 0 {
		return nil, fmt.Errorf("cannot build a model without orders")
	}
	if inst.NumAisles() == 0 {
		return nil, fmt.Errorf("cannot build a model without aisles")
	}

	m := mip.NewModel()
	bm := &BuiltModel{
		Model:     m,
		OrderVars: make([]mip.Var, inst.NumOrders()),
		AisleVars: make([]mip.Var, inst.NumAisles()),
	}

	for o := 0; o < inst.NumOrders(); o++ {
		bm.OrderVars[o] = m.BoolVar(fmt.Sprintf("order_%d", o))
	}
	for a := 0; a < inst.NumAisles(); a++ {
		bm.AisleVars[a] = m.BoolVar(fmt.Sprintf("aisle_%d", a))
	}

	bm.TotalUnits = m.IntVar(0, float64(inst.WaveSizeUB()), "total_units")
	bm.TotalAisles = m.IntVar(1, float64(inst.NumAisles()), "total_aisles")

	// totalUnits - sum(orderUnits[o] * order[o]) = 0
	unitsEq := m.Constraint(0, 0)
	unitsEq.SetCoef(bm.TotalUnits, 1)
	for o := 0; o < inst.NumOrders(); o++ {
		unitsEq.SetCoef(bm.OrderVars[o], -float64(inst.OrderUnits(o)))
	}

	lbRow := m.Constraint(float64(inst.WaveSizeLB()), math.Inf(1))
	lbRow.SetCoef(bm.TotalUnits, 1)

	// Redundant with the variable's own bound; kept explicit.
	ubRow := m.Constraint(0, float64(inst.WaveSizeUB()))
	ubRow.SetCoef(bm.TotalUnits, 1)

	// Per item: visited-aisle supply covers picked demand.
	for item := 0; item < inst.NItems(); item++ {
		itemRow := m.Constraint(0, math.Inf(1))
		for a := 0; a < inst.NumAisles(); a++ {
			if qty := inst.Aisle(a)[item]; qty > 0 {
				itemRow.SetCoef(bm.AisleVars[a], float64(qty))
			}
		}
		for o := 0; o < inst.NumOrders(); o++ {
			if qty := inst.Order(o)[item]; qty > 0 {
				itemRow.SetCoef(bm.OrderVars[o], -float64(qty))
			}
		}
	}

	// totalAisles - sum(aisle[a]) = 0
	aislesEq := m.Constraint(0, 0)
	aislesEq.SetCoef(bm.TotalAisles, 1)
	for a := 0; a < inst.NumAisles(); a++ {
		aislesEq.SetCoef(bm.AisleVars[a], -1)
	}

	obj := m.Objective()
	obj.SetCoef(bm.TotalUnits, 1)
	obj.SetCoef(bm.TotalAisles, -b.AislePenalty(inst))
	obj.SetMaximize()

	return bm, nil
}

// AislePenalty returns the surrogate objective's per-aisle weight for the
// instance.
func (b *ModelBuilder) AislePenalty(inst *entities.Instance) float64 {
	return float64(inst.NItems()) * b.penaltyMultiplier
}
