package services

import (
	"github.com/vroliveira/wavepick/pkg/domain/entities"
)

// ObjectiveEvaluator computes the reporting metric for a solution: total
// picked units divided by the number of visited aisles. This is the true
// objective of the problem; the MILP maximizes a linear surrogate instead
// (see the model builder), so both paths report through this evaluator.
type ObjectiveEvaluator struct {
	inst *entities.Instance
}

// NewObjectiveEvaluator creates an evaluator bound to the given instance.
func NewObjectiveEvaluator(inst *entities.Instance) *ObjectiveEvaluator {
	return &ObjectiveEvaluator{inst: inst}
}

// Ratio returns picked units per visited aisle, or 0 when either set is
// empty.
func (e *ObjectiveEvaluator) Ratio(sol *entities.Solution) float64 {
	if sol == nil || sol.NumOrders() == 0 || sol.NumAisles() == 0 {
		return 0
	}

	totalUnits := 0
	for _, o := range sol.OrderIDs() {
		totalUnits += e.inst.OrderUnits(o)
	}

	return float64(totalUnits) / float64(sol.NumAisles())
}
