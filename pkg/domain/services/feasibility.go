package services

import (
	"github.com/vroliveira/wavepick/pkg/domain/entities"
)

// FeasibilityChecker validates candidate solutions against an instance,
// independently of whatever produced them. The exact solver's output and
// the greedy fallback's output go through the same check.
type FeasibilityChecker struct {
	inst *entities.Instance
}

// NewFeasibilityChecker creates a checker bound to the given instance.
func NewFeasibilityChecker(inst *entities.Instance) *FeasibilityChecker {
	return &FeasibilityChecker{inst: inst}
}

// IsFeasible reports whether the solution is a valid wave: both id sets
// non-empty, total picked units within the wave size bounds, and for every
// item the picked quantity covered by the supply of the visited aisles.
// An empty solution is rejected even when the lower bound is zero.
func (c *FeasibilityChecker) IsFeasible(sol *entities.Solution) bool {
	if sol == nil || sol.NumOrders() == 0 || sol.NumAisles() == 0 {
		return false
	}

	picked := make([]int, c.inst.NItems())
	available := make([]int, c.inst.NItems())

	totalUnits := 0
	for _, o := range sol.OrderIDs() {
		for item, qty := range c.inst.Order(o) {
			picked[item] += qty
			totalUnits += qty
		}
	}
	for _, a := range sol.AisleIDs() {
		for item, qty := range c.inst.Aisle(a) {
			available[item] += qty
		}
	}

	if totalUnits < c.inst.WaveSizeLB() || totalUnits > c.inst.WaveSizeUB() {
		return false
	}

	for item := 0; item < c.inst.NItems(); item++ {
		if picked[item] > available[item] {
			return false
		}
	}

	return true
}
