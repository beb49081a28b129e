package services

import (
	"github.com/vroliveira/wavepick/pkg/domain/entities"
	"github.com/vroliveira/wavepick/pkg/mip"
)

// extractSolution rounds the boolean assignment into the two id sets. A
// value above 0.5 counts as selected, tolerating backends that report
// near-integral floats.
func extractSolution(bm *BuiltModel, res *mip.Result) *entities.Solution {
	var orderIDs, aisleIDs []int
	for o, v := range bm.OrderVars {
		if res.Value(v) > 0.5 {
			orderIDs = append(orderIDs, o)
		}
	}
	for a, v := range bm.AisleVars {
		if res.Value(v) > 0.5 {
			aisleIDs = append(aisleIDs, a)
		}
	}
	return entities.NewSolution(orderIDs, aisleIDs)
}
