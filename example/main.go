package main

import (
	"context"
	"fmt"
	"time"

	"github.com/vroliveira/wavepick/pkg/application/services"
	"github.com/vroliveira/wavepick/pkg/domain/entities"
	domainservices "github.com/vroliveira/wavepick/pkg/domain/services"
	"github.com/vroliveira/wavepick/pkg/mip/bnb"
)

func main() {
	ctx := context.Background()

	// A small picking floor: three orders, two aisles, wave size in [5, 12].
	orders := []entities.Order{
		{0: 3, 2: 1},
		{1: 1},
		{0: 2, 1: 2, 2: 1},
	}
	aisles := []entities.Aisle{
		{0: 4, 1: 1, 2: 2},
		{0: 2, 1: 3},
	}
	inst, err := entities.NewInstance(orders, aisles, 3, 5, 12)
	if err != nil {
		fmt.Printf("invalid instance: %v\n", err)
		return
	}

	service := services.NewWaveService(bnb.New(), services.WaveConfig{}, nil)

	remaining := budgetOf(30 * time.Second)
	sol, report, err := service.Solve(ctx, inst, remaining)
	if err != nil {
		fmt.Printf("no wave: %v\n", err)
		return
	}

	fmt.Printf("Status: %s (fallback=%v)\n", report.ExactStatus, report.UsedFallback)
	fmt.Printf("Orders: %v\n", sol.OrderIDs())
	fmt.Printf("Aisles: %v\n", sol.AisleIDs())
	fmt.Printf("Picked %d units across %d aisles (%.2f units/aisle)\n",
		report.TotalUnits, report.NumAisles, report.Ratio)

	evaluator := domainservices.NewObjectiveEvaluator(inst)
	fmt.Printf("Re-evaluated ratio: %.2f\n", evaluator.Ratio(sol))
}

func budgetOf(total time.Duration) func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		left := total - time.Since(start)
		if left < 0 {
			return 0
		}
		return left
	}
}
