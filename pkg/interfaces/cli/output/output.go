package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vroliveira/wavepick/pkg/application/services"
	"github.com/vroliveira/wavepick/pkg/domain/entities"
)

// Config holds configuration for output generation.
type Config struct {
	Format       string
	Verbose      bool
	SolveTime    time.Duration
	InstanceFile string
	SolutionFile string
}

// Generate writes the run summary in the requested format. sol may be nil
// when the run found no feasible wave.
func Generate(sol *entities.Solution, report *services.Report, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(sol, report, config)
	case "json":
		return generateJSONOutput(sol, report, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func generateTextOutput(sol *entities.Solution, report *services.Report, config Config) error {
	fmt.Printf("Wave Picking Results\n")
	fmt.Printf("====================\n\n")
	fmt.Printf("Instance: %s\n", config.InstanceFile)
	fmt.Printf("Run: %s\n", report.RunID)
	fmt.Printf("Exact status: %s\n", report.ExactStatus)
	if report.UsedFallback {
		fmt.Printf("Fallback: greedy (%s)\n", report.Failure)
	}

	if sol == nil {
		fmt.Printf("\nNo feasible wave found.\n")
		return nil
	}

	fmt.Printf("\nSelected orders: %d\n", sol.NumOrders())
	fmt.Printf("Visited aisles: %d\n", sol.NumAisles())
	fmt.Printf("Total units: %d\n", report.TotalUnits)
	fmt.Printf("Units per aisle: %s\n", formatRatio(report))
	fmt.Printf("Solve time: %v\n", config.SolveTime)

	if config.Verbose {
		fmt.Printf("\nOrders: %v\n", sol.OrderIDs())
		fmt.Printf("Aisles: %v\n", sol.AisleIDs())
	}
	if config.SolutionFile != "" {
		fmt.Printf("\nSolution written to: %s\n", config.SolutionFile)
	}

	return nil
}

type jsonSummary struct {
	Instance     string  `json:"instance"`
	RunID        string  `json:"run_id"`
	ExactStatus  string  `json:"exact_status"`
	UsedFallback bool    `json:"used_fallback"`
	Failure      string  `json:"failure,omitempty"`
	Solved       bool    `json:"solved"`
	Orders       []int   `json:"orders,omitempty"`
	Aisles       []int   `json:"aisles,omitempty"`
	TotalUnits   int     `json:"total_units"`
	Ratio        string  `json:"units_per_aisle"`
	SolveTimeSec float64 `json:"solve_time_seconds"`
}

func generateJSONOutput(sol *entities.Solution, report *services.Report, config Config) error {
	summary := jsonSummary{
		Instance:     config.InstanceFile,
		RunID:        report.RunID,
		ExactStatus:  report.ExactStatus.String(),
		UsedFallback: report.UsedFallback,
		Solved:       sol != nil,
		TotalUnits:   report.TotalUnits,
		Ratio:        formatRatio(report),
		SolveTimeSec: config.SolveTime.Seconds(),
	}
	if report.UsedFallback || sol == nil {
		summary.Failure = report.Failure.String()
	}
	if sol != nil {
		summary.Orders = sol.OrderIDs()
		summary.Aisles = sol.AisleIDs()
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

// formatRatio renders picked units per aisle with fixed precision, exact
// up to the rounding place.
func formatRatio(report *services.Report) string {
	if report.NumAisles == 0 {
		return "0"
	}
	return decimal.NewFromInt(int64(report.TotalUnits)).
		DivRound(decimal.NewFromInt(int64(report.NumAisles)), 4).
		String()
}
