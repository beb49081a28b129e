package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	appservices "github.com/vroliveira/wavepick/pkg/application/services"
	"github.com/vroliveira/wavepick/pkg/config"
	"github.com/vroliveira/wavepick/pkg/infrastructure/budget"
	"github.com/vroliveira/wavepick/pkg/infrastructure/events"
	"github.com/vroliveira/wavepick/pkg/infrastructure/repositories/file"
	"github.com/vroliveira/wavepick/pkg/interfaces/cli/output"
	"github.com/vroliveira/wavepick/pkg/mip/bnb"
)

// Config holds configuration for the solve command.
type Config struct {
	InstanceFile string
	SolutionFile string
	Format       string
	TimeLimit    time.Duration
	Verbose      bool
	Help         bool
}

// SolveCommand runs one wave-picking instance end to end: load, solve,
// report, write the solution file.
type SolveCommand struct {
	config Config
	appCfg *config.Config
	logger *zap.Logger
}

// NewSolveCommand creates a solve command.
func NewSolveCommand(cfg Config, appCfg *config.Config, logger *zap.Logger) *SolveCommand {
	return &SolveCommand{config: cfg, appCfg: appCfg, logger: logger}
}

// Execute runs the command.
func (c *SolveCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if c.config.InstanceFile == "" {
		return fmt.Errorf("must specify an instance file with -instance")
	}
	if _, err := os.Stat(c.config.InstanceFile); os.IsNotExist(err) {
		return fmt.Errorf("instance file not found: %s", c.config.InstanceFile)
	}

	total := c.appCfg.MaxRuntime
	if c.config.TimeLimit > 0 {
		total = c.config.TimeLimit
	}
	stopwatch := budget.NewStopwatch(total)

	loader := file.NewLoader()
	inst, err := loader.LoadInstance(c.config.InstanceFile)
	if err != nil {
		return fmt.Errorf("error loading instance: %w", err)
	}

	c.logger.Info("instance loaded",
		zap.String("file", c.config.InstanceFile),
		zap.Int("orders", inst.NumOrders()),
		zap.Int("aisles", inst.NumAisles()),
		zap.Int("items", inst.NItems()),
		zap.Int("wave_lb", inst.WaveSizeLB()),
		zap.Int("wave_ub", inst.WaveSizeUB()))

	backend := bnb.NewWithConfig(bnb.Config{MaxNodes: c.appCfg.Solver.MaxNodes})
	service := appservices.NewWaveService(backend, appservices.WaveConfig{
		AislePenaltyMultiplier: c.appCfg.Wave.AislePenaltyMultiplier,
		DominanceMaxOrders:     c.appCfg.Wave.DominanceMaxOrders,
		RealUpperBound:         c.appCfg.Wave.RealUpperBound,
	}, c.logger)

	var store *events.InMemoryEventStore
	if c.config.Verbose {
		store = events.NewInMemoryEventStore()
		service.WithEventStore(store)
	}

	sol, report, solveErr := service.Solve(ctx, inst, stopwatch.Remaining)
	if solveErr != nil && !errors.Is(solveErr, appservices.ErrNoSolution) {
		return fmt.Errorf("error solving instance: %w", solveErr)
	}

	solutionFile := c.config.SolutionFile
	if sol != nil && solutionFile != "" {
		if err := file.WriteSolution(solutionFile, sol); err != nil {
			return fmt.Errorf("error writing solution: %w", err)
		}
	} else {
		solutionFile = ""
	}

	outputConfig := output.Config{
		Format:       c.config.Format,
		Verbose:      c.config.Verbose,
		SolveTime:    stopwatch.Elapsed(),
		InstanceFile: c.config.InstanceFile,
		SolutionFile: solutionFile,
	}
	if err := output.Generate(sol, report, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if store != nil {
		printTrail(store)
	}

	return solveErr
}

func printTrail(store *events.InMemoryEventStore) {
	trail := store.ReadAll()
	if len(trail) == 0 {
		return
	}
	fmt.Printf("\nSolve trail:\n")
	for _, ev := range trail {
		if ev.Data() != nil {
			fmt.Printf("  %s %s %+v\n", ev.Timestamp().Format("15:04:05.000"), ev.Type(), ev.Data())
		} else {
			fmt.Printf("  %s %s\n", ev.Timestamp().Format("15:04:05.000"), ev.Type())
		}
	}
}

func (c *SolveCommand) showHelp() {
	fmt.Printf(`wavepick - wave picking batch optimizer

USAGE:
    wavepick -instance <file> [options]

OPTIONS:
    -instance <file>    Path to the instance file (required)
    -solution <file>    Path to write the selected wave (optional)
    -format <fmt>       Output format: text, json (default: text)
    -time-limit <dur>   Total wall-clock budget, e.g. 30s, 5m (default: MAX_RUNTIME or 10m)
    -verbose            Print the id sets and the solve trail
    -help               Show this help message

INSTANCE FILE FORMAT (whitespace-separated integers):
    o i a               order count, item count, aisle count
    k item qty ...      one line per order: k sparse item/quantity pairs
    k item qty ...      one line per aisle
    LB UB               inclusive wave size bounds

ENVIRONMENT (also read from .env):
    MAX_RUNTIME                 total budget per run (default 10m)
    AISLE_PENALTY_MULTIPLIER    surrogate objective weight multiplier (default 1.1)
    DOMINANCE_MAX_ORDERS        skip dominance pruning above this order count (default 2000)
    REAL_UPPER_BOUND            override the greedy accumulation cap (default: derived)
    BNB_MAX_NODES               cap the branch-and-bound search (default unlimited)
    LOG_LEVEL, LOG_FORMAT       logging controls

EXAMPLES:
    wavepick -instance instances/wave_0001.txt -solution out/wave_0001.txt
    wavepick -instance instances/wave_0001.txt -format json -time-limit 30s
`)
}
