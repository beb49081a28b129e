package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vroliveira/wavepick/pkg/config"
	"github.com/vroliveira/wavepick/pkg/interfaces/cli/commands"
	"github.com/vroliveira/wavepick/pkg/logger"
)

func main() {
	// Command line flags
	var (
		instanceFile = flag.String("instance", "", "Path to the instance file")
		solutionFile = flag.String("solution", "", "Path to write the selected wave (optional)")
		format       = flag.String("format", "text", "Output format: text, json")
		timeLimit    = flag.Duration("time-limit", 0, "Total wall-clock budget (overrides MAX_RUNTIME)")
		verbose      = flag.Bool("verbose", false, "Enable verbose output")
		help         = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(appCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cmdConfig := commands.Config{
		InstanceFile: *instanceFile,
		SolutionFile: *solutionFile,
		Format:       *format,
		TimeLimit:    *timeLimit,
		Verbose:      *verbose,
		Help:         *help,
	}

	total := appCfg.MaxRuntime
	if *timeLimit > 0 {
		total = *timeLimit
	}
	// Leave headroom so output and the solution file still get written
	// when the solve consumes the whole budget.
	ctx, cancel := context.WithTimeout(context.Background(), total+5*time.Second)
	defer cancel()

	cmd := commands.NewSolveCommand(cmdConfig, appCfg, log)
	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
