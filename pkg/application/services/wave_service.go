package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vroliveira/wavepick/pkg/domain/entities"
	domain "github.com/vroliveira/wavepick/pkg/domain/services"
	"github.com/vroliveira/wavepick/pkg/infrastructure/events"
	"github.com/vroliveira/wavepick/pkg/mip"
)

// ErrNoSolution is returned when both the exact path and the greedy
// fallback fail to produce a wave. The caller decides whether to retry,
// relax the bounds, or abort; nothing else crosses the service boundary.
var ErrNoSolution = errors.New("no feasible wave found")

// FailureKind classifies why the exact path (or the whole run) failed, so
// callers branch on data instead of error identity.
type FailureKind int

const (
	// FailureNone means the exact solver's wave was accepted.
	FailureNone FailureKind = iota
	// SolverUnavailable covers backend instantiation faults and any
	// internal fault while building or driving the model.
	SolverUnavailable
	// SolverTimeoutNoIncumbent means the time limit passed without a
	// usable assignment (or the backend collapsed another terminal
	// condition into its Other status).
	SolverTimeoutNoIncumbent
	// SolverInfeasibleDomain means the backend proved no solution exists.
	SolverInfeasibleDomain
	// SolverResultRejected means the backend claimed optimal or feasible
	// but the independent feasibility check disagreed.
	SolverResultRejected
	// FallbackExhausted means the greedy construction could not reach the
	// wave size lower bound either.
	FallbackExhausted
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "None"
	case SolverUnavailable:
		return "SolverUnavailable"
	case SolverTimeoutNoIncumbent:
		return "SolverTimeoutNoIncumbent"
	case SolverInfeasibleDomain:
		return "SolverInfeasibleDomain"
	case SolverResultRejected:
		return "SolverResultRejected"
	case FallbackExhausted:
		return "FallbackExhausted"
	default:
		return "Unknown"
	}
}

// WaveConfig holds the tunables of one wave run.
type WaveConfig struct {
	// AislePenaltyMultiplier scales the surrogate objective's per-aisle
	// weight (weight = nItems * multiplier). Non-positive falls back to
	// the default.
	AislePenaltyMultiplier float64
	// DominanceMaxOrders caps the quadratic dominance pruning pass; zero
	// means no cap.
	DominanceMaxOrders int
	// RealUpperBound optionally overrides the greedy accumulation cap.
	RealUpperBound int
}

// Report summarizes a run for logging and output, whether or not a wave
// was found.
type Report struct {
	RunID        string
	ExactStatus  mip.Status
	Failure      FailureKind
	UsedFallback bool
	ValidOrders  int
	TotalOrders  int
	TotalUnits   int
	NumAisles    int
	Ratio        float64
	Elapsed      time.Duration
}

// WaveService drives one wave-picking run: preprocess, build and solve the
// exact model within the remaining time budget, validate the result, and
// fall back to the greedy construction when the exact path fails. Runs
// share no state; every invocation derives everything fresh from its
// instance.
type WaveService struct {
	backend mip.Backend
	config  WaveConfig
	logger  *zap.Logger
	store   events.EventStore
}

// NewWaveService creates a service over the given backend. A nil logger
// disables logging.
func NewWaveService(backend mip.Backend, config WaveConfig, logger *zap.Logger) *WaveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WaveService{backend: backend, config: config, logger: logger}
}

// WithEventStore attaches a solve-event store and returns the service for
// chaining.
func (s *WaveService) WithEventStore(store events.EventStore) *WaveService {
	s.store = store
	return s
}

// Solve runs one wave-picking run. remaining reports the wall-clock budget
// left for the whole run; the exact solve consumes it as its time limit.
// On total exhaustion the returned error wraps ErrNoSolution and the
// report's Failure field is FallbackExhausted.
func (s *WaveService) Solve(ctx context.Context, inst *entities.Instance, remaining func() time.Duration) (*entities.Solution, *Report, error) {
	start := time.Now()
	report := &Report{
		RunID:       uuid.NewString(),
		TotalOrders: inst.NumOrders(),
	}
	log := s.logger.With(zap.String("run_id", report.RunID))
	s.record(events.NewRunStarted(report.RunID))

	preprocessor := domain.NewPreprocessor(domain.PreprocessOptions{
		DominanceMaxOrders: s.config.DominanceMaxOrders,
		RealUpperBound:     s.config.RealUpperBound,
	})
	prep := preprocessor.Run(inst)
	report.ValidOrders = len(prep.ValidOrders)
	log.Info("preprocessing complete",
		zap.Int("valid_orders", len(prep.ValidOrders)),
		zap.Int("total_orders", inst.NumOrders()),
		zap.Int("real_upper_bound", prep.RealUpperBound),
		zap.Bool("dominance_skipped", prep.DominanceSkipped))
	s.record(events.NewPreprocessed(report.RunID, events.PreprocessedData{
		ValidOrders:    len(prep.ValidOrders),
		TotalOrders:    inst.NumOrders(),
		RealUpperBound: prep.RealUpperBound,
		Skipped:        prep.DominanceSkipped,
	}))

	checker := domain.NewFeasibilityChecker(inst)
	evaluator := domain.NewObjectiveEvaluator(inst)

	sol, failure := s.exactAttempt(ctx, inst, checker, remaining, report, log)
	if failure == FailureNone {
		s.finish(report, inst, sol, evaluator, start, log)
		return sol, report, nil
	}

	report.Failure = failure
	report.UsedFallback = true
	log.Warn("exact path failed, invoking greedy fallback",
		zap.Stringer("reason", failure),
		zap.Stringer("exact_status", report.ExactStatus))
	s.record(events.NewFallbackInvoked(report.RunID, failure.String()))

	fallback := domain.NewGreedyFallback(inst, prep)
	sol, err := fallback.Build()
	if err != nil {
		report.Failure = FallbackExhausted
		report.Elapsed = time.Since(start)
		log.Warn("greedy fallback exhausted", zap.Error(err))
		s.record(events.NewRunCompleted(report.RunID, events.RunCompletedData{Solved: false}))
		return nil, report, fmt.Errorf("fallback after %s: %w", failure, ErrNoSolution)
	}

	if !checker.IsFeasible(sol) {
		// Known gap: the greedy construction guarantees non-empty sets
		// and the aggregate bounds, so the only rejection left is
		// per-item coverage. Surfaced, not hidden.
		log.Warn("greedy wave fails per-item coverage",
			zap.Int("orders", sol.NumOrders()),
			zap.Int("aisles", sol.NumAisles()))
	}

	s.finish(report, inst, sol, evaluator, start, log)
	return sol, report, nil
}

// exactAttempt drives the exact path and classifies its failure. Any
// panic while building or solving is treated as SolverUnavailable; the
// service never lets a fault escape its boundary.
func (s *WaveService) exactAttempt(ctx context.Context, inst *entities.Instance, checker *domain.FeasibilityChecker, remaining func() time.Duration, report *Report, log *zap.Logger) (sol *entities.Solution, failure FailureKind) {
	report.ExactStatus = mip.StatusOther

	defer func() {
		if r := recover(); r != nil {
			log.Error("exact path fault", zap.Any("panic", r))
			sol, failure = nil, SolverUnavailable
		}
	}()

	if s.backend == nil {
		return nil, SolverUnavailable
	}

	builder := NewModelBuilder(s.config.AislePenaltyMultiplier)
	bm, err := builder.Build(inst)
	if err != nil {
		log.Warn("model construction failed", zap.Error(err))
		return nil, SolverUnavailable
	}

	limit := remaining()
	if limit < 0 {
		limit = 0
	}
	log.Info("solving exact model",
		zap.Int("variables", bm.Model.NumVars()),
		zap.Int("constraints", len(bm.Model.Constraints())),
		zap.Duration("time_limit", limit))

	res, err := s.backend.Solve(ctx, bm.Model, limit)
	if err != nil {
		log.Warn("backend solve failed", zap.Error(err))
		return nil, SolverUnavailable
	}
	report.ExactStatus = res.Status

	switch res.Status {
	case mip.StatusOptimal, mip.StatusFeasible:
	case mip.StatusInfeasible:
		s.record(events.NewExactFinished(report.RunID, events.ExactFinishedData{Status: res.Status.String()}))
		return nil, SolverInfeasibleDomain
	default:
		s.record(events.NewExactFinished(report.RunID, events.ExactFinishedData{Status: res.Status.String()}))
		return nil, SolverTimeoutNoIncumbent
	}

	sol = extractSolution(bm, res)
	if !checker.IsFeasible(sol) {
		s.record(events.NewExactFinished(report.RunID, events.ExactFinishedData{Status: res.Status.String()}))
		return nil, SolverResultRejected
	}

	s.record(events.NewExactFinished(report.RunID, events.ExactFinishedData{
		Status:   res.Status.String(),
		Accepted: true,
	}))
	return sol, FailureNone
}

func (s *WaveService) finish(report *Report, inst *entities.Instance, sol *entities.Solution, evaluator *domain.ObjectiveEvaluator, start time.Time, log *zap.Logger) {
	for _, o := range sol.OrderIDs() {
		report.TotalUnits += inst.OrderUnits(o)
	}
	report.NumAisles = sol.NumAisles()
	report.Ratio = evaluator.Ratio(sol)
	report.Elapsed = time.Since(start)

	log.Info("wave selected",
		zap.Int("orders", sol.NumOrders()),
		zap.Int("aisles", sol.NumAisles()),
		zap.Int("total_units", report.TotalUnits),
		zap.Float64("ratio", report.Ratio),
		zap.Bool("fallback", report.UsedFallback),
		zap.Duration("elapsed", report.Elapsed))
	s.record(events.NewRunCompleted(report.RunID, events.RunCompletedData{
		Solved:     true,
		TotalUnits: report.TotalUnits,
		NumAisles:  report.NumAisles,
		Ratio:      report.Ratio,
	}))
}

func (s *WaveService) record(event events.Event) {
	if s.store != nil {
		_ = s.store.Append(event)
	}
}
