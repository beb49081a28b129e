package events

// Event types recorded by the wave service over a run's lifecycle.
const (
	TypeRunStarted      = "wave.run_started"
	TypePreprocessed    = "wave.preprocessed"
	TypeExactFinished   = "wave.exact_finished"
	TypeFallbackInvoked = "wave.fallback_invoked"
	TypeRunCompleted    = "wave.run_completed"
)

// PreprocessedData describes the dominance pruning outcome.
type PreprocessedData struct {
	ValidOrders    int
	TotalOrders    int
	RealUpperBound int
	Skipped        bool
}

// ExactFinishedData describes the exact solve attempt.
type ExactFinishedData struct {
	Status   string
	Accepted bool
}

// FallbackInvokedData names the exact-path failure that routed the run to
// the greedy construction.
type FallbackInvokedData struct {
	Reason string
}

// RunCompletedData summarizes the run outcome.
type RunCompletedData struct {
	Solved     bool
	TotalUnits int
	NumAisles  int
	Ratio      float64
}

// NewRunStarted records the beginning of a run.
func NewRunStarted(runID string) Event {
	return NewEvent(TypeRunStarted, runID, nil)
}

// NewPreprocessed records the preprocessing outcome.
func NewPreprocessed(runID string, data PreprocessedData) Event {
	return NewEvent(TypePreprocessed, runID, data)
}

// NewExactFinished records the exact solve attempt's outcome.
func NewExactFinished(runID string, data ExactFinishedData) Event {
	return NewEvent(TypeExactFinished, runID, data)
}

// NewFallbackInvoked records entry into the greedy fallback.
func NewFallbackInvoked(runID string, reason string) Event {
	return NewEvent(TypeFallbackInvoked, runID, FallbackInvokedData{Reason: reason})
}

// NewRunCompleted records the final outcome of a run.
func NewRunCompleted(runID string, data RunCompletedData) Event {
	return NewEvent(TypeRunCompleted, runID, data)
}
