package metrics

import "time"

// Outcome labels the result of one rebuild.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeInvalid  Outcome = "invalid"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Stage names a rebuild step.
type Stage string

const (
	StageLoad     Stage = "load"
	StageDiscover Stage = "discover"
	StageCheck    Stage = "check"
	StageRender   Stage = "render"
)

// Recorder defines observability hooks for rebuilds.
type Recorder interface {
	ObserveStageDuration(stage Stage, d time.Duration)
	ObserveRenderDuration(d time.Duration)
	IncRenderOutcome(outcome Outcome)
	SetLinkIssues(n int)
	SetPages(n int)
	IncValidationFailure()
	IncFilesWritten(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(Stage, time.Duration) {}
func (NoopRecorder) ObserveRenderDuration(time.Duration)       {}
func (NoopRecorder) IncRenderOutcome(Outcome)                  {}
func (NoopRecorder) SetLinkIssues(int)                         {}
func (NoopRecorder) SetPages(int)                              {}
func (NoopRecorder) IncValidationFailure()                     {}
func (NoopRecorder) IncFilesWritten(int)                       {}
