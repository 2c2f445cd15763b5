package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/linkcheck"
	"git.home.luguber.info/inful/docsite/internal/pages"
	"git.home.luguber.info/inful/docsite/internal/render"
)

// Request holds the inputs of one pipeline run.
type Request struct {
	// ConfigPath is loaded on every run so edits are picked up.
	ConfigPath string
	Options    Options
}

// Options modifies pipeline behavior.
type Options struct {
	// Strict fails the run on broken links instead of logging them.
	Strict bool
	// CheckPages also verifies links inside page bodies.
	CheckPages bool
	// ResolveComponents requires every theme component source to exist.
	ResolveComponents bool
	// DryRun stops after the link check.
	DryRun bool
}

// Result is the outcome of a pipeline run.
type Result struct {
	Status    Status
	Config    *config.SiteConfig
	Pages     []pages.Page
	Links     *linkcheck.Report
	Render    *render.Result
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Status is the overall outcome of a run.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusInvalid   Status = "invalid"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// IsSuccess reports whether artifacts are current.
func (s Status) IsSuccess() bool { return s == StatusSuccess }

// Service executes pipeline runs.
type Service interface {
	Run(ctx context.Context, req Request) (*Result, error)
}
