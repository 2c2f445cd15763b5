package build

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/linkcheck"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/pages"
	"git.home.luguber.info/inful/docsite/internal/render"
	"git.home.luguber.info/inful/docsite/internal/theme"
)

// DefaultService is the standard Service implementation.
type DefaultService struct {
	recorder metrics.Recorder
	now      func() time.Time
}

// NewService returns a service that records nothing.
func NewService() *DefaultService {
	return &DefaultService{recorder: metrics.NoopRecorder{}, now: time.Now}
}

// WithRecorder sets the metrics recorder.
func (s *DefaultService) WithRecorder(r metrics.Recorder) *DefaultService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// Run executes load, discover, check and render in order. A failing stage
// stops the run; artifacts from earlier runs stay in place.
func (s *DefaultService) Run(ctx context.Context, req Request) (*Result, error) {
	res := &Result{StartTime: s.now()}
	finish := func(status Status, err error) (*Result, error) {
		res.Status = status
		res.EndTime = s.now()
		res.Duration = res.EndTime.Sub(res.StartTime)
		s.recorder.IncRenderOutcome(outcomeFor(status))
		s.recorder.ObserveRenderDuration(res.Duration)
		return res, err
	}
	failed := func(err error) (*Result, error) {
		switch {
		case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
			return finish(StatusCancelled, err)
		case errors.HasCategory(err, errors.CategoryValidation), errors.HasCategory(err, errors.CategoryConfig):
			return finish(StatusInvalid, err)
		default:
			return finish(StatusFailed, err)
		}
	}

	// Stage 1: load
	stageStart := s.now()
	cfg, err := config.Load(req.ConfigPath)
	s.recorder.ObserveStageDuration(metrics.StageLoad, s.now().Sub(stageStart))
	if err != nil {
		s.recorder.IncValidationFailure()
		return failed(err)
	}
	res.Config = cfg

	// Stage 2: discover
	stageStart = s.now()
	list, err := pages.Discover(ctx, cfg.ContentDir(), pages.Options{CleanURLs: cfg.CleanURLs, LastUpdated: cfg.LastUpdated})
	s.recorder.ObserveStageDuration(metrics.StageDiscover, s.now().Sub(stageStart))
	if err != nil {
		return failed(err)
	}
	res.Pages = list
	s.recorder.SetPages(len(list))

	// Stage 3: check
	stageStart = s.now()
	index := pages.NewIndex(list)
	report := linkcheck.Check(cfg, index)
	if req.Options.CheckPages {
		report.Merge(linkcheck.CheckPages(list, index))
	}
	res.Links = report
	s.recorder.ObserveStageDuration(metrics.StageCheck, s.now().Sub(stageStart))
	s.recorder.SetLinkIssues(len(report.Issues))
	if !report.OK() {
		if req.Options.Strict {
			return failed(report.Err())
		}
		for _, is := range report.Issues {
			slog.Warn("Broken link", slog.String("source", is.Source), logfields.Link(is.Link), slog.String("reason", string(is.Reason)))
		}
	}
	if err := ctx.Err(); err != nil {
		return failed(err)
	}
	if req.Options.DryRun {
		return finish(StatusSuccess, nil)
	}

	// Stage 4: render
	stageStart = s.now()
	out, err := render.Write(ctx, cfg, theme.FromConfig(cfg.Extension), render.Options{
		Pages:             list,
		ResolveComponents: req.Options.ResolveComponents,
	})
	s.recorder.ObserveStageDuration(metrics.StageRender, s.now().Sub(stageStart))
	if err != nil {
		return failed(err)
	}
	res.Render = out
	s.recorder.IncFilesWritten(len(out.Written))

	slog.Info("Site pipeline complete",
		logfields.Config(req.ConfigPath),
		logfields.Count(len(list)),
		slog.String("links", report.Summary()),
		logfields.Duration(s.now().Sub(res.StartTime)))
	return finish(StatusSuccess, nil)
}

func outcomeFor(s Status) metrics.Outcome {
	switch s {
	case StatusSuccess:
		return metrics.OutcomeSuccess
	case StatusInvalid:
		return metrics.OutcomeInvalid
	case StatusCancelled:
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeFailed
	}
}

var _ Service = (*DefaultService)(nil)
