package build

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

type testRecorder struct {
	metrics.NoopRecorder
	mu                 sync.Mutex
	outcomes           map[metrics.Outcome]int
	stages             map[metrics.Stage]int
	validationFailures int
	linkIssues         int
	pages              int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{outcomes: map[metrics.Outcome]int{}, stages: map[metrics.Stage]int{}}
}

func (r *testRecorder) IncRenderOutcome(o metrics.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[o]++
}

func (r *testRecorder) ObserveStageDuration(s metrics.Stage, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages[s]++
}

func (r *testRecorder) IncValidationFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validationFailures++
}

func (r *testRecorder) SetLinkIssues(n int) { r.linkIssues = n }
func (r *testRecorder) SetPages(n int)      { r.pages = n }

var sitePages = []string{
	"index.md", "vision.md", "market.md",
	"platform/index.md", "platform/features.md", "platform/use-cases.md", "platform/benefits.md",
	"technology/index.md", "technology/architecture.md", "technology/ai-systems.md", "technology/security.md",
	"business/index.md", "business/model.md", "business/tokenomics.md", "business/roadmap.md",
}

// defaultSite lays out the shipped configuration and its content tree.
func defaultSite(t *testing.T, skip ...string) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsite.yaml")
	require.NoError(t, config.Init(cfgPath, false))
	skipped := map[string]bool{}
	for _, s := range skip {
		skipped[s] = true
	}
	for _, rel := range sitePages {
		if skipped[rel] {
			continue
		}
		p := filepath.Join(dir, "src", filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte("# "+rel+"\n"), 0o600))
	}
	return cfgPath
}

func TestRun_Success(t *testing.T) {
	cfgPath := defaultSite(t)
	rec := newTestRecorder()
	svc := NewService().WithRecorder(rec)

	res, err := svc.Run(context.Background(), Request{ConfigPath: cfgPath})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.True(t, res.Status.IsSuccess())
	assert.Len(t, res.Pages, len(sitePages))
	assert.True(t, res.Links.OK())
	require.NotNil(t, res.Render)
	assert.NotEmpty(t, res.Render.BuildID)
	assert.FileExists(t, filepath.Join(filepath.Dir(cfgPath), "src", ".vitepress", "config.json"))

	assert.Equal(t, 1, rec.outcomes[metrics.OutcomeSuccess])
	assert.Equal(t, 1, rec.stages[metrics.StageRender])
	assert.Equal(t, len(sitePages), rec.pages)

	// A second run leaves everything in place.
	again, err := svc.Run(context.Background(), Request{ConfigPath: cfgPath})
	require.NoError(t, err)
	assert.False(t, again.Render.Changed())
	assert.Equal(t, res.Render.BuildID, again.Render.BuildID)
}

func TestRun_BrokenLinkWarnsByDefault(t *testing.T) {
	cfgPath := defaultSite(t, "platform/features.md")
	rec := newTestRecorder()

	res, err := NewService().WithRecorder(rec).Run(context.Background(), Request{ConfigPath: cfgPath})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Len(t, res.Links.Issues, 1)
	assert.Equal(t, 1, rec.linkIssues)
}

func TestRun_StrictFailsOnBrokenLink(t *testing.T) {
	cfgPath := defaultSite(t, "platform/features.md")
	rec := newTestRecorder()

	res, err := NewService().WithRecorder(rec).Run(context.Background(), Request{
		ConfigPath: cfgPath,
		Options:    Options{Strict: true},
	})
	require.Error(t, err)
	assert.Equal(t, StatusInvalid, res.Status)
	assert.Nil(t, res.Render)
	assert.Equal(t, 1, rec.outcomes[metrics.OutcomeInvalid])
	assert.NoFileExists(t, filepath.Join(filepath.Dir(cfgPath), "src", ".vitepress", "config.json"))
}

func TestRun_InvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "docsite.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("title: x\nbase: docs\nunknown_key: 1\n"), 0o600))
	rec := newTestRecorder()

	res, err := NewService().WithRecorder(rec).Run(context.Background(), Request{ConfigPath: cfgPath})
	require.Error(t, err)
	assert.Equal(t, StatusInvalid, res.Status)
	assert.Equal(t, 1, rec.validationFailures)
}

func TestRun_MissingContent(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsite.yaml")
	require.NoError(t, config.Init(cfgPath, false))

	res, err := NewService().Run(context.Background(), Request{ConfigPath: cfgPath})
	require.Error(t, err)
	assert.Equal(t, StatusFailed, res.Status)
}

func TestRun_DryRun(t *testing.T) {
	cfgPath := defaultSite(t)
	res, err := NewService().Run(context.Background(), Request{ConfigPath: cfgPath, Options: Options{DryRun: true}})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Nil(t, res.Render)
}

func TestRun_Cancelled(t *testing.T) {
	cfgPath := defaultSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := NewService().Run(ctx, Request{ConfigPath: cfgPath})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatusCancelled, res.Status)
}
