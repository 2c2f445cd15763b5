package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/build"
	"git.home.luguber.info/inful/docsite/internal/config"
)

type fakeService struct {
	calls   atomic.Int32
	release chan struct{} // when set, every run blocks until a value arrives
	cfg     *config.SiteConfig
}

func (f *fakeService) Run(ctx context.Context, _ build.Request) (*build.Result, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &build.Result{Status: build.StatusSuccess, Config: f.cfg}, nil
}

func siteDir(t *testing.T) (string, *config.SiteConfig) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsite.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("title: Watched\n"), 0o600))
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "platform"), 0o750))
	cfg := config.Default()
	cfg.SrcDir = src
	return cfgPath, cfg
}

func startWatcher(t *testing.T, w *Watcher) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})
	return cancel
}

func TestWatcher_InitialBuildAndConfigChange(t *testing.T) {
	cfgPath, cfg := siteDir(t)
	svc := &fakeService{cfg: cfg}
	var mu sync.Mutex
	var results []*build.Result
	w, err := New(cfgPath, svc, Options{
		Debounce: 20 * time.Millisecond,
		OnRebuild: func(r *build.Result, _ error) {
			mu.Lock()
			results = append(results, r)
			mu.Unlock()
		},
	})
	require.NoError(t, err)
	startWatcher(t, w)

	require.Eventually(t, func() bool { return w.Runs() == 1 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(cfgPath, []byte("title: Changed\n"), 0o600))
	require.Eventually(t, func() bool { return w.Runs() >= 2 }, 5*time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.GreaterOrEqual(t, len(results), 2)
	mu.Unlock()
}

func TestWatcher_ContentChange(t *testing.T) {
	cfgPath, cfg := siteDir(t)
	svc := &fakeService{cfg: cfg}
	w, err := New(cfgPath, svc, Options{Debounce: 20 * time.Millisecond})
	require.NoError(t, err)
	startWatcher(t, w)
	require.Eventually(t, func() bool { return w.Runs() == 1 }, 5*time.Second, 10*time.Millisecond)

	page := filepath.Join(cfg.SrcDir, "platform", "features.md")
	require.NoError(t, os.WriteFile(page, []byte("# Features\n"), 0o600))
	require.Eventually(t, func() bool { return w.Runs() >= 2 }, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_CoalescesRequestsDuringRebuild(t *testing.T) {
	svc := &fakeService{release: make(chan struct{})}
	w, err := New(filepath.Join(t.TempDir(), "docsite.yaml"), svc, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.fs.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.worker(ctx)

	w.request()
	require.Eventually(t, func() bool { return svc.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	// Several changes while the first rebuild runs collapse into one more.
	for range 5 {
		w.request()
	}
	svc.release <- struct{}{}
	require.Eventually(t, func() bool { return svc.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	svc.release <- struct{}{}
	require.Eventually(t, func() bool { return w.Runs() == 2 }, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(2), svc.calls.Load())
}

func TestWatcher_DebounceCollapsesBurst(t *testing.T) {
	svc := &fakeService{}
	w, err := New(filepath.Join(t.TempDir(), "docsite.yaml"), svc, Options{Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.fs.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.worker(ctx)

	for range 10 {
		w.trigger()
	}
	require.Eventually(t, func() bool { return w.Runs() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), svc.calls.Load())
}

func TestWatcher_PeriodicRecheck(t *testing.T) {
	cfgPath, cfg := siteDir(t)
	svc := &fakeService{cfg: cfg}
	w, err := New(cfgPath, svc, Options{Recheck: 100 * time.Millisecond})
	require.NoError(t, err)
	startWatcher(t, w)

	require.Eventually(t, func() bool { return w.Runs() >= 3 }, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_Ignored(t *testing.T) {
	cfgPath, cfg := siteDir(t)
	w, err := New(cfgPath, &fakeService{}, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.fs.Close() })
	w.track(cfg)

	gen := filepath.Join(cfg.SrcDir, ".vitepress")
	assert.True(t, w.ignored(filepath.Join(gen, "config.json")))
	assert.True(t, w.ignored(filepath.Join(gen, "theme", "index.ts")))
	assert.True(t, w.ignored(filepath.Join(gen, "dist", "index.html")))
	assert.True(t, w.ignored(filepath.Join(gen, ".config.json.123.tmp")))
	assert.True(t, w.ignored(filepath.Join(cfg.SrcDir, "vision.md.swp")))

	assert.False(t, w.ignored(filepath.Join(cfg.SrcDir, "vision.md")))
	assert.False(t, w.ignored(filepath.Join(gen, "components", "ContractDiagram.vue")))
	assert.False(t, w.ignored(filepath.Join(filepath.Dir(cfgPath), ".env")))
	assert.False(t, w.ignored(cfgPath))
}
