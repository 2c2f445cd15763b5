// Package watch rebuilds the site when its configuration or content changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docsite/internal/build"
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/render"
)

// DefaultDebounce coalesces bursts of filesystem events into one rebuild.
const DefaultDebounce = 300 * time.Millisecond

// ignoredDirs never contain site inputs.
var ignoredDirs = []string{"node_modules", ".git"}

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
	// Recheck, when positive, schedules a full rebuild at this interval even
	// without filesystem events (content may change under a mount).
	Recheck time.Duration
	Build   build.Options
	// OnRebuild is called after every run, successful or not.
	OnRebuild func(*build.Result, error)
}

// Watcher rebuilds the site on changes. At most one rebuild runs at a time;
// changes arriving during a rebuild schedule exactly one follow-up run.
type Watcher struct {
	configPath string
	service    build.Service
	opts       Options

	fs        *fsnotify.Watcher
	rebuildCh chan struct{}

	mu      sync.Mutex
	timer   *time.Timer
	watched map[string]bool
	skip    []string
	runs    int
}

// New prepares a watcher for the site configured at configPath.
func New(configPath string, service build.Service, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		configPath: abs,
		service:    service,
		opts:       opts,
		fs:         fw,
		rebuildCh:  make(chan struct{}, 1),
		watched:    map[string]bool{},
	}, nil
}

// Runs returns the number of completed rebuilds.
func (w *Watcher) Runs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runs
}

// Run builds once, then watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.fs.Close(); err != nil {
			slog.Warn("Error closing file watcher", logfields.Error(err))
		}
	}()

	// Watch the directory containing the config file; editors replace files
	// on save, which drops a watch on the file itself.
	if err := w.fs.Add(filepath.Dir(w.configPath)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	var sched gocron.Scheduler
	if w.opts.Recheck > 0 {
		s, err := w.schedule()
		if err != nil {
			return err
		}
		sched = s
		defer func() {
			if err := sched.Shutdown(); err != nil {
				slog.Warn("Scheduler shutdown error", logfields.Error(err))
			}
		}()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(ctx)
	}()
	w.request()

	slog.Info("Watching site", logfields.Config(w.configPath), logfields.Duration(w.opts.Debounce))
	err := w.loop(ctx)

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	wg.Wait()
	return err
}

func (w *Watcher) schedule() (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(w.opts.Recheck),
		gocron.NewTask(func() {
			slog.Debug("Periodic recheck")
			w.request()
		}),
		gocron.WithName("periodic-recheck"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to schedule periodic recheck: %w", err)
	}
	s.Start()
	return s, nil
}

func (w *Watcher) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watcher")
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if w.ignored(ev.Name) {
		return
	}
	if ev.Op.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addTree(ev.Name)
		}
	}
	slog.Debug("Change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.trigger()
}

// ignored filters events that cannot affect the site: temp and hidden
// files, the generator output directories and the artifacts render writes.
func (w *Watcher) ignored(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".env") {
		return false
	}
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".tmp") {
		return true
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range w.skip {
		if name == p || strings.HasPrefix(name, p+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// trigger (re)starts the debounce timer.
func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, w.request)
}

// request asks the worker for a rebuild; requests made while one is queued
// collapse into it.
func (w *Watcher) request() {
	select {
	case w.rebuildCh <- struct{}{}:
	default:
	}
}

func (w *Watcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.rebuildCh:
			w.rebuild(ctx)
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context) {
	res, err := w.service.Run(ctx, build.Request{ConfigPath: w.configPath, Options: w.opts.Build})
	switch {
	case err != nil && ctx.Err() != nil:
		return
	case err != nil:
		slog.Warn("Rebuild failed; previous artifacts kept", logfields.Error(err))
	default:
		slog.Info("Rebuilt site", logfields.Duration(res.Duration))
	}
	if res != nil && res.Config != nil {
		w.track(res.Config)
	}
	w.mu.Lock()
	w.runs++
	w.mu.Unlock()
	if w.opts.OnRebuild != nil {
		w.opts.OnRebuild(res, err)
	}
}

// track watches the content tree of the loaded configuration and records
// the generator output directories to ignore. The content root can move
// when the configuration changes.
func (w *Watcher) track(cfg *config.SiteConfig) {
	content, err := filepath.Abs(cfg.ContentDir())
	if err != nil {
		return
	}
	var skip []string
	for _, d := range []string{cfg.OutDir, cfg.CacheDir, cfg.BuildDir} {
		if !filepath.IsAbs(d) {
			d = filepath.Join(content, d)
		}
		skip = append(skip, filepath.Clean(d))
	}
	gen := filepath.Join(content, ".vitepress")
	skip = append(skip,
		filepath.Join(gen, render.ConfigJSONFile),
		filepath.Join(gen, render.ConfigModuleFile),
		filepath.Join(gen, render.ManifestFile),
		filepath.Join(gen, cfg.Extension.Dir, render.ThemeModuleFile),
	)
	w.mu.Lock()
	w.skip = skip
	w.mu.Unlock()
	w.addTree(content)
}

func (w *Watcher) addTree(root string) {
	_ = filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if p != root && slices.Contains(ignoredDirs, d.Name()) {
			return filepath.SkipDir
		}
		w.mu.Lock()
		skipped := slices.ContainsFunc(w.skip, func(s string) bool { return p == s })
		seen := w.watched[p]
		w.mu.Unlock()
		if skipped {
			return filepath.SkipDir
		}
		if seen {
			return nil
		}
		if err := w.fs.Add(p); err != nil {
			slog.Warn("Watch add failed", logfields.Path(p), logfields.Error(err))
			return nil
		}
		w.mu.Lock()
		w.watched[p] = true
		w.mu.Unlock()
		return nil
	})
}
