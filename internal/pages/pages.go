// Package pages discovers the markdown content of a site.
package pages

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/frontmatter"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/markdown"
	"git.home.luguber.info/inful/docsite/internal/nav"
)

// Page is one markdown file of the content tree.
type Page struct {
	// File is the path relative to the source dir, slash separated.
	File string
	// Route is the canonical route ("/", "/platform/", "/vision").
	Route string
	// URL is the address the generator serves the page at.
	URL         string
	Title       string
	Fingerprint string
	LastUpdated time.Time
	Links       []markdown.Link
}

// Options controls discovery.
type Options struct {
	CleanURLs bool
	// LastUpdated looks up each page's last commit time, falling back to mtime.
	LastUpdated bool
}

// skipDirs are never descended into.
var skipDirs = []string{"node_modules", "public"}

// Discover walks srcDir and returns every markdown page sorted by file path.
func Discover(ctx context.Context, srcDir string, opts Options) ([]Page, error) {
	info, err := os.Stat(srcDir)
	if err != nil || !info.IsDir() {
		return nil, errors.NotFoundError("content directory not found").WithContext("path", srcDir).Build()
	}

	var history *gitHistory
	if opts.LastUpdated {
		history = openHistory(srcDir)
	}

	var pages []Page
	err = filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if p != srcDir && (strings.HasPrefix(name, ".") || slices.Contains(skipDirs, name)) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(name) != ".md" {
			return nil
		}
		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		page, err := readPage(p, filepath.ToSlash(rel), opts)
		if err != nil {
			return err
		}
		if opts.LastUpdated {
			page.LastUpdated = lastUpdated(history, p)
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.WrapError(err, errors.CategoryContent, "content discovery failed").
			WithContext("path", srcDir).Build()
	}

	slices.SortFunc(pages, func(a, b Page) int { return strings.Compare(a.File, b.File) })
	slog.Debug("Discovered pages", logfields.Path(srcDir), logfields.Count(len(pages)))
	return pages, nil
}

func readPage(abs, rel string, opts Options) (Page, error) {
	data, err := os.ReadFile(abs)
	if err != nil {
		return Page{}, err
	}
	doc, err := frontmatter.Parse(data)
	if err != nil {
		return Page{}, errors.WrapError(err, errors.CategoryContent, fmt.Sprintf("invalid frontmatter in %s", rel)).
			WithContext("file", rel).Build()
	}
	analysis := markdown.Analyze(doc.Body)

	title := doc.String("title")
	if title == "" {
		title = analysis.Title
	}
	if title == "" {
		title = nav.Label(strings.TrimSuffix(path.Base(rel), ".md"))
	}

	route := RouteFor(rel)
	return Page{
		File:        rel,
		Route:       route,
		URL:         URLFor(route, opts.CleanURLs),
		Title:       title,
		Fingerprint: mdfp.CalculateFingerprintFromParts(strings.TrimRight(string(doc.Raw), "\n"), string(doc.Body)),
		Links:       analysis.Links,
	}, nil
}

// RouteFor maps a content file to its canonical route.
func RouteFor(rel string) string {
	rel = strings.TrimSuffix(filepath.ToSlash(rel), ".md")
	switch {
	case rel == "index":
		return "/"
	case strings.HasSuffix(rel, "/index"):
		return "/" + strings.TrimSuffix(rel, "index")
	default:
		return "/" + rel
	}
}

// URLFor returns the served address of a route: clean URLs drop the .html suffix.
func URLFor(route string, cleanURLs bool) string {
	if cleanURLs || strings.HasSuffix(route, "/") {
		return route
	}
	return route + ".html"
}

// Index looks pages up by file and by link.
type Index struct {
	byFile map[string]Page
}

// NewIndex indexes pages by their file path.
func NewIndex(pages []Page) *Index {
	idx := &Index{byFile: make(map[string]Page, len(pages))}
	for _, p := range pages {
		idx.byFile[p.File] = p
	}
	return idx
}

// Lookup returns the page a site link resolves to.
func (i *Index) Lookup(link string) (Page, bool) {
	for _, f := range nav.Resolve(link) {
		if p, ok := i.byFile[f]; ok {
			return p, true
		}
	}
	return Page{}, false
}

// Has reports whether link resolves to an existing page.
func (i *Index) Has(link string) bool {
	_, ok := i.Lookup(link)
	return ok
}

// Len is the number of indexed pages.
func (i *Index) Len() int { return len(i.byFile) }

// Refs converts pages for sidebar generation.
func Refs(pages []Page) []nav.PageRef {
	out := make([]nav.PageRef, len(pages))
	for i, p := range pages {
		out[i] = nav.PageRef{Route: p.Route, Title: p.Title}
	}
	return out
}
