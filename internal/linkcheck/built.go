package linkcheck

import (
	"context"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// CheckBuilt scans the generator's HTML output and verifies that every
// internal anchor points at a file that was built. base is the site base path.
func CheckBuilt(ctx context.Context, outDir, base string) (*Report, error) {
	r := &Report{}
	err := filepath.WalkDir(outDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != ".html" {
			return nil
		}
		rel, err := filepath.Rel(outDir, p)
		if err != nil {
			return err
		}
		hrefs, err := anchors(p)
		if err != nil {
			return err
		}
		for _, href := range hrefs {
			target, ok := internalTarget(href, base)
			if !ok {
				continue
			}
			r.Checked++
			if !builtFileExists(outDir, target) {
				r.add(filepath.ToSlash(rel), "", href, ReasonMissingFile)
			}
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to scan build output").
			WithContext("path", outDir).Build()
	}
	return r, nil
}

// anchors returns the href of every <a> element in an HTML file.
func anchors(file string) ([]string, error) {
	f, err := os.Open(filepath.Clean(file))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, err
	}
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			for _, a := range n.Attr {
				if a.Key == "href" && a.Val != "" {
					out = append(out, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out, nil
}

// internalTarget returns the output-relative path of an internal site link.
func internalTarget(href, base string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	if !strings.HasPrefix(u.Path, "/") {
		// relative links in generated output are assets or in-page fragments
		return "", false
	}
	p := u.Path
	if base != "" && base != "/" {
		if !strings.HasPrefix(p, base) {
			return "", false
		}
		p = "/" + strings.TrimPrefix(p, base)
	}
	return p, true
}

func builtFileExists(outDir, target string) bool {
	rel := strings.TrimPrefix(target, "/")
	candidates := []string{rel}
	switch {
	case rel == "" || strings.HasSuffix(rel, "/"):
		candidates = []string{rel + "index.html"}
	case path.Ext(rel) == "":
		candidates = append(candidates, rel+".html", rel+"/index.html")
	}
	for _, c := range candidates {
		if info, err := os.Stat(filepath.Join(outDir, filepath.FromSlash(c))); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}
