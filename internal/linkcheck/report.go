// Package linkcheck verifies that navigation, sidebar and page links resolve
// to pages that exist.
package linkcheck

import (
	"fmt"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Reason tells why a link was reported.
type Reason string

const (
	ReasonMissingPage    Reason = "no page for link"
	ReasonDuplicateLabel Reason = "duplicate label"
	ReasonMissingFile    Reason = "no file in build output"
)

// Issue is one problem found by a check.
type Issue struct {
	Source string // where the link was declared
	Label  string
	Link   string
	Reason Reason
}

func (i Issue) String() string {
	if i.Label == "" {
		return fmt.Sprintf("%s: %s (%s)", i.Source, i.Link, i.Reason)
	}
	return fmt.Sprintf("%s: %q -> %s (%s)", i.Source, i.Label, i.Link, i.Reason)
}

// Report collects issues from one or more checks.
type Report struct {
	Checked int
	Issues  []Issue
}

// OK reports whether no issue was found.
func (r *Report) OK() bool { return len(r.Issues) == 0 }

// Merge appends another report's results.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Checked += other.Checked
	r.Issues = append(r.Issues, other.Issues...)
}

func (r *Report) add(source, label, link string, reason Reason) {
	r.Issues = append(r.Issues, Issue{Source: source, Label: label, Link: link, Reason: reason})
}

// Err returns a classified validation error listing every issue, or nil.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	lines := make([]string, len(r.Issues))
	for i, is := range r.Issues {
		lines[i] = is.String()
	}
	slices.Sort(lines)
	noun := "links"
	if len(lines) == 1 {
		noun = "link"
	}
	return errors.ValidationError(fmt.Sprintf("%d broken %s", len(lines), noun)).
		WithContext("checked", r.Checked).
		WithDetails(lines...).
		Build()
}

// Summary is a one-line result for logs.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d links checked", r.Checked)
	if !r.OK() {
		fmt.Fprintf(&b, ", %d issues", len(r.Issues))
	}
	return b.String()
}
