package markdown

import "strings"

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is a destination found in a page body.
type Link struct {
	Kind        LinkKind
	Destination string
}

// IsPageLink reports whether the link targets another page of the site, as
// opposed to an external URL, an in-page anchor or an image asset.
func (l Link) IsPageLink() bool {
	d := l.Destination
	switch {
	case l.Kind == LinkKindImage, l.Kind == LinkKindAuto:
		return false
	case d == "", strings.HasPrefix(d, "#"):
		return false
	case strings.Contains(d, "://"), strings.HasPrefix(d, "mailto:"), strings.HasPrefix(d, "//"):
		return false
	}
	return true
}
