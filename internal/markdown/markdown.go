// Package markdown analyzes page bodies with goldmark. It never renders;
// the documentation generator owns rendering.
package markdown

import (
	"bytes"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Analysis is what docsite needs to know about one page body.
type Analysis struct {
	Title string // text of the first level-1 heading, "" when absent
	Links []Link
}

var md = goldmark.New()

// Analyze parses a markdown body (frontmatter already removed).
func Analyze(body []byte) Analysis {
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	var a Analysis
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Heading:
			if node.Level == 1 && a.Title == "" {
				a.Title = strings.TrimSpace(plainText(node, body))
			}
		case *gmast.AutoLink:
			a.Links = append(a.Links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			a.Links = append(a.Links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			a.Links = append(a.Links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions live in the parse context, not in the AST.
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		a.Links = append(a.Links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}
	return a
}

// ExtractLinks returns the link-like constructs of a markdown body.
func ExtractLinks(body []byte) []Link {
	return Analyze(body).Links
}

// plainText concatenates the text segments below n.
func plainText(n gmast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return buf.String()
}
