package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// HeadTag is an extra element injected into every page's <head>.
//
// In YAML it is written either as the generator's tuple form
//
//   - [link, {rel: stylesheet, href: /css/styles.css}]
//
// or as a mapping with tag/attrs/content keys.
type HeadTag struct {
	Tag     string            `yaml:"tag"`
	Attrs   map[string]string `yaml:"attrs,omitempty"`
	Content string            `yaml:"content,omitempty"`
}

// UnmarshalYAML accepts both the tuple and the mapping form.
func (h *HeadTag) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) < 1 || len(node.Content) > 3 {
			return fmt.Errorf("line %d: head tag tuple needs 1 to 3 elements, got %d", node.Line, len(node.Content))
		}
		var out HeadTag
		if err := node.Content[0].Decode(&out.Tag); err != nil {
			return fmt.Errorf("line %d: head tag name: %w", node.Line, err)
		}
		if len(node.Content) > 1 {
			if err := node.Content[1].Decode(&out.Attrs); err != nil {
				return fmt.Errorf("line %d: head tag attributes: %w", node.Line, err)
			}
		}
		if len(node.Content) > 2 {
			if err := node.Content[2].Decode(&out.Content); err != nil {
				return fmt.Errorf("line %d: head tag content: %w", node.Line, err)
			}
		}
		*h = out
		return nil
	case yaml.MappingNode:
		// node.Decode does not inherit KnownFields from the outer decoder.
		for i := 0; i+1 < len(node.Content); i += 2 {
			switch k := node.Content[i]; k.Value {
			case "tag", "attrs", "content":
			default:
				return fmt.Errorf("line %d: field %s not found in head tag", k.Line, k.Value)
			}
		}
		type plain HeadTag
		var out plain
		if err := node.Decode(&out); err != nil {
			return err
		}
		*h = HeadTag(out)
		return nil
	default:
		return fmt.Errorf("line %d: head tag must be a list or a mapping", node.Line)
	}
}

// MarshalYAML writes the compact tuple form.
func (h HeadTag) MarshalYAML() (any, error) {
	return h.tuple(), nil
}

// MarshalJSON writes the generator's [tag, attrs, content?] tuple.
func (h HeadTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.tuple())
}

func (h HeadTag) tuple() []any {
	attrs := h.Attrs
	if attrs == nil {
		attrs = map[string]string{}
	}
	out := []any{h.Tag, attrs}
	if h.Content != "" {
		out = append(out, h.Content)
	}
	return out
}
