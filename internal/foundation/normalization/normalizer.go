// Package normalization maps loosely written option values onto canonical enums.
package normalization

import (
	"fmt"
	"slices"
	"strings"
)

// Normalizer provides type-safe string-to-enum normalization.
type Normalizer[T comparable] struct {
	name         string
	validValues  map[string]T
	defaultValue T
	validKeys    []string
}

// NewNormalizer creates a normalizer for the enum called name. Keys are folded
// with Fold so "Loose", " loose " and "LOOSE" all resolve to the same value.
// Several keys may map to one value to accept aliases.
func NewNormalizer[T comparable](name string, values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	keys := make([]string, 0, len(values))
	for k, v := range values {
		fk := Fold(k)
		normalized[fk] = v
		keys = append(keys, fk)
	}
	slices.Sort(keys)
	return &Normalizer[T]{
		name:         name,
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    keys,
	}
}

// Normalize returns the canonical value, or the default when raw is empty or unknown.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.validValues[Fold(raw)]; ok {
		return v
	}
	return n.defaultValue
}

// Parse returns the canonical value. Empty input yields the default; unknown
// input is an error naming the valid options.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	folded := Fold(raw)
	if folded == "" {
		return n.defaultValue, nil
	}
	if v, ok := n.validValues[folded]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %s", n.name, raw, strings.Join(n.validKeys, ", "))
}

// Valid reports whether value is one of the canonical values.
func (n *Normalizer[T]) Valid(value T) bool {
	for _, v := range n.validValues {
		if v == value {
			return true
		}
	}
	return false
}

// ValidKeys returns all accepted (folded) spellings, sorted.
func (n *Normalizer[T]) ValidKeys() []string {
	return slices.Clone(n.validKeys)
}

// Fold lower-cases, trims and maps '_' and ' ' to '-'.
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "-", " ", "-").Replace(s)
}
