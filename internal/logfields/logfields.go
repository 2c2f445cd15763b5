package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyConfig     = "config"
	KeyVariant    = "variant"
	KeyPath       = "path"
	KeyRoute      = "route"
	KeyLink       = "link"
	KeyComponent  = "component"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyBuildID    = "build_id"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Config(p string) slog.Attr       { return slog.String(KeyConfig, p) }
func Variant(name string) slog.Attr   { return slog.String(KeyVariant, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Route(r string) slog.Attr        { return slog.String(KeyRoute, r) }
func Link(l string) slog.Attr         { return slog.String(KeyLink, l) }
func Component(name string) slog.Attr { return slog.String(KeyComponent, name) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
