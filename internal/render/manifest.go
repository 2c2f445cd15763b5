package render

import (
	"bytes"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/pages"
)

// ManifestFile is written next to the other generator artifacts.
const ManifestFile = "docsite-manifest.yaml"

// Manifest records what one render produced.
type Manifest struct {
	BuildID           string            `yaml:"build_id"`
	GeneratedAt       time.Time         `yaml:"generated_at"`
	ConfigFingerprint string            `yaml:"config_fingerprint"`
	Theme             string            `yaml:"theme"`
	Components        []string          `yaml:"components,omitempty"`
	Artifacts         map[string]string `yaml:"artifacts"`
	Pages             []ManifestPage    `yaml:"pages,omitempty"`
}

// ManifestPage is the manifest entry of one content page.
type ManifestPage struct {
	File        string    `yaml:"file"`
	Route       string    `yaml:"route"`
	Title       string    `yaml:"title"`
	Fingerprint string    `yaml:"fingerprint"`
	LastUpdated time.Time `yaml:"last_updated,omitempty"`
}

func manifestPages(list []pages.Page) []ManifestPage {
	if len(list) == 0 {
		return nil
	}
	out := make([]ManifestPage, len(list))
	for i, p := range list {
		out[i] = ManifestPage{File: p.File, Route: p.Route, Title: p.Title, Fingerprint: p.Fingerprint, LastUpdated: p.LastUpdated}
	}
	return out
}

// sameContent reports whether two manifests describe the same output,
// ignoring the build id and timestamp.
func (m *Manifest) sameContent(other *Manifest) bool {
	if other == nil {
		return false
	}
	a, b := *m, *other
	a.BuildID, b.BuildID = "", ""
	a.GeneratedAt, b.GeneratedAt = time.Time{}, time.Time{}
	x, err1 := yaml.Marshal(a)
	y, err2 := yaml.Marshal(b)
	return err1 == nil && err2 == nil && bytes.Equal(x, y)
}

// ReadManifest loads a manifest written by a previous render.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
