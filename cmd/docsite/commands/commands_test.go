package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

var sitePages = []string{
	"index.md", "vision.md", "market.md",
	"platform/index.md", "platform/features.md", "platform/use-cases.md", "platform/benefits.md",
	"technology/index.md", "technology/architecture.md", "technology/ai-systems.md", "technology/security.md",
	"business/index.md", "business/model.md", "business/tokenomics.md", "business/roadmap.md",
}

// run parses args like the binary does and executes the selected command.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("docsite"), kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	var out bytes.Buffer
	err = kctx.Run(&Global{Out: &out}, &cli)
	return out.String(), err
}

// newSite writes the default configuration plus its content tree.
func newSite(t *testing.T, skip ...string) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docsite.yaml")
	_, err := run(t, "-c", cfgPath, "init")
	require.NoError(t, err)

	skipped := map[string]bool{}
	for _, s := range skip {
		skipped[s] = true
	}
	for _, rel := range sitePages {
		if skipped[rel] {
			continue
		}
		p := filepath.Join(dir, "src", filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte("# Page "+rel+"\n"), 0o600))
	}
	comp := filepath.Join(dir, "src", ".vitepress", "components")
	require.NoError(t, os.MkdirAll(comp, 0o750))
	for _, name := range []string{"ContractDiagram", "FullscreenDiagram"} {
		require.NoError(t, os.WriteFile(filepath.Join(comp, name+".vue"), []byte("<template><div/></template>\n"), 0o600))
	}
	return cfgPath
}

func TestInit(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "docsite.yaml")
	out, err := run(t, "-c", cfgPath, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized successfully")
	assert.FileExists(t, cfgPath)

	_, err = run(t, "-c", cfgPath, "init")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryAlreadyExists))

	_, err = run(t, "-c", cfgPath, "init", "--force")
	require.NoError(t, err)
}

func TestInit_OutputDir(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "init", "-o", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "docsite.yaml"))
}

func TestValidate(t *testing.T) {
	cfgPath := newSite(t)
	out, err := run(t, "-c", cfgPath, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "configuration is valid")
}

func TestValidate_Variants(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "-c", filepath.Join(dir, "main.yaml"), "init")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "draft.yaml"), []byte("title: Draft\nbase: docs\n"), 0o600))

	out, err := run(t, "validate", "--variants", dir)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.Contains(t, out, "valid    main")
	assert.Contains(t, err.Error(), "1 of 2 site variants are invalid")
}

func TestNav(t *testing.T) {
	cfgPath := newSite(t)
	out, err := run(t, "-c", cfgPath, "nav")
	require.NoError(t, err)
	assert.Contains(t, out, "nav\n  Home -> /\n")
	assert.Contains(t, out, "    Features -> /platform/features\n")

	out, err = run(t, "-c", cfgPath, "nav", "--route", "/platform/features")
	require.NoError(t, err)
	assert.Contains(t, out, "sidebar /\n")
	assert.NotContains(t, out, "Home -> /")
}

func TestNav_Generate(t *testing.T) {
	cfgPath := newSite(t)
	out, err := run(t, "-c", cfgPath, "nav", "--generate")
	require.NoError(t, err)
	assert.Contains(t, out, "sidebar:")
	assert.Contains(t, out, "link: /platform/features")
}

func TestPages(t *testing.T) {
	cfgPath := newSite(t)
	out, err := run(t, "-c", cfgPath, "pages")
	require.NoError(t, err)
	assert.Contains(t, out, "ROUTE")
	assert.Contains(t, out, "Page platform/features.md")
}

func TestCheck(t *testing.T) {
	out, err := run(t, "-c", newSite(t), "check", "--pages")
	require.NoError(t, err)
	assert.Contains(t, out, "16 links checked")

	out, err = run(t, "-c", newSite(t, "business/roadmap.md"), "check")
	require.Error(t, err)
	assert.Contains(t, out, `sidebar "/" > Business > Roadmap: "Roadmap" -> /business/roadmap (no page for link)`)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestRender(t *testing.T) {
	cfgPath := newSite(t)
	out, err := run(t, "-c", cfgPath, "render")
	require.NoError(t, err)
	assert.Contains(t, out, "config.mts")
	assert.FileExists(t, filepath.Join(filepath.Dir(cfgPath), "src", ".vitepress", "theme", "index.ts"))

	out, err = run(t, "-c", cfgPath, "render")
	require.NoError(t, err)
	assert.Contains(t, out, "artifacts up to date")

	out, err = run(t, "-c", cfgPath, "render", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "dry run: 15 pages")
}

func TestRender_StrictBrokenLink(t *testing.T) {
	cfgPath := newSite(t, "vision.md")
	_, err := run(t, "-c", cfgPath, "render", "--strict")
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(cfgPath), "src", ".vitepress", "config.json"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false, "json").Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	newLogger(&buf, false, "text").Debug("hidden")
	assert.Empty(t, buf.String())
}
