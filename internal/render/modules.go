package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"git.home.luguber.info/inful/docsite/internal/theme"
)

const generatedBanner = "// Generated by docsite. Do not edit; change the site configuration instead."

var configModule = template.Must(template.New("config.mts").Option("missingkey=error").Parse(
	generatedBanner + `
import { defineConfig } from 'vitepress'
{{- if .Mermaid }}
import { withMermaid } from 'vitepress-plugin-mermaid'
{{- end }}
import site from './config.json'

{{ if .Mermaid -}}
export default withMermaid(defineConfig(site))
{{- else -}}
export default defineConfig(site)
{{- end }}
`))

var themeModule = template.Must(template.New("index.ts").Option("missingkey=error").Parse(
	generatedBanner + `
import type { Theme } from 'vitepress'
import BaseTheme from '{{ .ImportPath }}'
{{- if .Stylesheet }}
import '{{ .Stylesheet }}'
{{- end }}
{{- range .Components }}
import {{ .Name }} from '{{ .Source }}'
{{- end }}

export default {
  extends: BaseTheme,
  enhanceApp({ app }) {
{{- range .Components }}
    app.component('{{ .Name }}', {{ .Name }})
{{- end }}
  }
} satisfies Theme
`))

// ConfigModule renders the generator entry module that loads config.json.
func ConfigModule(withMermaid bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := configModule.Execute(&buf, map[string]any{"Mermaid": withMermaid}); err != nil {
		return nil, fmt.Errorf("render config module: %w", err)
	}
	return buf.Bytes(), nil
}

// ThemeModule renders the theme entry: the base theme extended with an
// enhanceApp hook registering every component bound in app, in name order.
func ThemeModule(app *theme.App, base theme.Features) ([]byte, error) {
	var components []theme.Component
	for _, name := range app.Names() {
		def, _ := app.Lookup(name)
		src := string(def)
		if strings.ContainsAny(src, "'\n\\") {
			return nil, fmt.Errorf("component %s: source %q cannot be quoted", name, src)
		}
		components = append(components, theme.Component{Name: name, Source: src})
	}
	var buf bytes.Buffer
	err := themeModule.Execute(&buf, map[string]any{
		"ImportPath": base.ImportPath,
		"Stylesheet": base.Stylesheet,
		"Components": components,
	})
	if err != nil {
		return nil, fmt.Errorf("render theme module: %w", err)
	}
	return buf.Bytes(), nil
}
