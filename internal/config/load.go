package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// envFiles are loaded from the config file's directory, first match wins per
// variable. Variables already set in the process environment are never overridden.
var envFiles = []string{".env", ".env.local"}

// envRefPattern matches ${NAME} references. Bare $NAME is left alone so site
// text such as "$5" survives loading.
var envRefPattern = regexp.MustCompile(`\$\{[A-Za-z_][A-Za-z0-9_]*\}`)

func expandEnv(s string) string {
	return envRefPattern.ReplaceAllStringFunc(s, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}

// Load reads, normalizes, defaults and validates a site configuration file.
func Load(configPath string) (*SiteConfig, error) {
	if err := loadEnvFiles(filepath.Dir(configPath)); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("configuration file not found").
				WithContext("path", configPath).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if c, ok := errors.AsClassified(err); ok {
			return nil, c.WithContext("path", configPath)
		}
		return nil, err
	}
	cfg.Root = filepath.Dir(configPath)
	return cfg, nil
}

// Parse decodes configuration bytes (after ${VAR} expansion) and runs the
// normalize, default and validate passes. Unknown keys are rejected.
func Parse(data []byte) (*SiteConfig, error) {
	expanded := expandEnv(string(data))

	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)

	var cfg SiteConfig
	if err := dec.Decode(&cfg); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.ConfigError("configuration file is empty").Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration").
			Fatal().UserAction().Build()
	}

	res, err := Normalize(&cfg)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "configuration normalization failed").
			Fatal().UserAction().Build()
	}
	for _, w := range res.Warnings {
		slog.Warn("config normalization", slog.String("detail", w))
	}

	applyDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFiles(dir string) error {
	for _, name := range envFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "failed to load environment file").
				WithContext("path", p).Build()
		}
		slog.Debug("Loaded environment variables", logfields.Path(p))
	}
	return nil
}

// Variant is one independently deployable site configuration.
type Variant struct {
	Name   string
	Path   string
	Config *SiteConfig
}

// LoadVariants loads every *.yaml / *.yml file in dir as its own site. Each
// variant is validated alone; there is no cross-variant invariant. Valid
// variants are returned even when others fail, together with an error
// describing every failed variant.
func LoadVariants(dir string) ([]Variant, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("variants directory not found").WithContext("path", dir).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read variants directory").
			WithContext("path", dir).Build()
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(paths)
	if len(paths) == 0 {
		return nil, errors.NotFoundError("no site variants found").WithContext("path", dir).Build()
	}

	var (
		variants []Variant
		failures []string
	)
	for _, p := range paths {
		name := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		cfg, err := Load(p)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		variants = append(variants, Variant{Name: name, Path: p, Config: cfg})
	}
	if len(failures) > 0 {
		return variants, errors.ValidationError(fmt.Sprintf("%d of %d site variants are invalid", len(failures), len(paths))).
			WithContext("path", dir).
			WithDetails(failures...).
			Build()
	}
	return variants, nil
}

// Init writes the default site configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.NewError(errors.CategoryAlreadyExists, "configuration file already exists (use --force to overwrite)").
			UserAction().WithContext("path", configPath).Build()
	}

	data, err := Marshal(Default())
	if err != nil {
		return err
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create config directory").
				WithContext("path", dir).Build()
		}
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).Build()
	}
	return nil
}

// Marshal serializes a configuration as YAML with two-space indentation.
func Marshal(cfg *SiteConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to marshal configuration").Build()
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to marshal configuration").Build()
	}
	return buf.Bytes(), nil
}
