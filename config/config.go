package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/editorbind/engine"
	"github.com/wippyai/editorbind/errors"
)

// DefaultLoadDelay is the simulated engine load time used when a file does
// not set one.
const DefaultLoadDelay = 300 * time.Millisecond

// Config is a validated host configuration.
type Config struct {
	Theme     string
	LogLevel  zapcore.Level
	LoadDelay time.Duration
	Models    []Model
}

// Model describes one editor pane and the model it opens.
type Model struct {
	Name      string
	Path      string
	Language  string
	Value     string
	KeepAlive bool
}

type fileSchema struct {
	Theme    *string       `hcl:"theme,optional"`
	LogLevel *string       `hcl:"log_level,optional"`
	Loader   *loaderSchema `hcl:"loader,block"`
	Models   []modelSchema `hcl:"model,block"`
}

type loaderSchema struct {
	Delay *string `hcl:"delay,optional"`
}

type modelSchema struct {
	Name      string  `hcl:"name,label"`
	Path      *string `hcl:"path,optional"`
	Language  *string `hcl:"language,optional"`
	Value     *string `hcl:"value,optional"`
	KeepAlive *bool   `hcl:"keep_alive,optional"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	return &Config{
		Theme:     engine.ThemeVS,
		LogLevel:  zapcore.InfoLevel,
		LoadDelay: DefaultLoadDelay,
	}
}

// Load reads and parses the HCL file at path.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		kind := errors.KindInvalidInput
		if stderrors.Is(err, fs.ErrNotExist) {
			kind = errors.KindNotFound
		}
		return nil, errors.New(errors.PhaseConfig, kind).
			Path(path).
			Cause(err).
			Detail("read config").
			Build()
	}
	return Parse(src, path)
}

// Parse decodes HCL source. filename is used in diagnostics only. Settings
// missing from src keep their Default values.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.ParseFailed(filename, diags)
	}

	var raw fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, errors.ParseFailed(filename, diags)
	}

	cfg := Default()
	if raw.Theme != nil {
		cfg.Theme = *raw.Theme
	}
	if raw.LogLevel != nil {
		lvl, err := zapcore.ParseLevel(*raw.LogLevel)
		if err != nil {
			return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Path("log_level").
				Value(*raw.LogLevel).
				Cause(err).
				Build()
		}
		cfg.LogLevel = lvl
	}
	if raw.Loader != nil && raw.Loader.Delay != nil {
		d, err := time.ParseDuration(*raw.Loader.Delay)
		if err != nil {
			return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Path("loader", "delay").
				Value(*raw.Loader.Delay).
				Cause(err).
				Build()
		}
		cfg.LoadDelay = d
	}
	for _, m := range raw.Models {
		cfg.Models = append(cfg.Models, Model{
			Name:      m.Name,
			Path:      deref(m.Path),
			Language:  deref(m.Language),
			Value:     deref(m.Value),
			KeepAlive: m.KeepAlive != nil && *m.KeepAlive,
		})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values no host can use.
func (c *Config) Validate() error {
	if c.Theme == "" {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("theme").
			Detail("theme cannot be empty").
			Build()
	}
	if c.LoadDelay < 0 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("loader", "delay").
			Value(c.LoadDelay).
			Detail("delay cannot be negative").
			Build()
	}

	names := make(map[string]struct{}, len(c.Models))
	paths := make(map[string]string, len(c.Models))
	for _, m := range c.Models {
		if _, dup := names[m.Name]; dup {
			return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Path("model", m.Name).
				Detail("duplicate model name").
				Build()
		}
		names[m.Name] = struct{}{}

		if m.Path == "" {
			continue
		}
		if other, dup := paths[m.Path]; dup {
			return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Path("model", m.Name, "path").
				Value(m.Path).
				Detail("path already used by model %q", other).
				Build()
		}
		paths[m.Path] = m.Name
	}
	return nil
}

// Model returns the model named name.
func (c *Config) Model(name string) (Model, error) {
	for _, m := range c.Models {
		if m.Name == name {
			return m, nil
		}
	}
	return Model{}, errors.NotFound(errors.PhaseConfig, "model", name)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
