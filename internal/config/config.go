// Package config holds the generator configuration: search shape, override
// policy and output layout.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/skdltmxn/classgen/hierarchy"
	"github.com/skdltmxn/classgen/internal/emit"
)

// Config is the complete generator configuration.
type Config struct {
	// Classes is the number of classes in a full hierarchy.
	Classes int `yaml:"classes" validate:"min=1,max=10"`
	// MaxParents bounds the number of direct bases per class.
	MaxParents int `yaml:"max_parents" validate:"min=0"`
	// Diamond allows an ancestor to be reached through several direct bases.
	Diamond bool `yaml:"diamond"`
	// Override is one of "none", "all" or "random".
	Override string `yaml:"override" validate:"oneof=none all random"`
	// RandomVariants is the number of programs written per hierarchy when
	// Override is "random".
	RandomVariants int `yaml:"random_variants" validate:"min=1"`
	// Seed makes random overrides reproducible.
	Seed uint64 `yaml:"seed"`
	// Workers bounds concurrent program writes; 0 means one per CPU.
	Workers int `yaml:"workers" validate:"min=0"`

	OutputDir  string `yaml:"output_dir" validate:"required"`
	FilePrefix string `yaml:"file_prefix"`
	FileExt    string `yaml:"file_ext"`
}

// Default returns the stock configuration: five classes with up to three
// direct bases each, diamonds allowed, no overrides.
func Default() Config {
	return Config{
		Classes:        5,
		MaxParents:     3,
		Diamond:        true,
		Override:       "none",
		RandomVariants: 10,
		OutputDir:      "autogen-sources",
		FilePrefix:     "source-",
		FileExt:        ".cpp",
	}
}

// Load builds a configuration with Layer and validates the result.
func Load(path string) (Config, error) {
	cfg, err := Layer(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Layer builds a configuration from defaults, the YAML file at path (if
// path is not empty) and CLASSGEN_* environment variables, in that order.
// The result is not validated, so callers can overlay further settings
// first.
func Layer(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		if err := Decode(bytes.NewReader(data), &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}

	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode overlays YAML from r onto cfg. Unknown fields are rejected.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides fields from CLASSGEN_* variables found by lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	ints := []struct {
		name  string
		field string
		dst   *int
	}{
		{"CLASSGEN_CLASSES", "classes", &cfg.Classes},
		{"CLASSGEN_MAX_PARENTS", "max_parents", &cfg.MaxParents},
		{"CLASSGEN_RANDOM_VARIANTS", "random_variants", &cfg.RandomVariants},
		{"CLASSGEN_WORKERS", "workers", &cfg.Workers},
	}
	for _, e := range ints {
		if v, ok := lookup(e.name); ok {
			i, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return &ConfigError{Field: e.field, Message: "bad " + e.name, Err: err}
			}
			*e.dst = i
		}
	}

	if v, ok := lookup("CLASSGEN_DIAMOND"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return &ConfigError{Field: "diamond", Message: "bad CLASSGEN_DIAMOND", Err: err}
		}
		cfg.Diamond = b
	}
	if v, ok := lookup("CLASSGEN_SEED"); ok {
		s, err := strconv.ParseUint(strings.TrimSpace(v), 0, 64)
		if err != nil {
			return &ConfigError{Field: "seed", Message: "bad CLASSGEN_SEED", Err: err}
		}
		cfg.Seed = s
	}
	if v, ok := lookup("CLASSGEN_OVERRIDE"); ok {
		cfg.Override = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup("CLASSGEN_OUTPUT_DIR"); ok {
		cfg.OutputDir = v
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields the way they are spelled in the YAML file.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field ranges and contradictions between fields.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ConfigError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed %q constraint (value %v)", describeTag(fe), fe.Value()),
			}
		}
		return &ConfigError{Field: "config", Message: "validation failed", Err: err}
	}

	if c.Diamond && c.Override == "random" {
		return &ConfigError{Field: "override", Message: "random requires diamond to be disabled", Err: ErrDiamondRandomOverride}
	}
	return nil
}

func describeTag(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// SearchOptions returns the hierarchy search options.
func (c Config) SearchOptions() hierarchy.Options {
	return hierarchy.Options{
		Classes:    c.Classes,
		MaxParents: c.MaxParents,
		Diamond:    c.Diamond,
	}
}

// OverrideMode returns the parsed override mode. Validate rejects anything
// it cannot parse.
func (c Config) OverrideMode() emit.OverrideMode {
	mode, err := emit.ParseOverrideMode(c.Override)
	if err != nil {
		return emit.OverrideNone
	}
	return mode
}

// Concurrency returns the number of concurrent program writes.
func (c Config) Concurrency() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Variants returns how many programs are written per hierarchy.
func (c Config) Variants() int {
	if c.OverrideMode() == emit.OverrideRandom {
		return c.RandomVariants
	}
	return 1
}
