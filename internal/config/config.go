// Package config loads the YAML configuration of the ecdemo command: log level, randomness seed, and custom curves
// that extend the built-in registry.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/smartcontractkit/toyecc/internal/curve"
	"gopkg.in/yaml.v3"
)

// Curve describes a custom curve. Integers are given as strings, in decimal or 0x-prefixed hex. P is empty for a
// curve over the reals; Gx, Gy and N are optional.
type Curve struct {
	Name string `yaml:"name"`
	A    string `yaml:"a"`
	B    string `yaml:"b"`
	P    string `yaml:"p,omitempty"`
	Gx   string `yaml:"gx,omitempty"`
	Gy   string `yaml:"gy,omitempty"`
	N    string `yaml:"n,omitempty"`
}

type Config struct {
	LogLevel string  `yaml:"log_level"`
	Seed     string  `yaml:"seed,omitempty"`
	Curves   []Curve `yaml:"curves,omitempty"`
}

func Default() *Config {
	return &Config{LogLevel: logrus.InfoLevel.String()}
}

// Load reads the configuration file at path. Fields missing in the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML configuration. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks the log level, and that every custom curve has a unique name and valid parameters.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	seen := map[string]bool{}
	for i, cc := range c.Curves {
		if cc.Name == "" {
			return fmt.Errorf("curve #%d: missing name", i)
		}
		if seen[cc.Name] {
			return fmt.Errorf("curve %q: duplicate name", cc.Name)
		}
		seen[cc.Name] = true
		if _, err := cc.Build(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}

// Build constructs the named curve. Singular curves are accepted; opts may add a logger to report them.
func (cc Curve) Build(opts ...curve.Option) (*curve.Named, error) {
	return curve.NewNamed(cc.Name, cc.A, cc.B, cc.P, cc.Gx, cc.Gy, cc.N, opts...)
}

// Registry returns the built-in curves followed by the custom curves. A custom curve replaces a built-in curve of
// the same name.
func (c *Config) Registry(opts ...curve.Option) ([]*curve.Named, error) {
	registry := slices.Clone(curve.SupportedCurves)
	for _, cc := range c.Curves {
		named, err := cc.Build(opts...)
		if err != nil {
			return nil, err
		}
		if i := slices.IndexFunc(registry, func(n *curve.Named) bool { return n.Name() == cc.Name }); i >= 0 {
			registry[i] = named
		} else {
			registry = append(registry, named)
		}
	}
	return registry, nil
}

// Lookup returns the curve with the given name from Registry.
func (c *Config) Lookup(name string, opts ...curve.Option) (*curve.Named, error) {
	registry, err := c.Registry(opts...)
	if err != nil {
		return nil, err
	}
	for _, named := range registry {
		if named.Name() == name {
			return named, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", curve.ErrUnknownCurve, name)
}
