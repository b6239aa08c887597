// Package config resolves the tunable allocator settings from defaults, an
// optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultFixedBlockPageSizeKiB is used when nothing overrides it.
	DefaultFixedBlockPageSizeKiB = 128

	// EnvFixedBlockPageSize overrides the file value when set.
	EnvFixedBlockPageSize = "PAGEKIT_FIXED_BLOCK_PAGE_SIZE_KIB"
)

// ErrInvalid indicates a configuration value failed validation.
var ErrInvalid = errors.New("config: invalid value")

// Config holds the allocator tunables. It satisfies geometry.Provider.
type Config struct {
	FixedBlockPageKiB int `yaml:"fixed_block_page_size_kib"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{FixedBlockPageKiB: DefaultFixedBlockPageSizeKiB}
}

// Static returns a configuration with a fixed page size and no other source.
func Static(kib int) *Config {
	return &Config{FixedBlockPageKiB: kib}
}

// FixedBlockPageSizeKiB returns the fixed-block page size in KiB.
func (c *Config) FixedBlockPageSizeKiB() int {
	return c.FixedBlockPageKiB
}

// Load builds the configuration: defaults, then the YAML file at path (a
// missing file is not an error, an empty path skips it), then the
// environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if f, err := os.Open(path); err == nil {
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
				return nil, fmt.Errorf("config: decode %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: open %s: %w", path, err)
		}
	}

	if v, ok := os.LookupEnv(EnvFixedBlockPageSize); ok {
		kib, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: %s=%q: %w", EnvFixedBlockPageSize, v, ErrInvalid)
		}
		cfg.FixedBlockPageKiB = kib
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	if c.FixedBlockPageKiB <= 0 {
		return fmt.Errorf("config: fixed_block_page_size_kib %d must be positive: %w",
			c.FixedBlockPageKiB, ErrInvalid)
	}
	return nil
}
