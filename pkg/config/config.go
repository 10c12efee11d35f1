// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/apifix/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultTarget is the file fixed when no config file is given
	DefaultTarget = "src/api/apiService.js"

	// DefaultMessage is printed after a successful default run
	DefaultMessage = "✅ Fixed all API paths - removed /api/ prefix from endpoints"
)

// ErrInvalidConfig is returned when a config fails validation
var ErrInvalidConfig = errors.Base("invalid config")

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents one apifix run
type Config struct {
	Targets      []string `json:"targets" yaml:"targets" hcl:"targets"`                                             // Files or glob patterns to fix
	Receiver     string   `json:"receiver,omitempty" yaml:"receiver,omitempty" hcl:"receiver,optional"`             // Object the HTTP wrapper is called on
	Verbs        []string `json:"verbs,omitempty" yaml:"verbs,omitempty" hcl:"verbs,optional"`                      // Wrapper methods to rewrite
	Prefix       string   `json:"prefix,omitempty" yaml:"prefix,omitempty" hcl:"prefix,optional"`                   // Path prefix to strip
	Message      string   `json:"message,omitempty" yaml:"message,omitempty" hcl:"message,optional"`                // Printed after a successful fix
	ReportFiles  bool     `json:"report_files,omitempty" yaml:"report_files,omitempty" hcl:"report_files,optional"` // Print one line per target
	SkipMissing  bool     `json:"skip_missing,omitempty" yaml:"skip_missing,omitempty" hcl:"skip_missing,optional"` // Report missing targets instead of failing
	RequireMatch bool     `json:"require_match,omitempty" yaml:"require_match,omitempty" hcl:"require_match,optional"`
	Async        bool     `json:"async,omitempty" yaml:"async,omitempty" hcl:"async,optional"`

	// BaseDir is the directory relative targets are resolved against
	BaseDir string `json:"-" yaml:"-"`
}

// Default returns the config for a run without a config file: fix
// src/api/apiService.js in the working directory.
func Default() *Config {
	cfg := &Config{
		Targets: []string{DefaultTarget},
		BaseDir: ".",
	}
	cfg.ApplyDefaults()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.BaseDir = filepath.Dir(path)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Str("config", cfg.String()).Msg("loaded configuration")
	return cfg, nil
}

// ApplyDefaults fills unset rule fields and the confirmation message
func (cfg *Config) ApplyDefaults() {
	if cfg.Receiver == "" {
		cfg.Receiver = rewrite.DefaultReceiver
	}
	if len(cfg.Verbs) == 0 {
		cfg.Verbs = rewrite.DefaultVerbs()
	}
	if cfg.Prefix == "" {
		cfg.Prefix = rewrite.DefaultPrefix
	}
	if cfg.Message == "" {
		cfg.Message = fmt.Sprintf("✅ Fixed all API paths - removed %s prefix from endpoints", cfg.Prefix)
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = "."
	}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if len(cfg.Targets) == 0 {
		return errors.Errorf("%w: at least one target is required", ErrInvalidConfig)
	}

	for i, target := range cfg.Targets {
		if strings.TrimSpace(target) == "" {
			return errors.Errorf("%w: target %d is empty", ErrInvalidConfig, i)
		}
		if !doublestar.ValidatePattern(filepath.ToSlash(target)) {
			return errors.Errorf("%w: target %d (%q) is not a valid pattern", ErrInvalidConfig, i, target)
		}
	}

	if err := cfg.Rule().Validate(); err != nil {
		return errors.Errorf("%w: %s", ErrInvalidConfig, err)
	}

	return nil
}

// Rule returns the rewrite rule described by the config
func (cfg *Config) Rule() rewrite.Rule {
	return rewrite.Rule{
		Receiver: cfg.Receiver,
		Verbs:    cfg.Verbs,
		Prefix:   cfg.Prefix,
	}
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s.{%s}('%s -> [%s]", cfg.Receiver, strings.Join(cfg.Verbs, ","), cfg.Prefix, strings.Join(cfg.Targets, ", "))
}
