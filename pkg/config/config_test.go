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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/apifix/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "yaml_full",
			filename: ".apifix.yaml",
			config: `
targets:
  - src/services/wardOfficerService.js
  - src/services/profileService.js
  - src/services/departmentOfficerService.js
receiver: axios
verbs: [get, post, put, delete]
prefix: /api/
message: "🎉 All service files fixed!"
report_files: true
skip_missing: true
async: true
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Len(t, cfg.Targets, 3, "should have 3 targets")
				assert.Equal(t, "src/services/wardOfficerService.js", cfg.Targets[0], "first target should match")
				assert.Equal(t, "axios", cfg.Receiver, "receiver should match")
				assert.Equal(t, []string{"get", "post", "put", "delete"}, cfg.Verbs, "verbs should match")
				assert.Equal(t, "/api/", cfg.Prefix, "prefix should match")
				assert.Equal(t, "🎉 All service files fixed!", cfg.Message, "message should match")
				assert.True(t, cfg.ReportFiles, "report_files should be true")
				assert.True(t, cfg.SkipMissing, "skip_missing should be true")
				assert.False(t, cfg.RequireMatch, "require_match should be false")
				assert.True(t, cfg.Async, "async should be true")
			},
		},
		{
			name:     "yaml_minimal_gets_defaults",
			filename: "apifix.yml",
			config: `
targets: [src/api/apiService.js]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, rewrite.DefaultRule(), cfg.Rule(), "rule should default")
				assert.Equal(t, DefaultMessage, cfg.Message, "message should default")
			},
		},
		{
			name:     "yaml_custom_prefix_message",
			filename: "apifix.yaml",
			config: `
targets: [src/api/apiService.js]
prefix: /v1/
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "✅ Fixed all API paths - removed /v1/ prefix from endpoints", cfg.Message)
			},
		},
		{
			name:     "json",
			filename: "apifix.json",
			config: `{
				"targets": ["src/**/*Service.js"],
				"verbs": ["get", "post"],
				"require_match": true
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"src/**/*Service.js"}, cfg.Targets)
				assert.Equal(t, []string{"get", "post"}, cfg.Verbs)
				assert.Equal(t, "api", cfg.Receiver)
				assert.True(t, cfg.RequireMatch)
			},
		},
		{
			name:     "hcl_with_variables",
			filename: "apifix.hcl",
			config: `
targets      = [default_target, "src/services/*.js"]
receiver     = "axios"
report_files = true
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{DefaultTarget, "src/services/*.js"}, cfg.Targets)
				assert.Equal(t, "axios", cfg.Receiver)
				assert.Equal(t, "/api/", cfg.Prefix)
				assert.True(t, cfg.ReportFiles)
			},
		},
		{
			name:        "unknown_yaml_field",
			filename:    "apifix.yaml",
			config:      "targets: [a.js]\nbackup: true\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			filename:    "apifix.json",
			config:      `{"targets": ["a.js"], "destination": "x"}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "hcl_missing_targets",
			filename:    "apifix.hcl",
			config:      `receiver = "axios"`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name:        "no_targets",
			filename:    "apifix.yaml",
			config:      "targets: []\n",
			wantErr:     true,
			errContains: "at least one target",
		},
		{
			name:        "bad_pattern",
			filename:    "apifix.yaml",
			config:      "targets: ['src/[a.js']\n",
			wantErr:     true,
			errContains: "not a valid pattern",
		},
		{
			name:        "bad_rule",
			filename:    "apifix.yaml",
			config:      "targets: [a.js]\nprefix: api\n",
			wantErr:     true,
			errContains: "invalid rule",
		},
		{
			name:        "unsupported_extension",
			filename:    "apifix.toml",
			config:      "targets = ['a.js']",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0o644), "writing config file")

			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			cfg, err := Load(ctx, path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, dir, cfg.BaseDir, "base dir should be the config directory")
			tt.check(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []string{"src/api/apiService.js"}, cfg.Targets)
	assert.Equal(t, rewrite.DefaultRule(), cfg.Rule())
	assert.Equal(t, "✅ Fixed all API paths - removed /api/ prefix from endpoints", cfg.Message)
	assert.Equal(t, ".", cfg.BaseDir)
	assert.False(t, cfg.ReportFiles)
	assert.False(t, cfg.SkipMissing)
	assert.False(t, cfg.RequireMatch)
	assert.False(t, cfg.Async)
	require.NoError(t, cfg.Validate())
}

func TestValidate_WrapsSentinel(t *testing.T) {
	cfg := Default()
	cfg.Verbs = []string{"get", "get"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "duplicate verb")
}

func TestConfig_String(t *testing.T) {
	assert.Equal(t, "api.{get,post,put,delete}('/api/ -> [src/api/apiService.js]", Default().String())
}
