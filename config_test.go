package main

import (
	"flag"
	"os"
	"reflect"
	"testing"

	"github.com/klauspost/compress/zlib"
	"gopkg.in/yaml.v3"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Clear any existing environment variables
	oldHost := os.Getenv("JOURNAL2GELF_HOST")
	oldPort := os.Getenv("JOURNAL2GELF_PORT")
	defer func() {
		os.Setenv("JOURNAL2GELF_HOST", oldHost)
		os.Setenv("JOURNAL2GELF_PORT", oldPort)
	}()
	os.Unsetenv("JOURNAL2GELF_HOST")
	os.Unsetenv("JOURNAL2GELF_PORT")

	cfg := loadConfig()

	if cfg.Target.Host != "localhost" {
		t.Errorf("Expected default host 'localhost', got: %s", cfg.Target.Host)
	}
	if cfg.Target.Port != 12201 {
		t.Errorf("Expected default port 12201, got: %d", cfg.Target.Port)
	}
	if cfg.Compression != zlib.DefaultCompression {
		t.Errorf("Expected default compression level, got: %d", cfg.Compression)
	}
	if cfg.Input.Tail || cfg.Input.Multiline {
		t.Error("Expected tail and multiline to default to false")
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	// Test YAML loading by directly testing the YAML unmarshaling
	yamlContent := `
target:
  host: graylog.internal
  port: 12202
input:
  tail: true
  multiline: true
  files:
    - "/var/backups/journal/**/*.json"
  exclude:
    - "**/*.gz"
compression: 9
match: "level <= ` + "`4`" + `"
`

	var cfg Config
	if err := yaml.Unmarshal([]byte(yamlContent), &cfg); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}

	if cfg.Target.Host != "graylog.internal" {
		t.Errorf("Expected host 'graylog.internal', got: %s", cfg.Target.Host)
	}
	if cfg.Target.Port != 12202 {
		t.Errorf("Expected port 12202, got: %d", cfg.Target.Port)
	}
	if !cfg.Input.Tail || !cfg.Input.Multiline {
		t.Error("Expected tail and multiline to be enabled")
	}
	if len(cfg.Input.Files) != 1 || cfg.Input.Files[0] != "/var/backups/journal/**/*.json" {
		t.Errorf("Expected files from YAML, got: %v", cfg.Input.Files)
	}
	if cfg.Compression != 9 {
		t.Errorf("Expected compression 9, got: %d", cfg.Compression)
	}
	if cfg.Match != "level <= `4`" {
		t.Errorf("Expected match expression from YAML, got: %s", cfg.Match)
	}
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	os.Setenv("JOURNAL2GELF_HOST", "env.example.com")
	os.Setenv("JOURNAL2GELF_PORT", "12345")
	defer func() {
		os.Unsetenv("JOURNAL2GELF_HOST")
		os.Unsetenv("JOURNAL2GELF_PORT")
	}()

	cfg := loadConfig()

	if cfg.Target.Host != "env.example.com" {
		t.Errorf("Expected host from environment, got: %s", cfg.Target.Host)
	}
	if cfg.Target.Port != 12345 {
		t.Errorf("Expected port from environment, got: %d", cfg.Target.Port)
	}
}

func TestLoadConfigIgnoresBadPortEnv(t *testing.T) {
	oldPort := os.Getenv("JOURNAL2GELF_PORT")
	defer os.Setenv("JOURNAL2GELF_PORT", oldPort)
	os.Setenv("JOURNAL2GELF_PORT", "not-a-port")

	cfg := loadConfig()
	if cfg.Target.Port != 12201 {
		t.Errorf("Expected default port to survive a bad env value, got: %d", cfg.Target.Port)
	}
}

func TestFlagsPassed(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{
			name: "explicit value equal to the default still counts as passed",
			args: []string{"-compression=-1"},
			want: true,
		},
		{
			name: "explicit non-default value",
			args: []string{"-compression=9"},
			want: true,
		},
		{
			name: "flag not given",
			args: nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("journal2gelf", flag.ContinueOnError)
			level := fs.Int("compression", zlib.DefaultCompression, "")
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse: %v", err)
			}

			passed := flagsPassed(fs)
			if passed["compression"] != tt.want {
				t.Errorf("Expected passed=%v for args %v", tt.want, tt.args)
			}

			// An explicitly passed flag must override a config file value
			// even when it equals the flag default.
			cfg := Config{Compression: 9}
			if passed["compression"] {
				cfg.Compression = *level
			}
			if tt.want && len(tt.args) > 0 && tt.args[0] == "-compression=-1" && cfg.Compression != -1 {
				t.Errorf("Expected explicit -compression=-1 to override config, got %d", cfg.Compression)
			}
		})
	}
}

func TestSplitPatterns(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		expected []string
	}{
		{
			name:     "single pattern",
			csv:      "/var/log/*.json",
			expected: []string{"/var/log/*.json"},
		},
		{
			name:     "multiple with whitespace",
			csv:      " /a/*.json , /b/**/*.json ",
			expected: []string{"/a/*.json", "/b/**/*.json"},
		},
		{
			name:     "empty segments dropped",
			csv:      ",,/a/*.json,,",
			expected: []string{"/a/*.json"},
		},
		{
			name:     "empty input",
			csv:      "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitPatterns(tt.csv)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
