package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"
	"gopkg.in/yaml.v3"
)

// Config holds transcoder configuration values.
type Config struct {
	Target struct {
		Host string `yaml:"host"` // GELF destination host
		Port int    `yaml:"port"` // GELF destination port
	} `yaml:"target"`

	Input struct {
		Tail      bool     `yaml:"tail"`              // Follow the local journal via journalctl
		Multiline bool     `yaml:"multiline"`         // Legacy pretty-printed JSON array framing
		Files     []string `yaml:"files,omitempty"`   // Exported journal dump patterns
		Exclude   []string `yaml:"exclude,omitempty"` // Exclusion patterns for dump discovery
	} `yaml:"input,omitempty"`

	Compression int    `yaml:"compression"`     // zlib level for GELF payloads
	Match       string `yaml:"match,omitempty"` // JMESPath expression records must satisfy
}

// loadConfig resolves configuration from defaults, an optional YAML file,
// environment variables and flags.
func loadConfig() Config {
	var cfg Config

	// Set defaults
	cfg.Target.Host = "localhost"
	cfg.Target.Port = 12201
	cfg.Compression = zlib.DefaultCompression

	// Parse flags only if not already parsed (to avoid redefinition in tests)
	if !flag.Parsed() {
		configFile := flag.String("config", getDefaultConfigPath(), "path to YAML config")
		hostFlag := flag.String("host", "", "GELF destination host")
		portFlag := flag.Int("port", 0, "GELF destination port")
		tailFlag := flag.Bool("tail", false, "follow the local journal via journalctl")
		multilineFlag := flag.Bool("multiline", false, "input uses the legacy pretty-printed array format")
		filesFlag := flag.String("files", "", "comma-separated exported journal dump patterns")
		matchFlag := flag.String("match", "", "JMESPath expression records must satisfy")
		levelFlag := flag.Int("compression", zlib.DefaultCompression, "zlib compression level for GELF payloads")
		debug := flag.Bool("debug", false, "enable debug output")
		flag.Parse()

		// Load config file (default or specified)
		if b, err := os.ReadFile(*configFile); err == nil {
			yaml.Unmarshal(b, &cfg)
		}

		passed := flagsPassed(flag.CommandLine)

		// Apply flag overrides
		if *hostFlag != "" {
			cfg.Target.Host = *hostFlag
		}
		if *portFlag != 0 {
			cfg.Target.Port = *portFlag
		}
		if *tailFlag {
			cfg.Input.Tail = true
		}
		if *multilineFlag {
			cfg.Input.Multiline = true
		}
		if *filesFlag != "" {
			cfg.Input.Files = splitPatterns(*filesFlag)
		}
		if *matchFlag != "" {
			cfg.Match = *matchFlag
		}
		if passed["compression"] {
			cfg.Compression = *levelFlag
		}
		if *debug {
			os.Setenv("DEBUG", "1")
		}
	} else {
		// In tests, just load the default config file if it exists
		if b, err := os.ReadFile("journal2gelf.yaml"); err == nil {
			yaml.Unmarshal(b, &cfg)
		}
	}

	// Environment variable overrides (always apply)
	if host := os.Getenv("JOURNAL2GELF_HOST"); host != "" {
		cfg.Target.Host = host
	}
	if port := os.Getenv("JOURNAL2GELF_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Target.Port = n
		}
	}

	return cfg
}

// flagsPassed reports which flags were explicitly set on the command
// line, so an explicit flag can override the config file even when its
// value equals the flag default.
func flagsPassed(fs *flag.FlagSet) map[string]bool {
	passed := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		passed[f.Name] = true
	})
	return passed
}

// splitPatterns turns a comma-separated pattern string into a slice,
// trimming empties.
func splitPatterns(csv string) []string {
	var patterns []string
	for _, p := range strings.Split(csv, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// getDefaultConfigPath returns the default config file path
func getDefaultConfigPath() string {
	// Try system-wide location first
	systemPaths := []string{
		"/etc/journal2gelf/config.yaml", // Linux system-wide
	}

	for _, path := range systemPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	// Fall back to current directory for development/testing
	return "journal2gelf.yaml"
}
