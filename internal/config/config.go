// Package config loads cefmt.toml.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"cefmt/internal/element"
)

// FileName is the name searched for by Find.
const FileName = "cefmt.toml"

// Config mirrors cefmt.toml.
type Config struct {
	Analysis Analysis `toml:"analysis"`
	Check    Check    `toml:"check"`
	Output   Output   `toml:"output"`
	Cache    Cache    `toml:"cache"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

type Analysis struct {
	Profile string `toml:"profile"`
}

type Check struct {
	Include          []string `toml:"include"`
	Exclude          []string `toml:"exclude"`
	Jobs             int      `toml:"jobs"`
	CompileFuncs     []string `toml:"compile_funcs"`
	PrintFuncs       []string `toml:"print_funcs"`
	ReportNonLiteral bool     `toml:"report_non_literal"`
}

type Output struct {
	Format         string `toml:"format"`
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type Cache struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Analysis: Analysis{Profile: "extended"},
		Check: Check{
			Include:      []string{"**/*.go"},
			Exclude:      []string{"**/testdata/**", "vendor/**", "**/.*/**"},
			CompileFuncs: []string{"cefmt.Compile", "cefmt.MustCompile"},
			PrintFuncs:   []string{"cefmt.Print", "cefmt.Write:1", "cefmt.Sentinel"},
		},
		Output: Output{
			Format:         "pretty",
			Color:          "auto",
			MaxDiagnostics: 100,
		},
	}
}

// Root returns the directory holding the config file, or "" for defaults.
func (c Config) Root() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// Profile returns the parsed grammar profile.
func (c Config) Profile() element.Profile {
	p, err := element.ParseProfile(c.Analysis.Profile)
	if err != nil {
		return element.Extended
	}
	return p
}

// Find walks up from startDir looking for cefmt.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown key(s): %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("cache", "dir") && !meta.IsDefined("cache", "enabled") {
		cfg.Cache.Enabled = true
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads cefmt.toml starting at startDir. Without a file
// it returns Default.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks enumerated values and ranges.
func (c Config) Validate() error {
	if _, err := element.ParseProfile(c.Analysis.Profile); err != nil {
		return fmt.Errorf("[analysis].profile: %w", err)
	}
	switch c.Output.Format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("[output].format: %q (expected pretty|json|short)", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color: %q (expected auto|on|off)", c.Output.Color)
	}
	if c.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("[output].max_diagnostics must not be negative")
	}
	if c.Check.Jobs < 0 {
		return fmt.Errorf("[check].jobs must not be negative")
	}
	if len(c.Check.Include) == 0 {
		return fmt.Errorf("[check].include must not be empty")
	}
	return nil
}

const header = "# cefmt configuration. include/exclude are doublestar globs relative to the checked path.\n\n"

// Write encodes c as TOML.
func Write(w io.Writer, c Config) error {
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(c)
}

// WriteFile writes c to path, refusing to overwrite unless force is set.
func WriteFile(path string, c Config, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	// #nosec G304 -- path is provided by the caller
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	if err := Write(f, c); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
