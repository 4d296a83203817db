// Package config loads the optional .biosctl.yml file that selects the
// backend and supplies tool paths and default desired settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/gsbios/biosctl/pkg/engine/conrep"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".biosctl.yml"

// ErrNotFound is wrapped by Load when no configuration file exists;
// callers fall back to Default in that case.
var ErrNotFound = errors.New("config file not found")

// Config is the on-disk biosctl configuration.
type Config struct {
	// Backend selects the adapter: "conrep" or "hprcu".
	Backend string `yaml:"backend"`

	Conrep ToolConfig `yaml:"conrep"`
	Hprcu  ToolConfig `yaml:"hprcu"`

	// Facts controls whether reconciliation reports the resulting
	// settings snapshot. Defaults to true.
	Facts *bool `yaml:"facts"`

	// Settings is an optional default desired-state mapping applied
	// when a command supplies none of its own.
	Settings map[string]string `yaml:"settings"`
}

// ToolConfig locates one backend executable. HWDef applies to conrep
// only.
type ToolConfig struct {
	Executable string `yaml:"executable"`
	HWDef      string `yaml:"hwdef,omitempty"`
}

// Loader reads and validates a Config from a working directory.
type Loader struct {
	workDir  string
	filePath string
}

// NewLoader creates a loader rooted at workDir.
func NewLoader(workDir string) *Loader {
	return &Loader{
		workDir:  workDir,
		filePath: filepath.Join(workDir, FileName),
	}
}

// Load reads, defaults and validates the configuration file.
func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, l.filePath)
		}
		return nil, fmt.Errorf("reading %s: %w", l.filePath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", l.filePath, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", l.filePath, err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// WantFacts reports the facts setting with its default applied.
func (c *Config) WantFacts() bool {
	return c.Facts == nil || *c.Facts
}

func (c *Config) applyDefaults() {
	if c.Backend == "" {
		c.Backend = "conrep"
	}
	if c.Conrep.Executable == "" {
		c.Conrep.Executable = "conrep"
	}
	if c.Conrep.HWDef == "" {
		c.Conrep.HWDef = conrep.DefaultHWDef
	}
	if c.Hprcu.Executable == "" {
		c.Hprcu.Executable = "hprcu"
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs error
	if c.Backend != "conrep" && c.Backend != "hprcu" {
		errs = multierr.Append(errs, fmt.Errorf("backend must be \"conrep\" or \"hprcu\", got %q", c.Backend))
	}
	if c.Hprcu.HWDef != "" {
		errs = multierr.Append(errs, fmt.Errorf("hwdef applies only to the conrep backend"))
	}
	for name := range c.Settings {
		if strings.TrimSpace(name) == "" {
			errs = multierr.Append(errs, fmt.Errorf("settings contain an empty name"))
		}
	}
	return errs
}
