package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/gsbios/biosctl/internal/config"
	"github.com/gsbios/biosctl/pkg/engine"
	"github.com/gsbios/biosctl/pkg/engine/conrep"
	"github.com/gsbios/biosctl/pkg/engine/hprcu"
)

var (
	flagBackend    string
	flagExecutable string
	flagHWDef      string
	flagJSON       bool
)

var rootCmd = &cobra.Command{
	Use:   "biosctl",
	Short: "Reconcile HP BIOS settings with conrep or hprcu",
	Long: `biosctl reads the current BIOS configuration through a vendor
settings tool (conrep or hprcu), compares it against a declared desired
state, and applies the minimal change needed to reach it.

Both tools ship with the hp-scripting-tools package
(https://downloads.linux.hpe.com/SDR/repo/stk).`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "backend to drive: conrep or hprcu")
	rootCmd.PersistentFlags().StringVar(&flagExecutable, "executable", "", "backend executable name or absolute path")
	rootCmd.PersistentFlags().StringVar(&flagHWDef, "hwdef", "", "conrep hardware definition file")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "machine-readable JSON output")
}

// loadConfig merges the optional .biosctl.yml with flag overrides.
// A missing file is fine; any other config problem is not.
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader(".").Load()
	if err != nil {
		if !errors.Is(err, config.ErrNotFound) {
			return nil, err
		}
		cfg = config.Default()
	}
	if flagBackend != "" {
		cfg.Backend = flagBackend
	}
	if flagExecutable != "" {
		if cfg.Backend == "hprcu" {
			cfg.Hprcu.Executable = flagExecutable
		} else {
			cfg.Conrep.Executable = flagExecutable
		}
	}
	if flagHWDef != "" {
		cfg.Conrep.HWDef = flagHWDef
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newAdapter builds the adapter for the configured backend.
func newAdapter(cfg *config.Config) engine.Adapter {
	if cfg.Backend == "hprcu" {
		return hprcu.New(hprcu.NewTool(cfg.Hprcu.Executable))
	}
	return conrep.New(conrep.NewTool(cfg.Conrep.Executable, cfg.Conrep.HWDef))
}
