package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gsbios/biosctl/internal/config"
	"github.com/gsbios/biosctl/pkg/engine"
)

var (
	applyCheck        bool
	applyDiff         bool
	applySet          []string
	applySettingsFile string
	applySettingsXML  string
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Reconcile BIOS settings against a desired state",
	Long: `Apply reads the current configuration, computes which desired
settings differ, and feeds only that change back through the backend.
Unknown setting names fail before anything is written.

Examples:
  biosctl apply -s PowerMonitoring=Disabled
  biosctl apply --settings-file low-latency.yml --diff
  biosctl apply --settings-xml low-latency.dat --check
  biosctl apply --backend hprcu -s "Intel(R) Hyperthreading Options=Disabled"`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVar(&applyCheck, "check", false, "report the would-be change without writing")
	applyCmd.Flags().BoolVar(&applyDiff, "diff", false, "include a before/after diff")
	applyCmd.Flags().StringArrayVarP(&applySet, "set", "s", nil, "desired setting as name=value (repeatable)")
	applyCmd.Flags().StringVar(&applySettingsFile, "settings-file", "", "YAML file with a name: value mapping")
	applyCmd.Flags().StringVar(&applySettingsXML, "settings-xml", "", "raw desired-state XML file (takes precedence over settings)")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	settings, err := desiredSettings(cfg)
	if err != nil {
		return err
	}

	rawXML := ""
	if applySettingsXML != "" {
		data, err := os.ReadFile(applySettingsXML)
		if err != nil {
			return fmt.Errorf("reading settings XML: %w", err)
		}
		rawXML = string(data)
	}

	result, err := engine.New(newAdapter(cfg)).Run(cmd.Context(), engine.Params{
		Facts:       cfg.WantFacts(),
		Settings:    settings,
		SettingsXML: rawXML,
		CheckMode:   applyCheck,
		WantDiff:    applyDiff,
	})
	if err != nil {
		return err
	}
	return printResult(result, cfg.Backend)
}

// desiredSettings layers the desired state: config file defaults,
// then --settings-file, then -s pairs.
func desiredSettings(cfg *config.Config) (map[string]string, error) {
	settings := make(map[string]string, len(cfg.Settings))
	for name, value := range cfg.Settings {
		settings[name] = value
	}

	if applySettingsFile != "" {
		data, err := os.ReadFile(applySettingsFile)
		if err != nil {
			return nil, fmt.Errorf("reading settings file: %w", err)
		}
		var fromFile map[string]string
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", applySettingsFile, err)
		}
		for name, value := range fromFile {
			settings[name] = value
		}
	}

	for _, pair := range applySet {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, want name=value", pair)
		}
		settings[name] = value
	}
	return settings, nil
}
