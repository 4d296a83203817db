package main

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/gsbios/biosctl/internal/config"
	"github.com/gsbios/biosctl/pkg/engine"
)

// runParams is the machine-protocol parameter envelope read from
// stdin. Field names follow the host automation contract.
type runParams struct {
	Backend                string            `json:"backend,omitempty"`
	ExecutablePath         string            `json:"executable_path,omitempty"`
	HardwareDefinitionPath string            `json:"hardware_definition_path,omitempty"`
	Facts                  *bool             `json:"facts,omitempty"`
	Settings               map[string]string `json:"settings,omitempty"`
	SettingsXML            string            `json:"settings_xml,omitempty"`
	CheckMode              bool              `json:"check_mode,omitempty"`
	Diff                   bool              `json:"diff,omitempty"`
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one reconciliation from JSON parameters on stdin",
	Long: `Run is the automation entry point: it reads a JSON parameter
object on stdin, performs one reconciliation, and writes the JSON
result object on stdout.

Example:
  echo '{"settings": {"PowerMonitoring": "Disabled"}, "diff": true}' | biosctl run`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading parameters: %w", err)
	}

	var params runParams
	if len(data) > 0 {
		if err := json.Unmarshal(data, &params); err != nil {
			return fmt.Errorf("parsing parameters: %w", err)
		}
	}

	cfg := config.Default()
	if params.Backend != "" {
		cfg.Backend = params.Backend
	}
	if params.ExecutablePath != "" {
		if cfg.Backend == "hprcu" {
			cfg.Hprcu.Executable = params.ExecutablePath
		} else {
			cfg.Conrep.Executable = params.ExecutablePath
		}
	}
	if params.HardwareDefinitionPath != "" {
		cfg.Conrep.HWDef = params.HardwareDefinitionPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	result, err := engine.New(newAdapter(cfg)).Run(cmd.Context(), engine.Params{
		Facts:       params.Facts == nil || *params.Facts,
		Settings:    params.Settings,
		SettingsXML: params.SettingsXML,
		CheckMode:   params.CheckMode,
		WantDiff:    params.Diff,
	})
	if err != nil {
		return err
	}

	out, err := json.Marshal(result)
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if result.Failed {
		return fmt.Errorf("%s", result.Msg)
	}
	return nil
}
