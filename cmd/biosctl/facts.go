package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gsbios/biosctl/pkg/engine"
)

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Show the current BIOS settings",
	Long:  `Facts reads the backend's settings dump and prints it as a name → value snapshot. Nothing is written.`,
	Args:  cobra.NoArgs,
	RunE:  runFacts,
}

func init() {
	rootCmd.AddCommand(factsCmd)
}

func runFacts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, err := engine.New(newAdapter(cfg)).Run(cmd.Context(), engine.Params{Facts: true})
	if err != nil {
		return err
	}
	if result.Failed {
		fmt.Fprint(os.Stderr, engine.FormatFailure(result.Msg))
		return fmt.Errorf("reading settings failed")
	}

	facts := result.Facts[cfg.Backend]
	if flagJSON {
		return printFactsJSON(facts)
	}
	fmt.Printf("%s settings (%d):\n", cfg.Backend, len(facts))
	printFacts(facts)
	return nil
}
