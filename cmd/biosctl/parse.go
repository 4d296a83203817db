package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gsbios/biosctl/pkg/engine/conrep"
	"github.com/gsbios/biosctl/pkg/engine/hprcu"
)

var parseCmd = &cobra.Command{
	Use:   "parse <dump.xml>",
	Short: "Parse an existing settings dump and print its facts",
	Long: `Parse reads a settings dump produced earlier by the backend tool
and prints the settings it contains, without invoking the tool. Useful
for inspecting archived dumps and for checking a desired-state file
against the backend's document shape.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading dump: %w", err)
	}

	var facts map[string]string
	if cfg.Backend == "hprcu" {
		doc, err := hprcu.ParseDocument(string(data))
		if err != nil {
			return err
		}
		facts = doc.Facts()
	} else {
		facts, err = conrep.ParseDocument(string(data))
		if err != nil {
			return err
		}
	}

	if flagJSON {
		return printFactsJSON(facts)
	}
	printFacts(facts)
	return nil
}
