package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/gsbios/biosctl/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show biosctl status",
	Long:  `Display the configured backend, tool availability, and hardware definition file.`,
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("biosctl Status")
	fmt.Println("────────────────────────────────────────────")
	fmt.Println()

	fmt.Println("Backend:")
	fmt.Printf("  Selected:        %s\n", cfg.Backend)
	showConfigFile()
	fmt.Println()

	showTool("conrep", cfg.Conrep.Executable)
	fmt.Printf("  Hardware def:    %s\n", hwdefStatus(cfg.Conrep.HWDef))
	fmt.Println()

	showTool("hprcu", cfg.Hprcu.Executable)
}

func showConfigFile() {
	if _, err := os.Stat(config.FileName); err == nil {
		fmt.Printf("  Config file:     %s\n", config.FileName)
	} else {
		fmt.Println("  Config file:     none (defaults)")
	}
}

func showTool(name, executable string) {
	fmt.Printf("%s:\n", name)
	path, err := exec.LookPath(executable)
	if err != nil {
		fmt.Printf("  Executable:      ✗ %s not found\n", executable)
		return
	}
	fmt.Printf("  Executable:      ✓ %s\n", path)
}

func hwdefStatus(path string) string {
	if _, err := os.Stat(path); err != nil {
		return fmt.Sprintf("✗ %s missing", path)
	}
	return fmt.Sprintf("✓ %s", path)
}
