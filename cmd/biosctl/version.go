package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show biosctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("biosctl v%s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
