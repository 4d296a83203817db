package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"

	"github.com/gsbios/biosctl/pkg/engine"
)

// printResult renders a reconciliation result, as JSON when requested
// or as human-readable text. A failed result is still rendered before
// the command exits non-zero.
func printResult(result *engine.Result, backendName string) error {
	if flagJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		if result.Failed {
			return fmt.Errorf("reconciliation failed")
		}
		return nil
	}

	if result.Diff != nil {
		printDiff(result.Diff)
	}

	if result.Failed {
		fmt.Fprint(os.Stderr, engine.FormatFailure(result.Msg))
		return fmt.Errorf("reconciliation failed")
	}

	if result.Changed {
		color.New(color.FgYellow).Println("changed")
	} else {
		fmt.Println("unchanged")
	}

	if facts, ok := result.Facts[backendName]; ok {
		printFacts(facts)
	}
	return nil
}

func printDiff(diff *engine.Diff) {
	removed := color.New(color.FgRed)
	added := color.New(color.FgGreen)
	for _, line := range diffLines(diff.Before) {
		removed.Printf("- %s\n", line)
	}
	for _, line := range diffLines(diff.After) {
		added.Printf("+ %s\n", line)
	}
}

func diffLines(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func printFacts(facts map[string]string) {
	names := make([]string, 0, len(facts))
	for name := range facts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %s\n", name, facts[name])
	}
}

func printFactsJSON(facts map[string]string) error {
	out, err := json.MarshalIndent(facts, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
