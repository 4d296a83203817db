// Package conrep implements the flat-value backend adapter: settings
// are a mapping from section name to an opaque string payload, and the
// apply path is fed a replacement document containing only the changed
// sections.
package conrep

import (
	"context"
	"sort"

	"github.com/gsbios/biosctl/pkg/backend"
	"github.com/gsbios/biosctl/pkg/engine"
)

// NewTool builds the conrep invocation: conrep -x <hwdef> <op-flags>.
func NewTool(executable, hwdef string) *backend.Tool {
	return &backend.Tool{Path: executable, Args: []string{"-x", hwdef}}
}

// Adapter reconciles conrep-style flat settings.
type Adapter struct {
	runner  engine.Runner
	current map[string]string
	changed map[string]string
}

// New returns a flat-value adapter driven by runner.
func New(runner engine.Runner) *Adapter {
	return &Adapter{runner: runner}
}

// Name implements engine.Adapter.
func (a *Adapter) Name() string { return "conrep" }

// Read dumps and parses the current settings.
func (a *Adapter) Read(ctx context.Context) error {
	raw, err := a.runner.Dump(ctx)
	if err != nil {
		return err
	}
	current, err := ParseDocument(raw)
	if err != nil {
		return err
	}
	a.current = current
	return nil
}

// Plan validates desired against the current state and keeps the
// changed subset for Apply. Unknown keys fail before any mutation.
func (a *Adapter) Plan(desired engine.Desired) (bool, error) {
	settings := desired.Settings
	if desired.RawXML != "" {
		parsed, err := ParseDocument(desired.RawXML)
		if err != nil {
			return false, err
		}
		settings = parsed
	}
	if err := validate(a.current, settings); err != nil {
		return false, err
	}
	a.changed = changedSubset(a.current, settings)
	return len(a.changed) > 0, nil
}

// Apply feeds the replacement document to conrep's load operation.
func (a *Adapter) Apply(ctx context.Context) error {
	return a.runner.Load(ctx, Render(a.changed))
}

// Facts returns the current settings overlaid with the planned changes.
func (a *Adapter) Facts() map[string]string {
	facts := make(map[string]string, len(a.current))
	for k, v := range a.current {
		facts[k] = v
	}
	for k, v := range a.changed {
		facts[k] = v
	}
	return facts
}

// Diff renders the line diff over the changed subset.
func (a *Adapter) Diff() engine.Diff {
	return engine.LineDiff(a.current, a.changed)
}

func validate(current, desired map[string]string) error {
	keys := make([]string, 0, len(desired))
	for k := range desired {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := current[k]; !ok {
			return &engine.UnknownSettingError{
				Backend: "conrep",
				Keys:    []string{k},
				Value:   desired[k],
				Hint:    "perhaps you need a custom hardware definition file?",
			}
		}
	}
	return nil
}

func changedSubset(current, desired map[string]string) map[string]string {
	changed := make(map[string]string)
	for k, v := range desired {
		if current[k] != v {
			changed[k] = v
		}
	}
	return changed
}
