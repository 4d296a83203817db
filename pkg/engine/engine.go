// Package engine drives BIOS settings reconciliation: read the current
// state from a backend, validate the desired state against it, compute
// the minimal change, apply it, and re-derive the resulting facts.
//
// The two backend variants (conrep, hprcu) live in subpackages and
// plug in through the Adapter contract.
package engine

import "context"

// Params configures one reconciliation run.
type Params struct {
	// Facts requests the resulting settings snapshot in the result.
	Facts bool

	// Settings is the desired name → target value mapping.
	Settings map[string]string

	// SettingsXML is a raw desired-state document in the backend's
	// native shape. Takes precedence over Settings when both are set.
	SettingsXML string

	// CheckMode computes and reports the would-be change without
	// invoking the backend's write path.
	CheckMode bool

	// WantDiff requests a before/after diff in the result.
	WantDiff bool
}

// Engine runs the reconciliation pipeline over one adapter.
type Engine struct {
	adapter Adapter
}

// New creates an engine bound to the given backend adapter.
func New(adapter Adapter) *Engine {
	return &Engine{adapter: adapter}
}

// Run executes the pipeline. Domain errors (see IsDomainError) are
// converted into a failure result that retains whatever fields were
// already computed; unexpected errors are returned as-is with a nil
// result.
func (e *Engine) Run(ctx context.Context, params Params) (*Result, error) {
	result := &Result{}
	if err := e.run(ctx, params, result); err != nil {
		if !IsDomainError(err) {
			return nil, err
		}
		result.Failed = true
		result.Msg = err.Error()
	}
	return result, nil
}

func (e *Engine) run(ctx context.Context, params Params, result *Result) error {
	if err := e.adapter.Read(ctx); err != nil {
		return err
	}

	desired := Desired{Settings: params.Settings, RawXML: params.SettingsXML}
	changed := false
	if !desired.Empty() {
		var err error
		changed, err = e.adapter.Plan(desired)
		if err != nil {
			return err
		}
	}

	if params.WantDiff {
		diff := e.adapter.Diff()
		result.Diff = &diff
	}

	if changed {
		if !params.CheckMode {
			if err := e.adapter.Apply(ctx); err != nil {
				return err
			}
		}
		result.Changed = true
	}

	if params.Facts {
		result.Facts = map[string]map[string]string{
			e.adapter.Name(): e.adapter.Facts(),
		}
	}
	return nil
}
