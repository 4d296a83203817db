// Package hprcu implements the structured-feature backend adapter:
// settings are an ordered sequence of feature records, and the apply
// path always receives one fully-formed document, never a partial
// replacement.
package hprcu

import (
	"context"
	"sort"

	"github.com/gsbios/biosctl/pkg/backend"
	"github.com/gsbios/biosctl/pkg/engine"
)

// NewTool builds the hprcu invocation: hprcu -a <op-flags>.
func NewTool(executable string) *backend.Tool {
	return &backend.Tool{Path: executable, Args: []string{"-a"}}
}

// Adapter reconciles hprcu-style structured feature settings.
type Adapter struct {
	runner  engine.Runner
	current *Document
	target  *Document
}

// New returns a structured-feature adapter driven by runner.
func New(runner engine.Runner) *Adapter {
	return &Adapter{runner: runner}
}

// Name implements engine.Adapter.
func (a *Adapter) Name() string { return "hprcu" }

// Read dumps and parses the current settings document.
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

// Plan builds the target document. With a name → value mapping, edits
// are merged into a clone of the current document. With a raw XML
// desired state, the candidate document is compared to the current one
// through their canonical mappings: unknown feature ids fail, and the
// first differing shared id is enough to report a change.
func (a *Adapter) Plan(desired engine.Desired) (bool, error) {
	if desired.RawXML != "" {
		candidate, err := ParseDocument(desired.RawXML)
		if err != nil {
			return false, err
		}
		changed, err := changedAgainst(a.current, candidate)
		if err != nil {
			return false, err
		}
		a.target = candidate
		return changed, nil
	}

	target, changed, err := a.current.ApplyEdits(desired.Settings)
	if err != nil {
		return false, err
	}
	a.target = target
	return changed, nil
}

// Apply serializes the whole target document into hprcu's load path.
func (a *Adapter) Apply(ctx context.Context) error {
	return a.runner.Load(ctx, a.target.String())
}

// Facts reports the planned state when a plan exists, else the current
// state; empty when nothing was ever read.
func (a *Adapter) Facts() map[string]string {
	if a.target != nil {
		return a.target.Facts()
	}
	return a.current.Facts()
}

// Diff returns whole-document serializations: the structured form is
// not line-diffable per setting without re-deriving facts first.
func (a *Adapter) Diff() engine.Diff {
	if a.current == nil {
		return engine.Diff{}
	}
	before := a.current.String()
	after := before
	if a.target != nil {
		after = a.target.String()
	}
	return engine.Diff{Before: before, After: after}
}

// changedAgainst validates every candidate feature id against the
// current document before looking for a difference, so no write can
// happen on a candidate that references unknown features.
func changedAgainst(current, candidate *Document) (bool, error) {
	old := current.CanonicalMap()
	next := candidate.CanonicalMap()

	ids := make([]string, 0, len(next))
	var unknown []string
	for id := range next {
		if _, ok := old[id]; !ok {
			unknown = append(unknown, id)
			continue
		}
		ids = append(ids, id)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return false, &engine.UnknownSettingError{Backend: "hprcu", Keys: unknown}
	}

	sort.Strings(ids)
	for _, id := range ids {
		if old[id] != next[id] {
			return true, nil
		}
	}
	return false, nil
}
