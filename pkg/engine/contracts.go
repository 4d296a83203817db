package engine

import "context"

// ============================================================
// ADAPTER CONTRACT
// ============================================================

// Runner is the narrow surface an adapter needs from the external
// settings tool: dump the current configuration, load a new one.
type Runner interface {
	// Dump has the tool write its current settings document and
	// returns the document text.
	Dump(ctx context.Context) (string, error)

	// Load feeds a settings document to the tool's apply path.
	Load(ctx context.Context, doc string) error
}

// Adapter is the capability surface one backend variant implements.
// Callers select a variant once per invocation and never mix them.
//
// The lifecycle is linear: Read, then at most one Plan, then Apply
// only when Plan reported a change and check-mode is off.
type Adapter interface {
	// Name returns the backend identifier ("conrep" or "hprcu").
	Name() string

	// Read obtains and parses the current-state document from the
	// backend's dump operation.
	Read(ctx context.Context) error

	// Plan validates desired against the current state and computes
	// the change. It reports whether applying would change anything.
	Plan(desired Desired) (bool, error)

	// Apply writes the planned state through the backend.
	Apply(ctx context.Context) error

	// Facts returns the human-readable name → value snapshot of the
	// planned state, or of the current state when nothing was planned.
	Facts() map[string]string

	// Diff returns the before/after pair for the last plan.
	Diff() Diff
}

// Desired is the caller-declared target state. RawXML is a document in
// the backend-native shape and takes precedence over Settings when
// both are given.
type Desired struct {
	Settings map[string]string
	RawXML   string
}

// Empty reports whether there is nothing to reconcile.
func (d Desired) Empty() bool {
	return len(d.Settings) == 0 && d.RawXML == ""
}

// ============================================================
// RESULT TYPES
// ============================================================

// Result is the outcome of one reconciliation, in the shape the host
// automation protocol expects.
type Result struct {
	Changed bool                         `json:"changed"`
	Diff    *Diff                        `json:"diff,omitempty"`
	Facts   map[string]map[string]string `json:"facts,omitempty"`
	Failed  bool                         `json:"failed,omitempty"`
	Msg     string                       `json:"msg,omitempty"`
}
