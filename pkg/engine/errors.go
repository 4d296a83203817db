package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ============================================================
// ERROR TAXONOMY
// ============================================================
//
// Every failure the reconciliation pipeline can recover into a
// structured result is one of the types below. Anything else is
// treated as unexpected and propagates unmodified.

// BackendInvocationError is returned when the external settings tool
// exits non-zero. It carries the captured output so the caller sees
// the tool's own diagnostics.
type BackendInvocationError struct {
	Tool     string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *BackendInvocationError) Error() string {
	return fmt.Sprintf("%s failed (rc=%d): %s %s", e.Tool, e.ExitCode, e.Stdout, e.Stderr)
}

// UnknownSettingError is returned when a desired key or feature name is
// not present in the current state. Keys holds every offending name;
// Value is set when a single rejected key's target value is known.
type UnknownSettingError struct {
	Backend string
	Keys    []string
	Value   string
	Hint    string
}

func (e *UnknownSettingError) Error() string {
	if len(e.Keys) == 1 {
		msg := fmt.Sprintf("setting %q", e.Keys[0])
		if e.Value != "" {
			msg += fmt.Sprintf(" (value: %s)", e.Value)
		}
		msg += fmt.Sprintf(" is not known by %s", e.Backend)
		if e.Hint != "" {
			msg += " - " + e.Hint
		}
		return msg
	}
	return fmt.Sprintf("settings unknown to %s: %s", e.Backend, strings.Join(e.Keys, ", "))
}

// UnknownOptionValueError is returned when a desired value for an
// option feature names none of the feature's choices. State carries the
// feature's serialized form for diagnostics.
type UnknownOptionValueError struct {
	Feature string
	Value   string
	State   string
}

func (e *UnknownOptionValueError) Error() string {
	return fmt.Sprintf("selected value %q for option %q unknown by the backend (%s)",
		e.Value, e.Feature, strings.TrimSpace(e.State))
}

// UnknownFeatureTypeError is returned when the backend reports a
// feature_type discriminator this engine does not recognize.
type UnknownFeatureTypeError struct {
	FeatureType string
	Feature     string
}

func (e *UnknownFeatureTypeError) Error() string {
	return fmt.Sprintf("unknown feature type %q of feature %q", e.FeatureType, e.Feature)
}

// IsDomainError reports whether err belongs to the taxonomy above.
// The pipeline converts exactly these into a failure result; anything
// else bubbles up to the caller unchanged.
func IsDomainError(err error) bool {
	var (
		invocation *BackendInvocationError
		setting    *UnknownSettingError
		option     *UnknownOptionValueError
		feature    *UnknownFeatureTypeError
	)
	return errors.As(err, &invocation) ||
		errors.As(err, &setting) ||
		errors.As(err, &option) ||
		errors.As(err, &feature)
}

// FormatFailure renders a failure message for terminal output.
func FormatFailure(msg string) string {
	var b strings.Builder

	errorColor := color.New(color.FgRed, color.Bold)
	errorColor.Fprintf(&b, "Error: ")
	fmt.Fprintf(&b, "%s\n", msg)

	return b.String()
}
