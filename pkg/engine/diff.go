package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Diff is a textual before/after pair. The flat backend fills it with
// name-sorted "name => value" lines covering the changed keys; the
// structured backend fills it with whole-document serializations.
type Diff struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// LineDiff renders one "name => value" line per changed key, sorted by
// name so repeated runs produce identical output. Only keys present in
// changed appear; current supplies the before values.
func LineDiff(current, changed map[string]string) Diff {
	keys := make([]string, 0, len(changed))
	for k := range changed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var before, after strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&before, "%s => %s\n", k, current[k])
		fmt.Fprintf(&after, "%s => %s\n", k, changed[k])
	}
	return Diff{Before: before.String(), After: after.String()}
}
