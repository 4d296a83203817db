package engine

import "testing"

func TestLineDiff_SortedByName(t *testing.T) {
	current := map[string]string{"Turbo": "Enabled", "PowerMonitoring": "Enabled"}
	changed := map[string]string{"Turbo": "Disabled", "PowerMonitoring": "Disabled"}

	diff := LineDiff(current, changed)

	wantBefore := "PowerMonitoring => Enabled\nTurbo => Enabled\n"
	wantAfter := "PowerMonitoring => Disabled\nTurbo => Disabled\n"
	if diff.Before != wantBefore {
		t.Errorf("before = %q, want %q", diff.Before, wantBefore)
	}
	if diff.After != wantAfter {
		t.Errorf("after = %q, want %q", diff.After, wantAfter)
	}
}

func TestLineDiff_Deterministic(t *testing.T) {
	current := map[string]string{"a": "1", "b": "2", "c": "3", "d": "4"}
	changed := map[string]string{"d": "x", "a": "y", "c": "z"}

	first := LineDiff(current, changed)
	for i := 0; i < 50; i++ {
		if got := LineDiff(current, changed); got != first {
			t.Fatalf("run %d produced %+v, want %+v", i, got, first)
		}
	}
}

func TestLineDiff_OnlyChangedKeys(t *testing.T) {
	current := map[string]string{"PowerMonitoring": "Enabled", "Turbo": "Enabled"}
	changed := map[string]string{"PowerMonitoring": "Disabled"}

	diff := LineDiff(current, changed)

	if diff.Before != "PowerMonitoring => Enabled\n" {
		t.Errorf("before = %q", diff.Before)
	}
	if diff.After != "PowerMonitoring => Disabled\n" {
		t.Errorf("after = %q", diff.After)
	}
}

func TestLineDiff_Empty(t *testing.T) {
	diff := LineDiff(map[string]string{"a": "1"}, nil)
	if diff.Before != "" || diff.After != "" {
		t.Errorf("empty change produced %+v", diff)
	}
}
