package conrep

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsbios/biosctl/pkg/engine"
)

const sampleDump = `<Conrep>
<Section name="PowerMonitoring">Enabled</Section>
<Section name="Turbo">Enabled</Section>
<Section name="AssetTag"></Section>
</Conrep>`

type fakeRunner struct {
	dump  string
	loads []string
}

func (r *fakeRunner) Dump(ctx context.Context) (string, error) { return r.dump, nil }

func (r *fakeRunner) Load(ctx context.Context, doc string) error {
	r.loads = append(r.loads, doc)
	return nil
}

func readAdapter(t *testing.T, runner *fakeRunner) *Adapter {
	t.Helper()
	a := New(runner)
	require.NoError(t, a.Read(context.Background()))
	return a
}

func TestPlan_ChangedSubset(t *testing.T) {
	a := readAdapter(t, &fakeRunner{dump: sampleDump})

	changed, err := a.Plan(engine.Desired{Settings: map[string]string{
		"PowerMonitoring": "Disabled",
		"Turbo":           "Enabled",
	}})
	require.NoError(t, err)

	assert.True(t, changed)
	diff := a.Diff()
	assert.Equal(t, "PowerMonitoring => Enabled\n", diff.Before)
	assert.Equal(t, "PowerMonitoring => Disabled\n", diff.After)
}

func TestPlan_NoChange(t *testing.T) {
	a := readAdapter(t, &fakeRunner{dump: sampleDump})

	changed, err := a.Plan(engine.Desired{Settings: map[string]string{"Turbo": "Enabled"}})
	require.NoError(t, err)

	assert.False(t, changed)
	assert.Equal(t, engine.Diff{}, a.Diff())
}

func TestPlan_UnknownSetting(t *testing.T) {
	a := readAdapter(t, &fakeRunner{dump: sampleDump})

	_, err := a.Plan(engine.Desired{Settings: map[string]string{"NoSuchKnob": "On"}})

	var unknown *engine.UnknownSettingError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []string{"NoSuchKnob"}, unknown.Keys)
	assert.Contains(t, err.Error(), "hardware definition file",
		"the error must hint at a custom hardware definition file")
}

func TestPlan_RawXMLTakesNativeShape(t *testing.T) {
	a := readAdapter(t, &fakeRunner{dump: sampleDump})

	changed, err := a.Plan(engine.Desired{RawXML: `<Conrep>
<Section name="Turbo">Disabled</Section>
</Conrep>`})
	require.NoError(t, err)

	assert.True(t, changed)
	assert.Equal(t, "Turbo => Disabled\n", a.Diff().After)
}

func TestApply_SendsOnlyChangedSections(t *testing.T) {
	runner := &fakeRunner{dump: sampleDump}
	a := readAdapter(t, runner)

	_, err := a.Plan(engine.Desired{Settings: map[string]string{
		"PowerMonitoring": "Disabled",
		"Turbo":           "Enabled",
	}})
	require.NoError(t, err)
	require.NoError(t, a.Apply(context.Background()))

	require.Len(t, runner.loads, 1)
	assert.Equal(t, "<Conrep>\n<Section name=\"PowerMonitoring\">Disabled</Section>\n</Conrep>\n", runner.loads[0])
}

func TestFacts_MergesPlannedChanges(t *testing.T) {
	a := readAdapter(t, &fakeRunner{dump: sampleDump})

	_, err := a.Plan(engine.Desired{Settings: map[string]string{"PowerMonitoring": "Disabled"}})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"PowerMonitoring": "Disabled",
		"Turbo":           "Enabled",
		"AssetTag":        "",
	}, a.Facts())
}

func TestFacts_WithoutPlan(t *testing.T) {
	a := readAdapter(t, &fakeRunner{dump: sampleDump})

	assert.Equal(t, "Enabled", a.Facts()["PowerMonitoring"])
}
