package hprcu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsbios/biosctl/pkg/engine"
)

const sampleDoc = `<hprcu>
<feature feature_id="176" feature_type="option" selected_option_id="1">
<feature_name>Intel(R) Hyperthreading Options</feature_name>
<option option_id="1"><option_name>Enabled</option_name></option>
<option option_id="2"><option_name>Disabled</option_name></option>
</feature>
<feature feature_id="200" feature_type="string">
<feature_name>Server Asset Text</feature_name>
<feature_value>rack 4</feature_value>
</feature>
</hprcu>`

func parseSample(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseDocument(sampleDoc)
	require.NoError(t, err)
	return doc
}

func TestParseDocument_FeatureView(t *testing.T) {
	doc := parseSample(t)

	features := doc.Features()
	require.Len(t, features, 2)

	ht := features[0]
	assert.Equal(t, "176", ht.ID)
	assert.Equal(t, "Intel(R) Hyperthreading Options", ht.Name)
	assert.Equal(t, FeatureOption, ht.Kind)
	assert.Equal(t, "1", ht.SelectedOptionID)
	assert.Equal(t, []Option{{ID: "1", Name: "Enabled"}, {ID: "2", Name: "Disabled"}}, ht.Options)

	tag := features[1]
	assert.Equal(t, FeatureString, tag.Kind)
	assert.Equal(t, "rack 4", tag.Value)
}

func TestParseDocument_UnknownFeatureType(t *testing.T) {
	raw := `<hprcu>
<feature feature_id="1" feature_type="blob">
<feature_name>Mystery</feature_name>
</feature>
</hprcu>`

	_, err := ParseDocument(raw)

	var unknown *engine.UnknownFeatureTypeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "blob", unknown.FeatureType)
	assert.Equal(t, "Mystery", unknown.Feature)
}

func TestApplyEdits_SelectsOptionByName(t *testing.T) {
	doc := parseSample(t)

	target, changed, err := doc.ApplyEdits(map[string]string{
		"Intel(R) Hyperthreading Options": "Disabled",
	})
	require.NoError(t, err)

	assert.True(t, changed)
	assert.Equal(t, "2", target.Features()[0].SelectedOptionID)
	assert.Equal(t, "Disabled", target.Facts()["Intel(R) Hyperthreading Options"])
	assert.Equal(t, "1", doc.Features()[0].SelectedOptionID, "source document stays untouched")
	assert.Contains(t, target.String(), `selected_option_id="2"`)
}

func TestApplyEdits_StringValue(t *testing.T) {
	doc := parseSample(t)

	target, changed, err := doc.ApplyEdits(map[string]string{"Server Asset Text": "rack 9"})
	require.NoError(t, err)

	assert.True(t, changed)
	assert.Equal(t, "rack 9", target.Facts()["Server Asset Text"])
	assert.Equal(t, "rack 4", doc.Facts()["Server Asset Text"])
}

func TestApplyEdits_Idempotent(t *testing.T) {
	doc := parseSample(t)
	desired := map[string]string{
		"Intel(R) Hyperthreading Options": "Disabled",
		"Server Asset Text":               "rack 9",
	}

	once, changed, err := doc.ApplyEdits(desired)
	require.NoError(t, err)
	require.True(t, changed)

	_, changedAgain, err := once.ApplyEdits(desired)
	require.NoError(t, err)
	assert.False(t, changedAgain, "second application must report no change")
}

func TestApplyEdits_UnknownOptionValue(t *testing.T) {
	doc := parseSample(t)

	_, _, err := doc.ApplyEdits(map[string]string{
		"Intel(R) Hyperthreading Options": "Sideways",
	})

	var unknown *engine.UnknownOptionValueError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Sideways", unknown.Value)
	assert.Contains(t, unknown.State, "option_name", "diagnostics carry the serialized feature")
	assert.Equal(t, "1", doc.Features()[0].SelectedOptionID, "failed edit leaves the document unmodified")
}

func TestApplyEdits_ReportsEveryUnknownName(t *testing.T) {
	doc := parseSample(t)

	_, _, err := doc.ApplyEdits(map[string]string{
		"Server Asset Text": "rack 9",
		"Zeta":              "1",
		"Alpha":             "2",
	})

	var unknown *engine.UnknownSettingError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []string{"Alpha", "Zeta"}, unknown.Keys,
		"all misses are collected after attempting every match")
}

func TestCanonicalMap(t *testing.T) {
	doc := parseSample(t)

	assert.Equal(t, map[string]string{
		"176": "1",
		"200": "rack 4",
	}, doc.CanonicalMap())
}

func TestFacts_NilDocument(t *testing.T) {
	var doc *Document
	assert.Empty(t, doc.Facts())
}

func TestString_RoundTrips(t *testing.T) {
	doc := parseSample(t)

	reparsed, err := ParseDocument(doc.String())
	require.NoError(t, err)

	assert.Equal(t, doc.Features(), reparsed.Features())
	assert.Equal(t, doc.CanonicalMap(), reparsed.CanonicalMap())
}
