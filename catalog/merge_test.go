package catalog

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensura/sampledb/internal/jsonio"
	"github.com/mensura/sampledb/sample"
)

func parseFields(t *testing.T, src string) *sample.Fields {
	t.Helper()
	var f sample.Fields
	require.NoError(t, json.Unmarshal([]byte(src), &f))
	return &f
}

func description(t *testing.T, src string) Description {
	t.Helper()
	f := parseFields(t, src)
	desc := Description{Fields: f}
	_, err := f.Decode(FieldDatasetID, &desc.DatasetID)
	require.NoError(t, err)
	_, err = f.Decode(FieldIsData, &desc.IsData)
	require.NoError(t, err)
	return desc
}

func TestMerge_SimulationWithNormalization_FieldOrder(t *testing.T) {
	// GIVEN a simulated sample with extra fields and a normalization with alternative weights
	descs := []Description{description(t,
		`{"note": "x", "crossSection": 2.5, "datasetId": "tt", "isData": false, "eventsProcessed": 1}`)}
	norms := map[string]*sample.Fields{"tt": parseFields(t,
		`{"meanLHEWeights": [{"index": 0, "value": 1}], "meanWeight": 0.5, "datasetId": "tt", "eventsProcessed": 100, "extra": true}`)}
	masks := map[string][]string{"tt": {"tt.root"}}

	// WHEN merged
	records, err := Merge(descs, norms, masks)
	require.NoError(t, err)
	require.Len(t, records, 1)

	// THEN the fixed fields lead, followed by pass-through fields in source order
	want := []string{"datasetId", "files", "isData", "crossSection", "eventsProcessed", "meanWeight", "note", "extra"}
	if diff := cmp.Diff(want, records[0].Keys()); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}

	// AND normalization values win over description duplicates of the fixed fields
	var events int64
	_, err = records[0].Decode(FieldEventsProcessed, &events)
	require.NoError(t, err)
	assert.Equal(t, int64(100), events)
}

func TestMerge_NeverCopiesMeanLHEWeights(t *testing.T) {
	descs := []Description{description(t, `{"datasetId": "tt", "crossSection": 1}`)}
	norms := map[string]*sample.Fields{"tt": parseFields(t,
		`{"datasetId": "tt", "eventsProcessed": 1, "meanWeight": 1, "meanLHEWeights": [{"index": 0, "value": 1}]}`)}

	records, err := Merge(descs, norms, map[string][]string{"tt": {"tt.root"}})
	require.NoError(t, err)
	assert.False(t, records[0].Has(FieldMeanLHEWeights))
}

func TestMerge_DataNeverGetsNormalization(t *testing.T) {
	// GIVEN a data sample whose description mentions a cross section and which has a normalization entry
	descs := []Description{description(t, `{"datasetId": "mu", "isData": true, "crossSection": 1, "era": "B"}`)}
	norms := map[string]*sample.Fields{"mu": parseFields(t, `{"datasetId": "mu", "eventsProcessed": 5, "meanWeight": 1}`)}

	// WHEN merged
	records, err := Merge(descs, norms, map[string][]string{"mu": {"mu.part*.root"}})
	require.NoError(t, err)

	// THEN only the data fields and pass-through description fields remain
	assert.Equal(t, []string{"datasetId", "files", "isData", "era"}, records[0].Keys())
	out, err := json.Marshal(records[0])
	require.NoError(t, err)
	assert.Equal(t, `{"datasetId":"mu","files":["mu.part*.root"],"isData":true,"era":"B"}`, string(out))
}

func TestMerge_SimulationWithoutNormalization(t *testing.T) {
	descs := []Description{description(t, `{"datasetId": "zz", "crossSection": 12.1, "tag": "v2"}`)}

	records, err := Merge(descs, nil, map[string][]string{"zz": {"zz.root"}})
	require.NoError(t, err)

	out, err := json.Marshal(records[0])
	require.NoError(t, err)
	assert.Equal(t, `{"datasetId":"zz","files":["zz.root"],"isData":false,"crossSection":12.1,"tag":"v2"}`, string(out))
}

func TestMerge_NoFilesFails(t *testing.T) {
	descs := []Description{
		description(t, `{"datasetId": "a", "isData": true}`),
		description(t, `{"datasetId": "b", "isData": true}`),
	}

	records, err := Merge(descs, nil, map[string][]string{"a": {"a.root"}})
	assert.ErrorIs(t, err, ErrNoFiles)
	assert.Contains(t, err.Error(), `"b"`)
	assert.Nil(t, records)
}

func TestMerge_MissingCrossSectionFails(t *testing.T) {
	descs := []Description{description(t, `{"datasetId": "tt"}`)}
	norms := map[string]*sample.Fields{"tt": parseFields(t, `{"datasetId": "tt", "eventsProcessed": 1, "meanWeight": 1}`)}

	_, err := Merge(descs, norms, map[string][]string{"tt": {"tt.root"}})
	assert.ErrorIs(t, err, ErrMissingCrossSection)
}

func TestMerge_NonNumericCrossSectionFails(t *testing.T) {
	descs := []Description{description(t, `{"datasetId": "tt", "crossSection": "large"}`)}
	norms := map[string]*sample.Fields{"tt": parseFields(t, `{"datasetId": "tt", "eventsProcessed": 1, "meanWeight": 1}`)}

	_, err := Merge(descs, norms, map[string][]string{"tt": {"tt.root"}})
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestMerge_PreservesInputOrder(t *testing.T) {
	descs := []Description{
		description(t, `{"datasetId": "c", "isData": true}`),
		description(t, `{"datasetId": "a", "isData": true}`),
		description(t, `{"datasetId": "b", "isData": true}`),
	}
	masks := map[string][]string{"a": {"a.root"}, "b": {"b.root"}, "c": {"c.root"}}

	records, err := Merge(descs, nil, masks)
	require.NoError(t, err)

	var ids []string
	for _, rec := range records {
		var id string
		_, err := rec.Decode(FieldDatasetID, &id)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestMerge_PassThroughTextSurvivesEncoding(t *testing.T) {
	// GIVEN a description with characters that HTML escaping would rewrite
	descs := []Description{description(t, `{"datasetId": "st", "isData": true, "comment": "t & tW <NLO>"}`)}

	// WHEN merged and encoded for the catalog file
	records, err := Merge(descs, nil, map[string][]string{"st": {"st.root"}})
	require.NoError(t, err)
	out, err := jsonio.Encode(records)
	require.NoError(t, err)

	// THEN the comment is written as it was authored
	assert.Contains(t, string(out), `"comment": "t & tW <NLO>"`)
}
