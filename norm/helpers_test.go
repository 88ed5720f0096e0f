package norm

import (
	"encoding/json"
	"errors"
	"path/filepath"
)

func jsonMarshal(v any) (string, error) {
	data, err := json.Marshal(v)
	return string(data), err
}

// fakeReader serves event counts keyed by file name.
type fakeReader struct {
	tables map[string]JobTable
	errs   map[string]error
	calls  []string
}

func (r *fakeReader) ReadCounts(path string) (JobTable, bool, error) {
	name := filepath.Base(path)
	r.calls = append(r.calls, name)
	if err, ok := r.errs[name]; ok {
		return JobTable{}, false, err
	}
	table, ok := r.tables[name]
	return table, ok, nil
}

func job(n int64, w float64, alt ...float64) JobTable {
	t := JobTable{NumProcessed: []int64{n}, MeanNominalWeight: []float64{w}}
	if alt != nil {
		t.MeanAltWeights = [][]float64{alt}
	}
	return t
}

var errBroken = errors.New("broken file")
