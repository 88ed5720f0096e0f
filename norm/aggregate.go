// Package norm computes per-dataset normalization: the total number of
// processed events, the mean nominal event weight, and the mean values of
// alternative (LHE) weights, combined over all jobs of a dataset.
package norm

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/mensura/sampledb/sample"
)

var (
	// ErrMismatchedEntries reports jobs that do not provide the same set of
	// quantities.
	ErrMismatchedEntries = errors.New("mismatched numbers of entries")
	// ErrMismatchedAltWeights reports jobs that disagree on the number of
	// alternative weights.
	ErrMismatchedAltWeights = errors.New("mismatched numbers of alternative weights")
	// ErrNoEvents reports a dataset whose jobs processed no events at all.
	ErrNoEvents = errors.New("no processed events")
	// ErrInvalidCount reports a negative event count or a total that does
	// not fit in int64.
	ErrInvalidCount = errors.New("invalid event count")
)

// JobTable holds per-job rows of one dataset. Entry i of every column belongs
// to job i.
type JobTable struct {
	NumProcessed      []int64
	MeanNominalWeight []float64
	// MeanAltWeights has one row per job that reported alternative weights.
	// It is empty when no job did.
	MeanAltWeights [][]float64
}

// Len returns the number of jobs.
func (t JobTable) Len() int {
	return len(t.NumProcessed)
}

// Append adds the rows of other after the rows of t.
func (t *JobTable) Append(other JobTable) {
	t.NumProcessed = append(t.NumProcessed, other.NumProcessed...)
	t.MeanNominalWeight = append(t.MeanNominalWeight, other.MeanNominalWeight...)
	t.MeanAltWeights = append(t.MeanAltWeights, other.MeanAltWeights...)
}

func (t JobTable) validate() error {
	if len(t.NumProcessed) != len(t.MeanNominalWeight) {
		return fmt.Errorf("%w: %d event counts, %d mean weights",
			ErrMismatchedEntries, len(t.NumProcessed), len(t.MeanNominalWeight))
	}
	if len(t.MeanAltWeights) > 0 && len(t.MeanAltWeights) != len(t.NumProcessed) {
		return fmt.Errorf("%w: %d jobs, %d of them with alternative weights",
			ErrMismatchedEntries, len(t.NumProcessed), len(t.MeanAltWeights))
	}
	for i := 1; i < len(t.MeanAltWeights); i++ {
		if len(t.MeanAltWeights[i]) != len(t.MeanAltWeights[0]) {
			return fmt.Errorf("%w: job 0 has %d, job %d has %d",
				ErrMismatchedAltWeights, len(t.MeanAltWeights[0]), i, len(t.MeanAltWeights[i]))
		}
	}
	for i, n := range t.NumProcessed {
		if n < 0 {
			return fmt.Errorf("%w: job %d reports %d processed events", ErrInvalidCount, i, n)
		}
	}
	return nil
}

// Options controls which quantities are aggregated.
type Options struct {
	// DropAltWeights suppresses the mean alternative weights in the output.
	DropAltWeights bool
}

// Record is the normalization of one dataset, as stored in the normalization
// file.
type Record struct {
	DatasetID       string             `json:"datasetId"`
	EventsProcessed int64              `json:"eventsProcessed"`
	MeanWeight      float64            `json:"meanWeight"`
	MeanLHEWeights  []sample.LHEWeight `json:"meanLHEWeights,omitempty"`
}

// Aggregate combines the jobs of one dataset. Mean weights are averaged with
// each job weighted by its number of processed events. jobs is not modified.
func Aggregate(datasetID string, jobs JobTable, opts Options) (Record, error) {
	if err := jobs.validate(); err != nil {
		return Record{}, fmt.Errorf("dataset %q: %w", datasetID, err)
	}

	var total int64
	for i, n := range jobs.NumProcessed {
		if n > math.MaxInt64-total {
			return Record{}, fmt.Errorf("dataset %q: %w: total overflows int64 at job %d", datasetID, ErrInvalidCount, i)
		}
		total += n
	}
	if total == 0 {
		return Record{}, fmt.Errorf("dataset %q: %w in %d jobs", datasetID, ErrNoEvents, jobs.Len())
	}

	fractions := make([]float64, jobs.Len())
	for i, n := range jobs.NumProcessed {
		fractions[i] = float64(n) / float64(total)
	}

	rec := Record{
		DatasetID:       datasetID,
		EventsProcessed: total,
		MeanWeight:      stat.Mean(jobs.MeanNominalWeight, fractions),
	}

	if len(jobs.MeanAltWeights) > 0 && !opts.DropAltWeights {
		numSlots := len(jobs.MeanAltWeights[0])
		column := make([]float64, jobs.Len())
		rec.MeanLHEWeights = make([]sample.LHEWeight, numSlots)
		for k := 0; k < numSlots; k++ {
			for i, row := range jobs.MeanAltWeights {
				column[i] = row[k]
			}
			rec.MeanLHEWeights[k] = sample.LHEWeight{Index: k, Value: stat.Mean(column, fractions)}
		}
	}

	return rec, nil
}
