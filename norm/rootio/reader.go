// Package rootio reads the event-count trees that the tuple producer stores
// in ROOT files, using the pure-Go go-hep groot implementation.
package rootio

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"

	"github.com/mensura/sampledb/norm"
)

// DefaultTreePath is where the tuple producer stores event counts.
const DefaultTreePath = "eventCounter/EventCounts"

// Branch names of the event-count tree. One entry corresponds to one job.
const (
	BranchNumProcessed      = "NumProcessed"
	BranchMeanNominalWeight = "MeanNominalWeight"
	BranchMeanAltWeights    = "MeanAltWeights"
)

// TreeReader reads event counts from the tree at TreePath, which may include
// directories separated by slashes.
type TreeReader struct {
	TreePath string
}

var _ norm.CountsReader = TreeReader{}

// ReadCounts implements norm.CountsReader. A file without the tree is
// reported as not found rather than as an error.
func (r TreeReader) ReadCounts(path string) (norm.JobTable, bool, error) {
	treePath := r.TreePath
	if treePath == "" {
		treePath = DefaultTreePath
	}

	f, err := groot.Open(path)
	if err != nil {
		return norm.JobTable{}, false, fmt.Errorf("could not open ROOT file: %w", err)
	}
	defer f.Close()

	obj, err := riofs.Dir(f).Get(treePath)
	if err != nil {
		logrus.Debugf("%s: no object %q: %v", path, treePath, err)
		return norm.JobTable{}, false, nil
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		logrus.Debugf("%s: object %q is a %s, not a tree", path, treePath, obj.Class())
		return norm.JobTable{}, false, nil
	}

	table, err := readTree(tree)
	if err != nil {
		return norm.JobTable{}, false, fmt.Errorf("tree %q: %w", treePath, err)
	}
	return table, true, nil
}

func readTree(tree rtree.Tree) (norm.JobTable, error) {
	var (
		rvars          []rtree.ReadVar
		numProcessed   any
		meanWeight     any
		meanAltWeights any
	)
	for _, rv := range rtree.NewReadVars(tree) {
		switch rv.Name {
		case BranchNumProcessed:
			numProcessed = rv.Value
		case BranchMeanNominalWeight:
			meanWeight = rv.Value
		case BranchMeanAltWeights:
			meanAltWeights = rv.Value
		default:
			continue
		}
		rvars = append(rvars, rv)
	}
	if numProcessed == nil {
		return norm.JobTable{}, fmt.Errorf("missing branch %q", BranchNumProcessed)
	}
	if meanWeight == nil {
		return norm.JobTable{}, fmt.Errorf("missing branch %q", BranchMeanNominalWeight)
	}

	r, err := rtree.NewReader(tree, rvars)
	if err != nil {
		return norm.JobTable{}, fmt.Errorf("could not create tree reader: %w", err)
	}
	defer r.Close()

	var table norm.JobTable
	err = r.Read(func(ctx rtree.RCtx) error {
		n, err := asInt64(numProcessed)
		if err != nil {
			return fmt.Errorf("entry %d, branch %q: %w", ctx.Entry, BranchNumProcessed, err)
		}
		w, err := asFloat64(meanWeight)
		if err != nil {
			return fmt.Errorf("entry %d, branch %q: %w", ctx.Entry, BranchMeanNominalWeight, err)
		}
		table.NumProcessed = append(table.NumProcessed, n)
		table.MeanNominalWeight = append(table.MeanNominalWeight, w)

		if meanAltWeights != nil {
			alt, err := asFloat64s(meanAltWeights)
			if err != nil {
				return fmt.Errorf("entry %d, branch %q: %w", ctx.Entry, BranchMeanAltWeights, err)
			}
			table.MeanAltWeights = append(table.MeanAltWeights, alt)
		}
		return nil
	})
	if err != nil {
		return norm.JobTable{}, err
	}
	return table, nil
}

func asInt64(v any) (int64, error) {
	switch v := v.(type) {
	case *int64:
		return *v, nil
	case *uint64:
		if *v > math.MaxInt64 {
			return 0, fmt.Errorf("event count %d overflows int64", *v)
		}
		return int64(*v), nil
	case *int32:
		return int64(*v), nil
	case *uint32:
		return int64(*v), nil
	case *int16:
		return int64(*v), nil
	case *uint16:
		return int64(*v), nil
	}
	return 0, fmt.Errorf("unsupported event-count type %T", v)
}

func asFloat64(v any) (float64, error) {
	switch v := v.(type) {
	case *float64:
		return *v, nil
	case *float32:
		return float64(*v), nil
	}
	return 0, fmt.Errorf("unsupported weight type %T", v)
}

// asFloat64s copies the slice, as the reader reuses its buffers between
// entries.
func asFloat64s(v any) ([]float64, error) {
	switch v := v.(type) {
	case *[]float64:
		out := make([]float64, len(*v))
		copy(out, *v)
		return out, nil
	case *[]float32:
		out := make([]float64, len(*v))
		for i, x := range *v {
			out[i] = float64(x)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported alternative-weight type %T", v)
}
