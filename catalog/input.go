package catalog

import (
	"fmt"

	"github.com/mensura/sampledb/internal/jsonio"
	"github.com/mensura/sampledb/sample"
)

// Description is one human-authored sample description.
type Description struct {
	DatasetID string
	IsData    bool
	Fields    *sample.Fields
}

// LoadDescriptions reads the sample descriptions file. Every entry must carry
// a string datasetId; isData, when present, must be a boolean.
func LoadDescriptions(path string) ([]Description, error) {
	entries, err := loadEntries(path)
	if err != nil {
		return nil, err
	}

	descs := make([]Description, 0, len(entries))
	for i, fields := range entries {
		desc := Description{Fields: fields}
		desc.DatasetID, err = datasetID(fields)
		if err != nil {
			return nil, fmt.Errorf("entry #%d in %s: %w", i, path, err)
		}
		if _, err := fields.Decode(FieldIsData, &desc.IsData); err != nil {
			return nil, fmt.Errorf("dataset %q in %s: %w: %w", desc.DatasetID, path, ErrInvalidField, err)
		}
		descs = append(descs, desc)
	}
	return descs, nil
}

// LoadNormalizations reads a normalization file and indexes its entries by
// dataset ID. Alternative weights, if present, must have unique non-negative
// indices.
func LoadNormalizations(path string) (map[string]*sample.Fields, error) {
	entries, err := loadEntries(path)
	if err != nil {
		return nil, err
	}

	norms := make(map[string]*sample.Fields, len(entries))
	for i, fields := range entries {
		id, err := datasetID(fields)
		if err != nil {
			return nil, fmt.Errorf("entry #%d in %s: %w", i, path, err)
		}
		if err := checkLHEWeights(fields); err != nil {
			return nil, fmt.Errorf("dataset %q in %s: %w", id, path, err)
		}
		norms[id] = fields
	}
	return norms, nil
}

func loadEntries(path string) ([]*sample.Fields, error) {
	var entries []*sample.Fields
	if err := jsonio.ReadFile(path, &entries); err != nil {
		return nil, err
	}
	for i, fields := range entries {
		if fields == nil {
			return nil, fmt.Errorf("entry #%d in %s is not an object", i, path)
		}
	}
	return entries, nil
}

func datasetID(fields *sample.Fields) (string, error) {
	var id string
	found, err := fields.Decode(FieldDatasetID, &id)
	if !found {
		return "", ErrMissingDatasetID
	}
	if err != nil || id == "" {
		return "", fmt.Errorf("%w: %q must be a non-empty string", ErrInvalidField, FieldDatasetID)
	}
	return id, nil
}

func checkLHEWeights(fields *sample.Fields) error {
	var weights []sample.LHEWeight
	found, err := fields.Decode(FieldMeanLHEWeights, &weights)
	if !found {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidField, err)
	}
	seen := make(map[int]bool, len(weights))
	for _, w := range weights {
		if w.Index < 0 {
			return fmt.Errorf("%w: negative alternative weight index %d", ErrInvalidField, w.Index)
		}
		if seen[w.Index] {
			return fmt.Errorf("%w: duplicate alternative weight index %d", ErrInvalidField, w.Index)
		}
		seen[w.Index] = true
	}
	return nil
}
