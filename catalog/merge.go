package catalog

import (
	"fmt"

	"github.com/mensura/sampledb/sample"
)

// Merge combines descriptions, normalizations, and file masks into catalog
// records, one per description in input order. A description without masks
// is an error. A simulated sample without a normalization entry is kept,
// with no normalization fields.
func Merge(descs []Description, norms map[string]*sample.Fields, masks map[string][]string) ([]*sample.Fields, error) {
	records := make([]*sample.Fields, 0, len(descs))
	for _, desc := range descs {
		rec, err := mergeOne(desc, norms[desc.DatasetID], masks[desc.DatasetID])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func mergeOne(desc Description, normInfo *sample.Fields, files []string) (*sample.Fields, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("dataset %q: %w", desc.DatasetID, ErrNoFiles)
	}

	rec := sample.NewFields()
	if err := rec.Set(FieldDatasetID, desc.DatasetID); err != nil {
		return nil, err
	}
	if err := rec.Set(FieldFiles, files); err != nil {
		return nil, err
	}
	if err := rec.Set(FieldIsData, desc.IsData); err != nil {
		return nil, err
	}

	// meanLHEWeights stays in the normalization file.
	skip := map[string]bool{FieldDatasetID: true, FieldFiles: true, FieldIsData: true, FieldMeanLHEWeights: true}

	if desc.IsData {
		// Data never carries normalization, whatever the inputs say.
		normInfo = nil
		for _, key := range []string{FieldCrossSection, FieldEventsProcessed, FieldMeanWeight} {
			skip[key] = true
		}
	}
	if normInfo != nil {
		var xsec float64
		found, err := desc.Fields.Decode(FieldCrossSection, &xsec)
		if !found {
			return nil, fmt.Errorf("dataset %q: %w", desc.DatasetID, ErrMissingCrossSection)
		}
		if err != nil {
			return nil, fmt.Errorf("dataset %q: %w: %w", desc.DatasetID, ErrInvalidField, err)
		}
		raw, _ := desc.Fields.Raw(FieldCrossSection)
		rec.SetRaw(FieldCrossSection, raw)
		for _, key := range []string{FieldEventsProcessed, FieldMeanWeight} {
			value, ok := normInfo.Raw(key)
			if !ok {
				return nil, fmt.Errorf("dataset %q: normalization has no %q: %w", desc.DatasetID, key, ErrInvalidField)
			}
			rec.SetRaw(key, value)
		}
		for _, key := range []string{FieldCrossSection, FieldEventsProcessed, FieldMeanWeight} {
			skip[key] = true
		}
	}

	copyFields(rec, desc.Fields, skip)
	if normInfo != nil {
		copyFields(rec, normInfo, skip)
	}
	return rec, nil
}

// copyFields appends fields of src not listed in skip. Keys already present in
// dst are overwritten in place, which only happens for keys both inputs share.
func copyFields(dst, src *sample.Fields, skip map[string]bool) {
	for _, key := range src.Keys() {
		if skip[key] {
			continue
		}
		value, _ := src.Raw(key)
		dst.SetRaw(key, value)
	}
}
