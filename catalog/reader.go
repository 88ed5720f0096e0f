package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/mensura/sampledb/sample"
)

// Catalog is a sample database loaded from disk.
type Catalog struct {
	// BaseDir resolves relative file masks. It defaults to the directory of
	// the catalog file.
	BaseDir string

	order   []string
	entries map[string]*sample.Fields
}

// Dataset is a catalog entry resolved for use in an analysis.
type Dataset struct {
	ID              string
	IsData          bool
	Files           []string // masks with relative paths resolved against BaseDir
	CrossSection    float64  // pb; simulation only
	EventsProcessed int64    // simulation only
	MeanWeight      float64  // simulation only; 1 when absent
}

// WeightFactor returns the per-event weight that normalizes a simulated
// dataset to an integrated luminosity of 1/pb. It is 0 for data.
func (d Dataset) WeightFactor() float64 {
	if d.IsData || d.EventsProcessed == 0 || d.MeanWeight == 0 {
		return 0
	}
	return d.CrossSection / (d.MeanWeight * float64(d.EventsProcessed))
}

// ExpandFiles globs the file masks on disk and returns the sorted matches.
func (d Dataset) ExpandFiles() ([]string, error) {
	var files []string
	for _, mask := range d.Files {
		matches, err := filepath.Glob(mask)
		if err != nil {
			return nil, fmt.Errorf("dataset %q: mask %q: %w", d.ID, mask, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// Load reads a catalog file. The file must hold a non-empty list of objects,
// each with a string datasetId.
func Load(path string) (*Catalog, error) {
	entries, err := loadEntries(path)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("list of datasets in %s is empty", path)
	}

	c := &Catalog{
		BaseDir: filepath.Dir(path),
		entries: make(map[string]*sample.Fields, len(entries)),
	}
	for i, fields := range entries {
		id, err := datasetID(fields)
		if err != nil {
			return nil, fmt.Errorf("entry #%d in %s: %w", i, path, err)
		}
		if _, dup := c.entries[id]; !dup {
			c.order = append(c.order, id)
		}
		c.entries[id] = fields
	}
	return c, nil
}

// IDs returns the dataset IDs in file order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}

// Select resolves the requested datasets in the given order.
func (c *Catalog) Select(ids ...string) ([]Dataset, error) {
	datasets := make([]Dataset, 0, len(ids))
	for _, id := range ids {
		fields, ok := c.entries[id]
		if !ok {
			return nil, fmt.Errorf("dataset %q: %w", id, ErrUnknownDataset)
		}
		d, err := c.resolve(id, fields)
		if err != nil {
			return nil, fmt.Errorf("dataset %q: %w", id, err)
		}
		datasets = append(datasets, d)
	}
	return datasets, nil
}

func (c *Catalog) resolve(id string, fields *sample.Fields) (Dataset, error) {
	d := Dataset{ID: id, MeanWeight: 1}

	found, err := fields.Decode(FieldIsData, &d.IsData)
	if !found || err != nil {
		return Dataset{}, fmt.Errorf("%w: %q must be a boolean", ErrInvalidField, FieldIsData)
	}

	var masks []string
	found, err = fields.Decode(FieldFiles, &masks)
	if !found || err != nil {
		return Dataset{}, fmt.Errorf("%w: %q must be an array of strings", ErrInvalidField, FieldFiles)
	}
	for _, mask := range masks {
		if mask == "" {
			return Dataset{}, fmt.Errorf("%w: empty path in %q", ErrInvalidField, FieldFiles)
		}
		if !filepath.IsAbs(mask) {
			mask = filepath.Join(c.BaseDir, mask)
		}
		d.Files = append(d.Files, mask)
	}

	if d.IsData {
		return d, nil
	}

	if err := decodeRequired(fields, FieldCrossSection, &d.CrossSection); err != nil {
		return Dataset{}, err
	}
	if err := decodeRequired(fields, FieldEventsProcessed, &d.EventsProcessed); err != nil {
		return Dataset{}, err
	}
	if _, err := fields.Decode(FieldMeanWeight, &d.MeanWeight); err != nil {
		return Dataset{}, fmt.Errorf("%w: %w", ErrInvalidField, err)
	}
	return d, nil
}

func decodeRequired(fields *sample.Fields, key string, v any) error {
	found, err := fields.Decode(key, v)
	if !found {
		return fmt.Errorf("%w: missing %q", ErrInvalidField, key)
	}
	if err != nil {
		return errors.Join(ErrInvalidField, err)
	}
	return nil
}
