package catalog

import (
	"github.com/sirupsen/logrus"

	"github.com/mensura/sampledb/internal/jsonio"
	"github.com/mensura/sampledb/sample"
)

// BuildConfig locates the inputs of a catalog build.
type BuildConfig struct {
	SourceDir        string // directory with tuple files
	DescriptionsPath string // human-authored sample descriptions
	NormPath         string // normalization file written by the norm step
}

// Build reads the inputs named by cfg and returns the merged catalog records.
// Both input files must exist.
func Build(cfg BuildConfig) ([]*sample.Fields, error) {
	descs, err := LoadDescriptions(cfg.DescriptionsPath)
	if err != nil {
		return nil, err
	}

	norms, err := LoadNormalizations(cfg.NormPath)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(descs))
	for i, desc := range descs {
		ids[i] = desc.DatasetID
	}
	masks, err := DeriveMasks(cfg.SourceDir, ids)
	if err != nil {
		return nil, err
	}

	records, err := Merge(descs, norms, masks)
	if err != nil {
		return nil, err
	}
	logrus.Infof("merged %d samples", len(records))
	return records, nil
}

// Write stores catalog records at path as indented JSON.
func Write(path string, records []*sample.Fields) error {
	return jsonio.WriteFile(path, records)
}
