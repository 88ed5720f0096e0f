// Package catalog builds and reads the sample database: a JSON list with one
// record per dataset that combines the human-authored sample description,
// the normalization computed from the tuples, and glob masks selecting the
// tuple files of the dataset.
//
// Record layout:
//
//	datasetId, files, isData,
//	crossSection, eventsProcessed, meanWeight   (simulation with normalization only)
//	<remaining description fields, in source order>
//	<remaining normalization fields, in source order; never meanLHEWeights>
package catalog

import "errors"

var (
	// ErrMissingDatasetID reports an input entry without a string datasetId.
	ErrMissingDatasetID = errors.New(`missing mandatory field "datasetId"`)
	// ErrInvalidField reports a field whose JSON type is not the expected one.
	ErrInvalidField = errors.New("invalid field")
	// ErrMissingCrossSection reports a simulated sample with normalization but
	// no cross section.
	ErrMissingCrossSection = errors.New(`missing field "crossSection"`)
	// ErrNoFiles reports a dataset for which no tuple files were found.
	ErrNoFiles = errors.New("no ROOT files found")
	// ErrUnknownDataset reports a dataset ID absent from a catalog.
	ErrUnknownDataset = errors.New("dataset not found in catalog")
)

// Field names of catalog and input records.
const (
	FieldDatasetID       = "datasetId"
	FieldFiles           = "files"
	FieldIsData          = "isData"
	FieldCrossSection    = "crossSection"
	FieldEventsProcessed = "eventsProcessed"
	FieldMeanWeight      = "meanWeight"
	FieldMeanLHEWeights  = "meanLHEWeights"
)
