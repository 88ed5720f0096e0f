// Package sample holds the vocabulary shared by the normalization and catalog
// tools.
//
// Tuple files follow the naming convention
//
//	<datasetId>[_ext<N>][.part<M>].root
//
// where the optional "_extN" tag marks an extension of the original sample and
// the optional ".partM" tag marks one of several output files of the same job
// group. ParseFileName is the single place where this convention is decoded;
// both the aggregation of event counts (grouping by Base) and the derivation
// of input-file masks (grouping by ExtName) go through it.
//
// Fields is the JSON object type used for human-authored records. It keeps the
// key order of the source document so that regenerated catalogs diff cleanly.
package sample
