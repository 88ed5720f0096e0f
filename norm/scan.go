package norm

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mensura/sampledb/sample"
)

// CountsReader reads the per-job event-count rows stored in one tuple file.
// found is false when the file does not contain event counts; such files are
// not part of any dataset.
type CountsReader interface {
	ReadCounts(path string) (table JobTable, found bool, err error)
}

// FileGroup is the set of tuple files that share a dataset ID. Extensions and
// parts of a dataset are grouped together.
type FileGroup struct {
	DatasetID string
	Files     []string
}

// GroupFiles lists the regular files in dir whose names follow the tuple
// naming convention and groups them by dataset ID. Groups appear in the order
// of their first file in the sorted directory listing.
func GroupFiles(dir string) ([]FileGroup, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var groups []FileGroup
	index := make(map[string]int)
	for _, entry := range entries {
		name, ok := parseTupleName(dir, entry)
		if !ok {
			continue
		}
		i, seen := index[name.Base]
		if !seen {
			i = len(groups)
			index[name.Base] = i
			groups = append(groups, FileGroup{DatasetID: name.Base})
		}
		groups[i].Files = append(groups[i].Files, entry.Name())
	}
	return groups, nil
}

func parseTupleName(dir string, entry os.DirEntry) (sample.FileName, bool) {
	name, ok := sample.ParseFileName(entry.Name())
	if !ok {
		logrus.Debugf("skipping %s: not a tuple file name", entry.Name())
		return sample.FileName{}, false
	}
	// Stat follows symlinks, unlike the directory entry type.
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	if err != nil || !info.Mode().IsRegular() {
		logrus.Debugf("skipping %s: not a regular file", entry.Name())
		return sample.FileName{}, false
	}
	return name, true
}

// Scan reads the event counts of every tuple file in dir and aggregates them
// per dataset. Datasets none of whose files contain event counts are left
// out. Any inconsistency within a dataset aborts the scan.
func Scan(dir string, reader CountsReader, opts Options) ([]Record, error) {
	groups, err := GroupFiles(dir)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(groups))
	for _, group := range groups {
		var jobs JobTable
		numFiles := 0
		for _, file := range group.Files {
			table, found, err := reader.ReadCounts(filepath.Join(dir, file))
			if err != nil {
				return nil, fmt.Errorf("reading event counts from %s: %w", file, err)
			}
			if !found {
				logrus.Debugf("skipping %s: no event counts", file)
				continue
			}
			jobs.Append(table)
			numFiles++
		}
		if numFiles == 0 {
			logrus.Infof("dataset %q: no file contains event counts, skipped", group.DatasetID)
			continue
		}

		rec, err := Aggregate(group.DatasetID, jobs, opts)
		if err != nil {
			return nil, err
		}
		logrus.Infof("dataset %q: %d events from %d jobs in %d files",
			rec.DatasetID, rec.EventsProcessed, jobs.Len(), numFiles)
		records = append(records, rec)
	}
	return records, nil
}
