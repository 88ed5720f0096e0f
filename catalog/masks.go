package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/mensura/sampledb/sample"
)

// DeriveMasks scans dir and returns, for each of the requested dataset IDs
// that has at least one tuple file, the sorted set of glob masks selecting
// its files. Extensions get masks of their own so that a glob never spans two
// samples, while the parts of one job group collapse into a single mask.
func DeriveMasks(dir string, datasetIDs []string) (map[string][]string, error) {
	wanted := make(map[string]bool, len(datasetIDs))
	for _, id := range datasetIDs {
		wanted[id] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	sets := make(map[string]map[string]bool)
	for _, entry := range entries {
		name, ok := sample.ParseFileName(entry.Name())
		if !ok || !wanted[name.Base] {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if sets[name.Base] == nil {
			sets[name.Base] = make(map[string]bool)
		}
		sets[name.Base][name.Mask()] = true
	}

	masks := make(map[string][]string, len(sets))
	for id, set := range sets {
		list := make([]string, 0, len(set))
		for mask := range set {
			list = append(list, mask)
		}
		sort.Strings(list)
		masks[id] = list
		logrus.Debugf("dataset %q: masks %v", id, list)
	}
	return masks, nil
}
