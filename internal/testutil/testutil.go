// Package testutil provides shared test infrastructure for the sampledb
// packages: tuple-directory fixtures, golden catalog files, and tolerant
// float comparison.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// TouchFiles creates empty files with the given names in dir.
func TouchFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}
}

// WriteFile writes content to dir/name and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// GoldenPath returns the path of a file under the repository testdata/
// directory. The path is resolved relative to this source file:
// internal/testutil/ -> testdata/.
func GoldenPath(t *testing.T, elem ...string) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	parts := append([]string{filepath.Dir(thisFile), "..", "..", "testdata"}, elem...)
	return filepath.Join(parts...)
}

// ReadGolden returns the content of a file under testdata/.
func ReadGolden(t *testing.T, elem ...string) string {
	t.Helper()
	data, err := os.ReadFile(GoldenPath(t, elem...))
	if err != nil {
		t.Fatalf("Failed to read golden file: %v", err)
	}
	return string(data)
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
