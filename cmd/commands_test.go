package cmd

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensura/sampledb/catalog"
	"github.com/mensura/sampledb/internal/testutil"
)

func tupleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.TouchFiles(t, dir,
		"ttbar.part1.root", "ttbar.part2.root", "ttbar_ext1.root",
		"SingleMuon.root", "wjets.root", "zjets.part1.root")
	return dir
}

func TestRunBuild_WritesCatalog(t *testing.T) {
	// GIVEN golden inputs and a tuple directory
	src := tupleDir(t)
	out := filepath.Join(t.TempDir(), "samples.json")

	// WHEN the build runs
	err := runBuild(src,
		testutil.GoldenPath(t, "build", "samples_descriptions.json"),
		testutil.GoldenPath(t, "build", "samples_norm.json"),
		out)
	require.NoError(t, err)

	// THEN the catalog equals the golden file
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, testutil.ReadGolden(t, "build", "samples.json"), string(data))
}

func TestRunBuild_FailureWritesNothing(t *testing.T) {
	// GIVEN a tuple directory without files for one dataset
	src := tupleDir(t)
	require.NoError(t, os.Remove(filepath.Join(src, "wjets.root")))
	outDir := t.TempDir()
	out := filepath.Join(outDir, "samples.json")

	// WHEN the build runs
	err := runBuild(src,
		testutil.GoldenPath(t, "build", "samples_descriptions.json"),
		testutil.GoldenPath(t, "build", "samples_norm.json"),
		out)

	// THEN it fails and leaves no output behind
	assert.ErrorIs(t, err, catalog.ErrNoFiles)
	entries, readErr := os.ReadDir(outDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestRunBuild_MissingNormFileWritesNothing(t *testing.T) {
	outDir := t.TempDir()
	out := filepath.Join(outDir, "samples.json")

	err := runBuild(tupleDir(t),
		testutil.GoldenPath(t, "build", "samples_descriptions.json"),
		filepath.Join(t.TempDir(), "samples_norm.json"),
		out)

	assert.ErrorIs(t, err, fs.ErrNotExist)
	entries, readErr := os.ReadDir(outDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestRunNorm_NoTuplesWritesEmptyList(t *testing.T) {
	src := t.TempDir()
	testutil.TouchFiles(t, src, "README.txt")
	out := filepath.Join(t.TempDir(), "samples_norm.json")

	require.NoError(t, runNorm(src, "eventCounter/EventCounts", false, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestRunNorm_UnreadableTupleFails(t *testing.T) {
	src := t.TempDir()
	testutil.WriteFile(t, src, "ttbar.root", "not a ROOT file")
	out := filepath.Join(t.TempDir(), "samples_norm.json")

	err := runNorm(src, "eventCounter/EventCounts", false, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ttbar.root")
	assert.NoFileExists(t, out)
}

func TestRunInspect_PrintsTable(t *testing.T) {
	// GIVEN a catalog built next to its tuples
	src := tupleDir(t)
	out := filepath.Join(src, "samples.json")
	require.NoError(t, runBuild(src,
		testutil.GoldenPath(t, "build", "samples_descriptions.json"),
		testutil.GoldenPath(t, "build", "samples_norm.json"),
		out))

	// WHEN inspected
	var buf bytes.Buffer
	require.NoError(t, runInspect(&buf, out, "", []string{"ttbar", "SingleMuon"}))

	// THEN each requested dataset is listed with its matched files
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "DATASET")
	assert.Regexp(t, `^ttbar\s+simulation\s+3\s+40\s+831\.76\s+`, string(lines[1]))
	assert.Regexp(t, `^SingleMuon\s+data\s+1\s+-`, string(lines[2]))
}

func TestRunInspect_UnknownDataset(t *testing.T) {
	src := tupleDir(t)
	out := filepath.Join(src, "samples.json")
	require.NoError(t, runBuild(src,
		testutil.GoldenPath(t, "build", "samples_descriptions.json"),
		testutil.GoldenPath(t, "build", "samples_norm.json"),
		out))

	err := runInspect(&bytes.Buffer{}, out, "", []string{"nope"})
	assert.ErrorIs(t, err, catalog.ErrUnknownDataset)
}
