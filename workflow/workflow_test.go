package workflow

import (
	"os"
	"path/filepath"
	"testing"

	sp "github.com/scipipe/scipipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper357/viral-ngs/config"
	"github.com/harper357/viral-ngs/samples"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		DataDir:    filepath.Join(dir, "data"),
		TmpDir:     filepath.Join(dir, "tmp"),
		ReportsDir: filepath.Join(dir, "reports"),
		RefDir:     filepath.Join(dir, "ref"),
		RefGenome:  "ebov.fasta",
		MaxTasks:   2,
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func writeSampleList(t *testing.T, dir, name string, lines string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(lines), 0644))
	return path
}

func TestLoadSampleSets(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t)
	cfg.Samples.Assembly = writeSampleList(t, dir, "assembly.txt", "S1\nS2\n")
	cfg.Samples.Intrahost = writeSampleList(t, dir, "intrahost.txt", "S2\n")

	sets, err := LoadSampleSets(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2"}, sets.Assembly)
	assert.Equal(t, []string{"S2"}, sets.Intrahost)
	assert.Empty(t, sets.Depletion)
	assert.Empty(t, sets.Interhost)
}

func TestLoadSampleSetsMissingFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Samples.Assembly = filepath.Join(t.TempDir(), "nope.txt")

	_, err := LoadSampleSets(cfg)
	require.Error(t, err)
}

func TestBuildWiresPerSampleChain(t *testing.T) {
	cfg := testConfig(t)
	sets := SampleSets{
		Assembly:  []string{"S1", "S2"},
		Intrahost: []string{"S2"},
	}

	wf := Build(cfg, nil, sets)

	procs := wf.Procs()
	for _, name := range []string{
		"deplete_S1", "deplete_S2",
		"assemble_S1", "assemble_S2",
		"refine_S1", "refine_S2",
		"map_S1", "map_S2",
		"report_coverage_S1", "report_spike_count_S2",
		"merge_reports_coverage", "merge_reports_spike_count",
		"intrahost_S2",
	} {
		assert.Contains(t, procs, name)
	}
	assert.NotContains(t, procs, "intrahost_S1")
	assert.NotContains(t, procs, "transpose_genomes")
	assert.NotContains(t, procs, "demux_lane1")
}

func TestBuildDepletionOnlySampleStopsAfterDepletion(t *testing.T) {
	cfg := testConfig(t)
	sets := SampleSets{
		Depletion: []string{"S9"},
		Assembly:  []string{"S1"},
	}

	wf := Build(cfg, nil, sets)

	procs := wf.Procs()
	assert.Contains(t, procs, "deplete_S9")
	assert.NotContains(t, procs, "assemble_S9")
}

func TestBuildInterhostStage(t *testing.T) {
	cfg := testConfig(t)
	sets := SampleSets{
		Assembly:  []string{"S1", "S2"},
		Interhost: []string{"S1", "S2"},
	}

	wf := Build(cfg, nil, sets)

	procs := wf.Procs()
	assert.Contains(t, procs, "transpose_genomes")
	assert.Contains(t, procs, "multialign_mafft")
}

func TestBuildAssemblesIntrahostOnlySample(t *testing.T) {
	cfg := testConfig(t)
	sets := SampleSets{
		Assembly:  []string{"S1"},
		Intrahost: []string{"S2"},
	}

	wf := Build(cfg, nil, sets)

	procs := wf.Procs()
	assert.Contains(t, procs, "assemble_S2")
	assert.Contains(t, procs, "map_S2")
	assert.Contains(t, procs, "intrahost_S2")
}

func TestBuildWithSampleSheetAddsDemux(t *testing.T) {
	cfg := testConfig(t)
	sheet := []samples.SheetRow{
		{Sample: "S1", Barcode1: "ACGT", Lane: 1},
		{Sample: "S2", Barcode1: "TTAA", Lane: 2},
	}
	sets := SampleSets{Assembly: []string{"S1", "S2"}}

	wf := Build(cfg, sheet, sets)

	procs := wf.Procs()
	assert.Contains(t, procs, "demux_lane1")
	assert.Contains(t, procs, "demux_lane2")
	assert.Contains(t, procs, "make_libparams_lane1")
}

func TestBuildWithRefURLAddsFetch(t *testing.T) {
	cfg := testConfig(t)
	cfg.RefURL = "https://example.org/ref/ebov.fasta.gz"
	sets := SampleSets{Assembly: []string{"S1"}}

	wf := Build(cfg, nil, sets)

	assert.Contains(t, wf.Procs(), "fetch_reference")
}

func TestSubStreamPortsRegistered(t *testing.T) {
	wf := sp.NewWorkflow("test_substream_ports", 1)

	merge := NewMergeReports(wf, "merge_reports", MergeReportsConf{
		InPaths: []string{"s1.coverage.txt"},
		OutPath: "summary.coverage.txt",
	})
	assert.NotNil(t, merge.InReports())
	assert.NotNil(t, merge.OutSummary())

	transpose := NewTransposeGenomes(wf, "transpose_genomes", TransposeGenomesConf{
		InPaths:  []string{"s1.fasta"},
		OutDir:   "interhost",
		Prefix:   "singlechr",
		DoneFlag: "interhost/transpose.done.flag",
	})
	assert.NotNil(t, transpose.InAssemblies())
	assert.NotNil(t, transpose.OutDone())
}

func TestUnion(t *testing.T) {
	got := union([]string{"a", "b"}, []string{"b", "c"}, nil, []string{"a", "d"})
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
	assert.Nil(t, union(nil, nil))
}
