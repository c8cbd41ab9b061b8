package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
data_dir: /data/flu
ref_dir: /data/refs
ref_genome: KJ660346.fasta
samplesheet: /data/flu/flowcell.txt
samples:
  depletion: /data/flu/samples-depletion.txt
  assembly: /data/flu/samples-assembly.txt
tools:
  picard_jar: /opt/picard/picard.jar
  jvm_memory: 7g
max_tasks: 8
`

func loadTestConfig(t *testing.T, yamlText string) *Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlText), 0644))
	cfg, err := Load(path)
	require.NoError(t, err)
	return cfg
}

func TestLoad(t *testing.T) {
	cfg := loadTestConfig(t, testYAML)

	assert.Equal(t, "/data/flu", cfg.DataDir)
	assert.Equal(t, 8, cfg.MaxTasks)
	assert.Equal(t, "/opt/picard/picard.jar", cfg.Tools.PicardJar)
	assert.Equal(t, "7g", cfg.Tools.JVMMemory)

	// Defaults fill the gaps.
	assert.Equal(t, "tmp", cfg.TmpDir)
	assert.Equal(t, filepath.Join("/data/flu", "reports"), cfg.ReportsDir)
	assert.Equal(t, "mafft", cfg.Tools.Mafft)
	assert.Equal(t, "novoalign", cfg.Tools.Novoalign)
}

func TestLoadRejectsIncomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("tmp_dir: tmp\n"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	cfg := loadTestConfig(t, testYAML)

	assert.Equal(t, "/data/refs/KJ660346.fasta", cfg.RefGenomePath())
	assert.Equal(t, "/data/flu/00_raw/S1.bam", cfg.RawBamPath("S1"))
	assert.Equal(t, "/data/flu/01_per_sample/S1.cleaned.bam", cfg.CleanBamPath("S1"))
	assert.Equal(t, "/data/flu/02_assembly/S1.fasta", cfg.AssemblyPath("S1"))
	assert.Equal(t, "/data/flu/reports/S1.coverage.txt", cfg.ReportPath("S1", "coverage"))
	assert.Equal(t, "/data/flu/reports/summary.coverage.txt", cfg.SummaryPath("coverage"))

	paths := cfg.ReportPaths([]string{"S1", "S2"}, "spike_count")
	assert.Equal(t, []string{
		"/data/flu/reports/S1.spike_count.txt",
		"/data/flu/reports/S2.spike_count.txt",
	}, paths)
}

func TestSamplesFile(t *testing.T) {
	cfg := loadTestConfig(t, testYAML)

	path, err := cfg.SamplesFile("assembly")
	require.NoError(t, err)
	assert.Equal(t, "/data/flu/samples-assembly.txt", path)

	_, err = cfg.SamplesFile("phylogenetics")
	assert.Error(t, err)
}

func TestRefGenomeAbsolutePath(t *testing.T) {
	cfg := loadTestConfig(t, testYAML)
	cfg.RefGenome = "/elsewhere/ref.fasta"
	assert.Equal(t, "/elsewhere/ref.fasta", cfg.RefGenomePath())
}
