// Package config holds the run configuration for the pipeline: directory
// layout, sample-set files, and external tool locations. Every component
// receives the parts it needs explicitly; there is no global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
	"gopkg.in/yaml.v3"
)

// Stage subdirectories under DataDir, in pipeline order.
const (
	SubdirRaw       = "00_raw"
	SubdirDepleted  = "01_per_sample"
	SubdirAssembly  = "02_assembly"
	SubdirAligned   = "03_aligned"
	SubdirIntrahost = "04_intrahost"
	SubdirInterhost = "05_interhost"
)

// Config is the explicit run configuration, normally loaded from a YAML
// file next to the data.
type Config struct {
	// Directory layout.
	DataDir    string `yaml:"data_dir"`
	TmpDir     string `yaml:"tmp_dir"`
	ReportsDir string `yaml:"reports_dir"`
	RefDir     string `yaml:"ref_dir"`
	BinDir     string `yaml:"bin_dir"`

	// Reference genome FASTA, relative to RefDir unless absolute.
	RefGenome string `yaml:"ref_genome"`

	// Optional URL of a gzipped reference genome FASTA. When set, the
	// workflow downloads and unpacks it to RefGenomePath before any stage
	// that needs the reference runs.
	RefURL string `yaml:"ref_url"`

	// Flowcell samplesheet for demultiplexing.
	SampleSheet string `yaml:"samplesheet"`

	// Per-flavor sample lists. Each names a file of sample names, one per
	// line, that scopes which samples a pipeline flavor runs over.
	Samples SamplesConfig `yaml:"samples"`

	Tools ToolsConfig `yaml:"tools"`

	// Optional SLURM job submission for the heavy stages.
	Slurm SlurmConfig `yaml:"slurm"`

	// Max concurrent tasks for the workflow engine.
	MaxTasks int `yaml:"max_tasks"`
}

// SamplesConfig names the sample-list files per pipeline flavor.
type SamplesConfig struct {
	Depletion string `yaml:"depletion"`
	Assembly  string `yaml:"assembly"`
	Interhost string `yaml:"interhost"`
	Intrahost string `yaml:"intrahost"`
}

// ToolsConfig locates the external tools the stages shell out to. Paths are
// used verbatim, so bare names resolve via $PATH.
type ToolsConfig struct {
	PicardJar  string `yaml:"picard_jar"`
	GATKJar    string `yaml:"gatk_jar"`
	JVMMemory  string `yaml:"jvm_memory"`
	Novoalign  string `yaml:"novoalign"`
	Trinity    string `yaml:"trinity"`
	Mafft      string `yaml:"mafft"`
	VPhaser    string `yaml:"vphaser"`
	Bmtagger   string `yaml:"bmtagger"`
	Blastn     string `yaml:"blastn"`
	LastalDB   string `yaml:"lastal_db"`
	BmtaggerDB string `yaml:"bmtagger_db"`
}

// Load reads and validates a Config from a YAML file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, pfx.Err(err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.TmpDir == "" {
		c.TmpDir = "tmp"
	}
	if c.ReportsDir == "" && c.DataDir != "" {
		c.ReportsDir = filepath.Join(c.DataDir, "reports")
	}
	if c.MaxTasks <= 0 {
		c.MaxTasks = 4
	}
	if c.Tools.JVMMemory == "" {
		c.Tools.JVMMemory = "2g"
	}
	if c.Tools.Novoalign == "" {
		c.Tools.Novoalign = "novoalign"
	}
	if c.Tools.Trinity == "" {
		c.Tools.Trinity = "Trinity"
	}
	if c.Tools.Mafft == "" {
		c.Tools.Mafft = "mafft"
	}
	if c.Tools.VPhaser == "" {
		c.Tools.VPhaser = "vphaser2"
	}
	if c.Tools.Blastn == "" {
		c.Tools.Blastn = "blastn"
	}
	if c.Tools.Bmtagger == "" {
		c.Tools.Bmtagger = "bmtagger.sh"
	}
}

// Validate checks the fields that every run needs.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return pfx.Err(fmt.Errorf("config: data_dir must be set"))
	}
	if c.RefGenome == "" {
		return pfx.Err(fmt.Errorf("config: ref_genome must be set"))
	}
	return nil
}

// SamplesFile returns the sample-list path for a pipeline flavor.
func (c *Config) SamplesFile(flavor string) (string, error) {
	switch flavor {
	case "depletion":
		return c.Samples.Depletion, nil
	case "assembly":
		return c.Samples.Assembly, nil
	case "interhost":
		return c.Samples.Interhost, nil
	case "intrahost":
		return c.Samples.Intrahost, nil
	}
	return "", pfx.Err(fmt.Errorf("config: unknown sample-set flavor %q", flavor))
}

// RefGenomePath resolves the reference genome FASTA.
func (c *Config) RefGenomePath() string {
	if filepath.IsAbs(c.RefGenome) {
		return c.RefGenome
	}
	return filepath.Join(c.RefDir, c.RefGenome)
}

// StageDir returns the directory for one stage's outputs.
func (c *Config) StageDir(subdir string) string {
	return filepath.Join(c.DataDir, subdir)
}

// RawBamPath is the demultiplexed, unaligned per-sample BAM.
func (c *Config) RawBamPath(sample string) string {
	return filepath.Join(c.StageDir(SubdirRaw), sample+".bam")
}

// CleanBamPath is the host-depleted per-sample BAM.
func (c *Config) CleanBamPath(sample string) string {
	return filepath.Join(c.StageDir(SubdirDepleted), sample+".cleaned.bam")
}

// AssemblyPath is the refined per-sample assembly FASTA.
func (c *Config) AssemblyPath(sample string) string {
	return filepath.Join(c.StageDir(SubdirAssembly), sample+".fasta")
}

// MappedBamPath is the per-sample BAM aligned to its own assembly.
func (c *Config) MappedBamPath(sample string) string {
	return filepath.Join(c.StageDir(SubdirAligned), sample+".mapped.bam")
}

// IntrahostVcfPath is the per-sample intra-host variant calls file.
func (c *Config) IntrahostVcfPath(sample string) string {
	return filepath.Join(c.StageDir(SubdirIntrahost), "vphaser2."+sample+".txt.gz")
}

// ReportPath is the per-sample report of the given kind (e.g. "coverage",
// "spike_count"). These are the inputs to the summary merge.
func (c *Config) ReportPath(sample, kind string) string {
	return filepath.Join(c.ReportsDir, sample+"."+kind+".txt")
}

// ReportPaths expands a sample list into report paths, preserving order.
func (c *Config) ReportPaths(names []string, kind string) []string {
	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, c.ReportPath(name, kind))
	}
	return paths
}

// SummaryPath is the merged, single-header summary artifact of the given
// report kind for the whole batch.
func (c *Config) SummaryPath(kind string) string {
	return filepath.Join(c.ReportsDir, "summary."+kind+".txt")
}
