package workflow

import (
	sp "github.com/scipipe/scipipe"
)

// AssembleTrinity runs a de novo assembly of the depleted reads with
// Trinity and orients the resulting contigs against the reference genome
type AssembleTrinity struct {
	*sp.Process
}

// AssembleTrinityConf contains parameters for initializing an
// AssembleTrinity process
type AssembleTrinityConf struct {
	Sample    string
	Trinity   string
	RefFasta  string
	TmpDir    string
	OutFasta  string
	MaxMemory string
	// FetchedRef switches the reference to an in-port, so assembly waits
	// for the reference download when one is configured
	FetchedRef bool
	// CmdPrefix is prepended verbatim to the stage command, e.g. a salloc
	// string for SLURM submission
	CmdPrefix string
}

// NewAssembleTrinity returns a new AssembleTrinity process
func NewAssembleTrinity(wf *sp.Workflow, name string, params AssembleTrinityConf) *AssembleTrinity {
	trinityDir := params.TmpDir + "/trinity_" + params.Sample
	refArg := params.RefFasta
	if params.FetchedRef {
		refArg = "{i:ref}"
	}
	cmd := params.CmdPrefix +
		`samtools fastq -1 ` + trinityDir + `_1.fastq -2 ` + trinityDir + `_2.fastq {i:cleaned} && ` +
		params.Trinity + ` --seqType fq ` +
		`--left ` + trinityDir + `_1.fastq --right ` + trinityDir + `_2.fastq ` +
		`--max_memory ` + params.MaxMemory + ` --output ` + trinityDir + ` && ` +
		`nucmer --prefix ` + trinityDir + `/vs_ref ` + refArg + ` ` + trinityDir + `/Trinity.fasta && ` +
		`show-tiling ` + trinityDir + `/vs_ref.delta > ` + trinityDir + `/tiling.txt && ` +
		`cp ` + trinityDir + `/Trinity.fasta {o:contigs}`
	p := wf.NewProc(name, cmd)
	p.SetOut("contigs", params.OutFasta)
	return &AssembleTrinity{p}
}

// InRef returns the Ref in-port, which only exists when FetchedRef is set
func (p *AssembleTrinity) InRef() *sp.InPort {
	return p.In("ref")
}

// InCleaned returns the Cleaned in-port
func (p *AssembleTrinity) InCleaned() *sp.InPort {
	return p.In("cleaned")
}

// OutContigs returns the Contigs out-port
func (p *AssembleTrinity) OutContigs() *sp.OutPort {
	return p.Out("contigs")
}
