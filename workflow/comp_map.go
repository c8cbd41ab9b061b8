package workflow

import (
	sp "github.com/scipipe/scipipe"
)

// MapToAssembly aligns a sample's depleted reads to its own refined
// assembly, producing the sorted, indexed BAM that coverage reporting and
// intra-host variant calling both consume
type MapToAssembly struct {
	*sp.Process
}

// MapToAssemblyConf contains parameters for initializing a MapToAssembly
// process
type MapToAssemblyConf struct {
	Sample    string
	Novoalign string
	TmpDir    string
	OutBam    string
	// CmdPrefix is prepended verbatim to the stage command, e.g. a salloc
	// string for SLURM submission
	CmdPrefix string
}

// NewMapToAssembly returns a new MapToAssembly process
func NewMapToAssembly(wf *sp.Workflow, name string, params MapToAssemblyConf) *MapToAssembly {
	prefix := params.TmpDir + "/map_" + params.Sample
	cmd := params.CmdPrefix +
		`samtools fastq -1 ` + prefix + `_1.fastq -2 ` + prefix + `_2.fastq {i:cleaned} && ` +
		`novoindex ` + prefix + `.nix {i:assembly} && ` +
		params.Novoalign + ` -f ` + prefix + `_1.fastq ` + prefix + `_2.fastq -d ` + prefix + `.nix -r Random -o SAM ` +
		`| samtools view -b -q 1 -F 1028 - ` +
		`| samtools sort -o {o:mapped} - && ` +
		`samtools index {o:mapped}`
	p := wf.NewProc(name, cmd)
	p.SetOut("mapped", params.OutBam)
	return &MapToAssembly{p}
}

// InCleaned returns the depleted reads in-port
func (p *MapToAssembly) InCleaned() *sp.InPort {
	return p.In("cleaned")
}

// InAssembly returns the Assembly in-port
func (p *MapToAssembly) InAssembly() *sp.InPort {
	return p.In("assembly")
}

// OutMapped returns the Mapped out-port
func (p *MapToAssembly) OutMapped() *sp.OutPort {
	return p.Out("mapped")
}
