package workflow

import (
	sp "github.com/scipipe/scipipe"
)

// RefineAssembly polishes a draft assembly against the sample's own reads:
// novoalign maps the reads back onto the contigs, GATK realigns indels and
// calls a consensus, mirroring one round of assembly refinement
type RefineAssembly struct {
	*sp.Process
}

// RefineAssemblyConf contains parameters for initializing a RefineAssembly
// process
type RefineAssemblyConf struct {
	Sample    string
	Novoalign string
	GATKJar   string
	JVMMemory string
	TmpDir    string
	OutFasta  string
	// CmdPrefix is prepended verbatim to the stage command, e.g. a salloc
	// string for SLURM submission
	CmdPrefix string
}

// NewRefineAssembly returns a new RefineAssembly process
func NewRefineAssembly(wf *sp.Workflow, name string, params RefineAssemblyConf) *RefineAssembly {
	prefix := params.TmpDir + "/refine_" + params.Sample
	cmd := params.CmdPrefix +
		`samtools fastq -1 ` + prefix + `_1.fastq -2 ` + prefix + `_2.fastq {i:cleaned} && ` +
		`novoindex ` + prefix + `.nix {i:contigs} && ` +
		params.Novoalign + ` -f ` + prefix + `_1.fastq ` + prefix + `_2.fastq -d ` + prefix + `.nix -r Random -o SAM ` +
		`| samtools sort -o ` + prefix + `.bam - && ` +
		`samtools index ` + prefix + `.bam && ` +
		`java -Xmx` + params.JVMMemory + ` -jar ` + params.GATKJar + ` -T UnifiedGenotyper ` +
		`-R {i:contigs} -I ` + prefix + `.bam -ploidy 4 --min_base_quality_score 15 ` +
		`-o ` + prefix + `.vcf && ` +
		`bcftools consensus -f {i:contigs} ` + prefix + `.vcf > {o:refined}`
	p := wf.NewProc(name, cmd)
	p.SetOut("refined", params.OutFasta)
	return &RefineAssembly{p}
}

// InContigs returns the Contigs in-port
func (p *RefineAssembly) InContigs() *sp.InPort {
	return p.In("contigs")
}

// InCleaned returns the depleted reads in-port
func (p *RefineAssembly) InCleaned() *sp.InPort {
	return p.In("cleaned")
}

// OutRefined returns the Refined out-port
func (p *RefineAssembly) OutRefined() *sp.OutPort {
	return p.Out("refined")
}
