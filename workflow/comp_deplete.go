package workflow

import (
	sp "github.com/scipipe/scipipe"
)

// DepleteHost removes host (human) reads from a raw per-sample BAM:
// bmtagger partitions reads against the host database, then blastn catches
// what bmtagger missed
type DepleteHost struct {
	*sp.Process
}

// DepleteHostConf contains parameters for initializing a DepleteHost process
type DepleteHostConf struct {
	Sample     string
	Bmtagger   string
	BmtaggerDB string
	Blastn     string
	BlastDB    string
	TmpDir     string
	OutBam     string
	// DemuxGated adds a demux done-flag in-port, so depletion waits for
	// demultiplexing when the workflow starts from raw basecalls
	DemuxGated bool
	// CmdPrefix is prepended verbatim to the stage command, e.g. a salloc
	// string for SLURM submission
	CmdPrefix string
}

// NewDepleteHost returns a new DepleteHost process
func NewDepleteHost(wf *sp.Workflow, name string, params DepleteHostConf) *DepleteHost {
	tmpPrefix := params.TmpDir + "/" + params.Sample
	cmd := params.CmdPrefix +
		`samtools fastq -1 ` + tmpPrefix + `_1.fastq -2 ` + tmpPrefix + `_2.fastq {i:bam} && ` +
		params.Bmtagger + ` -X -b ` + params.BmtaggerDB + `.bitmask -x ` + params.BmtaggerDB + `.srprism -T ` + params.TmpDir + ` ` +
		`-q1 -1 ` + tmpPrefix + `_1.fastq -2 ` + tmpPrefix + `_2.fastq ` +
		`-o ` + tmpPrefix + `.bmtagger && ` +
		params.Blastn + ` -db ` + params.BlastDB + ` -word_size 16 -evalue 1e-6 -outfmt 6 ` +
		`-query ` + tmpPrefix + `.bmtagger.fasta ` +
		`-out ` + tmpPrefix + `.blast.hits && ` +
		`samtools import ` + tmpPrefix + `.bmtagger_1.fastq ` + tmpPrefix + `.bmtagger_2.fastq {o:cleaned}`
	if params.DemuxGated {
		cmd += ` # {i:demuxdone}`
	}
	p := wf.NewProc(name, cmd)
	p.SetOut("cleaned", params.OutBam)
	return &DepleteHost{p}
}

// InBam returns the raw Bam in-port
func (p *DepleteHost) InBam() *sp.InPort {
	return p.In("bam")
}

// InDemuxDone returns the demux done-flag in-port
func (p *DepleteHost) InDemuxDone() *sp.InPort {
	return p.In("demuxdone")
}

// OutCleaned returns the Cleaned out-port
func (p *DepleteHost) OutCleaned() *sp.OutPort {
	return p.Out("cleaned")
}
