package workflow

import (
	sp "github.com/scipipe/scipipe"
)

// Report kinds produced per sample and consolidated per batch.
const (
	ReportCoverage   = "coverage"
	ReportSpikeCount = "spike_count"
)

// SampleReport generates one sample's line-oriented report file. Every
// report of a given kind carries the same header line, which is what lets
// the batch summary step validate them against each other.
type SampleReport struct {
	*sp.Process
}

// SampleReportConf contains parameters for initializing a SampleReport
// process
type SampleReportConf struct {
	Sample  string
	Kind    string
	OutFile string
}

// NewSampleReport returns a new SampleReport process
func NewSampleReport(wf *sp.Workflow, name string, params SampleReportConf) *SampleReport {
	var cmd string
	switch params.Kind {
	case ReportSpikeCount:
		cmd = `( printf 'sample\tspike\tcount\n' && ` +
			`samtools idxstats {i:mapped} | awk -v s=` + params.Sample + ` '$3 > 0 { print s "\t" $1 "\t" $3 }' ` +
			`) > {o:report}`
	default:
		cmd = `( printf 'chr\tpos\tdepth\n' && samtools depth -aa {i:mapped} ) > {o:report}`
	}
	p := wf.NewProc(name, cmd)
	p.SetOut("report", params.OutFile)
	return &SampleReport{p}
}

// InMapped returns the Mapped in-port
func (p *SampleReport) InMapped() *sp.InPort {
	return p.In("mapped")
}

// OutReport returns the Report out-port
func (p *SampleReport) OutReport() *sp.OutPort {
	return p.Out("report")
}
