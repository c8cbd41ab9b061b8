package workflow

import (
	sp "github.com/scipipe/scipipe"

	"github.com/harper357/viral-ngs/reports"
)

// MergeReports consolidates the per-sample reports of one kind into a
// single summary file with exactly one header line. The per-sample reports
// arrive as a substream so the merge only runs once every report exists;
// the actual paths are expanded from the sample list so that summary row
// order follows sample-list order, not scheduling order.
//
// A header disagreement between any two reports fails the whole run: a
// schema drift between samples is never silently merged.
type MergeReports struct {
	*sp.Process
}

// MergeReportsConf contains parameters for initializing a MergeReports
// process
type MergeReportsConf struct {
	// InPaths are the per-sample report paths in sample-list order.
	InPaths []string
	OutPath string
}

// NewMergeReports returns a new MergeReports process
func NewMergeReports(wf *sp.Workflow, name string, params MergeReportsConf) *MergeReports {
	p := wf.NewProc(name, "# {i:reports|join: } {o:summary}")
	p.SetOut("summary", params.OutPath)
	p.CustomExecute = func(t *sp.Task) {
		// Writing via the temp path keeps the published summary
		// all-or-nothing even though the merge itself is not atomic.
		if err := reports.CatFilesWithHeader(params.InPaths, t.OutIP("summary").TempPath()); err != nil {
			sp.Error.Fatalln("could not merge reports:", err)
		}
	}
	return &MergeReports{p}
}

// InReports returns the Reports in-port (substream)
func (p *MergeReports) InReports() *sp.InPort {
	return p.In("reports")
}

// OutSummary returns the Summary out-port
func (p *MergeReports) OutSummary() *sp.OutPort {
	return p.Out("summary")
}
