package workflow

import (
	sp "github.com/scipipe/scipipe"

	"github.com/harper357/viral-ngs/samples"
)

// MakeLibraryParams writes the per-lane library params file that
// IlluminaBasecallsToSam reads to route barcodes to per-sample BAMs
type MakeLibraryParams struct {
	*sp.Process
}

// MakeLibraryParamsConf contains parameters for initializing a
// MakeLibraryParams process
type MakeLibraryParamsConf struct {
	Rows    []samples.SheetRow
	Lane    int
	OutPath string
	// BamPathFor maps a sample name to its demultiplexed BAM path
	BamPathFor func(sample string) string
}

// NewMakeLibraryParams returns a new MakeLibraryParams process
func NewMakeLibraryParams(wf *sp.Workflow, name string, params MakeLibraryParamsConf) *MakeLibraryParams {
	p := wf.NewProc(name, "# {o:libparams}")
	p.SetOut("libparams", params.OutPath)
	p.CustomExecute = func(t *sp.Task) {
		err := samples.WriteLibraryParams(params.Rows, params.Lane, t.OutIP("libparams").TempPath(), params.BamPathFor)
		if err != nil {
			sp.Error.Fatalln("could not write library params:", err)
		}
	}
	return &MakeLibraryParams{p}
}

// OutLibParams returns the LibParams out-port
func (p *MakeLibraryParams) OutLibParams() *sp.OutPort {
	return p.Out("libparams")
}

// DemuxLane demultiplexes one flowcell lane into per-sample unaligned BAMs
// with Picard IlluminaBasecallsToSam. The per-sample BAMs land at the paths
// named in the library params file; the out-port carries a done flag that
// downstream per-sample processes depend on.
type DemuxLane struct {
	*sp.Process
}

// DemuxLaneConf contains parameters for initializing a DemuxLane process
type DemuxLaneConf struct {
	PicardJar    string
	JVMMemory    string
	BasecallsDir string
	RunBarcode   string
	Lane         string
	DoneFlag     string
}

// NewDemuxLane returns a new DemuxLane process
func NewDemuxLane(wf *sp.Workflow, name string, params DemuxLaneConf) *DemuxLane {
	cmd := `java -Xmx` + params.JVMMemory + ` -jar ` + params.PicardJar + ` IlluminaBasecallsToSam ` +
		`BASECALLS_DIR=` + params.BasecallsDir + ` ` +
		`LANE=` + params.Lane + ` ` +
		`RUN_BARCODE=` + params.RunBarcode + ` ` +
		`LIBRARY_PARAMS={i:libparams} ` +
		`SEQUENCING_CENTER=viral-ngs ` +
		`&& echo demux_done > {o:done}`
	p := wf.NewProc(name, cmd)
	p.SetOut("done", params.DoneFlag)
	return &DemuxLane{p}
}

// InLibParams returns the LibParams in-port
func (p *DemuxLane) InLibParams() *sp.InPort {
	return p.In("libparams")
}

// OutDone returns the Done out-port
func (p *DemuxLane) OutDone() *sp.OutPort {
	return p.Out("done")
}
