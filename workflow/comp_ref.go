package workflow

import (
	sp "github.com/scipipe/scipipe"
)

// FetchReference downloads a gzipped reference genome FASTA and unpacks it
// to its configured location, so a fresh checkout can run the pipeline
// without manually staging reference data
type FetchReference struct {
	*sp.Process
}

// FetchReferenceConf contains parameters for initializing a FetchReference
// process
type FetchReferenceConf struct {
	URL      string
	OutFasta string
}

// NewFetchReference returns a new FetchReference process
func NewFetchReference(wf *sp.Workflow, name string, params FetchReferenceConf) *FetchReference {
	p := wf.NewProc(name, `wget -qO- `+params.URL+` | zcat > {o:fasta}`)
	p.SetOut("fasta", params.OutFasta)
	return &FetchReference{p}
}

// OutFasta returns the Fasta out-port
func (p *FetchReference) OutFasta() *sp.OutPort {
	return p.Out("fasta")
}
