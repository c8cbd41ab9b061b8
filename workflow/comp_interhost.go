package workflow

import (
	sp "github.com/scipipe/scipipe"

	"github.com/harper357/viral-ngs/fasta"
)

// TransposeGenomes regroups the per-sample assembly FASTAs into
// per-chromosome FASTAs so each chromosome can be multi-aligned across the
// whole batch. The sample assemblies arrive as a substream; the regrouped
// files are written next to the done flag on the out-port.
type TransposeGenomes struct {
	*sp.Process
}

// TransposeGenomesConf contains parameters for initializing a
// TransposeGenomes process
type TransposeGenomesConf struct {
	// InPaths are the per-sample assembly paths, in sample order. They
	// mirror the substream connected to InAssemblies, which only gates
	// scheduling.
	InPaths  []string
	OutDir   string
	Prefix   string
	DoneFlag string
}

// NewTransposeGenomes returns a new TransposeGenomes process
func NewTransposeGenomes(wf *sp.Workflow, name string, params TransposeGenomesConf) *TransposeGenomes {
	p := wf.NewProc(name, "# {i:assemblies|join: } {o:done}")
	p.SetOut("done", params.DoneFlag)
	p.CustomExecute = func(t *sp.Task) {
		if _, err := fasta.Transpose(params.InPaths, params.OutDir, params.Prefix); err != nil {
			sp.Error.Fatalln("could not transpose genome files:", err)
		}
		t.OutIP("done").Write([]byte("transpose_done\n"))
	}
	return &TransposeGenomes{p}
}

// InAssemblies returns the Assemblies in-port (substream)
func (p *TransposeGenomes) InAssemblies() *sp.InPort {
	return p.In("assemblies")
}

// OutDone returns the Done out-port
func (p *TransposeGenomes) OutDone() *sp.OutPort {
	return p.Out("done")
}

// MultiAlignMafft multi-aligns every per-chromosome FASTA with mafft
type MultiAlignMafft struct {
	*sp.Process
}

// MultiAlignMafftConf contains parameters for initializing a
// MultiAlignMafft process
type MultiAlignMafftConf struct {
	Mafft    string
	InDir    string
	Prefix   string
	DoneFlag string
}

// NewMultiAlignMafft returns a new MultiAlignMafft process
func NewMultiAlignMafft(wf *sp.Workflow, name string, params MultiAlignMafftConf) *MultiAlignMafft {
	cmd := `for f in ` + params.InDir + `/` + params.Prefix + `_*.fasta; do ` +
		params.Mafft + ` --auto --preservecase $f > ${f%.fasta}.aligned.fasta; ` +
		`done && echo mafft_done > {o:done} # {i:transposedone}`
	p := wf.NewProc(name, cmd)
	p.SetOut("done", params.DoneFlag)
	return &MultiAlignMafft{p}
}

// InTransposeDone returns the transpose done-flag in-port
func (p *MultiAlignMafft) InTransposeDone() *sp.InPort {
	return p.In("transposedone")
}

// OutDone returns the Done out-port
func (p *MultiAlignMafft) OutDone() *sp.OutPort {
	return p.Out("done")
}
