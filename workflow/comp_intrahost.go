package workflow

import (
	sp "github.com/scipipe/scipipe"
)

// IntrahostVariants calls intra-host (minor-allele) variants on one sample
// with V-Phaser 2 against the sample's own assembly
type IntrahostVariants struct {
	*sp.Process
}

// IntrahostVariantsConf contains parameters for initializing an
// IntrahostVariants process
type IntrahostVariantsConf struct {
	Sample  string
	VPhaser string
	TmpDir  string
	OutFile string
}

// NewIntrahostVariants returns a new IntrahostVariants process
func NewIntrahostVariants(wf *sp.Workflow, name string, params IntrahostVariantsConf) *IntrahostVariants {
	outDir := params.TmpDir + "/vphaser_" + params.Sample
	cmd := params.VPhaser + ` -i {i:mapped} -o ` + outDir + ` && ` +
		`cat ` + outDir + `/*.var.raw.txt | gzip -c > {o:calls}`
	p := wf.NewProc(name, cmd)
	p.SetOut("calls", params.OutFile)
	return &IntrahostVariants{p}
}

// InMapped returns the Mapped in-port
func (p *IntrahostVariants) InMapped() *sp.InPort {
	return p.In("mapped")
}

// OutCalls returns the Calls out-port
func (p *IntrahostVariants) OutCalls() *sp.OutPort {
	return p.Out("calls")
}
