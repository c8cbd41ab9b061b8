// Package workflow declares the viral sequencing pipeline as a scipipe
// workflow: demultiplexing, host-read depletion, de novo assembly and
// refinement, read mapping, inter- and intra-host analysis, and per-batch
// report consolidation. Each stage delegates its work to an external tool;
// this package only wires inputs to outputs.
package workflow

import (
	"strconv"

	sp "github.com/scipipe/scipipe"
	spcomp "github.com/scipipe/scipipe/components"

	"github.com/harper357/viral-ngs/config"
	"github.com/harper357/viral-ngs/samples"
)

// SampleSets holds the resolved per-flavor sample lists. Order within each
// list is the order samples appear in their list file, and it determines
// the row order of every consolidated artifact.
type SampleSets struct {
	Depletion []string
	Assembly  []string
	Interhost []string
	Intrahost []string
}

// LoadSampleSets resolves every sample-list file named in cfg. Flavors
// without a configured file resolve to an empty set.
func LoadSampleSets(cfg *config.Config) (SampleSets, error) {
	sets := SampleSets{}
	for _, s := range []struct {
		path string
		dst  *[]string
	}{
		{cfg.Samples.Depletion, &sets.Depletion},
		{cfg.Samples.Assembly, &sets.Assembly},
		{cfg.Samples.Interhost, &sets.Interhost},
		{cfg.Samples.Intrahost, &sets.Intrahost},
	} {
		if s.path == "" {
			continue
		}
		names, err := samples.ReadSampleNames(s.path)
		if err != nil {
			return SampleSets{}, err
		}
		*s.dst = names
	}
	return sets, nil
}

// union merges name lists, keeping first-appearance order.
func union(lists ...[]string) []string {
	seen := map[string]bool{}
	var out []string
	for _, list := range lists {
		for _, name := range list {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// Build declares the full pipeline for one flowcell and returns the wired
// workflow, ready for Run or RunToRegex. Samples named in the interhost or
// intrahost sets need an assembly to analyze, so the per-sample chain
// (deplete, assemble, refine, map, report) is built over the union of the
// assembly-and-later flavors; depletion-only samples stop after depletion.
func Build(cfg *config.Config, sheet []samples.SheetRow, sets SampleSets) *sp.Workflow {
	wf := sp.NewWorkflow("viral-ngs", cfg.MaxTasks)

	assemblySamples := union(sets.Assembly, sets.Interhost, sets.Intrahost)
	depleteSamples := union(sets.Depletion, assemblySamples)

	sallocFor := func(jobName string) string {
		if cfg.Slurm.Enabled() {
			return cfg.Slurm.AsSallocString(jobName)
		}
		return ""
	}

	var fetchRef *FetchReference
	if cfg.RefURL != "" {
		fetchRef = NewFetchReference(wf, "fetch_reference", FetchReferenceConf{
			URL:      cfg.RefURL,
			OutFasta: cfg.RefGenomePath(),
		})
	}

	// ------------------------------------------------
	// Demultiplexing (per lane)
	// ------------------------------------------------
	demux := len(sheet) > 0
	var demuxDone *spcomp.StreamToSubStream
	if demux {
		demuxDone = spcomp.NewStreamToSubStream(wf, "demux_done_substream")
		for _, lane := range samples.Lanes(sheet) {
			sl := strconv.Itoa(lane)
			libParams := NewMakeLibraryParams(wf, "make_libparams_lane"+sl, MakeLibraryParamsConf{
				Rows:       sheet,
				Lane:       lane,
				OutPath:    cfg.TmpDir + "/libparams_lane" + sl + ".txt",
				BamPathFor: cfg.RawBamPath,
			})
			demuxLane := NewDemuxLane(wf, "demux_lane"+sl, DemuxLaneConf{
				PicardJar:    cfg.Tools.PicardJar,
				JVMMemory:    cfg.Tools.JVMMemory,
				BasecallsDir: cfg.StageDir(config.SubdirRaw) + "/basecalls",
				RunBarcode:   "flowcell",
				Lane:         sl,
				DoneFlag:     cfg.TmpDir + "/demux_lane" + sl + ".done.flag",
			})
			demuxLane.InLibParams().From(libParams.OutLibParams())
			demuxDone.In().From(demuxLane.OutDone())
		}
	}

	// ------------------------------------------------
	// Per-sample chain
	// ------------------------------------------------
	depleteProcs := map[string]*DepleteHost{}
	mapProcs := map[string]*MapToAssembly{}
	refineProcs := map[string]*RefineAssembly{}
	reportProcs := map[string]map[string]*SampleReport{
		ReportCoverage:   {},
		ReportSpikeCount: {},
	}

	for _, sample := range depleteSamples {
		rawSource := spcomp.NewFileSource(wf, "raw_bam_"+sample, cfg.RawBamPath(sample))

		deplete := NewDepleteHost(wf, "deplete_"+sample, DepleteHostConf{
			Sample:     sample,
			Bmtagger:   cfg.Tools.Bmtagger,
			BmtaggerDB: cfg.Tools.BmtaggerDB,
			Blastn:     cfg.Tools.Blastn,
			BlastDB:    cfg.Tools.LastalDB,
			TmpDir:     cfg.TmpDir,
			OutBam:     cfg.CleanBamPath(sample),
			DemuxGated: demux,
			CmdPrefix:  sallocFor("deplete_" + sample),
		})
		deplete.InBam().From(rawSource.Out())
		if demux {
			deplete.InDemuxDone().From(demuxDone.OutSubStream())
		}
		depleteProcs[sample] = deplete
	}

	for _, sample := range assemblySamples {
		deplete := depleteProcs[sample]

		assemble := NewAssembleTrinity(wf, "assemble_"+sample, AssembleTrinityConf{
			Sample:     sample,
			Trinity:    cfg.Tools.Trinity,
			RefFasta:   cfg.RefGenomePath(),
			TmpDir:     cfg.TmpDir,
			OutFasta:   cfg.StageDir(config.SubdirAssembly) + "/" + sample + ".contigs.fasta",
			MaxMemory:  cfg.Tools.JVMMemory,
			FetchedRef: fetchRef != nil,
			CmdPrefix:  sallocFor("assemble_" + sample),
		})
		assemble.InCleaned().From(deplete.OutCleaned())
		if fetchRef != nil {
			assemble.InRef().From(fetchRef.OutFasta())
		}

		refine := NewRefineAssembly(wf, "refine_"+sample, RefineAssemblyConf{
			Sample:    sample,
			Novoalign: cfg.Tools.Novoalign,
			GATKJar:   cfg.Tools.GATKJar,
			JVMMemory: cfg.Tools.JVMMemory,
			TmpDir:    cfg.TmpDir,
			OutFasta:  cfg.AssemblyPath(sample),
			CmdPrefix: sallocFor("refine_" + sample),
		})
		refine.InContigs().From(assemble.OutContigs())
		refine.InCleaned().From(deplete.OutCleaned())
		refineProcs[sample] = refine

		mapToAsm := NewMapToAssembly(wf, "map_"+sample, MapToAssemblyConf{
			Sample:    sample,
			Novoalign: cfg.Tools.Novoalign,
			TmpDir:    cfg.TmpDir,
			OutBam:    cfg.MappedBamPath(sample),
			CmdPrefix: sallocFor("map_" + sample),
		})
		mapToAsm.InCleaned().From(deplete.OutCleaned())
		mapToAsm.InAssembly().From(refine.OutRefined())
		mapProcs[sample] = mapToAsm

		for _, kind := range []string{ReportCoverage, ReportSpikeCount} {
			report := NewSampleReport(wf, "report_"+kind+"_"+sample, SampleReportConf{
				Sample:  sample,
				Kind:    kind,
				OutFile: cfg.ReportPath(sample, kind),
			})
			report.InMapped().From(mapToAsm.OutMapped())
			reportProcs[kind][sample] = report
		}
	}

	// ------------------------------------------------
	// Report consolidation
	// ------------------------------------------------
	for _, kind := range []string{ReportCoverage, ReportSpikeCount} {
		ss := spcomp.NewStreamToSubStream(wf, "substream_reports_"+kind)
		for _, sample := range assemblySamples {
			ss.In().From(reportProcs[kind][sample].OutReport())
		}
		merge := NewMergeReports(wf, "merge_reports_"+kind, MergeReportsConf{
			InPaths: cfg.ReportPaths(assemblySamples, kind),
			OutPath: cfg.SummaryPath(kind),
		})
		merge.InReports().From(ss.OutSubStream())
	}

	// ------------------------------------------------
	// Inter-host analysis
	// ------------------------------------------------
	if len(sets.Interhost) > 0 {
		interhostDir := cfg.StageDir(config.SubdirInterhost)
		ss := spcomp.NewStreamToSubStream(wf, "substream_assemblies")
		assemblyPaths := make([]string, 0, len(sets.Interhost))
		for _, sample := range sets.Interhost {
			ss.In().From(refineProcs[sample].OutRefined())
			assemblyPaths = append(assemblyPaths, cfg.AssemblyPath(sample))
		}

		transpose := NewTransposeGenomes(wf, "transpose_genomes", TransposeGenomesConf{
			InPaths:  assemblyPaths,
			OutDir:   interhostDir,
			Prefix:   "singlechr",
			DoneFlag: interhostDir + "/transpose.done.flag",
		})
		transpose.InAssemblies().From(ss.OutSubStream())

		mafft := NewMultiAlignMafft(wf, "multialign_mafft", MultiAlignMafftConf{
			Mafft:    cfg.Tools.Mafft,
			InDir:    interhostDir,
			Prefix:   "singlechr",
			DoneFlag: interhostDir + "/mafft.done.flag",
		})
		mafft.InTransposeDone().From(transpose.OutDone())
	}

	// ------------------------------------------------
	// Intra-host analysis
	// ------------------------------------------------
	for _, sample := range sets.Intrahost {
		intrahost := NewIntrahostVariants(wf, "intrahost_"+sample, IntrahostVariantsConf{
			Sample:  sample,
			VPhaser: cfg.Tools.VPhaser,
			TmpDir:  cfg.TmpDir,
			OutFile: cfg.IntrahostVcfPath(sample),
		})
		intrahost.InMapped().From(mapProcs[sample].OutMapped())
	}

	return wf
}
