// Package interhost holds the inter-host analysis helpers: coordinate
// mapping between aligned genomes, built on the pairwise alignments the
// mafft stage produces.
package interhost

import (
	"fmt"
	"sort"

	"github.com/carbocation/pfx"
	"github.com/harper357/viral-ngs/fasta"
)

// A Span is a closed 1-based coordinate interval. A single position is a
// Span whose Left and Right are equal; a base aligned against a trailing gap
// maps to a wider Span covering the base and the gap it absorbs.
type Span struct {
	Left  int
	Right int
}

// A SeqMap maps 1-based coordinates between two aligned sequences. Gaps are
// dashes; every other byte counts as a real base.
//
// Only anchor pairs are stored: the first aligned pair, the last, and the
// pair immediately following any gap, so space is proportional to the number
// of indels and each lookup is a binary search.
type SeqMap struct {
	anchors [2][]int
}

// NewSeqMap builds a SeqMap from two already-aligned sequences of equal
// length. It fails if the sequences are of different lengths, align a gap to
// a gap, place gaps in the two sequences adjacent to each other, or share no
// aligned base at all.
func NewSeqMap(seq0, seq1 []byte) (*SeqMap, error) {
	if len(seq0) != len(seq1) {
		return nil, pfx.Err(fmt.Errorf("interhost: aligned sequences differ in length (%d vs %d)", len(seq0), len(seq1)))
	}

	m := &SeqMap{}
	var (
		baseCount0, baseCount1 int
		finalPos0, finalPos1   int
		beforeStart            = true
		gapSinceLast           = false
		prevReal0, prevReal1   = true, true
	)
	for i := range seq0 {
		real0 := seq0[i] != '-'
		real1 := seq1[i] != '-'
		if !real0 && !real1 {
			return nil, pfx.Err(fmt.Errorf("interhost: gap aligned to gap at column %d", i+1))
		}
		if (!real0 && !prevReal1) || (!real1 && !prevReal0) {
			return nil, pfx.Err(fmt.Errorf("interhost: gap in one sequence adjacent to gap in the other at column %d", i+1))
		}
		prevReal0, prevReal1 = real0, real1
		if real0 {
			baseCount0++
		}
		if real1 {
			baseCount1++
		}
		if real0 && real1 {
			if beforeStart || gapSinceLast {
				m.anchors[0] = append(m.anchors[0], baseCount0)
				m.anchors[1] = append(m.anchors[1], baseCount1)
				gapSinceLast = false
				beforeStart = false
			}
			finalPos0, finalPos1 = baseCount0, baseCount1
		} else {
			gapSinceLast = true
		}
	}
	if len(m.anchors[0]) == 0 {
		return nil, pfx.Err(fmt.Errorf("interhost: no aligned bases"))
	}
	if m.anchors[0][len(m.anchors[0])-1] != finalPos0 {
		m.anchors[0] = append(m.anchors[0], finalPos0)
		m.anchors[1] = append(m.anchors[1], finalPos1)
	}
	return m, nil
}

// Map translates pos on one sequence to the corresponding Span on the other.
// fromWhich selects the source sequence (0 or 1). ok is false when pos falls
// before the first or after the last aligned base of the source sequence.
func (m *SeqMap) Map(pos, fromWhich int) (span Span, ok bool) {
	from := m.anchors[fromWhich]
	to := m.anchors[1-fromWhich]
	if pos < from[0] || pos > from[len(from)-1] {
		return Span{}, false
	}
	if pos == from[len(from)-1] {
		end := to[len(to)-1]
		return Span{Left: end, Right: end}, true
	}
	// First anchor strictly greater than pos.
	ind := sort.Search(len(from), func(i int) bool { return from[i] > pos })
	prevFrom, nextFrom := from[ind-1], from[ind]
	prevTo, nextTo := to[ind-1], to[ind]
	prevPlusOffset := prevTo + (pos - prevFrom)
	if pos == nextFrom-1 && prevPlusOffset < nextTo-1 {
		// The base is followed by a gap on the other sequence: it maps to
		// the interval covering that gap.
		return Span{Left: prevPlusOffset, Right: nextTo - 1}, true
	}
	p := prevPlusOffset
	if nextTo-1 < p {
		p = nextTo - 1
	}
	return Span{Left: p, Right: p}, true
}

// chrMap pairs the opposing chromosome name with the sequence-level mapper.
type chrMap struct {
	chrom string
	m     *SeqMap
}

// A CoordMapper maps (chromosome, coordinate) between two genomes, one
// aligned chromosome pair per input file. Coordinates are 1-based.
type CoordMapper struct {
	aToB map[string]chrMap
	bToA map[string]chrMap
}

// NewCoordMapper loads pairwise alignments from FASTA files, each holding
// two aligned sequences: genome A's chromosome first, genome B's second.
// Chromosome names must be unique across files.
func NewCoordMapper(alignedFastas []string) (*CoordMapper, error) {
	cm := &CoordMapper{
		aToB: map[string]chrMap{},
		bToA: map[string]chrMap{},
	}
	for _, path := range alignedFastas {
		records, err := fasta.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if len(records) < 2 {
			return nil, pfx.Err(fmt.Errorf("interhost: %s has %d sequences, want at least 2", path, len(records)))
		}
		a, b := records[0], records[1]
		m, err := NewSeqMap(a.Seq, b.Seq)
		if err != nil {
			return nil, err
		}
		if _, dup := cm.aToB[a.ID]; dup {
			return nil, pfx.Err(fmt.Errorf("interhost: duplicate sequence name %s", a.ID))
		}
		if _, dup := cm.bToA[b.ID]; dup {
			return nil, pfx.Err(fmt.Errorf("interhost: duplicate sequence name %s", b.ID))
		}
		cm.aToB[a.ID] = chrMap{chrom: b.ID, m: m}
		cm.bToA[b.ID] = chrMap{chrom: a.ID, m: m}
	}
	return cm, nil
}

// MapAtoB maps (chrom, pos) on genome A to genome B.
func (cm *CoordMapper) MapAtoB(chrom string, pos int) (string, Span, bool) {
	return lookup(cm.aToB, chrom, pos, 0)
}

// MapBtoA maps (chrom, pos) on genome B to genome A.
func (cm *CoordMapper) MapBtoA(chrom string, pos int) (string, Span, bool) {
	return lookup(cm.bToA, chrom, pos, 1)
}

func lookup(chrs map[string]chrMap, chrom string, pos, fromWhich int) (string, Span, bool) {
	c, known := chrs[chrom]
	if !known {
		return "", Span{}, false
	}
	span, ok := c.m.Map(pos, fromWhich)
	if !ok {
		return c.chrom, Span{}, false
	}
	return c.chrom, span, true
}
