package interpreter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atlas77-lang/atlas77/internal/bytecode"
)

// stepStats collects instruction-sequence statistics for a run, in the style
// of the teacher's interpreter/lfvm/instruction_statistics.go statistics
// type: counts every opcode singly and alongside the 1, 2 and 3 opcodes that
// immediately preceded it.
type stepStats struct {
	count uint64

	singleCount map[uint64]uint64
	pairCount   map[uint64]uint64
	tripleCount map[uint64]uint64
	quadCount   map[uint64]uint64

	// recent holds up to the 3 opcodes preceding the one currently being
	// recorded, most recent first; recentLen tracks how many are valid so
	// the first few calls don't record bogus pairs/triples/quads.
	recent    [3]uint64
	recentLen int
}

func newStepStats() *stepStats {
	return &stepStats{
		singleCount: map[uint64]uint64{},
		pairCount:   map[uint64]uint64{},
		tripleCount: map[uint64]uint64{},
		quadCount:   map[uint64]uint64{},
	}
}

// pack encodes a short sequence of opcodes (oldest first) into a single key,
// 16 bits per opcode, matching the width singleCount/pairCount/etc. use to
// stay collision-free for any realistic opcode set.
func pack(ops ...uint64) uint64 {
	var key uint64
	for i, op := range ops {
		key |= op << (16 * uint(len(ops)-1-i))
	}
	return key
}

func (s *stepStats) nextOp(op bytecode.Opcode) {
	cur := uint64(op)
	s.count++
	s.singleCount[cur]++

	if s.recentLen >= 1 {
		s.pairCount[pack(s.recent[0], cur)]++
	}
	if s.recentLen >= 2 {
		s.tripleCount[pack(s.recent[1], s.recent[0], cur)]++
	}
	if s.recentLen >= 3 {
		s.quadCount[pack(s.recent[2], s.recent[1], s.recent[0], cur)]++
	}

	s.recent[2], s.recent[1], s.recent[0] = s.recent[1], s.recent[0], cur
	if s.recentLen < 3 {
		s.recentLen++
	}
}

type statEntry struct {
	key   uint64
	count uint64
}

// topN returns the n highest-count entries of data, most frequent first.
func topN(data map[uint64]uint64, n int) []statEntry {
	list := make([]statEntry, 0, len(data))
	for k, c := range data {
		list = append(list, statEntry{k, c})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].count > list[j].count })
	if len(list) > n {
		list = list[:n]
	}
	return list
}

// unpack splits a key built by pack back into n opcodes, oldest first.
func unpack(key uint64, n int) []bytecode.Opcode {
	ops := make([]bytecode.Opcode, n)
	for i := 0; i < n; i++ {
		shift := 16 * uint(n-1-i)
		ops[i] = bytecode.Opcode(key >> shift & 0xffff)
	}
	return ops
}

func (s *stepStats) writeSection(b *strings.Builder, title string, data map[uint64]uint64, width int) {
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, e := range topN(data, 5) {
		ops := unpack(e.key, width)
		names := make([]string, len(ops))
		for i, op := range ops {
			names[i] = fmt.Sprintf("%-20v", op)
		}
		fmt.Fprintf(b, "\t%s: %d (%.2f%%)\n", strings.Join(names, ""), e.count, float32(e.count*100)/float32(s.count))
	}
}

// print renders a human-readable summary of the top-5 singles/pairs/triples/quads.
func (s *stepStats) print() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n----- Statistics ------\n\nSteps: %d\n", s.count)
	s.writeSection(&b, "Singles", s.singleCount, 1)
	s.writeSection(&b, "Pairs", s.pairCount, 2)
	s.writeSection(&b, "Triples", s.tripleCount, 3)
	s.writeSection(&b, "Quads", s.quadCount, 4)
	b.WriteString("\n")
	return b.String()
}
