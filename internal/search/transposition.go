package search

import (
	"unsafe"

	"github.com/hailam/chessplay/internal/board"
)

// TTEntry is one slot of the transposition table.
type TTEntry struct {
	Hash      uint64
	BestMove  board.Move
	BestValue Value
	Depth     Depth
	NodeType  NodeType
	present   bool
}

// TranspositionTable is a direct-mapped, always-replace hash table sized
// from a byte budget rather than an entry count. There is no bucketing and
// no generation/aging: a Set always overwrites whatever was at
// hash % len(buffer), win or lose. This trades hit rate for the simplest
// possible replacement policy, matching a single-threaded search that
// re-probes the same positions heavily within one search tree.
type TranspositionTable struct {
	buffer []TTEntry
}

// NewTranspositionTable allocates a table sized to fit within bytes total,
// the same sizing rule as bytes / sizeof(Option<TTEntry>) in the original.
func NewTranspositionTable(bytes int) *TranspositionTable {
	entrySize := int(unsafe.Sizeof(TTEntry{}))
	if entrySize == 0 {
		entrySize = 1
	}
	n := bytes / entrySize
	if n < 1 {
		n = 1
	}
	return &TranspositionTable{buffer: make([]TTEntry, n)}
}

// Get returns the entry for hash and true if present and matching. A slot
// match on index but a differing Hash (a collision) is treated as a miss.
func (tt *TranspositionTable) Get(hash uint64) (TTEntry, bool) {
	e := tt.buffer[hash%uint64(len(tt.buffer))]
	if e.present && e.Hash == hash {
		return e, true
	}
	return TTEntry{}, false
}

// Set unconditionally overwrites the slot for hash. No depth or age check:
// always-replace.
func (tt *TranspositionTable) Set(hash uint64, e TTEntry) {
	e.Hash = hash
	e.present = true
	tt.buffer[hash%uint64(len(tt.buffer))] = e
}

// Clear empties the table, used on ucinewgame.
func (tt *TranspositionTable) Clear() {
	for i := range tt.buffer {
		tt.buffer[i] = TTEntry{}
	}
}

// Len returns the table's entry capacity.
func (tt *TranspositionTable) Len() int {
	return len(tt.buffer)
}

// HashFull returns the permille of sampled slots currently occupied, for
// UCI's "info hashfull" field.
func (tt *TranspositionTable) HashFull() int {
	sample := 1000
	if sample > len(tt.buffer) {
		sample = len(tt.buffer)
	}
	if sample == 0 {
		return 0
	}
	used := 0
	for i := 0; i < sample; i++ {
		if tt.buffer[i].present {
			used++
		}
	}
	return used * 1000 / sample
}

// AdjustScoreFromTT converts a mate score stored relative to the node where
// it was found back into one relative to the current ply, by adding back
// the ply distance already encoded in the stored score.
func AdjustScoreFromTT(score Value, ply int) Value {
	if score > MateValue-MaxPly {
		return score - Value(ply)
	}
	if score < -MateValue+MaxPly {
		return score + Value(ply)
	}
	return score
}

// AdjustScoreToTT converts a mate score counted from the search root into
// one counted from the current node, so it remains valid when retrieved at
// a different ply later.
func AdjustScoreToTT(score Value, ply int) Value {
	if score > MateValue-MaxPly {
		return score + Value(ply)
	}
	if score < -MateValue+MaxPly {
		return score - Value(ply)
	}
	return score
}
