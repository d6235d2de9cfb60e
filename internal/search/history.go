package search

import "github.com/hailam/chessplay/internal/board"

// historyLimit caps a history score before it is halved back down. Chosen
// as half of int16's range so the table can be stored compactly even
// though Go's int doesn't need the narrower width.
const historyLimit = 1 << 14

// HistoryTable scores quiet moves that have caused beta cutoffs before,
// indexed by (piece type, color, destination square) rather than
// (from, to): two different pieces landing on the same good square share
// history, matching the original engine's indexing.
type HistoryTable struct {
	table [12 * 64]int16
}

// NewHistoryTable returns a zeroed history table.
func NewHistoryTable() *HistoryTable {
	return &HistoryTable{}
}

func historyIndex(pt board.PieceType, c board.Color, to board.Square) int {
	return board.PieceToIndex(pt, c)*64 + int(to)
}

// Score returns the current history score for a quiet move.
func (h *HistoryTable) Score(pt board.PieceType, c board.Color, to board.Square) int {
	return int(h.table[historyIndex(pt, c, to)])
}

// Update rewards a quiet move that caused a beta cutoff at depth. The bonus
// grows quadratically with depth, then the whole table is halved once any
// entry approaches the int16-derived limit so scores stay bounded relative
// to each other instead of saturating.
func (h *HistoryTable) Update(pt board.PieceType, c board.Color, to board.Square, depth Depth) {
	idx := historyIndex(pt, c, to)
	bonus := int(depth)*int(depth) + int(depth)
	h.table[idx] += int16(bonus)

	if h.table[idx] >= historyLimit {
		for i := range h.table {
			h.table[i] /= 2
		}
	}
}

// Clear resets all history scores, used at the start of every search and
// on ucinewgame.
func (h *HistoryTable) Clear() {
	for i := range h.table {
		h.table[i] = 0
	}
}

// Normalize halves every entry. Called once per completed iterative-
// deepening iteration so history built up at shallow depths doesn't
// dominate the ordering at deeper ones.
func (h *HistoryTable) Normalize() {
	for i := range h.table {
		h.table[i] /= 2
	}
}
