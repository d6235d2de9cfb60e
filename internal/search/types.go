// Package search implements iterative-deepening alpha-beta negamax search
// over a github.com/hailam/chessplay/internal/board position: quiescence
// search, a transposition table, move ordering (TT move, MVV-LVA, killers,
// history), late-move reductions, null-move and reverse-futility pruning,
// aspiration windows, and repetition-draw detection.
package search

// Value is a search score in centipawns, positive favoring the side to move.
type Value int32

// Depth is a search depth in plies.
type Depth int32

const (
	// MateValue is the score assigned to the side that delivers checkmate,
	// before the ply-distance adjustment that prefers shorter mates.
	MateValue Value = 10000

	// Inf bounds the aspiration/alpha-beta search window. Chosen comfortably
	// above any reachable evaluation or mate score.
	Inf Value = MateValue + 1000

	// MaxPly bounds the killer table (indexed by remaining depth) and the
	// mate-distance adjustment threshold applied at TT store/probe.
	MaxPly = 128
)

// IsMateScore reports whether v represents a forced mate (for the side it
// favors) rather than a material/positional evaluation.
func IsMateScore(v Value) bool {
	return v > MateValue-MaxPly || v < -MateValue+MaxPly
}

// MateIn returns the number of full moves to deliver the mate v encodes,
// valid only when IsMateScore(v) is true. Positive means the side to move
// mates, negative means it is mated.
func MateIn(v Value) int {
	if v > 0 {
		return (int(MateValue-v) + 1) / 2
	}
	return -(int(MateValue+v) + 1) / 2
}

// NodeType classifies the bound a transposition-table entry represents,
// derived from how the search window moved during the node's resolution.
type NodeType uint8

const (
	// Exact means best_value fell strictly inside (alpha, beta): the true
	// minimax value of the node was found.
	Exact NodeType = iota
	// LowerBound means the search failed high (best_value >= beta): the true
	// value is at least best_value.
	LowerBound
	// UpperBound means the search failed low (best_value <= original alpha):
	// the true value is at most best_value.
	UpperBound
)
