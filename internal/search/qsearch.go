package search

import (
	"github.com/hailam/chessplay/internal/board"
)

// qsearch extends the leaves of negamax with a captures-only search to
// avoid the horizon effect, where a quiet-looking position is misjudged
// because an in-progress capture sequence was cut off mid-exchange. It
// does not consult the transposition table, does not check terminal
// status, and carries no ply limit of its own: only the finiteness of the
// remaining captures bounds its recursion.
func (s *Searcher) qsearch(pos *board.Position, alpha, beta Value) Value {
	s.nodes++
	if s.nodes%1024 == 0 && s.deadlinePassed() {
		s.stopSearch = true
	}
	if s.stopSearch {
		return 0
	}

	standPat := Evaluate(pos)
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}
	best := standPat

	moves := pos.GenerateCaptures()
	it := s.orderer.OrderCaptures(pos, moves)
	for {
		m, ok := it.Next()
		if !ok {
			break
		}

		child := pos.Play(m)
		v := -s.qsearch(child, -beta, -alpha)

		if v > best {
			best = v
		}
		if v > alpha {
			alpha = v
		}
		if alpha >= beta {
			return alpha
		}
	}

	return best
}
