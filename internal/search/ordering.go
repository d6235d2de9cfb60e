package search

import "github.com/hailam/chessplay/internal/board"

// Move-ordering priority bands. A move's final score is compared against
// these so TT moves always precede captures, which always precede killers,
// which always precede plain history-ranked quiet moves.
const (
	ttMoveScore = 10_000_000
	captureBase = 1_000_000
	killerScore = 900_000
)

// MoveOrderer ranks the moves generated at each node so the strongest
// candidates (by table move, capture value, killer-move history, and quiet
// history) are searched first, maximizing alpha-beta cutoffs. It holds two
// kinds of state: one killer move per remaining depth, and a reference to
// the shared HistoryTable, which persists across the iterations of one
// search and is cleared at the start of every search.
type MoveOrderer struct {
	killers [MaxPly]board.Move
	history *HistoryTable
}

// NewMoveOrderer builds an orderer backed by history.
func NewMoveOrderer(history *HistoryTable) *MoveOrderer {
	return &MoveOrderer{history: history}
}

// ResetKillers clears killer-move state, used on ucinewgame and between
// independent searches so stale killers from a prior position don't leak in.
func (o *MoveOrderer) ResetKillers() {
	for i := range o.killers {
		o.killers[i] = board.NoMove
	}
}

// UpdateKillers records m as the killer at depth. Only called for quiet
// moves that caused a beta cutoff.
func (o *MoveOrderer) UpdateKillers(depth Depth, m board.Move) {
	if depth < 0 || int(depth) >= MaxPly {
		return
	}
	o.killers[depth] = m
}

func mvvLva(victim, attacker board.PieceType) int {
	return board.PieceValue[victim]*10 - board.PieceValue[attacker]
}

func (o *MoveOrderer) scoreMove(pos *board.Position, m board.Move, ttMove board.Move, depth Depth) int {
	if m == ttMove {
		return ttMoveScore
	}

	if m.IsCapture(pos) {
		attacker := pos.PieceAt(m.From()).Type()
		var victim board.PieceType
		if m.IsEnPassant() {
			victim = board.Pawn
		} else {
			victim = pos.PieceAt(m.To()).Type()
		}
		return captureBase + mvvLva(victim, attacker)
	}

	if m.IsPromotion() {
		return captureBase + board.PieceValue[m.Promotion()]
	}

	if depth >= 0 && int(depth) < MaxPly && m == o.killers[depth] {
		return killerScore
	}

	piece := pos.PieceAt(m.From())
	return o.history.Score(piece.Type(), piece.Color(), m.To())
}

// moveIterator lazily yields moves highest-score-first using selection
// sort: each Next() scans the unpicked suffix once for the maximum and
// swaps it to the front. For the ~30-40 moves typical of a chess position
// this O(n^2) scan beats a full upfront sort whenever a cutoff lets the
// search stop after only a few moves, which is the common case.
type moveIterator struct {
	moves  []board.Move
	scores []int
	cur    int
}

// Next returns the next move in priority order and true, or (NoMove, false)
// once exhausted.
func (it *moveIterator) Next() (board.Move, bool) {
	if it.cur >= len(it.moves) {
		return board.NoMove, false
	}
	best := it.cur
	for i := it.cur + 1; i < len(it.moves); i++ {
		if it.scores[i] > it.scores[best] {
			best = i
		}
	}
	it.moves[it.cur], it.moves[best] = it.moves[best], it.moves[it.cur]
	it.scores[it.cur], it.scores[best] = it.scores[best], it.scores[it.cur]
	m := it.moves[it.cur]
	it.cur++
	return m, true
}

// Len returns the number of moves remaining to be yielded, including the
// current one.
func (it *moveIterator) Len() int {
	return len(it.moves) - it.cur
}

// OrderAll returns a lazy iterator over every move in ml, covering the
// all-moves case used by the main negamax move loop: TT move first, then
// captures by MVV-LVA, killers, and quiet moves by history. depth is the
// remaining search depth at this node, which indexes the killer table.
func (o *MoveOrderer) OrderAll(pos *board.Position, ml *board.MoveList, ttMove board.Move, depth Depth) *moveIterator {
	n := ml.Len()
	it := &moveIterator{moves: make([]board.Move, n), scores: make([]int, n)}
	for i := 0; i < n; i++ {
		m := ml.Get(i)
		it.moves[i] = m
		it.scores[i] = o.scoreMove(pos, m, ttMove, depth)
	}
	return it
}

// OrderCaptures returns a lazy MVV-LVA iterator over ml, for quiescence
// search where only captures and promotions are generated.
func (o *MoveOrderer) OrderCaptures(pos *board.Position, ml *board.MoveList) *moveIterator {
	n := ml.Len()
	it := &moveIterator{moves: make([]board.Move, n), scores: make([]int, n)}
	for i := 0; i < n; i++ {
		m := ml.Get(i)
		it.moves[i] = m
		if m.IsCapture(pos) {
			attacker := pos.PieceAt(m.From()).Type()
			var victim board.PieceType
			if m.IsEnPassant() {
				victim = board.Pawn
			} else {
				victim = pos.PieceAt(m.To()).Type()
			}
			it.scores[i] = mvvLva(victim, attacker)
		} else if m.IsPromotion() {
			it.scores[i] = board.PieceValue[m.Promotion()]
		}
	}
	return it
}
