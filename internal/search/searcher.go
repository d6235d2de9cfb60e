package search

import (
	"sync/atomic"
	"time"

	"github.com/hailam/chessplay/internal/board"
)

// Stats carries telemetry about a completed (or interrupted) search, for
// the UCI front-end's "info" output.
type Stats struct {
	NodesVisited uint64
	Depth        Depth
}

// Searcher owns all state for one engine's worth of searching: the
// transposition table persists across searches until a new game starts;
// history, killers, and the repetition tracker are reset at the start of
// every call to Search.
type Searcher struct {
	tt      *TranspositionTable
	history *HistoryTable
	orderer *MoveOrderer
	lmr     *LMRTable
	rep     *RepetitionTracker

	nodes uint64
	// deadlineNanos is a UnixNano timestamp, stored atomically so a UCI
	// "stop" command can pull it to "now" from another goroutine without
	// introducing a second cancellation mechanism: the search still only
	// ever notices via its normal every-1024-node deadline poll.
	deadlineNanos atomic.Int64
	stopSearch    bool
	// bestMove is the move Search returns: committed only once an
	// iteration is fully adopted, so a deadline hit mid-iteration can't
	// pair it with the wrong iteration's bestValue.
	bestMove board.Move
	// rootBestMove is written by every root-level (ply 0) call to negamax,
	// including aspiration-window re-searches that end up discarded.
	rootBestMove board.Move
}

func (s *Searcher) deadlinePassed() bool {
	return time.Now().UnixNano() > s.deadlineNanos.Load()
}

// RequestStop advances the deadline to now, so the running search's next
// poll (every 1024 nodes, in negamax or qsearch) ends it. It has no effect
// between searches.
func (s *Searcher) RequestStop() {
	s.deadlineNanos.Store(time.Now().UnixNano())
}

// NewSearcher builds a searcher backed by tt, which the caller owns and
// may clear independently (e.g. on ucinewgame).
func NewSearcher(tt *TranspositionTable) *Searcher {
	history := NewHistoryTable()
	return &Searcher{
		tt:      tt,
		history: history,
		orderer: NewMoveOrderer(history),
		lmr:     NewLMRTable(),
		rep:     NewRepetitionTracker(),
	}
}

// ClearForNewGame resets everything a fresh game should not inherit: the
// transposition table, history scores, and killer moves.
func (s *Searcher) ClearForNewGame() {
	s.tt.Clear()
	s.history.Clear()
	s.orderer.ResetKillers()
}

func saturatingAdd(a, b Value) Value {
	r := int64(a) + int64(b)
	if r > int64(Inf) {
		return Inf
	}
	if r < int64(-Inf) {
		return -Inf
	}
	return Value(r)
}

func saturatingSub(a, b Value) Value {
	return saturatingAdd(a, -b)
}

// Search runs iterative deepening from pos up to maxDepth or until
// moveTime elapses, replaying priorMoves first to seed the repetition
// history with the game's actual move sequence. It returns the result of
// the last fully completed iteration: if the deadline cuts an iteration
// short, that iteration's result is discarded. The returned move is NoMove
// when no iteration completed, when the root has no legal moves, or when
// the root itself scores as a repetition draw (negamax then returns before
// searching any move).
func (s *Searcher) Search(pos *board.Position, priorMoves []board.Move, maxDepth Depth, moveTime time.Duration) (board.Move, Value, Stats) {
	s.nodes = 0
	s.stopSearch = false
	s.bestMove = board.NoMove
	s.rootBestMove = board.NoMove
	s.history.Clear()
	s.orderer.ResetKillers()
	s.rep.Reset()
	s.deadlineNanos.Store(time.Now().Add(moveTime).UnixNano())

	root := pos.Copy()
	s.rep.Push(root.Hash)
	for _, m := range priorMoves {
		root = root.Play(m)
		s.rep.Push(root.Hash)
	}
	// The final replayed position is the search root; negamax pushes its
	// own hash again on entry, so pop the duplicate here.
	s.rep.Pop()

	var bestValue Value
	var depthReached Depth

	for d := Depth(1); d <= maxDepth; d++ {
		var v Value

		if d < 5 {
			v = s.negamax(root, d, 0, -Inf, Inf)
		} else {
			window := Value(20)
			alpha := saturatingSub(bestValue, window)
			beta := saturatingAdd(bestValue, window)
			for {
				v = s.negamax(root, d, 0, alpha, beta)
				if s.stopSearch {
					break
				}
				if v >= beta {
					beta = saturatingAdd(beta, window)
					window = saturatingAdd(window, window)
					continue
				}
				if v <= alpha {
					alpha = saturatingSub(alpha, window)
					window = saturatingAdd(window, window)
					continue
				}
				break
			}
		}

		s.history.Normalize()

		if s.stopSearch || s.deadlinePassed() {
			break
		}

		bestValue = v
		depthReached = d
		s.bestMove = s.rootBestMove
	}

	return s.bestMove, bestValue, Stats{NodesVisited: s.nodes, Depth: depthReached}
}

// negamax is the recursive alpha-beta core, fail-soft throughout: the
// returned value may lie outside [alpha, beta] rather than being clamped
// to them, and the transposition table stores that value together with
// whether it is exact, a lower bound, or an upper bound.
func (s *Searcher) negamax(pos *board.Position, depth Depth, ply int, alpha, beta Value) Value {
	s.nodes++
	if s.nodes%1024 == 0 && s.deadlinePassed() {
		s.stopSearch = true
	}
	if s.stopSearch {
		return 0
	}

	alphaOrig := alpha
	hash := pos.Hash
	isPV := beta > alpha+1

	if s.rep.IsRepetitionDraw(pos.HalfMoveClock, hash) {
		return 0
	}

	entry, found := s.tt.Get(hash)
	var ttMove board.Move
	var staticEval Value
	if found {
		ttMove = entry.BestMove
		staticEval = entry.BestValue
		if ply > 0 && entry.Depth >= depth {
			score := AdjustScoreFromTT(entry.BestValue, ply)
			switch entry.NodeType {
			case Exact:
				return score
			case LowerBound:
				if score > alpha {
					alpha = score
				}
			case UpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	} else {
		staticEval = Evaluate(pos)
	}

	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		if pos.InCheck() {
			return -(MateValue - Value(ply))
		}
		return 0
	}
	if pos.HalfMoveClock >= 100 || pos.IsInsufficientMaterial() {
		return 0
	}

	if depth == 0 {
		return s.qsearch(pos, alpha, beta)
	}

	s.rep.Push(hash)
	defer s.rep.Pop()

	if !isPV && ply > 0 {
		if depth >= 3 && !pos.InCheck() {
			undo := pos.MakeNullMove()
			v := -s.negamax(pos, depth-3, ply+1, -beta, -beta+1)
			pos.UnmakeNullMove(undo)
			if v >= beta {
				return v
			}
		}
		if depth <= 5 && !pos.InCheck() && staticEval >= beta+Value(75)*Value(depth) {
			return staticEval
		}
	}

	pvBonus := 0
	if isPV {
		pvBonus = 2
	}

	it := s.orderer.OrderAll(pos, moves, ttMove, depth)
	bestValue := Value(-Inf)
	bestMove := board.NoMove
	moveNum := 0

	for {
		m, ok := it.Next()
		if !ok {
			break
		}

		child := pos.Play(m)

		var v Value
		if moveNum == 0 {
			v = -s.negamax(child, depth-1, ply+1, -beta, -alpha)
		} else {
			reduction := Depth(0)
			if depth >= 3 && moveNum >= 2+pvBonus && !m.IsCapture(pos) && !m.IsPromotion() && !child.InCheck() {
				reduction = s.lmr.Reduction(depth, moveNum)
				if maxReduction := depth - 2; reduction > maxReduction {
					reduction = maxReduction
				}
				if reduction < 0 {
					reduction = 0
				}
			}

			newDepth := depth - 1 - reduction
			v = -s.negamax(child, newDepth, ply+1, -alpha-1, -alpha)

			if v > alpha && v < beta {
				v = -s.negamax(child, depth-1, ply+1, -beta, -alpha)
			}
		}
		moveNum++

		if v > bestValue {
			bestValue = v
			bestMove = m
		}
		if bestValue > alpha {
			alpha = bestValue
		}
		if alpha >= beta {
			if !m.IsCapture(pos) {
				s.orderer.UpdateKillers(depth, m)
				piece := pos.PieceAt(m.From())
				s.history.Update(piece.Type(), piece.Color(), m.To(), depth)
			}
			break
		}
	}

	var nodeType NodeType
	switch {
	case bestValue <= alphaOrig:
		nodeType = UpperBound
	case bestValue >= beta:
		nodeType = LowerBound
	default:
		nodeType = Exact
	}
	s.tt.Set(hash, TTEntry{
		BestMove:  bestMove,
		BestValue: AdjustScoreToTT(bestValue, ply),
		Depth:     depth,
		NodeType:  nodeType,
	})

	if ply == 0 {
		s.rootBestMove = bestMove
	}

	return bestValue
}
