package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hailam/chessplay/internal/board"
)

func newSearcher() *Searcher {
	return NewSearcher(NewTranspositionTable(4 << 20))
}

func TestSearchFindsMateInOne(t *testing.T) {
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)

	s := newSearcher()
	best, value, _ := s.Search(pos, nil, 4, 2*time.Second)

	require.NotEqual(t, board.NoMove, best)
	require.True(t, IsMateScore(value), "expected a mate score, got %d", value)
	require.Equal(t, 1, MateIn(value))
}

func TestSearchReturnsMoveWithSingleLegalReply(t *testing.T) {
	// Black has a lone king on h8 and the white queen on g2 covers g8 and
	// g7, leaving Kh7 as the only legal move; the search must still return
	// a move.
	pos, err := board.ParseFEN("7k/8/8/8/8/8/6Q1/6K1 b - - 0 1")
	require.NoError(t, err)

	s := newSearcher()
	best, _, _ := s.Search(pos, nil, 3, 2*time.Second)
	require.NotEqual(t, board.NoMove, best)
}

func TestSearchRespectsMoveTimeDeadline(t *testing.T) {
	pos := board.NewPosition()
	s := newSearcher()

	start := time.Now()
	best, _, stats := s.Search(pos, nil, 64, 100*time.Millisecond)
	elapsed := time.Since(start)

	require.NotEqual(t, board.NoMove, best)
	require.Less(t, elapsed, 2*time.Second, "search ran well past its deadline")
	require.Greater(t, stats.NodesVisited, uint64(0))
}

func TestClearForNewGameEmptiesTranspositionTable(t *testing.T) {
	tt := NewTranspositionTable(1 << 16)
	s := NewSearcher(tt)

	pos := board.NewPosition()
	s.Search(pos, nil, 3, 500*time.Millisecond)
	require.Greater(t, tt.HashFull(), 0)

	s.ClearForNewGame()
	require.Equal(t, 0, tt.HashFull())
}

func TestRepetitionTrackerDetectsThreefold(t *testing.T) {
	r := NewRepetitionTracker()

	// Simulate a shuffle: A -> B -> A -> B -> A, where each ply pushes the
	// position reached. The third occurrence of A should trip the draw.
	r.Push(1) // A (root, ply 0)
	r.Push(2) // B (ply 1)
	r.Push(1) // A again (ply 2)
	r.Push(2) // B again (ply 3)

	require.True(t, r.IsRepetitionDraw(4, 1), "third occurrence of hash 1 should be a draw")
}

func TestRepetitionTrackerIgnoresShortHalfMoveClock(t *testing.T) {
	r := NewRepetitionTracker()
	r.Push(1)
	r.Push(1)

	require.False(t, r.IsRepetitionDraw(1, 1), "halfmove clock below 4 can't contain a repetition")
}

func TestSearchDetectsRepetitionDraw(t *testing.T) {
	pos, err := board.ParseFEN("rnbqkb1r/pppppppp/5n2/8/8/5N2/PPPPPPPP/RNBQKB1R w - - 0 1")
	require.NoError(t, err)

	uciMoves := []string{"h1g1", "h8g8", "g1h1", "g8h8", "h1g1", "h8g8", "g1h1", "g8h8"}
	cur := pos
	prior := make([]board.Move, 0, len(uciMoves))
	for _, mv := range uciMoves {
		m, err := board.ParseMove(mv, cur)
		require.NoError(t, err)
		prior = append(prior, m)
		cur = cur.Play(m)
	}

	s := newSearcher()
	_, value, _ := s.Search(pos, prior, 3, time.Second)
	require.Equal(t, Value(0), value, "shuffled-back-to-start position should score as a repetition draw")
}

func TestEvaluateIsSymmetric(t *testing.T) {
	pos, err := board.ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	require.NoError(t, err)

	white := Evaluate(pos)

	mirrored, err := board.ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)
	black := Evaluate(mirrored)

	require.Equal(t, white, black, "evaluating color-flipped mirror positions should agree")
}
