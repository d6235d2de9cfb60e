package uci

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hailam/chessplay/internal/board"
)

func TestUCIToKxRRoundTripsQuietMoves(t *testing.T) {
	pos := board.NewPosition()

	m, err := uciToKxR("e2e4", pos)
	require.NoError(t, err)
	require.Equal(t, "e2e4", kxrToUCI(m))
}

func TestUCIToKxRRoundTripsCaptures(t *testing.T) {
	pos, err := board.ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/3P4/8/PPP1PPPP/RNBQKBNR w KQkq - 0 2")
	require.NoError(t, err)

	m, err := uciToKxR("d4e5", pos)
	require.NoError(t, err)
	require.True(t, m.IsCapture(pos))
	require.Equal(t, "d4e5", kxrToUCI(m))
}

func TestUCIToKxRTranslatesKingsideCastling(t *testing.T) {
	pos, err := board.ParseFEN("rnbqk2r/pppp1ppp/5n2/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4")
	require.NoError(t, err)

	m, err := uciToKxR("e1g1", pos)
	require.NoError(t, err)
	require.True(t, m.IsCastling())
	require.Equal(t, board.NewSquare(7, 0), m.To(), "KxR encoding stores the rook's square as To()")
	require.Equal(t, board.NewSquare(6, 0), m.KingDestination())

	require.Equal(t, "e1g1", kxrToUCI(m))
}

func TestUCIToKxRTranslatesQueensideCastling(t *testing.T) {
	pos, err := board.ParseFEN("r3kbnr/pppqpppp/2n5/3p1b2/3P1B2/2N5/PPPQPPPP/R3KBNR w KQkq - 6 5")
	require.NoError(t, err)

	m, err := uciToKxR("e1c1", pos)
	require.NoError(t, err)
	require.True(t, m.IsCastling())
	require.Equal(t, "e1c1", kxrToUCI(m))
}

func TestKxRToUCINullMove(t *testing.T) {
	require.Equal(t, "0000", kxrToUCI(board.NoMove))
}

func TestUCIToKxRRejectsMalformedInput(t *testing.T) {
	pos := board.NewPosition()

	_, err := uciToKxR("e2", pos)
	require.Error(t, err)
}
