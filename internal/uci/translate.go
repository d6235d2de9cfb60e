package uci

import (
	"fmt"

	"github.com/hailam/chessplay/internal/board"
)

// uciToKxR parses a UCI coordinate move string against pos and returns the
// internal KxR-encoded move. Standard UCI sends castling as the king's own
// two-square hop (e1g1); internally the king is recorded as capturing its
// own rook (e1h1), so this is the one place that translation happens.
func uciToKxR(s string, pos *board.Position) (board.Move, error) {
	if len(s) < 4 {
		return board.NoMove, fmt.Errorf("malformed move %q", s)
	}

	from, err := board.ParseSquare(s[0:2])
	if err != nil {
		return board.NoMove, err
	}
	to, err := board.ParseSquare(s[2:4])
	if err != nil {
		return board.NoMove, err
	}

	piece := pos.PieceAt(from)
	if piece.Type() == board.King {
		if kxr, ok := castlingToKxR(piece.Color(), from, to); ok {
			return kxr, nil
		}
	}

	return board.ParseMove(s, pos)
}

// castlingToKxR recognizes the king's standard two-square castling hop and
// returns the equivalent king-captures-own-rook move.
func castlingToKxR(us board.Color, from, to board.Square) (board.Move, bool) {
	rank := 0
	if us == board.Black {
		rank = 7
	}
	if from != board.NewSquare(4, rank) {
		return board.NoMove, false
	}

	switch to {
	case board.NewSquare(6, rank):
		return board.NewCastling(from, board.NewSquare(7, rank)), true
	case board.NewSquare(2, rank):
		return board.NewCastling(from, board.NewSquare(0, rank)), true
	default:
		return board.NoMove, false
	}
}

// kxrToUCI renders an internal move in standard UCI coordinate notation:
// for castling, the king's actual landing square replaces the rook's
// square the KxR encoding names as To().
func kxrToUCI(m board.Move) string {
	if m == board.NoMove {
		return "0000"
	}
	if !m.IsCastling() {
		return m.String()
	}
	return m.From().String() + m.KingDestination().String()
}
