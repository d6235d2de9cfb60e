package search

import (
	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/pst"
)

// phaseWeight contributes to the game-phase accumulator per piece type,
// following the common convention of weighting minors lightly and queens
// heavily; pawns and kings don't move the needle.
var phaseWeight = [6]int{0, 1, 1, 2, 4, 0}

const maxPhase = 24

// Evaluate scores pos from the perspective of the side to move: positive
// favors whoever is about to move. It blends a middlegame and an endgame
// score by a material-derived game phase (tapered evaluation), using
// board.PieceValue for material and pst.Mg/pst.Eg for piece placement.
func Evaluate(pos *board.Position) Value {
	var mg, eg, phase int

	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		for pt := board.Pawn; pt <= board.King; pt++ {
			bb := pos.Pieces[c][pt]
			value := board.PieceValue[pt]
			for bb != 0 {
				sq := bb.PopLSB()
				sqIdx := sq
				if c == board.White {
					sqIdx = sq.Mirror()
				}
				mg += sign * (value + pst.Mg[pt][sqIdx])
				eg += sign * (value + pst.Eg[pt][sqIdx])
				phase += phaseWeight[pt]
			}
		}
	}

	if phase > maxPhase {
		phase = maxPhase
	}
	score := (mg*phase + eg*(maxPhase-phase)) / maxPhase

	if pos.SideToMove == board.Black {
		score = -score
	}

	return Value(score)
}
