package pelicanmg_test

import (
	"errors"
	"testing"

	"github.com/notnil/chess"

	gm "pelican-engine/pelicanmg"
)

func TestParseMoveFormatErrors(t *testing.T) {
	board := gm.NewBoard()
	for _, text := range []string{"", "e2", "e2e", "e2e44", "i2i4", "e9e4", "e7e8x", "22e4"} {
		if _, err := board.ParseMove(text); !errors.Is(err, gm.ErrInvalidMoveFormat) {
			t.Fatalf("ParseMove(%q): got %v want ErrInvalidMoveFormat", text, err)
		}
	}
}

func TestParseMoveIllegalMoves(t *testing.T) {
	board := gm.NewBoard()
	cases := []string{
		"e2e5", // pawn cannot jump three ranks
		"e7e5", // wrong side to move
		"b1d2", // own pawn on the target square
		"e1g1", // castling with blocked path
		"a1a3", // rook path blocked
	}
	for _, text := range cases {
		if _, err := board.ParseMove(text); !errors.Is(err, gm.ErrIllegalMove) {
			t.Fatalf("ParseMove(%q): got %v want ErrIllegalMove", text, err)
		}
	}
}

func TestParseMovePromotionLetterRequired(t *testing.T) {
	board, err := gm.ParseFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if _, err := board.ParseMove("a7a8"); !errors.Is(err, gm.ErrIllegalMove) {
		t.Fatalf("promotion without letter: got %v want ErrIllegalMove", err)
	}
	move, err := board.ParseMove("a7a8q")
	if err != nil {
		t.Fatalf("ParseMove(a7a8q): %v", err)
	}
	if move.PromotionPieceType() != gm.PieceTypeQueen {
		t.Fatalf("promotion piece: got %v want queen", move.PromotionPieceType())
	}
}

func TestApplyUCIMoveLeavesBoardOnError(t *testing.T) {
	board := gm.NewBoard()
	before := board.ToFEN()
	if _, err := board.ApplyUCIMove("e2e5"); !errors.Is(err, gm.ErrIllegalMove) {
		t.Fatalf("ApplyUCIMove(e2e5): got %v want ErrIllegalMove", err)
	}
	if got := board.ToFEN(); got != before {
		t.Fatalf("rejected move changed the position: %s", got)
	}
}

// Legal move lists must agree with an independent chess library across a
// short random playout.
func TestLegalMovesAgainstReference(t *testing.T) {
	board := gm.NewBoard()
	ref := chess.NewGame()
	for ply := 0; ply < 40; ply++ {
		mine := board.GenerateMoves()
		valid := ref.ValidMoves()
		if len(mine) != len(valid) {
			t.Fatalf("ply %d (%s): %d legal moves, reference has %d",
				ply, board.ToFEN(), len(mine), len(valid))
		}
		if len(valid) == 0 {
			break
		}
		// Deterministic pick keeps failures reproducible.
		next := valid[ply%len(valid)]
		text := next.S1().String() + next.S2().String()
		if next.Promo() != chess.NoPieceType {
			text += next.Promo().String()
		}
		if err := ref.Move(next); err != nil {
			t.Fatalf("reference rejected its own move %s: %v", text, err)
		}
		if _, err := board.ApplyUCIMove(text); err != nil {
			t.Fatalf("ply %d: ApplyUCIMove(%s): %v", ply, text, err)
		}
	}
}
