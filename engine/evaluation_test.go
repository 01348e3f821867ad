package engine

import (
	"testing"

	gm "pelican-engine/pelicanmg"
)

func mustFEN(t *testing.T, fen string) *gm.Board {
	t.Helper()
	board, err := gm.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return board
}

func TestEvaluationStartposIsBalanced(t *testing.T) {
	if got := Evaluation(mustFEN(t, gm.FENStartPos)); got != 0 {
		t.Fatalf("start position evaluation: got %d want 0", got)
	}
}

// Mirroring a position across the horizontal axis with colors swapped must
// negate the score exactly.
func TestEvaluationColorSymmetry(t *testing.T) {
	pairs := [][2]string{
		{
			"rnbqkbnr/pppp1ppp/8/4p3/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1",
		},
		{
			"r1bqkbnr/pppppppp/2n5/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			"rnbqkbnr/pppppppp/8/8/8/2N5/PPPPPPPP/R1BQKBNR w KQkq - 0 1",
		},
		{
			"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
			"4k3/4p3/8/8/8/8/8/4K3 w - - 0 1",
		},
	}
	for _, pair := range pairs {
		black := Evaluation(mustFEN(t, pair[0]))
		white := Evaluation(mustFEN(t, pair[1]))
		if black != -white {
			t.Fatalf("mirror asymmetry: %q scores %d, %q scores %d", pair[0], black, pair[1], white)
		}
	}
}

func TestEvaluationMaterialDominates(t *testing.T) {
	// White up a full queen.
	up := Evaluation(mustFEN(t, "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"))
	if up < PieceValue[gm.PieceTypeQueen]/2 {
		t.Fatalf("queen-up position scores only %d", up)
	}
	down := Evaluation(mustFEN(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNB1KBNR w KQkq - 0 1"))
	if down > -PieceValue[gm.PieceTypeQueen]/2 {
		t.Fatalf("queen-down position scores %d", down)
	}
}

// With the queens and rooks gone the king should be drawn toward the
// center rather than hiding in the corner.
func TestEvaluationEndgameKingCentralization(t *testing.T) {
	central := Evaluation(mustFEN(t, "8/5k2/8/8/4K3/8/4P3/8 w - - 0 1"))
	corner := Evaluation(mustFEN(t, "8/5k2/8/8/8/8/4P3/7K w - - 0 1"))
	if central <= corner {
		t.Fatalf("centralized king %d not preferred over cornered king %d", central, corner)
	}
}

func TestEvaluationPawnShield(t *testing.T) {
	// Identical material; White's king keeps its pawn cover on one side
	// and has lost it on the other. Queens on the board keep it out of
	// the endgame scoring.
	shielded := Evaluation(mustFEN(t, "rnbq1rk1/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1RK1 w - - 0 1"))
	exposed := Evaluation(mustFEN(t, "rnbq1rk1/pppppppp/8/8/6P1/8/PPPPPP1P/RNBQ1RK1 w - - 0 1"))
	if shielded <= exposed {
		t.Fatalf("shielded king %d not preferred over exposed king %d", shielded, exposed)
	}
}

func TestMateOrCPScoreFormatting(t *testing.T) {
	if got := getMateOrCPScore(125); got != "cp 125" {
		t.Fatalf("cp formatting: got %q", got)
	}
	if got := getMateOrCPScore(MaxScore - 3); got != "mate 2" {
		t.Fatalf("mate formatting: got %q", got)
	}
	if got := getMateOrCPScore(-(MaxScore - 4)); got != "mate -2" {
		t.Fatalf("negative mate formatting: got %q", got)
	}
}
