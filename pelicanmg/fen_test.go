package pelicanmg_test

import (
	"errors"
	"testing"

	gm "pelican-engine/pelicanmg"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		gm.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"8/8/8/8/8/8/8/4K2k w - - 42 99",
	}
	for _, fen := range fens {
		board, err := gm.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := board.ToFEN(); got != fen {
			t.Fatalf("round trip: got %q want %q", got, fen)
		}
	}
}

// Chess960 positions with rooks on nonstandard files render castling
// availability as file letters (X-FEN) and parse back identically.
func TestXFENRoundTrip(t *testing.T) {
	fens := []string{
		"bbqnnrkr/pppppppp/8/8/8/8/PPPPPPPP/BBQNNRKR w HFhf - 0 1",
		"rkrnnqbb/pppppppp/8/8/8/8/PPPPPPPP/RKRNNQBB w CAca - 0 1",
	}
	for _, fen := range fens {
		board, err := gm.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if !board.Chess960() {
			t.Fatalf("%q not recognized as a Chess960 position", fen)
		}
		if got := board.ToFEN(); got != fen {
			t.Fatalf("round trip: got %q want %q", got, fen)
		}
	}
}

func TestParseFENRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP",                              // missing fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",        // bad side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e5 0 1",       // ep on wrong rank
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq - 0 1",        // bad rights letter
		"rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",          // seven ranks
		"rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",       // nine files
		"rnbqkbn1/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",        // missing black king
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNP w KQkq - 0 1",        // pawn on rank 1
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - fifty 1",    // bad clock
	}
	for _, fen := range bad {
		if _, err := gm.ParseFEN(fen); !errors.Is(err, gm.ErrInvalidPositionNotation) {
			t.Fatalf("ParseFEN(%q): got %v want ErrInvalidPositionNotation", fen, err)
		}
	}
}

func TestParseFENDefaultsClocks(t *testing.T) {
	board, err := gm.ParseFEN("4k3/8/8/8/8/8/8/4K3 w - -")
	if err != nil {
		t.Fatalf("ParseFEN without clocks: %v", err)
	}
	if board.HalfmoveClock() != 0 || board.FullmoveNumber() != 1 {
		t.Fatalf("clock defaults: got %d/%d want 0/1", board.HalfmoveClock(), board.FullmoveNumber())
	}
}
