package engine

import (
	"errors"
	"testing"

	gm "pelican-engine/pelicanmg"
)

// refMinimax is a plain negamax with no windows, no table and no move
// ordering, sharing the draw rules, mate scoring, check extension and
// horizon resolution with alphabeta. Pruning must never change the score
// alphabeta reports at the root.
func (s *Searcher) refMinimax(b *gm.Board, depth int8, ply int) int32 {
	if ply >= MaxDepth {
		return evalRelative(b)
	}
	if ply > 0 {
		if b.HalfmoveClock() >= 100 || b.IsDrawByRepetition() || b.IsInsufficientMaterial() {
			return DrawScore
		}
	}
	moves := b.GenerateMoves()
	if len(moves) == 0 {
		if b.InCheck(b.SideToMove()) {
			return -MaxScore + int32(ply)
		}
		return DrawScore
	}
	if depth <= 0 {
		return s.quiescence(b, ply, -MaxScore, MaxScore)
	}

	best := -MaxScore
	for _, move := range moves {
		ok, st := b.MakeMove(move)
		if !ok {
			continue
		}
		extension := int8(0)
		if b.InCheck(b.SideToMove()) {
			extension = 1
		}
		score := -s.refMinimax(b, depth-1+extension, ply+1)
		b.UnmakeMove(move, st)
		if score > best {
			best = score
		}
	}
	return best
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	fens := []string{
		gm.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
		"8/8/3k4/8/3K4/4P3/8/8 w - - 0 1",
	}
	for _, fen := range fens {
		for depth := int8(1); depth <= 3; depth++ {
			board, err := gm.ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN(%q): %v", fen, err)
			}
			ref := NewSearcher()
			want := ref.refMinimax(board, depth, 0)

			pruned := NewSearcher()
			var pv PVLine
			got := pruned.alphabeta(board, depth, 0, -MaxScore, MaxScore, &pv, gm.NullMove)
			if got != want {
				t.Fatalf("%s depth %d: alpha-beta %d, minimax %d", fen, depth, got, want)
			}
		}
	}
}

func TestSearchFindsMateInOne(t *testing.T) {
	// Back-rank mate: the rook lift to a8 ends the game at once.
	board, err := gm.ParseFEN("6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	result, err := NewSearcher().Search(board, Limits{Depth: 3})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := result.BestMove.String(); got != "a1a8" {
		t.Fatalf("best move: got %s want a1a8 (score %d, pv %v)", got, result.Score, result.PV)
	}
	if result.Score != MaxScore-1 {
		t.Fatalf("mate score: got %d want %d", result.Score, MaxScore-1)
	}
}

func TestSearchPrefersFasterMate(t *testing.T) {
	// Two queens against a bare king: mate in two at most from here.
	board, err := gm.ParseFEN("k7/8/2Q5/8/8/8/1Q6/7K w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	result, err := NewSearcher().Search(board, Limits{Depth: 6})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.Score <= Checkmate {
		t.Fatalf("expected a mate score, got %d", result.Score)
	}
	// A mate score of MaxScore-n means mate is delivered on ply n.
	if matePly := MaxScore - result.Score; matePly > 3 {
		t.Fatalf("expected mate within 3 plies, score says %d", matePly)
	}
}

func TestSearchOnCheckmatedPosition(t *testing.T) {
	board, err := gm.ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !board.InCheckmate() {
		t.Fatalf("position expected to be checkmate")
	}
	if _, err := NewSearcher().Search(board, Limits{Depth: 3}); !errors.Is(err, ErrNoLegalMoves) {
		t.Fatalf("Search on mated position: got %v want ErrNoLegalMoves", err)
	}
}

func TestSearchOnStalematedPosition(t *testing.T) {
	board, err := gm.ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !board.InStalemate() {
		t.Fatalf("position expected to be stalemate")
	}
	if _, err := NewSearcher().Search(board, Limits{Depth: 3}); !errors.Is(err, ErrNoLegalMoves) {
		t.Fatalf("Search on stalemated position: got %v want ErrNoLegalMoves", err)
	}
}

func TestStalemateInsideTreeScoresZero(t *testing.T) {
	// Stalemate reached as an interior node must score exactly zero,
	// not a mate or an evaluation.
	board, err := gm.ParseFEN("7k/8/6QK/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !board.InStalemate() {
		t.Fatalf("position expected to be stalemate")
	}
	s := NewSearcher()
	var pv PVLine
	if got := s.alphabeta(board, 2, 1, -MaxScore, MaxScore, &pv, gm.NullMove); got != DrawScore {
		t.Fatalf("stalemate node score: got %d want %d", got, DrawScore)
	}
}

func TestSearchRequiresBound(t *testing.T) {
	board := mustStartpos(t)
	if _, err := NewSearcher().Search(board, Limits{}); !errors.Is(err, ErrNoSearchBound) {
		t.Fatalf("unbounded search: got %v want ErrNoSearchBound", err)
	}
}

func TestSearchTinyTimeBudgetStillMoves(t *testing.T) {
	board := mustStartpos(t)
	result, err := NewSearcher().Search(board, Limits{MoveTime: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.BestMove == gm.NullMove {
		t.Fatalf("no best move under a 1ms budget")
	}
	if result.Depth < 1 {
		t.Fatalf("first iteration did not complete: depth %d", result.Depth)
	}
}

func TestSearchRestoresBoard(t *testing.T) {
	board := mustStartpos(t)
	before := board.Snapshot()
	if _, err := NewSearcher().Search(board, Limits{Depth: 4}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if before != board.Snapshot() {
		t.Fatalf("search left the board mutated: %s", board.ToFEN())
	}
	if board.HistoryLen() != 0 {
		t.Fatalf("search left %d history entries", board.HistoryLen())
	}
}

func mustStartpos(t *testing.T) *gm.Board {
	t.Helper()
	board, err := gm.ParseFEN(gm.FENStartPos)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	return board
}
