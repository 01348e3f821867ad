// Package game ties the board, move generator, evaluator and search together
// behind a single per-game handle. A Game owns its board exclusively; run
// concurrent games on separate Game values.
package game

import (
	"math/rand"

	"pelican-engine/engine"
	gm "pelican-engine/pelicanmg"
)

// Status describes whether a game is still in progress and, if not, why it
// ended.
type Status int

const (
	InProgress Status = iota
	WhiteCheckmated
	BlackCheckmated
	Stalemate
	DrawByFiftyMoves
	DrawByRepetition
	DrawByInsufficientMaterial
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case WhiteCheckmated:
		return "white is checkmated"
	case BlackCheckmated:
		return "black is checkmated"
	case Stalemate:
		return "stalemate"
	case DrawByFiftyMoves:
		return "draw by fifty-move rule"
	case DrawByRepetition:
		return "draw by threefold repetition"
	case DrawByInsufficientMaterial:
		return "draw by insufficient material"
	default:
		return "unknown"
	}
}

// Game is a single chess or Chess960 game with its own search state.
type Game struct {
	board    *gm.Board
	searcher *engine.Searcher
}

// NewStandard starts a game from the regular starting position.
func NewStandard() *Game {
	return &Game{board: gm.NewBoard(), searcher: engine.NewSearcher()}
}

// NewChess960 starts a game from the Chess960 position with the given ID
// (0 through 959).
func NewChess960(id int) (*Game, error) {
	b, err := gm.NewBoardFromID(id)
	if err != nil {
		return nil, err
	}
	return &Game{board: b, searcher: engine.NewSearcher()}, nil
}

// NewChess960Random starts a game from a random Chess960 position drawn from
// rnd, or from the shared global source when rnd is nil. The chosen ID is
// returned alongside the game.
func NewChess960Random(rnd *rand.Rand) (*Game, int) {
	id := gm.RandomPositionID(rnd)
	g, _ := NewChess960(id)
	return g, id
}

// NewFromFEN starts a game from a FEN or X-FEN position string.
func NewFromFEN(fen string) (*Game, error) {
	b, err := gm.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Game{board: b, searcher: engine.NewSearcher()}, nil
}

// SetPositionFEN replaces the current position, discarding move history.
// The search state is reset since cached scores no longer apply.
func (g *Game) SetPositionFEN(fen string) error {
	b, err := gm.ParseFEN(fen)
	if err != nil {
		return err
	}
	g.board = b
	g.searcher.ResetForNewGame()
	return nil
}

// Board exposes the underlying board. Mutating it directly bypasses the
// game's bookkeeping; prefer the Game methods.
func (g *Game) Board() *gm.Board { return g.board }

// FEN renders the current position.
func (g *Game) FEN() string { return g.board.ToFEN() }

// LegalMoves returns every legal move in the current position, recomputed
// on each call.
func (g *Game) LegalMoves() []gm.Move { return g.board.GenerateMoves() }

// ApplyUCIMove parses a coordinate move string and plays it. The board is
// unchanged when an error is returned.
func (g *Game) ApplyUCIMove(text string) (gm.Move, error) {
	return g.board.ApplyUCIMove(text)
}

// Undo takes back the last played move.
func (g *Game) Undo() error { return g.board.UndoMove() }

// Evaluate returns the static evaluation of the current position, positive
// for a White advantage.
func (g *Game) Evaluate() int32 { return engine.Evaluation(g.board) }

// Search finds the best move within the given limits. The score in the
// result is from the side to move's point of view.
func (g *Game) Search(limits engine.Limits) (engine.Result, error) {
	return g.searcher.Search(g.board, limits)
}

// StopSearch aborts an in-flight Search call from another goroutine.
func (g *Game) StopSearch() { g.searcher.Stop() }

// Searcher exposes the game's searcher, mainly so callers can attach an
// info writer.
func (g *Game) Searcher() *engine.Searcher { return g.searcher }

// Perft counts leaf nodes of the legal move tree at the given depth.
func (g *Game) Perft(depth int) uint64 { return gm.Perft(g.board, depth) }

// Status reports whether the game has ended and why. Checkmate is checked
// before the draw rules so a mate on the hundredth halfmove counts as a win.
func (g *Game) Status() Status {
	b := g.board
	if !b.HasLegalMoves() {
		if b.InCheck(b.SideToMove()) {
			if b.SideToMove() == gm.White {
				return WhiteCheckmated
			}
			return BlackCheckmated
		}
		return Stalemate
	}
	switch {
	case b.IsDrawBy50():
		return DrawByFiftyMoves
	case b.IsDrawByRepetition():
		return DrawByRepetition
	case b.IsInsufficientMaterial():
		return DrawByInsufficientMaterial
	}
	return InProgress
}
