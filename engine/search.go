package engine

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	gm "pelican-engine/pelicanmg"
)

const (
	// MaxScore bounds all search scores; mate at ply p scores MaxScore-p.
	MaxScore int32 = 32500
	// Checkmate is the threshold above which a score is a forced mate.
	Checkmate int32 = 20000
	// DrawScore is returned for stalemate, repetition and the 50-move rule.
	DrawScore int32 = 0
	// MaxDepth caps the iterative deepening loop and the search stack.
	MaxDepth = 64

	stopCheckInterval = 4096
	aspirationWindow  int32 = 50
	aspirationMinDepth int8 = 4
)

var (
	// ErrNoLegalMoves is returned when the side to move is already mated
	// or stalemated.
	ErrNoLegalMoves = errors.New("search: no legal moves in root position")
	// ErrNoSearchBound is returned when the limits carry neither a depth
	// nor any time control.
	ErrNoSearchBound = errors.New("search: limits specify no depth or time bound")
)

// Limits bounds a search. Times are in milliseconds. At least one of Depth,
// MoveTime, the clock times or Infinite must be set.
type Limits struct {
	Depth          int
	MoveTime       int
	WhiteTime      int
	BlackTime      int
	WhiteIncrement int
	BlackIncrement int
	Infinite       bool
}

func (l Limits) bounded() bool {
	return l.Depth > 0 || l.MoveTime > 0 || l.WhiteTime > 0 || l.BlackTime > 0 || l.Infinite
}

// Result is the outcome of a completed search. Score is from the point of
// view of the side to move; mates are reported as MaxScore minus the mating
// ply. Depth is the last fully completed iteration.
type Result struct {
	BestMove gm.Move
	Score    int32
	Depth    int
	Nodes    uint64
	PV       []gm.Move
}

// Searcher runs iterative deepening alpha-beta searches over a Board. It is
// not safe for concurrent searches, but Stop may be called from another
// goroutine while Search is running.
type Searcher struct {
	tt       TransTable
	killers  KillerTable
	history  [2][64][64]int32
	counters [2][64][64]gm.Move

	timer     TimeHandler
	stopped   atomic.Bool
	allowStop bool

	nodes     uint64
	startTime time.Time

	// per-ply move buffers, reused across iterations
	abBuf [MaxDepth + 2][]gm.Move
	qsBuf [MaxDepth + 2][]gm.Move

	// Info, when non-nil, receives a UCI info line per completed depth.
	Info io.Writer
}

// NewSearcher allocates a searcher with the default transposition table size.
func NewSearcher() *Searcher {
	s := &Searcher{}
	s.tt.init(DefaultTTSizeMB)
	for i := range s.abBuf {
		s.abBuf[i] = make([]gm.Move, 0, 128)
		s.qsBuf[i] = make([]gm.Move, 0, 64)
	}
	return s
}

// Stop aborts a running search. The search still returns its best result
// from the last completed iteration.
func (s *Searcher) Stop() {
	s.stopped.Store(true)
	s.timer.Stop()
}

// ResetForNewGame clears all state carried between searches.
func (s *Searcher) ResetForNewGame() {
	s.tt.clear()
	s.killers.clear()
	s.clearHistory()
}

// Search runs an iterative deepening search on b within the given limits.
// b is restored to its initial state before returning.
func (s *Searcher) Search(b *gm.Board, limits Limits) (Result, error) {
	if !limits.bounded() {
		return Result{}, ErrNoSearchBound
	}
	rootMoves := b.GenerateMoves()
	if len(rootMoves) == 0 {
		return Result{}, ErrNoLegalMoves
	}

	s.stopped.Store(false)
	s.timer.Start(b, limits)
	s.nodes = 0
	s.startTime = time.Now()
	s.killers.clear()

	maxDepth := int8(MaxDepth)
	if limits.Depth > 0 && limits.Depth < MaxDepth {
		maxDepth = int8(limits.Depth)
	}

	result := Result{BestMove: rootMoves[0], Score: -MaxScore, Depth: 0}
	var pv PVLine
	prevScore := -MaxScore

	for depth := int8(1); depth <= maxDepth; depth++ {
		// The first iteration always runs to completion so a best move
		// exists even under a hopeless clock.
		s.allowStop = depth > 1

		alpha, beta := -MaxScore, MaxScore
		if depth >= aspirationMinDepth {
			alpha = prevScore - aspirationWindow
			beta = prevScore + aspirationWindow
		}

		score := s.alphabeta(b, depth, 0, alpha, beta, &pv, gm.NullMove)
		if !s.aborted() && (score <= alpha || score >= beta) {
			// Aspiration miss: redo the iteration with a full window.
			pv.Clear()
			score = s.alphabeta(b, depth, 0, -MaxScore, MaxScore, &pv, gm.NullMove)
		}
		if s.aborted() {
			break
		}

		prevScore = score
		result.Score = score
		result.Depth = int(depth)
		result.Nodes = s.nodes
		if mv := pv.GetPVMove(); mv != gm.NullMove {
			result.BestMove = mv
			result.PV = pv.Clone().Moves
		}
		s.reportInfo(depth, score, &pv)

		if score > Checkmate || score < -Checkmate {
			break
		}
		if s.timer.Expired() {
			break
		}
	}

	result.Nodes = s.nodes
	return result, nil
}

func (s *Searcher) aborted() bool {
	return s.allowStop && (s.stopped.Load() || s.timer.Expired())
}

func (s *Searcher) checkStop() bool {
	if !s.allowStop {
		return false
	}
	if s.stopped.Load() {
		return true
	}
	if s.nodes%stopCheckInterval == 0 && s.timer.Expired() {
		s.stopped.Store(true)
		return true
	}
	return false
}

func (s *Searcher) reportInfo(depth int8, score int32, pv *PVLine) {
	if s.Info == nil {
		return
	}
	elapsed := time.Since(s.startTime).Milliseconds()
	nps := int64(0)
	if elapsed > 0 {
		nps = int64(s.nodes) * 1000 / elapsed
	}
	fmt.Fprintf(s.Info, "info depth %d score %s nodes %d nps %d time %d pv %s\n",
		depth, getMateOrCPScore(score), s.nodes, nps, elapsed, pv.String())
}

// alphabeta is a fail-soft negamax search with principal variation search
// and a check extension. Scores are relative to the side to move.
func (s *Searcher) alphabeta(b *gm.Board, depth int8, ply int, alpha, beta int32, pv *PVLine, prevMove gm.Move) int32 {
	s.nodes++
	if s.checkStop() {
		return 0
	}
	if ply >= MaxDepth {
		return evalRelative(b)
	}

	isRoot := ply == 0
	isPVNode := beta-alpha > 1

	if !isRoot {
		if b.HalfmoveClock() >= 100 || b.IsDrawByRepetition() || b.IsInsufficientMaterial() {
			return DrawScore
		}
		// Mate distance pruning: a mate from here can never beat one
		// already found closer to the root.
		alpha = Max(alpha, -MaxScore+int32(ply))
		beta = Min(beta, MaxScore-int32(ply)-1)
		if alpha >= beta {
			return alpha
		}
	}

	hash := b.Hash()
	ttMove := gm.NullMove
	if entry := s.tt.probe(hash); entry != nil {
		ttMove = entry.Move
		if !isRoot && !isPVNode {
			if ok, score := s.tt.useEntry(entry, depth, alpha, beta, ply); ok {
				return score
			}
		}
	}

	// Terminal positions are scored exactly, so legal moves are needed
	// before the quiescence handoff at the horizon.
	moves := b.GenerateMovesInto(s.abBuf[ply][:0])
	if len(moves) == 0 {
		if b.InCheck(b.SideToMove()) {
			return -MaxScore + int32(ply)
		}
		return DrawScore
	}
	if depth <= 0 {
		return s.quiescence(b, ply, alpha, beta)
	}

	var childPV PVLine
	list := s.scoreMoves(b, moves, ply, ttMove, prevMove)
	side := b.SideToMove()

	bestScore := -MaxScore
	bestMove := gm.NullMove
	ttFlag := AlphaFlag
	searched := 0

	for i := 0; i < len(list.moves); i++ {
		orderNextMove(i, &list)
		move := list.moves[i].move

		ok, st := b.MakeMove(move)
		if !ok {
			continue
		}

		extension := int8(0)
		if b.InCheck(b.SideToMove()) {
			extension = 1
		}

		var score int32
		if searched == 0 {
			score = -s.alphabeta(b, depth-1+extension, ply+1, -beta, -alpha, &childPV, move)
		} else {
			// Null-window probe first; re-search on an unexpected
			// improvement.
			score = -s.alphabeta(b, depth-1+extension, ply+1, -alpha-1, -alpha, &childPV, move)
			if score > alpha && score < beta {
				score = -s.alphabeta(b, depth-1+extension, ply+1, -beta, -alpha, &childPV, move)
			}
		}
		b.UnmakeMove(move, st)
		searched++

		if s.stopped.Load() && s.allowStop {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
			ttFlag = ExactFlag
			pv.Update(move, &childPV)
			if alpha >= beta {
				ttFlag = BetaFlag
				if !move.IsCapture() && move.PromotionPiece() == gm.NoPiece {
					s.killers.store(ply, move)
					s.incrementHistory(side, move, depth)
					s.storeCounter(side, prevMove, move)
					for j := 0; j < i; j++ {
						prior := list.moves[j].move
						if !prior.IsCapture() && prior.PromotionPiece() == gm.NoPiece {
							s.decrementHistory(side, prior)
						}
					}
				}
				break
			}
		}
		childPV.Clear()
	}

	if searched == 0 {
		// Every pseudo-legal survivor left the king in check.
		if b.InCheck(b.SideToMove()) {
			return -MaxScore + int32(ply)
		}
		return DrawScore
	}

	if !(s.allowStop && s.stopped.Load()) {
		s.tt.storeEntry(hash, depth, ply, bestMove, bestScore, ttFlag)
	}
	return bestScore
}

// quiescence resolves captures and promotions so the horizon evaluation is
// not taken in the middle of an exchange. In check every evasion is tried,
// which also detects mates past the horizon.
func (s *Searcher) quiescence(b *gm.Board, ply int, alpha, beta int32) int32 {
	s.nodes++
	if s.checkStop() {
		return 0
	}
	if ply >= MaxDepth {
		return evalRelative(b)
	}

	inCheck := b.InCheck(b.SideToMove())
	var moves []gm.Move
	if inCheck {
		moves = b.GenerateMovesInto(s.qsBuf[ply][:0])
		if len(moves) == 0 {
			return -MaxScore + int32(ply)
		}
	} else {
		standPat := evalRelative(b)
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
		moves = b.GenerateLegalCapturesInto(s.qsBuf[ply][:0])
		if len(moves) == 0 {
			return standPat
		}
	}

	bestScore := -MaxScore
	if !inCheck {
		bestScore = alpha
	}

	list := s.scoreCaptures(moves)
	for i := 0; i < len(list.moves); i++ {
		orderNextMove(i, &list)
		move := list.moves[i].move

		ok, st := b.MakeMove(move)
		if !ok {
			continue
		}
		score := -s.quiescence(b, ply+1, -beta, -alpha)
		b.UnmakeMove(move, st)

		if s.stopped.Load() && s.allowStop {
			return 0
		}
		if score > bestScore {
			bestScore = score
		}
		if score > alpha {
			alpha = score
			if alpha >= beta {
				break
			}
		}
	}
	return bestScore
}

// evalRelative returns the static evaluation from the side to move's view.
func evalRelative(b *gm.Board) int32 {
	score := Evaluation(b)
	if b.SideToMove() == gm.Black {
		return -score
	}
	return score
}
