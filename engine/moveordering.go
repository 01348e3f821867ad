package engine

import (
	gm "pelican-engine/pelicanmg"
)

type scoredMove struct {
	move  gm.Move
	score uint16
}

type moveList struct {
	moves []scoredMove
}

// Most Valuable Victim - Least Valuable Aggressor; used to score and sort
// captures. Rows by victim type, columns by attacker type.
var mvvLva = [7][7]uint16{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 14, 13, 12, 11, 10, 9},  // victim Pawn
	{0, 24, 23, 22, 21, 20, 19}, // victim Knight
	{0, 34, 33, 32, 31, 30, 29}, // victim Bishop
	{0, 44, 43, 42, 41, 40, 39}, // victim Rook
	{0, 54, 53, 52, 51, 50, 49}, // victim Queen
	{0, 0, 0, 0, 0, 0, 0},      // victim King (never captured)
}

// Ordering offsets. Hash/PV moves first, then promotions and captures, then
// the quiet move heuristics (killers above counters above plain history).
const (
	pvOffset        uint16 = 25000
	promotionOffset uint16 = 20000
	captureOffset   uint16 = 15000
	killerOffset    uint16 = 2000
	counterOffset   uint16 = 1000
)

// historyMaxVal keeps history scores below the quiet-move offsets.
const historyMaxVal = 1000

// KillerTable remembers quiet moves that caused beta cutoffs, two per ply.
type KillerTable [MaxDepth + 1][2]gm.Move

func (kt *KillerTable) store(ply int, move gm.Move) {
	if ply < 0 || ply > MaxDepth {
		return
	}
	if kt[ply][0] != move {
		kt[ply][1] = kt[ply][0]
		kt[ply][0] = move
	}
}

func (kt *KillerTable) clear() {
	*kt = KillerTable{}
}

// incrementHistory rewards a quiet move that caused a beta cutoff.
func (s *Searcher) incrementHistory(side gm.Color, move gm.Move, depth int8) {
	entry := &s.history[side][move.From()][move.To()]
	*entry += int32(depth) * int32(depth)
	if *entry >= historyMaxVal {
		s.ageHistory(side)
	}
}

// decrementHistory punishes quiet moves that were searched before the cutoff.
func (s *Searcher) decrementHistory(side gm.Color, move gm.Move) {
	entry := &s.history[side][move.From()][move.To()]
	if *entry > 0 {
		*entry--
	}
}

func (s *Searcher) ageHistory(side gm.Color) {
	for from := 0; from < 64; from++ {
		for to := 0; to < 64; to++ {
			s.history[side][from][to] /= 2
		}
	}
}

func (s *Searcher) clearHistory() {
	s.history = [2][64][64]int32{}
	s.counters = [2][64][64]gm.Move{}
}

// storeCounter remembers the move that refuted prevMove.
func (s *Searcher) storeCounter(side gm.Color, prevMove, move gm.Move) {
	if prevMove == gm.NullMove {
		return
	}
	s.counters[side][prevMove.From()][prevMove.To()] = move
}

// scoreMoves assigns an ordering score to every move: PV/hash move first,
// then promotions, MVV-LVA captures, killers, counter moves and history.
func (s *Searcher) scoreMoves(b *gm.Board, moves []gm.Move, ply int, pvMove, prevMove gm.Move) moveList {
	side := b.SideToMove()
	list := moveList{moves: make([]scoredMove, len(moves))}
	for i, move := range moves {
		var score uint16
		switch {
		case move == pvMove:
			score = pvOffset + 1500
		case move.PromotionPiece() != gm.NoPiece:
			score = promotionOffset + uint16(PieceValue[move.PromotionPieceType()])
		case move.IsCapture():
			score = captureOffset + mvvLva[move.CapturedPiece().Type()][move.MovedPiece().Type()]
		case ply <= MaxDepth && s.killers[ply][0] == move:
			score = killerOffset + 200
		case ply <= MaxDepth && s.killers[ply][1] == move:
			score = killerOffset
		case prevMove != gm.NullMove && s.counters[side][prevMove.From()][prevMove.To()] == move:
			score = counterOffset
		default:
			score = uint16(s.history[side][move.From()][move.To()])
		}
		list.moves[i] = scoredMove{move: move, score: score}
	}
	return list
}

// scoreCaptures is the quiescence variant: MVV-LVA and promotion values only.
func (s *Searcher) scoreCaptures(moves []gm.Move) moveList {
	list := moveList{moves: make([]scoredMove, len(moves))}
	for i, move := range moves {
		var score uint16
		if move.PromotionPiece() != gm.NoPiece {
			score = promotionOffset + uint16(PieceValue[move.PromotionPieceType()])
		} else {
			score = captureOffset + mvvLva[move.CapturedPiece().Type()][move.MovedPiece().Type()]
		}
		list.moves[i] = scoredMove{move: move, score: score}
	}
	return list
}

// orderNextMove selection-sorts the highest scored remaining move into
// position currIndex.
func orderNextMove(currIndex int, list *moveList) {
	bestIndex := currIndex
	bestScore := list.moves[bestIndex].score
	for i := currIndex + 1; i < len(list.moves); i++ {
		if list.moves[i].score > bestScore {
			bestIndex = i
			bestScore = list.moves[i].score
		}
	}
	list.moves[currIndex], list.moves[bestIndex] = list.moves[bestIndex], list.moves[currIndex]
}
