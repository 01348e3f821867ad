package engine

import (
	"math/bits"

	gm "pelican-engine/pelicanmg"
)

// =============================================================================
// EVALUATION CONSTANTS
// =============================================================================

// PieceValue holds material values in centipawns, indexed by PieceType.
// Kings carry no material value; losing one ends the game instead.
var PieceValue = [7]int32{0, 100, 320, 330, 500, 900, 0}

// endgameMaterialLimit is the non-pawn material (both sides combined) at or
// below which the king switches to its endgame placement table. It roughly
// corresponds to a queen and rook per side remaining.
const endgameMaterialLimit int32 = 2600

const (
	mobilityWeight   int32 = 5
	pawnShieldBonus  int32 = 10
	kingAreaAttacked int32 = 5
)

// Piece-square tables, written as the board is drawn with rank 8 on top.
// White reads them through a vertical flip (sq^56); Black reads them directly.

var pawnPST = [64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int32{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int32{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenPST = [64]int32{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingMiddlePST = [64]int32{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var kingEndPST = [64]int32{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

// pstFor reads the placement table for a piece, oriented for its color.
func pstFor(pt gm.PieceType, sq gm.Square, c gm.Color, endgame bool) int32 {
	idx := int(sq)
	if c == gm.White {
		idx ^= 56
	}
	switch pt {
	case gm.PieceTypePawn:
		return pawnPST[idx]
	case gm.PieceTypeKnight:
		return knightPST[idx]
	case gm.PieceTypeBishop:
		return bishopPST[idx]
	case gm.PieceTypeRook:
		return rookPST[idx]
	case gm.PieceTypeQueen:
		return queenPST[idx]
	case gm.PieceTypeKing:
		if endgame {
			return kingEndPST[idx]
		}
		return kingMiddlePST[idx]
	}
	return 0
}

// Evaluation scores the position in centipawns from White's point of view:
// material, piece placement, mobility and king safety. The king placement
// table switches to the endgame variant once little non-pawn material is
// left, pulling the king toward the center.
func Evaluation(b *gm.Board) int32 {
	endgame := nonPawnMaterial(b) <= endgameMaterialLimit

	var score int32
	for sq := gm.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p == gm.NoPiece {
			continue
		}
		pt := p.Type()
		term := PieceValue[pt] + pstFor(pt, sq, p.Color(), endgame)
		if p.Color() == gm.White {
			score += term
		} else {
			score -= term
		}
	}

	score += mobilityWeight * (mobility(b, gm.White) - mobility(b, gm.Black))
	if !endgame {
		score += kingSafety(b, gm.White) - kingSafety(b, gm.Black)
	}
	return score
}

// nonPawnMaterial sums the material value of all knights, bishops, rooks and
// queens on the board for both sides.
func nonPawnMaterial(b *gm.Board) int32 {
	var total int32
	for sq := gm.Square(0); sq < 64; sq++ {
		switch pt := b.PieceAt(sq).Type(); pt {
		case gm.PieceTypeKnight, gm.PieceTypeBishop, gm.PieceTypeRook, gm.PieceTypeQueen:
			total += PieceValue[pt]
		}
	}
	return total
}

// mobility counts pseudo-legal destination squares for the minor and major
// pieces of one side. Pawn and king moves are deliberately excluded; they say
// little about piece activity.
func mobility(b *gm.Board, c gm.Color) int32 {
	own := b.ColorOccupancy(c)
	all := b.AllOccupancy()

	var count int
	for sq := gm.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p == gm.NoPiece || p.Color() != c {
			continue
		}
		switch p.Type() {
		case gm.PieceTypeKnight:
			count += bits.OnesCount64(gm.KnightAttacks(sq) &^ own)
		case gm.PieceTypeBishop:
			count += bits.OnesCount64(gm.BishopAttacks(sq, all) &^ own)
		case gm.PieceTypeRook:
			count += bits.OnesCount64(gm.RookAttacks(sq, all) &^ own)
		case gm.PieceTypeQueen:
			count += bits.OnesCount64(gm.QueenAttacks(sq, all) &^ own)
		}
	}
	return int32(count)
}

// kingSafety rewards an intact pawn shield in front of the king and
// penalizes enemy attacks on the squares around it.
func kingSafety(b *gm.Board, c gm.Color) int32 {
	ksq := b.KingSquare(c)
	if ksq == gm.NoSquare {
		return 0
	}

	var score int32

	// Pawn shield: own pawns one rank ahead on the king's file and the two
	// adjacent files.
	shieldRank := gm.RankOf(ksq) + 1
	if c == gm.Black {
		shieldRank = gm.RankOf(ksq) - 1
	}
	if shieldRank >= 0 && shieldRank < 8 {
		pawn := gm.PieceFromType(c, gm.PieceTypePawn)
		kf := gm.FileOf(ksq)
		for f := kf - 1; f <= kf+1; f++ {
			if f < 0 || f > 7 {
				continue
			}
			if b.PieceAt(gm.SquareAt(shieldRank, f)) == pawn {
				score += pawnShieldBonus
			}
		}
	}

	// Exposure: each square adjacent to the king that the opponent attacks.
	them := c.Opposite()
	for zone := gm.KingAttacks(ksq); zone != 0; {
		sq := gm.Square(bits.TrailingZeros64(zone))
		zone &= zone - 1
		if b.IsSquareAttacked(sq, them) {
			score -= kingAreaAttacked
		}
	}
	return score
}
