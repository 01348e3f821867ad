package pelicanmg

import "math/bits"

// Precomputed attack masks for the leaper pieces.
var knightAttackMask [64]uint64
var kingAttackMask [64]uint64

// pawnAttackMask[color][sq] = squares a pawn of color on sq attacks.
var pawnAttackMask [2][64]uint64

// Ray directions. The first four run toward increasing square indices, the
// last four toward decreasing ones; blocker scans depend on that ordering.
const (
	dirN = iota
	dirE
	dirNE
	dirNW
	dirS
	dirW
	dirSE
	dirSW
)

// rays[sq][dir] = open-board ray from sq (exclusive) to the edge.
var rays [64][8]uint64

// between[a][b] = squares strictly between a and b when they share a rank,
// file or diagonal; zero otherwise.
var between [64][64]uint64

var rookDirs = [4]int{dirN, dirE, dirS, dirW}
var bishopDirs = [4]int{dirNE, dirNW, dirSE, dirSW}

// dirSteps maps a direction to its (rank, file) step.
var dirSteps = [8][2]int{
	dirN:  {1, 0},
	dirE:  {0, 1},
	dirNE: {1, 1},
	dirNW: {1, -1},
	dirS:  {-1, 0},
	dirW:  {0, -1},
	dirSE: {-1, 1},
	dirSW: {-1, -1},
}

func init() {
	initLeaperMasks()
	initRays()
	initBetween()
}

func initLeaperMasks() {
	knightSteps := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	for sq := 0; sq < 64; sq++ {
		rank, file := sq/8, sq%8
		for _, st := range knightSteps {
			r, f := rank+st[0], file+st[1]
			if r >= 0 && r < 8 && f >= 0 && f < 8 {
				knightAttackMask[sq] |= uint64(1) << uint(r*8+f)
			}
		}
		for _, st := range dirSteps {
			r, f := rank+st[0], file+st[1]
			if r >= 0 && r < 8 && f >= 0 && f < 8 {
				kingAttackMask[sq] |= uint64(1) << uint(r*8+f)
			}
		}
		if rank < 7 {
			if file > 0 {
				pawnAttackMask[White][sq] |= uint64(1) << uint(sq+7)
			}
			if file < 7 {
				pawnAttackMask[White][sq] |= uint64(1) << uint(sq+9)
			}
		}
		if rank > 0 {
			if file > 0 {
				pawnAttackMask[Black][sq] |= uint64(1) << uint(sq-9)
			}
			if file < 7 {
				pawnAttackMask[Black][sq] |= uint64(1) << uint(sq-7)
			}
		}
	}
}

func initRays() {
	for sq := 0; sq < 64; sq++ {
		for d := 0; d < 8; d++ {
			st := dirSteps[d]
			r, f := sq/8+st[0], sq%8+st[1]
			var ray uint64
			for r >= 0 && r < 8 && f >= 0 && f < 8 {
				ray |= uint64(1) << uint(r*8+f)
				r += st[0]
				f += st[1]
			}
			rays[sq][d] = ray
		}
	}
}

func initBetween() {
	for a := 0; a < 64; a++ {
		for d := 0; d < 8; d++ {
			targets := rays[a][d]
			for t := targets; t != 0; {
				b := popLSB(&t)
				between[a][b] = rays[a][d] &^ rays[b][d] &^ (uint64(1) << uint(b))
			}
		}
	}
}

// slidingAttacks walks the four rays in dirs, truncating each at its first
// blocker (which stays in the attack set as a potential capture).
func slidingAttacks(sq int, occ uint64, dirs *[4]int) uint64 {
	var att uint64
	for _, d := range dirs {
		ray := rays[sq][d]
		if blockers := ray & occ; blockers != 0 {
			var stop int
			if d < dirS {
				stop = bits.TrailingZeros64(blockers)
			} else {
				stop = 63 - bits.LeadingZeros64(blockers)
			}
			ray &^= rays[stop][d]
		}
		att |= ray
	}
	return att
}

func rookAttacks(sq int, occ uint64) uint64   { return slidingAttacks(sq, occ, &rookDirs) }
func bishopAttacks(sq int, occ uint64) uint64 { return slidingAttacks(sq, occ, &bishopDirs) }

// ==========================
// Exported attack queries
// ==========================

// RookAttacks returns the rook attack set from sq with the given occupancy.
func RookAttacks(sq Square, occ uint64) uint64 { return rookAttacks(int(sq), occ) }

// BishopAttacks returns the bishop attack set from sq with the given occupancy.
func BishopAttacks(sq Square, occ uint64) uint64 { return bishopAttacks(int(sq), occ) }

// QueenAttacks returns the queen attack set from sq with the given occupancy.
func QueenAttacks(sq Square, occ uint64) uint64 {
	return rookAttacks(int(sq), occ) | bishopAttacks(int(sq), occ)
}

// KnightAttacks returns the knight attack mask from sq.
func KnightAttacks(sq Square) uint64 { return knightAttackMask[int(sq)] }

// KingAttacks returns the king attack mask from sq.
func KingAttacks(sq Square) uint64 { return kingAttackMask[int(sq)] }

// PawnAttacks returns the attack mask of a pawn of the given color on sq.
func PawnAttacks(c Color, sq Square) uint64 { return pawnAttackMask[c][int(sq)] }

// IsSquareAttacked reports whether the given square is attacked by the given color.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	return b.isSquareAttackedWithOcc(int(sq), by, b.AllOccupancy())
}

// isSquareAttackedWithOcc runs the attack query against a caller-supplied
// occupancy so castling and en passant checks can lift pieces off the board.
func (b *Board) isSquareAttackedWithOcc(s int, by Color, occ uint64) bool {
	byIdx := int(by)

	// A pawn of color `by` attacks s exactly when a pawn of the other color
	// standing on s would attack the pawn's square.
	if pawnAttackMask[by.Opposite()][s]&b.pawns[byIdx] != 0 {
		return true
	}
	if knightAttackMask[s]&b.knights[byIdx] != 0 {
		return true
	}
	if kingAttackMask[s]&b.kings[byIdx] != 0 {
		return true
	}
	if rookAttacks(s, occ)&(b.rooks[byIdx]|b.queens[byIdx]) != 0 {
		return true
	}
	if bishopAttacks(s, occ)&(b.bishops[byIdx]|b.queens[byIdx]) != 0 {
		return true
	}
	return false
}

// InCheck reports whether the specified color's king is currently in check.
func (b *Board) InCheck(color Color) bool {
	ci := int(color)
	kingBB := b.kings[ci]
	if kingBB == 0 {
		return false
	}
	ks := bits.TrailingZeros64(kingBB)
	return b.IsSquareAttacked(Square(ks), color.Opposite())
}
