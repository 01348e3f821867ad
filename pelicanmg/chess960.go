package pelicanmg

import (
	"fmt"
	"math/rand"
)

// NumPositions is the number of distinct Chess960 starting arrangements.
const NumPositions = 960

// StandardPositionID is the arrangement number of the classical start
// (RNBQKBNR).
const StandardPositionID = 518

// knightPairs lists the C(5,2) placements of the two knights among the five
// squares left after the bishops and queen, in the standard numbering order.
var knightPairs = [10][2]int{
	{0, 1}, {0, 2}, {0, 3}, {0, 4},
	{1, 2}, {1, 3}, {1, 4},
	{2, 3}, {2, 4}, {3, 4},
}

// BackRankForID decodes a Chess960 arrangement number (0-959) into the back
// rank piece order from file a to file h, using the standard numbering:
// the light-squared bishop from id%4, the dark-squared bishop from (id/4)%4,
// the queen from (id/16)%6 counting free squares left to right, the knights
// from id/96 over the remaining five squares, and finally rook, king, rook
// on the last three free squares.
func BackRankForID(id int) ([8]PieceType, error) {
	var rank [8]PieceType
	if id < 0 || id >= NumPositions {
		return rank, fmt.Errorf("%w: %d", ErrInvalidPositionID, id)
	}

	lightFiles := [4]int{1, 3, 5, 7}
	darkFiles := [4]int{0, 2, 4, 6}
	rank[lightFiles[id%4]] = PieceTypeBishop
	rank[darkFiles[(id/4)%4]] = PieceTypeBishop

	// nth free square from the left receives the queen.
	n := (id / 16) % 6
	for f := 0; f < 8; f++ {
		if rank[f] != PieceTypeNone {
			continue
		}
		if n == 0 {
			rank[f] = PieceTypeQueen
			break
		}
		n--
	}

	// Knights go on the pair of remaining squares selected by id/96.
	pair := knightPairs[id/96]
	free := 0
	for f := 0; f < 8; f++ {
		if rank[f] != PieceTypeNone {
			continue
		}
		if free == pair[0] || free == pair[1] {
			rank[f] = PieceTypeKnight
		}
		free++
	}

	// Remaining squares get rook, king, rook, which puts the king between
	// the rooks by construction.
	order := [3]PieceType{PieceTypeRook, PieceTypeKing, PieceTypeRook}
	oi := 0
	for f := 0; f < 8; f++ {
		if rank[f] == PieceTypeNone {
			rank[f] = order[oi]
			oi++
		}
	}
	return rank, nil
}

// ValidateBackRank checks the Chess960 arrangement constraints: exactly one
// king and queen, two each of rook, knight and bishop, bishops on opposite
// square colors and the king somewhere between the rooks.
func ValidateBackRank(rank [8]PieceType) error {
	var count [7]int
	bishopParity := -1
	kingFile, rook1, rook2 := -1, -1, -1
	for f, pt := range rank {
		count[pt]++
		switch pt {
		case PieceTypeBishop:
			if bishopParity == f%2 {
				return fmt.Errorf("bishops share square color in %v", rank)
			}
			bishopParity = f % 2
		case PieceTypeKing:
			kingFile = f
		case PieceTypeRook:
			if rook1 < 0 {
				rook1 = f
			} else {
				rook2 = f
			}
		}
	}
	if count[PieceTypeKing] != 1 || count[PieceTypeQueen] != 1 ||
		count[PieceTypeRook] != 2 || count[PieceTypeKnight] != 2 || count[PieceTypeBishop] != 2 {
		return fmt.Errorf("wrong piece multiset in %v", rank)
	}
	if kingFile < rook1 || kingFile > rook2 {
		return fmt.Errorf("king not between rooks in %v", rank)
	}
	return nil
}

// RandomPositionID draws a uniformly random arrangement number. A nil rng
// uses the package-level math/rand source.
func RandomPositionID(rnd *rand.Rand) int {
	if rnd == nil {
		return rand.Intn(NumPositions)
	}
	return rnd.Intn(NumPositions)
}

// NewBoard returns a board set up for the standard starting position.
func NewBoard() *Board {
	b, _ := NewBoardFromID(StandardPositionID)
	b.chess960 = false
	return b
}

// NewBoardFromID returns a board set up for the given Chess960 arrangement
// number. ID 518 yields the classical starting position.
func NewBoardFromID(id int) (*Board, error) {
	rank, err := BackRankForID(id)
	if err != nil {
		return nil, err
	}

	b := &Board{
		enPassantSquare: NoSquare,
		fullmoveNumber:  1,
		castlingRights:  CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ,
	}
	for f, pt := range rank {
		b.addPiece(SquareAt(0, f), PieceFromType(White, pt))
		b.addPiece(SquareAt(7, f), PieceFromType(Black, pt))
		if pt == PieceTypeKing {
			b.kingStartFile = int8(f)
		}
	}
	// Rook files relative to the king: the lower file is the queenside rook.
	lower, upper := int8(-1), int8(-1)
	for f, pt := range rank {
		if pt != PieceTypeRook {
			continue
		}
		if int8(f) < b.kingStartFile {
			lower = int8(f)
		} else {
			upper = int8(f)
		}
	}
	b.rookStartFile[castleQueenside] = lower
	b.rookStartFile[castleKingside] = upper

	for f := 0; f < 8; f++ {
		b.addPiece(SquareAt(1, f), WhitePawn)
		b.addPiece(SquareAt(6, f), BlackPawn)
	}

	b.chess960 = b.kingStartFile != 4 || upper != 7 || lower != 0
	b.zobristKey = b.ComputeZobrist()
	return b, nil
}
