package pelicanmg

import "math/bits"

// Piece constants and types for pieces and colors
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless representation of a chess piece used for table lookups.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless type of the piece (ignores side).
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color { return colorOf(p) }

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone || pt > PieceTypeKing {
		return NoPiece
	}
	p := Piece(pt)
	if color == Black {
		p |= 8
	}
	return p
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Opposite returns the other side.
func (c Color) Opposite() Color { return c ^ 1 }

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ

	// CastlingAll combines all four rights.
	CastlingAll = CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
)

// rights returns the combined castling flags for one side.
func rights(c Color) CastlingRights {
	if c == White {
		return CastlingWhiteK | CastlingWhiteQ
	}
	return CastlingBlackK | CastlingBlackQ
}

// kingsideRight / queensideRight return the single flag for one side.
func kingsideRight(c Color) CastlingRights {
	if c == White {
		return CastlingWhiteK
	}
	return CastlingBlackK
}

func queensideRight(c Color) CastlingRights {
	if c == White {
		return CastlingWhiteQ
	}
	return CastlingBlackQ
}

// Square represents a board position (0-63), a1 = 0, h8 = 63.
type Square int

const NoSquare Square = -1

// FileOf returns the file (0-7, a-h) of a square.
func FileOf(sq Square) int { return int(sq) & 7 }

// RankOf returns the rank (0-7) of a square.
func RankOf(sq Square) int { return int(sq) >> 3 }

// SquareAt builds a square from a rank and file, both 0-7.
func SquareAt(rank, file int) Square { return Square(rank*8 + file) }

// backRank returns the home rank for a color (0 for White, 7 for Black).
func backRank(c Color) int {
	if c == White {
		return 0
	}
	return 7
}

// Board represents the full game state: piece placement, side to move,
// castling configuration, en passant target, move clocks, Zobrist key and
// the move history needed for undo and repetition detection.
//
// The same representation serves standard chess and Chess960. Castling is
// described by the files the king and rooks started on rather than by fixed
// squares, so the standard game is simply the Chess960 arrangement with
// king on e and rooks on a/h.
type Board struct {
	// Piece bitboards for each piece type and color (index 0 = white, 1 = black)
	pawns   [2]uint64
	knights [2]uint64
	bishops [2]uint64
	rooks   [2]uint64
	queens  [2]uint64
	kings   [2]uint64

	// Occupancy bitboards for each side
	occupancy [2]uint64

	// Piece placement array for each square (0 = NoPiece, otherwise a Piece constant)
	pieces [64]Piece

	sideToMove Color

	// Castling rights for both sides (bitmask using CastlingRights flags)
	castlingRights CastlingRights

	// Starting file of the king and of the two rooks, shared by both sides.
	// For the standard arrangement these are e, h and a.
	kingStartFile int8
	rookStartFile [2]int8 // [castleKingside] and [castleQueenside]

	// True when the position came from a Chess960 arrangement whose rooks do
	// not sit on the classical corner files. Controls FEN castling letters.
	chess960 bool

	// En passant target square (if a pawn moved two steps last move, otherwise NoSquare)
	enPassantSquare Square

	// Halfmove clock (number of half-moves since last capture or pawn advance, for 50-move rule)
	halfmoveClock int

	// Fullmove number (starts at 1, incremented after Black's move)
	fullmoveNumber int

	// Zobrist hash key for the current position
	zobristKey uint64

	// Move history since the board was set up. MakeMove appends, UnmakeMove
	// truncates. Also serves as the repetition window.
	history []MoveState
}

const (
	castleKingside  = 0
	castleQueenside = 1
)

// HasLegalMoves reports whether the side to move has any legal moves.
func (b *Board) HasLegalMoves() bool {
	buf := make([]Move, 0, 64)
	moves := b.GenerateMovesInto(buf)
	return len(moves) > 0
}

// InCheckmate reports whether the side to move is checkmated.
func (b *Board) InCheckmate() bool {
	return b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}

// InStalemate reports whether the side to move is stalemated.
func (b *Board) InStalemate() bool {
	return !b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}

// IsDrawBy50 reports a 50-move rule draw (halfmoveClock counts half-moves).
func (b *Board) IsDrawBy50() bool {
	return b.halfmoveClock >= 100
}

// IsDrawByRepetition reports a draw by threefold repetition. The current
// position counts as one occurrence; two earlier occurrences in the history
// make three. Only positions since the last irreversible move can repeat,
// so the scan is bounded by the halfmove clock.
func (b *Board) IsDrawByRepetition() bool {
	target := b.zobristKey
	limit := len(b.history) - b.halfmoveClock
	if limit < 0 {
		limit = 0
	}
	matches := 0
	for i := len(b.history) - 1; i >= limit; i-- {
		if b.history[i].prevZobrist == target {
			matches++
			if matches >= 2 {
				return true
			}
		}
	}
	return false
}

// IsInsufficientMaterial reports a dead position by material: no pawns,
// rooks or queens on the board and at most one minor piece per side.
func (b *Board) IsInsufficientMaterial() bool {
	if b.pawns[0]|b.pawns[1]|b.rooks[0]|b.rooks[1]|b.queens[0]|b.queens[1] != 0 {
		return false
	}
	for ci := 0; ci < 2; ci++ {
		if bits.OnesCount64(b.knights[ci]|b.bishops[ci]) > 1 {
			return false
		}
	}
	return true
}

// HalfmoveClock accessor for testing/consumers that want read-only access.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the full move counter (incremented after Black's move).
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassantSquare }

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// CastlingRightsMask returns the current castling rights bitmask.
func (b *Board) CastlingRightsMask() CastlingRights { return b.castlingRights }

// Chess960 reports whether the board uses Chess960 castling notation.
func (b *Board) Chess960() bool { return b.chess960 }

// Hash returns the current Zobrist hash key.
func (b *Board) Hash() uint64 { return b.zobristKey }

// HistoryLen returns the number of moves made since the board was set up.
func (b *Board) HistoryLen() int { return len(b.history) }

// LastMove returns the most recently made move, if any.
func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return NullMove, false
	}
	return b.history[len(b.history)-1].move, true
}

// UndoMove reverts the most recent move. It returns ErrNoHistory when no
// moves have been made since the board was set up.
func (b *Board) UndoMove() error {
	if len(b.history) == 0 {
		return ErrNoHistory
	}
	st := b.history[len(b.history)-1]
	b.UnmakeMove(st.move, st)
	return nil
}

// KingSquare returns the square of the given side's king.
func (b *Board) KingSquare(c Color) Square {
	kbb := b.kings[int(c)]
	if kbb == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(kbb))
}

// Snapshot is an exported copy of everything that defines a position.
// Two boards represent the same state if and only if their snapshots are equal.
type Snapshot struct {
	Pieces          [64]Piece
	SideToMove      Color
	CastlingRights  CastlingRights
	KingStartFile   int8
	RookStartFiles  [2]int8
	EnPassantSquare Square
	HalfmoveClock   int
	FullmoveNumber  int
	ZobristKey      uint64
}

// Snapshot captures the position for equality comparisons in tests and drivers.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Pieces:          b.pieces,
		SideToMove:      b.sideToMove,
		CastlingRights:  b.castlingRights,
		KingStartFile:   b.kingStartFile,
		RookStartFiles:  b.rookStartFile,
		EnPassantSquare: b.enPassantSquare,
		HalfmoveClock:   b.halfmoveClock,
		FullmoveNumber:  b.fullmoveNumber,
		ZobristKey:      b.zobristKey,
	}
}

// ==========================
// Bitboard helpers
// ==========================

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}

// ==========================
// Board occupancy helpers
// ==========================

// AllOccupancy returns a bitboard of all occupied squares.
func (b *Board) AllOccupancy() uint64 { return b.occupancy[0] | b.occupancy[1] }

// ColorOccupancy returns the occupancy bitboard for the given color.
func (b *Board) ColorOccupancy(c Color) uint64 { return b.occupancy[int(c)] }

// PieceAt returns the piece on a square.
func (b *Board) PieceAt(sq Square) Piece { return b.pieces[int(sq)] }

// colorOf returns the color of a piece. NoPiece is treated as White.
func colorOf(p Piece) Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// typeOf returns the piece type in [1..6] with color stripped.
func typeOf(p Piece) Piece { return p & 7 }

// bitboardFor returns a pointer to the bitboard holding the given piece.
func (b *Board) bitboardFor(p Piece) *uint64 {
	ci := int(colorOf(p))
	switch typeOf(p) {
	case 1:
		return &b.pawns[ci]
	case 2:
		return &b.knights[ci]
	case 3:
		return &b.bishops[ci]
	case 4:
		return &b.rooks[ci]
	case 5:
		return &b.queens[ci]
	case 6:
		return &b.kings[ci]
	}
	return nil
}

// addPiece places a piece on an empty square and updates bitboards, occupancy and zobrist.
func (b *Board) addPiece(sq Square, p Piece) {
	if p == NoPiece {
		return
	}
	ci := int(colorOf(p))
	b.pieces[int(sq)] = p
	b.occupancy[ci] |= bb(sq)
	*b.bitboardFor(p) |= bb(sq)
	b.zobristKey ^= zobristPiece[p][int(sq)]
}

// removePiece removes a piece from a square and updates bitboards, occupancy and zobrist.
func (b *Board) removePiece(sq Square) Piece {
	p := b.pieces[int(sq)]
	if p == NoPiece {
		return NoPiece
	}
	ci := int(colorOf(p))
	mask := ^bb(sq)
	b.pieces[int(sq)] = NoPiece
	b.occupancy[ci] &= mask
	*b.bitboardFor(p) &= mask
	b.zobristKey ^= zobristPiece[p][int(sq)]
	return p
}

// SetPiece sets a piece on a square, replacing any existing piece, and keeps state in sync.
func (b *Board) SetPiece(sq Square, p Piece) {
	b.removePiece(sq)
	b.addPiece(sq, p)
}

// ClearSquare removes any piece from the given square.
func (b *Board) ClearSquare(sq Square) { _ = b.removePiece(sq) }

// Validate checks internal consistency between pieces[], per-piece bitboards,
// occupancy and the incrementally maintained Zobrist key.
func (b *Board) Validate() bool {
	var occ [2]uint64
	var pawns, knights, bishops, rooks, queens, kings [2]uint64
	for sq := 0; sq < 64; sq++ {
		p := b.pieces[sq]
		if p == NoPiece {
			continue
		}
		ci := int(colorOf(p))
		bit := uint64(1) << uint(sq)
		occ[ci] |= bit
		switch typeOf(p) {
		case 1:
			pawns[ci] |= bit
		case 2:
			knights[ci] |= bit
		case 3:
			bishops[ci] |= bit
		case 4:
			rooks[ci] |= bit
		case 5:
			queens[ci] |= bit
		case 6:
			kings[ci] |= bit
		}
	}
	if occ != b.occupancy {
		return false
	}
	if pawns != b.pawns || knights != b.knights || bishops != b.bishops || rooks != b.rooks || queens != b.queens || kings != b.kings {
		return false
	}
	return b.zobristKey == b.ComputeZobrist()
}
