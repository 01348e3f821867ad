package pelicanmg

// Move encodes a chess move in a 32-bit value.
type Move uint32

// NullMove is the zero Move. No real move has from == to == a1 with no piece.
const NullMove Move = 0

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	movePieceShift   = 12 // 4 bits
	moveCaptureShift = 16 // 4 bits
	movePromoteShift = 20 // 4 bits
	moveFlagShift    = 24 // 3 bits
)

// Move flags. Castling moves record which wing so that make/unmake never has
// to rediscover the rook; the destination square alone is ambiguous in
// Chess960, where the king may travel zero squares.
const (
	FlagNone        = 0
	FlagDoublePush  = 1
	FlagEnPassant   = 2
	FlagCastleKing  = 3
	FlagCastleQueen = 4
	// (Promotion is indicated by a non-zero promotion piece)
)

// NewMove constructs a Move value from components.
func NewMove(from, to Square, piece, captured Piece, promotion Piece, flag uint8) Move {
	m := uint32(from&0x3F) |
		(uint32(to&0x3F) << moveToShift) |
		(uint32(piece&0xF) << movePieceShift) |
		(uint32(captured&0xF) << moveCaptureShift) |
		(uint32(promotion&0xF) << movePromoteShift) |
		(uint32(flag&0x7) << moveFlagShift)
	return Move(m)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square((uint32(m) >> moveFromShift) & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((uint32(m) >> moveToShift) & 0x3F) }

// MovedPiece returns the piece code that is moved.
func (m Move) MovedPiece() Piece { return Piece((uint32(m) >> movePieceShift) & 0xF) }

// CapturedPiece returns the piece code that was captured (or NoPiece if none).
func (m Move) CapturedPiece() Piece { return Piece((uint32(m) >> moveCaptureShift) & 0xF) }

// PromotionPiece returns the promotion piece code (or NoPiece if not a promotion).
func (m Move) PromotionPiece() Piece { return Piece((uint32(m) >> movePromoteShift) & 0xF) }

// PromotionPieceType returns the colorless type of the promoted piece (or PieceTypeNone).
func (m Move) PromotionPieceType() PieceType { return m.PromotionPiece().Type() }

// Flags returns the special move flags.
func (m Move) Flags() uint8 { return uint8((uint32(m) >> moveFlagShift) & 0x7) }

// IsCastle reports whether the move castles on either wing.
func (m Move) IsCastle() bool {
	f := m.Flags()
	return f == FlagCastleKing || f == FlagCastleQueen
}

// IsCapture reports whether the move removes an enemy piece (including en passant).
func (m Move) IsCapture() bool {
	return m.CapturedPiece() != NoPiece || m.Flags() == FlagEnPassant
}

// String produces the coordinate representation of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	from := m.From()
	to := m.To()
	buf := []byte{
		'a' + byte(FileOf(from)), '1' + byte(RankOf(from)),
		'a' + byte(FileOf(to)), '1' + byte(RankOf(to)),
	}
	if promo := m.PromotionPieceType(); promo != PieceTypeNone {
		buf = append(buf, promoLetters[promo])
	}
	return string(buf)
}

// promoLetters maps a promotion piece type to its lowercase UCI letter.
var promoLetters = [7]byte{0, 0, 'n', 'b', 'r', 'q', 0}
