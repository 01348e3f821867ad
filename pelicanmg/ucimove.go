package pelicanmg

import "fmt"

// parseSquare converts coordinate text like "e4" to a square.
func parseSquare(s string) (Square, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, false
	}
	return SquareAt(int(s[1]-'1'), int(s[0]-'a')), true
}

// promoFromLetter maps a lowercase promotion letter to a piece type.
func promoFromLetter(ch byte) PieceType {
	switch ch {
	case 'n':
		return PieceTypeKnight
	case 'b':
		return PieceTypeBishop
	case 'r':
		return PieceTypeRook
	case 'q':
		return PieceTypeQueen
	}
	return PieceTypeNone
}

// ParseUCIMove splits coordinate move text ("e2e4", "e7e8q") into its parts.
// It validates syntax only, not legality.
func ParseUCIMove(text string) (from, to Square, promo PieceType, err error) {
	if len(text) != 4 && len(text) != 5 {
		return NoSquare, NoSquare, PieceTypeNone, fmt.Errorf("%w: %q", ErrInvalidMoveFormat, text)
	}
	from, ok := parseSquare(text[:2])
	if !ok {
		return NoSquare, NoSquare, PieceTypeNone, fmt.Errorf("%w: %q", ErrInvalidMoveFormat, text)
	}
	to, ok = parseSquare(text[2:4])
	if !ok {
		return NoSquare, NoSquare, PieceTypeNone, fmt.Errorf("%w: %q", ErrInvalidMoveFormat, text)
	}
	if len(text) == 5 {
		promo = promoFromLetter(text[4])
		if promo == PieceTypeNone {
			return NoSquare, NoSquare, PieceTypeNone, fmt.Errorf("%w: %q", ErrInvalidMoveFormat, text)
		}
	}
	return from, to, promo, nil
}

// ParseMove resolves coordinate move text against the legal moves of the
// current position. Castling is written as the king's own movement (e1g1);
// the king-takes-rook form used by some Chess960 interfaces is accepted too.
// Returns ErrInvalidMoveFormat for unparseable text and ErrIllegalMove when
// the move is well-formed but not legal here.
func (b *Board) ParseMove(text string) (Move, error) {
	from, to, promo, err := ParseUCIMove(text)
	if err != nil {
		return NullMove, err
	}
	for _, m := range b.GenerateMoves() {
		if m.From() != from {
			continue
		}
		if m.To() == to && m.PromotionPieceType() == promo {
			return m, nil
		}
		if m.IsCastle() && promo == PieceTypeNone {
			wing := castleKingside
			if m.Flags() == FlagCastleQueen {
				wing = castleQueenside
			}
			if to == b.castleRookFrom(b.sideToMove, wing) {
				return m, nil
			}
		}
	}
	return NullMove, fmt.Errorf("%w: %s", ErrIllegalMove, text)
}

// ApplyUCIMove parses and plays coordinate move text in one step.
func (b *Board) ApplyUCIMove(text string) (Move, error) {
	m, err := b.ParseMove(text)
	if err != nil {
		return NullMove, err
	}
	if ok, _ := b.MakeMove(m); !ok {
		return NullMove, fmt.Errorf("%w: %s", ErrIllegalMove, text)
	}
	return m, nil
}
