package pelicanmg

// MoveState holds the minimal state needed to undo a move.
type MoveState struct {
	move          Move
	captured      Piece
	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
	rookFrom      Square // for castling undo
	rookTo        Square // for castling undo
}

// Move returns the move this state undoes.
func (st MoveState) Move() Move { return st.move }

// castleTargets returns the king and rook destination squares for castling on
// the given wing. These are fixed files (g/f and c/d) regardless of where the
// king and rook started.
func castleTargets(c Color, wing int) (kingTo, rookTo Square) {
	rank := backRank(c)
	if wing == castleKingside {
		return SquareAt(rank, 6), SquareAt(rank, 5)
	}
	return SquareAt(rank, 2), SquareAt(rank, 3)
}

// castleRookFrom returns the square the castling rook stands on.
func (b *Board) castleRookFrom(c Color, wing int) Square {
	return SquareAt(backRank(c), int(b.rookStartFile[wing]))
}

// MakeMove applies a move to the board. It returns ok=false if the move would
// leave the mover's king in check, restoring the original position. On
// success the move is recorded in the board history.
func (b *Board) MakeMove(m Move) (ok bool, st MoveState) {
	st.move = m
	st.prevCastling = b.castlingRights
	st.prevEnPassant = b.enPassantSquare
	st.prevHalfmove = b.halfmoveClock
	st.prevFullmove = b.fullmoveNumber
	st.prevZobrist = b.zobristKey
	st.rookFrom, st.rookTo = NoSquare, NoSquare
	st.captured = NoPiece

	from := m.From()
	to := m.To()
	moved := m.MovedPiece()
	promo := m.PromotionPiece()
	flag := m.Flags()

	us := b.sideToMove
	them := us.Opposite()

	// Clear the previous en passant target.
	if b.enPassantSquare != NoSquare {
		b.zobristKey ^= zobristEnPassant[FileOf(b.enPassantSquare)]
		b.enPassantSquare = NoSquare
	}

	switch flag {
	case FlagEnPassant:
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		st.captured = b.removePiece(capSq)
		b.removePiece(from)
		b.addPiece(to, moved)

	case FlagCastleKing, FlagCastleQueen:
		wing := castleKingside
		if flag == FlagCastleQueen {
			wing = castleQueenside
		}
		kingTo, rookTo := castleTargets(us, wing)
		rookFrom := b.castleRookFrom(us, wing)
		// King and rook origins may coincide with each other's destinations
		// in Chess960, so lift both pieces before placing either.
		b.removePiece(from)
		rook := b.removePiece(rookFrom)
		b.addPiece(kingTo, moved)
		b.addPiece(rookTo, rook)
		st.rookFrom, st.rookTo = rookFrom, rookTo

	default:
		if cap := m.CapturedPiece(); cap != NoPiece {
			st.captured = b.removePiece(to)
		}
		b.removePiece(from)
		if promo != NoPiece {
			b.addPiece(to, promo)
		} else {
			b.addPiece(to, moved)
		}
		if flag == FlagDoublePush {
			ep := from + 8
			if us == Black {
				ep = from - 8
			}
			b.enPassantSquare = ep
			b.zobristKey ^= zobristEnPassant[FileOf(ep)]
		}
	}

	b.updateCastlingRights(moved, from, to, st.captured)

	b.sideToMove = them
	b.zobristKey ^= zobristSide

	// Reject a move that leaves the mover's own king attacked. Castling
	// transit squares are verified during generation; only the final king
	// square needs checking here.
	ks := b.KingSquare(us)
	if ks == NoSquare || b.IsSquareAttacked(ks, them) {
		b.restore(m, st)
		return false, st
	}

	if typeOf(moved) == 1 || st.captured != NoPiece {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if us == Black {
		b.fullmoveNumber++
	}

	b.history = append(b.history, st)
	return true, st
}

// UnmakeMove undoes a previously made (successful) move, restoring board
// state bit for bit and truncating the history.
func (b *Board) UnmakeMove(m Move, st MoveState) {
	b.restore(m, st)
	if n := len(b.history); n > 0 {
		b.history = b.history[:n-1]
	}
}

// restore reverts the piece movement and state fields of a move. The Zobrist
// key is restored wholesale from the saved value, which also absorbs the
// incremental updates done by the piece helpers.
func (b *Board) restore(m Move, st MoveState) {
	from := m.From()
	to := m.To()
	moved := m.MovedPiece()
	flag := m.Flags()
	us := colorOf(moved)

	switch flag {
	case FlagCastleKing, FlagCastleQueen:
		wing := castleKingside
		if flag == FlagCastleQueen {
			wing = castleQueenside
		}
		kingTo, _ := castleTargets(us, wing)
		rook := PieceFromType(us, PieceTypeRook)
		b.removePiece(kingTo)
		b.removePiece(st.rookTo)
		b.addPiece(from, moved)
		b.addPiece(st.rookFrom, rook)

	case FlagEnPassant:
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		b.removePiece(to)
		b.addPiece(from, moved)
		b.addPiece(capSq, st.captured)

	default:
		b.removePiece(to)
		b.addPiece(from, moved)
		if st.captured != NoPiece {
			b.addPiece(to, st.captured)
		}
	}

	b.sideToMove = us
	b.castlingRights = st.prevCastling
	b.enPassantSquare = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.fullmoveNumber = st.prevFullmove
	b.zobristKey = st.prevZobrist
}

// updateCastlingRights revokes rights after king or rook activity. Rook moves
// and rook captures are matched against the configured starting files, which
// keeps the rule correct for every Chess960 arrangement.
func (b *Board) updateCastlingRights(moved Piece, from, to Square, captured Piece) {
	if b.castlingRights == 0 {
		return
	}
	newCR := b.castlingRights

	switch typeOf(moved) {
	case 6:
		newCR &^= rights(colorOf(moved))
	case 4:
		c := colorOf(moved)
		if RankOf(from) == backRank(c) {
			switch int8(FileOf(from)) {
			case b.rookStartFile[castleKingside]:
				newCR &^= kingsideRight(c)
			case b.rookStartFile[castleQueenside]:
				newCR &^= queensideRight(c)
			}
		}
	}

	if typeOf(captured) == 4 {
		c := colorOf(captured)
		if RankOf(to) == backRank(c) {
			switch int8(FileOf(to)) {
			case b.rookStartFile[castleKingside]:
				newCR &^= kingsideRight(c)
			case b.rookStartFile[castleQueenside]:
				newCR &^= queensideRight(c)
			}
		}
	}

	if newCR != b.castlingRights {
		b.zobristKey ^= zobristCastle[int(b.castlingRights)]
		b.zobristKey ^= zobristCastle[int(newCR)]
		b.castlingRights = newCR
	}
}
