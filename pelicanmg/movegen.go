package pelicanmg

import "math/bits"

// GeneratePseudoMovesInto generates all pseudo-legal moves for the side to
// move into dst (reused from index 0). Castling moves are fully validated
// here, including the attacked-square rules; every other move may still leave
// the own king in check and is rejected by MakeMove.
func (b *Board) GeneratePseudoMovesInto(dst []Move) []Move {
	return b.generatePseudoInto(dst, false)
}

// GenerateCapturesInto generates pseudo-legal captures and promotions only,
// for quiescence search.
func (b *Board) GenerateCapturesInto(dst []Move) []Move {
	return b.generatePseudoInto(dst, true)
}

// GeneratePseudoMoves returns all pseudo-legal moves (allocates a new slice).
func (b *Board) GeneratePseudoMoves() []Move {
	return b.GeneratePseudoMovesInto(make([]Move, 0, 128))
}

// GenerateMovesInto generates all fully legal moves into dst. Each pseudo
// move is applied and reverted; the ones MakeMove accepts are kept.
func (b *Board) GenerateMovesInto(dst []Move) []Move {
	moves := b.generatePseudoInto(dst, false)
	legal := moves[:0]
	for _, m := range moves {
		if ok, st := b.MakeMove(m); ok {
			b.UnmakeMove(m, st)
			legal = append(legal, m)
		}
	}
	return legal
}

// GenerateMoves generates all legal moves for the current side to move.
func (b *Board) GenerateMoves() []Move { return b.GenerateMovesInto(make([]Move, 0, 128)) }

// GenerateLegalCapturesInto filters GenerateCapturesInto down to legal moves.
func (b *Board) GenerateLegalCapturesInto(dst []Move) []Move {
	moves := b.generatePseudoInto(dst, true)
	legal := moves[:0]
	for _, m := range moves {
		if ok, st := b.MakeMove(m); ok {
			b.UnmakeMove(m, st)
			legal = append(legal, m)
		}
	}
	return legal
}

func (b *Board) generatePseudoInto(dst []Move, capturesOnly bool) []Move {
	moves := dst[:0]
	us := b.sideToMove
	usIdx := int(us)
	themIdx := 1 - usIdx

	ownOcc := b.occupancy[usIdx]
	oppOcc := b.occupancy[themIdx]
	allOcc := ownOcc | oppOcc

	// Pawns, color-generic via the push direction.
	up := 8
	startRank, promoRank := 1, 7
	if us == Black {
		up = -8
		startRank, promoRank = 6, 0
	}
	enemyPawn := PieceFromType(us.Opposite(), PieceTypePawn)

	pawns := b.pawns[usIdx]
	for pawns != 0 {
		from := popLSB(&pawns)
		fromSq := Square(from)
		movedPiece := b.pieces[from]

		one := from + up
		oneEmpty := (allOcc>>uint(one))&1 == 0
		if oneEmpty && one/8 == promoRank {
			moves = appendPromotions(moves, fromSq, Square(one), movedPiece, NoPiece, us)
		} else if oneEmpty && !capturesOnly {
			moves = append(moves, NewMove(fromSq, Square(one), movedPiece, NoPiece, NoPiece, FlagNone))
			if from/8 == startRank {
				two := one + up
				if (allOcc>>uint(two))&1 == 0 {
					moves = append(moves, NewMove(fromSq, Square(two), movedPiece, NoPiece, NoPiece, FlagDoublePush))
				}
			}
		}

		caps := pawnAttackMask[us][from]
		for targets := caps & oppOcc; targets != 0; {
			to := popLSB(&targets)
			capPiece := b.pieces[to]
			if to/8 == promoRank {
				moves = appendPromotions(moves, fromSq, Square(to), movedPiece, capPiece, us)
			} else {
				moves = append(moves, NewMove(fromSq, Square(to), movedPiece, capPiece, NoPiece, FlagNone))
			}
		}
		if b.enPassantSquare != NoSquare && caps&bb(b.enPassantSquare) != 0 {
			moves = append(moves, NewMove(fromSq, b.enPassantSquare, movedPiece, enemyPawn, NoPiece, FlagEnPassant))
		}
	}

	// Knights, sliders and the king share the same target-scan shape.
	addTargets := func(from int, targets uint64) {
		fromSq := Square(from)
		movedPiece := b.pieces[from]
		targets &^= ownOcc
		if capturesOnly {
			targets &= oppOcc
		}
		for targets != 0 {
			to := popLSB(&targets)
			moves = append(moves, NewMove(fromSq, Square(to), movedPiece, b.pieces[to], NoPiece, FlagNone))
		}
	}

	for pieces := b.knights[usIdx]; pieces != 0; {
		from := popLSB(&pieces)
		addTargets(from, knightAttackMask[from])
	}
	for pieces := b.bishops[usIdx]; pieces != 0; {
		from := popLSB(&pieces)
		addTargets(from, bishopAttacks(from, allOcc))
	}
	for pieces := b.rooks[usIdx]; pieces != 0; {
		from := popLSB(&pieces)
		addTargets(from, rookAttacks(from, allOcc))
	}
	for pieces := b.queens[usIdx]; pieces != 0; {
		from := popLSB(&pieces)
		addTargets(from, rookAttacks(from, allOcc)|bishopAttacks(from, allOcc))
	}
	if kingBB := b.kings[usIdx]; kingBB != 0 {
		from := bits.TrailingZeros64(kingBB)
		addTargets(from, kingAttackMask[from])
	}

	if !capturesOnly {
		moves = b.appendCastles(moves)
	}
	return moves
}

func appendPromotions(moves []Move, from, to Square, moved, captured Piece, us Color) []Move {
	moves = append(moves, NewMove(from, to, moved, captured, PieceFromType(us, PieceTypeQueen), FlagNone))
	moves = append(moves, NewMove(from, to, moved, captured, PieceFromType(us, PieceTypeRook), FlagNone))
	moves = append(moves, NewMove(from, to, moved, captured, PieceFromType(us, PieceTypeBishop), FlagNone))
	moves = append(moves, NewMove(from, to, moved, captured, PieceFromType(us, PieceTypeKnight), FlagNone))
	return moves
}

// appendCastles emits fully legal castling moves. One rule covers both the
// standard game and Chess960: the king lands on the g-file (kingside) or
// c-file (queenside) and the rook on the adjacent f- or d-file. Every square
// either piece crosses must be free apart from the two movers, and the king
// may not start on, cross or land on an attacked square.
func (b *Board) appendCastles(moves []Move) []Move {
	us := b.sideToMove
	them := us.Opposite()
	kingSq := b.KingSquare(us)
	if kingSq == NoSquare || kingSq != SquareAt(backRank(us), int(b.kingStartFile)) {
		return moves
	}
	king := b.pieces[kingSq]
	rook := PieceFromType(us, PieceTypeRook)

	for wing := castleKingside; wing <= castleQueenside; wing++ {
		right := kingsideRight(us)
		flag := uint8(FlagCastleKing)
		if wing == castleQueenside {
			right = queensideRight(us)
			flag = FlagCastleQueen
		}
		if b.castlingRights&right == 0 {
			continue
		}
		rookFrom := b.castleRookFrom(us, wing)
		if b.pieces[rookFrom] != rook {
			continue
		}
		kingTo, rookTo := castleTargets(us, wing)
		if kingSq == kingTo && rookFrom == rookTo {
			// Both pieces already stand on their castling squares.
			continue
		}

		// Path emptiness, ignoring the two castling pieces themselves.
		occ := b.AllOccupancy() &^ (bb(kingSq) | bb(rookFrom))
		path := between[kingSq][kingTo] | bb(kingTo) | between[rookFrom][rookTo] | bb(rookTo)
		if path&occ != 0 {
			continue
		}

		// The king's origin, every transit square and its destination must be
		// safe. MakeMove re-validates the destination with the rook moved.
		attacked := false
		kPath := between[kingSq][kingTo] | bb(kingTo) | bb(kingSq)
		for t := kPath; t != 0; {
			sq := popLSB(&t)
			if b.IsSquareAttacked(Square(sq), them) {
				attacked = true
				break
			}
		}
		if attacked {
			continue
		}

		moves = append(moves, NewMove(kingSq, kingTo, king, NoPiece, NoPiece, flag))
	}
	return moves
}

// ==========================
// Perft
// ==========================

// Perft counts leaf nodes of the legal move tree to the given depth.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := &perftCtx{}
	return perftRec(b, depth, pc)
}

// perftCtx reuses one move buffer per depth across the whole traversal.
type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	for len(pc.bufs) <= depth {
		pc.bufs = append(pc.bufs, make([]Move, 0, 128))
	}
	return pc.bufs[depth]
}

func perftRec(b *Board, depth int, pc *perftCtx) uint64 {
	moves := b.GeneratePseudoMovesInto(pc.bufFor(depth))
	var nodes uint64
	for _, m := range moves {
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		if depth == 1 {
			nodes++
		} else {
			nodes += perftRec(b, depth-1, pc)
		}
		b.UnmakeMove(m, st)
	}
	return nodes
}

// PerftDivide returns the perft count reached through each root move.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	pc := &perftCtx{}
	moves := b.GeneratePseudoMovesInto(pc.bufFor(depth))
	for _, m := range moves {
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		if depth == 1 {
			result[m] = 1
		} else {
			result[m] = perftRec(b, depth-1, pc)
		}
		b.UnmakeMove(m, st)
	}
	return result
}
