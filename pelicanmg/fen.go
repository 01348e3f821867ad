package pelicanmg

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// pieceFromChar converts a FEN character to the corresponding Piece constant.
func pieceFromChar(ch rune) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// charFromPiece converts a Piece constant to its FEN character representation.
func charFromPiece(p Piece) byte {
	const letters = " PNBRQK  pnbrqk"
	if int(p) < len(letters) {
		if ch := letters[p]; ch != ' ' {
			return ch
		}
	}
	return '?'
}

func fenErr(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidPositionNotation}, args...)...)
}

// ParseFEN parses a FEN string and returns a new Board set up to that
// position. Castling rights accept both the classical KQkq letters and
// X-FEN/Shredder file letters (A-H, a-h); rook starting files are derived
// from whichever form is given, so Chess960 positions round-trip.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fenErr("need at least 4 fields, got %d", len(fields))
	}

	board := &Board{
		enPassantSquare: NoSquare,
		kingStartFile:   4,
		rookStartFile:   [2]int8{7, 0},
		fullmoveNumber:  1,
	}

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fenErr("placement must have 8 ranks")
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece := pieceFromChar(ch)
			if piece == NoPiece {
				return nil, fenErr("unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return nil, fenErr("too many squares in rank %d", rank+1)
			}
			board.addPiece(SquareAt(rank, file), piece)
			file++
		}
		if file != 8 {
			return nil, fenErr("rank %d does not describe 8 files", rank+1)
		}
	}
	for ci := 0; ci < 2; ci++ {
		if bits.OnesCount64(board.kings[ci]) != 1 {
			return nil, fenErr("each side must have exactly one king")
		}
	}
	if (board.pawns[0]|board.pawns[1])&(rankMask(0)|rankMask(7)) != 0 {
		return nil, fenErr("pawns may not stand on the first or last rank")
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		board.sideToMove = White
	case "b":
		board.sideToMove = Black
	default:
		return nil, fenErr("side to move must be 'w' or 'b'")
	}

	// 3. Castling rights
	if err := board.parseCastlingField(fields[2]); err != nil {
		return nil, err
	}

	// 4. En passant target square
	if fields[3] != "-" {
		if len(fields[3]) != 2 {
			return nil, fenErr("bad en passant square %q", fields[3])
		}
		fileChar, rankChar := fields[3][0], fields[3][1]
		if fileChar < 'a' || fileChar > 'h' || (rankChar != '3' && rankChar != '6') {
			return nil, fenErr("bad en passant square %q", fields[3])
		}
		board.enPassantSquare = SquareAt(int(rankChar-'1'), int(fileChar-'a'))
	}

	// 5. Halfmove clock
	if len(fields) > 4 {
		halfmove, err := strconv.Atoi(fields[4])
		if err != nil || halfmove < 0 {
			return nil, fenErr("bad halfmove clock %q", fields[4])
		}
		board.halfmoveClock = halfmove
	}

	// 6. Fullmove number
	if len(fields) > 5 {
		fullmove, err := strconv.Atoi(fields[5])
		if err != nil || fullmove < 1 {
			return nil, fenErr("bad fullmove number %q", fields[5])
		}
		board.fullmoveNumber = fullmove
	}

	board.zobristKey = board.ComputeZobrist()
	return board, nil
}

func rankMask(rank int) uint64 { return uint64(0xFF) << uint(rank*8) }

// parseCastlingField decodes the castling availability field and derives the
// king and rook starting files from the piece placement.
func (b *Board) parseCastlingField(field string) error {
	if field == "-" {
		return nil
	}

	kingFile := [2]int8{-1, -1}
	for ci := 0; ci < 2; ci++ {
		ks := Square(bits.TrailingZeros64(b.kings[ci]))
		if RankOf(ks) == backRank(Color(ci)) {
			kingFile[ci] = int8(FileOf(ks))
		}
	}

	var wingSet [2]bool
	setWing := func(c Color, wing int, file int8) error {
		if wingSet[wing] && b.rookStartFile[wing] != file {
			return fenErr("conflicting rook files in castling field %q", field)
		}
		b.rookStartFile[wing] = file
		wingSet[wing] = true
		if wing == castleKingside {
			b.castlingRights |= kingsideRight(c)
		} else {
			b.castlingRights |= queensideRight(c)
		}
		return nil
	}

	for _, ch := range field {
		var c Color
		var file int8 = -1
		wing := -1
		switch {
		case ch == 'K':
			c, wing = White, castleKingside
		case ch == 'Q':
			c, wing = White, castleQueenside
		case ch == 'k':
			c, wing = Black, castleKingside
		case ch == 'q':
			c, wing = Black, castleQueenside
		case ch >= 'A' && ch <= 'H':
			c, file = White, int8(ch-'A')
		case ch >= 'a' && ch <= 'h':
			c, file = Black, int8(ch-'a')
		default:
			return fenErr("invalid castling character %q", ch)
		}

		kf := kingFile[c]
		if kf < 0 {
			return fenErr("castling rights given but the %s king is not on its back rank", colorName(c))
		}
		if b.kingStartFile != 4 && b.kingStartFile != kf {
			return fenErr("kings on different files with castling rights")
		}
		b.kingStartFile = kf

		if file < 0 {
			// Classical letter: resolve to the outermost rook on that wing.
			file = b.outermostRookFile(c, wing == castleKingside)
			if file < 0 {
				return fenErr("no rook available for castling right %q", ch)
			}
		} else if file > kf {
			wing = castleKingside
		} else if file < kf {
			wing = castleQueenside
		} else {
			return fenErr("castling rook file equals king file in %q", field)
		}

		rookSq := SquareAt(backRank(c), int(file))
		if b.pieces[rookSq] != PieceFromType(c, PieceTypeRook) {
			return fenErr("no rook on %c%d for castling right %q", 'a'+file, backRank(c)+1, ch)
		}
		if err := setWing(c, wing, file); err != nil {
			return err
		}
	}

	if b.kingStartFile != 4 || b.rookStartFile[castleKingside] != 7 || b.rookStartFile[castleQueenside] != 0 {
		b.chess960 = true
	}
	return nil
}

// outermostRookFile finds the rook implied by a classical K/Q/k/q letter:
// the outermost rook on the given side of the king's file.
func (b *Board) outermostRookFile(c Color, kingsideWing bool) int8 {
	rank := backRank(c)
	ks := Square(bits.TrailingZeros64(b.kings[int(c)]))
	kf := FileOf(ks)
	rook := PieceFromType(c, PieceTypeRook)
	if kingsideWing {
		for f := 7; f > kf; f-- {
			if b.pieces[SquareAt(rank, f)] == rook {
				return int8(f)
			}
		}
	} else {
		for f := 0; f < kf; f++ {
			if b.pieces[SquareAt(rank, f)] == rook {
				return int8(f)
			}
		}
	}
	return -1
}

func colorName(c Color) string {
	if c == White {
		return "white"
	}
	return "black"
}

// ToFEN produces the FEN string representation of the board's current state.
// Boards set up from a non-classical Chess960 arrangement emit rook file
// letters in the castling field; classical boards emit KQkq.
func (b *Board) ToFEN() string {
	var sb strings.Builder

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < 8; file++ {
			p := b.pieces[SquareAt(rank, file)]
			if p == NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte('0' + byte(emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(charFromPiece(p))
		}
		if emptyCount > 0 {
			sb.WriteByte('0' + byte(emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')

	// 2. Side to move
	if b.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	// 3. Castling rights
	sb.WriteString(b.castlingField())
	sb.WriteByte(' ')

	// 4. En passant square
	if b.enPassantSquare != NoSquare {
		sb.WriteByte('a' + byte(FileOf(b.enPassantSquare)))
		sb.WriteByte('1' + byte(RankOf(b.enPassantSquare)))
	} else {
		sb.WriteByte('-')
	}
	sb.WriteByte(' ')

	// 5 and 6. Clocks
	sb.WriteString(strconv.Itoa(b.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmoveNumber))
	return sb.String()
}

func (b *Board) castlingField() string {
	if b.castlingRights == 0 {
		return "-"
	}
	letter := func(c Color, wing int) byte {
		if !b.chess960 {
			if wing == castleKingside {
				if c == White {
					return 'K'
				}
				return 'k'
			}
			if c == White {
				return 'Q'
			}
			return 'q'
		}
		ch := byte('a') + byte(b.rookStartFile[wing])
		if c == White {
			ch -= 'a' - 'A'
		}
		return ch
	}

	var sb strings.Builder
	if b.castlingRights&CastlingWhiteK != 0 {
		sb.WriteByte(letter(White, castleKingside))
	}
	if b.castlingRights&CastlingWhiteQ != 0 {
		sb.WriteByte(letter(White, castleQueenside))
	}
	if b.castlingRights&CastlingBlackK != 0 {
		sb.WriteByte(letter(Black, castleKingside))
	}
	if b.castlingRights&CastlingBlackQ != 0 {
		sb.WriteByte(letter(Black, castleQueenside))
	}
	return sb.String()
}
