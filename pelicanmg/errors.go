package pelicanmg

import "errors"

// Sentinel errors returned by position and move operations. Callers match
// them with errors.Is; wrapped messages carry the offending input.
var (
	// ErrInvalidPositionID reports a Chess960 arrangement number outside 0..959.
	ErrInvalidPositionID = errors.New("position id out of range")

	// ErrInvalidPositionNotation reports a FEN string that cannot be parsed
	// or that describes an unusable position.
	ErrInvalidPositionNotation = errors.New("invalid position notation")

	// ErrInvalidMoveFormat reports coordinate move text that is not
	// syntactically a move (wrong length, bad square, bad promotion letter).
	ErrInvalidMoveFormat = errors.New("invalid move format")

	// ErrIllegalMove reports a well-formed move that is not legal in the
	// current position.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoHistory reports an undo with no moves to revert.
	ErrNoHistory = errors.New("no move history")
)
