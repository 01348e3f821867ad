package engine

import (
	"time"

	gm "pelican-engine/pelicanmg"
)

// TimeHandler decides how long the current search may run. A zero deadline
// means the search is bounded by depth only.
type TimeHandler struct {
	deadline   time.Time
	hasBound   bool
	infinite   bool
	stopSearch bool
}

const (
	overheadMs    = 30   // reserve for IO jitter
	minMoveMs     = 5    // never less than this
	maxFrac       = 0.7  // never spend more than 70% of remaining time
	panicThreshMs = 1000 // below this, live off the increment
	panicFrac     = 0.90
)

// Start computes the move deadline from the limits for the side to move.
// With MoveTime set the budget is fixed; otherwise the remaining clock is
// divided over an estimate of the moves left in the game.
func (th *TimeHandler) Start(b *gm.Board, limits Limits) {
	th.stopSearch = false
	th.infinite = false
	th.hasBound = false

	if limits.Infinite {
		th.infinite = true
		return
	}
	if limits.MoveTime > 0 {
		th.setBudget(limits.MoveTime - overheadMs)
		return
	}

	rem, inc := limits.WhiteTime, limits.WhiteIncrement
	if b.SideToMove() == gm.Black {
		rem, inc = limits.BlackTime, limits.BlackIncrement
	}
	if rem <= 0 {
		// Depth-only search: no clock given.
		return
	}

	movesLeft := estimateMovesRemaining(int(b.FullmoveNumber()))

	var moveTime int
	if inc > 0 {
		if rem < panicThreshMs {
			moveTime = int(float64(inc) * panicFrac)
		} else {
			moveTime = rem/movesLeft + inc*3/4
		}
	} else {
		moveTime = rem / movesLeft
	}

	if moveTime > int(float64(rem)*maxFrac) {
		moveTime = int(float64(rem) * maxFrac)
	}
	if moveTime > rem-overheadMs {
		moveTime = rem - overheadMs
	}
	th.setBudget(moveTime)
}

func (th *TimeHandler) setBudget(ms int) {
	if ms < minMoveMs {
		ms = minMoveMs
	}
	th.deadline = time.Now().Add(time.Duration(ms) * time.Millisecond)
	th.hasBound = true
}

// Expired reports whether the allotted time for this move has run out.
func (th *TimeHandler) Expired() bool {
	if th.stopSearch {
		return true
	}
	if !th.hasBound || th.infinite {
		return false
	}
	return !time.Now().Before(th.deadline)
}

// Stop forces Expired to report true until the next Start.
func (th *TimeHandler) Stop() {
	th.stopSearch = true
}

// estimateMovesRemaining guesses how many moves are left from the move
// counter, tapering from the opening toward a floor in long games.
func estimateMovesRemaining(fullmove int) int {
	return Clamp(46-fullmove, 14, 40)
}
