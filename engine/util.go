package engine

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Clamp bounds v to [low, high].
func Clamp[T constraints.Ordered](v, low, high T) T {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func Min[T constraints.Ordered](x, y T) T {
	if x < y {
		return x
	}
	return y
}

func Max[T constraints.Ordered](x, y T) T {
	if x > y {
		return x
	}
	return y
}

// getMateOrCPScore formats a score the UCI way: "cp N" for ordinary scores,
// "mate N" (full moves, negative when getting mated) once the score is on
// the mate ladder.
func getMateOrCPScore(score int32) string {
	if score >= Checkmate {
		pliesToMate := MaxScore - score
		if pliesToMate < 0 {
			pliesToMate = 0
		}
		return fmt.Sprintf("mate %d", (pliesToMate+1)/2)
	}
	if score <= -Checkmate {
		pliesToMate := MaxScore + score
		if pliesToMate < 0 {
			pliesToMate = 0
		}
		return fmt.Sprintf("mate %d", -(pliesToMate+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}
