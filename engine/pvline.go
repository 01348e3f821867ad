package engine

import (
	"strings"

	gm "pelican-engine/pelicanmg"
)

// PVLine holds the principal variation found below a node.
type PVLine struct {
	Moves []gm.Move
}

// Clear empties the line, keeping its backing storage.
func (pv *PVLine) Clear() {
	pv.Moves = pv.Moves[:0]
}

// Update makes the line start with move followed by the child's variation.
func (pv *PVLine) Update(move gm.Move, child *PVLine) {
	pv.Moves = append(pv.Moves[:0], move)
	pv.Moves = append(pv.Moves, child.Moves...)
}

// Clone returns an independent copy of the line.
func (pv PVLine) Clone() PVLine {
	cloned := PVLine{Moves: make([]gm.Move, len(pv.Moves))}
	copy(cloned.Moves, pv.Moves)
	return cloned
}

// GetPVMove returns the first move of the line, or the null move when empty.
func (pv PVLine) GetPVMove() gm.Move {
	if len(pv.Moves) == 0 {
		return gm.NullMove
	}
	return pv.Moves[0]
}

// String renders the line as space-separated coordinate moves.
func (pv PVLine) String() string {
	parts := make([]string, len(pv.Moves))
	for i, m := range pv.Moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
