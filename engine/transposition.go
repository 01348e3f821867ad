package engine

import (
	"unsafe"

	gm "pelican-engine/pelicanmg"
)

const (
	// Entry bound flags
	AlphaFlag int8 = iota
	BetaFlag
	ExactFlag
)

const (
	// DefaultTTSizeMB is the transposition table size used by NewSearcher.
	DefaultTTSizeMB = 64

	clusterSize = 4

	// UnusableScore marks a probe that produced no cutoff.
	UnusableScore int32 = -32750
)

// TTEntry is one transposition table slot.
type TTEntry struct {
	Hash  uint64
	Move  gm.Move
	Score int32
	Depth int8
	Flag  int8
}

// TransTable is a fixed-size cluster-indexed transposition table. Each hash
// maps to a cluster of four entries; stores pick a victim inside the cluster.
type TransTable struct {
	entries      []TTEntry
	clusterCount uint64
}

func (tt *TransTable) init(sizeMB int) {
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	totalBytes := uint64(sizeMB) * 1024 * 1024
	clusterCount := totalBytes / (entrySize * clusterSize)
	if clusterCount == 0 {
		clusterCount = 1
	}
	tt.clusterCount = clusterCount
	tt.entries = make([]TTEntry, clusterCount*clusterSize)
}

func (tt *TransTable) clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

// probe returns the entry stored for hash, or nil.
func (tt *TransTable) probe(hash uint64) *TTEntry {
	if tt.clusterCount == 0 {
		return nil
	}
	base := (hash % tt.clusterCount) * clusterSize
	for i := uint64(0); i < clusterSize; i++ {
		if e := &tt.entries[base+i]; e.Hash == hash {
			return e
		}
	}
	return nil
}

// useEntry decides whether a stored entry may cut off the current node and
// returns the ply-adjusted score when it can. Mate scores are stored relative
// to the node that found them and shifted back here.
func (tt *TransTable) useEntry(e *TTEntry, depth int8, alpha, beta int32, ply int) (bool, int32) {
	if e == nil || e.Depth < depth {
		return false, UnusableScore
	}
	score := e.Score
	if score > Checkmate {
		score -= int32(ply)
	} else if score < -Checkmate {
		score += int32(ply)
	}
	switch e.Flag {
	case ExactFlag:
		return true, score
	case AlphaFlag:
		if score <= alpha {
			return true, alpha
		}
	case BetaFlag:
		if score >= beta {
			return true, beta
		}
	}
	return false, UnusableScore
}

// storeEntry writes a search result, preferring to overwrite the slot holding
// the same hash, then an empty slot, then the shallowest entry in the cluster.
func (tt *TransTable) storeEntry(hash uint64, depth int8, ply int, move gm.Move, score int32, flag int8) {
	if tt.clusterCount == 0 {
		return
	}
	if score > Checkmate {
		score += int32(ply)
	} else if score < -Checkmate {
		score -= int32(ply)
	}

	base := (hash % tt.clusterCount) * clusterSize
	victim := &tt.entries[base]
	for i := uint64(0); i < clusterSize; i++ {
		e := &tt.entries[base+i]
		if e.Hash == hash || e.Hash == 0 {
			victim = e
			break
		}
		if e.Depth < victim.Depth {
			victim = e
		}
	}
	*victim = TTEntry{Hash: hash, Move: move, Score: score, Depth: depth, Flag: flag}
}
