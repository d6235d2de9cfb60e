package search

// RepetitionTracker records the Zobrist hash of every ancestor position on
// the current search path so negamax can detect a threefold-repetition
// draw without rescanning the whole game history on every node.
type RepetitionTracker struct {
	hashes []uint64
}

// NewRepetitionTracker returns an empty tracker with root-game capacity
// pre-reserved, since a full game rarely exceeds a few hundred plies.
func NewRepetitionTracker() *RepetitionTracker {
	return &RepetitionTracker{hashes: make([]uint64, 0, 512)}
}

// Push records hash as the next ancestor on the path, called when the
// search descends into a child position.
func (t *RepetitionTracker) Push(hash uint64) {
	t.hashes = append(t.hashes, hash)
}

// Pop removes the most recently pushed ancestor, called when the search
// returns from a child back to its parent.
func (t *RepetitionTracker) Pop() {
	t.hashes = t.hashes[:len(t.hashes)-1]
}

// Reset clears all tracked ancestors, used on ucinewgame and before each
// new root search.
func (t *RepetitionTracker) Reset() {
	t.hashes = t.hashes[:0]
}

// IsRepetitionDraw reports whether hash already occurred at least twice
// among the ancestors reachable within halfMoveClock plies of reversible
// moves. It scans backward from the most recent ancestor in steps of two
// plies, since a position can only repeat when the same side is to move.
// halfMoveClock below 4 can't contain two repeated occurrences of the same
// side-to-move position, so the scan is skipped outright.
func (t *RepetitionTracker) IsRepetitionDraw(halfMoveClock int, hash uint64) bool {
	if halfMoveClock < 4 {
		return false
	}

	n := len(t.hashes)
	matches := 0

	for offset := 2; offset <= n && offset <= halfMoveClock; offset += 2 {
		idx := n - offset
		if t.hashes[idx] == hash {
			matches++
			if matches >= 2 {
				return true
			}
		}
	}

	return false
}
