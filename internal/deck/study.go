// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

// Navigator walks the collection cyclically in study mode. It stores no
// cards, only a position, so callers pass the current collection length to
// every move.
type Navigator struct {
	active     bool
	index      int
	showAnswer bool
}

// Active reports whether study mode is on.
func (n *Navigator) Active() bool { return n.active }

// ShowAnswer reports whether the answer side is visible.
func (n *Navigator) ShowAnswer() bool { return n.showAnswer }

// Start enters study mode at the first card with the answer hidden.
// It does nothing when there are no cards.
func (n *Navigator) Start(length int) bool {
	if length <= 0 {
		return false
	}
	n.active = true
	n.index = 0
	n.showAnswer = false
	return true
}

// Next moves forward one card, wrapping to the first, and hides the answer.
func (n *Navigator) Next(length int) {
	if length <= 0 {
		return
	}
	n.index = (n.Index(length) + 1) % length
	n.showAnswer = false
}

// Previous moves back one card, wrapping to the last, and hides the answer.
func (n *Navigator) Previous(length int) {
	if length <= 0 {
		return
	}
	n.index = (n.Index(length) - 1 + length) % length
	n.showAnswer = false
}

// ToggleAnswer flips answer visibility without moving.
func (n *Navigator) ToggleAnswer() {
	n.showAnswer = !n.showAnswer
}

// Exit leaves study mode and hides the answer.
func (n *Navigator) Exit() {
	n.active = false
	n.showAnswer = false
}

// Index returns the position clamped into [0, length). The collection may
// have shrunk since the last move, so the stored index is reduced modulo
// length on every read.
func (n *Navigator) Index(length int) int {
	if length <= 0 {
		return 0
	}
	return n.index % length
}

// Current returns the card under the cursor. ok is false for an empty collection.
func (n *Navigator) Current(cards Collection) (Flashcard, bool) {
	if len(cards) == 0 {
		return Flashcard{}, false
	}
	return cards[n.Index(len(cards))], true
}
