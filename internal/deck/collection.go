// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"slices"
	"strings"
)

// Collection is an ordered snapshot of cards. Methods never modify the
// receiver; changes come back as a new slice.
type Collection []Flashcard

// Clone returns an independent copy.
func (c Collection) Clone() Collection {
	if c == nil {
		return Collection{}
	}
	return slices.Clone(c)
}

// IndexOf returns the position of id, or -1.
func (c Collection) IndexOf(id string) int {
	return slices.IndexFunc(c, func(card Flashcard) bool { return card.ID == id })
}

// Find returns the card with the given id.
func (c Collection) Find(id string) (Flashcard, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return Flashcard{}, false
	}
	return c[i], true
}

// Prepend returns a copy with cards inserted at the front, in the order given.
func (c Collection) Prepend(cards ...Flashcard) Collection {
	out := make(Collection, 0, len(cards)+len(c))
	out = append(out, cards...)
	return append(out, c...)
}

// Replace returns a copy with the question and answer of id swapped in.
// The card keeps its position. ok is false when id is absent.
func (c Collection) Replace(id, question, answer string) (Collection, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return c, false
	}
	out := c.Clone()
	out[i].Question = question
	out[i].Answer = answer
	return out, true
}

// Remove returns a copy without id. ok is false when id is absent.
func (c Collection) Remove(id string) (Collection, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return c, false
	}
	out := make(Collection, 0, len(c)-1)
	out = append(out, c[:i]...)
	return append(out, c[i+1:]...), true
}

// DropInvalid removes cards that fail Flashcard.Validate and returns how
// many were removed.
func (c Collection) DropInvalid() (Collection, int) {
	out := make(Collection, 0, len(c))
	for _, card := range c {
		if card.Validate() != nil {
			continue
		}
		out = append(out, card)
	}
	return out, len(c) - len(out)
}

// Dedupe drops every card whose id already appeared earlier.
// It returns the ids that were dropped.
func (c Collection) Dedupe() (Collection, []string) {
	seen := make(map[string]bool, len(c))
	out := make(Collection, 0, len(c))
	var dropped []string
	for _, card := range c {
		if seen[card.ID] {
			dropped = append(dropped, card.ID)
			continue
		}
		seen[card.ID] = true
		out = append(out, card)
	}
	return out, dropped
}

// Filter applies opts. A nil opts returns the collection unchanged.
func (c Collection) Filter(opts *ListOptions) Collection {
	if opts == nil {
		return c
	}
	search := strings.ToLower(strings.TrimSpace(opts.Search))
	out := Collection{}
	for _, card := range c {
		if search != "" &&
			!strings.Contains(strings.ToLower(card.Question), search) &&
			!strings.Contains(strings.ToLower(card.Answer), search) {
			continue
		}
		out = append(out, card)
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out
}
