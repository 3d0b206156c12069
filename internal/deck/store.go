// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import "sync"

// Store is the in-memory card collection and the single source of truth
// for the UI. Every accepted mutation hands the new snapshot to the Saver.
type Store struct {
	mu    sync.Mutex
	cards Collection
	saver Saver
	newID IDFunc
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDFunc overrides NewID.
func WithIDFunc(fn IDFunc) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewStore creates an empty store. A nil saver discards snapshots.
func NewStore(saver Saver, opts ...StoreOption) *Store {
	s := &Store{
		cards: Collection{},
		saver: saver,
		newID: NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current collection.
func (s *Store) Snapshot() Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards.Clone()
}

// Len returns the number of cards.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}

// Get returns the card with the given id.
func (s *Store) Get(id string) (Flashcard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards.Find(id)
}

// Reset replaces the collection without persisting it.
func (s *Store) Reset(cards Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = cards.Clone()
}

// Create adds a card at the front of the collection.
func (s *Store) Create(question, answer string) (Flashcard, error) {
	d := Draft{Question: question, Answer: answer}
	if err := d.Validate(); err != nil {
		return Flashcard{}, err
	}
	d = d.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	card := Flashcard{ID: s.uniqueID(nil), Question: d.Question, Answer: d.Answer}
	s.commit(s.cards.Prepend(card))
	return card, nil
}

// Update changes the question and answer of id, keeping its position.
// An unknown id is a no-op and reports false.
func (s *Store) Update(id, question, answer string) (bool, error) {
	d := Draft{Question: question, Answer: answer}
	if err := d.Validate(); err != nil {
		return false, err
	}
	d = d.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.cards.Replace(id, d.Question, d.Answer)
	if !ok {
		return false, nil
	}
	s.commit(next)
	return true, nil
}

// Delete removes id. There is no confirmation step. An unknown id is a
// no-op and reports false.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := s.cards.Remove(id)
	if !ok {
		return false
	}
	s.commit(next)
	return true
}

// Import prepends every valid draft, keeping their relative order, and
// persists once. Invalid drafts are skipped.
func (s *Store) Import(drafts []Draft) (imported []Flashcard, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range drafts {
		if d.Validate() != nil {
			skipped++
			continue
		}
		d = d.Normalize()
		imported = append(imported, Flashcard{ID: s.uniqueID(imported), Question: d.Question, Answer: d.Answer})
	}
	if len(imported) > 0 {
		s.commit(s.cards.Prepend(imported...))
	}
	return imported, skipped
}

// Replace swaps in a whole new collection and persists it.
func (s *Store) Replace(cards Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(cards.Clone())
}

// uniqueID draws ids until one is used by neither the collection nor
// pending. Callers hold mu.
func (s *Store) uniqueID(pending Collection) string {
	for {
		id := s.newID()
		if s.cards.IndexOf(id) < 0 && pending.IndexOf(id) < 0 {
			return id
		}
	}
}

func (s *Store) commit(next Collection) {
	s.cards = next
	if s.saver != nil {
		s.saver.Submit(next.Clone())
	}
}
