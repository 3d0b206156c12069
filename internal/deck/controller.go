// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"context"
	"log/slog"
	"sync"
)

// Controller is the action surface for the UI: one method per user action,
// plus View for rendering. It starts in the loading state and refuses
// mutations until Load returns.
type Controller struct {
	mu      sync.Mutex
	p       *Persister
	store   *Store
	nav     Navigator
	loading bool
	form    *Form
	log     *slog.Logger
}

// NewController wires a controller over a persister and a store whose saver
// is already attached.
func NewController(p *Persister, store *Store, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		p:       p,
		store:   store,
		loading: true,
		log:     log,
	}
}

// Load reads the stored collection into the store and leaves the loading
// state. A returned error has already been recovered from; the controller
// is usable either way.
func (c *Controller) Load(ctx context.Context) error {
	cards, err := c.p.Load(ctx)
	c.store.Reset(cards)

	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()

	c.log.Debug("collection loaded", "cards", len(cards))
	return err
}

// Loading reports whether the initial load is still running.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Cards returns the current collection.
func (c *Controller) Cards() Collection {
	return c.store.Snapshot()
}

// View derives what should be on screen.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return deriveView(c.loading, c.store.Snapshot(), &c.nav, c.form)
}

// OpenCreate opens an empty form for a new card.
func (c *Controller) OpenCreate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return ErrNotReady
	}
	c.form = &Form{Mode: FormCreate}
	return nil
}

// OpenEdit opens the form pre-filled with card id. It reports false when
// the card does not exist.
func (c *Controller) OpenEdit(id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return false, ErrNotReady
	}
	card, ok := c.store.Get(id)
	if !ok {
		return false, nil
	}
	c.form = &Form{Mode: FormEdit, EditingID: card.ID, Question: card.Question, Answer: card.Answer}
	return true, nil
}

// SetDraft replaces the text in the open form. It does nothing when no
// form is open.
func (c *Controller) SetDraft(question, answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form == nil {
		return
	}
	c.form.Question = question
	c.form.Answer = answer
}

// SaveForm creates or updates a card from the open form, then closes it.
// An invalid draft returns ErrInvalidCard and leaves the form open.
func (c *Controller) SaveForm() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return ErrNotReady
	}
	if c.form == nil {
		return nil
	}
	f := *c.form
	if f.Editing() {
		if _, err := c.store.Update(f.EditingID, f.Question, f.Answer); err != nil {
			return err
		}
	} else {
		if _, err := c.store.Create(f.Question, f.Answer); err != nil {
			return err
		}
	}
	c.form = nil
	return nil
}

// CancelForm closes the form, discarding the draft.
func (c *Controller) CancelForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = nil
}

// Delete removes card id immediately. Deleting the last card while
// studying leaves study mode.
func (c *Controller) Delete(id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return false, ErrNotReady
	}
	ok := c.store.Delete(id)
	if ok && c.nav.Active() && c.store.Len() == 0 {
		c.nav.Exit()
	}
	return ok, nil
}

// StartStudy enters study mode at the first card. It reports false when
// the collection is empty.
func (c *Controller) StartStudy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return false
	}
	return c.nav.Start(c.store.Len())
}

// ExitStudy returns to the list.
func (c *Controller) ExitStudy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nav.Exit()
}

// Next shows the following card.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.nav.Active() {
		c.nav.Next(c.store.Len())
	}
}

// Previous shows the preceding card.
func (c *Controller) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.nav.Active() {
		c.nav.Previous(c.store.Len())
	}
}

// ToggleAnswer reveals or hides the answer of the current study card.
func (c *Controller) ToggleAnswer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.nav.Active() {
		c.nav.ToggleAnswer()
	}
}

// Import prepends the valid drafts in their given order.
func (c *Controller) Import(drafts []Draft) ([]Flashcard, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return nil, 0, ErrNotReady
	}
	imported, skipped := c.store.Import(drafts)
	return imported, skipped, nil
}

// ResetToSeed replaces the whole collection with the sample deck.
func (c *Controller) ResetToSeed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return ErrNotReady
	}
	c.nav.Exit()
	c.form = nil
	c.store.Replace(Seed())
	return nil
}
