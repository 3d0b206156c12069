// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

// Screen is the base screen on display. It is one of Loading, Listing or
// Studying.
type Screen interface {
	screen()
}

// Loading is shown until the initial load completes.
type Loading struct{}

// Listing shows every card.
type Listing struct {
	Cards Collection
}

// Studying shows one card at a time.
type Studying struct {
	Card       Flashcard
	Index      int
	Total      int
	ShowAnswer bool
}

func (Loading) screen()  {}
func (Listing) screen()  {}
func (Studying) screen() {}

// FormMode says whether a form creates a card or edits one.
type FormMode int

const (
	FormCreate FormMode = iota
	FormEdit
)

// Form is the create/edit modal. EditingID is set only in FormEdit mode.
type Form struct {
	Mode      FormMode
	EditingID string
	Question  string
	Answer    string
}

// Editing reports whether the form edits an existing card.
func (f Form) Editing() bool { return f.Mode == FormEdit }

// View is everything the UI needs to render. Form, when set, is drawn over
// Screen; it is never a screen of its own.
type View struct {
	Screen Screen
	Form   *Form
}

// deriveView applies the precedence loading > studying > listing.
func deriveView(loading bool, cards Collection, nav *Navigator, form *Form) View {
	v := View{}
	if form != nil {
		f := *form
		v.Form = &f
	}
	switch {
	case loading:
		v.Screen = Loading{}
	case nav.Active():
		card, ok := nav.Current(cards)
		if !ok {
			v.Screen = Listing{Cards: cards}
			break
		}
		v.Screen = Studying{
			Card:       card,
			Index:      nav.Index(len(cards)),
			Total:      len(cards),
			ShowAnswer: nav.ShowAnswer(),
		}
	default:
		v.Screen = Listing{Cards: cards}
	}
	return v
}
