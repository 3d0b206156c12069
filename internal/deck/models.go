// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package deck holds the flashcard collection, its persistence, the study
// navigator and the view state derived from them.
package deck

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Flashcard is a single question/answer pair. ID never changes once assigned.
type Flashcard struct {
	ID       string `json:"id" yaml:"id"`
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Draft is the user-entered text for a card that does not exist yet, or
// the replacement text for one being edited.
type Draft struct {
	Question string `json:"question" yaml:"question" validate:"required"`
	Answer   string `json:"answer" yaml:"answer" validate:"required"`
}

// Normalize trims surrounding whitespace from both sides of the card.
func (d Draft) Normalize() Draft {
	return Draft{
		Question: strings.TrimSpace(d.Question),
		Answer:   strings.TrimSpace(d.Answer),
	}
}

// Validate reports ErrInvalidCard when either side is empty after trimming.
func (d Draft) Validate() error {
	if err := validate.Struct(d.Normalize()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCard, err)
	}
	return nil
}

// Validate reports ErrInvalidCard when the id is missing or either side is
// empty after trimming.
func (c Flashcard) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidCard)
	}
	return Draft{Question: c.Question, Answer: c.Answer}.Validate()
}

// ListOptions filters card listing.
type ListOptions struct {
	Search string
	Limit  int
}

// seed is the sample deck written on first run.
var seed = Collection{
	{ID: "1", Question: "What is React Native?", Answer: "A cross-platform framework for building mobile apps using JavaScript and React."},
	{ID: "2", Question: "Difference between State and Props?", Answer: "State is mutable and managed within a component; Props are immutable and passed from parent to child."},
	{ID: "3", Question: "What is AsyncStorage in React Native?", Answer: "A simple, unencrypted, asynchronous, persistent, key-value storage system for small data."},
	{ID: "4", Question: "What is the purpose of useEffect hook?", Answer: "It allows you to perform side effects in functional components, like fetching data or subscribing to events."},
	{ID: "5", Question: "Explain Flexbox in React Native.", Answer: "A layout system used for arranging components in rows or columns with alignment and spacing control."},
	{ID: "6", Question: "What is Expo?", Answer: "A framework and platform for universal React applications that simplifies development, testing, and deployment."},
	{ID: "7", Question: "Why use FlatList instead of ScrollView?", Answer: "FlatList is optimized for large lists by rendering items lazily, while ScrollView renders all items at once."},
}

// Seed returns a fresh copy of the sample deck.
func Seed() Collection {
	return seed.Clone()
}
