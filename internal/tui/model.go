// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package tui is the interactive terminal interface: a card list, a study
// mode and a create/edit form drawn over either.
package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mtreilly/arc-cards/internal/deck"
)

// LoadFunc reads the stored collection. Its error has already been
// recovered from and is only reported.
type LoadFunc func(ctx context.Context) error

type loadedMsg struct{ err error }

type formField int

const (
	fieldQuestion formField = iota
	fieldAnswer
)

// Model is the bubbletea model over a deck.Controller.
type Model struct {
	ctrl *deck.Controller
	load LoadFunc
	log  *slog.Logger

	width  int
	height int

	cursor int
	status string

	spinner  spinner.Model
	help     help.Model
	question textinput.Model
	answer   textarea.Model
	focus    formField

	// Set once the user changes a field. Untouched fields are saved as stored.
	questionDirty bool
	answerDirty   bool
}

// New builds the model. load runs once from Init.
func New(ctrl *deck.Controller, load LoadFunc, log *slog.Logger) Model {
	if log == nil {
		log = slog.Default()
	}
	m := Model{
		ctrl: ctrl,
		load: load,
		log:  log,
		help: help.New(),
	}

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	m.question = textinput.New()
	m.question.Placeholder = "Question"
	m.question.CharLimit = 0
	m.question.Width = 60

	m.answer = textarea.New()
	m.answer.Placeholder = "Answer"
	m.answer.CharLimit = 0
	m.answer.MaxHeight = 0
	m.answer.ShowLineNumbers = false
	m.answer.SetWidth(60)
	m.answer.SetHeight(5)
	return m
}

// Init starts loading the collection.
func (m Model) Init() tea.Cmd {
	load := m.load
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		if load == nil {
			return loadedMsg{}
		}
		return loadedMsg{err: load(context.Background())}
	})
}

// Update routes a message to the handler for whatever is on screen. An
// open form takes every key so text editing behaves normally.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.log.Warn("collection recovered from unreadable storage", "error", msg.err)
			m.status = "Stored cards could not be read; starting from a fallback collection."
		}
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		v := m.ctrl.View()
		if v.Form != nil {
			return m.updateForm(msg)
		}
		switch s := v.Screen.(type) {
		case deck.Loading:
			if key.Matches(msg, defaultListKeys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		case deck.Studying:
			return m.updateStudy(msg, s)
		case deck.Listing:
			return m.updateList(msg, s)
		}
	}

	return m.updateInputs(msg)
}

func (m Model) updateList(msg tea.KeyMsg, s deck.Listing) (tea.Model, tea.Cmd) {
	m.status = ""
	k := defaultListKeys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, k.Down):
		if m.cursor < len(s.Cards)-1 {
			m.cursor++
		}
	case key.Matches(msg, k.Add):
		return m.openForm(m.ctrl.OpenCreate())
	case key.Matches(msg, k.Edit):
		if card, ok := m.selected(s.Cards); ok {
			_, err := m.ctrl.OpenEdit(card.ID)
			return m.openForm(err)
		}
	case key.Matches(msg, k.Delete):
		if card, ok := m.selected(s.Cards); ok {
			m.deleteCard(card.ID)
			m.clampCursor()
		}
	case key.Matches(msg, k.Study):
		if !m.ctrl.StartStudy() {
			m.status = "Add a card before studying."
		}
	}
	return m, nil
}

func (m Model) updateStudy(msg tea.KeyMsg, s deck.Studying) (tea.Model, tea.Cmd) {
	m.status = ""
	k := defaultStudyKeys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Toggle):
		m.ctrl.ToggleAnswer()
	case key.Matches(msg, k.Next):
		m.ctrl.Next()
	case key.Matches(msg, k.Previous):
		m.ctrl.Previous()
	case key.Matches(msg, k.Edit):
		_, err := m.ctrl.OpenEdit(s.Card.ID)
		return m.openForm(err)
	case key.Matches(msg, k.Delete):
		m.deleteCard(s.Card.ID)
		m.clampCursor()
	case key.Matches(msg, k.Exit):
		m.ctrl.ExitStudy()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := defaultFormKeys
	switch {
	case key.Matches(msg, k.Cancel):
		m.ctrl.CancelForm()
		m.status = ""
		m.blurForm()
		return m, nil
	case key.Matches(msg, k.Save):
		m.syncDraft()
		if err := m.ctrl.SaveForm(); err != nil {
			m.status = describe(err)
			return m, nil
		}
		m.status = ""
		m.blurForm()
		return m, nil
	case key.Matches(msg, k.Switch):
		cmd := m.focusField(1 - m.focus)
		return m, cmd
	}

	q, a := m.question.Value(), m.answer.Value()
	m, cmd := m.updateInputs(msg)
	if m.question.Value() != q {
		m.questionDirty = true
	}
	if m.answer.Value() != a {
		m.answerDirty = true
	}
	m.syncDraft()
	return m, cmd
}

// syncDraft copies edited fields into the controller's draft. Untouched
// fields keep the text the form was opened with.
func (m *Model) syncDraft() {
	f := m.ctrl.View().Form
	if f == nil {
		return
	}
	q, a := f.Question, f.Answer
	if m.questionDirty {
		q = m.question.Value()
	}
	if m.answerDirty {
		a = m.answer.Value()
	}
	m.ctrl.SetDraft(q, a)
}

func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.question, cmd = m.question.Update(msg)
	cmds = append(cmds, cmd)
	m.answer, cmd = m.answer.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// openForm loads the controller's draft into the inputs.
func (m Model) openForm(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.status = describe(err)
		return m, nil
	}
	f := m.ctrl.View().Form
	if f == nil {
		return m, nil
	}
	m.question.SetValue(f.Question)
	m.answer.SetValue(f.Answer)
	m.questionDirty, m.answerDirty = false, false
	cmd := m.focusField(fieldQuestion)
	return m, cmd
}

func (m *Model) focusField(f formField) tea.Cmd {
	m.focus = f
	if f == fieldQuestion {
		m.answer.Blur()
		return m.question.Focus()
	}
	m.question.Blur()
	return m.answer.Focus()
}

func (m *Model) blurForm() {
	m.question.Blur()
	m.answer.Blur()
	m.question.SetValue("")
	m.answer.SetValue("")
	m.focus = fieldQuestion
	m.questionDirty, m.answerDirty = false, false
}

func (m *Model) deleteCard(id string) {
	if _, err := m.ctrl.Delete(id); err != nil {
		m.status = describe(err)
	}
}

func (m Model) selected(cards deck.Collection) (deck.Flashcard, bool) {
	if m.cursor < 0 || m.cursor >= len(cards) {
		return deck.Flashcard{}, false
	}
	return cards[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Cards())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, deck.ErrInvalidCard):
		return "Both a question and an answer are required."
	case errors.Is(err, deck.ErrNotReady):
		return "Still loading, try again in a moment."
	}
	return err.Error()
}
