// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mtreilly/arc-cards/internal/deck"
	"github.com/mtreilly/arc-cards/internal/output"
)

const maxContentW = 96

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	cardStyle     = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))
	modalStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("212"))
)

// View renders the base screen with the form, when open, drawn below a
// dimmed copy of it.
func (m Model) View() string {
	v := m.ctrl.View()

	var base string
	var keys help.KeyMap
	switch s := v.Screen.(type) {
	case deck.Loading:
		return fmt.Sprintf("\n  %s Loading cards…\n", m.spinner.View())
	case deck.Studying:
		base = m.viewStudy(s)
		keys = defaultStudyKeys
	case deck.Listing:
		base = m.viewList(s)
		keys = defaultListKeys
	}

	if v.Form != nil {
		base = mutedStyle.Faint(true).Render(base)
		base += "\n" + m.viewForm(*v.Form)
		keys = defaultFormKeys
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) contentWidth() int {
	w := m.width - 4
	if w <= 0 || w > maxContentW {
		w = maxContentW
	}
	return w
}

func (m Model) viewList(s deck.Listing) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Flashcards (%d)", len(s.Cards))))
	b.WriteString("\n\n")

	if len(s.Cards) == 0 {
		b.WriteString(mutedStyle.Render("No cards yet. Press a to add one."))
		b.WriteString("\n")
		return b.String()
	}

	width := m.contentWidth() - 4
	for i, c := range s.Cards {
		line := output.Truncate(oneLine(c.Question), width)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewStudy(s deck.Studying) string {
	w := m.contentWidth()

	var body strings.Builder
	body.WriteString(mutedStyle.Render(fmt.Sprintf("Card %d of %d", s.Index+1, s.Total)))
	body.WriteString("\n\n")
	body.WriteString(lipgloss.NewStyle().Bold(true).Render(s.Card.Question))
	body.WriteString("\n\n")
	if s.ShowAnswer {
		body.WriteString(answerStyle.Render(s.Card.Answer))
	} else {
		body.WriteString(mutedStyle.Render("(press space to show the answer)"))
	}

	return titleStyle.Render("Study") + "\n\n" + cardStyle.Width(w-2).Render(body.String()) + "\n"
}

func (m Model) viewForm(f deck.Form) string {
	title := "New card"
	if f.Editing() {
		title = "Edit card"
	}
	body := strings.Join([]string{
		titleStyle.Render(title),
		"",
		m.question.View(),
		"",
		m.answer.View(),
	}, "\n")
	return modalStyle.Width(m.contentWidth() - 2).Render(body)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(m Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
