// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package tui

import "github.com/charmbracelet/bubbles/key"

type listKeys struct {
	Up, Down, Add, Edit, Delete, Study, Quit key.Binding
}

type studyKeys struct {
	Toggle, Next, Previous, Edit, Delete, Exit, Quit key.Binding
}

type formKeys struct {
	Switch, Save, Cancel key.Binding
}

func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Study, k.Quit}
}

func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, k.ShortHelp()}
}

func (k studyKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Previous, k.Next, k.Edit, k.Delete, k.Exit}
}

func (k studyKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Quit}}
}

func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Save, k.Cancel}
}

func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultListKeys = listKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Study:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "study")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var defaultStudyKeys = studyKeys{
	Toggle:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "show/hide answer")),
	Next:     key.NewBinding(key.WithKeys("n", "right", "l"), key.WithHelp("n/→", "next")),
	Previous: key.NewBinding(key.WithKeys("p", "left", "h"), key.WithHelp("p/←", "previous")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Exit:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to list")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var defaultFormKeys = formKeys{
	Switch: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch field")),
	Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}
