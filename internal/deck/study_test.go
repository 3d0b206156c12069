// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigatorStart(t *testing.T) {
	var n Navigator
	assert.False(t, n.Start(0))
	assert.False(t, n.Active())

	require.True(t, n.Start(3))
	assert.True(t, n.Active())
	assert.Equal(t, 0, n.Index(3))
	assert.False(t, n.ShowAnswer())
}

func TestNavigatorFullCycle(t *testing.T) {
	for _, length := range []int{1, 2, 3, 7} {
		var n Navigator
		n.Start(length)
		for i := 0; i < length; i++ {
			n.Next(length)
		}
		assert.Equal(t, 0, n.Index(length), "length %d", length)
	}
}

func TestNavigatorWrapsBothWays(t *testing.T) {
	var n Navigator
	n.Start(3)

	n.Previous(3)
	assert.Equal(t, 2, n.Index(3))
	n.Next(3)
	assert.Equal(t, 0, n.Index(3))

	n.Next(3)
	n.Next(3)
	n.Previous(3)
	n.Next(3)
	assert.Equal(t, 2, n.Index(3))
}

func TestNavigatorSingleCard(t *testing.T) {
	var n Navigator
	n.Start(1)
	n.Next(1)
	assert.Equal(t, 0, n.Index(1))
	n.Previous(1)
	assert.Equal(t, 0, n.Index(1))
}

func TestNavigatorMovesHideAnswer(t *testing.T) {
	var n Navigator
	n.Start(2)

	n.ToggleAnswer()
	require.True(t, n.ShowAnswer())
	n.Next(2)
	assert.False(t, n.ShowAnswer())

	n.ToggleAnswer()
	n.Previous(2)
	assert.False(t, n.ShowAnswer())

	n.ToggleAnswer()
	n.ToggleAnswer()
	assert.False(t, n.ShowAnswer())
}

func TestNavigatorEmptyIsNoOp(t *testing.T) {
	var n Navigator
	n.Start(2)
	n.Next(2)

	n.Next(0)
	n.Previous(0)
	assert.Equal(t, 1, n.index)

	_, ok := n.Current(nil)
	assert.False(t, ok)
}

func TestNavigatorReclampsAfterShrink(t *testing.T) {
	cards := threeCards()
	var n Navigator
	n.Start(len(cards))
	n.Previous(len(cards))
	require.Equal(t, 2, n.Index(3))

	shrunk, _ := cards.Remove("c")
	card, ok := n.Current(shrunk)
	require.True(t, ok)
	assert.Equal(t, "a", card.ID)
	assert.Less(t, n.Index(len(shrunk)), len(shrunk))

	n.Next(len(shrunk))
	assert.Equal(t, 1, n.Index(len(shrunk)))
}

func TestNavigatorExit(t *testing.T) {
	var n Navigator
	n.Start(2)
	n.ToggleAnswer()
	n.Exit()
	assert.False(t, n.Active())
	assert.False(t, n.ShowAnswer())
}
