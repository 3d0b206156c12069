// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtreilly/arc-cards/internal/storage"
)

// newTestController returns a loaded controller over cards.
func newTestController(t *testing.T, cards Collection) (*Controller, *recorder) {
	t.Helper()
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	p := NewPersister(kv, WithLogger(discard))
	require.NoError(t, p.Save(ctx, cards))

	rec := &recorder{}
	c := NewController(p, NewStore(rec, WithIDFunc(sequentialIDs())), discard)
	require.NoError(t, c.Load(ctx))
	return c, rec
}

func TestControllerRefusesWhileLoading(t *testing.T) {
	p := NewPersister(storage.NewMemoryStore(), WithLogger(discard))
	c := NewController(p, NewStore(&recorder{}), discard)

	assert.True(t, c.Loading())
	assert.IsType(t, Loading{}, c.View().Screen)
	assert.ErrorIs(t, c.OpenCreate(), ErrNotReady)
	_, err := c.OpenEdit("1")
	assert.ErrorIs(t, err, ErrNotReady)
	_, err = c.Delete("1")
	assert.ErrorIs(t, err, ErrNotReady)
	assert.False(t, c.StartStudy())
	assert.ErrorIs(t, c.ResetToSeed(), ErrNotReady)

	require.NoError(t, c.Load(context.Background()))
	assert.False(t, c.Loading())
	assert.Len(t, c.Cards(), 7)
	assert.IsType(t, Listing{}, c.View().Screen)
}

func TestControllerLoadRecoversFromCorruptBlob(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, DefaultKey, []byte("not json")))
	c := NewController(NewPersister(kv, WithLogger(discard)), NewStore(&recorder{}), discard)

	var rerr *ReadError
	require.ErrorAs(t, c.Load(ctx), &rerr)
	assert.False(t, c.Loading())
	assert.Empty(t, c.Cards())
	assert.NoError(t, c.OpenCreate())
}

func TestControllerCreateThroughForm(t *testing.T) {
	c, rec := newTestController(t, twoCards())

	require.NoError(t, c.OpenCreate())
	v := c.View()
	require.NotNil(t, v.Form)
	assert.False(t, v.Form.Editing())

	c.SetDraft("  New?  ", " Yes ")
	require.NoError(t, c.SaveForm())

	assert.Nil(t, c.View().Form)
	cards := c.Cards()
	require.Len(t, cards, 3)
	assert.Equal(t, Flashcard{ID: "id-1", Question: "New?", Answer: "Yes"}, cards[0])
	assert.Equal(t, 1, rec.count())

	require.NoError(t, c.OpenCreate())
	assert.Equal(t, Form{}, *c.View().Form, "form resets after save")
}

func TestControllerInvalidDraftKeepsFormOpen(t *testing.T) {
	c, rec := newTestController(t, twoCards())

	require.NoError(t, c.OpenCreate())
	c.SetDraft("Question only", "   ")
	assert.ErrorIs(t, c.SaveForm(), ErrInvalidCard)

	v := c.View()
	require.NotNil(t, v.Form)
	assert.Equal(t, "Question only", v.Form.Question)
	assert.Len(t, c.Cards(), 2)
	assert.Zero(t, rec.count())
}

func TestControllerEditThroughForm(t *testing.T) {
	c, _ := newTestController(t, threeCards())

	ok, err := c.OpenEdit("b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Form{Mode: FormEdit, EditingID: "b", Question: "Q B", Answer: "A B"}, *c.View().Form)

	c.SetDraft("Q B2", "A B2")
	require.NoError(t, c.SaveForm())

	cards := c.Cards()
	require.Len(t, cards, 3)
	assert.Equal(t, Flashcard{ID: "b", Question: "Q B2", Answer: "A B2"}, cards[1])

	ok, err = c.OpenEdit("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, c.View().Form)
}

func TestControllerLoadSkipsCardsWithoutID(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, DefaultKey, []byte(
		`[{"question":"Q","answer":"A"},{"id":"b","question":"Q B","answer":"A B"}]`)))
	c := NewController(NewPersister(kv, WithLogger(discard)), NewStore(&recorder{}, WithIDFunc(sequentialIDs())), discard)
	require.NoError(t, c.Load(ctx))

	require.Len(t, c.Cards(), 1)
	ok, err := c.OpenEdit("")
	require.NoError(t, err)
	assert.False(t, ok, "no card has an empty id")

	ok, err = c.OpenEdit("b")
	require.NoError(t, err)
	require.True(t, ok)
	c.SetDraft("Q B", "A B!")
	require.NoError(t, c.SaveForm())
	assert.Equal(t, Collection{{ID: "b", Question: "Q B", Answer: "A B!"}}, c.Cards())
}

func TestControllerCancelFormDiscardsDraft(t *testing.T) {
	c, rec := newTestController(t, twoCards())

	_, err := c.OpenEdit("a")
	require.NoError(t, err)
	c.SetDraft("changed", "changed")
	c.CancelForm()

	assert.Nil(t, c.View().Form)
	assert.Equal(t, twoCards(), c.Cards())
	assert.Zero(t, rec.count())

	c.SetDraft("ignored", "ignored")
	assert.NoError(t, c.SaveForm())
	assert.Zero(t, rec.count())
}

func TestControllerStudyPrecedence(t *testing.T) {
	c, _ := newTestController(t, threeCards())

	require.True(t, c.StartStudy())
	s, ok := c.View().Screen.(Studying)
	require.True(t, ok)
	assert.Equal(t, "a", s.Card.ID)
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, 3, s.Total)
	assert.False(t, s.ShowAnswer)

	c.ToggleAnswer()
	assert.True(t, c.View().Screen.(Studying).ShowAnswer)

	c.Previous()
	s = c.View().Screen.(Studying)
	assert.Equal(t, "c", s.Card.ID)
	assert.False(t, s.ShowAnswer)

	c.Next()
	assert.Equal(t, "a", c.View().Screen.(Studying).Card.ID)

	c.ExitStudy()
	assert.IsType(t, Listing{}, c.View().Screen)
}

func TestControllerFormOverlaysStudy(t *testing.T) {
	c, _ := newTestController(t, twoCards())

	require.True(t, c.StartStudy())
	c.Next()
	_, err := c.OpenEdit("b")
	require.NoError(t, err)

	v := c.View()
	require.NotNil(t, v.Form)
	s, ok := v.Screen.(Studying)
	require.True(t, ok, "study stays the base screen under the form")
	assert.Equal(t, "b", s.Card.ID)

	c.SetDraft("Q B edited", "A B")
	require.NoError(t, c.SaveForm())
	s = c.View().Screen.(Studying)
	assert.Equal(t, "Q B edited", s.Card.Question)
}

func TestControllerStartStudyEmpty(t *testing.T) {
	c, _ := newTestController(t, Collection{})
	assert.False(t, c.StartStudy())
	assert.IsType(t, Listing{}, c.View().Screen)

	c.Next()
	c.ToggleAnswer()
	assert.IsType(t, Listing{}, c.View().Screen)
}

func TestControllerDeleteCurrentStudyCard(t *testing.T) {
	c, rec := newTestController(t, threeCards())

	require.True(t, c.StartStudy())
	c.Previous()
	require.Equal(t, "c", c.View().Screen.(Studying).Card.ID)

	ok, err := c.Delete("c")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, rec.count())

	s, isStudy := c.View().Screen.(Studying)
	require.True(t, isStudy)
	assert.Equal(t, 2, s.Total)
	assert.Less(t, s.Index, s.Total)
	assert.Equal(t, "a", s.Card.ID)
}

func TestControllerDeleteLastCardLeavesStudy(t *testing.T) {
	c, _ := newTestController(t, Collection{{ID: "only", Question: "q", Answer: "a"}})

	require.True(t, c.StartStudy())
	ok, err := c.Delete("only")
	require.NoError(t, err)
	require.True(t, ok)

	l, isList := c.View().Screen.(Listing)
	require.True(t, isList)
	assert.Empty(t, l.Cards)

	ok, err = c.Delete("only")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestControllerImportAndReset(t *testing.T) {
	c, rec := newTestController(t, twoCards())

	imported, skipped, err := c.Import([]Draft{
		{Question: "one", Answer: "1"},
		{Question: "", Answer: "x"},
		{Question: "two", Answer: "2"},
	})
	require.NoError(t, err)
	assert.Len(t, imported, 2)
	assert.Equal(t, 1, skipped)

	cards := c.Cards()
	require.Len(t, cards, 4)
	assert.Equal(t, "one", cards[0].Question)
	assert.Equal(t, "two", cards[1].Question)

	require.True(t, c.StartStudy())
	require.NoError(t, c.ResetToSeed())
	assert.Equal(t, Seed(), c.Cards())
	assert.IsType(t, Listing{}, c.View().Screen)
	assert.Equal(t, 2, rec.count())
}
