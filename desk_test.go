package main

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDesk() *Desk {
	d := NewDesk(rand.New(rand.NewPCG(1, 2)))
	d.clock = func() time.Time { return time.Date(2026, 1, 5, 9, 30, 0, 0, time.Local) }
	return d
}

func TestDesk_CreateNote(t *testing.T) {
	t.Run("ids are distinct and stack order increases", func(t *testing.T) {
		d := newTestDesk()
		seen := make(map[string]bool)
		last := 0
		for i := 0; i < 200; i++ {
			note := d.CreateNote(fmt.Sprintf("note %d", i))
			assert.False(t, seen[note.ID], "duplicate id %s", note.ID)
			seen[note.ID] = true
			assert.Greater(t, note.StackOrder, last)
			last = note.StackOrder
		}
		assert.Equal(t, 200, d.Len())
	})

	t.Run("placement stays within jitter bounds", func(t *testing.T) {
		d := newTestDesk()
		for i := 0; i < 500; i++ {
			note := d.CreateNote("x")
			assert.GreaterOrEqual(t, note.X, jitterMinX)
			assert.LessOrEqual(t, note.X, jitterMaxX)
			assert.GreaterOrEqual(t, note.Y, jitterMinY)
			assert.LessOrEqual(t, note.Y, jitterMaxY)
			assert.GreaterOrEqual(t, note.Rotation, -maxRotation)
			assert.LessOrEqual(t, note.Rotation, maxRotation)
		}
	})

	t.Run("first note takes the order after the initial counter", func(t *testing.T) {
		d := newTestDesk()
		note := d.CreateNote("hello")
		assert.Equal(t, initialStackOrder+1, note.StackOrder)
		assert.Equal(t, "hello", note.Text)
		assert.Equal(t, "2026.1.5", note.CreatedAt)
	})
}

func TestDesk_Focus(t *testing.T) {
	t.Run("focused note rises above everything assigned before", func(t *testing.T) {
		d := newTestDesk()
		a := d.CreateNote("A")
		b := d.CreateNote("B")

		d.Focus(a.ID)
		gotA, _ := d.Get(a.ID)
		gotB, _ := d.Get(b.ID)
		assert.Greater(t, gotA.StackOrder, gotB.StackOrder)

		top, ok := d.Top()
		require.True(t, ok)
		assert.Equal(t, a.ID, top.ID)
	})

	t.Run("refocusing keeps bumping the order", func(t *testing.T) {
		d := newTestDesk()
		a := d.CreateNote("A")
		d.Focus(a.ID)
		first, _ := d.Get(a.ID)
		d.Focus(a.ID)
		second, _ := d.Get(a.ID)
		assert.Greater(t, second.StackOrder, first.StackOrder)
		assert.Greater(t, first.StackOrder, a.StackOrder)
	})

	t.Run("absent id changes nothing", func(t *testing.T) {
		d := newTestDesk()
		a := d.CreateNote("A")
		before := d.Notes()
		d.Focus("missing")
		assert.Equal(t, before, d.Notes())
		next := d.CreateNote("B")
		assert.Equal(t, a.StackOrder+1, next.StackOrder)
	})
}

func TestDesk_CommitDrag(t *testing.T) {
	d := newTestDesk()
	a := d.CreateNote("A")

	d.CommitDrag(a.ID, 12.5, -80)
	got, ok := d.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, 12.5, got.X)
	assert.Equal(t, -80.0, got.Y)
	assert.Equal(t, a.StackOrder, got.StackOrder)

	before := d.Notes()
	d.CommitDrag("missing", 1, 1)
	assert.Equal(t, before, d.Notes())
}

func TestDesk_Delete(t *testing.T) {
	d := newTestDesk()
	a := d.CreateNote("A")
	b := d.CreateNote("B")
	c := d.CreateNote("C")

	d.Delete(b.ID)
	require.Equal(t, 2, d.Len())
	_, ok := d.Get(b.ID)
	assert.False(t, ok)

	gotA, _ := d.Get(a.ID)
	gotC, _ := d.Get(c.ID)
	assert.Equal(t, a, gotA)
	assert.Equal(t, c, gotC)

	d.Delete("missing")
	assert.Equal(t, 2, d.Len())
}

func TestDesk_Stacked(t *testing.T) {
	d := newTestDesk()
	a := d.CreateNote("A")
	b := d.CreateNote("B")
	d.Focus(a.ID)

	stacked := d.Stacked()
	require.Len(t, stacked, 2)
	assert.Equal(t, b.ID, stacked[0].ID)
	assert.Equal(t, a.ID, stacked[1].ID)

	// Snapshots are copies.
	stacked[0].Text = "changed"
	got, _ := d.Get(b.ID)
	assert.Equal(t, "B", got.Text)
}

func TestDesk_PrintingLock(t *testing.T) {
	d := newTestDesk()
	assert.False(t, d.Printing())
	assert.True(t, d.BeginPrinting())
	assert.True(t, d.Printing())
	assert.False(t, d.BeginPrinting())
	d.EndPrinting()
	assert.False(t, d.Printing())
	assert.True(t, d.BeginPrinting())
}
