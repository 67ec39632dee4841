package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNote(text string) Note {
	return Note{
		ID:         "a1b2c3d4-0000-4000-8000-000000000000",
		Text:       text,
		CreatedAt:  "2026.10.17",
		X:          10,
		Y:          -150,
		Rotation:   3,
		StackOrder: 11,
	}
}

func TestCard_Measure(t *testing.T) {
	t.Run("short text keeps the minimum height", func(t *testing.T) {
		c := newCard("a")
		size := c.Measure(testNote("hello"))
		assert.Equal(t, float64(cardWidthCells)*cellWidthPx, size.W)
		assert.Equal(t, 11*cellHeightPx, size.H)
	})

	t.Run("long text grows the card", func(t *testing.T) {
		c := newCard("a")
		short := c.Measure(testNote("hello"))
		c2 := newCard("b")
		long := c2.Measure(testNote(strings.Repeat("word ", 40)))
		assert.Equal(t, short.W, long.W)
		assert.Greater(t, long.H, short.H)
	})

	t.Run("layout is cached per text", func(t *testing.T) {
		c := newCard("a")
		first := c.Measure(testNote("hello"))
		c.size.H = 999
		assert.Equal(t, 999.0, c.Measure(testNote("hello")).H)
		again := c.Measure(testNote(strings.Repeat("longer text ", 20)))
		assert.NotEqual(t, 999.0, again.H)
		assert.Greater(t, again.H, first.H)
	})
}

func TestRenderCard(t *testing.T) {
	note := testNote("你好, world")
	lines := renderCard(note, false, true)
	require.NotEmpty(t, lines)
	for i, line := range lines {
		assert.Equal(t, cardWidthCells, segmentsWidth(line), "line %d", i)
	}

	var joined []string
	for _, line := range lines {
		var b strings.Builder
		for _, seg := range line {
			b.WriteString(seg.text)
		}
		joined = append(joined, b.String())
	}
	all := strings.Join(joined, "\n")
	assert.Contains(t, all, "#A1B2C3")
	assert.Contains(t, all, closeButton)
	assert.Contains(t, all, "2026.10.17")
	assert.Contains(t, all, "你好")

	hidden := renderCard(note, false, false)
	assert.NotContains(t, hidden[1][3].text, closeButton)
}

func TestCard_Drag(t *testing.T) {
	note := testNote("hello")
	c := newCard(note.ID)
	c.Measure(note)

	in := c.BeginDrag(40, 20)
	assert.Equal(t, focusIntent{id: note.ID}, in)
	assert.True(t, c.Dragging())

	c.DragTo(45, 18)
	c.DragTo(43, 22)
	dx, dy := c.DragOffset()
	assert.Equal(t, 3, dx)
	assert.Equal(t, 2, dy)

	in = c.EndDrag(note)
	assert.Equal(t, commitDragIntent{
		id: note.ID,
		x:  note.X + 3*cellWidthPx,
		y:  note.Y + 2*cellHeightPx,
	}, in)
	assert.False(t, c.Dragging())
	assert.Nil(t, c.EndDrag(note))
}

func TestCard_Shred(t *testing.T) {
	note := testNote("hello")

	t.Run("unmeasured card cannot shred", func(t *testing.T) {
		c := newCard(note.ID)
		cmd, err := c.Shred(Anchor{}, testRNG(), 60)
		assert.ErrorIs(t, err, ErrUnmeasured)
		assert.Nil(t, cmd)
		assert.True(t, c.Active())
	})

	t.Run("switches to disintegrating for good", func(t *testing.T) {
		c := newCard(note.ID)
		c.Measure(note)
		c.BeginDrag(1, 1)

		cmd, err := c.Shred(Anchor{X: 100, Y: 100, Rotation: note.Rotation, StackOrder: note.StackOrder}, testRNG(), 60)
		require.NoError(t, err)
		require.NotNil(t, cmd)
		assert.False(t, c.Active())
		assert.False(t, c.Dragging())
		assert.Nil(t, c.BeginDrag(1, 1))
		require.NotNil(t, c.Effect())
		assert.Equal(t, 96*59, c.Effect().Len())

		again, err := c.Shred(Anchor{}, testRNG(), 60)
		assert.NoError(t, err)
		assert.Nil(t, again)
	})

	t.Run("frames advance until unmounted", func(t *testing.T) {
		c := newCard(note.ID)
		c.Measure(note)
		_, err := c.Shred(Anchor{}, testRNG(), 60)
		require.NoError(t, err)

		live := frameMsg{noteID: note.ID, seq: c.loop.seq}
		assert.NotNil(t, c.Frame(live))
		assert.Equal(t, 1, c.Effect().Frame())

		assert.Nil(t, c.Frame(frameMsg{noteID: note.ID, seq: live.seq + 5}))
		assert.Equal(t, 1, c.Effect().Frame())

		c.Unmount()
		assert.Nil(t, c.Frame(live))
		assert.Equal(t, 1, c.Effect().Frame())
	})

	t.Run("loop stops itself when the dust has settled", func(t *testing.T) {
		c := newCard(note.ID)
		c.Measure(note)
		_, err := c.Shred(Anchor{}, testRNG(), 60)
		require.NoError(t, err)

		frames := 0
		for {
			cmd := c.Frame(frameMsg{noteID: note.ID, seq: c.loop.seq})
			frames++
			if cmd == nil {
				break
			}
			require.Less(t, frames, 1000)
		}
		assert.True(t, c.Effect().Done())
		assert.False(t, c.loop.Running())
		assert.LessOrEqual(t, frames, settleFrames())
	})
}

func TestCloseHit(t *testing.T) {
	box := cellRect{Col: 10, Row: 5, W: cardWidthCells, H: 11}
	right := box.Col + box.W - 2
	for col := right - closeButtonCells; col < right; col++ {
		assert.True(t, closeHit(box, col, box.Row+1), "col %d", col)
	}
	assert.False(t, closeHit(box, right, box.Row+1))
	assert.False(t, closeHit(box, right-closeButtonCells-1, box.Row+1))
	assert.False(t, closeHit(box, right-1, box.Row))
	assert.False(t, closeHit(box, right-1, box.Row+2))
}
