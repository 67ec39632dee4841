package main

import (
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type segment struct {
	text string
	tone tone
}

// Card is the on-desk view of one note. It is either Active (draggable, with a
// close affordance) or Disintegrating; the second state is terminal.
type Card struct {
	noteID      string
	state       cardState
	measuredFor string
	size        Rect
	effect      *Disintegration
	loop        *frameLoop
	drag        *dragState
}

type dragState struct {
	fromCol int
	fromRow int
	dx      int
	dy      int
}

// Intents a card reports to the model.
type intent interface {
	noteID() string
}

type focusIntent struct{ id string }

type commitDragIntent struct {
	id string
	x  float64
	y  float64
}

type shredIntent struct{ id string }

func (i focusIntent) noteID() string      { return i.id }
func (i commitDragIntent) noteID() string { return i.id }
func (i shredIntent) noteID() string      { return i.id }

type noteRemovedMsg struct {
	id string
}

func newCard(noteID string) *Card {
	return &Card{noteID: noteID, state: cardActive}
}

func (c *Card) Active() bool {
	return c.state == cardActive
}

// Measure lays the card out and caches its px size. Layout only reruns when
// the note text changes.
func (c *Card) Measure(note Note) Rect {
	if c.measuredFor == note.Text && c.size.W > 0 {
		return c.size
	}
	lines := renderCard(note, false, true)
	width := 0
	for _, line := range lines {
		if w := segmentsWidth(line); w > width {
			width = w
		}
	}
	c.size = Rect{
		W: float64(width) * cellWidthPx,
		H: float64(len(lines)) * cellHeightPx,
	}
	c.measuredFor = note.Text
	return c.size
}

func (c *Card) Size() Rect {
	return c.size
}

// BeginDrag starts a drag from the pressed cell. Picking a card up raises it.
func (c *Card) BeginDrag(col, row int) intent {
	if !c.Active() {
		return nil
	}
	c.drag = &dragState{fromCol: col, fromRow: row}
	return focusIntent{id: c.noteID}
}

func (c *Card) DragTo(col, row int) {
	if c.drag == nil || !c.Active() {
		return
	}
	c.drag.dx = col - c.drag.fromCol
	c.drag.dy = row - c.drag.fromRow
}

func (c *Card) Dragging() bool {
	return c.drag != nil
}

// DragOffset is the ephemeral offset in cells while a drag is in progress.
func (c *Card) DragOffset() (int, int) {
	if c.drag == nil {
		return 0, 0
	}
	return c.drag.dx, c.drag.dy
}

// EndDrag commits the note's pre-drag position plus the whole drag offset.
func (c *Card) EndDrag(note Note) intent {
	if c.drag == nil {
		return nil
	}
	dx, dy := c.drag.dx, c.drag.dy
	c.drag = nil
	return commitDragIntent{
		id: c.noteID,
		x:  note.X + float64(dx)*cellWidthPx,
		y:  note.Y + float64(dy)*cellHeightPx,
	}
}

// Shred switches the card to Disintegrating at anchor and returns the frame
// loop together with the deferred removal of the note.
func (c *Card) Shred(anchor Anchor, rng *rand.Rand, fps int) (tea.Cmd, error) {
	if !c.Active() {
		return nil, nil
	}
	effect, err := NewDisintegration(c.size, anchor, rng)
	if err != nil {
		return nil, err
	}

	c.state = cardDisintegrating
	c.drag = nil
	c.effect = effect
	c.loop = newFrameLoop(c.noteID, fps)

	id := c.noteID
	return tea.Batch(
		c.loop.Start(),
		tea.Tick(shredDuration, func(time.Time) tea.Msg {
			return noteRemovedMsg{id: id}
		}),
	), nil
}

// Frame advances the dust one step for a frame tick of this card's loop.
func (c *Card) Frame(msg frameMsg) tea.Cmd {
	if c.loop == nil || c.effect == nil || !c.loop.Accept(msg) {
		return nil
	}
	if finished := c.effect.Step(); finished {
		c.loop.Cancel()
		return nil
	}
	return c.loop.Next()
}

// Unmount stops the frame loop when the card leaves the desk.
func (c *Card) Unmount() {
	if c.loop != nil {
		c.loop.Cancel()
	}
}

func (c *Card) Effect() *Disintegration {
	return c.effect
}

// closeHit reports whether the cell lies on the close affordance of a card
// drawn in box.
func closeHit(box cellRect, col, row int) bool {
	right := box.Col + box.W - 2
	return row == box.Row+1 && col >= right-closeButtonCells && col < right
}

func wrapText(text string, width int) []string {
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	for len(lines) < minTextLines {
		lines = append(lines, "")
	}
	return lines
}

func refID(id string) string {
	if len(id) > 6 {
		id = id[:6]
	}
	return "#" + strings.ToUpper(id)
}

func padTo(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// spread places left and right at both ends of a width-wide line.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderCard lays a note out as rows of toned segments.
func renderCard(note Note, selected, showClose bool) [][]segment {
	edge := toneEdge
	if selected {
		edge = toneEdgeSelected
	}
	row := func(inner ...segment) []segment {
		line := []segment{{"│ ", edge}}
		line = append(line, inner...)
		return append(line, segment{" │", edge})
	}

	var lines [][]segment
	lines = append(lines, []segment{{"╭" + strings.Repeat("─", cardWidthCells-2) + "╮", edge}})

	deco := strings.Repeat("▀", 10)
	closeText := strings.Repeat(" ", closeButtonCells)
	if showClose {
		closeText = closeButton
	}
	lines = append(lines, row(
		segment{deco, toneInk},
		segment{strings.Repeat(" ", cardInnerWidth-10-closeButtonCells), tonePaper},
		segment{closeText, toneClose},
	))

	lines = append(lines, row(segment{spread("REF.ID "+refID(note.ID), "MEMO-RITE", cardInnerWidth), toneFaint}))
	lines = append(lines, row(segment{strings.Repeat("┄", cardInnerWidth), toneFaint}))

	for _, text := range wrapText(note.Text, cardInnerWidth) {
		lines = append(lines, row(segment{padTo(text, cardInnerWidth), toneInk}))
	}

	lines = append(lines, row(segment{strings.Repeat(" ", cardInnerWidth), tonePaper}))
	lines = append(lines, row(segment{spread("CREATED AT", "▌▏█▕▐", cardInnerWidth), toneFaint}))
	lines = append(lines, row(segment{padTo(note.CreatedAt, cardInnerWidth), toneInk}))
	lines = append(lines, []segment{{"╰" + strings.Repeat("─", cardWidthCells-2) + "╯", edge}})
	return lines
}

func segmentsWidth(line []segment) int {
	w := 0
	for _, seg := range line {
		w += lipgloss.Width(seg.text)
	}
	return w
}
