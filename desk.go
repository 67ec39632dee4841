package main

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Note is a printed memo. Text, CreatedAt and Rotation never change after
// creation; X/Y move only through CommitDrag and StackOrder only through Focus.
type Note struct {
	ID         string
	Text       string
	CreatedAt  string
	X          float64
	Y          float64
	Rotation   float64
	StackOrder int
}

// Desk owns the note collection, the stacking counter and the creation lock.
// It is the single writer for all of them.
type Desk struct {
	notes          []Note
	nextStackOrder int
	printing       bool
	rng            *rand.Rand
	clock          func() time.Time
	newID          func() string
	dateLayout     string
}

func NewDesk(rng *rand.Rand) *Desk {
	return &Desk{
		notes:          make([]Note, 0),
		nextStackOrder: initialStackOrder,
		rng:            rng,
		clock:          time.Now,
		newID:          uuid.NewString,
		dateLayout:     noteDateLayout,
	}
}

// CreateNote appends a note with a fresh id, jittered placement and the next
// stack order.
func (d *Desk) CreateNote(text string) Note {
	note := Note{
		ID:         d.newID(),
		Text:       text,
		CreatedAt:  d.clock().Format(d.dateLayout),
		X:          jitterMinX + d.rng.Float64()*(jitterMaxX-jitterMinX),
		Y:          jitterMaxY - d.rng.Float64()*(jitterMaxY-jitterMinY),
		Rotation:   -maxRotation + d.rng.Float64()*2*maxRotation,
		StackOrder: d.takeStackOrder(),
	}
	d.notes = append(d.notes, note)
	return note
}

func (d *Desk) takeStackOrder() int {
	d.nextStackOrder++
	return d.nextStackOrder
}

// Focus moves the note to the top of the stack. Focusing the top note again
// still consumes a new order.
func (d *Desk) Focus(id string) {
	idx := d.index(id)
	if idx == -1 {
		return
	}
	d.notes[idx].StackOrder = d.takeStackOrder()
}

func (d *Desk) CommitDrag(id string, x, y float64) {
	idx := d.index(id)
	if idx == -1 {
		return
	}
	d.notes[idx].X = x
	d.notes[idx].Y = y
}

// Delete removes the note. It is called once the card's shred animation has
// had its full duration.
func (d *Desk) Delete(id string) {
	idx := d.index(id)
	if idx == -1 {
		return
	}
	d.notes = append(d.notes[:idx], d.notes[idx+1:]...)
}

func (d *Desk) Get(id string) (Note, bool) {
	idx := d.index(id)
	if idx == -1 {
		return Note{}, false
	}
	return d.notes[idx], true
}

func (d *Desk) Len() int {
	return len(d.notes)
}

// Notes returns a copy of the collection in creation order.
func (d *Desk) Notes() []Note {
	out := make([]Note, len(d.notes))
	copy(out, d.notes)
	return out
}

// Stacked returns a copy of the collection in draw order, bottom first.
func (d *Desk) Stacked() []Note {
	out := d.Notes()
	sort.Slice(out, func(i, j int) bool {
		return out[i].StackOrder < out[j].StackOrder
	})
	return out
}

func (d *Desk) Top() (Note, bool) {
	stacked := d.Stacked()
	if len(stacked) == 0 {
		return Note{}, false
	}
	return stacked[len(stacked)-1], true
}

func (d *Desk) Printing() bool {
	return d.printing
}

// BeginPrinting takes the creation lock. It reports false when a print or
// polish round trip is already in flight.
func (d *Desk) BeginPrinting() bool {
	if d.printing {
		return false
	}
	d.printing = true
	return true
}

func (d *Desk) EndPrinting() {
	d.printing = false
}

func (d *Desk) index(id string) int {
	for i, note := range d.notes {
		if note.ID == id {
			return i
		}
	}
	return -1
}
