package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type frameMsg struct {
	noteID string
	seq    uint64
}

// frameLoop is a per-card chain of frame ticks. Each tick is only honoured if
// it carries the loop's current sequence, so Cancel stops the chain at the
// next tick without any shared state.
type frameLoop struct {
	noteID   string
	interval time.Duration
	seq      uint64
	running  bool
}

func newFrameLoop(noteID string, fps int) *frameLoop {
	if fps <= 0 {
		fps = defaultFrameRate
	}
	return &frameLoop{
		noteID:   noteID,
		interval: time.Second / time.Duration(fps),
	}
}

func (l *frameLoop) Start() tea.Cmd {
	l.seq++
	l.running = true
	return l.tick()
}

// Accept reports whether msg belongs to this loop's live chain.
func (l *frameLoop) Accept(msg frameMsg) bool {
	return l.running && msg.noteID == l.noteID && msg.seq == l.seq
}

// Next requests the following frame, or nothing once cancelled.
func (l *frameLoop) Next() tea.Cmd {
	if !l.running {
		return nil
	}
	return l.tick()
}

func (l *frameLoop) Cancel() {
	l.running = false
	l.seq++
}

func (l *frameLoop) Running() bool {
	return l.running
}

func (l *frameLoop) tick() tea.Cmd {
	id, seq := l.noteID, l.seq
	return tea.Tick(l.interval, func(time.Time) tea.Msg {
		return frameMsg{noteID: id, seq: seq}
	})
}
