package main

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func (m model) Init() tea.Cmd {
	return m.typewriter.Focus()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.typewriter.SetWidth(msg.Width)
		return m, nil

	case notePrintedMsg:
		note := m.desk.CreateNote(msg.text)
		card := newCard(note.ID)
		card.Measure(note)
		m.cards[note.ID] = card
		m.selected = note.ID
		m.desk.EndPrinting()
		m.logger.Debug("note printed", "id", note.ID, "stack_order", note.StackOrder)
		if m.mode == ModeTyping {
			return m, m.typewriter.Focus()
		}
		return m, nil

	case notePolishedMsg:
		// The creation lock stays held from the polish request through printing.
		return m, printAfter(msg.text)

	case frameMsg:
		card, ok := m.cards[msg.noteID]
		if !ok {
			return m, nil
		}
		return m, card.Frame(msg)

	case noteRemovedMsg:
		if card, ok := m.cards[msg.id]; ok {
			card.Unmount()
			delete(m.cards, msg.id)
		}
		m.desk.Delete(msg.id)
		m.logger.Debug("note removed", "id", msg.id)
		if m.selected == msg.id {
			m.selected = ""
			m.cycleSelection(0)
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		m.errorMessage = ""
		m.successMessage = ""

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.help {
			m.help = false
			return m, nil
		}

		if msg.Type == tea.KeyTab {
			return m.toggleMode()
		}

		switch m.mode {
		case ModeDesk:
			return m.handleDeskKey(msg)
		default:
			return m.handleTypingKey(msg)
		}
	}

	return m, nil
}

func (m model) toggleMode() (tea.Model, tea.Cmd) {
	if m.mode == ModeTyping {
		m.mode = ModeDesk
		m.typewriter.Blur()
		if _, ok := m.desk.Get(m.selected); !ok {
			m.cycleSelection(0)
		}
		return m, nil
	}
	m.mode = ModeTyping
	if m.desk.Printing() {
		return m, nil
	}
	return m, m.typewriter.Focus()
}

func (m model) handleTypingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Every typewriter action is locked while a note is being printed.
	if m.desk.Printing() {
		return m, nil
	}

	switch msg.String() {
	case "enter":
		text := m.typewriter.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		return m, m.printNote(text)
	case "ctrl+g":
		text := m.typewriter.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		return m, m.requestPolishedNote(text)
	case "ctrl+r":
		m.typewriter.SetValue(randomQuote(m.rng))
		return m, nil
	case "ctrl+u", "ctrl+l":
		m.typewriter.Reset()
		return m, nil
	case "ctrl+v":
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = "clipboard unavailable"
			m.logger.Warn("clipboard read failed", "error", err)
			return m, nil
		}
		m.typewriter.SetValue(m.typewriter.Value() + cleanClipboardText(text))
		return m, nil
	}

	return m, m.typewriter.Update(msg)
}

func (m model) handleDeskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc", "escape":
		m.mode = ModeTyping
		if m.desk.Printing() {
			return m, nil
		}
		return m, m.typewriter.Focus()
	case "?":
		m.help = true
		return m, nil
	case "[":
		m.cycleSelection(-1)
		return m, nil
	case "]":
		m.cycleSelection(1)
		return m, nil
	case "f", "enter":
		if _, ok := m.desk.Get(m.selected); ok {
			m.applyIntent(focusIntent{id: m.selected})
		}
		return m, nil
	case "d", "x", "delete":
		if _, ok := m.desk.Get(m.selected); !ok {
			return m, nil
		}
		return m, m.applyIntent(shredIntent{id: m.selected})
	case "y":
		note, ok := m.desk.Get(m.selected)
		if !ok {
			return m, nil
		}
		if err := writeClipboardText(note.Text); err != nil {
			m.errorMessage = "clipboard unavailable"
			m.logger.Warn("clipboard write failed", "error", err)
			return m, nil
		}
		m.successMessage = "Copied " + refID(note.ID)
		return m, nil
	case "S":
		m.exportSnapshot()
		return m, nil
	case "h", "left", "H", "shift+left",
		"l", "right", "L", "shift+right",
		"k", "up", "K", "shift+up",
		"j", "down", "J", "shift+down":
		return m.handleNudge(key, m.getMoveSpeed(key))
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y >= m.deskRows() {
			return m, nil
		}
		note, box, ok := m.cardAt(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.selected = note.ID
		// The close affordance swallows the press: no focus, no drag.
		if closeHit(box, msg.X, msg.Y) {
			return m, m.applyIntent(shredIntent{id: note.ID})
		}
		card := m.cards[note.ID]
		m.dragging = note.ID
		return m, m.applyIntent(card.BeginDrag(msg.X, msg.Y))

	case tea.MouseActionMotion:
		if card, ok := m.cards[m.dragging]; ok {
			card.DragTo(msg.X, msg.Y)
		}
		return m, nil

	case tea.MouseActionRelease:
		id := m.dragging
		m.dragging = ""
		card, ok := m.cards[id]
		if !ok {
			return m, nil
		}
		card.DragTo(msg.X, msg.Y)
		note, ok := m.desk.Get(id)
		if !ok {
			return m, nil
		}
		return m, m.applyIntent(card.EndDrag(note))
	}
	return m, nil
}

// applyIntent interprets what a card asked for.
func (m *model) applyIntent(in intent) tea.Cmd {
	switch in := in.(type) {
	case focusIntent:
		m.desk.Focus(in.id)
	case commitDragIntent:
		m.desk.CommitDrag(in.id, in.x, in.y)
	case shredIntent:
		return m.shred(in.id)
	}
	return nil
}

func (m *model) shred(id string) tea.Cmd {
	note, ok := m.desk.Get(id)
	if !ok {
		return nil
	}
	card, ok := m.cards[id]
	if !ok || !card.Active() {
		return nil
	}
	size := card.Measure(note)
	x, y := m.cardOrigin(note, size)
	cmd, err := card.Shred(Anchor{
		X:          x,
		Y:          y,
		Rotation:   note.Rotation,
		StackOrder: note.StackOrder,
	}, m.rng, m.config.FrameRate)
	if err != nil {
		m.logger.Error("shred failed", "id", id, "error", err)
		return nil
	}
	if m.dragging == id {
		m.dragging = ""
	}
	if m.selected == id {
		m.selected = ""
		m.cycleSelection(0)
	}
	m.logger.Debug("note shredding", "id", id, "particles", card.Effect().Len())
	return cmd
}

// printNote takes the creation lock and prints text after the processing
// delay.
func (m *model) printNote(text string) tea.Cmd {
	if !m.desk.BeginPrinting() {
		return nil
	}
	m.typewriter.Reset()
	m.typewriter.Blur()
	return printAfter(text)
}

// requestPolishedNote takes the creation lock for the whole polish round trip
// plus the printing delay.
func (m *model) requestPolishedNote(text string) tea.Cmd {
	if !m.desk.BeginPrinting() {
		return nil
	}
	m.typewriter.Reset()
	m.typewriter.Blur()
	polisher, logger := m.polisher, m.logger
	return func() tea.Msg {
		return notePolishedMsg{text: polishText(context.Background(), polisher, text, logger)}
	}
}

func printAfter(text string) tea.Cmd {
	return tea.Tick(printDelay, func(time.Time) tea.Msg {
		return notePrintedMsg{text: text}
	})
}

func (m *model) exportSnapshot() {
	notes := m.desk.Stacked()
	sizes := make(map[string]Rect, len(notes))
	for _, note := range notes {
		if card, ok := m.cards[note.ID]; ok {
			sizes[note.ID] = card.Measure(note)
		}
	}
	path, err := m.config.GetExportPath(snapshotFilename(time.Now()))
	if err == nil {
		err = exportDeskPNG(path, notes, sizes)
	}
	if err != nil {
		m.errorMessage = err.Error()
		m.logger.Error("snapshot export failed", "error", err)
		return
	}
	m.successMessage = "Saved " + path
}
