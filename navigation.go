package main

import tea "github.com/charmbracelet/bubbletea"

// handleNudge moves the selected card by whole cells from the keyboard. A nudge
// is a tiny drag: the card is raised, then its new position committed.
func (m model) handleNudge(key string, speed int) (tea.Model, tea.Cmd) {
	note, ok := m.desk.Get(m.selected)
	if !ok {
		return m, nil
	}
	card, ok := m.cards[note.ID]
	if !ok || !card.Active() {
		return m, nil
	}

	dx, dy := 0, 0
	switch key {
	case "h", "left", "H", "shift+left":
		dx = -speed
	case "l", "right", "L", "shift+right":
		dx = speed
	case "k", "up", "K", "shift+up":
		dy = -speed
	case "j", "down", "J", "shift+down":
		dy = speed
	}

	m.applyIntent(focusIntent{id: note.ID})
	m.applyIntent(commitDragIntent{
		id: note.ID,
		x:  note.X + float64(dx)*cellWidthPx,
		y:  note.Y + float64(dy)*cellHeightPx,
	})
	return m, nil
}

func (m model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

// cycleSelection walks the active cards in stack order.
func (m *model) cycleSelection(step int) {
	var ids []string
	for _, note := range m.desk.Stacked() {
		if card, ok := m.cards[note.ID]; ok && card.Active() {
			ids = append(ids, note.ID)
		}
	}
	if len(ids) == 0 {
		m.selected = ""
		return
	}
	current := -1
	for i, id := range ids {
		if id == m.selected {
			current = i
		}
	}
	if current == -1 {
		m.selected = ids[len(ids)-1]
		return
	}
	m.selected = ids[(current+step+len(ids))%len(ids)]
}
