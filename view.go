package main

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type tone uint8

const (
	toneDesk tone = iota
	tonePaper
	toneEdge
	toneEdgeSelected
	toneInk
	toneFaint
	toneClose
	toneDust
)

const dustLevels = 8

var toneStyles = func() map[tone]lipgloss.Style {
	paper := lipgloss.Color("255")
	styles := map[tone]lipgloss.Style{
		toneDesk:         lipgloss.NewStyle(),
		tonePaper:        lipgloss.NewStyle().Background(paper),
		toneEdge:         lipgloss.NewStyle().Background(paper).Foreground(lipgloss.Color("250")),
		toneEdgeSelected: lipgloss.NewStyle().Background(paper).Foreground(lipgloss.Color("160")),
		toneInk:          lipgloss.NewStyle().Background(paper).Foreground(lipgloss.Color("234")),
		toneFaint:        lipgloss.NewStyle().Background(paper).Foreground(lipgloss.Color("246")),
		toneClose:        lipgloss.NewStyle().Background(lipgloss.Color("232")).Foreground(paper).Bold(true),
	}
	for i := 0; i < dustLevels; i++ {
		styles[toneDust+tone(i)] = lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("%d", 237+i*2)))
	}
	return styles
}()

func dustTone(alpha float64) tone {
	level := int(math.Ceil(alpha*dustLevels)) - 1
	return toneDust + tone(clampInt(level, 0, dustLevels-1))
}

type cell struct {
	r    rune
	tone tone
}

// grid is the desk area. A wide rune occupies its cell plus a following
// placeholder cell with r == 0.
type grid struct {
	width  int
	height int
	cells  [][]cell
}

func newGrid(width, height int) *grid {
	cells := make([][]cell, height)
	for y := range cells {
		cells[y] = make([]cell, width)
		for x := range cells[y] {
			cells[y][x] = cell{r: ' ', tone: toneDesk}
		}
	}
	return &grid{width: width, height: height, cells: cells}
}

func (g *grid) inside(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

func (g *grid) set(col, row int, r rune, t tone) {
	if !g.inside(col, row) {
		return
	}
	g.release(col, row)
	g.cells[row][col] = cell{r: r, tone: t}
}

// release blanks the other half of a wide rune covering the cell.
func (g *grid) release(col, row int) {
	c := g.cells[row][col]
	switch {
	case c.r == 0 && col > 0:
		g.cells[row][col-1].r = ' '
	case runewidth.RuneWidth(c.r) == 2 && col+1 < g.width:
		g.cells[row][col+1].r = ' '
	}
}

func (g *grid) paint(col, row int, text string, t tone) int {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if w == 2 {
			switch {
			case !g.inside(col, row) || !g.inside(col+1, row):
				g.set(col, row, ' ', t)
				g.set(col+1, row, ' ', t)
			default:
				g.set(col, row, r, t)
				g.release(col+1, row)
				g.cells[row][col+1] = cell{r: 0, tone: t}
			}
		} else {
			g.set(col, row, r, t)
		}
		col += w
	}
	return col
}

func (g *grid) paintCard(box cellRect, lines [][]segment) {
	for i, line := range lines {
		col := box.Col
		for _, seg := range line {
			col = g.paint(col, box.Row+i, seg.text, seg.tone)
		}
	}
}

func (g *grid) paintDust(cells []dustCell) {
	for _, c := range cells {
		if !g.inside(c.Col, c.Row) {
			continue
		}
		g.set(c.Col, c.Row, c.Glyph, dustTone(c.Alpha))
	}
}

func (g *grid) Lines() []string {
	out := make([]string, g.height)
	for y, row := range g.cells {
		var line strings.Builder
		var run strings.Builder
		current := toneDesk
		flush := func() {
			if run.Len() == 0 {
				return
			}
			line.WriteString(toneStyles[current].Render(run.String()))
			run.Reset()
		}
		for _, c := range row {
			if c.r == 0 {
				continue
			}
			if c.tone != current {
				flush()
				current = c.tone
			}
			run.WriteRune(c.r)
		}
		flush()
		out[y] = line.String()
	}
	return out
}

// deskRows is the height of the desk area above the typewriter and status line.
func (m model) deskRows() int {
	rows := m.height - lipgloss.Height(m.typewriter.View(m.desk.Printing(), m.mode == ModeTyping)) - 1
	if rows < 1 {
		rows = 1
	}
	return rows
}

// anchorPx is the desk anchor, bottom centre of the desk area, in px.
func (m model) anchorPx() (float64, float64) {
	return float64(m.width) / 2 * cellWidthPx, float64(m.deskRows()) * cellHeightPx
}

// cardOrigin is the top-left of a note's card in desk px, ignoring any drag in
// progress.
func (m model) cardOrigin(note Note, size Rect) (float64, float64) {
	ax, ay := m.anchorPx()
	return ax + note.X - size.W/2, ay + note.Y - size.H
}

func (m model) cardBox(note Note, card *Card) cellRect {
	size := card.Size()
	x, y := m.cardOrigin(note, size)
	dx, dy := card.DragOffset()
	return cellRect{
		Col: int(math.Round(x/cellWidthPx)) + dx,
		Row: int(math.Round(y/cellHeightPx)) + dy,
		W:   int(math.Round(size.W / cellWidthPx)),
		H:   int(math.Round(size.H / cellHeightPx)),
	}
}

// cardAt finds the topmost active card under a desk cell.
func (m model) cardAt(col, row int) (Note, cellRect, bool) {
	stacked := m.desk.Stacked()
	for i := len(stacked) - 1; i >= 0; i-- {
		note := stacked[i]
		card, ok := m.cards[note.ID]
		if !ok || !card.Active() {
			continue
		}
		box := m.cardBox(note, card)
		if box.Contains(col, row) {
			return note, box, true
		}
	}
	return Note{}, cellRect{}, false
}

func (m model) renderDesk(width, height int) []string {
	g := newGrid(width, height)

	type layer struct {
		z     int
		paint func()
	}
	var layers []layer
	for _, note := range m.desk.Stacked() {
		note := note
		card, ok := m.cards[note.ID]
		if !ok {
			continue
		}
		if card.Active() {
			box := m.cardBox(note, card)
			z := note.StackOrder
			if card.Dragging() {
				z = math.MaxInt
			}
			selected := note.ID == m.selected && m.mode == ModeDesk
			layers = append(layers, layer{z: z, paint: func() {
				g.paintCard(box, renderCard(note, selected, true))
			}})
			continue
		}
		if effect := card.Effect(); effect != nil && !effect.Done() {
			layers = append(layers, layer{z: effect.Anchor().StackOrder + 100, paint: func() {
				g.paintDust(effect.Project())
			}})
		}
	}

	sort.SliceStable(layers, func(i, j int) bool { return layers[i].z < layers[j].z })
	for _, l := range layers {
		l.paint()
	}

	if m.desk.Len() == 0 {
		title := "MEMO RITE"
		sub := "为数字梦想家设计"
		g.paint((width-lipgloss.Width(title))/2, 1, title, toneDesk)
		g.paint((width-lipgloss.Width(sub))/2, 2, sub, toneDesk)
	}
	return g.Lines()
}

func (m model) View() string {
	if m.width < 1 || m.height < 1 {
		return ""
	}
	if m.help {
		return m.helpView()
	}

	var result strings.Builder
	for _, line := range m.renderDesk(m.width, m.deskRows()) {
		result.WriteString(line)
		result.WriteString("\n")
	}
	result.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		m.typewriter.View(m.desk.Printing(), m.mode == ModeTyping)))
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) modeString() string {
	switch m.mode {
	case ModeDesk:
		return "DESK"
	default:
		return "TYPE"
	}
}

func (m model) statusLine() string {
	var status string
	switch {
	case m.errorMessage != "":
		status = "Error: " + m.errorMessage
	case m.successMessage != "":
		status = m.successMessage
	case m.desk.Printing():
		status = "Printing..."
	case m.mode == ModeDesk:
		status = "[/] select  hjkl move  f raise  d shred  y copy  S snapshot  tab type  ? help"
	default:
		status = "enter print  ctrl+g polish  ctrl+r random  ctrl+u clear  tab desk  ctrl+c quit"
	}
	line := fmt.Sprintf("[%s] %d notes | %s", m.modeString(), m.desk.Len(), status)
	return lipgloss.NewStyle().Faint(true).MaxWidth(m.width).Render(line)
}

func (m model) helpView() string {
	helpLines := []string{
		"MEMO•RITE Help",
		"==============",
		"",
		"Typewriter:",
		"-----------",
		"  enter            Print the note as typed",
		"  ctrl+g           Polish the note, then print it",
		"  ctrl+r           Fill the input with a random quote",
		"  ctrl+u / ctrl+l  Clear the input",
		"  ctrl+v           Paste from the clipboard",
		"  alt+enter        New line",
		"",
		"Desk:",
		"-----",
		"  mouse drag       Move a card (picking it up brings it to the top)",
		"  click [x]        Shred a card",
		"  [ / ]            Select previous/next card",
		"  h/j/k/l, arrows  Move the selected card",
		"  Shift+h/j/k/l    Move 2x faster",
		"  f / enter        Bring the selected card to the top",
		"  d / x            Shred the selected card",
		"  y                Copy the selected card's text",
		"  S                Save a PNG snapshot of the desk",
		"",
		"General:",
		"  tab              Switch between typewriter and desk",
		"  ?                Toggle this help screen (desk)",
		"  ctrl+c           Quit",
	}
	if len(helpLines) > m.height {
		helpLines = helpLines[:m.height]
	}
	return strings.Join(helpLines, "\n")
}
