package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	machineStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#8f1d15")).
			Background(lipgloss.Color("#c92a1e")).
			Padding(0, 1)
	brandStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2a0805")).
			Foreground(lipgloss.Color("#d1d1d1")).
			Bold(true).
			Padding(0, 1)
	screenStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#222222")).
			Background(lipgloss.Color("#0a0a0a"))
	counterStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#0a0a0a")).
			Foreground(lipgloss.Color("241"))
	keyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#c92a1e")).
			Foreground(lipgloss.Color("#ffffff"))
	keyDisabledStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#c92a1e")).
				Foreground(lipgloss.Color("#e6a09a"))
)

// Typewriter is the input device: a small textarea with an advisory length
// counter and the print, random and clear actions.
type Typewriter struct {
	input textarea.Model
	width int
}

func newTypewriter() Typewriter {
	ta := textarea.New()
	ta.Placeholder = "在此输入内容..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = ""
	ta.SetHeight(typewriterLines)
	ta.SetWidth(cardWidthCells)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ta.Focus()
	return Typewriter{input: ta, width: cardWidthCells + 6}
}

func (t Typewriter) Value() string {
	return t.input.Value()
}

func (t *Typewriter) SetValue(s string) {
	t.input.SetValue(s)
}

func (t *Typewriter) Reset() {
	t.input.Reset()
}

// Count is the number of runes typed, shown against the soft limit.
func (t Typewriter) Count() int {
	return utf8.RuneCountInString(t.input.Value())
}

func (t *Typewriter) Focus() tea.Cmd {
	return t.input.Focus()
}

func (t *Typewriter) Blur() {
	t.input.Blur()
}

func (t *Typewriter) SetWidth(termWidth int) {
	w := termWidth - 6
	if w > 56 {
		w = 56
	}
	if w < 12 {
		w = 12
	}
	t.input.SetWidth(w)
	t.width = w + 6
}

func (t *Typewriter) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

func (t Typewriter) View(printing, focused bool) string {
	inner := t.width - 4

	brand := lipgloss.PlaceHorizontal(inner, lipgloss.Center, brandStyle.Render("● MEMO•RITE"),
		lipgloss.WithWhitespaceBackground(lipgloss.Color("#c92a1e")))

	counter := counterStyle.Render(fmt.Sprintf("%d/%d", t.Count(), softCharLimit))
	counterLine := lipgloss.PlaceHorizontal(inner-2, lipgloss.Right, counter,
		lipgloss.WithWhitespaceBackground(lipgloss.Color("#0a0a0a")))
	screen := screenStyle.Render(lipgloss.JoinVertical(lipgloss.Left, t.input.View(), counterLine))

	keys := keyStyle
	if printing || !focused {
		keys = keyDisabledStyle
	}
	label := "[enter] 打印  [^G] 润色  [^R] 随机  [^U] 清除"
	if printing {
		label = "打印中..."
	}
	controls := lipgloss.PlaceHorizontal(inner, lipgloss.Center, keys.Render(label),
		lipgloss.WithWhitespaceBackground(lipgloss.Color("#c92a1e")))

	return machineStyle.Width(t.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, brand, screen, controls))
}
