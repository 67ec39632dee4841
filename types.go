package main

import (
	"log/slog"
	"math/rand/v2"
)

type model struct {
	width          int
	height         int
	mode           Mode
	help           bool
	desk           *Desk
	cards          map[string]*Card
	selected       string
	dragging       string
	typewriter     Typewriter
	polisher       Polisher
	config         *Config
	logger         *slog.Logger
	rng            *rand.Rand
	errorMessage   string
	successMessage string
}

// cellRect is a card's box on the desk in terminal cells.
type cellRect struct {
	Col int
	Row int
	W   int
	H   int
}

func (r cellRect) Contains(col, row int) bool {
	return col >= r.Col && col < r.Col+r.W && row >= r.Row && row < r.Row+r.H
}

type notePrintedMsg struct {
	text string
}

type notePolishedMsg struct {
	text string
}
