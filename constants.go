package main

import "time"

type Mode int

const (
	ModeTyping Mode = iota
	ModeDesk
)

type cardState int

const (
	cardActive cardState = iota
	cardDisintegrating
)

// Terminal cells are treated as 8x16 px so card and particle geometry can stay
// in pixels.
const (
	cellWidthPx  = 8.0
	cellHeightPx = 16.0
)

const (
	printDelay        = 300 * time.Millisecond
	shredDuration     = 800 * time.Millisecond
	defaultFrameRate  = 60
	initialStackOrder = 10
	softCharLimit     = 120
	noteDateLayout    = "2006.1.2"
)

// Placement jitter for new notes, px relative to the desk anchor.
const (
	jitterMinX  = -30.0
	jitterMaxX  = 30.0
	jitterMinY  = -167.5
	jitterMaxY  = -145.0
	maxRotation = 6.0
)

const (
	cardWidthCells   = 36
	cardInnerWidth   = cardWidthCells - 4
	minTextLines     = 3
	closeButton      = "[x]"
	closeButtonCells = 3
	typewriterLines  = 3
)
