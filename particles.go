package main

import (
	"errors"
	"math"
	"math/rand/v2"
	"sort"
)

// Sampling and motion tuning for the shred effect.
const (
	// particleGap is the sampling stride in px; every third px in each axis
	particleGap = 3.0
	// particlePadding is the margin around the card the dust may fly into
	particlePadding = 60.0
	// particleSpeed is the width of the symmetric velocity range, px per frame
	particleSpeed = 4.0
	// particleMinDecay and particleDecaySpread bound the alpha lost per frame
	particleMinDecay    = 0.015
	particleDecaySpread = 0.03
)

// braille dot bits indexed by [dotY][dotX] within a 2x4 cell
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

var ErrUnmeasured = errors.New("disintegration: card size not measured")

// Rect is a measured card size in px.
type Rect struct {
	W float64
	H float64
}

// Anchor places the effect on the desk: top-left of the card in desk px, its
// rotation in degrees and the stack order it dissolves at.
type Anchor struct {
	X          float64
	Y          float64
	Rotation   float64
	StackOrder int
}

type particle struct {
	x     float64
	y     float64
	vx    float64
	vy    float64
	alpha float64
	decay float64
}

// Disintegration is one ephemeral dust simulation for one deleted card.
type Disintegration struct {
	rect      Rect
	anchor    Anchor
	particles []particle
	frame     int
	done      bool
}

// dustCell is a braille glyph to overlay at a desk cell.
type dustCell struct {
	Col   int
	Row   int
	Glyph rune
	Alpha float64
}

func NewDisintegration(rect Rect, anchor Anchor, rng *rand.Rand) (*Disintegration, error) {
	if !(rect.W > 0 && rect.H > 0) {
		return nil, ErrUnmeasured
	}

	cols := int(math.Ceil(rect.W / particleGap))
	rows := int(math.Ceil(rect.H / particleGap))
	particles := make([]particle, 0, cols*rows)

	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			offsetX := (rng.Float64() - 0.5) * particleGap
			offsetY := (rng.Float64() - 0.5) * particleGap
			particles = append(particles, particle{
				x:     particlePadding + float64(i)*particleGap + offsetX,
				y:     particlePadding + float64(j)*particleGap + offsetY,
				vx:    (rng.Float64() - 0.5) * particleSpeed,
				vy:    (rng.Float64() - 0.5) * particleSpeed,
				alpha: 1,
				decay: rng.Float64()*particleDecaySpread + particleMinDecay,
			})
		}
	}

	return &Disintegration{
		rect:      rect,
		anchor:    anchor,
		particles: particles,
	}, nil
}

// settleFrames is the most frames any particle can stay visible, plus the
// frame that observes the field empty.
func settleFrames() int {
	return int(math.Ceil(1/particleMinDecay)) + 1
}

// Step advances the simulation one frame. It returns true exactly once, on the
// frame that finds no particle left with positive alpha.
func (d *Disintegration) Step() bool {
	if d.done {
		return false
	}

	active := false
	for i := range d.particles {
		p := &d.particles[i]
		if p.alpha <= 0 {
			continue
		}
		active = true
		p.x += p.vx
		p.y += p.vy
		p.alpha -= p.decay
	}
	d.frame++

	if !active {
		d.done = true
		return true
	}
	return false
}

func (d *Disintegration) Done() bool {
	return d.done
}

func (d *Disintegration) Frame() int {
	return d.frame
}

// Len is the number of particles sampled at frame 0.
func (d *Disintegration) Len() int {
	return len(d.particles)
}

func (d *Disintegration) Active() int {
	n := 0
	for _, p := range d.particles {
		if p.alpha > 0 {
			n++
		}
	}
	return n
}

func (d *Disintegration) Anchor() Anchor {
	return d.anchor
}

// Project maps the visible particles onto desk cells as braille dots. Each cell
// carries the strongest alpha among its dots.
func (d *Disintegration) Project() []dustCell {
	type key struct{ col, row int }

	centerX := particlePadding + d.rect.W/2
	centerY := particlePadding + d.rect.H/2
	sin, cos := math.Sincos(d.anchor.Rotation * math.Pi / 180)
	dotW := cellWidthPx / 2
	dotH := cellHeightPx / 4

	cells := make(map[key]*dustCell)
	for _, p := range d.particles {
		if p.alpha <= 0 {
			continue
		}

		rx := p.x - centerX
		ry := p.y - centerY
		px := d.anchor.X - particlePadding + centerX + rx*cos - ry*sin
		py := d.anchor.Y - particlePadding + centerY + rx*sin + ry*cos

		col := int(math.Floor(px / cellWidthPx))
		row := int(math.Floor(py / cellHeightPx))
		dotX := int((px - float64(col)*cellWidthPx) / dotW)
		dotY := int((py - float64(row)*cellHeightPx) / dotH)
		dotX = clampInt(dotX, 0, 1)
		dotY = clampInt(dotY, 0, 3)

		k := key{col, row}
		c, ok := cells[k]
		if !ok {
			c = &dustCell{Col: col, Row: row, Glyph: 0x2800}
			cells[k] = c
		}
		c.Glyph |= brailleBits[dotY][dotX]
		if p.alpha > c.Alpha {
			c.Alpha = p.alpha
		}
	}

	out := make([]dustCell, 0, len(cells))
	for _, c := range cells {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
