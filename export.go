package main

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// exportDeskPNG draws the notes, bottom of the stack first, as a picture of the
// desk. Each card keeps its measured size and tilt.
func exportDeskPNG(filename string, notes []Note, sizes map[string]Rect) error {
	if len(notes) == 0 {
		return fmt.Errorf("nothing to export")
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, note := range notes {
		size := sizes[note.ID]
		left := note.X - size.W/2
		top := note.Y - size.H
		minX = math.Min(minX, left)
		minY = math.Min(minY, top)
		maxX = math.Max(maxX, left+size.W)
		maxY = math.Max(maxY, note.Y)
	}

	padding := 40.0
	minX -= padding
	minY -= padding
	maxX += padding
	maxY += padding

	imageWidth := int(math.Ceil(maxX - minX))
	imageHeight := int(math.Ceil(maxY - minY))
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.RGBA{0xf0, 0xf2, 0xf5, 0xff})
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    13,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	for _, note := range notes {
		size, ok := sizes[note.ID]
		if !ok || size.W <= 0 || size.H <= 0 {
			continue
		}
		drawCardPNG(dc, note, size, note.X-size.W/2-minX, note.Y-size.H-minY)
	}

	return dc.SavePNG(filename)
}

func drawCardPNG(dc *gg.Context, note Note, size Rect, x, y float64) {
	dc.Push()
	defer dc.Pop()
	dc.RotateAbout(gg.Radians(note.Rotation), x+size.W/2, y+size.H/2)

	dc.SetRGBA(0, 0, 0, 0.08)
	dc.DrawRoundedRectangle(x+2, y+4, size.W, size.H, 8)
	dc.Fill()

	dc.SetColor(color.White)
	dc.DrawRoundedRectangle(x, y, size.W, size.H, 8)
	dc.Fill()

	dc.SetHexColor("#1f2937")
	dc.DrawRectangle(x, y, size.W/3, 4)
	dc.Fill()

	margin := 24.0
	dc.SetHexColor("#9ca3af")
	dc.DrawString("REF.ID "+refID(note.ID), x+margin, y+margin+8)
	dc.DrawStringAnchored("MEMO-RITE", x+size.W-margin, y+margin+8, 1, 0)

	dc.SetHexColor("#1f2937")
	dc.DrawStringWrapped(note.Text, x+margin, y+margin+24, 0, 0, size.W-2*margin, 1.8, gg.AlignLeft)

	dc.SetHexColor("#4b5563")
	dc.DrawString(note.CreatedAt, x+margin, y+size.H-margin)
}

func snapshotFilename(now time.Time) string {
	return "memorite-" + now.Format("20060102-150405") + ".png"
}
