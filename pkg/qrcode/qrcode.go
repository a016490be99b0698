package qr

import (
	"bytes"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/skip2/go-qrcode"
)

// Config controls how item labels are rendered.
type Config struct {
	Size          int
	Background    color.Color
	Foreground    color.Color
	DotScale      float64 // Dot radius relative to a module cell, (0, 1]
	RecoveryLevel int
	QuietZone     int     // Quiet zone around the code, in modules
	LogoPath      string  // Optional logo drawn over the center
	LogoScale     float64 // Logo size relative to the label
}

// Default renders a printable black-on-white label.
var Default = Config{
	Size:          512,
	Background:    color.White,
	Foreground:    color.Black,
	DotScale:      0.9,
	RecoveryLevel: int(qrcode.High),
	QuietZone:     2,
	LogoScale:     0.2,
}

// Render draws the content as a QR label with rounded dots and an optional
// center logo, returned as PNG bytes.
func (c Config) Render(content string) ([]byte, error) {
	code, err := qrcode.New(content, qrcode.RecoveryLevel(c.RecoveryLevel))
	if err != nil {
		return nil, err
	}

	matrix := code.Bitmap()
	modules := len(matrix) + 2*c.QuietZone
	cell := float64(c.Size) / float64(modules)

	dc := gg.NewContext(c.Size, c.Size)
	dc.SetColor(c.Background)
	dc.Clear()

	dc.SetColor(c.Foreground)
	radius := cell / 2 * c.DotScale
	for y, row := range matrix {
		for x, dark := range row {
			if !dark {
				continue
			}
			cx := (float64(x+c.QuietZone) + 0.5) * cell
			cy := (float64(y+c.QuietZone) + 0.5) * cell
			dc.DrawCircle(cx, cy, radius)
		}
	}
	dc.Fill()

	if c.LogoPath != "" {
		logo, err := gg.LoadImage(c.LogoPath)
		if err != nil {
			return nil, err
		}
		logoSize := int(float64(c.Size) * c.LogoScale)
		resized := resize.Resize(uint(logoSize), uint(logoSize), logo, resize.Lanczos3)

		half := float64(logoSize) / 2
		center := float64(c.Size) / 2
		dc.SetColor(c.Background)
		dc.DrawCircle(center, center, half+cell)
		dc.Fill()
		dc.DrawImage(resized, c.Size/2-logoSize/2, c.Size/2-logoSize/2)
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
