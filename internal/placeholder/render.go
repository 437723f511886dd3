package placeholder

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
)

// EncodePNG writes the pixels as a PNG, upscaled to width x height when both
// are positive. Blurhash output is smooth, so a small decode stretched with a
// linear filter looks the same as a full-size decode.
func EncodePNG(w io.Writer, px Pixels, width, height int) error {
	if width > MaxOutputSize || height > MaxOutputSize {
		return fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrTooLarge, width, height, MaxOutputSize, MaxOutputSize)
	}
	var img image.Image = px.Image()
	if width > 0 && height > 0 && (width != px.Width || height != px.Height) {
		img = imaging.Resize(img, width, height, imaging.Linear)
	}
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("encode placeholder: %w", err)
	}
	return nil
}

// RenderTerminal draws the pixels as cols x rows cells of upper half blocks,
// two pixel rows per cell, dimmed towards black by opacity (0..1).
func RenderTerminal(px Pixels, cols, rows int, opacity float64) string {
	if cols <= 0 || rows <= 0 || px.Width == 0 || px.Height == 0 {
		return ""
	}
	opacity = clamp(opacity)

	img := imaging.Resize(px.Image(), cols, rows*2, imaging.Linear)

	var sb strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := dim(img.NRGBAAt(x, y*2), opacity)
			bottom := dim(img.NRGBAAt(x, y*2+1), opacity)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(top).
				Background(bottom).
				Render("▀"))
		}
		if y < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func dim(c color.NRGBA, opacity float64) lipgloss.Color {
	scale := func(v uint8) uint8 { return uint8(float64(v)*opacity + 0.5) }
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", scale(c.R), scale(c.G), scale(c.B)))
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
