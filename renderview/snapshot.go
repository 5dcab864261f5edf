package renderview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	overlayXOffset = 8
	overlayYOffset = 8
	lineHeight     = 15
)

// Snapshot draws the view: the light colour as background, the overlay
// slots from the top, and the render time and progress at the bottom.
func (v *View) Snapshot() *image.RGBA {
	v.lightLock.Lock()
	light := v.light
	renderStart := v.renderStart
	v.lightLock.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, v.width, v.height))

	r, g, b := light.Clamped().RGB255()
	bg := color.RGBA{R: r, G: g, B: b, A: 0xff}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColorOn(light)),
		Face: basicfont.Face7x13,
	}

	for i, line := range v.StatusOverlay() {
		if line == "" {
			continue
		}

		drawer.Dot = fixed.P(overlayXOffset, (i+1)*lineHeight)
		drawer.DrawString(line)
	}

	var elapsed time.Duration
	if !renderStart.IsZero() {
		elapsed = v.now().Sub(renderStart)
	}

	drawer.Dot = fixed.P(overlayXOffset, v.height-overlayYOffset)
	drawer.DrawString(progressLine(elapsed, v.Progress()))

	return img
}

// WritePNG encodes the current snapshot as PNG.
func (v *View) WritePNG(w io.Writer) error {
	return png.Encode(w, v.Snapshot())
}

func progressLine(elapsed time.Duration, progress float64) string {
	total := int(elapsed.Seconds())
	hours := total / 3600
	minutes := total / 60 % 60
	seconds := total % 60

	return fmt.Sprintf("%02d:%02d:%02d - %0.1f%%",
		hours, minutes, seconds, progress)
}

func textColorOn(bg colorful.Color) color.Color {
	l, _, _ := bg.Lab()
	if l > 0.6 {
		return color.Black
	}

	return color.White
}
