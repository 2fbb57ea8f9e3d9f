package report

import (
	"fmt"
	"image/color"

	"github.com/banshee-data/pawlabel/internal/contact"
)

// labelColors gives every label a fixed colour so plots of different
// measurements stay comparable.
var labelColors = map[contact.Label]color.RGBA{
	contact.Unlabeled:  {R: 128, G: 128, B: 128, A: 255},
	contact.Invalid:    {R: 40, G: 40, B: 40, A: 255},
	contact.LeftFront:  {R: 31, G: 119, B: 180, A: 255},
	contact.LeftHind:   {R: 44, G: 160, B: 44, A: 255},
	contact.RightFront: {R: 214, G: 39, B: 40, A: 255},
	contact.RightHind:  {R: 255, G: 127, B: 14, A: 255},
}

func labelColor(l contact.Label) color.RGBA {
	if c, ok := labelColors[l]; ok {
		return c
	}
	return labelColors[contact.Unlabeled]
}

// hexColor formats c as a CSS colour for echarts.
func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
