//go:build !tinygo

package hal

import (
	"fmt"
	"image/color"
	"time"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	dashBackground = color.RGBA{R: 16, G: 16, B: 24, A: 255}
	dashText       = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	dashGreen      = color.RGBA{R: 40, G: 200, B: 60, A: 255}
	dashRed        = color.RGBA{R: 220, G: 40, B: 40, A: 255}
)

const (
	dashLineHeight = 12
	dashBarWidth   = 100
)

// dashDisplay lets tinyfont draw into the host framebuffer.
type dashDisplay struct {
	fb *hostFramebuffer
}

var _ drivers.Displayer = dashDisplay{}

func (d dashDisplay) Size() (x, y int16) {
	return int16(d.fb.width), int16(d.fb.height)
}

func (d dashDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.fb.setPixel(int(x), int(y), c.R, c.G, c.B)
}

func (d dashDisplay) Display() error { return nil }

func dashboardLines(s Snapshot) []string {
	return []string{
		fmt.Sprintf("t      %s", s.Elapsed.Truncate(time.Millisecond)),
		fmt.Sprintf("irq    %d", s.Interrupts),
		fmt.Sprintf("dist   %.1fcm", s.DistanceCM),
		fmt.Sprintf("wheels %s @%d", s.Motion, s.Duty),
		fmt.Sprintf("sample %d", s.Samples),
		fmt.Sprintf("polls  %d", s.Busy),
		fmt.Sprintf("feeds  %d", s.Feeds),
	}
}

// renderDashboard redraws the framebuffer from the current snapshot.
func (h *Host) renderDashboard() {
	s := h.Snapshot()
	d := dashDisplay{fb: h.fb}
	h.fb.clearRGB(dashBackground.R, dashBackground.G, dashBackground.B)

	font := &proggy.TinySZ8pt7b
	y := int16(dashLineHeight)
	for _, line := range dashboardLines(s) {
		tinyfont.WriteLine(d, font, 4, y, line, dashText)
		y += dashLineHeight
	}

	y += 4
	drawBar(d, 4, y, s.Green, dashGreen)
	drawBar(d, 4, y+10, s.Red, dashRed)
	if s.LED {
		fillRect(d, int16(h.fb.width)-12, 4, 8, 8, dashRed)
	}
}

func drawBar(d dashDisplay, x, y int16, st DimmerState, c color.RGBA) {
	if !st.Enabled {
		return
	}
	w := int16(int(st.Duty) * dashBarWidth / 255)
	fillRect(d, x, y, w, 6, c)
}

func fillRect(d dashDisplay, x, y, w, h int16, c color.RGBA) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			d.SetPixel(xx, yy, c)
		}
	}
}
