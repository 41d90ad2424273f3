//go:build !tinygo && cgo

package hal

import (
	"context"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"rover/internal/buildinfo"
)

// RunWindow runs firmware against h and shows the dashboard in a desktop
// window. It blocks until the window closes or the firmware stops.
func RunWindow(ctx context.Context, h *Host, firmware func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fwErr := make(chan error, 1)
	go func() { fwErr <- firmware(ctx) }()

	g := &hostGame{h: h, ctx: ctx, fwErr: fwErr, last: time.Now()}
	ebiten.SetWindowTitle("Rover (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*3, h.fb.height*3)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)

	cancel()
	if !g.fwDone {
		<-fwErr
	}
	if err != nil {
		return err
	}
	return g.err
}

type hostGame struct {
	h     *Host
	ctx   context.Context
	fwErr chan error

	fwDone bool
	err    error
	last   time.Time

	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
}

func (g *hostGame) Update() error {
	select {
	case err := <-g.fwErr:
		g.fwDone = true
		g.err = err
		return ebiten.Termination
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}

	now := time.Now()
	if err := g.h.Step(now.Sub(g.last)); err != nil {
		g.err = err
		return ebiten.Termination
	}
	g.last = now
	g.h.renderDashboard()
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
