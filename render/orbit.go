package render

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"FractalGenerator/fractal"
	"FractalGenerator/palette"
)

const (
	// Points up to this step are the transient and never plotted.
	transientSteps = 7
	// Cancellation is checked and the pause taken every this many steps.
	checkInterval = 10000
)

// Orbit plots the trajectory of an IFS, non-linear or Jumper map. A pixel hit again
// is recoloured, which shows how often the orbit passes through it.
type Orbit struct {
	logger bslogger.Logger
	params fractal.Parameters
	colors palette.ColorSet
	draw   func() float64
}

// NewOrbit returns an orbit renderer. draw supplies the IFS random values; nil uses
// the process wide source.
func NewOrbit(p fractal.Parameters, draw func() float64) *Orbit {
	if draw == nil {
		draw = rand.Float64
	}
	return &Orbit{
		logger: bslogger.NewLogger(fmt.Sprintf("Orbit %s", p.CurrentFractalType), bslogger.Normal, nil),
		params: p,
		colors: palette.ColorSet(p.SelectedColorSet),
		draw:   draw,
	}
}

func (o *Orbit) Render(ctrl Control, canvas *Canvas) Result {
	p := &o.params
	weights := fractal.NewWeights(p)
	pause := time.Duration(p.Sleep) * time.Millisecond

	x, y := p.XStart, p.YStart
	var n int64
	for n < p.Count || p.InfiniteLoop {
		if p.InfiniteLoopInterrupted || ctrl.Interrupted() {
			o.logger.Infof("Stopped after %d steps", n)
			ctrl.Progress(n)
			return Result{Status: Stopped, Finished: true}
		}
		if x*x+y*y > float64(p.Range) {
			o.logger.Warningf("Overflow at step %d: (%g, %g) left the range %d", n, x, y, p.Range)
			ctrl.Progress(n)
			return Result{Status: Diverged}
		}

		nx, ny := fractal.Next(p.CurrentFractalType, x, y, p, &weights, o.draw)
		if n > transientSteps {
			if px, py, ok := p.PlaneToPixel(nx, ny); ok {
				canvas.Recolor(px, py, o.colors.RecolorPixel)
			}
		}
		x, y = nx, ny
		n++

		if n%checkInterval == 0 {
			ctrl.Progress(n)
			if ctrl.Cancelled() || !ctrl.Pause(pause) {
				o.logger.Debugf("Cancelled after %d steps", n)
				return Result{Status: Cancelled, Finished: true}
			}
		}
	}
	ctrl.Progress(n)
	return Result{Status: Completed, Finished: true}
}
