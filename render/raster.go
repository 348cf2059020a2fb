package render

import (
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"

	"FractalGenerator/fractal"
	"FractalGenerator/palette"
)

// FirstTileSize is the edge of the tiles of the coarsest pass. Every following pass halves it.
const FirstTileSize = 16

// Raster renders escape time fractals in passes of tiles of 16, 8, 4, 2 and 1 pixels.
// Each pass only computes tiles the previous pass did not already cover, so every
// pass leaves a complete preview.
type Raster struct {
	logger bslogger.Logger
	params fractal.Parameters
	colors palette.ColorSet
}

func NewRaster(p fractal.Parameters) *Raster {
	return &Raster{
		logger: bslogger.NewLogger(fmt.Sprintf("Raster %s", p.CurrentFractalType), bslogger.Normal, nil),
		params: p,
		colors: palette.ColorSet(p.SelectedColorSet),
	}
}

func (r *Raster) Render(ctrl Control, canvas *Canvas) Result {
	previous := 0
	var painted int64
	for tile := FirstTileSize; tile > 0; tile /= 2 {
		count, ok := r.Pass(ctrl, canvas, tile, previous, painted)
		painted += count
		if !ok {
			r.logger.Debugf("Cancelled during the %dpx pass", tile)
			return Result{Status: Cancelled}
		}
		r.logger.Debugf("Finished the %dpx pass, %d tiles painted", tile, painted)
		previous = tile
	}
	return Result{Status: Completed, Finished: true}
}

// Pass paints every tile of size tile, row by row, skipping tiles whose corner lies on
// the grid of the previous pass (previous 0 skips nothing). It returns the number of
// tiles painted and false if it was cancelled. offset is added to reported progress.
func (r *Raster) Pass(ctrl Control, canvas *Canvas, tile int, previous int, offset int64) (int64, bool) {
	p := &r.params
	var painted int64
	for py := 0; py < p.SizeY; py += tile {
		for px := 0; px < p.SizeX; px += tile {
			if previous > 0 && px%previous == 0 && py%previous == 0 {
				continue
			}
			x, y := p.PixelToPlane(px, py)
			iterations := fractal.EscapeTime(p.CurrentFractalType, x, y, p)
			canvas.FillTile(px, py, tile, r.colors.IterationColor(iterations, p.MaxIterations))
			painted++
		}
		ctrl.Progress(offset + painted)
		if ctrl.Cancelled() {
			return painted, false
		}
	}
	return painted, true
}
