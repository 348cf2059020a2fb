package render

import (
	"image/color"
	"sync"
	"testing"
	"time"

	"FractalGenerator/fractal"
)

// testControl cancels after a given number of cancellation checks.
type testControl struct {
	mutex       sync.Mutex
	cancelAfter int // checks answered false before answering true, negative never cancels
	checks      int
	interrupted bool
	pauses      []time.Duration
	progress    []int64
}

func newTestControl() *testControl {
	return &testControl{cancelAfter: -1}
}

func (c *testControl) Cancelled() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.checks++
	return c.cancelAfter >= 0 && c.checks > c.cancelAfter
}

func (c *testControl) Interrupted() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.interrupted
}

func (c *testControl) Pause(d time.Duration) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.pauses = append(c.pauses, d)
	return true
}

func (c *testControl) Progress(done int64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.progress = append(c.progress, done)
}

func TestNewPicksRendererByFamily(t *testing.T) {
	for _, fractalType := range []fractal.Type{fractal.Mandelbrot, fractal.Julia, fractal.Manowar} {
		p := fractal.NewParameters()
		p.CurrentFractalType = fractalType
		if _, ok := New(p).(*Raster); !ok {
			t.Errorf("New(%s) is not a raster renderer", fractalType)
		}
	}
	for _, fractalType := range []fractal.Type{fractal.IFS, fractal.NonLinear, fractal.Jumper} {
		p := fractal.NewParameters()
		p.CurrentFractalType = fractalType
		if _, ok := New(p).(*Orbit); !ok {
			t.Errorf("New(%s) is not an orbit renderer", fractalType)
		}
	}
}

func TestCanvasStartsOpaqueBlack(t *testing.T) {
	c := NewCanvas(3, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got := c.At(x, y); got != (color.RGBA{A: 255}) {
				t.Errorf("pixel (%d, %d) = %v, want opaque black", x, y, got)
			}
		}
	}
	if c.Version() != 0 {
		t.Errorf("a fresh canvas has version %d", c.Version())
	}
}

func TestCanvasFillTileClips(t *testing.T) {
	c := NewCanvas(10, 10)
	red := color.RGBA{R: 255, A: 255}
	c.FillTile(8, 8, 16, red)
	for _, pixel := range [][2]int{{8, 8}, {9, 9}, {8, 9}} {
		if got := c.At(pixel[0], pixel[1]); got != red {
			t.Errorf("pixel %v = %v, want %v", pixel, got, red)
		}
	}
	if got := c.At(7, 7); got == red {
		t.Errorf("pixel (7, 7) was painted")
	}
	if c.Version() != 1 {
		t.Errorf("version after one fill = %d, want 1", c.Version())
	}
}

func TestCanvasSnapshotIsACopy(t *testing.T) {
	c := NewCanvas(4, 4)
	snapshot := c.Snapshot()
	c.FillTile(0, 0, 4, color.RGBA{G: 255, A: 255})
	if snapshot.RGBAAt(0, 0) != (color.RGBA{A: 255}) {
		t.Errorf("the snapshot changed with the canvas")
	}
	c.Recolor(1, 1, func(old color.RGBA) color.RGBA {
		return color.RGBA{R: old.G, A: 255}
	})
	if got := c.At(1, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("Recolor gave %v", got)
	}
}
