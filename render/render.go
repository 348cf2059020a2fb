// Package render paints fractals into a Canvas. Escape time fractals are refined
// over shrinking tiles, orbit fractals accumulate a trajectory pixel by pixel.
// Both poll a Control at bounded intervals and return early when cancelled.
package render

import (
	"time"

	"FractalGenerator/fractal"
)

// Control is how a running render learns that it should end.
type Control interface {
	// Cancelled reports that the render is being replaced and must return now.
	Cancelled() bool
	// Interrupted reports that the user stopped an open ended orbit.
	Interrupted() bool
	// Pause sleeps for d and returns false if the render was cancelled meanwhile.
	Pause(d time.Duration) bool
	// Progress publishes the number of tiles painted or orbit steps taken so far.
	Progress(done int64)
}

type Status int

const (
	Completed Status = iota
	Stopped
	Cancelled
	Diverged
)

func (s Status) String() string {
	return []string{
		"Completed", "Stopped", "Cancelled", "Diverged",
	}[s]
}

// Result is how a render ended. Finished is the flag the display side polls.
type Result struct {
	Status   Status
	Finished bool
}

type Renderer interface {
	Render(ctrl Control, canvas *Canvas) Result
}

// New picks the renderer for the fractal type of p. p is copied.
func New(p fractal.Parameters) Renderer {
	if p.CurrentFractalType.Family() == fractal.OrbitFamily {
		return NewOrbit(p, nil)
	}
	return NewRaster(p)
}
