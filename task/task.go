package task

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"FractalGenerator/render"
)

const (
	Idle State = iota
	Running
	Finished
	Cancelled
	Diverged
)

type State int32

func (s State) String() string {
	return []string{
		"Idle", "Running", "Finished", "Cancelled", "Diverged",
	}[s]
}

// Terminal reports whether the task can no longer change state.
func (s State) Terminal() bool {
	return s >= Finished
}

var ErrAlreadyStarted = errors.New("task already started")

// Task runs one render on its own goroutine. It owns the canvas until it is done,
// and it is the render.Control the renderer polls.
type Task struct {
	ID uint

	canvas   *render.Canvas
	logger   bslogger.Logger
	renderer render.Renderer

	state       atomic.Int32
	finished    atomic.Bool
	interrupted atomic.Bool
	progress    atomic.Int64

	cancel     chan struct{}
	cancelOnce sync.Once
	done       chan struct{}

	result  render.Result
	started time.Time
	elapsed time.Duration
}

func NewTask(id uint, renderer render.Renderer, canvas *render.Canvas) *Task {
	return &Task{
		ID:       id,
		canvas:   canvas,
		logger:   bslogger.NewLogger(fmt.Sprintf("Task %d", id), bslogger.Normal, nil),
		renderer: renderer,
		cancel:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (t *Task) String() string {
	output := "{Task "
	output += fmt.Sprintf("ID: %d ", t.ID)
	output += fmt.Sprintf("State: %s ", t.State())
	output += fmt.Sprintf("Progress: %d ", t.progress.Load())
	output += fmt.Sprintf("Finished: %t}", t.finished.Load())
	return output
}

// Start runs the render in the background.
func (t *Task) Start() error {
	if !t.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return fmt.Errorf("%w: task %d is %s", ErrAlreadyStarted, t.ID, t.State())
	}
	t.started = time.Now()
	go t.run()
	return nil
}

func (t *Task) run() {
	defer close(t.done)

	result := t.renderer.Render(t, t.canvas)
	t.result = result
	t.elapsed = time.Since(t.started)
	t.finished.Store(result.Finished)

	switch result.Status {
	case render.Completed, render.Stopped:
		t.state.Store(int32(Finished))
	case render.Diverged:
		t.state.Store(int32(Diverged))
	default:
		t.state.Store(int32(Cancelled))
	}
	t.logger.Debugf("Render %s after %s, %d steps", result.Status, t.elapsed, t.progress.Load())
}

// Cancel asks the render to return at its next check. It may be called any number
// of times, from any goroutine, in any state.
func (t *Task) Cancel() {
	t.cancelOnce.Do(func() {
		close(t.cancel)
		if t.state.CompareAndSwap(int32(Idle), int32(Cancelled)) {
			t.result = render.Result{Status: render.Cancelled}
			close(t.done)
		}
	})
}

// Interrupt stops an open ended orbit render. The render ends as finished.
func (t *Task) Interrupt() {
	t.interrupted.Store(true)
}

func (t *Task) State() State {
	return State(t.state.Load())
}

// IsFinished is the flag the poller checks, set by the renderer when it considers
// its picture done.
func (t *Task) IsFinished() bool {
	return t.finished.Load()
}

// Done is closed once the task reaches a terminal state.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task is done or ctx ends.
func (t *Task) Wait(ctx context.Context) (State, error) {
	select {
	case <-t.done:
		return t.State(), nil
	case <-ctx.Done():
		return t.State(), ctx.Err()
	}
}

// Result is valid once Done is closed.
func (t *Task) Result() render.Result {
	<-t.done
	return t.result
}

// Elapsed is the render duration, valid once Done is closed.
func (t *Task) Elapsed() time.Duration {
	<-t.done
	return t.elapsed
}

func (t *Task) Canvas() *render.Canvas {
	return t.canvas
}

// Steps is the last progress the renderer published.
func (t *Task) Steps() int64 {
	return t.progress.Load()
}

func (t *Task) Cancelled() bool {
	select {
	case <-t.cancel:
		return true
	default:
		return false
	}
}

func (t *Task) Interrupted() bool {
	return t.interrupted.Load()
}

func (t *Task) Pause(d time.Duration) bool {
	if d <= 0 {
		return !t.Cancelled()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-t.cancel:
		return false
	case <-timer.C:
		return true
	}
}

func (t *Task) Progress(done int64) {
	t.progress.Store(done)
}
