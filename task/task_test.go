package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"FractalGenerator/fractal"
	"FractalGenerator/render"
)

// blockingRenderer runs until it is cancelled or interrupted, polling like the
// orbit renderer does.
type blockingRenderer struct {
	started chan struct{}
}

func newBlockingRenderer() *blockingRenderer {
	return &blockingRenderer{started: make(chan struct{})}
}

func (b *blockingRenderer) Render(ctrl render.Control, canvas *render.Canvas) render.Result {
	close(b.started)
	for step := int64(1); ; step++ {
		ctrl.Progress(step)
		if ctrl.Interrupted() {
			return render.Result{Status: render.Stopped, Finished: true}
		}
		if !ctrl.Pause(time.Millisecond) {
			return render.Result{Status: render.Cancelled}
		}
	}
}

type fixedRenderer struct {
	result render.Result
}

func (f fixedRenderer) Render(ctrl render.Control, canvas *render.Canvas) render.Result {
	ctrl.Progress(42)
	return f.result
}

func waitDone(t *testing.T, task *Task) State {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	state, err := task.Wait(ctx)
	if err != nil {
		t.Fatalf("task %d did not end: %s", task.ID, err)
	}
	return state
}

func TestTaskStates(t *testing.T) {
	tests := []struct {
		result   render.Result
		state    State
		finished bool
	}{
		{render.Result{Status: render.Completed, Finished: true}, Finished, true},
		{render.Result{Status: render.Stopped, Finished: true}, Finished, true},
		{render.Result{Status: render.Cancelled}, Cancelled, false},
		{render.Result{Status: render.Cancelled, Finished: true}, Cancelled, true},
		{render.Result{Status: render.Diverged}, Diverged, false},
	}
	for i, tt := range tests {
		task := NewTask(uint(i+1), fixedRenderer{tt.result}, render.NewCanvas(1, 1))
		if task.State() != Idle {
			t.Fatalf("a new task is %s", task.State())
		}
		if err := task.Start(); err != nil {
			t.Fatal(err)
		}
		if state := waitDone(t, task); state != tt.state {
			t.Errorf("%s: state %s, want %s", tt.result.Status, state, tt.state)
		}
		if task.IsFinished() != tt.finished {
			t.Errorf("%s: finished %t, want %t", tt.result.Status, task.IsFinished(), tt.finished)
		}
		if task.Result() != tt.result {
			t.Errorf("Result() = %+v, want %+v", task.Result(), tt.result)
		}
		if task.Steps() != 42 {
			t.Errorf("Steps() = %d, want 42", task.Steps())
		}
		if !task.State().Terminal() {
			t.Errorf("%s is not terminal", task.State())
		}
	}
}

func TestTaskStartTwice(t *testing.T) {
	task := NewTask(1, fixedRenderer{render.Result{Status: render.Completed, Finished: true}}, render.NewCanvas(1, 1))
	if err := task.Start(); err != nil {
		t.Fatal(err)
	}
	if err := task.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start() = %v, want %v", err, ErrAlreadyStarted)
	}
	waitDone(t, task)
}

func TestTaskCancelRunning(t *testing.T) {
	renderer := newBlockingRenderer()
	task := NewTask(1, renderer, render.NewCanvas(1, 1))
	if err := task.Start(); err != nil {
		t.Fatal(err)
	}
	<-renderer.started
	if task.State() != Running {
		t.Errorf("state while rendering = %s, want Running", task.State())
	}

	task.Cancel()
	task.Cancel()
	if state := waitDone(t, task); state != Cancelled {
		t.Errorf("state = %s, want Cancelled", state)
	}
	if task.IsFinished() {
		t.Errorf("a cancelled blocking render reported finished")
	}
	task.Cancel()
}

func TestTaskCancelIdle(t *testing.T) {
	task := NewTask(1, newBlockingRenderer(), render.NewCanvas(1, 1))
	task.Cancel()
	select {
	case <-task.Done():
	default:
		t.Fatal("cancelling an idle task did not close Done")
	}
	if task.State() != Cancelled {
		t.Errorf("state = %s, want Cancelled", task.State())
	}
	if result := task.Result(); result.Status != render.Cancelled || result.Finished {
		t.Errorf("Result() = %+v, want a cancelled, unfinished render", result)
	}
	if task.IsFinished() {
		t.Errorf("a task that never ran reported finished")
	}
	if err := task.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("Start() after Cancel() = %v, want %v", err, ErrAlreadyStarted)
	}
}

func TestTaskInterrupt(t *testing.T) {
	renderer := newBlockingRenderer()
	task := NewTask(1, renderer, render.NewCanvas(1, 1))
	if err := task.Start(); err != nil {
		t.Fatal(err)
	}
	<-renderer.started
	task.Interrupt()
	if state := waitDone(t, task); state != Finished {
		t.Errorf("state = %s, want Finished", state)
	}
	if !task.IsFinished() {
		t.Errorf("an interrupted render is not finished")
	}
	if task.Steps() < 1 {
		t.Errorf("no progress was published")
	}
}

func TestTaskPause(t *testing.T) {
	task := NewTask(1, newBlockingRenderer(), render.NewCanvas(1, 1))
	if !task.Pause(0) || !task.Pause(time.Millisecond) {
		t.Errorf("Pause returned false before cancellation")
	}
	task.Cancel()
	start := time.Now()
	if task.Pause(time.Hour) {
		t.Errorf("Pause returned true after cancellation")
	}
	if time.Since(start) > time.Second {
		t.Errorf("Pause did not return at once on a cancelled task")
	}
	if task.Pause(0) {
		t.Errorf("Pause(0) returned true after cancellation")
	}
}

func TestTaskWaitHonoursContext(t *testing.T) {
	renderer := newBlockingRenderer()
	task := NewTask(1, renderer, render.NewCanvas(1, 1))
	if err := task.Start(); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if state, err := task.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) || state != Running {
		t.Errorf("Wait() = %s, %v, want Running, %v", state, err, context.DeadlineExceeded)
	}
	task.Cancel()
	waitDone(t, task)
}

func TestTaskRendersRaster(t *testing.T) {
	p := fractal.NewParameters()
	p.SizeX, p.SizeY = 40, 30
	task := NewTask(7, render.New(p), render.NewCanvas(p.SizeX, p.SizeY))
	if err := task.Start(); err != nil {
		t.Fatal(err)
	}
	if state := waitDone(t, task); state != Finished || !task.IsFinished() {
		t.Errorf("state = %s, finished %t, want Finished", state, task.IsFinished())
	}
	if task.Steps() != int64(p.SizeX*p.SizeY) {
		t.Errorf("Steps() = %d, want %d", task.Steps(), p.SizeX*p.SizeY)
	}
	if task.Elapsed() <= 0 {
		t.Errorf("Elapsed() = %s", task.Elapsed())
	}
}
