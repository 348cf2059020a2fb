package viewer

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"FractalGenerator/fractal"
	"FractalGenerator/misc"
	"FractalGenerator/palette"
	"FractalGenerator/render"
	"FractalGenerator/rpc"
	"FractalGenerator/task"
)

var (
	ErrRenderInProgress = errors.New("render in progress")
	ErrNothingRendered  = errors.New("nothing rendered yet")
)

// Viewer is one interactive session: the live parameters the user edits and the
// single render task painting them. Every command goes through the mutex, and a new
// render cancels the previous one before it starts.
type Viewer struct {
	logFile   *os.File
	logger    bslogger.Logger
	mutex     sync.Mutex
	params    fractal.Parameters
	settings  Settings
	stop      chan struct{}
	stopOnce  sync.Once
	task      *task.Task
	taskCount uint
	wg        sync.WaitGroup

	Preview *rpc.HttpServer
	Server  rpc.Server
}

// Status is a summary of the session and of its current render.
type Status struct {
	Task       uint
	State      string
	Finished   bool
	Steps      int64
	Elapsed    time.Duration
	Type       string
	ColorSet   string
	Parameters fractal.Parameters
}

func (s Status) String() string {
	if s.Task == 0 {
		return fmt.Sprintf("No render yet [Type: %s] [Colors: %s]", s.Type, s.ColorSet)
	}
	output := fmt.Sprintf("Task %d %s [Finished: %t] [Steps: %d]", s.Task, s.State, s.Finished, s.Steps)
	if s.Elapsed > 0 {
		output += fmt.Sprintf(" [Elapsed: %s]", s.Elapsed)
	}
	output += fmt.Sprintf(" [Type: %s] [Colors: %s]", s.Type, s.ColorSet)
	return output
}

func NewViewer(settings Settings) (*Viewer, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}

	v := &Viewer{
		logger:   bslogger.NewLogger("Viewer", bslogger.Normal, nil),
		params:   fractal.NewParameters(),
		settings: settings,
		stop:     make(chan struct{}),
	}

	if settings.LogFile != "" {
		logFile, err := os.Create(settings.LogFile)
		if !misc.CheckError(err, v.logger, misc.Warning) {
			v.logFile = logFile
			v.logger = bslogger.NewLogger("Viewer", bslogger.Normal, logFile)
		}
	}

	t, err := fractal.ParseType(settings.FractalType)
	if err != nil {
		return nil, err
	}
	v.params.CurrentFractalType = t
	v.params.SetDefaults(t)
	v.params.SelectedColorSet = settings.ColorSet

	if settings.ParametersFile != "" {
		p, err := fractal.Load(settings.ParametersFile)
		if err != nil {
			return nil, err
		}
		v.params = p
		v.logger.Infof("Loaded parameters from %s", settings.ParametersFile)
	}
	return v, nil
}

// Run starts the rpc server, the preview server when one is configured and the poll
// ticker.
func (v *Viewer) Run() error {
	server, err := rpc.NewServer(v.settings.Transport, NewService(v), v.settings.ServerAddress, "ViewerServer")
	if err != nil {
		return err
	}
	if err = server.Run(); err != nil {
		return err
	}
	v.Server = server

	if v.settings.PreviewAddress != "" {
		preview := rpc.NewHttpServer(nil, v.settings.PreviewAddress, "PreviewServer")
		v.registerPreview(&preview)
		if err = preview.Run(); err != nil {
			misc.CheckError(server.Stop(), v.logger, misc.Warning)
			return err
		}
		v.Preview = &preview
	}

	v.wg.Add(1)
	go v.tickers()

	if v.settings.RenderOnStart {
		misc.CheckError(v.Repaint(), v.logger, misc.Warning)
	}
	return nil
}

// Close cancels the render and shuts the servers down. It is safe to call more than once.
func (v *Viewer) Close() {
	v.stopOnce.Do(func() {
		v.logger.Info("Shutting down")
		close(v.stop)

		v.mutex.Lock()
		v.cancelLocked()
		v.mutex.Unlock()

		if v.Server != nil {
			misc.CheckError(v.Server.Stop(), v.logger, misc.Warning)
		}
		if v.Preview != nil {
			misc.CheckError(v.Preview.Stop(), v.logger, misc.Warning)
		}
		v.wg.Wait()
		if v.logFile != nil {
			misc.CheckError(v.logFile.Close(), v.logger, misc.Warning)
		}
	})
}

// Done is closed once Close has been called.
func (v *Viewer) Done() <-chan struct{} {
	return v.stop
}

func (v *Viewer) pollInterval() time.Duration {
	return time.Duration(v.settings.PollIntervalMs) * time.Millisecond
}

// tickers reports renders as they finish and logs progress on the poll cadence.
func (v *Viewer) tickers() {
	defer v.wg.Done()
	poll := time.NewTicker(v.pollInterval())
	defer poll.Stop()

	var reported *task.Task
	var lastSteps int64 = -1
	for {
		current := v.currentTask()
		var done <-chan struct{}
		if current != nil && current != reported {
			done = current.Done()
		}

		select {
		case <-v.stop:
			return
		case <-done:
			v.logger.Infof("Task %d %s after %s [Finished: %t] [Steps: %d]", current.ID, current.State(), current.Elapsed(), current.IsFinished(), current.Steps())
			reported = current
			lastSteps = -1
		case <-poll.C:
			if current == nil || current == reported {
				continue
			}
			if steps := current.Steps(); steps != lastSteps {
				v.logger.Debugf("Task %d [Steps: %d]", current.ID, steps)
				lastSteps = steps
			}
		}
	}
}

func (v *Viewer) currentTask() *task.Task {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.task
}

// cancelLocked cancels the current render and waits for it to return, so that at
// most one render ever runs.
func (v *Viewer) cancelLocked() {
	if v.task == nil {
		return
	}
	v.task.Cancel()
	<-v.task.Done()
}

// Repaint cancels the current render and starts a new one on a copy of the
// parameters. Invalid parameters leave the current render alone.
func (v *Viewer) Repaint() error {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.repaintLocked()
}

func (v *Viewer) repaintLocked() error {
	if err := v.params.Verify(); err != nil {
		v.logger.Warningf("Not repainting: %s", err)
		return err
	}
	v.params.InfiniteLoopInterrupted = false
	v.cancelLocked()

	snapshot := v.params.Snapshot()
	v.taskCount++
	t := task.NewTask(v.taskCount, render.New(snapshot), render.NewCanvas(snapshot.SizeX, snapshot.SizeY))
	if err := t.Start(); err != nil {
		return err
	}
	v.task = t
	v.logger.Infof("Task %d rendering %s at %dx%d [%g, %g] x [%g, %g]", t.ID, snapshot.CurrentFractalType, snapshot.SizeX, snapshot.SizeY, snapshot.XMin, snapshot.XMax, snapshot.YMin, snapshot.YMax)
	return nil
}

// Stop ends an open ended orbit render. The render keeps what it drew and counts as finished.
func (v *Viewer) Stop() {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.params.InfiniteLoopInterrupted = true
	if v.task != nil {
		v.task.Interrupt()
		v.logger.Infof("Stopping task %d", v.task.ID)
	}
}

// Cancel abandons the current render without starting another.
func (v *Viewer) Cancel() {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.cancelLocked()
}

// ZoomIn makes the pixel rectangle r the new viewport and repaints.
func (v *Viewer) ZoomIn(r image.Rectangle) error {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	if err := v.params.ZoomIn(r); err != nil {
		return err
	}
	return v.repaintLocked()
}

// ZoomOut fits the current viewport into the pixel rectangle r and repaints.
func (v *Viewer) ZoomOut(r image.Rectangle) error {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	if err := v.params.ZoomOut(r); err != nil {
		return err
	}
	return v.repaintLocked()
}

// Click moves the Julia/Manowar fixed point to pixel (px, py) and returns it.
func (v *Viewer) Click(px int, py int) (float64, float64) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.params.SetFixPoint(px, py)
	return v.params.XFix, v.params.YFix
}

// Resize changes the image size and repaints.
func (v *Viewer) Resize(sizeX int, sizeY int) error {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	if err := v.params.Resize(sizeX, sizeY); err != nil {
		return err
	}
	return v.repaintLocked()
}

func (v *Viewer) SetType(t fractal.Type) error {
	if !t.Valid() {
		return fmt.Errorf("unknown fractal type %d", int(t))
	}
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.selectTypeLocked(t)
	return nil
}

// selectTypeLocked makes t the current type. A render still running under another
// type no longer matches the selection and is cancelled.
func (v *Viewer) selectTypeLocked(t fractal.Type) {
	previous := v.params.CurrentFractalType
	v.params.CurrentFractalType = t
	if previous == t || v.task == nil || v.task.State() != task.Running {
		return
	}
	v.logger.Infof("Cancelling task %d, the type changed from %s to %s", v.task.ID, previous, t)
	v.cancelLocked()
}

func (v *Viewer) SetColorSet(c palette.ColorSet) error {
	if !c.Valid() {
		return fmt.Errorf("unknown colour set %d", int(c))
	}
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.params.SelectedColorSet = int(c)
	return nil
}

// SetField commits one text field. Malformed text changes nothing.
func (v *Viewer) SetField(name string, text string) error {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.params.SetField(name, text)
}

// Defaults resets every numeric field to the defaults of t and selects t.
func (v *Viewer) Defaults(t fractal.Type) error {
	if !t.Valid() {
		return fmt.Errorf("unknown fractal type %d", int(t))
	}
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.params.SetDefaults(t)
	v.selectTypeLocked(t)
	return nil
}

// Preset selects Jumper with one of its presets.
func (v *Viewer) Preset(index int) error {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	if err := v.params.ApplyJumperPreset(index); err != nil {
		return err
	}
	v.selectTypeLocked(fractal.Jumper)
	v.logger.Infof("Applied Jumper preset %q", fractal.JumperPresets[index].Name)
	return nil
}

func (v *Viewer) Parameters() fractal.Parameters {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.params.Snapshot()
}

func (v *Viewer) path(fileName string) string {
	if filepath.IsAbs(fileName) {
		return fileName
	}
	return filepath.Join(v.settings.SavePath, fileName)
}

// SaveParameters writes the live parameters and returns the path written.
func (v *Viewer) SaveParameters(fileName string) (string, error) {
	v.mutex.Lock()
	p := v.params.Snapshot()
	v.mutex.Unlock()

	written, err := p.Save(v.path(fileName))
	if misc.CheckError(err, v.logger, misc.Error) {
		return "", err
	}
	v.logger.Infof("Saved parameters to %s", written)
	return written, nil
}

// LoadParameters replaces the live parameters. A file that cannot be read or
// fails validation leaves them unchanged.
func (v *Viewer) LoadParameters(fileName string) error {
	p, err := fractal.Load(v.path(fileName))
	if misc.CheckError(err, v.logger, misc.Error) {
		return err
	}
	v.mutex.Lock()
	v.params = p
	v.mutex.Unlock()
	v.logger.Infof("Loaded parameters from %s", fileName)
	return nil
}

// Export writes the image of the last render as a png, scaled to width when it is
// positive. It is refused while the render is still running.
func (v *Viewer) Export(fileName string, width uint) (string, error) {
	img, _, _, err := v.frame(true)
	if err != nil {
		v.logger.Warningf("Not exporting: %s", err)
		return "", err
	}

	fileName = v.path(misc.WithExtension(fileName, ".png"))
	if misc.CheckError(misc.SavePNG(fileName, img, width), v.logger, misc.Error) {
		return "", fmt.Errorf("unable to export %s", fileName)
	}
	v.logger.Infof("Exported image to %s", fileName)
	return fileName, nil
}

// frame copies the canvas of the current render along with the task id and canvas
// version it was taken at.
func (v *Viewer) frame(settled bool) (*image.RGBA, uint, uint64, error) {
	v.mutex.Lock()
	t := v.task
	v.mutex.Unlock()

	if t == nil {
		return nil, 0, 0, ErrNothingRendered
	}
	if settled && t.State() == task.Running {
		return nil, 0, 0, fmt.Errorf("%w: task %d", ErrRenderInProgress, t.ID)
	}
	version := t.Canvas().Version()
	return t.Canvas().Snapshot(), t.ID, version, nil
}

func (v *Viewer) Status() Status {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	s := Status{
		Type:       v.params.CurrentFractalType.String(),
		ColorSet:   palette.ColorSet(v.params.SelectedColorSet).String(),
		Parameters: v.params.Snapshot(),
	}
	if v.task != nil {
		s.Task = v.task.ID
		s.State = v.task.State().String()
		s.Finished = v.task.IsFinished()
		s.Steps = v.task.Steps()
		if v.task.State().Terminal() {
			s.Elapsed = v.task.Elapsed()
		}
	}
	return s
}

// Task is the current render, nil before the first repaint.
func (v *Viewer) Task() *task.Task {
	return v.currentTask()
}
