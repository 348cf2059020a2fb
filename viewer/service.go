package viewer

import (
	"image"
	"time"

	"FractalGenerator/fractal"
	"FractalGenerator/misc"
	"FractalGenerator/palette"
)

// Service exposes a Viewer over rpc. Every command replies with the session status
// after it ran.
type Service struct {
	viewer *Viewer
}

func NewService(v *Viewer) *Service {
	return &Service{viewer: v}
}

type Rectangle struct {
	X0, Y0, X1, Y1 int
}

func (r Rectangle) image() image.Rectangle {
	return image.Rect(r.X0, r.Y0, r.X1, r.Y1)
}

type Point struct {
	X, Y int
}

type Size struct {
	Width, Height int
}

type Field struct {
	Name  string
	Value string
}

type ExportRequest struct {
	FileName string
	Width    uint
}

func (s *Service) Repaint(_ misc.Nothing, reply *Status) error {
	err := s.viewer.Repaint()
	*reply = s.viewer.Status()
	return err
}

func (s *Service) Stop(_ misc.Nothing, reply *Status) error {
	s.viewer.Stop()
	*reply = s.viewer.Status()
	return nil
}

func (s *Service) Cancel(_ misc.Nothing, reply *Status) error {
	s.viewer.Cancel()
	*reply = s.viewer.Status()
	return nil
}

func (s *Service) ZoomIn(r Rectangle, reply *Status) error {
	err := s.viewer.ZoomIn(r.image())
	*reply = s.viewer.Status()
	return err
}

func (s *Service) ZoomOut(r Rectangle, reply *Status) error {
	err := s.viewer.ZoomOut(r.image())
	*reply = s.viewer.Status()
	return err
}

func (s *Service) Click(p Point, reply *Status) error {
	s.viewer.Click(p.X, p.Y)
	*reply = s.viewer.Status()
	return nil
}

func (s *Service) Resize(size Size, reply *Status) error {
	err := s.viewer.Resize(size.Width, size.Height)
	*reply = s.viewer.Status()
	return err
}

func (s *Service) SetType(name string, reply *Status) error {
	t, err := fractal.ParseType(name)
	if err == nil {
		err = s.viewer.SetType(t)
	}
	*reply = s.viewer.Status()
	return err
}

func (s *Service) SetColorSet(name string, reply *Status) error {
	c, err := palette.ParseColorSet(name)
	if err == nil {
		err = s.viewer.SetColorSet(c)
	}
	*reply = s.viewer.Status()
	return err
}

func (s *Service) SetField(f Field, reply *Status) error {
	err := s.viewer.SetField(f.Name, f.Value)
	*reply = s.viewer.Status()
	return err
}

func (s *Service) Defaults(name string, reply *Status) error {
	t, err := fractal.ParseType(name)
	if err == nil {
		err = s.viewer.Defaults(t)
	}
	*reply = s.viewer.Status()
	return err
}

func (s *Service) Preset(index int, reply *Status) error {
	err := s.viewer.Preset(index)
	*reply = s.viewer.Status()
	return err
}

func (s *Service) Save(fileName string, reply *string) error {
	written, err := s.viewer.SaveParameters(fileName)
	*reply = written
	return err
}

func (s *Service) Load(fileName string, reply *Status) error {
	err := s.viewer.LoadParameters(fileName)
	*reply = s.viewer.Status()
	return err
}

func (s *Service) Export(request ExportRequest, reply *string) error {
	written, err := s.viewer.Export(request.FileName, request.Width)
	*reply = written
	return err
}

func (s *Service) Status(_ misc.Nothing, reply *Status) error {
	*reply = s.viewer.Status()
	return nil
}

// shutdownDelay leaves time for the reply to reach the client before the
// connection it travels on is closed.
const shutdownDelay = 100 * time.Millisecond

// Shutdown replies first and closes the viewer afterwards.
func (s *Service) Shutdown(_ misc.Nothing, reply *misc.Nothing) error {
	time.AfterFunc(shutdownDelay, s.viewer.Close)
	return nil
}
