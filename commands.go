package main

import (
	"errors"
	"image"

	"github.com/BrugadaSyndrome/bslogger"

	"FractalGenerator/client"
	"FractalGenerator/misc"
	"FractalGenerator/viewer"
)

// command runs one client subcommand against a viewer.
func command(a args, logger bslogger.Logger) error {
	settings, err := clientSettings(a)
	if err != nil {
		return err
	}
	c, err := client.NewClient(settings)
	if err != nil {
		return err
	}
	defer func() {
		misc.CheckError(c.Close(), logger, misc.Debug)
	}()

	var status viewer.Status
	var repaint bool
	switch {
	case a.Repaint != nil:
		status, err = c.Repaint()
	case a.Stop != nil:
		status, err = c.Stop()
	case a.Cancel != nil:
		status, err = c.Cancel()
	case a.Status != nil:
		status, err = c.Status()
	case a.Shutdown != nil:
		return c.Shutdown()
	case a.ZoomIn != nil:
		status, err = c.ZoomIn(a.ZoomIn.rectangle())
	case a.ZoomOut != nil:
		status, err = c.ZoomOut(a.ZoomOut.rectangle())
	case a.Click != nil:
		status, err = c.Click(a.Click.X, a.Click.Y)
		repaint = a.Click.Repaint
		if err == nil {
			logger.Infof("Fixed point is now (%g, %g)", status.Parameters.XFix, status.Parameters.YFix)
		}
	case a.Resize != nil:
		width, height, sizeErr := a.Resize.size()
		if sizeErr != nil {
			return sizeErr
		}
		status, err = c.Resize(width, height)
	case a.Type != nil:
		status, err = c.SetType(a.Type.Name)
		repaint = a.Type.Repaint
	case a.Colors != nil:
		status, err = c.SetColorSet(a.Colors.Name)
		repaint = a.Colors.Repaint
	case a.Set != nil:
		status, err = c.SetField(a.Set.Name, a.Set.Value)
		repaint = a.Set.Repaint
	case a.Preset != nil:
		status, err = c.Preset(a.Preset.Index)
		repaint = a.Preset.Repaint
	case a.Defaults != nil:
		status, err = c.Defaults(a.Defaults.Name)
		repaint = a.Defaults.Repaint
	case a.Load != nil:
		status, err = c.Load(a.Load.File)
		repaint = a.Load.Repaint
	case a.Save != nil:
		written, saveErr := c.Save(a.Save.File)
		if saveErr == nil {
			logger.Infof("Saved parameters to %s", written)
		}
		return saveErr
	case a.Export != nil:
		written, exportErr := c.Export(a.Export.File, a.Export.Width)
		if exportErr == nil {
			logger.Infof("Exported image to %s", written)
		}
		return exportErr
	}
	if err != nil {
		return err
	}

	if repaint {
		if status, err = c.Repaint(); err != nil {
			return err
		}
	}
	logger.Info(status.String())
	return nil
}

func (r *RectangleCmd) rectangle() image.Rectangle {
	return image.Rect(r.X0, r.Y0, r.X1, r.Y1)
}

func (r *ResizeCmd) size() (int, int, error) {
	switch {
	case r.Small:
		return 800, 600, nil
	case r.Large:
		return 1024, 768, nil
	case r.Width > 0 && r.Height > 0:
		return r.Width, r.Height, nil
	default:
		return 0, 0, errors.New("resize needs a width and a height, --small or --large")
	}
}
