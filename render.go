package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/pkg/profile"

	"FractalGenerator/fractal"
	"FractalGenerator/misc"
	"FractalGenerator/palette"
	"FractalGenerator/render"
	"FractalGenerator/task"
)

type RenderCmd struct {
	Parameters string        `arg:"-p,--parameters" help:"parameter file to render"`
	Type       string        `arg:"-t,--type" default:"Mandelbrot" help:"fractal type when no parameter file is given"`
	Colors     string        `arg:"-c,--colors" help:"colour set name or number"`
	Preset     int           `arg:"--preset" default:"-1" help:"jumper preset 0-7"`
	Set        []string      `arg:"--set,separate" help:"name=value parameter override, repeatable"`
	Output     string        `arg:"-o,--output" default:"fractal.png" help:"png to write"`
	Width      uint          `arg:"-w,--width" help:"scale the saved image down to this width"`
	Timeout    time.Duration `arg:"--timeout" help:"stop the render after this long, open ended orbits need it or ctrl-c"`
	Profile    string        `arg:"--profile" help:"write a cpu profile into this directory"`
}

// parameters builds the parameters of the render from the file or type, then the
// preset, colour set and overrides, in that order.
func (r *RenderCmd) parameters() (fractal.Parameters, error) {
	p := fractal.NewParameters()
	if r.Parameters != "" {
		loaded, err := fractal.Load(r.Parameters)
		if err != nil {
			return p, err
		}
		p = loaded
	} else {
		t, err := fractal.ParseType(r.Type)
		if err != nil {
			return p, err
		}
		p.CurrentFractalType = t
		p.SetDefaults(t)
	}

	if r.Preset >= 0 {
		if err := p.ApplyJumperPreset(r.Preset); err != nil {
			return p, err
		}
		p.CurrentFractalType = fractal.Jumper
	}
	if r.Colors != "" {
		c, err := palette.ParseColorSet(r.Colors)
		if err != nil {
			return p, err
		}
		p.SelectedColorSet = int(c)
	}
	for _, set := range r.Set {
		name, value, ok := strings.Cut(set, "=")
		if !ok {
			return p, fmt.Errorf("%w: %q is not name=value", fractal.ErrMalformedField, set)
		}
		if err := p.SetField(strings.TrimSpace(name), strings.TrimSpace(value)); err != nil {
			return p, err
		}
	}
	return p, p.Verify()
}

// Run renders once and saves whatever was painted when the
// render ends, times out or is interrupted.
func (r *RenderCmd) Run(logger bslogger.Logger) error {
	if r.Profile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(r.Profile), profile.NoShutdownHook).Stop()
	}

	p, err := r.parameters()
	if err != nil {
		return err
	}
	if p.CurrentFractalType.Family() == fractal.OrbitFamily && p.InfiniteLoop && r.Timeout == 0 {
		logger.Warning("Open ended orbit render, press ctrl-c to stop it")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	t := task.NewTask(1, render.New(p.Snapshot()), render.NewCanvas(p.SizeX, p.SizeY))
	logger.Infof("Rendering %s at %dx%d", p.CurrentFractalType, p.SizeX, p.SizeY)
	if err = t.Start(); err != nil {
		return err
	}

	poll := time.NewTicker(time.Second)
	defer poll.Stop()
	for waiting := true; waiting; {
		select {
		case <-t.Done():
			waiting = false
		case <-poll.C:
			logger.Debugf("Steps: %d", t.Steps())
		case <-ctx.Done():
			// orbits end as stopped, rasters have to be cancelled
			logger.Infof("Ending render: %s", context.Cause(ctx))
			if p.CurrentFractalType.Family() == fractal.OrbitFamily {
				t.Interrupt()
			} else {
				t.Cancel()
			}
			<-t.Done()
			waiting = false
		}
	}

	logger.Infof("Render %s after %s [Finished: %t] [Steps: %d]", t.State(), t.Elapsed(), t.IsFinished(), t.Steps())
	if t.State() == task.Diverged {
		logger.Warning("The orbit overflowed, saving what was drawn before")
	}

	output := misc.WithExtension(r.Output, ".png")
	if err = misc.SavePNG(output, t.Canvas().Snapshot(), r.Width); err != nil {
		return err
	}
	logger.Infof("Saved image to %s", output)
	return nil
}
