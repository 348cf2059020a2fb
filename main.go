package main

import (
	"os"
	"os/signal"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/alexflint/go-arg"

	"FractalGenerator/client"
	"FractalGenerator/misc"
	"FractalGenerator/viewer"
)

type ServeCmd struct {
	Preview    string `arg:"--preview" help:"address of the png and websocket preview, off when empty"`
	Parameters string `arg:"-p,--parameters" help:"parameter file to start from"`
	Render     bool   `arg:"--render" help:"start rendering right away"`
}

type RepaintOption struct {
	Repaint bool `arg:"-r,--repaint" help:"repaint after the change"`
}

type NoArgs struct{}

type RectangleCmd struct {
	X0 int `arg:"positional,required"`
	Y0 int `arg:"positional,required"`
	X1 int `arg:"positional,required"`
	Y1 int `arg:"positional,required"`
}

type ClickCmd struct {
	X int `arg:"positional,required"`
	Y int `arg:"positional,required"`
	RepaintOption
}

type ResizeCmd struct {
	Width  int  `arg:"positional" help:"image width, or pick --small or --large"`
	Height int  `arg:"positional"`
	Small  bool `arg:"--small" help:"800x600"`
	Large  bool `arg:"--large" help:"1024x768"`
}

type NameCmd struct {
	Name string `arg:"positional,required"`
	RepaintOption
}

type SetCmd struct {
	Name  string `arg:"positional,required" help:"field name, a[0]..f[5] for IFS cells"`
	Value string `arg:"positional,required"`
	RepaintOption
}

type PresetCmd struct {
	Index int `arg:"positional,required" help:"jumper preset 0-7"`
	RepaintOption
}

type FileCmd struct {
	File string `arg:"positional,required"`
	RepaintOption
}

type ExportCmd struct {
	File  string `arg:"positional,required"`
	Width uint   `arg:"-w,--width" help:"scale the image down to this width"`
}

type args struct {
	Settings  string `arg:"-s,--settings" help:"toml settings file"`
	Server    string `arg:"--server" help:"viewer address, overrides the settings file"`
	Transport string `arg:"--transport" help:"tcp, http or ws"`

	Serve    *ServeCmd     `arg:"subcommand:serve" help:"run a viewer session"`
	Render   *RenderCmd    `arg:"subcommand:render" help:"render one image to a png without a viewer"`
	Repaint  *NoArgs       `arg:"subcommand:repaint" help:"restart the render with the current parameters"`
	Stop     *NoArgs       `arg:"subcommand:stop" help:"stop an open ended orbit render"`
	Cancel   *NoArgs       `arg:"subcommand:cancel" help:"abandon the current render"`
	Status   *NoArgs       `arg:"subcommand:status" help:"show the current render"`
	Shutdown *NoArgs       `arg:"subcommand:shutdown" help:"close the viewer"`
	ZoomIn   *RectangleCmd `arg:"subcommand:zoom-in" help:"zoom into a pixel rectangle"`
	ZoomOut  *RectangleCmd `arg:"subcommand:zoom-out" help:"fit the current view into a pixel rectangle"`
	Click    *ClickCmd     `arg:"subcommand:click" help:"set the fixed point to a pixel"`
	Resize   *ResizeCmd    `arg:"subcommand:resize" help:"change the image size"`
	Type     *NameCmd      `arg:"subcommand:type" help:"select the fractal type"`
	Colors   *NameCmd      `arg:"subcommand:colors" help:"select the colour set"`
	Set      *SetCmd       `arg:"subcommand:set" help:"change one parameter"`
	Preset   *PresetCmd    `arg:"subcommand:preset" help:"apply a jumper preset"`
	Defaults *NameCmd      `arg:"subcommand:defaults" help:"reset the parameters to the defaults of a fractal type"`
	Save     *FileCmd      `arg:"subcommand:save" help:"save the parameters"`
	Load     *FileCmd      `arg:"subcommand:load" help:"load parameters"`
	Export   *ExportCmd    `arg:"subcommand:export" help:"save the last render as a png"`
}

func (args) Description() string {
	return "Renders escape time and orbit fractals, interactively through a viewer session or straight to a png."
}

func main() {
	var a args
	p := arg.MustParse(&a)
	logger := bslogger.NewLogger("FractalGenerator", bslogger.Normal, nil)

	switch {
	case a.Serve != nil:
		serve(a, logger)
	case a.Render != nil:
		if err := a.Render.Run(logger); misc.CheckError(err, logger, misc.Error) {
			os.Exit(1)
		}
	case p.Subcommand() == nil:
		p.Fail("missing subcommand")
	default:
		if err := command(a, logger); misc.CheckError(err, logger, misc.Error) {
			os.Exit(1)
		}
	}
}

func serve(a args, logger bslogger.Logger) {
	settings, err := viewer.NewSettings(a.Settings)
	misc.CheckError(err, logger, misc.Fatal)
	if a.Server != "" {
		settings.ServerAddress = a.Server
	}
	if a.Transport != "" {
		settings.Transport = a.Transport
	}
	if a.Serve.Preview != "" {
		settings.PreviewAddress = a.Serve.Preview
	}
	if a.Serve.Parameters != "" {
		settings.ParametersFile = a.Serve.Parameters
	}
	settings.RenderOnStart = settings.RenderOnStart || a.Serve.Render

	v, err := viewer.NewViewer(settings)
	misc.CheckError(err, logger, misc.Fatal)
	misc.CheckError(v.Run(), logger, misc.Fatal)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	select {
	case <-interrupt:
	case <-v.Done():
	}
	// a Close already running from a shutdown call is waited for
	v.Close()
	logger.Info("Viewer closed")
}

func clientSettings(a args) (client.Settings, error) {
	settings, err := client.NewSettings(a.Settings)
	if err != nil {
		return settings, err
	}
	if a.Server != "" {
		settings.ServerAddress = a.Server
	}
	if a.Transport != "" {
		settings.Transport = a.Transport
	}
	return settings, nil
}
