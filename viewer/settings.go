package viewer

import (
	"fmt"
	"os"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"

	"FractalGenerator/fractal"
	"FractalGenerator/misc"
	"FractalGenerator/palette"
	"FractalGenerator/rpc"
)

type Settings struct {
	logger bslogger.Logger

	ColorSet       int    `koanf:"color_set"`
	FractalType    string `koanf:"fractal_type"`
	LogFile        string `koanf:"log_file"`
	ParametersFile string `koanf:"parameters_file"`
	PollIntervalMs int    `koanf:"poll_interval_ms"`
	PreviewAddress string `koanf:"preview_address"`
	RenderOnStart  bool   `koanf:"render_on_start"`
	SavePath       string `koanf:"save_path"`
	ServerAddress  string `koanf:"server_address"`
	Transport      string `koanf:"transport"`
}

// NewSettings reads a toml settings file. An empty name gives the defaults.
func NewSettings(settingsFile string) (Settings, error) {
	s := Settings{
		logger: bslogger.NewLogger("ViewerSettings", bslogger.Normal, nil),
	}
	if settingsFile != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(settingsFile), toml.Parser()); err != nil {
			return s, fmt.Errorf("unable to read settings %s: %w", settingsFile, err)
		}
		if err := k.Unmarshal("", &s); err != nil {
			return s, fmt.Errorf("unable to decode settings %s: %w", settingsFile, err)
		}
	}
	if err := s.Verify(); err != nil {
		return s, err
	}
	s.logger.Debug(s.String())
	return s, nil
}

func (s *Settings) String() string {
	output := "\nViewer settings\n"
	output += fmt.Sprintf("Server Address: %s (%s)\n", s.ServerAddress, s.Transport)
	output += fmt.Sprintf("Preview Address: %s\n", s.PreviewAddress)
	output += fmt.Sprintf("Save Path: %s\n", s.SavePath)
	output += fmt.Sprintf("Poll Interval: %dms\n", s.PollIntervalMs)
	output += fmt.Sprintf("Fractal: %s, Colors: %s\n", s.FractalType, palette.ColorSet(s.ColorSet))
	return output
}

// Verify replaces missing or unusable values with defaults. It fails only for values
// that cannot be guessed, like an unknown transport.
func (s *Settings) Verify() error {
	if s.ServerAddress == "" {
		s.ServerAddress = "localhost:51000"
	}
	switch s.Transport {
	case "":
		s.Transport = rpc.TransportTcp
	case rpc.TransportTcp, rpc.TransportHttp, rpc.TransportWebsocket:
	default:
		return fmt.Errorf("unknown transport %q", s.Transport)
	}
	if s.SavePath == "" {
		s.SavePath, _ = os.Getwd()
	}
	if s.PollIntervalMs <= 0 {
		s.PollIntervalMs = 100
	}
	if s.FractalType == "" {
		s.FractalType = fractal.Mandelbrot.String()
	}
	if _, err := fractal.ParseType(s.FractalType); err != nil {
		s.logger.Warningf("Unknown fractal type %q, using %s", s.FractalType, fractal.Mandelbrot)
		s.FractalType = fractal.Mandelbrot.String()
	}
	if !palette.ColorSet(s.ColorSet).Valid() {
		s.ColorSet = int(palette.Rainbow)
	}
	if s.ParametersFile != "" {
		if _, err := os.Stat(s.ParametersFile); err != nil {
			misc.CheckError(err, s.logger, misc.Warning)
			s.ParametersFile = ""
		}
	}
	return nil
}
