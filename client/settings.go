package client

import (
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"

	"FractalGenerator/rpc"
)

type Settings struct {
	logger bslogger.Logger

	ServerAddress string `koanf:"server_address"`
	Transport     string `koanf:"transport"`
}

// NewSettings reads the viewer address from a toml file. An empty name gives the defaults.
func NewSettings(settingsFile string) (Settings, error) {
	s := Settings{
		logger: bslogger.NewLogger("ClientSettings", bslogger.Normal, nil),
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
	output := "\nClient settings\n"
	output += fmt.Sprintf("Server Address: %s (%s)\n", s.ServerAddress, s.Transport)
	return output
}

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
	return nil
}
