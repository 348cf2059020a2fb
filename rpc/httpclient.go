package rpc

import (
	"fmt"
	"net/rpc"

	"github.com/BrugadaSyndrome/bslogger"
)

type HttpClient struct {
	serverAddress string
	client        *rpc.Client

	Logger bslogger.Logger
	Name   string
}

func NewHttpClient(serverAddress string, name string) HttpClient {
	return HttpClient{
		serverAddress: serverAddress,
		Logger:        bslogger.NewLogger(name, bslogger.Normal, nil),
		Name:          name,
	}
}

func (hc *HttpClient) Connect() error {
	if hc.client != nil {
		hc.Logger.Warningf("Already connected to server at address %s", hc.serverAddress)
		return nil
	}

	var err error
	hc.client, err = rpc.DialHTTP("tcp", hc.serverAddress)
	if err != nil {
		hc.Logger.Errorf("Error connecting to server at address %s : %s", hc.serverAddress, err)
		return err
	}
	hc.Logger.Debugf("Connected to server at %s", hc.serverAddress)
	return nil
}

func (hc *HttpClient) Call(method string, request interface{}, reply interface{}) error {
	if hc.client == nil {
		return fmt.Errorf("%w to server at address %s : method %s", ErrNotConnected, hc.serverAddress, method)
	}

	if err := hc.client.Call(method, request, reply); err != nil {
		return err
	}
	hc.Logger.Debugf("Called server %s", method)
	return nil
}

func (hc *HttpClient) Disconnect() error {
	if hc.client == nil {
		return fmt.Errorf("%w to server at address %s", ErrNotConnected, hc.serverAddress)
	}

	err := hc.client.Close()
	hc.client = nil
	if err != nil {
		hc.Logger.Errorf("Disconnecting from server at address %s", hc.serverAddress)
		return err
	}
	hc.Logger.Debugf("Disconnected from server at %s", hc.serverAddress)
	return nil
}
