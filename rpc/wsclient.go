package rpc

import (
	"context"
	"fmt"
	"net/rpc"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/coder/websocket"
)

// WsClient calls an HttpServer through its websocket endpoint.
type WsClient struct {
	client        *rpc.Client
	serverAddress string
	cancel        context.CancelFunc

	DialTimeout time.Duration
	Logger      bslogger.Logger
	Name        string
}

func NewWsClient(serverAddress string, name string) WsClient {
	return WsClient{
		serverAddress: serverAddress,
		DialTimeout:   5 * time.Second,
		Logger:        bslogger.NewLogger(name, bslogger.Normal, nil),
		Name:          name,
	}
}

func (wc *WsClient) url() string {
	return fmt.Sprintf("ws://%s%s", wc.serverAddress, WebsocketPath)
}

func (wc *WsClient) Connect() error {
	if wc.client != nil {
		wc.Logger.Warningf("Already connected to server at address %s", wc.serverAddress)
		return nil
	}

	dialCtx, dialCancel := context.WithTimeout(context.Background(), wc.DialTimeout)
	defer dialCancel()
	c, _, err := websocket.Dial(dialCtx, wc.url(), nil)
	if err != nil {
		wc.Logger.Errorf("Error connecting to server at address %s : %s", wc.url(), err)
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	wc.cancel = cancel
	wc.client = rpc.NewClient(websocket.NetConn(ctx, c, websocket.MessageBinary))
	wc.Logger.Debugf("Connected to server at %s", wc.url())
	return nil
}

func (wc *WsClient) Call(method string, request interface{}, reply interface{}) error {
	if wc.client == nil {
		return fmt.Errorf("%w to server at address %s : method %s", ErrNotConnected, wc.serverAddress, method)
	}

	if err := wc.client.Call(method, request, reply); err != nil {
		return err
	}
	wc.Logger.Debugf("Called server %s", method)
	return nil
}

func (wc *WsClient) Disconnect() error {
	if wc.client == nil {
		return fmt.Errorf("%w to server at address %s", ErrNotConnected, wc.serverAddress)
	}

	err := wc.client.Close()
	wc.cancel()
	wc.client = nil
	if err != nil {
		wc.Logger.Errorf("Disconnecting from server at address %s", wc.serverAddress)
		return err
	}
	wc.Logger.Debugf("Disconnected from server at %s", wc.serverAddress)
	return nil
}
