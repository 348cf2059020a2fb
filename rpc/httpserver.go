package rpc

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/rpc"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/coder/websocket"
)

// WebsocketPath is where HttpServer accepts rpc over websocket.
const WebsocketPath = "/ws"

type HttpServer struct {
	address  string
	ctx      context.Context
	cancel   context.CancelFunc
	listener net.Listener
	mux      *http.ServeMux
	object   interface{}
	server   *http.Server

	Logger bslogger.Logger
	Name   string
	WG     *sync.WaitGroup
}

// NewHttpServer serves the exported methods of object as rpc over http and over
// websocket, next to any handlers added with Handle. A nil object serves only the
// handlers.
func NewHttpServer(object interface{}, address string, name string) HttpServer {
	ctx, cancel := context.WithCancel(context.Background())
	return HttpServer{
		address: address,
		ctx:     ctx,
		cancel:  cancel,
		mux:     http.NewServeMux(),
		object:  object,
		Logger:  bslogger.NewLogger(name, bslogger.Normal, nil),
		Name:    name,
		WG:      &sync.WaitGroup{},
	}
}

// Handle registers an extra handler; call it before Run.
func (hs *HttpServer) Handle(pattern string, handler http.Handler) {
	hs.mux.Handle(pattern, handler)
}

func (hs *HttpServer) Run() error {
	if hs.object != nil {
		handler := rpc.NewServer()
		if err := handler.Register(hs.object); err != nil {
			hs.Logger.Error("Registering object")
			return err
		}
		// rpc.Server is an http.Handler, so it does not need http.DefaultServeMux
		hs.mux.Handle(rpc.DefaultRPCPath, handler)
		hs.mux.HandleFunc(WebsocketPath, hs.websocketHandler(handler))
	}

	var err error
	hs.listener, err = net.Listen("tcp", hs.address)
	if err != nil {
		hs.Logger.Errorf("Listening at address %s", hs.address)
		return err
	}

	hs.server = &http.Server{Handler: hs.mux, ReadHeaderTimeout: 5 * time.Second}
	hs.WG.Add(1)
	go func() {
		defer hs.WG.Done()
		if err := hs.server.Serve(hs.listener); !errors.Is(err, http.ErrServerClosed) {
			hs.Logger.Errorf("Error serving at address %s: %s", hs.address, err)
		}
	}()

	hs.Logger.Infof("Running server at address %s", hs.Address())
	return nil
}

// websocketHandler serves rpc on each accepted websocket until the client leaves
// or the server stops.
func (hs *HttpServer) websocketHandler(handler *rpc.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			hs.Logger.Warningf("Accepting websocket from %s - %s", r.RemoteAddr, err)
			return
		}
		hs.Logger.Debugf("Server opened websocket to client at address %s", r.RemoteAddr)
		handler.ServeConn(websocket.NetConn(hs.ctx, c, websocket.MessageBinary))
	}
}

// Context is cancelled when the server stops. Long lived handlers should end with it.
func (hs *HttpServer) Context() context.Context {
	return hs.ctx
}

// Address is the address the server listens on, resolved once Run succeeded.
func (hs *HttpServer) Address() string {
	if hs.listener != nil {
		return hs.listener.Addr().String()
	}
	return hs.address
}

func (hs *HttpServer) Stop() error {
	hs.cancel()
	if hs.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.server.Shutdown(ctx); err != nil {
		hs.Logger.Errorf("Shutting down server at address %s", hs.address)
		return err
	}
	hs.WG.Wait()
	hs.Logger.Infof("Shut down server at address %s", hs.address)
	return nil
}
