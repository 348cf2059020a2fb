package rpc

import "fmt"

const (
	TransportTcp       = "tcp"
	TransportHttp      = "http"
	TransportWebsocket = "ws"
)

// Client is a connection to an rpc server over any of the transports.
type Client interface {
	Connect() error
	Call(method string, request interface{}, reply interface{}) error
	Disconnect() error
}

// Server is the side that registers an object and answers calls on it.
type Server interface {
	Run() error
	Stop() error
	Address() string
}

// NewClient returns a client for serverAddress using the named transport.
func NewClient(transport string, serverAddress string, name string) (Client, error) {
	switch transport {
	case TransportTcp, "":
		client := NewTcpClient(serverAddress, name)
		return &client, nil
	case TransportHttp:
		client := NewHttpClient(serverAddress, name)
		return &client, nil
	case TransportWebsocket:
		client := NewWsClient(serverAddress, name)
		return &client, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", transport)
	}
}

// NewServer returns a server for object using the named transport. Http servers
// answer websocket clients as well.
func NewServer(transport string, object interface{}, address string, name string) (Server, error) {
	switch transport {
	case TransportTcp, "":
		server := NewTcpServer(object, address, name)
		return &server, nil
	case TransportHttp, TransportWebsocket:
		server := NewHttpServer(object, address, name)
		return &server, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", transport)
	}
}
