// Package client drives a running viewer over rpc.
package client

import (
	"fmt"
	"image"

	"github.com/BrugadaSyndrome/bslogger"

	"FractalGenerator/misc"
	"FractalGenerator/rpc"
	"FractalGenerator/viewer"
)

type Client struct {
	connection rpc.Client
	logger     bslogger.Logger
	settings   Settings
}

// NewClient connects to the viewer named in settings.
func NewClient(settings Settings) (*Client, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	connection, err := rpc.NewClient(settings.Transport, settings.ServerAddress, "ViewerClient")
	if err != nil {
		return nil, err
	}
	c := &Client{
		connection: connection,
		logger:     bslogger.NewLogger("Client", bslogger.Normal, nil),
		settings:   settings,
	}
	if err = c.connection.Connect(); err != nil {
		return nil, fmt.Errorf("unable to reach viewer at %s: %w", settings.ServerAddress, err)
	}
	return c, nil
}

func (c *Client) Close() error {
	return c.connection.Disconnect()
}

func (c *Client) status(method string, request interface{}) (viewer.Status, error) {
	var reply viewer.Status
	err := c.connection.Call("Service."+method, request, &reply)
	return reply, err
}

func (c *Client) Repaint() (viewer.Status, error) {
	return c.status("Repaint", misc.Nothing{})
}

func (c *Client) Stop() (viewer.Status, error) {
	return c.status("Stop", misc.Nothing{})
}

func (c *Client) Cancel() (viewer.Status, error) {
	return c.status("Cancel", misc.Nothing{})
}

func (c *Client) Status() (viewer.Status, error) {
	return c.status("Status", misc.Nothing{})
}

func rectangle(r image.Rectangle) viewer.Rectangle {
	return viewer.Rectangle{X0: r.Min.X, Y0: r.Min.Y, X1: r.Max.X, Y1: r.Max.Y}
}

func (c *Client) ZoomIn(r image.Rectangle) (viewer.Status, error) {
	return c.status("ZoomIn", rectangle(r))
}

func (c *Client) ZoomOut(r image.Rectangle) (viewer.Status, error) {
	return c.status("ZoomOut", rectangle(r))
}

func (c *Client) Click(x int, y int) (viewer.Status, error) {
	return c.status("Click", viewer.Point{X: x, Y: y})
}

func (c *Client) Resize(width int, height int) (viewer.Status, error) {
	return c.status("Resize", viewer.Size{Width: width, Height: height})
}

func (c *Client) SetType(name string) (viewer.Status, error) {
	return c.status("SetType", name)
}

func (c *Client) SetColorSet(name string) (viewer.Status, error) {
	return c.status("SetColorSet", name)
}

func (c *Client) SetField(name string, value string) (viewer.Status, error) {
	return c.status("SetField", viewer.Field{Name: name, Value: value})
}

func (c *Client) Defaults(name string) (viewer.Status, error) {
	return c.status("Defaults", name)
}

func (c *Client) Preset(index int) (viewer.Status, error) {
	return c.status("Preset", index)
}

func (c *Client) Load(fileName string) (viewer.Status, error) {
	return c.status("Load", fileName)
}

func (c *Client) Save(fileName string) (string, error) {
	var written string
	err := c.connection.Call("Service.Save", fileName, &written)
	return written, err
}

func (c *Client) Export(fileName string, width uint) (string, error) {
	var written string
	err := c.connection.Call("Service.Export", viewer.ExportRequest{FileName: fileName, Width: width}, &written)
	return written, err
}

func (c *Client) Shutdown() error {
	var nothing misc.Nothing
	return c.connection.Call("Service.Shutdown", misc.Nothing{}, &nothing)
}
