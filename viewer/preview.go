package viewer

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"

	"FractalGenerator/misc"
	"FractalGenerator/rpc"
)

const (
	FramePath   = "/frame.png"
	PreviewPath = "/preview"
)

func (v *Viewer) registerPreview(server *rpc.HttpServer) {
	server.Handle(FramePath, http.HandlerFunc(v.serveFrame))
	server.Handle(PreviewPath, v.previewHandler(server.Context()))
}

// serveFrame answers with the current canvas as a png, mid render included. The
// optional width query parameter scales it down.
func (v *Viewer) serveFrame(w http.ResponseWriter, r *http.Request) {
	img, _, _, err := v.frame(false)
	if errors.Is(err, ErrNothingRendered) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var width uint64
	if text := r.URL.Query().Get("width"); text != "" {
		if width, err = strconv.ParseUint(text, 10, 32); err != nil {
			http.Error(w, "width must be a positive integer", http.StatusBadRequest)
			return
		}
	}

	data, err := misc.EncodePNG(img, uint(width))
	if misc.CheckError(err, v.logger, misc.Error) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, err = w.Write(data)
	misc.CheckError(err, v.logger, misc.Debug)
}

// previewHandler streams a png frame over a websocket each time the canvas changed
// since the last poll, until the client leaves or the server stops.
func (v *Viewer) previewHandler(base context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			v.logger.Warningf("Accepting preview from %s - %s", r.RemoteAddr, err)
			return
		}
		defer c.CloseNow()
		v.logger.Debugf("Preview opened by %s", r.RemoteAddr)

		// the client only listens, CloseRead notices when it goes away
		ctx := c.CloseRead(base)

		poll := time.NewTicker(v.pollInterval())
		defer poll.Stop()

		var lastTask uint
		var lastVersion uint64
		for {
			select {
			case <-ctx.Done():
				v.logger.Debugf("Preview closed by %s", r.RemoteAddr)
				return
			case <-poll.C:
				img, id, version, err := v.frame(false)
				if err != nil || (id == lastTask && version == lastVersion) {
					continue
				}
				data, err := misc.EncodePNG(img, 0)
				if misc.CheckError(err, v.logger, misc.Error) {
					continue
				}

				writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
				err = c.Write(writeCtx, websocket.MessageBinary, data)
				cancel()
				if err != nil {
					v.logger.Debugf("Preview to %s ended - %s", r.RemoteAddr, err)
					return
				}
				lastTask, lastVersion = id, version
			}
		}
	}
}
