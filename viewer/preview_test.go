package viewer

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
)

func renderedViewer(t *testing.T) *Viewer {
	t.Helper()
	v := newTestViewer(t)
	small(t, v)
	if err := v.Repaint(); err != nil {
		t.Fatal(err)
	}
	wait(t, v.Task())
	return v
}

func TestServeFrameBeforeRender(t *testing.T) {
	v := newTestViewer(t)
	w := httptest.NewRecorder()
	v.serveFrame(w, httptest.NewRequest(http.MethodGet, FramePath, nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestServeFrame(t *testing.T) {
	v := renderedViewer(t)

	tests := []struct {
		query  string
		code   int
		width  int
		height int
	}{
		{"", http.StatusOK, 64, 48},
		{"?width=32", http.StatusOK, 32, 24},
		{"?width=640", http.StatusOK, 64, 48},
		{"?width=wide", http.StatusBadRequest, 0, 0},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		v.serveFrame(w, httptest.NewRequest(http.MethodGet, FramePath+tt.query, nil))
		if w.Code != tt.code {
			t.Errorf("%q: status = %d, want %d", tt.query, w.Code, tt.code)
			continue
		}
		if tt.code != http.StatusOK {
			continue
		}
		if ct := w.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("%q: content type %q", tt.query, ct)
		}
		img, err := png.Decode(w.Body)
		if err != nil {
			t.Fatalf("%q: %s", tt.query, err)
		}
		if b := img.Bounds(); b.Dx() != tt.width || b.Dy() != tt.height {
			t.Errorf("%q: image is %dx%d, want %dx%d", tt.query, b.Dx(), b.Dy(), tt.width, tt.height)
		}
	}
}

func TestPreviewStreamsFrames(t *testing.T) {
	v := renderedViewer(t)

	base, stop := context.WithCancel(context.Background())
	server := httptest.NewServer(v.previewHandler(base))
	defer server.Close()
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(server.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer c.CloseNow()

	kind, data, err := c.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if kind != websocket.MessageBinary {
		t.Errorf("frame sent as %s", kind)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("frame is %v", b)
	}

	// an unchanged canvas is not sent again
	quiet, cancelQuiet := context.WithTimeout(ctx, 3*v.pollInterval())
	defer cancelQuiet()
	if _, _, err = c.Read(quiet); err == nil {
		t.Errorf("an unchanged frame was sent twice")
	}
}
