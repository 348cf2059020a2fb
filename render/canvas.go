package render

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
	"sync/atomic"
)

// Canvas is the pixel buffer of one render. The renderer writes to it while the
// display side takes snapshots, so every access goes through the lock.
type Canvas struct {
	mutex   sync.RWMutex
	image   *image.RGBA
	version atomic.Uint64
}

// NewCanvas returns an opaque black canvas. A render always gets a fresh one.
func NewCanvas(width int, height int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)
	return &Canvas{image: img}
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.image.Bounds()
}

// FillTile paints the size×size block whose top left pixel is (x, y), clipped to the canvas.
func (c *Canvas) FillTile(x int, y int, size int, col color.RGBA) {
	c.mutex.Lock()
	draw.Draw(c.image, image.Rect(x, y, x+size, y+size).Intersect(c.image.Rect), image.NewUniform(col), image.Point{}, draw.Src)
	c.mutex.Unlock()
	c.version.Add(1)
}

// Recolor replaces the colour of pixel (x, y) with fn of its current colour.
func (c *Canvas) Recolor(x int, y int, fn func(color.RGBA) color.RGBA) {
	c.mutex.Lock()
	c.image.SetRGBA(x, y, fn(c.image.RGBAAt(x, y)))
	c.mutex.Unlock()
	c.version.Add(1)
}

func (c *Canvas) At(x int, y int) color.RGBA {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.image.RGBAAt(x, y)
}

// Snapshot copies the current pixels.
func (c *Canvas) Snapshot() *image.RGBA {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	img := image.NewRGBA(c.image.Rect)
	copy(img.Pix, c.image.Pix)
	return img
}

// Version increases with every write, so pollers can skip unchanged frames.
func (c *Canvas) Version() uint64 {
	return c.version.Load()
}
