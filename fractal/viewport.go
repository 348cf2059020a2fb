package fractal

import (
	"errors"
	"fmt"
	"image"

	"FractalGenerator/misc"
)

var ErrDegenerateZoom = errors.New("zoom rectangle has no area")

// PixelToPlane maps the top left corner of pixel (px, py) onto the plane. Row 0 is yMax.
func (p *Parameters) PixelToPlane(px int, py int) (float64, float64) {
	x := misc.LerpFloat64(p.XMin, p.XMax, float64(px)/float64(p.SizeX))
	y := misc.LerpFloat64(p.YMax, p.YMin, float64(py)/float64(p.SizeY))
	return x, y
}

// PlaneToPixel maps a plane point to the pixel containing it, truncating toward zero
// the way orbit plotting always has. ok is false when the pixel is outside the image
// or the point is not finite.
func (p *Parameters) PlaneToPixel(x float64, y float64) (px int, py int, ok bool) {
	fx := float64(p.SizeX) * (x - p.XMin) / (p.XMax - p.XMin)
	fy := float64(p.SizeY) * (y - p.YMin) / (p.YMax - p.YMin)
	// the bounds below also reject NaN
	if !(fx > -1 && fx < float64(p.SizeX)) || !(fy >= 1 && fy < float64(p.SizeY)+1) {
		return 0, 0, false
	}
	px = int(fx)
	py = p.SizeY - int(fy)
	return px, py, px >= 0 && px < p.SizeX && py >= 0 && py < p.SizeY
}

// SetFixPoint moves the Julia/Manowar fixed point to the plane point under pixel (px, py).
func (p *Parameters) SetFixPoint(px int, py int) {
	p.XFix, p.YFix = p.PixelToPlane(px, py)
}

func normalise(r image.Rectangle) (image.Rectangle, error) {
	r = r.Canon()
	if r.Dx() == 0 || r.Dy() == 0 {
		return r, ErrDegenerateZoom
	}
	return r, nil
}

// ZoomIn makes the pixel rectangle r of the current image the new viewport.
func (p *Parameters) ZoomIn(r image.Rectangle) error {
	r, err := normalise(r)
	if err != nil {
		return err
	}
	dx := (p.XMax - p.XMin) / float64(p.SizeX)
	dy := (p.YMax - p.YMin) / float64(p.SizeY)

	xMin := p.XMin + float64(r.Min.X)*dx
	xMax := p.XMax - float64(p.SizeX-r.Max.X)*dx
	yMin := p.YMax - float64(r.Max.Y)*dy
	yMax := p.YMax - float64(r.Min.Y)*dy

	p.XMin, p.XMax, p.YMin, p.YMax = xMin, xMax, yMin, yMax
	return nil
}

// ZoomOut treats the pixel rectangle r as if it showed the current viewport and
// extrapolates the bounds of the whole image from it. It undoes ZoomIn(r).
func (p *Parameters) ZoomOut(r image.Rectangle) error {
	r, err := normalise(r)
	if err != nil {
		return err
	}
	dx := (p.XMax - p.XMin) / float64(r.Dx())
	dy := (p.YMax - p.YMin) / float64(r.Dy())

	xMin := p.XMin - float64(r.Min.X)*dx
	xMax := p.XMax + float64(p.SizeX-r.Max.X)*dx
	yMin := p.YMin - float64(p.SizeY-r.Max.Y)*dy
	yMax := p.YMax + float64(r.Min.Y)*dy

	p.XMin, p.XMax, p.YMin, p.YMax = xMin, xMax, yMin, yMax
	return nil
}

// Resize changes the pixel dimensions without touching the viewport.
func (p *Parameters) Resize(sizeX int, sizeY int) error {
	if sizeX <= 0 || sizeY <= 0 || sizeX > MaxSize || sizeY > MaxSize {
		return fmt.Errorf("size %dx%d out of range [1, %d]", sizeX, sizeY, MaxSize)
	}
	p.SizeX, p.SizeY = sizeX, sizeY
	return nil
}
