package render

import (
	"image"
	"image/color"
	"image/draw"

	"gocv.io/x/gocv"
)

// imageToMat converts a Go image.Image to a BGR OpenCV Mat. Transparent
// pixels are composited over bg first; the BGR Mat has no alpha.
func imageToMat(img image.Image, bg color.RGBA) (gocv.Mat, error) {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	rgba, ok := img.(*image.RGBA)
	if !ok || !rgba.Opaque() || rgba.Rect.Min != (image.Point{}) || rgba.Stride != 4*w {
		rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(rgba, rgba.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Over)
	}

	mat, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC4, rgba.Pix)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer mat.Close()

	// Convert RGBA to BGR (OpenCV format)
	bgr := gocv.NewMat()
	gocv.CvtColor(mat, &bgr, gocv.ColorRGBAToBGR)
	return bgr, nil
}

// matToRGBA copies a Mat into a zero-origin RGBA image.
func matToRGBA(m gocv.Mat) (*image.RGBA, error) {
	// Clone first: ROIs are not continuous and ToImage reads the raw buffer.
	c := m.Clone()
	defer c.Close()

	img, err := c.ToImage()
	if err != nil {
		return nil, err
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}

// paste copies src into dst at rect, dropping whatever falls outside dst.
// It returns the part of rect that was written.
func paste(dst *gocv.Mat, src gocv.Mat, rect image.Rectangle) image.Rectangle {
	visible := rect.Intersect(image.Rect(0, 0, dst.Cols(), dst.Rows()))
	if visible.Empty() {
		return image.Rectangle{}
	}

	from := src.Region(visible.Sub(rect.Min))
	defer from.Close()
	to := dst.Region(visible)
	defer to.Close()

	from.CopyTo(&to)
	return visible
}
