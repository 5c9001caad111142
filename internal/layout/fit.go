// Package layout places the board and module images on the canvas and
// computes where each module pin sits.
package layout

import (
	"errors"
	"fmt"

	"circuit-diagram/internal/canvas"
	"circuit-diagram/pkg/geometry"
)

// ErrInvalidImage is returned for images with zero or negative dimensions.
var ErrInvalidImage = errors.New("invalid image")

// BoardInset is subtracted from the zone width to get the widest a fitted image may be.
const BoardInset = 4.0

// Fit scales an image of the given native size to the height of target,
// shrinking it further if it would be wider than maxWidth. The aspect ratio
// is always kept and the result is centered in target.
func Fit(nativeW, nativeH int, target geometry.Box, maxWidth float64) (geometry.Box, error) {
	if err := checkSize(nativeW, nativeH); err != nil {
		return geometry.Box{}, err
	}

	h := target.Height()
	w := h * float64(nativeW) / float64(nativeH)
	// Rounding noise must not shrink an image that already fits.
	if w > maxWidth && !geometry.Near(w, maxWidth) {
		scale := maxWidth / w
		h *= scale
		w = maxWidth
	}

	c := target.Center()
	return geometry.NewBox(c.X-w/2, c.Y-h/2, c.X+w/2, c.Y+h/2), nil
}

// FitWidth scales an image to exactly width, centered on cx, with its top
// edge at yTop. The height follows from the aspect ratio.
func FitWidth(nativeW, nativeH int, cx, yTop, width float64) (geometry.Box, error) {
	if err := checkSize(nativeW, nativeH); err != nil {
		return geometry.Box{}, err
	}
	h := width * float64(nativeH) / float64(nativeW)
	return geometry.NewBox(cx-width/2, yTop-h, cx+width/2, yTop), nil
}

// LayoutBoard places the board image in the left zone using the full usable
// canvas height.
func LayoutBoard(nativeW, nativeH int) (geometry.Box, error) {
	box, err := Fit(nativeW, nativeH, canvas.LeftZone(), canvas.LeftWidth-BoardInset)
	if err != nil {
		return geometry.Box{}, fmt.Errorf("board image: %w", err)
	}
	return box, nil
}

func checkSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidImage, w, h)
	}
	return nil
}
