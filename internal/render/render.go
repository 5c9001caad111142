// Package render draws a laid-out diagram and encodes it as PNG.
//
// Drawing happens on an OpenCV Mat sized to the logical canvas at the
// configured DPI. The output is cropped to the drawn content.
package render

import (
	"errors"
	"fmt"
	"image"

	"circuit-diagram/internal/canvas"
	"circuit-diagram/internal/wiring"
	"circuit-diagram/pkg/geometry"

	"gocv.io/x/gocv"
	"golang.org/x/image/font"
)

// ErrNoBoard is returned when a scene has no board image.
var ErrNoBoard = errors.New("scene has no board image")

// Item is an image placed on the canvas with a title above it.
type Item struct {
	Image image.Image
	Box   geometry.Box
	Title string
}

// Scene is everything one diagram draws.
type Scene struct {
	Board       Item
	Modules     []Item
	Connections []wiring.Connection
}

// Renderer draws scenes. It holds no per-render state and may be shared.
type Renderer struct {
	opts Options
	size int                      // surface side in pixels
	unit float64                  // pixels per canvas unit
	view geometry.AffineTransform // canvas units (y up) to pixels (y down)
}

// New creates a Renderer.
func New(opts Options) (*Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("render options: %w", err)
	}
	size := roundInt(opts.CanvasInches * opts.DPI)
	unit := float64(size) / canvas.Size
	return &Renderer{
		opts: opts,
		size: size,
		unit: unit,
		view: geometry.Translation(0, float64(size)).Compose(geometry.Scale(unit, -unit)),
	}, nil
}

// Size returns the side of the uncropped drawing surface in pixels.
func (r *Renderer) Size() int {
	return r.size
}

// ToPixel maps a canvas coordinate to a surface pixel.
func (r *Renderer) ToPixel(p geometry.Point2D) image.Point {
	q := r.view.Apply(p)
	return image.Pt(roundInt(q.X), roundInt(q.Y))
}

// PixelRect maps a canvas box to a surface rectangle.
func (r *Renderer) PixelRect(b geometry.Box) image.Rectangle {
	q := r.view.ApplyBox(b)
	return image.Rect(roundInt(q.X0), roundInt(q.Y0), roundInt(q.X1), roundInt(q.Y1))
}

// Render draws the scene and returns PNG bytes.
//
// Order: board, modules, then per connection the arrow, its label and the
// two endpoint markers, then titles.
func (r *Renderer) Render(scene Scene) ([]byte, error) {
	if scene.Board.Image == nil {
		return nil, ErrNoBoard
	}

	fs, err := newFaces(r.opts)
	if err != nil {
		return nil, err
	}
	defer fs.Close()

	bg := r.opts.Background
	surface := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(bg.B), float64(bg.G), float64(bg.R), 0),
		r.size, r.size, gocv.MatTypeCV8UC3)
	defer surface.Close()

	var content image.Rectangle

	drawn, err := r.drawItem(&surface, scene.Board)
	if err != nil {
		return nil, fmt.Errorf("draw board: %w", err)
	}
	content = content.Union(drawn)

	for i, m := range scene.Modules {
		drawn, err := r.drawItem(&surface, m)
		if err != nil {
			return nil, fmt.Errorf("draw module %d (%s): %w", i+1, m.Title, err)
		}
		content = content.Union(drawn)
	}

	for _, c := range scene.Connections {
		drawn, err := r.drawConnection(&surface, fs, c)
		if err != nil {
			return nil, fmt.Errorf("draw connection %q: %w", c.Label, err)
		}
		content = content.Union(drawn)
	}

	drawn, err = r.drawTitle(&surface, fs.boardTitle, scene.Board, r.opts.BoardTitleLift)
	if err != nil {
		return nil, err
	}
	content = content.Union(drawn)
	for _, m := range scene.Modules {
		drawn, err := r.drawTitle(&surface, fs.title, m, r.opts.ModuleTitleLift)
		if err != nil {
			return nil, err
		}
		content = content.Union(drawn)
	}

	return r.encode(surface, content)
}

func (r *Renderer) drawItem(dst *gocv.Mat, it Item) (image.Rectangle, error) {
	if it.Image == nil {
		return image.Rectangle{}, fmt.Errorf("no image")
	}
	rect := r.PixelRect(it.Box)
	if rect.Empty() {
		return image.Rectangle{}, nil
	}

	src, err := imageToMat(it.Image, r.opts.Background)
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("convert image: %w", err)
	}
	defer src.Close()

	scaled := gocv.NewMat()
	defer scaled.Close()
	gocv.Resize(src, &scaled, rect.Size(), 0, 0, gocv.InterpolationArea)

	return paste(dst, scaled, rect), nil
}

func (r *Renderer) drawConnection(dst *gocv.Mat, fs *faces, c wiring.Connection) (image.Rectangle, error) {
	from := r.ToPixel(c.From)
	to := r.ToPixel(c.To)
	thickness := max(1, roundInt(r.opts.points(r.opts.LineWidth)))

	gocv.ArrowedLine(dst, from, to, c.Color.RGBA(), thickness)
	covered := image.Rectangle{Min: from, Max: to}.Canon().Inset(-thickness)

	label, err := textStamp{
		face:    fs.label,
		text:    c.Label,
		at:      r.ToPixel(c.From.Midpoint(c.To)),
		anchor:  anchorCenter,
		pad:     roundInt(r.opts.points(r.opts.LabelPadding)),
		opacity: r.opts.LabelOpacity,
		box:     r.opts.Background,
		ink:     r.opts.TextColor,
	}.draw(dst)
	if err != nil {
		return image.Rectangle{}, err
	}
	covered = covered.Union(label)

	radius := roundInt(r.opts.MarkerRadius * r.unit)
	if radius > 0 {
		gocv.Circle(dst, from, radius, r.opts.SourceMarker, -1)
		gocv.Circle(dst, to, radius, r.opts.TargetMarker, -1)
		covered = covered.Union(markerRect(from, radius)).Union(markerRect(to, radius))
	}
	return covered, nil
}

func (r *Renderer) drawTitle(dst *gocv.Mat, face font.Face, it Item, lift float64) (image.Rectangle, error) {
	at := geometry.Point2D{X: it.Box.Center().X, Y: it.Box.Y1 + lift}
	drawn, err := textStamp{
		face:    face,
		text:    it.Title,
		at:      r.ToPixel(at),
		anchor:  anchorBaseline,
		pad:     roundInt(r.opts.points(r.opts.LabelPadding)),
		opacity: r.opts.LabelOpacity,
		box:     r.opts.Background,
		ink:     r.opts.TextColor,
	}.draw(dst)
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("draw title %q: %w", it.Title, err)
	}
	return drawn, nil
}

// encode crops the surface to the drawn content plus padding and encodes it.
func (r *Renderer) encode(surface gocv.Mat, content image.Rectangle) ([]byte, error) {
	bounds := image.Rect(0, 0, surface.Cols(), surface.Rows())
	crop := content.Inset(-roundInt(r.opts.PadInches * r.opts.DPI)).Intersect(bounds)
	if crop.Empty() {
		crop = bounds
	}

	region := surface.Region(crop)
	defer region.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, region)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()

	return append([]byte(nil), buf.GetBytes()...), nil
}

func markerRect(c image.Point, radius int) image.Rectangle {
	return image.Rect(c.X-radius, c.Y-radius, c.X+radius+1, c.Y+radius+1)
}
