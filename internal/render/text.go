package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"circuit-diagram/pkg/colorutil"

	"gocv.io/x/gocv"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// OpenCV's Hershey fonts have no arrow glyph, so text goes through the Go
// fonts and is stamped onto the surface as a patch.

var (
	fontsOnce   sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font
	fontErr     error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regularFont, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			return
		}
		boldFont, fontErr = opentype.Parse(gobold.TTF)
	})
	return fontErr
}

// faces holds the font faces for one render. Faces keep glyph buffers and
// must not be shared between goroutines.
type faces struct {
	label      font.Face
	title      font.Face
	boardTitle font.Face
}

func newFaces(opts Options) (*faces, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	newFace := func(f *opentype.Font, size float64) (font.Face, error) {
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     opts.DPI,
			Hinting: font.HintingFull,
		})
	}

	fs := &faces{}
	var err error
	if fs.label, err = newFace(regularFont, opts.LabelSize); err != nil {
		return nil, err
	}
	if fs.title, err = newFace(regularFont, opts.TitleSize); err != nil {
		fs.Close()
		return nil, err
	}
	if fs.boardTitle, err = newFace(boldFont, opts.BoardTitleSize); err != nil {
		fs.Close()
		return nil, err
	}
	return fs, nil
}

func (fs *faces) Close() {
	for _, f := range []font.Face{fs.label, fs.title, fs.boardTitle} {
		if f != nil {
			f.Close()
		}
	}
}

// anchor says which part of the text sits on the anchor point.
type anchor int

const (
	anchorCenter   anchor = iota // text box centered on the point
	anchorBaseline               // horizontally centered, baseline on the point
)

// textStamp draws one piece of text on a translucent box.
type textStamp struct {
	face    font.Face
	text    string
	at      image.Point
	anchor  anchor
	pad     int
	opacity float64
	box     color.RGBA
	ink     color.RGBA
}

// extent returns the box the stamp covers, in surface pixels.
func (s textStamp) extent() (image.Rectangle, int) {
	adv := font.MeasureString(s.face, s.text).Ceil()
	m := s.face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()

	var baseline int
	switch s.anchor {
	case anchorBaseline:
		baseline = s.at.Y
	default:
		baseline = s.at.Y - (ascent+descent)/2 + ascent
	}
	left := s.at.X - adv/2
	r := image.Rect(left, baseline-ascent, left+adv, baseline+descent)
	return r.Inset(-s.pad), baseline
}

// draw stamps the text onto dst and returns the covered area.
func (s textStamp) draw(dst *gocv.Mat) (image.Rectangle, error) {
	if s.text == "" {
		return image.Rectangle{}, nil
	}
	box, baseline := s.extent()
	visible := box.Intersect(image.Rect(0, 0, dst.Cols(), dst.Rows()))
	if visible.Empty() {
		return image.Rectangle{}, nil
	}

	roi := dst.Region(visible)
	defer roi.Close()

	patch, err := matToRGBA(roi)
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("read label area: %w", err)
	}
	pb := patch.Bounds()
	for y := pb.Min.Y; y < pb.Max.Y; y++ {
		for x := pb.Min.X; x < pb.Max.X; x++ {
			patch.SetRGBA(x, y, colorutil.Blend(patch.RGBAAt(x, y), s.box, s.opacity))
		}
	}

	d := font.Drawer{
		Dst:  patch,
		Src:  image.NewUniform(s.ink),
		Face: s.face,
		Dot:  fixed.P(box.Min.X+s.pad-visible.Min.X, baseline-visible.Min.Y),
	}
	d.DrawString(s.text)

	mat, err := imageToMat(patch, s.box)
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("convert label: %w", err)
	}
	defer mat.Close()
	mat.CopyTo(&roi)

	return visible, nil
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
