package render

import (
	"fmt"
	"image/color"

	"circuit-diagram/pkg/colorutil"
)

// Options configures how a diagram is drawn.
type Options struct {
	DPI          float64 // output resolution
	CanvasInches float64 // side of the square logical canvas
	PadInches    float64 // blank border kept around the drawn content

	LineWidth    float64 // connector width in points
	MarkerRadius float64 // endpoint marker radius in canvas units

	LabelSize      float64 // connector label font size in points
	TitleSize      float64 // module title font size in points
	BoardTitleSize float64 // board title font size in points (bold)
	LabelPadding   float64 // label box padding in points
	LabelOpacity   float64 // opacity of the white box behind labels and titles

	BoardTitleLift  float64 // board title baseline above the board, canvas units
	ModuleTitleLift float64 // module title baseline above each module, canvas units

	SourceMarker color.RGBA // marker on the module pin
	TargetMarker color.RGBA // marker on the board pin
	Background   color.RGBA
	TextColor    color.RGBA
}

// DefaultOptions returns default rendering options.
func DefaultOptions() Options {
	return Options{
		DPI:          200,
		CanvasInches: 8,
		PadInches:    0.1,

		LineWidth:    2,
		MarkerRadius: 0.7,

		LabelSize:      9,
		TitleSize:      10,
		BoardTitleSize: 12,
		LabelPadding:   2,
		LabelOpacity:   0.8,

		BoardTitleLift:  3,
		ModuleTitleLift: 2,

		SourceMarker: colorutil.Black,
		TargetMarker: colorutil.Green,
		Background:   colorutil.White,
		TextColor:    colorutil.Black,
	}
}

// Validate checks that the options describe a drawable surface.
func (o Options) Validate() error {
	if o.DPI <= 0 {
		return fmt.Errorf("DPI must be positive, got %.1f", o.DPI)
	}
	if o.CanvasInches <= 0 {
		return fmt.Errorf("canvas size must be positive, got %.2fin", o.CanvasInches)
	}
	if o.PadInches < 0 || o.LineWidth < 0 || o.MarkerRadius < 0 || o.LabelPadding < 0 {
		return fmt.Errorf("lengths must not be negative")
	}
	if o.LabelSize <= 0 || o.TitleSize <= 0 || o.BoardTitleSize <= 0 {
		return fmt.Errorf("font sizes must be positive")
	}
	if o.LabelOpacity < 0 || o.LabelOpacity > 1 {
		return fmt.Errorf("label opacity %.2f outside [0,1]", o.LabelOpacity)
	}
	return nil
}

// points converts a length in points to pixels.
func (o Options) points(pt float64) float64 {
	return pt * o.DPI / 72
}
