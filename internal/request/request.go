// Package request reads and writes diagram request files (.json): which
// board to draw, which modules to stack next to it and how their pins are
// wired. It turns a request into a diagram.Input by loading the images.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"circuit-diagram/internal/board"
	"circuit-diagram/internal/diagram"
	"circuit-diagram/internal/module"
	"circuit-diagram/internal/raster"
)

// CurrentVersion is the file format version written by Save.
const CurrentVersion = 1

// File is a diagram request.
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name,omitempty"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	Board      Board       `json:"board"`
	Components []Component `json:"components"`
}

// Board selects the board and its photo.
type Board struct {
	Name       string `json:"name,omitempty"`       // built-in board name; defaults to the Arduino UNO
	Definition string `json:"definition,omitempty"` // board definition JSON, overrides Name
	Image      string `json:"image,omitempty"`      // photo path; defaults to the board's shipped photo
	Title      string `json:"title,omitempty"`      // text above the board; defaults to the board name
}

// Component is one module to draw.
type Component struct {
	Type  string            `json:"type"`
	Image string            `json:"image,omitempty"` // photo path; defaults to the catalog photo
	Pins  map[string]string `json:"pins,omitempty"`  // module pin -> board pin
}

// New creates an empty request for the Arduino UNO.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  CurrentVersion,
		Name:     name,
		Created:  now,
		Modified: now,
		Board:    Board{Name: board.UnoName},
	}
}

// Load loads a request from a JSON file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse request %s: %w", path, err)
	}
	return &f, nil
}

// Save saves the request to a file.
func (f *File) Save(path string) error {
	f.Modified = time.Now()
	if f.Version == 0 {
		f.Version = CurrentVersion
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// AddComponent appends a module with the given signal pin mapping.
func (f *File) AddComponent(typ string, pins map[string]string) {
	f.Components = append(f.Components, Component{Type: typ, Pins: pins})
	f.Modified = time.Now()
}

// Validate checks the component count and that each component names a type.
func (f *File) Validate() error {
	if f.Version > CurrentVersion {
		return fmt.Errorf("request version %d is newer than supported version %d", f.Version, CurrentVersion)
	}
	n := len(f.Components)
	if n < 1 || n > module.MaxPerDiagram {
		return fmt.Errorf("need 1 to %d components, got %d", module.MaxPerDiagram, n)
	}
	for i, c := range f.Components {
		if c.Type == "" {
			return fmt.Errorf("component %d has no type", i+1)
		}
	}
	return nil
}

// Rebase rewrites relative paths in the request, which start at fromDir,
// so that they start at toDir. Absolute and empty paths are left alone.
func (f *File) Rebase(fromDir, toDir string) {
	f.Board.Definition = rebasePath(fromDir, toDir, f.Board.Definition)
	f.Board.Image = rebasePath(fromDir, toDir, f.Board.Image)
	for i := range f.Components {
		f.Components[i].Image = rebasePath(fromDir, toDir, f.Components[i].Image)
	}
}

// Registry returns the board pin registry the request refers to.
// Relative definition paths are taken relative to baseDir.
func (f *File) Registry(baseDir string) (*board.Registry, *board.Definition, error) {
	if f.Board.Definition != "" {
		def, err := board.LoadDefinition(resolvePath(baseDir, f.Board.Definition))
		if err != nil {
			return nil, nil, err
		}
		reg, err := def.Registry()
		if err != nil {
			return nil, nil, err
		}
		return reg, def, nil
	}

	name := f.Board.Name
	if name == "" {
		name = board.UnoName
	}
	reg := board.Lookup(name)
	if reg == nil {
		return nil, nil, fmt.Errorf("unknown board %q (known: %v)", name, board.List())
	}
	return reg, nil, nil
}

// Input loads every image the request names and returns the diagram input.
// Paths given in the request are relative to baseDir; default photos are
// looked up in assetsDir. Components of unknown type are passed through
// without an image so the diagram pipeline can skip them.
func (f *File) Input(baseDir, assetsDir string) (diagram.Input, error) {
	reg, def, err := f.Registry(baseDir)
	if err != nil {
		return diagram.Input{}, err
	}

	l := loader{cache: make(map[string]image.Image)}

	boardPath := resolvePath(baseDir, f.Board.Image)
	if f.Board.Image == "" {
		name := board.DefaultImage(reg.Name())
		if def != nil && def.Image != "" {
			name = def.Image
		}
		if name == "" {
			return diagram.Input{}, fmt.Errorf("%w: no image for board %s", diagram.ErrMissingAsset, reg.Name())
		}
		boardPath = resolvePath(assetsDir, name)
	}
	boardImg, err := l.load(boardPath)
	if err != nil {
		return diagram.Input{}, fmt.Errorf("board: %w", err)
	}

	in := diagram.Input{
		Board:      boardImg,
		BoardTitle: f.Board.Title,
		Registry:   reg,
	}
	for i, c := range f.Components {
		comp := diagram.Component{Type: c.Type, PinMap: c.Pins}

		path := resolvePath(baseDir, c.Image)
		if c.Image == "" {
			mt, ok := module.Lookup(c.Type)
			if !ok {
				in.Components = append(in.Components, comp)
				continue
			}
			path = resolvePath(assetsDir, mt.Image)
		}
		if comp.Image, err = l.load(path); err != nil {
			return diagram.Input{}, fmt.Errorf("component %d (%s): %w", i+1, c.Type, err)
		}
		in.Components = append(in.Components, comp)
	}
	return in, nil
}

// loader reads each image file once per request.
type loader struct {
	cache map[string]image.Image
}

func (l loader) load(path string) (image.Image, error) {
	if img, ok := l.cache[path]; ok {
		return img, nil
	}
	img, err := raster.Load(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %v", diagram.ErrMissingAsset, err)
	case errors.Is(err, raster.ErrUndecodable), errors.Is(err, raster.ErrEmpty):
		return nil, fmt.Errorf("%w: %v", diagram.ErrInvalidImage, err)
	case err != nil:
		return nil, err
	}
	l.cache[path] = img
	return img, nil
}

func resolvePath(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

func rebasePath(fromDir, toDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	abs := filepath.Join(fromDir, p)
	rel, err := filepath.Rel(toDir, abs)
	if err != nil {
		return abs
	}
	return rel
}
