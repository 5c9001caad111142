// Package builder provides the component form: pick up to five modules,
// map their signal pins to board pins and render the wiring diagram.
package builder

import (
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strconv"

	"circuit-diagram/internal/board"
	"circuit-diagram/internal/diagram"
	"circuit-diagram/internal/module"
	"circuit-diagram/internal/raster"
	"circuit-diagram/internal/render"
	"circuit-diagram/internal/request"
	"circuit-diagram/ui/prefs"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var dpiChoices = []string{"100", "150", "200", "300"}

// slot is the form section for one component.
type slot struct {
	card       *widget.Card
	typeSelect *widget.Select
	pinForm    *widget.Form
	entries    map[string]*widget.SelectEntry
	order      []string // signal pins in catalog order
}

// Builder is the diagram form and preview.
type Builder struct {
	window fyne.Window
	prefs  *prefs.Prefs

	countSelect *widget.Select
	dpiSelect   *widget.Select
	assetsEntry *widget.Entry
	titleEntry  *widget.Entry
	slots       []*slot
	slotBox     *fyne.Container

	preview *fynecanvas.Image
	status  *widget.Label
	saveBtn *widget.Button

	// Request last opened, and the folder its relative paths start from.
	// Fields the form does not edit are carried over from it.
	loaded    *request.File
	baseDir   string
	boardPins []string

	lastPNG []byte
	content fyne.CanvasObject
}

// New creates the builder UI for window.
func New(window fyne.Window, p *prefs.Prefs) *Builder {
	b := &Builder{
		window:    window,
		prefs:     p,
		boardPins: board.Uno().Names(),
	}
	b.content = b.createContent()
	return b
}

// Content returns the root object to put in the window.
func (b *Builder) Content() fyne.CanvasObject {
	return b.content
}

func (b *Builder) createContent() fyne.CanvasObject {
	b.assetsEntry = widget.NewEntry()
	b.assetsEntry.SetText(b.prefs.StringWithFallback(prefs.KeyAssetsDir, "assets"))
	b.assetsEntry.OnChanged = func(s string) {
		b.prefs.SetString(prefs.KeyAssetsDir, s)
	}
	browseBtn := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), b.chooseAssetsDir)

	b.titleEntry = widget.NewEntry()
	b.titleEntry.SetPlaceHolder(board.UnoName)

	counts := make([]string, module.MaxPerDiagram)
	for i := range counts {
		counts[i] = strconv.Itoa(i + 1)
	}
	b.countSelect = widget.NewSelect(counts, func(s string) {
		n, _ := strconv.Atoi(s)
		b.setVisibleSlots(n)
	})

	b.dpiSelect = widget.NewSelect(dpiChoices, func(s string) {
		if dpi, err := strconv.ParseFloat(s, 64); err == nil {
			b.prefs.SetFloat(prefs.KeyDPI, dpi)
		}
	})
	b.dpiSelect.SetSelected(strconv.FormatFloat(b.prefs.FloatWithFallback(prefs.KeyDPI, render.DefaultOptions().DPI), 'f', -1, 64))

	b.slotBox = container.NewVBox()
	for i := 0; i < module.MaxPerDiagram; i++ {
		s := b.newSlot(i)
		b.slots = append(b.slots, s)
		b.slotBox.Add(s.card)
	}
	b.countSelect.SetSelected("1")

	settings := widget.NewForm(
		widget.NewFormItem("Photos folder", container.NewBorder(nil, nil, nil, browseBtn, b.assetsEntry)),
		widget.NewFormItem("Board title", b.titleEntry),
		widget.NewFormItem("Components", b.countSelect),
		widget.NewFormItem("DPI", b.dpiSelect),
	)

	generateBtn := widget.NewButtonWithIcon("Generate", theme.MediaPlayIcon(), func() {
		if err := b.Generate(); err != nil {
			dialog.ShowError(fmt.Errorf("Error: %v", err), b.window)
		}
	})
	generateBtn.Importance = widget.HighImportance
	b.saveBtn = widget.NewButtonWithIcon("Save PNG", theme.DocumentSaveIcon(), b.savePNG)
	b.saveBtn.Disable()
	openBtn := widget.NewButtonWithIcon("Open Request", theme.FolderOpenIcon(), b.openRequest)
	saveReqBtn := widget.NewButtonWithIcon("Save Request", theme.DocumentSaveIcon(), b.saveRequest)

	buttons := container.NewGridWithColumns(2, generateBtn, b.saveBtn, openBtn, saveReqBtn)
	form := container.NewBorder(
		settings,
		buttons,
		nil, nil,
		container.NewVScroll(b.slotBox),
	)

	b.preview = fynecanvas.NewImageFromImage(nil)
	b.preview.FillMode = fynecanvas.ImageFillContain
	b.preview.SetMinSize(fyne.NewSize(400, 400))
	b.status = widget.NewLabel("Choose components and press Generate.")

	split := container.NewHSplit(form, container.NewBorder(nil, b.status, nil, nil, b.preview))
	split.Offset = 0.35
	return split
}

func (b *Builder) newSlot(index int) *slot {
	s := &slot{pinForm: widget.NewForm()}
	s.typeSelect = widget.NewSelect(module.Names(), func(name string) {
		b.setSlotType(s, name)
	})
	s.card = widget.NewCard(fmt.Sprintf("Component %d", index+1), "",
		container.NewVBox(s.typeSelect, s.pinForm))
	s.typeSelect.SetSelected(module.Names()[0])
	return s
}

// setSlotType rebuilds the pin entries for a module type. VCC and GND
// are always wired to the rails and get no entry.
func (b *Builder) setSlotType(s *slot, name string) {
	mt, ok := module.Lookup(name)
	if !ok {
		return
	}
	s.entries = make(map[string]*widget.SelectEntry)
	s.order = mt.SignalPins()
	s.pinForm.Items = nil
	for _, pin := range s.order {
		e := widget.NewSelectEntry(b.boardPins)
		e.SetPlaceHolder("board pin")
		s.entries[pin] = e
		s.pinForm.Append(pin, e)
	}
	s.pinForm.Refresh()
}

func (b *Builder) setVisibleSlots(n int) {
	for i, s := range b.slots {
		if i < n {
			s.card.Show()
		} else {
			s.card.Hide()
		}
	}
}

func (b *Builder) visibleSlots() []*slot {
	n, _ := strconv.Atoi(b.countSelect.Selected)
	if n > len(b.slots) {
		n = len(b.slots)
	}
	return b.slots[:n]
}

// Request returns the form contents as a diagram request. Board and photo
// settings of an opened request are kept; a component keeps its photo while
// its type is unchanged. Empty pin entries are left out of the pin map.
func (b *Builder) Request() *request.File {
	f := request.New("")
	if b.loaded != nil {
		cp := *b.loaded
		cp.Components = nil
		f = &cp
	}
	f.Board.Title = b.titleEntry.Text

	for i, s := range b.visibleSlots() {
		c := request.Component{Type: s.typeSelect.Selected, Pins: make(map[string]string)}
		for _, pin := range s.order {
			if v := s.entries[pin].Text; v != "" {
				c.Pins[pin] = v
			}
		}
		if b.loaded != nil && i < len(b.loaded.Components) && b.loaded.Components[i].Type == c.Type {
			c.Image = b.loaded.Components[i].Image
		}
		f.Components = append(f.Components, c)
	}
	return f
}

// SetRequest fills the form from a request whose relative paths start at
// baseDir. Extra components beyond the form's limit are dropped.
func (b *Builder) SetRequest(f *request.File, baseDir string) {
	b.loaded = f
	b.baseDir = baseDir

	b.boardPins = board.Uno().Names()
	if reg, _, err := f.Registry(baseDir); err != nil {
		log.Printf("builder: %v, suggesting %s pins", err, board.UnoName)
	} else {
		b.boardPins = reg.Names()
		b.titleEntry.SetPlaceHolder(reg.Name())
	}
	b.titleEntry.SetText(f.Board.Title)

	n := len(f.Components)
	if n < 1 {
		n = 1
	}
	if n > len(b.slots) {
		log.Printf("builder: request has %d components, showing the first %d", n, len(b.slots))
		n = len(b.slots)
	}
	b.countSelect.SetSelected(strconv.Itoa(n))

	for i, s := range b.slots {
		if i < len(f.Components) && i < n {
			b.setSlotType(s, f.Components[i].Type)
			s.typeSelect.SetSelected(f.Components[i].Type)
		}
		for pin, e := range s.entries {
			e.SetOptions(b.boardPins)
			if i < len(f.Components) && i < n {
				e.SetText(f.Components[i].Pins[pin])
			}
		}
	}
}

// Generate renders the current form and shows the result in the preview.
func (b *Builder) Generate() error {
	req := b.Request()
	if err := req.Validate(); err != nil {
		return err
	}

	assets := b.assetsEntry.Text
	baseDir := b.baseDir
	if baseDir == "" {
		baseDir = assets
	}
	in, err := req.Input(baseDir, assets)
	if err != nil {
		return err
	}

	opts := render.DefaultOptions()
	opts.DPI = b.prefs.FloatWithFallback(prefs.KeyDPI, opts.DPI)
	png, err := diagram.Generate(in, opts)
	if err != nil {
		return err
	}
	img, err := raster.Decode(png)
	if err != nil {
		return fmt.Errorf("decode rendered diagram: %w", err)
	}

	b.showDiagram(png, img)
	log.Printf("builder: rendered %d components (%d bytes)", len(in.Components), len(png))
	return nil
}

func (b *Builder) showDiagram(png []byte, img image.Image) {
	b.lastPNG = png
	b.preview.Image = img
	b.preview.Refresh()
	size := img.Bounds().Size()
	b.status.SetText(fmt.Sprintf("Diagram %dx%d px", size.X, size.Y))
	b.saveBtn.Enable()
}

// LastPNG returns the most recently rendered diagram, or nil.
func (b *Builder) LastPNG() []byte {
	return b.lastPNG
}

func (b *Builder) chooseAssetsDir() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		b.assetsEntry.SetText(uri.Path())
	}, b.window)
}

func (b *Builder) savePNG() {
	if b.lastPNG == nil {
		return
	}
	dlg := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		defer w.Close()
		if _, err := w.Write(b.lastPNG); err != nil {
			dialog.ShowError(fmt.Errorf("Error: %v", err), b.window)
			return
		}
		b.prefs.SetString(prefs.KeyOutputDir, filepath.Dir(w.URI().Path()))
		b.status.SetText("Saved " + w.URI().Name())
	}, b.window)
	dlg.SetFileName("circuit_diagram.png")
	dlg.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	b.setLocation(dlg, prefs.KeyOutputDir)
	dlg.Show()
}

func (b *Builder) openRequest() {
	dlg := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		path := r.URI().Path()
		r.Close()

		f, err := request.Load(path)
		if err != nil {
			dialog.ShowError(fmt.Errorf("Error: %v", err), b.window)
			return
		}
		b.prefs.SetString(prefs.KeyRequestDir, filepath.Dir(path))
		b.SetRequest(f, filepath.Dir(path))
	}, b.window)
	dlg.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	b.setLocation(dlg, prefs.KeyRequestDir)
	dlg.Show()
}

func (b *Builder) saveRequest() {
	dlg := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		path := w.URI().Path()
		w.Close()

		if err := b.SaveRequest(path); err != nil {
			dialog.ShowError(fmt.Errorf("Error: %v", err), b.window)
			return
		}
		b.prefs.SetString(prefs.KeyRequestDir, filepath.Dir(path))
	}, b.window)
	dlg.SetFileName("diagram.json")
	dlg.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	b.setLocation(dlg, prefs.KeyRequestDir)
	dlg.Show()
}

// SaveRequest writes the form to path. Relative photo and definition paths
// are rewritten to stay valid from the new folder.
func (b *Builder) SaveRequest(path string) error {
	f := b.Request()
	dir := filepath.Dir(path)
	if b.baseDir != "" {
		f.Rebase(b.baseDir, dir)
	}
	if err := f.Save(path); err != nil {
		return err
	}
	b.loaded = f
	b.baseDir = dir
	return nil
}

func (b *Builder) setLocation(dlg *dialog.FileDialog, key string) {
	dir := b.prefs.StringWithFallback(key, "")
	if dir == "" {
		return
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return
	}
	dlg.SetLocation(lister)
}
