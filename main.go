// Package main provides the entry point for the Circuit Diagram application.
package main

import (
	"log"
	"os"
	"path/filepath"

	"circuit-diagram/internal/request"
	"circuit-diagram/internal/version"
	"circuit-diagram/ui/builder"
	"circuit-diagram/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const appTitle = "Circuit Diagram Generator"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	a := app.NewWithID("io.circuit-diagram")
	a.Settings().SetTheme(&builder.Theme{})

	appPrefs := prefs.Load()
	win := a.NewWindow(appTitle)
	b := builder.New(win, appPrefs)

	// Handle command line arguments
	if len(os.Args) > 1 {
		reqPath := os.Args[1]
		if f, err := request.Load(reqPath); err != nil {
			log.Printf("Failed to load request %s: %v", reqPath, err)
		} else {
			b.SetRequest(f, filepath.Dir(reqPath))
		}
	}

	win.SetContent(b.Content())
	win.SetOnClosed(func() {
		if err := appPrefs.Save(); err != nil {
			log.Printf("Failed to save preferences to %s: %v", appPrefs.Path(), err)
		}
	})
	win.Resize(fyne.NewSize(1200, 800))
	win.ShowAndRun()
}
