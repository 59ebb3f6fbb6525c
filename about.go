package main

import (
	"fmt"
	"log"
	"math"
)

// Fractions of the window used to place the about popup. The popup sits
// above the scale bar and stays clear of the layer chooser.
const (
	aboutBottomOffset  = 0.075
	aboutMaxHeightFrac = 0.5
	aboutMaxWidthFrac  = 0.75
)

const aboutIcon = `<span class="about-icon" aria-hidden="true">&#9432;</span>`

// aboutPlacement computes the popup anchor and size limits.
// docBottom is the bottom edge of the document content; values <= 0 mean unknown.
func aboutPlacement(width, height, docBottom float64) PopupOptions {
	bottom := height
	if docBottom > 0 {
		bottom = math.Min(height, docBottom)
	}
	return PopupOptions{
		X:         width / 2,
		Y:         bottom - aboutBottomOffset*height,
		MaxWidth:  aboutMaxWidthFrac * width,
		MaxHeight: aboutMaxHeightFrac * height,
		Closable:  true,
	}
}

type AboutControl struct {
	engine   MapEngine
	geometry Geometry
	content  string
	button   Button
}

func attachAboutControl(engine MapEngine, geometry Geometry, content string) *AboutControl {
	ac := &AboutControl{engine: engine, geometry: geometry, content: content}
	ac.button = engine.AddButton(ButtonSpec{
		ID:    "about",
		Title: "About this map",
		Icon:  aboutIcon,
		OnClick: func() {
			if err := ac.Activate(); err != nil {
				log.Printf("Warning: about popup not shown: %v", err)
			}
		},
	})
	return ac
}

// Placement reads the geometry fresh on every call.
func (ac *AboutControl) Placement() (PopupOptions, error) {
	return placementFrom(ac.geometry)
}

func placementFrom(geometry Geometry) (PopupOptions, error) {
	if geometry == nil {
		return PopupOptions{}, fmt.Errorf("no geometry source")
	}
	w, h, err := geometry.WindowSize()
	if err != nil {
		return PopupOptions{}, fmt.Errorf("reading window size: %w", err)
	}
	docBottom, err := geometry.DocumentBottom()
	if err != nil {
		return PopupOptions{}, fmt.Errorf("reading document bounds: %w", err)
	}
	return aboutPlacement(w, h, docBottom), nil
}

// Activate opens the about popup positioned for the current window.
func (ac *AboutControl) Activate() error {
	opts, err := ac.Placement()
	if err != nil {
		return err
	}
	ac.engine.OpenPopup(ac.content, opts)
	return nil
}
