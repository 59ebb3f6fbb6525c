package main

import "github.com/paulmach/orb"

// --- Config Structs ---

// BaseLayerSpec is one entry of the basemap switcher.
type BaseLayerSpec struct {
	Label    string `yaml:"label"`    // Text shown in the layer chooser
	Provider string `yaml:"provider"` // leaflet-providers name, e.g. "USGS.USTopo"
}

// ViewportSize is the pixel size of the map container used for fitting.
type ViewportSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FallbackView is used when there are no waypoints to fit.
type FallbackView struct {
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
	Zoom int     `yaml:"zoom"`
}

type MapConfig struct {
	Title        string          `yaml:"title"`
	BaseLayers   []BaseLayerSpec `yaml:"base_layers"`
	DefaultLayer string          `yaml:"default_layer"` // Label of the layer shown on load
	ColorByYear  bool            `yaml:"color_by_year"` // Apply the year styler to markers
	About        string          `yaml:"about"`         // HTML shown by the about button
	Viewport     ViewportSize    `yaml:"viewport"`
	FitPadding   int             `yaml:"fit_padding"` // Pixels kept free on each side when fitting
	MinZoom      int             `yaml:"min_zoom"`
	MaxZoom      int             `yaml:"max_zoom"`
	Fallback     *FallbackView   `yaml:"fallback_view,omitempty"`
}

// --- View State ---

// ViewState is a center/zoom pair. The anchor captured after the initial fit
// is one of these and is never modified afterwards.
type ViewState struct {
	Center orb.Point // lon, lat
	Zoom   int
}

// Position names a map corner for controls.
type Position string

const (
	TopLeft     Position = "topleft"
	TopRight    Position = "topright"
	BottomLeft  Position = "bottomleft"
	BottomRight Position = "bottomright"
)

// PopupOptions constrains a free-standing popup.
type PopupOptions struct {
	X, Y      float64 // Container point the popup tip is anchored to
	MaxWidth  float64
	MaxHeight float64
	Closable  bool
}

// ButtonSpec describes an icon button control.
type ButtonSpec struct {
	ID      string
	Title   string
	Icon    string // Inline SVG or HTML
	OnClick func()
}
