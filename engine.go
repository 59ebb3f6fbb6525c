package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Layer is an opaque handle owned by a MapEngine.
type Layer interface{}

// NamedLayer pairs a layer with its label in the layer chooser.
type NamedLayer struct {
	Label string
	Layer Layer
}

// Marker is handed to the per-feature hook of GeoJSONLayer.
type Marker interface {
	BindPopup(html string)
	SetColor(color string)
}

// Button is an icon button control that can be switched on and off.
type Button interface {
	Enable()
	Disable()
	Enabled() bool
}

// MapEngine is everything the composer needs from a mapping library.
//
// Events are delivered on the caller's goroutine, synchronously, at most once
// per occurrence, to handlers in subscription order. Implementations are not
// safe for concurrent use.
type MapEngine interface {
	TileLayer(provider string) (Layer, error)
	AddLayerChooser(baseLayers []NamedLayer)
	AddLayer(layer Layer)

	ClusterGroup() Layer
	GeoJSONLayer(fc *geojson.FeatureCollection, eachFeature func(f *geojson.Feature, m Marker)) (Layer, error)
	AddToGroup(group, layer Layer)

	// LayerBounds is false when the layer holds nothing to bound.
	LayerBounds(layer Layer) (orb.Bound, bool)
	FitBounds(b orb.Bound)

	OpenPopup(content string, opts PopupOptions)
	AddButton(spec ButtonSpec) Button
	AddScale(pos Position)

	// OnZoomEnd handlers run after every change of zoom level.
	OnZoomEnd(fn func(zoom int))
	Center() orb.Point
	Zoom() int
	SetView(center orb.Point, zoom int)
}

// Geometry reports the browser window and document sizes in CSS pixels.
type Geometry interface {
	WindowSize() (width, height float64, err error)
	DocumentBottom() (float64, error)
}
