package main

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Properties the page script reads to decorate markers.
const (
	popupProperty = "_popup"
	colorProperty = "_color"
)

type leafletLayer struct {
	kind     string // "tile", "cluster" or "geojson"
	provider string
	markers  []*leafletMarker
	children []*leafletLayer
}

type leafletMarker struct {
	feature *geojson.Feature
	popup   string
	color   string
}

func (m *leafletMarker) BindPopup(html string) { m.popup = html }
func (m *leafletMarker) SetColor(color string) { m.color = color }

type leafletButton struct {
	spec    ButtonSpec
	enabled bool
}

func (b *leafletButton) Enable()       { b.enabled = true }
func (b *leafletButton) Disable()      { b.enabled = false }
func (b *leafletButton) Enabled() bool { return b.enabled }

type leafletPopup struct {
	content string
	opts    PopupOptions
}

// leafletPage is what the composer built, in the order it was built.
type leafletPage struct {
	baseLayers []NamedLayer
	onMap      []*leafletLayer
	buttons    []*leafletButton
	scale      Position
	hasScale   bool
	popups     []leafletPopup
	fitBounds  *orb.Bound
	initial    *ViewState // view set without a fit
}

// leafletEngine records a composition for generateHTML and tracks the view
// the browser would show at the configured viewport size.
type leafletEngine struct {
	cfg          MapConfig
	page         leafletPage
	center       orb.Point
	zoom         int
	tileMaxZoom  int // lowest max zoom among tile layers on the map, 0 if none
	zoomHandlers []func(int)
}

func newLeafletEngine(cfg MapConfig) *leafletEngine {
	return &leafletEngine{cfg: cfg, zoom: cfg.MinZoom}
}

func (e *leafletEngine) newLayer(kind string) *leafletLayer {
	return &leafletLayer{kind: kind}
}

func (e *leafletEngine) TileLayer(provider string) (Layer, error) {
	if _, ok := lookupProvider(provider); !ok {
		return nil, fmt.Errorf("unknown tile provider '%s'", provider)
	}
	l := e.newLayer("tile")
	l.provider = provider
	return l, nil
}

func (e *leafletEngine) AddLayerChooser(baseLayers []NamedLayer) {
	e.page.baseLayers = append([]NamedLayer(nil), baseLayers...)
}

func (e *leafletEngine) AddLayer(layer Layer) {
	l, ok := layer.(*leafletLayer)
	if !ok {
		return
	}
	e.page.onMap = append(e.page.onMap, l)
	if l.kind == "tile" {
		if p, ok := lookupProvider(l.provider); ok && (e.tileMaxZoom == 0 || p.MaxZoom < e.tileMaxZoom) {
			e.tileMaxZoom = p.MaxZoom
		}
	}
}

func (e *leafletEngine) ClusterGroup() Layer { return e.newLayer("cluster") }

func (e *leafletEngine) GeoJSONLayer(fc *geojson.FeatureCollection, eachFeature func(*geojson.Feature, Marker)) (Layer, error) {
	l := e.newLayer("geojson")
	for i, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			return nil, fmt.Errorf("feature %d has no geometry", i)
		}
		m := &leafletMarker{feature: f}
		if eachFeature != nil {
			eachFeature(f, m)
		}
		l.markers = append(l.markers, m)
	}
	return l, nil
}

func (e *leafletEngine) AddToGroup(group, layer Layer) {
	g, ok := group.(*leafletLayer)
	if !ok {
		return
	}
	if l, ok := layer.(*leafletLayer); ok {
		g.children = append(g.children, l)
	}
}

func (e *leafletEngine) LayerBounds(layer Layer) (orb.Bound, bool) {
	l, ok := layer.(*leafletLayer)
	if !ok {
		return orb.Bound{}, false
	}
	fc := geojson.NewFeatureCollection()
	for _, m := range l.markers {
		fc.Append(m.feature)
	}
	return collectionBound(fc)
}

func (e *leafletEngine) FitBounds(b orb.Bound) {
	e.page.fitBounds = &b
	center, zoom := fitView(b, e.cfg.Viewport.Width, e.cfg.Viewport.Height, e.cfg.FitPadding, e.cfg.MinZoom, e.maxZoom())
	e.setView(center, zoom)
}

func (e *leafletEngine) maxZoom() int {
	if e.tileMaxZoom > 0 && e.tileMaxZoom < e.cfg.MaxZoom {
		return e.tileMaxZoom
	}
	return e.cfg.MaxZoom
}

func (e *leafletEngine) OpenPopup(content string, opts PopupOptions) {
	e.page.popups = append(e.page.popups, leafletPopup{content: content, opts: opts})
}

func (e *leafletEngine) AddButton(spec ButtonSpec) Button {
	b := &leafletButton{spec: spec, enabled: true}
	e.page.buttons = append(e.page.buttons, b)
	return b
}

func (e *leafletEngine) AddScale(pos Position) {
	e.page.scale = pos
	e.page.hasScale = true
}

func (e *leafletEngine) OnZoomEnd(fn func(int)) {
	e.zoomHandlers = append(e.zoomHandlers, fn)
}

func (e *leafletEngine) Center() orb.Point { return e.center }
func (e *leafletEngine) Zoom() int         { return e.zoom }

// SetView clamps zoom to the range the page allows, as Leaflet does.
func (e *leafletEngine) SetView(center orb.Point, zoom int) {
	zoom = max(e.cfg.MinZoom, min(zoom, e.maxZoom()))
	if e.page.fitBounds == nil && e.page.initial == nil {
		e.page.initial = &ViewState{Center: center, Zoom: zoom}
	}
	e.setView(center, zoom)
}

func (e *leafletEngine) setView(center orb.Point, zoom int) {
	changed := zoom != e.zoom
	e.center, e.zoom = center, zoom
	if !changed {
		return
	}
	for _, fn := range e.zoomHandlers {
		fn(zoom)
	}
}

// click activates a button the way a user would.
func (e *leafletEngine) click(id string) bool {
	for _, b := range e.page.buttons {
		if b.spec.ID == id && b.spec.OnClick != nil {
			b.spec.OnClick()
			return true
		}
	}
	return false
}

// markerCollection returns a copy of the waypoints with popup and color
// stored as properties for the page script. The loaded features are not touched.
func (e *leafletEngine) markerCollection() *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	for _, l := range e.page.onMap {
		for _, child := range l.children {
			for _, m := range child.markers {
				f := geojson.NewFeature(m.feature.Geometry)
				f.ID = m.feature.ID
				if m.feature.Properties != nil {
					f.Properties = m.feature.Properties.Clone()
				}
				if m.popup != "" {
					f.Properties[popupProperty] = m.popup
				}
				if m.color != "" {
					f.Properties[colorProperty] = m.color
				}
				out.Append(f)
			}
		}
	}
	return out
}

// staticGeometry reports the configured viewport as the browser window.
type staticGeometry struct {
	width, height float64
}

func (g staticGeometry) WindowSize() (float64, float64, error) { return g.width, g.height, nil }
func (g staticGeometry) DocumentBottom() (float64, error)      { return g.height, nil }
