package main

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// fakeEngine records every call so tests can check order and arguments.
type fakeEngine struct {
	calls        []string
	layers       map[string]*fakeLayer
	chooser      []NamedLayer
	onMap        []*fakeLayer
	buttons      map[string]*fakeButton
	popups       []PopupOptions
	popupContent []string
	scale        Position
	center       orb.Point
	zoom         int
	fitZoom      int // zoom chosen by FitBounds
	zoomHandlers []func(int)
	failProvider string
}

type fakeLayer struct {
	name     string
	features []*geojson.Feature
	markers  []*fakeMarker
	children []*fakeLayer
}

type fakeMarker struct {
	popup string
	color string
}

func (m *fakeMarker) BindPopup(html string) { m.popup = html }
func (m *fakeMarker) SetColor(color string) { m.color = color }

type fakeButton struct {
	spec    ButtonSpec
	enabled bool
}

func (b *fakeButton) Enable()       { b.enabled = true }
func (b *fakeButton) Disable()      { b.enabled = false }
func (b *fakeButton) Enabled() bool { return b.enabled }

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		layers:  make(map[string]*fakeLayer),
		buttons: make(map[string]*fakeButton),
		fitZoom: 9,
	}
}

func (e *fakeEngine) record(format string, args ...interface{}) {
	e.calls = append(e.calls, fmt.Sprintf(format, args...))
}

func (e *fakeEngine) TileLayer(provider string) (Layer, error) {
	e.record("TileLayer %s", provider)
	if provider == e.failProvider {
		return nil, fmt.Errorf("provider %s unavailable", provider)
	}
	l := &fakeLayer{name: provider}
	e.layers[provider] = l
	return l, nil
}

func (e *fakeEngine) AddLayerChooser(baseLayers []NamedLayer) {
	e.record("AddLayerChooser %d", len(baseLayers))
	e.chooser = baseLayers
}

func (e *fakeEngine) AddLayer(layer Layer) {
	l := layer.(*fakeLayer)
	e.record("AddLayer %s", l.name)
	e.onMap = append(e.onMap, l)
}

func (e *fakeEngine) ClusterGroup() Layer {
	e.record("ClusterGroup")
	return &fakeLayer{name: "clusters"}
}

func (e *fakeEngine) GeoJSONLayer(fc *geojson.FeatureCollection, eachFeature func(*geojson.Feature, Marker)) (Layer, error) {
	e.record("GeoJSONLayer %d", len(fc.Features))
	l := &fakeLayer{name: "markers"}
	for _, f := range fc.Features {
		if f.Geometry == nil {
			return nil, fmt.Errorf("feature without geometry")
		}
		m := &fakeMarker{}
		eachFeature(f, m)
		l.features = append(l.features, f)
		l.markers = append(l.markers, m)
	}
	return l, nil
}

func (e *fakeEngine) AddToGroup(group, layer Layer) {
	g, l := group.(*fakeLayer), layer.(*fakeLayer)
	e.record("AddToGroup %s %s", g.name, l.name)
	g.children = append(g.children, l)
}

func (e *fakeEngine) LayerBounds(layer Layer) (orb.Bound, bool) {
	e.record("LayerBounds")
	fc := geojson.NewFeatureCollection()
	for _, f := range layer.(*fakeLayer).features {
		fc.Append(f)
	}
	return collectionBound(fc)
}

func (e *fakeEngine) FitBounds(b orb.Bound) {
	e.record("FitBounds")
	e.setView(b.Center(), e.fitZoom)
}

func (e *fakeEngine) OpenPopup(content string, opts PopupOptions) {
	e.record("OpenPopup")
	e.popups = append(e.popups, opts)
	e.popupContent = append(e.popupContent, content)
}

func (e *fakeEngine) AddButton(spec ButtonSpec) Button {
	e.record("AddButton %s", spec.ID)
	b := &fakeButton{spec: spec, enabled: true}
	e.buttons[spec.ID] = b
	return b
}

func (e *fakeEngine) AddScale(pos Position) {
	e.record("AddScale %s", pos)
	e.scale = pos
}

func (e *fakeEngine) OnZoomEnd(fn func(int)) {
	e.record("OnZoomEnd")
	e.zoomHandlers = append(e.zoomHandlers, fn)
}

func (e *fakeEngine) Center() orb.Point { return e.center }
func (e *fakeEngine) Zoom() int         { return e.zoom }

func (e *fakeEngine) SetView(center orb.Point, zoom int) {
	e.record("SetView %d", zoom)
	e.setView(center, zoom)
}

func (e *fakeEngine) setView(center orb.Point, zoom int) {
	changed := zoom != e.zoom
	e.center, e.zoom = center, zoom
	if changed {
		for _, fn := range e.zoomHandlers {
			fn(zoom)
		}
	}
}

// userZoom simulates the user zooming without panning.
func (e *fakeEngine) userZoom(zoom int) { e.setView(e.center, zoom) }

// userPan simulates the user dragging the map.
func (e *fakeEngine) userPan(center orb.Point) { e.setView(center, e.zoom) }

// click presses a button; a disabled button still reaches its handler so
// the control's own guard is exercised.
func (e *fakeEngine) click(id string) {
	if b, ok := e.buttons[id]; ok && b.spec.OnClick != nil {
		b.spec.OnClick()
	}
}

// fakeGeometry returns fixed window and document sizes.
type fakeGeometry struct {
	width, height, docBottom float64
	err                      error
}

func (g *fakeGeometry) WindowSize() (float64, float64, error) { return g.width, g.height, g.err }
func (g *fakeGeometry) DocumentBottom() (float64, error)      { return g.docBottom, g.err }
