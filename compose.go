package main

import (
	"fmt"
	"log"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// MapSession is a composed map: the engine plus everything attached to it.
type MapSession struct {
	Engine       MapEngine
	BaseLayers   []NamedLayer
	DefaultLayer string
	Markers      Layer
	Clusters     Layer
	Anchor       ViewState
	Fitted       bool // false when the fallback view was used
	Reset        *ResetControl
	About        *AboutControl
}

// composeMap performs the one-time setup of a map. Steps run in a fixed order:
// base layers, markers, clustering, fit, anchor, reset, about, scale.
// Errors from the first three steps are returned; the map is then unusable.
func composeMap(engine MapEngine, cfg MapConfig, features *geojson.FeatureCollection, geometry Geometry) (*MapSession, error) {
	session := &MapSession{Engine: engine, DefaultLayer: cfg.DefaultLayer}

	if err := session.addBaseLayers(cfg.BaseLayers); err != nil {
		return nil, fmt.Errorf("base layers: %w", err)
	}
	if err := session.addMarkers(features, cfg.ColorByYear); err != nil {
		return nil, fmt.Errorf("markers: %w", err)
	}

	session.fitToMarkers(cfg.Fallback)
	session.Anchor = ViewState{Center: engine.Center(), Zoom: engine.Zoom()}
	log.Printf("Initial view: zoom %d at %s", session.Anchor.Zoom, formatLatLon(session.Anchor.Center.Lat(), session.Anchor.Center.Lon()))

	session.Reset = attachResetControl(engine, session.Anchor)
	session.About = attachAboutControl(engine, geometry, cfg.About)
	engine.AddScale(BottomRight)

	return session, nil
}

func (s *MapSession) addBaseLayers(specs []BaseLayerSpec) error {
	var defaultLayer Layer
	for _, spec := range specs {
		layer, err := s.Engine.TileLayer(spec.Provider)
		if err != nil {
			return fmt.Errorf("layer '%s': %w", spec.Label, err)
		}
		s.BaseLayers = append(s.BaseLayers, NamedLayer{Label: spec.Label, Layer: layer})
		if spec.Label == s.DefaultLayer {
			defaultLayer = layer
		}
	}
	if defaultLayer == nil {
		return fmt.Errorf("default layer '%s' not registered", s.DefaultLayer)
	}
	s.Engine.AddLayerChooser(s.BaseLayers)
	s.Engine.AddLayer(defaultLayer)
	return nil
}

// addMarkers wraps the marker layer in a cluster group before the group is
// added to the map; adding markers first would bypass clustering.
func (s *MapSession) addMarkers(features *geojson.FeatureCollection, colorByYear bool) error {
	if features == nil {
		return fmt.Errorf("no waypoint collection")
	}
	s.Clusters = s.Engine.ClusterGroup()
	markers, err := s.Engine.GeoJSONLayer(features, func(f *geojson.Feature, m Marker) {
		if f.Properties == nil {
			return
		}
		m.BindPopup(popupContent(f.Properties))
		if colorByYear {
			m.SetColor(markerColor(f.Properties))
		}
	})
	if err != nil {
		return err
	}
	s.Markers = markers
	s.Engine.AddToGroup(s.Clusters, markers)
	s.Engine.AddLayer(s.Clusters)
	log.Printf("Added %d waypoints to the map.", len(features.Features))
	return nil
}

// fitToMarkers fits the viewport to the markers. With nothing to fit, the fallback
// view is used instead.
func (s *MapSession) fitToMarkers(fallback *FallbackView) {
	if b, ok := s.Engine.LayerBounds(s.Markers); ok {
		s.Engine.FitBounds(b)
		s.Fitted = true
		return
	}
	if fallback == nil {
		fallback = defaultConfig().Fallback
	}
	log.Printf("Warning: no waypoints to fit, using fallback view.")
	s.Engine.SetView(orb.Point{fallback.Lon, fallback.Lat}, fallback.Zoom)
}
