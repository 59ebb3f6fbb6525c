package main

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultViewportWidth  = 1280
	defaultViewportHeight = 800
	defaultFitPadding     = 20
	defaultMaxZoom        = 18
)

// defaultConfig reproduces the Utah trip map: six basemaps with USGS Topo shown first.
func defaultConfig() MapConfig {
	return MapConfig{
		Title: "Travel Map",
		BaseLayers: []BaseLayerSpec{
			{Label: "CartoDB", Provider: "CartoDB.Voyager"},
			{Label: "OpenStreetMap", Provider: "OpenStreetMap.Mapnik"},
			{Label: "Esri Topo", Provider: "Esri.WorldTopoMap"},
			{Label: "Esri Imagery", Provider: "Esri.WorldImagery"},
			{Label: "USGS Imagery Topo", Provider: "USGS.USImageryTopo"},
			{Label: "USGS Topo", Provider: "USGS.USTopo"},
		},
		DefaultLayer: "USGS Topo",
		About:        "<p>Waypoints recorded along the trip. Click a marker for details, a cluster to zoom in.</p>",
		Viewport:     ViewportSize{Width: defaultViewportWidth, Height: defaultViewportHeight},
		FitPadding:   defaultFitPadding,
		MinZoom:      0,
		MaxZoom:      defaultMaxZoom,
		Fallback:     &FallbackView{Lat: 0, Lon: 0, Zoom: 2},
	}
}

// loadConfig reads a YAML map config. Fields left out keep their defaults.
// An empty path returns the defaults.
func loadConfig(path string) (MapConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	log.Printf("Reading config file: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config '%s': %w", path, err)
	}
	cfg, err = parseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("config '%s': %w", path, err)
	}
	return cfg, nil
}

func parseConfig(data []byte) (MapConfig, error) {
	cfg := defaultConfig()
	defaultLayers := cfg.BaseLayers
	cfg.BaseLayers = nil
	cfg.Fallback = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing YAML: %w", err)
	}
	if len(cfg.BaseLayers) == 0 {
		cfg.BaseLayers = defaultLayers
	}
	if cfg.Viewport.Width <= 0 {
		cfg.Viewport.Width = defaultViewportWidth
	}
	if cfg.Viewport.Height <= 0 {
		cfg.Viewport.Height = defaultViewportHeight
	}
	if cfg.MaxZoom <= 0 {
		cfg.MaxZoom = defaultMaxZoom
	}
	if cfg.FitPadding < 0 {
		cfg.FitPadding = 0
	}
	if cfg.Fallback == nil {
		cfg.Fallback = defaultConfig().Fallback
		cfg.Fallback.Zoom = max(cfg.MinZoom, min(cfg.Fallback.Zoom, cfg.MaxZoom))
	}
	return cfg, validateConfig(cfg)
}

func validateConfig(cfg MapConfig) error {
	if cfg.MinZoom < 0 || cfg.MinZoom > cfg.MaxZoom {
		return fmt.Errorf("min_zoom %d must be between 0 and max_zoom %d", cfg.MinZoom, cfg.MaxZoom)
	}
	if cfg.Fallback != nil && (cfg.Fallback.Zoom < cfg.MinZoom || cfg.Fallback.Zoom > cfg.MaxZoom) {
		return fmt.Errorf("fallback_view zoom %d must be between min_zoom %d and max_zoom %d", cfg.Fallback.Zoom, cfg.MinZoom, cfg.MaxZoom)
	}
	seen := make(map[string]bool, len(cfg.BaseLayers))
	for _, bl := range cfg.BaseLayers {
		if bl.Label == "" {
			return fmt.Errorf("base layer with provider '%s' has no label", bl.Provider)
		}
		if seen[bl.Label] {
			return fmt.Errorf("duplicate base layer label '%s'", bl.Label)
		}
		seen[bl.Label] = true
	}
	if !seen[cfg.DefaultLayer] {
		return fmt.Errorf("default_layer '%s' is not one of the base layers", cfg.DefaultLayer)
	}
	return nil
}
