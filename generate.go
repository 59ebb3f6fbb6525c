package main

import (
	"fmt"
	"io"

	"github.com/paulmach/orb/geojson"
)

// generate writes the composed map in the requested format.
func generate(session *MapSession, engine *leafletEngine, cfg MapConfig, waypoints *geojson.FeatureCollection, format string, openAbout bool, w io.Writer) error {
	switch format {
	case "svg":
		svgContent, err := GenerateSVG(cfg, waypoints)
		if err != nil {
			return fmt.Errorf("SVG generation failed: %w", err)
		}
		if _, err := io.WriteString(w, svgContent); err != nil {
			return fmt.Errorf("failed to write SVG output: %w", err)
		}
	case "html":
		htmlContent, err := generateHTML(session, engine, cfg.Title)
		if err != nil {
			return fmt.Errorf("HTML generation failed: %w", err)
		}
		if _, err := io.WriteString(w, htmlContent); err != nil {
			return fmt.Errorf("failed to write HTML output: %w", err)
		}
	case "png", "jpg", "jpeg":
		return generateImage(session, engine, cfg, format, openAbout, w)
	default:
		return fmt.Errorf("unsupported format '%s'", format)
	}
	return nil
}
