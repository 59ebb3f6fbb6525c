package main

import (
	"bytes"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	waypointRadius  = 5.0
	legendRowHeight = 18.0
	legendFontSize  = 12
	defaultFont     = "Arial, sans-serif"
)

// Structure to hold calculated bounds
type bounds struct {
	minX, maxX, minY, maxY float64
	isSet                  bool
}

// Update bounds considering a point (x, y)
func (b *bounds) updatePoint(x, y float64) {
	if !b.isSet {
		b.minX, b.maxX = x, x
		b.minY, b.maxY = y, y
		b.isSet = true
	} else {
		b.minX = math.Min(b.minX, x)
		b.maxX = math.Max(b.maxX, x)
		b.minY = math.Min(b.minY, y)
		b.maxY = math.Max(b.maxY, y)
	}
}

func (b bounds) width() float64  { return b.maxX - b.minX }
func (b bounds) height() float64 { return b.maxY - b.minY }

type projectedWaypoint struct {
	x, y    float64
	lat     float64
	lon     float64
	bucket  int
	tooltip string
}

// projectWaypoints converts point features to Mercator meters with y growing
// downwards. Non-point geometries are plotted at their bound center.
func projectWaypoints(fc *geojson.FeatureCollection) ([]projectedWaypoint, bounds) {
	var out []projectedWaypoint
	var b bounds
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		var p orb.Point
		if pt, ok := f.Geometry.(orb.Point); ok {
			p = pt
		} else {
			p = f.Geometry.Bound().Center()
		}
		m := toMercator(p)
		wp := projectedWaypoint{
			x:       m.X(),
			y:       -m.Y(),
			lat:     p.Lat(),
			lon:     p.Lon(),
			bucket:  markerBucket(f.Properties),
			tooltip: propertyText(f.Properties, "name"),
		}
		b.updatePoint(wp.x, wp.y)
		out = append(out, wp)
	}
	return out, b
}

// GenerateSVG draws a static overview of the waypoints, colored by year.
func GenerateSVG(cfg MapConfig, fc *geojson.FeatureCollection) (string, error) {
	if fc == nil || len(fc.Features) == 0 {
		return "", fmt.Errorf("no waypoints to plot")
	}
	waypoints, wpBounds := projectWaypoints(fc)
	if !wpBounds.isSet {
		return "", fmt.Errorf("no waypoint has a geometry")
	}

	padding := float64(cfg.FitPadding)
	plotW := math.Max(1, float64(cfg.Viewport.Width)-2*padding)
	plotH := math.Max(1, float64(cfg.Viewport.Height)-2*padding)

	// Uniform scale keeps Mercator shapes; a single point sits in the middle.
	scale := 1.0
	if wpBounds.width() > 0 || wpBounds.height() > 0 {
		scale = math.Inf(1)
		if wpBounds.width() > 0 {
			scale = plotW / wpBounds.width()
		}
		if wpBounds.height() > 0 {
			scale = math.Min(scale, plotH/wpBounds.height())
		}
	}
	offsetX := padding + (plotW-wpBounds.width()*scale)/2
	offsetY := padding + (plotH-wpBounds.height()*scale)/2

	var svgBody bytes.Buffer
	used := make(map[int]int)
	for _, wp := range waypoints {
		x := offsetX + (wp.x-wpBounds.minX)*scale
		y := offsetY + (wp.y-wpBounds.minY)*scale
		used[wp.bucket]++
		fmt.Fprintf(&svgBody, `  <circle cx="%.2f" cy="%.2f" r="%.1f" fill="%s" fill-opacity="0.85" stroke="#FFFFFF" stroke-width="1"><title>%s</title></circle>`,
			x, y, waypointRadius, markerPalette[wp.bucket],
			escapeXML(ternary(wp.tooltip != "", wp.tooltip, formatLatLon(wp.lat, wp.lon))))
		svgBody.WriteString("\n")
	}

	drawLegend(&svgBody, used, padding)
	return assembleFinalSVG(svgBody, cfg), nil
}

// drawLegend lists the year buckets that occur, in palette order.
func drawLegend(svg *bytes.Buffer, used map[int]int, padding float64) {
	row := 0
	for bucket := range markerPalette {
		count := used[bucket]
		if count == 0 {
			continue
		}
		y := padding + float64(row)*legendRowHeight
		fmt.Fprintf(svg, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" />`, padding+waypointRadius, y+waypointRadius, waypointRadius, markerPalette[bucket])
		svg.WriteString("\n")
		fmt.Fprintf(svg, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%d">%s (%d)</text>`,
			padding+3*waypointRadius, y+waypointRadius+4, defaultFont, legendFontSize, markerBucketLabels[bucket], count)
		svg.WriteString("\n")
		row++
	}
}

func assembleFinalSVG(svgBody bytes.Buffer, cfg MapConfig) string {
	var finalSVG bytes.Buffer
	fmt.Fprintf(&finalSVG, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`,
		cfg.Viewport.Width, cfg.Viewport.Height)
	finalSVG.WriteString("\n")
	fmt.Fprintf(&finalSVG, `  <rect width="%d" height="%d" fill="#FFFFFF" />`, cfg.Viewport.Width, cfg.Viewport.Height)
	finalSVG.WriteString("\n")
	if cfg.Title != "" {
		fmt.Fprintf(&finalSVG, `  <title>%s</title>`, escapeXML(cfg.Title))
		finalSVG.WriteString("\n")
	}
	finalSVG.Write(svgBody.Bytes())
	finalSVG.WriteString("</svg>")
	return finalSVG.String()
}
