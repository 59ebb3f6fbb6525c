package main

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

const (
	tileSize        = 256.0
	earthRadius     = 6378137.0
	maxMercatorLat  = 85.0511287798
	worldMercatorSz = 2 * math.Pi * earthRadius
)

// toMercator projects a lon/lat point, clamping latitude to the Web-Mercator range.
func toMercator(p orb.Point) orb.Point {
	lat := math.Max(-maxMercatorLat, math.Min(maxMercatorLat, p.Lat()))
	return project.WGS84.ToMercator(orb.Point{p.Lon(), lat})
}

// pixelsPerMeter at the given zoom level.
func pixelsPerMeter(zoom float64) float64 {
	return tileSize * math.Exp2(zoom) / worldMercatorSz
}

// fitView returns the center and the largest zoom in [minZoom, maxZoom] at
// which b fits in a width x height viewport with padding on every side.
func fitView(b orb.Bound, width, height, padding, minZoom, maxZoom int) (orb.Point, int) {
	lo, hi := toMercator(b.Min), toMercator(b.Max)
	center := project.Mercator.ToWGS84(orb.Point{(lo.X() + hi.X()) / 2, (lo.Y() + hi.Y()) / 2})

	availW := math.Max(1, float64(width-2*padding))
	availH := math.Max(1, float64(height-2*padding))
	spanW := (hi.X() - lo.X()) * pixelsPerMeter(0)
	spanH := (hi.Y() - lo.Y()) * pixelsPerMeter(0)

	zoom := maxZoom
	if spanW > 0 || spanH > 0 {
		scale := math.Inf(1)
		if spanW > 0 {
			scale = availW / spanW
		}
		if spanH > 0 {
			scale = math.Min(scale, availH/spanH)
		}
		zoom = int(math.Floor(math.Log2(scale)))
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	if zoom < minZoom {
		zoom = minZoom
	}
	return center, zoom
}
