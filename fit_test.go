package main

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestFitViewWorldWidth(t *testing.T) {
	b := orb.Bound{Min: orb.Point{-180, 0}, Max: orb.Point{180, 0}}
	center, zoom := fitView(b, 1280, 800, 20, 0, 18)
	// 256px world at zoom 0; 1240px available fits 2^2 worlds.
	if zoom != 2 {
		t.Errorf("zoom = %d, want 2", zoom)
	}
	if math.Abs(center.Lon()) > 1e-6 || math.Abs(center.Lat()) > 1e-6 {
		t.Errorf("center = %v, want 0,0", center)
	}
}

func TestFitViewSinglePointUsesMaxZoom(t *testing.T) {
	p := orb.Point{-109.4993, 38.7436}
	center, zoom := fitView(p.Bound(), 1280, 800, 20, 0, 17)
	if zoom != 17 {
		t.Errorf("zoom = %d, want 17", zoom)
	}
	if math.Abs(center.Lon()-p.Lon()) > 1e-6 || math.Abs(center.Lat()-p.Lat()) > 1e-6 {
		t.Errorf("center = %v, want %v", center, p)
	}
}

func TestFitViewClampsToMinZoom(t *testing.T) {
	b := orb.Bound{Min: orb.Point{-180, -80}, Max: orb.Point{180, 80}}
	if _, zoom := fitView(b, 300, 200, 0, 3, 18); zoom != 3 {
		t.Errorf("zoom = %d, want min zoom 3", zoom)
	}
}

func TestFitViewContainsBounds(t *testing.T) {
	b := orb.Bound{Min: orb.Point{-112.9811, 37.2982}, Max: orb.Point{-109.4993, 38.7436}}
	width, height, padding := 1024, 768, 20
	center, zoom := fitView(b, width, height, padding, 0, 18)

	lo, hi := toMercator(b.Min), toMercator(b.Max)
	ppm := pixelsPerMeter(float64(zoom))
	if (hi.X()-lo.X())*ppm > float64(width-2*padding) || (hi.Y()-lo.Y())*ppm > float64(height-2*padding) {
		t.Errorf("bounds do not fit at zoom %d", zoom)
	}
	ppmNext := pixelsPerMeter(float64(zoom + 1))
	if (hi.X()-lo.X())*ppmNext <= float64(width-2*padding) && (hi.Y()-lo.Y())*ppmNext <= float64(height-2*padding) {
		t.Errorf("zoom %d is not the tightest fit", zoom)
	}
	if !b.Contains(center) {
		t.Errorf("center %v outside bounds", center)
	}
}

func TestToMercatorClampsPoles(t *testing.T) {
	p := toMercator(orb.Point{0, 90})
	if math.IsInf(p.Y(), 0) || math.IsNaN(p.Y()) {
		t.Errorf("pole projected to %v", p)
	}
}
