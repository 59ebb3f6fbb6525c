package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// loadWaypoints decodes a GeoJSON FeatureCollection. A bare array of features
// is accepted as well.
func loadWaypoints(data []byte) (*geojson.FeatureCollection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err == nil && fc.Type == "FeatureCollection" {
		return fc, nil
	}
	if err == nil {
		err = fmt.Errorf("unexpected GeoJSON type '%s'", fc.Type)
	}

	log.Printf("Warning: Failed to parse waypoints as a FeatureCollection ('%v'), attempting direct array parsing.", err)
	var featuresDirect []*geojson.Feature
	if errDirect := json.Unmarshal(data, &featuresDirect); errDirect != nil {
		return nil, fmt.Errorf("%w (also failed direct array parse: %v)", err, errDirect)
	}
	fc = geojson.NewFeatureCollection()
	for _, f := range featuresDirect {
		if f == nil {
			continue
		}
		fc.Append(f)
	}
	log.Println("Successfully parsed waypoints as a direct array.")
	return fc, nil
}

// collectionBound is the bounding box of every feature geometry.
// ok is false for an empty collection.
func collectionBound(fc *geojson.FeatureCollection) (b orb.Bound, ok bool) {
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		if !ok {
			b = f.Geometry.Bound()
			ok = true
			continue
		}
		b = b.Union(f.Geometry.Bound())
	}
	return b, ok
}
