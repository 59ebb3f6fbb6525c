package main

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"
)

const (
	firstBucketYear = 1991
	lastBucketYear  = 2024
	yearsPerBucket  = 5
)

// markerPalette holds one color per year bucket; the last entry is the
// catch-all for 2025-2029 and anything that does not parse.
var markerPalette = [8]string{
	"#1b9e77", // 1991-1995
	"#d95f02", // 1996-2000
	"#7570b3", // 2001-2005
	"#e7298a", // 2006-2010
	"#66a61e", // 2011-2015
	"#e6ab02", // 2016-2020
	"#a6761d", // 2021-2024
	"#666666", // everything else
}

var markerBucketLabels = [8]string{
	"1991-1995", "1996-2000", "2001-2005", "2006-2010",
	"2011-2015", "2016-2020", "2021-2024", "other",
}

const catchAllBucket = len(markerPalette) - 1

// markerYear extracts the year from an Id of the form "<digits>.<rest>".
func markerYear(id string) (int, bool) {
	digits, _, found := strings.Cut(id, ".")
	if !found || digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	year, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return year, true
}

// yearBucket maps a year to an index into markerPalette.
func yearBucket(year int) int {
	if year < firstBucketYear || year > lastBucketYear {
		return catchAllBucket
	}
	return (year - firstBucketYear) / yearsPerBucket
}

func markerBucket(props geojson.Properties) int {
	id := propertyText(props, "Id")
	if id == "" {
		id = propertyText(props, "id")
	}
	year, ok := markerYear(id)
	if !ok {
		return catchAllBucket
	}
	return yearBucket(year)
}

// markerColor returns the color for a waypoint based on the year in its Id.
func markerColor(props geojson.Properties) string {
	return markerPalette[markerBucket(props)]
}
