package main

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// descriptionKeys are checked in order. "undefined" is what the KML to GeoJSON
// conversion names the untitled description column.
var descriptionKeys = []string{"description", "desc", "undefined"}

// popupContent renders the popup HTML for a waypoint. The name is escaped; the
// description is allowed to carry markup.
func popupContent(props geojson.Properties) string {
	var b strings.Builder
	b.WriteString("<p><strong>")
	b.WriteString(escapeHTML(propertyText(props, "name")))
	b.WriteString("</strong>")
	if desc := popupDescription(props); desc != "" {
		b.WriteString("<br/>")
		b.WriteString(desc)
	}
	b.WriteString("</p>")
	return b.String()
}

func popupDescription(props geojson.Properties) string {
	for _, key := range descriptionKeys {
		if s := strings.TrimSpace(propertyText(props, key)); s != "" {
			return s
		}
	}
	return ""
}

// propertyText returns the property as text, "" when absent or null.
func propertyText(props geojson.Properties, key string) string {
	v, ok := props[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
