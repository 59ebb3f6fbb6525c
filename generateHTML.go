// generateHTML.go
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

const (
	leafletVersion       = "1.9.4"
	providersVersion     = "2.0.0"
	markerClusterVersion = "1.5.3"
	easyButtonVersion    = "2.4.0"
)

// buttonScripts holds the browser side of each known button, keyed by ButtonSpec.ID.
var buttonScripts = map[string]string{
	"reset": "function(btn, m) { m.setView(anchorCenter, anchorZoom); }",
	"about": "function(btn, m) { openAbout(aboutPlacement()); }",
}

// generateHTML writes the composed map as a standalone Leaflet page.
func generateHTML(session *MapSession, engine *leafletEngine, title string) (string, error) { // NOSONAR
	var htmlBuilder strings.Builder
	page := engine.page

	if len(page.baseLayers) == 0 {
		return "", fmt.Errorf("no base layers composed")
	}

	// --- Head ---
	htmlBuilder.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\"/>\n")
	htmlBuilder.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>\n")
	htmlBuilder.WriteString(fmt.Sprintf("<title>%s</title>\n", escapeHTML(title)))
	htmlBuilder.WriteString(fmt.Sprintf("<link rel=\"stylesheet\" href=\"https://unpkg.com/leaflet@%s/dist/leaflet.css\"/>\n", leafletVersion))
	htmlBuilder.WriteString(fmt.Sprintf("<link rel=\"stylesheet\" href=\"https://unpkg.com/leaflet.markercluster@%s/dist/MarkerCluster.css\"/>\n", markerClusterVersion))
	htmlBuilder.WriteString(fmt.Sprintf("<link rel=\"stylesheet\" href=\"https://unpkg.com/leaflet.markercluster@%s/dist/MarkerCluster.Default.css\"/>\n", markerClusterVersion))
	htmlBuilder.WriteString(fmt.Sprintf("<link rel=\"stylesheet\" href=\"https://unpkg.com/leaflet-easybutton@%s/src/easy-button.css\"/>\n", easyButtonVersion))
	htmlBuilder.WriteString(`<style>
        html, body { height: 100%; margin: 0; }
        #map { height: 100%; width: 100%; }
        .about-icon { font-size: 18px; line-height: 26px; }
        .leaflet-popup-content { overflow-y: auto; }
    </style>
`)
	htmlBuilder.WriteString("</head>\n<body>\n<div id=\"map\"></div>\n")
	htmlBuilder.WriteString(fmt.Sprintf("<script src=\"https://unpkg.com/leaflet@%s/dist/leaflet.js\"></script>\n", leafletVersion))
	htmlBuilder.WriteString(fmt.Sprintf("<script src=\"https://unpkg.com/leaflet-providers@%s/leaflet-providers.js\"></script>\n", providersVersion))
	htmlBuilder.WriteString(fmt.Sprintf("<script src=\"https://unpkg.com/leaflet.markercluster@%s/dist/leaflet.markercluster.js\"></script>\n", markerClusterVersion))
	htmlBuilder.WriteString(fmt.Sprintf("<script src=\"https://unpkg.com/leaflet-easybutton@%s/src/easy-button.js\"></script>\n", easyButtonVersion))
	htmlBuilder.WriteString("<script>\n")
	htmlBuilder.WriteString("var map = L.map('map');\n")

	// --- Base Layers ---
	htmlBuilder.WriteString("var baseLayers = {\n")
	for _, bl := range page.baseLayers {
		tile, ok := bl.Layer.(*leafletLayer)
		if !ok {
			return "", fmt.Errorf("base layer '%s' was not built by this engine", bl.Label)
		}
		htmlBuilder.WriteString(fmt.Sprintf("  %s: L.tileLayer.provider(%s),\n", jsString(bl.Label), jsString(tile.provider)))
	}
	htmlBuilder.WriteString("};\n")
	htmlBuilder.WriteString("L.control.layers(baseLayers).addTo(map);\n")
	htmlBuilder.WriteString(fmt.Sprintf("baseLayers[%s].addTo(map);\n", jsString(session.DefaultLayer)))

	// --- Markers & Clusters ---
	waypointJSON, err := json.Marshal(engine.markerCollection())
	if err != nil {
		return "", fmt.Errorf("encoding waypoints: %w", err)
	}
	htmlBuilder.WriteString(fmt.Sprintf("var waypoints = %s;\n", waypointJSON))
	htmlBuilder.WriteString(fmt.Sprintf(`var clusters = L.markerClusterGroup();
var markerLayer = L.geoJSON(waypoints, {
  pointToLayer: function(feature, latlng) {
    var color = feature.properties && feature.properties.%[1]s;
    if (color) {
      return L.circleMarker(latlng, { radius: 7, color: color, fillColor: color, fillOpacity: 0.8 });
    }
    return L.marker(latlng);
  },
  onEachFeature: function(feature, layer) {
    if (feature.properties && feature.properties.%[2]s) {
      layer.bindPopup(feature.properties.%[2]s);
    }
  }
});
markerLayer.addTo(clusters);
map.addLayer(clusters);
`, colorProperty, popupProperty))

	// --- Initial View ---
	switch {
	case page.fitBounds != nil:
		b := page.fitBounds
		htmlBuilder.WriteString(fmt.Sprintf("map.fitBounds([[%.6f, %.6f], [%.6f, %.6f]], { padding: [%d, %d], maxZoom: %d });\n",
			b.Min.Lat(), b.Min.Lon(), b.Max.Lat(), b.Max.Lon(),
			engine.cfg.FitPadding, engine.cfg.FitPadding, engine.maxZoom()))
	case page.initial != nil:
		htmlBuilder.WriteString(fmt.Sprintf("map.setView([%.6f, %.6f], %d);\n",
			page.initial.Center.Lat(), page.initial.Center.Lon(), page.initial.Zoom))
	default:
		return "", fmt.Errorf("map view was never set")
	}
	htmlBuilder.WriteString("var anchorCenter = map.getCenter();\nvar anchorZoom = map.getZoom();\n")

	// --- About Popup ---
	htmlBuilder.WriteString(fmt.Sprintf(`var aboutContent = %s;
function aboutPlacement() {
  var w = window.innerWidth, h = window.innerHeight;
  var docBottom = document.documentElement.getBoundingClientRect().bottom;
  var bottom = docBottom > 0 ? Math.min(h, docBottom) : h;
  return { x: w / 2, y: bottom - %[2]g * h, maxWidth: %[3]g * w, maxHeight: %[4]g * h };
}
function openAbout(p) {
  L.popup({ maxWidth: p.maxWidth, maxHeight: p.maxHeight, closeButton: true, autoPan: false })
    .setLatLng(map.containerPointToLatLng([p.x, p.y]))
    .setContent(aboutContent)
    .openOn(map);
}
`, jsString(aboutContentOf(session)), aboutBottomOffset, aboutMaxWidthFrac, aboutMaxHeightFrac))

	// --- Buttons ---
	var buttonVars []string
	for i, b := range page.buttons {
		script, ok := buttonScripts[b.spec.ID]
		if !ok {
			log.Printf("Warning: button '%s' has no browser action, rendering it inert.", b.spec.ID)
			script = "function() {}"
		}
		varName := fmt.Sprintf("button%d", i)
		buttonVars = append(buttonVars, varName)
		htmlBuilder.WriteString(fmt.Sprintf("var %s = L.easyButton({ id: %s, states: [{ stateName: %s, icon: %s, title: %s, onClick: %s }] });\n",
			varName, jsString(b.spec.ID), jsString(b.spec.ID+"-state"), jsString(b.spec.Icon), jsString(b.spec.Title), script))
		if b.spec.ID == "reset" {
			htmlBuilder.WriteString(fmt.Sprintf(`map.on('zoomend', function(e) {
  if (e.target.getZoom() == anchorZoom) { %[1]s.disable(); } else { %[1]s.enable(); }
});
`, varName))
		}
	}
	if len(buttonVars) > 0 {
		htmlBuilder.WriteString(fmt.Sprintf("L.easyBar([%s]).addTo(map);\n", strings.Join(buttonVars, ", ")))
	}
	for i, b := range page.buttons {
		if !b.enabled {
			htmlBuilder.WriteString(fmt.Sprintf("%s.disable();\n", buttonVars[i]))
		}
	}

	// --- Scale ---
	if page.hasScale {
		htmlBuilder.WriteString(fmt.Sprintf("L.control.scale({ position: %s }).addTo(map);\n", jsString(string(page.scale))))
	}

	// --- Popups opened during composition ---
	for _, p := range page.popups {
		htmlBuilder.WriteString(fmt.Sprintf("openAbout({ x: %.1f, y: %.1f, maxWidth: %.1f, maxHeight: %.1f });\n",
			p.opts.X, p.opts.Y, p.opts.MaxWidth, p.opts.MaxHeight))
	}

	htmlBuilder.WriteString("window.travelmap = { map: map, openAbout: openAbout, aboutPlacement: aboutPlacement, anchorZoom: anchorZoom };\n")
	htmlBuilder.WriteString("</script>\n</body>\n</html>")

	return htmlBuilder.String(), nil
}

func aboutContentOf(session *MapSession) string {
	if session.About == nil {
		return ""
	}
	return session.About.content
}

// jsString quotes s as a JavaScript string literal safe inside a <script> element.
func jsString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}
