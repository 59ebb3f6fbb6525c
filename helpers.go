package main

import (
	"fmt"
	"strings"
)

// --- XML/HTML Escaping ---
func escapeXML(s string) string {
	var buf strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;") // &apos; is not valid in HTML4
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

var escapeHTML = escapeXML

// formatLatLon renders a point as "lat, lon" for logs and tooltips.
func formatLatLon(lat, lon float64) string {
	return fmt.Sprintf("%.5f, %.5f", lat, lon)
}

// Simple ternary helper for inline conditions
func ternary(condition bool, trueVal, falseVal string) string {
	if condition {
		return trueVal
	}
	return falseVal
}
