// main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

var supportedFormats = map[string]bool{"html": true, "svg": true, "png": true, "jpg": true, "jpeg": true}

// checkOutputOptions rejects formats and flag combinations the generators cannot honor.
func checkOutputOptions(format string, openAbout bool) error {
	if !supportedFormats[format] {
		return fmt.Errorf("unsupported export format '%s'. Supported formats: html, svg, png, jpg/jpeg", format)
	}
	if openAbout && format == "svg" {
		return fmt.Errorf("-about has no effect on svg output; it works with html, png and jpg/jpeg")
	}
	return nil
}

// --- Main Program Logic ---

func main() { // NOSONAR
	// --- Argument Parsing using flag package ---
	outputFile := flag.String("o", "", "Output file path (default: stdout)")
	configFile := flag.String("config", "", "Map configuration YAML (default: built-in Utah trip layout)")
	openAbout := flag.Bool("about", false, "Open the about popup in the output (html, png, jpg)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <waypoints.geojson> <format>\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "\nArguments:")
		fmt.Fprintln(os.Stderr, "  <waypoints.geojson>  Path to the GeoJSON waypoint collection.")
		fmt.Fprintln(os.Stderr, "  <format>             Output format (html, svg, png, jpg/jpeg).")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
		os.Exit(1)
	}
	waypointFile := args[0]
	exportFormat := strings.ToLower(args[1])

	if err := checkOutputOptions(exportFormat, *openAbout); err != nil {
		log.Fatalf("%v", err)
	}

	// --- Config & Waypoints ---
	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	log.Printf("Reading waypoint file: %s", waypointFile)
	waypointBytes, err := os.ReadFile(waypointFile)
	if err != nil {
		log.Fatalf("Error reading waypoint file '%s': %v", waypointFile, err)
	}
	log.Println("Parsing waypoint GeoJSON...")
	waypoints, err := loadWaypoints(waypointBytes)
	if err != nil {
		log.Fatalf("Error parsing waypoint GeoJSON '%s': %v", waypointFile, err)
	}

	// --- Composition ---
	engine := newLeafletEngine(cfg)
	geometry := staticGeometry{width: float64(cfg.Viewport.Width), height: float64(cfg.Viewport.Height)}
	session, err := composeMap(engine, cfg, waypoints, geometry)
	if err != nil {
		log.Fatalf("Error composing map: %v", err)
	}
	if *openAbout && exportFormat == "html" {
		engine.click("about")
	}

	// --- Determine Output Writer ---
	var outputWriter io.Writer = os.Stdout
	var outFile *os.File

	if *outputFile != "" {
		log.Printf("Output directed to file: %s", *outputFile)
		outFile, err = os.Create(*outputFile)
		if err != nil {
			log.Fatalf("Error creating output file '%s': %v", *outputFile, err)
		}
		outputWriter = outFile
	} else {
		log.Println("Output directed to stdout.")
	}

	// --- Generation ---
	log.Printf("Generating output for format: %s", exportFormat)
	genErr := generate(session, engine, cfg, waypoints, exportFormat, *openAbout, outputWriter)

	if outFile != nil {
		if closeErr := outFile.Close(); closeErr != nil && genErr == nil {
			genErr = fmt.Errorf("closing output file: %w", closeErr)
		}
	}

	// --- Handle Generation Errors ---
	if genErr != nil {
		if outFile != nil {
			log.Printf("Attempting to remove potentially incomplete file: %s", *outputFile)
			if removeErr := os.Remove(*outputFile); removeErr != nil {
				log.Printf("Warning: Could not remove output file '%s' after error: %v", *outputFile, removeErr)
			}
		}
		log.Fatalf("Error generating %s: %v", exportFormat, genErr)
	}

	log.Printf("Successfully generated %s output.", strings.ToUpper(exportFormat))
	if *outputFile != "" {
		log.Printf("Output saved to: %s", *outputFile)
	}
}
