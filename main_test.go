package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestGeneratedOutput performs snapshot comparison of the HTML and SVG output
// for every waypoint file in testdata.
func TestGeneratedOutput(t *testing.T) {
	testDataDir := "testdata"

	waypointFiles, err := filepath.Glob(filepath.Join(testDataDir, "*.geojson"))
	if err != nil {
		t.Fatalf("Error finding waypoint files: %v", err)
	}
	if len(waypointFiles) == 0 {
		t.Fatalf("No waypoint files found in %s", testDataDir)
	}

	for _, waypointFile := range waypointFiles {
		baseName := strings.TrimSuffix(filepath.Base(waypointFile), ".geojson")
		t.Run(baseName, func(t *testing.T) {
			// --- Load Config (optional) ---
			configFile := filepath.Join(testDataDir, baseName+".config.yaml")
			if _, err := os.Stat(configFile); err != nil {
				configFile = ""
			}
			cfg, err := loadConfig(configFile)
			if err != nil {
				t.Fatalf("Error loading config for %s: %v", baseName, err)
			}

			// --- Load Waypoints ---
			data, err := os.ReadFile(waypointFile)
			if err != nil {
				t.Fatalf("Error reading waypoint file %s: %v", waypointFile, err)
			}
			waypoints, err := loadWaypoints(data)
			if err != nil {
				t.Fatalf("Error parsing waypoints %s: %v", waypointFile, err)
			}

			// --- Compose ---
			engine := newLeafletEngine(cfg)
			geometry := staticGeometry{width: float64(cfg.Viewport.Width), height: float64(cfg.Viewport.Height)}
			session, err := composeMap(engine, cfg, waypoints, geometry)
			if err != nil {
				t.Fatalf("Error composing map for %s: %v", baseName, err)
			}

			// --- Generate HTML ---
			generatedHTML, err := generateHTML(session, engine, cfg.Title)
			if err != nil {
				t.Fatalf("Error generating HTML for %s: %v", baseName, err)
			}
			compareSnapshot(t, filepath.Join(testDataDir, baseName+".expected.html"), generatedHTML)

			// --- Generate SVG ---
			generatedSVG, err := GenerateSVG(cfg, waypoints)
			if len(waypoints.Features) == 0 {
				if err == nil {
					t.Errorf("Expected SVG error for empty waypoint file %s", waypointFile)
				}
				return
			}
			if err != nil {
				t.Fatalf("Error generating SVG for %s: %v", baseName, err)
			}
			compareSnapshot(t, filepath.Join(testDataDir, baseName+".expected.svg"), generatedSVG)
		})
	}
}

// compareSnapshot compares generated output with the stored snapshot. A
// missing snapshot is created from the generated output and the test fails.
func compareSnapshot(t *testing.T, expectedFile, generated string) {
	t.Helper()
	expectedBytes, err := os.ReadFile(expectedFile)
	if err != nil {
		if os.IsNotExist(err) {
			if writeErr := os.WriteFile(expectedFile, []byte(generated), 0644); writeErr != nil {
				t.Errorf("Failed to write new expected file %s: %v", expectedFile, writeErr)
				return
			}
			t.Errorf("Expected file %s not found. Created it from this run; review it and rerun.", expectedFile)
			return
		}
		t.Fatalf("Error reading expected file %s: %v", expectedFile, err)
	}

	// Normalize line endings for comparison
	normalizedGenerated := strings.ReplaceAll(generated, "\r\n", "\n")
	normalizedExpected := strings.ReplaceAll(string(expectedBytes), "\r\n", "\n")

	if normalizedGenerated != normalizedExpected {
		diff := findFirstDifference(normalizedExpected, normalizedGenerated)
		t.Errorf("Generated output does not match %s.\nFirst difference near character %d:\nEXPECTED:\n...%s...\nGOT:\n...%s...",
			expectedFile, diff.Index, diff.ExpectedContext, diff.GotContext)
		ext := filepath.Ext(expectedFile)
		failedFile := strings.TrimSuffix(strings.TrimSuffix(expectedFile, ext), ".expected") + ".failed" + ext
		if writeErr := os.WriteFile(failedFile, []byte(generated), 0644); writeErr != nil {
			t.Logf("Could not write differing output to %s: %v", failedFile, writeErr)
			return
		}
		t.Logf("Wrote differing output to %s", failedFile)
	}
}

func TestCheckOutputOptions(t *testing.T) {
	tests := []struct {
		format    string
		openAbout bool
		wantErr   string
	}{
		{"html", true, ""},
		{"png", true, ""},
		{"jpeg", false, ""},
		{"svg", false, ""},
		{"svg", true, "-about"},
		{"gif", false, "unsupported export format 'gif'"},
	}
	for _, tt := range tests {
		err := checkOutputOptions(tt.format, tt.openAbout)
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("checkOutputOptions(%q, %v) = %v", tt.format, tt.openAbout, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("checkOutputOptions(%q, %v) = %v, want error containing %q", tt.format, tt.openAbout, err, tt.wantErr)
		}
	}
}

func TestFindFirstDifference(t *testing.T) {
	d := findFirstDifference("abcdef", "abcxef")
	if d.Index != 3 {
		t.Errorf("Index = %d, want 3", d.Index)
	}
	d = findFirstDifference("abc", "abcd")
	if d.Index != 3 {
		t.Errorf("prefix Index = %d, want 3", d.Index)
	}
}

// diffResult helps show context around the first difference.
type diffResult struct {
	Index           int
	ExpectedContext string
	GotContext      string
}

// findFirstDifference finds the first differing character and provides context.
func findFirstDifference(s1, s2 string) diffResult {
	limit := len(s1)
	if len(s2) < limit {
		limit = len(s2)
	}
	idx := -1
	for i := 0; i < limit; i++ {
		if s1[i] != s2[i] {
			idx = i
			break
		}
	}
	// Handle case where one string is a prefix of the other
	if idx == -1 && len(s1) != len(s2) {
		idx = limit
	}
	if idx == -1 {
		return diffResult{Index: 0, ExpectedContext: "(Strings are identical)", GotContext: "(Strings are identical)"}
	}

	contextSize := 20 // Characters before and after the difference
	start := idx - contextSize
	if start < 0 {
		start = 0
	}
	endS1 := idx + contextSize
	if endS1 > len(s1) {
		endS1 = len(s1)
	}
	endS2 := idx + contextSize
	if endS2 > len(s2) {
		endS2 = len(s2)
	}

	return diffResult{
		Index:           idx,
		ExpectedContext: s1[start:endS1],
		GotContext:      s2[start:endS2],
	}
}
