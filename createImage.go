// createImage.go
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	renderTimeout = 90 * time.Second
	tileSettle    = 3 * time.Second // Time given to tiles and cluster animations
)

// chromeGeometry reads window and document sizes from a running browser tab.
type chromeGeometry struct {
	ctx context.Context
}

func (g chromeGeometry) WindowSize() (float64, float64, error) {
	var dims []float64
	if err := chromedp.Run(g.ctx, chromedp.Evaluate(`[window.innerWidth, window.innerHeight]`, &dims)); err != nil {
		return 0, 0, err
	}
	if len(dims) != 2 {
		return 0, 0, fmt.Errorf("unexpected window size result %v", dims)
	}
	return dims[0], dims[1], nil
}

func (g chromeGeometry) DocumentBottom() (float64, error) {
	var bottom float64
	err := chromedp.Run(g.ctx, chromedp.Evaluate(`document.documentElement.getBoundingClientRect().bottom`, &bottom))
	return bottom, err
}

// generateImage renders the map page in headless Chrome and writes a PNG or JPEG.
// With openAbout set, the about popup is placed from the browser's own geometry
// before the capture.
func generateImage(session *MapSession, engine *leafletEngine, cfg MapConfig, format string, openAbout bool, outputWriter io.Writer) error {
	// 1. Generate the page first
	htmlString, err := generateHTML(session, engine, cfg.Title)
	if err != nil {
		return fmt.Errorf("failed to generate intermediate HTML: %w", err)
	}
	dataURI := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlString))
	log.Println("Created data URI for map page.")

	// 2. Setup chromedp
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.WindowSize(cfg.Viewport.Width, cfg.Viewport.Height),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	ctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()
	ctx, cancelTimeout := context.WithTimeout(ctx, renderTimeout)
	defer cancelTimeout()

	// 3. Load the page and let tiles arrive
	log.Println("Running chromedp tasks (navigate and wait for map)...")
	if err := chromedp.Run(ctx,
		chromedp.EmulateViewport(int64(cfg.Viewport.Width), int64(cfg.Viewport.Height)),
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`#map`, chromedp.ByID),
		chromedp.Sleep(tileSettle),
	); err != nil {
		return fmt.Errorf("chromedp execution failed: %w", err)
	}

	// 4. Optionally open the about popup using the live window geometry
	if openAbout && session.About != nil {
		// The tab goes away with ctx, so the session keeps its own geometry.
		placement, err := placementFrom(chromeGeometry{ctx: ctx})
		if err != nil {
			return fmt.Errorf("about popup placement: %w", err)
		}
		if err := openAboutInBrowser(ctx, placement); err != nil {
			return err
		}
		log.Printf("Opened about popup at %.0f,%.0f.", placement.X, placement.Y)
	}

	// 5. Screenshot the map element
	var screenshotBuf []byte
	if err := chromedp.Run(ctx, chromedp.Screenshot(`#map`, &screenshotBuf, chromedp.ByID)); err != nil {
		return fmt.Errorf("chromedp screenshot failed: %w", err)
	}
	log.Println("Chromedp tasks completed successfully.")

	if len(screenshotBuf) == 0 {
		return fmt.Errorf("screenshot buffer is empty, screenshot failed")
	}
	return encodeScreenshot(screenshotBuf, format, outputWriter)
}

func openAboutInBrowser(ctx context.Context, placement PopupOptions) error {
	arg, err := json.Marshal(map[string]float64{
		"x":         placement.X,
		"y":         placement.Y,
		"maxWidth":  placement.MaxWidth,
		"maxHeight": placement.MaxHeight,
	})
	if err != nil {
		return fmt.Errorf("encoding about placement: %w", err)
	}
	var opened bool
	script := fmt.Sprintf(`(window.travelmap.openAbout(%s), true)`, arg)
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &opened)); err != nil {
		return fmt.Errorf("opening about popup: %w", err)
	}
	return nil
}

// encodeScreenshot writes the PNG capture as-is or re-encoded as JPEG.
func encodeScreenshot(screenshotBuf []byte, format string, outputWriter io.Writer) error {
	screenshotReader := bytes.NewReader(screenshotBuf)

	switch format {
	case "png":
		if _, err := io.Copy(outputWriter, screenshotReader); err != nil {
			return fmt.Errorf("failed to write PNG screenshot data: %w", err)
		}
	case "jpg", "jpeg":
		img, errPng := png.Decode(screenshotReader)
		if errPng != nil {
			return fmt.Errorf("failed to decode PNG screenshot: %w", errPng)
		}
		opts := &jpeg.Options{Quality: 90}
		if err := jpeg.Encode(outputWriter, img, opts); err != nil {
			return fmt.Errorf("failed to encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("internal error: unsupported image format '%s' with chromedp", format)
	}

	log.Printf("Successfully encoded %s image using chromedp.", strings.ToUpper(format))
	return nil
}
