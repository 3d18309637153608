package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"meme-generator/models"
)

// waitForSurfaceJS resolves to true once fonts are ready and the template image has loaded
const waitForSurfaceJS = `
(async function() {
	await document.fonts.ready;
	const img = document.querySelector('#meme-surface img');
	if (!img) {
		return false;
	}
	if (!img.complete) {
		await new Promise((resolve) => {
			const timeout = setTimeout(resolve, 10000);
			img.onload = () => { clearTimeout(timeout); resolve(); };
			img.onerror = () => { clearTimeout(timeout); resolve(); };
		});
	}
	return img.naturalWidth > 0 && img.naturalHeight > 0;
})()
`

// surfaceRectJS returns the surface bounding box in CSS pixels
const surfaceRectJS = `
(function() {
	const r = document.querySelector('#meme-surface').getBoundingClientRect();
	return {x: r.left + window.scrollX, y: r.top + window.scrollY, width: r.width, height: r.height};
})()
`

type surfaceRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ChromeRasterizer screenshots the rendered canvas HTML in headless Chrome,
// so the export matches what the editor displays
// Implements Rasterizer
type ChromeRasterizer struct {
	canvas     *Canvas
	chromePath string
	timeout    time.Duration
}

// NewChromeRasterizer creates a ChromeRasterizer. An empty chromePath triggers auto-detection.
func NewChromeRasterizer(canvas *Canvas, chromePath string, timeout time.Duration) *ChromeRasterizer {
	if chromePath == "" {
		chromePath = detectChromePath()
	}
	return &ChromeRasterizer{
		canvas:     canvas,
		chromePath: chromePath,
		timeout:    timeout,
	}
}

// Ensure ChromeRasterizer implements Rasterizer
var _ Rasterizer = (*ChromeRasterizer)(nil)

// Name returns the rasterizer identifier
func (r *ChromeRasterizer) Name() string { return "chrome" }

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Rasterize loads the standalone canvas document into a blank page and captures
// exactly the surface rectangle as PNG
func (r *ChromeRasterizer) Rasterize(ctx context.Context, comp models.Composition) ([]byte, error) {
	htmlContent, err := r.canvas.RenderHTML(comp, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterizationFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("hide-scrollbars", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	awaitPromise := func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
		return p.WithAwaitPromise(true)
	}

	var loaded bool
	err = chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(int64(comp.Width)+64, int64(comp.Height)+64),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.WaitReady("#meme-surface"),
		chromedp.Evaluate(waitForSurfaceJS, &loaded, awaitPromise),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load surface: %v", ErrRasterizationFailed, err)
	}
	if !loaded {
		return nil, fmt.Errorf("%w: %s did not load in the browser", ErrTemplateImageUnavailable, comp.Template.ImageURL)
	}

	var rect surfaceRect
	var buf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Evaluate(surfaceRectJS, &rect),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithClip(&page.Viewport{
					X:      rect.X,
					Y:      rect.Y,
					Width:  rect.Width,
					Height: rect.Height,
					Scale:  1,
				}).
				WithCaptureBeyondViewport(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: screenshot failed: %v", ErrRasterizationFailed, err)
	}

	log.Printf("📸 Surface captured in Chrome: %.0fx%.0f, %d bytes", rect.Width, rect.Height, len(buf))
	return buf, nil
}
