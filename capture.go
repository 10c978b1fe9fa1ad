package diagram2png

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod/lib/proto"
)

// captureOptions sizes the browsing context for one capture.
type captureOptions struct {
	width          int  // viewport width, CSS pixels
	height         int  // viewport height, CSS pixels
	scale          int  // device scale factor
	omitBackground bool // transparent page background
	detect         bool // run content detection after the screenshot
}

// captureResult is one full-page capture plus the detected content box.
// box is nil when detection was skipped, found nothing, or failed;
// detectErr carries the failure for diagnostics in the latter case.
type captureResult struct {
	png       []byte
	box       *BoundingBox
	detectErr error
}

// pageCapturer abstracts the browser-backed capture step to enable
// testing the orchestrator without a browser.
type pageCapturer interface {
	capture(ctx context.Context, htmlPath string, opts captureOptions) (*captureResult, error)
}

// Compile-time interface check.
var _ pageCapturer = (*rodCapturer)(nil)

// requestIdleWindow is how long the network must stay quiet before a
// page counts as settled.
const requestIdleWindow = 300 * time.Millisecond

// transparentBackground builds the override for a fully transparent
// page background. The protocol's alpha is optional and defaults to 1,
// so zero must be set through an explicit pointer.
func transparentBackground() *proto.EmulationSetDefaultBackgroundColorOverride {
	alpha := 0.0
	return &proto.EmulationSetDefaultBackgroundColorOverride{
		Color: &proto.DOMRGBA{R: 0, G: 0, B: 0, A: &alpha},
	}
}

// rodCapturer captures pages with go-rod. Each capture acquires its own
// browser session through the fallback chain and releases it before
// returning; sessions are never shared or pooled.
type rodCapturer struct {
	sessions    sessionManager
	timeout     time.Duration
	settleDelay time.Duration
}

// capture loads the HTML file in a sized isolated browsing context,
// waits for the page to settle, takes a full-page PNG screenshot, and
// optionally runs content detection. Detection failure is not fatal:
// it is reported through captureResult.detectErr alongside the capture.
func (c *rodCapturer) capture(ctx context.Context, htmlPath string, opts captureOptions) (*captureResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := c.sessions.acquire()
	if err != nil {
		return nil, err
	}
	defer sess.release()

	// Isolated context so exports never share cookies or cache.
	browser, err := sess.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.width,
		Height:            opts.height,
		DeviceScaleFactor: float64(opts.scale),
		Mobile:            false,
	}); err != nil {
		return nil, fmt.Errorf("%w: viewport: %v", ErrPageCreate, err)
	}

	if opts.omitBackground {
		if err := transparentBackground().Call(page); err != nil {
			return nil, fmt.Errorf("%w: background override: %v", ErrPageCreate, err)
		}
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	timed := page.Timeout(timeout)

	if err := timed.Navigate("file://" + htmlPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := timed.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Network settle, then a fixed grace period for animation/layout.
	wait := timed.WaitRequestIdle(requestIdleWindow, nil, nil, nil)
	wait()
	time.Sleep(c.settleDelay)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bin, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}

	result := &captureResult{png: bin}
	if opts.detect {
		result.box, result.detectErr = detectContentBox(page)
	}
	return result, nil
}
