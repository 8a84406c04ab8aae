package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/disintegration/imaging"
)

const (
	// minVisibleRatio / maxVisibleRatio clamp the measured ratio so a nearly
	// empty canvas cannot blow the compensation scale up without bound.
	minVisibleRatio = 0.1
	maxVisibleRatio = 1.0

	// alphaThreshold is the 16-bit alpha above which a pixel counts as
	// visible content.
	alphaThreshold = 0x0800

	// scanMaxDim bounds the pixel scan cost; the bounding-box ratio is scale
	// invariant so downsampling first does not change the result materially.
	scanMaxDim = 256
)

// Fetcher retrieves raw image bytes for an asset URL.
type Fetcher func(ctx context.Context, url string) ([]byte, error)

// AlphaAnalyzer measures how much of an icon's canvas is covered by
// non-transparent pixels. Source artwork is not visually uniform: some glyphs
// fill the canvas, others leave wide internal margins. The preview adapter
// divides its base icon scale by this ratio so every icon presents at a
// consistent apparent size.
//
// Results are memoized per URL; concurrent callers for the same URL share one
// fetch. Any failure degrades to ratio 1.0 (assume full coverage) instead of
// blocking rendering.
type AlphaAnalyzer struct {
	mu       sync.Mutex
	ratios   map[string]float64
	inflight map[string]chan struct{}
	fetch    Fetcher
}

// NewAlphaAnalyzer creates an analyzer. A nil fetcher uses plain HTTP GET.
func NewAlphaAnalyzer(fetch Fetcher) *AlphaAnalyzer {
	if fetch == nil {
		fetch = httpFetch
	}
	return &AlphaAnalyzer{
		ratios:   make(map[string]float64),
		inflight: make(map[string]chan struct{}),
		fetch:    fetch,
	}
}

func httpFetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build asset request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asset endpoint returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// VisibleRatio returns the memoized visible ratio for an asset URL, fetching
// and scanning it on first use. Always returns a value in [0.1, 1].
func (a *AlphaAnalyzer) VisibleRatio(ctx context.Context, url string) float64 {
	for {
		a.mu.Lock()
		if ratio, ok := a.ratios[url]; ok {
			a.mu.Unlock()
			return ratio
		}
		if done, ok := a.inflight[url]; ok {
			a.mu.Unlock()
			select {
			case <-done:
				continue
			case <-ctx.Done():
				return maxVisibleRatio
			}
		}
		done := make(chan struct{})
		a.inflight[url] = done
		a.mu.Unlock()

		ratio := a.measure(ctx, url)

		a.mu.Lock()
		a.ratios[url] = ratio
		delete(a.inflight, url)
		close(done)
		a.mu.Unlock()
		return ratio
	}
}

// Peek returns the memoized ratio without triggering a fetch. Unknown URLs
// report 1.0.
func (a *AlphaAnalyzer) Peek(url string) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if ratio, ok := a.ratios[url]; ok {
		return ratio
	}
	return maxVisibleRatio
}

func (a *AlphaAnalyzer) measure(ctx context.Context, url string) float64 {
	data, err := a.fetch(ctx, url)
	if err != nil {
		log.Printf("⚠️  AlphaAnalyzer: fetch failed for %s, assuming full coverage: %v", url, err)
		return maxVisibleRatio
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("⚠️  AlphaAnalyzer: decode failed for %s, assuming full coverage: %v", url, err)
		return maxVisibleRatio
	}
	return VisibleRatioOf(img)
}

// VisibleRatioOf scans an image's alpha channel for the tight bounding box of
// visible content and returns the larger of bbox-width/canvas-width and
// bbox-height/canvas-height, clamped to [0.1, 1]. A fully transparent image
// reports the minimum ratio.
func VisibleRatioOf(img image.Image) float64 {
	bounds := img.Bounds()
	if bounds.Dx() > scanMaxDim || bounds.Dy() > scanMaxDim {
		img = imaging.Fit(img, scanMaxDim, scanMaxDim, imaging.NearestNeighbor)
		bounds = img.Bounds()
	}

	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return maxVisibleRatio
	}

	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, alpha := img.At(x, y).RGBA()
			if alpha < alphaThreshold {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < minX || maxY < minY {
		// Nothing visible at all.
		return minVisibleRatio
	}

	ratio := float64(maxX-minX+1) / float64(width)
	if vertical := float64(maxY-minY+1) / float64(height); vertical > ratio {
		ratio = vertical
	}
	if ratio < minVisibleRatio {
		return minVisibleRatio
	}
	if ratio > maxVisibleRatio {
		return maxVisibleRatio
	}
	return ratio
}
