package service

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const (
	cacheDir = "cache/images"

	qualityThumb  = 60
	qualityMedium = 75

	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// EnsureCacheDir creates the optimized-image cache directory if missing.
func EnsureCacheDir() error {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// GetCachePath returns the cache file path for an asset id and size.
func GetCachePath(assetID int, size string) string {
	return filepath.Join(cacheDir, fmt.Sprintf("icon_asset_%d_%s.jpg", assetID, size))
}

// CacheExists checks whether a cached image exists.
func CacheExists(cachePath string) bool {
	_, err := os.Stat(cachePath)
	return err == nil
}

// ReadFromCache reads an optimized image from the cache.
func ReadFromCache(cachePath string) ([]byte, error) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read from cache: %w", err)
	}
	return data, nil
}

// SaveToCache writes an optimized image to the cache.
func SaveToCache(cachePath string, imageData []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// OptimizeImage re-encodes raw artwork bytes as a bounded JPEG for the admin
// review UI. size is "thumb" or "medium"; anything else falls back to medium.
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	maxDim, quality := maxSizeMedium, qualityMedium
	switch size {
	case "thumb":
		maxDim, quality = maxSizeThumb, qualityThumb
	case "medium":
	default:
		log.Printf("⚠️  Unknown size '%s', defaulting to medium", size)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
