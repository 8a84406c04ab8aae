package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArtwork(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestOptimizeImage_BoundsDimensions(t *testing.T) {
	data := testArtwork(t, 1600, 1200)

	thumb, err := OptimizeImage(data, "thumb")
	require.NoError(t, err)
	img, err := imaging.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), 300)
	assert.LessOrEqual(t, img.Bounds().Dy(), 300)

	medium, err := OptimizeImage(data, "medium")
	require.NoError(t, err)
	img, err = imaging.Decode(bytes.NewReader(medium))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), 800)
	assert.Greater(t, img.Bounds().Dx(), 300)
}

func TestOptimizeImage_SmallImagesAreNotUpscaled(t *testing.T) {
	data := testArtwork(t, 120, 80)
	out, err := OptimizeImage(data, "medium")
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestOptimizeImage_UnknownSizeFallsBackToMedium(t *testing.T) {
	data := testArtwork(t, 1600, 1600)
	out, err := OptimizeImage(data, "gigantic")
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), 800)
}

func TestOptimizeImage_UndecodableInput(t *testing.T) {
	_, err := OptimizeImage([]byte("not an image"), "thumb")
	assert.Error(t, err)
}

func TestCacheRoundTrip(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "icon_asset_7_thumb.jpg")
	assert.False(t, CacheExists(cachePath))

	require.NoError(t, SaveToCache(cachePath, []byte("jpeg bytes")))
	assert.True(t, CacheExists(cachePath))

	data, err := ReadFromCache(cachePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)
}

func TestGetCachePath(t *testing.T) {
	assert.Equal(t, filepath.Join("cache", "images", "icon_asset_42_thumb.jpg"), GetCachePath(42, "thumb"))
}
