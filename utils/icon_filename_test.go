package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIconFileName_Valid(t *testing.T) {
	asset, err := ParseIconFileName("A12-PLAY-19MM-M.png")
	require.NoError(t, err)
	assert.Equal(t, "A12", asset.IconID)
	assert.Equal(t, "Play", asset.Name)
	assert.Equal(t, 19.0, asset.SizeMM)
	assert.Equal(t, "matte", asset.Finish)
}

func TestParseIconFileName_CaseAndExtensionVariants(t *testing.T) {
	asset, err := ParseIconFileName("b70-ceiling_fan-19mm-g.JPEG")
	require.NoError(t, err)
	assert.Equal(t, "B70", asset.IconID)
	assert.Equal(t, "Ceiling Fan", asset.Name)
	assert.Equal(t, "glossy", asset.Finish)
}

func TestParseIconFileName_FractionalSize(t *testing.T) {
	asset, err := ParseIconFileName("C3PO-DROID-12_5MM-M.png")
	require.NoError(t, err)
	assert.Equal(t, "C3PO", asset.IconID)
	assert.Equal(t, 12.5, asset.SizeMM)
}

func TestParseIconFileName_Invalid(t *testing.T) {
	for _, filename := range []string{
		"A12-PLAY-19MM.png",           // missing finish segment
		"A12-PLAY-19MM-M-EXTRA.png",   // too many segments
		"TOOLONG5-PLAY-19MM-M.png",    // icon id too long
		"A!-PLAY-19MM-M.png",          // icon id not alphanumeric
		"A12-PLAY-19CM-M.png",         // wrong size unit
		"A12-PLAY-19MM-X.png",         // unknown finish
		"A12-PLAY-19MM-M.gif",         // unsupported extension leaks into the finish
	} {
		_, err := ParseIconFileName(filename)
		assert.Error(t, err, "filename %s", filename)
	}
}

func TestInferModelCode(t *testing.T) {
	known := func(code string) bool {
		return code == "KP4" || code == "KP6" || code == "KP9"
	}

	cases := map[string]string{
		"Keypad KP4 Starter":        "KP4",
		"kp9 pro bundle":            "KP9",
		"Classic 6-key wall switch": "KP6",
		"Nine key scene controller": "KP9",
	}
	for text, want := range cases {
		code, ok := InferModelCode(text, known)
		require.True(t, ok, "text %q", text)
		assert.Equal(t, want, code, "text %q", text)
	}
}

func TestInferModelCode_NoMatchIsExplicit(t *testing.T) {
	known := func(code string) bool { return code == "KP4" }

	_, ok := InferModelCode("Mounting Plate", known)
	assert.False(t, ok)

	// A code-shaped token for unknown hardware does not count.
	_, ok = InferModelCode("Keypad KP77", known)
	assert.False(t, ok)

	// Substrings must not match the code token.
	_, ok = InferModelCode("SKP4X adapter", known)
	assert.False(t, ok)
}
