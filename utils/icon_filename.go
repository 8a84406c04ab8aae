package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"keypad-studio/models"
)

// Icon artwork in the Drive folder follows the pattern:
// <ICONID>-<NAME>-<SIZEMM>MM-<M|G>.png
// Example: A12-PLAY-19MM-M.PNG (matte play glyph, 19 mm insert)
var (
	extPattern    = regexp.MustCompile(`\.(png|jpg|jpeg)$`)
	sizePattern   = regexp.MustCompile(`^([0-9]+(?:_[0-9]+)?)MM$`)
	iconIDPattern = regexp.MustCompile(`^[A-Z0-9]{3,4}$`)
)

// capitalizeWords capitalizes the first letter of each word
func capitalizeWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(string(word[0])) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

// ParseIconFileName parses an artwork filename into an icon asset. The
// filename is the only metadata carrier for Drive uploads, so a file that
// does not match the convention is rejected rather than guessed at.
func ParseIconFileName(filename string) (*models.IconAsset, error) {
	nameWithoutExt := extPattern.ReplaceAllString(strings.ToLower(filename), "")

	parts := strings.Split(strings.ToUpper(nameWithoutExt), "-")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid filename format: expected 4 parts separated by '-', got %d parts", len(parts))
	}

	iconID := parts[0]
	if !iconIDPattern.MatchString(iconID) {
		return nil, fmt.Errorf("invalid icon id %q: expected 3-4 alphanumeric characters", iconID)
	}

	name := strings.ReplaceAll(parts[1], "_", " ")
	if name == "" {
		return nil, fmt.Errorf("missing icon name")
	}

	sizeMatch := sizePattern.FindStringSubmatch(parts[2])
	if sizeMatch == nil {
		return nil, fmt.Errorf("invalid size segment %q: expected e.g. 19MM or 12_5MM", parts[2])
	}
	sizeMM, err := strconv.ParseFloat(strings.ReplaceAll(sizeMatch[1], "_", "."), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid size value %q", sizeMatch[1])
	}

	var finish string
	switch parts[3] {
	case "M":
		finish = "matte"
	case "G":
		finish = "glossy"
	default:
		return nil, fmt.Errorf("invalid finish %q: expected M or G", parts[3])
	}

	return &models.IconAsset{
		IconID: iconID,
		Name:   capitalizeWords(name),
		SizeMM: sizeMM,
		Finish: finish,
	}, nil
}
