package render

import (
	"fmt"
	"html"
	"strings"

	"keypad-studio/geometry"
	"keypad-studio/models"
)

// ThumbnailOptions sizes the compact thumbnail.
type ThumbnailOptions struct {
	// Width of the thumbnail in px; height follows the shell's aspect
	// ratio. Zero means the default.
	Width float64
}

const defaultThumbnailWidth = 200

// RenderThumbnail produces the compact saved-design/cart thumbnail: filled
// slot dots over a plain shell silhouette, no artwork fetches. Dots are
// filled with the glow color when one is set, dark when an icon is assigned
// and hollow otherwise.
func RenderThumbnail(geom *models.KeypadModelGeometry, config models.KeypadConfiguration, icons IconLookup, opts ThumbnailOptions) string {
	width := opts.Width
	if width <= 0 {
		width = defaultThumbnailWidth
	}
	height := width * float64(geom.ShellHeight) / float64(geom.ShellWidth)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`,
		width, height, width, height)
	fmt.Fprintf(&sb, `<rect x="0" y="0" width="%.0f" height="%.0f" rx="%.1f" fill="#2B2F33"/>`,
		width, height, width*0.04)

	for _, id := range geometry.GetSlotIDsForModel(geom.ModelCode) {
		cx, cy, w, h := geometry.PixelBox(geom.Slots[id], geom.Convention, width, height)
		r := minOf(w, h) / 2 * 0.8
		slot := config[id]

		fill := "none"
		stroke := neutralOutline
		if slot.IconID != nil {
			fill = "#11151A"
			stroke = "#E5E8EB"
		}
		if slot.Color != nil {
			fill = *slot.Color
		}
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="1.5">`,
			cx, cy, r, html.EscapeString(fill), stroke)
		if slot.IconID != nil {
			if item, ok := icons(*slot.IconID); ok {
				fmt.Fprintf(&sb, `<title>%s</title>`, html.EscapeString(item.Name))
			}
		}
		sb.WriteString(`</circle>`)
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}
