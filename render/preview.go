package render

import (
	"fmt"
	"html"
	"strings"

	"keypad-studio/geometry"
	"keypad-studio/models"
)

// IconLookup resolves an icon id to its catalog item. All three adapters
// share the same input contract: geometry + configuration + icon lookup.
type IconLookup func(iconID string) (models.IconCatalogItem, bool)

// RatioLookup reports an asset's visible ratio; unknown assets report 1.
type RatioLookup func(assetURL string) float64

// PreviewOptions sizes the interactive preview surface.
type PreviewOptions struct {
	// Width/Height of the render surface in px. Zero means the shell's
	// intrinsic size.
	Width  float64
	Height float64
	// BaseIconScale is the fraction of the slot box an icon with full
	// coverage occupies. Zero means the default.
	BaseIconScale float64
	// MaxScaleBoost caps the compensation multiplier applied to sparsely
	// padded artwork. Zero means the default.
	MaxScaleBoost float64
}

const (
	defaultBaseIconScale = 0.62
	defaultMaxScaleBoost = 1.6

	neutralOutline = "#9AA1A9"
)

func (o PreviewOptions) resolved(geom *models.KeypadModelGeometry) (w, h, base, boost float64) {
	w, h = o.Width, o.Height
	if w <= 0 || h <= 0 {
		w, h = float64(geom.ShellWidth), float64(geom.ShellHeight)
	}
	base = o.BaseIconScale
	if base <= 0 {
		base = defaultBaseIconScale
	}
	boost = o.MaxScaleBoost
	if boost <= 0 {
		boost = defaultMaxScaleBoost
	}
	return w, h, base, boost
}

// RenderPreview produces the interactive SVG preview: shell image, per-slot
// glow rings and fit-compensated icon artwork. Slots render in canonical
// order so the markup is deterministic.
func RenderPreview(geom *models.KeypadModelGeometry, config models.KeypadConfiguration, icons IconLookup, ratios RatioLookup, opts PreviewOptions) string {
	surfaceW, surfaceH, baseScale, maxBoost := opts.resolved(geom)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`,
		surfaceW, surfaceH, surfaceW, surfaceH)
	sb.WriteString(`<defs><filter id="glow" x="-50%" y="-50%" width="200%" height="200%"><feGaussianBlur stdDeviation="6" result="blur"/><feMerge><feMergeNode in="blur"/><feMergeNode in="SourceGraphic"/></feMerge></filter></defs>`)
	if geom.ShellImage != "" {
		fmt.Fprintf(&sb, `<image href="%s" x="0" y="0" width="%.0f" height="%.0f"/>`,
			html.EscapeString(geom.ShellImage), surfaceW, surfaceH)
	}

	for _, id := range geometry.GetSlotIDsForModel(geom.ModelCode) {
		slotGeom := geom.Slots[id]
		cx, cy, w, h := geometry.PixelBox(slotGeom, geom.Convention, surfaceW, surfaceH)
		slot := config[id]

		// Glow ring sits inset within the slot's safe zone; without a color
		// only a neutral outline is drawn.
		ringR := minOf(w, h) / 2 * (1 - slotGeom.SafeZone)
		if slot.Color != nil {
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="5" filter="url(#glow)" data-slot="%s"/>`,
				cx, cy, ringR, html.EscapeString(*slot.Color), id)
		} else {
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="2" data-slot="%s"/>`,
				cx, cy, ringR, neutralOutline, id)
		}

		if slot.IconID == nil {
			continue
		}
		item, ok := icons(*slot.IconID)
		if !ok || item.MatteImageURL == "" {
			continue
		}

		// Icon-fit compensation: divide the base scale by the artwork's
		// visible ratio so padded and tight glyphs present at the same
		// apparent size, capped so sparse artwork cannot overflow the slot.
		scale := baseScale
		if ratios != nil {
			if ratio := ratios(item.MatteImageURL); ratio > 0 {
				scale = baseScale / ratio
			}
		}
		if limit := baseScale * maxBoost; scale > limit {
			scale = limit
		}
		iconSize := minOf(w, h) * scale
		fmt.Fprintf(&sb, `<image href="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" data-icon="%s"/>`,
			html.EscapeString(item.MatteImageURL), cx-iconSize/2, cy-iconSize/2, iconSize, iconSize, html.EscapeString(item.IconID))
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

func minOf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
