package geometry

import (
	"keypad-studio/models"
)

// DefaultModelCode is the model used when a lookup misses. Renderers stay
// non-throwing for legacy or unknown model codes at the cost of possibly
// mis-rendering truly unknown hardware; hydration paths that need an exact
// model match must check KnownModel first.
const DefaultModelCode = "KP4"

// registry holds the hand-authored layout for every supported hardware
// model. Percentages were measured against the shell artwork's intrinsic
// pixel size in the design files; they are static data and never mutated.
var registry = map[string]*models.KeypadModelGeometry{
	"KP4": {
		ModelCode:   "KP4",
		Rows:        2,
		Columns:     2,
		ShellWidth:  1000,
		ShellHeight: 580,
		Convention:  models.ConventionCorner,
		SlotSizeMM:  19,
		ShellImage:  "/static/shells/kp4.png",
		Slots: map[models.SlotID]models.SlotGeometry{
			"slot_1": {Label: "Top Left", Left: 21.0, Top: 13.8, Width: 24.0, Height: 41.4, SafeZone: 0.12},
			"slot_2": {Label: "Top Right", Left: 55.0, Top: 13.8, Width: 24.0, Height: 41.4, SafeZone: 0.12},
			"slot_3": {Label: "Bottom Left", Left: 21.0, Top: 56.9, Width: 24.0, Height: 41.4, SafeZone: 0.12},
			"slot_4": {Label: "Bottom Right", Left: 55.0, Top: 56.9, Width: 24.0, Height: 41.4, SafeZone: 0.12},
		},
	},
	"KP6": {
		ModelCode:   "KP6",
		Rows:        2,
		Columns:     3,
		ShellWidth:  1000,
		ShellHeight: 580,
		Convention:  models.ConventionCorner,
		SlotSizeMM:  19,
		ShellImage:  "/static/shells/kp6.png",
		Slots: map[models.SlotID]models.SlotGeometry{
			"slot_1": {Label: "Top Left", Left: 12.4, Top: 15.5, Width: 19.2, Height: 33.1, SafeZone: 0.10},
			"slot_2": {Label: "Top Center", Left: 40.4, Top: 15.5, Width: 19.2, Height: 33.1, SafeZone: 0.10},
			"slot_3": {Label: "Top Right", Left: 68.4, Top: 15.5, Width: 19.2, Height: 33.1, SafeZone: 0.10},
			"slot_4": {Label: "Bottom Left", Left: 12.4, Top: 55.2, Width: 19.2, Height: 33.1, SafeZone: 0.10},
			"slot_5": {Label: "Bottom Center", Left: 40.4, Top: 55.2, Width: 19.2, Height: 33.1, SafeZone: 0.10},
			"slot_6": {Label: "Bottom Right", Left: 68.4, Top: 55.2, Width: 19.2, Height: 33.1, SafeZone: 0.10},
		},
	},
	"KP9": {
		ModelCode:   "KP9",
		Rows:        3,
		Columns:     3,
		ShellWidth:  1200,
		ShellHeight: 1200,
		Convention:  models.ConventionCenter,
		SlotSizeMM:  16,
		ShellImage:  "/static/shells/kp9.png",
		Slots: map[models.SlotID]models.SlotGeometry{
			"slot_1": {Label: "Row 1 Left", CenterX: 22.5, CenterY: 22.5, Radius: 9.6, SafeZone: 0.15},
			"slot_2": {Label: "Row 1 Center", CenterX: 50.0, CenterY: 22.5, Radius: 9.6, SafeZone: 0.15},
			"slot_3": {Label: "Row 1 Right", CenterX: 77.5, CenterY: 22.5, Radius: 9.6, SafeZone: 0.15},
			"slot_4": {Label: "Row 2 Left", CenterX: 22.5, CenterY: 50.0, Radius: 9.6, SafeZone: 0.15},
			"slot_5": {Label: "Row 2 Center", CenterX: 50.0, CenterY: 50.0, Radius: 9.6, SafeZone: 0.15},
			"slot_6": {Label: "Row 2 Right", CenterX: 77.5, CenterY: 50.0, Radius: 9.6, SafeZone: 0.15},
			"slot_7": {Label: "Row 3 Left", CenterX: 22.5, CenterY: 77.5, Radius: 9.6, SafeZone: 0.15},
			"slot_8": {Label: "Row 3 Center", CenterX: 50.0, CenterY: 77.5, Radius: 9.6, SafeZone: 0.15},
			"slot_9": {Label: "Row 3 Right", CenterX: 77.5, CenterY: 77.5, Radius: 9.6, SafeZone: 0.15},
		},
	},
}

// KnownModel reports whether modelCode has registered geometry. Hydration
// uses this for hard model checks; rendering uses GetGeometryForModel's soft
// fallback instead.
func KnownModel(modelCode string) bool {
	_, ok := registry[modelCode]
	return ok
}

// ModelCodes returns every registered model code. Order is not significant.
func ModelCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetGeometryForModel looks up a model's geometry by exact code. On a miss it
// returns the default model's geometry rather than failing, so renderers stay
// total even for unrecognized codes.
func GetGeometryForModel(modelCode string) *models.KeypadModelGeometry {
	if geom, ok := registry[modelCode]; ok {
		return geom
	}
	return registry[DefaultModelCode]
}

// GetSlotIDsForModel derives a model's slot set by enumerating its geometry
// map. The slot set is always derived from geometry, never hand-maintained,
// so the two cannot drift apart.
func GetSlotIDsForModel(modelCode string) []models.SlotID {
	geom := GetGeometryForModel(modelCode)
	tokens := make([]string, 0, len(geom.Slots))
	for id := range geom.Slots {
		tokens = append(tokens, string(id))
	}
	return models.SortSlotIDs(tokens)
}

// PixelBox converts a slot's percentage box to an absolute pixel center and
// size against the given render surface. Both authoring conventions reduce to
// the same output shape, keeping every downstream consumer convention-
// agnostic. surfaceW/surfaceH are the target surface's dimensions, which only
// coincide with the shell's intrinsic size when rendering at natural scale.
func PixelBox(slot models.SlotGeometry, convention models.CoordinateConvention, surfaceW, surfaceH float64) (cx, cy, w, h float64) {
	switch convention {
	case models.ConventionCenter:
		cx = slot.CenterX / 100 * surfaceW
		cy = slot.CenterY / 100 * surfaceH
		w = slot.Radius / 100 * surfaceW * 2
		h = w
	default:
		w = slot.Width / 100 * surfaceW
		h = slot.Height / 100 * surfaceH
		cx = slot.Left/100*surfaceW + w/2
		cy = slot.Top/100*surfaceH + h/2
	}
	return cx, cy, w, h
}
