package models

// CoordinateConvention selects how a slot's percentage box is expressed.
// Shell artwork for different hardware models was authored in different tools:
// some export top-left corner + size boxes, some export center + radius.
type CoordinateConvention string

const (
	// ConventionCorner boxes carry Left/Top/Width/Height percentages.
	ConventionCorner CoordinateConvention = "corner"
	// ConventionCenter boxes carry CenterX/CenterY/Radius percentages.
	ConventionCenter CoordinateConvention = "center"
)

// SlotGeometry describes where one slot sits on a shell image. All values are
// percentages of the shell's intrinsic pixel dimensions, so the box scales
// with whatever surface it is rendered onto. Which fields are meaningful
// depends on the model's coordinate convention.
type SlotGeometry struct {
	Label string

	// Corner convention fields.
	Left   float64
	Top    float64
	Width  float64
	Height float64

	// Center convention fields. Radius is a percentage of shell width.
	CenterX float64
	CenterY float64
	Radius  float64

	// SafeZone is how far inside the box rendered content may extend,
	// as a fraction of the box size in [0,1]. Used to inset glow rings.
	SafeZone float64
}

// KeypadModelGeometry is the full static geometry description for one
// hardware model. Instances are read-only after registration.
type KeypadModelGeometry struct {
	ModelCode   string
	Rows        int
	Columns     int
	ShellWidth  int // intrinsic shell image width in px
	ShellHeight int // intrinsic shell image height in px
	Convention  CoordinateConvention
	SlotSizeMM  float64 // physical slot size, used to filter compatible inserts
	ShellImage  string
	Slots       map[SlotID]SlotGeometry
}
