package lineage

// Position is a presentation coordinate assigned by [Layout].
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutOptions configures [Layout].
type LayoutOptions struct {
	// Spacing is the horizontal distance between neighbors within a depth.
	Spacing float64
	// LevelHeight is the vertical distance between consecutive depths.
	LevelHeight float64
	// Invert places deeper ancestors at negative y instead of positive y.
	Invert bool
}

// DefaultLayoutOptions are the options used when [Layout] receives nil.
var DefaultLayoutOptions = LayoutOptions{
	Spacing:     2.5,
	LevelHeight: 2.0,
}

// Layout assigns every grouped id a 2-D coordinate.
//
// y is depth*LevelHeight (negated when Invert is set). Within a depth the ids
// are placed Spacing apart, in group order, centered on x = 0. Non-positive
// Spacing or LevelHeight fall back to the defaults.
func Layout(groups map[int][]ID, opts *LayoutOptions) map[ID]Position {
	o := DefaultLayoutOptions
	if opts != nil {
		o = *opts
	}
	if o.Spacing <= 0 {
		o.Spacing = DefaultLayoutOptions.Spacing
	}
	if o.LevelHeight <= 0 {
		o.LevelHeight = DefaultLayoutOptions.LevelHeight
	}
	sign := 1.0
	if o.Invert {
		sign = -1
	}

	positions := make(map[ID]Position)
	for _, depth := range Depths(groups) {
		ids := groups[depth]
		y := sign * float64(depth) * o.LevelHeight
		startX := -float64(len(ids)-1) * o.Spacing / 2
		for i, id := range ids {
			positions[id] = Position{X: startX + float64(i)*o.Spacing, Y: y}
		}
	}
	return positions
}
