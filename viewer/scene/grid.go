package scene

// GridName identifies the reference grid in helper-node filtering and
// excludes it from material restyling.
const GridName = "prism.grid"

// Grid is the ground/reference-grid primitive. It is created once per
// session and mutated in place: framing moves OffsetY so the grid sits
// exactly under the model.
type Grid struct {
	Name    string
	Size    float32
	OffsetY float32
	Visible bool
}

func NewGrid() *Grid {
	return &Grid{
		Name:    GridName,
		Size:    20,
		Visible: true,
	}
}
