package math

// NewExtentsEmpty returns extents with an inverted min/max pair so that
// any expanded point becomes the initial bound.
func NewExtentsEmpty() Extents3D {
	return Extents3D{
		Min: Vec3{Infinity, Infinity, Infinity},
		Max: Vec3{-Infinity, -Infinity, -Infinity},
	}
}

func (e Extents3D) IsEmpty() bool {
	return e.Min.X > e.Max.X || e.Min.Y > e.Max.Y || e.Min.Z > e.Max.Z
}

// ExpandPoint grows the extents to contain the given point.
func (e Extents3D) ExpandPoint(p Vec3) Extents3D {
	return Extents3D{
		Min: e.Min.ComponentMin(p),
		Max: e.Max.ComponentMax(p),
	}
}

// Union returns the component-wise min/max union of two extents.
func (e Extents3D) Union(o Extents3D) Extents3D {
	if e.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return e
	}
	return Extents3D{
		Min: e.Min.ComponentMin(o.Min),
		Max: e.Max.ComponentMax(o.Max),
	}
}

func (e Extents3D) Center() Vec3 {
	return e.Min.Add(e.Max).MulScalar(0.5)
}

// Diagonal returns the length of the min-to-max corner diagonal.
func (e Extents3D) Diagonal() float32 {
	if e.IsEmpty() {
		return 0
	}
	return e.Max.Sub(e.Min).Length()
}

// Corners returns the eight corner points of the box.
func (e Extents3D) Corners() [8]Vec3 {
	return [8]Vec3{
		{e.Min.X, e.Min.Y, e.Min.Z},
		{e.Max.X, e.Min.Y, e.Min.Z},
		{e.Min.X, e.Max.Y, e.Min.Z},
		{e.Max.X, e.Max.Y, e.Min.Z},
		{e.Min.X, e.Min.Y, e.Max.Z},
		{e.Max.X, e.Min.Y, e.Max.Z},
		{e.Min.X, e.Max.Y, e.Max.Z},
		{e.Max.X, e.Max.Y, e.Max.Z},
	}
}

// Transformed returns the axis-aligned extents of the box after applying
// the given matrix to all eight corners.
func (e Extents3D) Transformed(m Mat4) Extents3D {
	if e.IsEmpty() {
		return e
	}
	out := NewExtentsEmpty()
	for _, corner := range e.Corners() {
		out = out.ExpandPoint(m.TransformPoint(corner))
	}
	return out
}
