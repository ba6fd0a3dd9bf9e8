package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

// Quaternion represents a rotational orientation.
type Quaternion struct {
	X, Y, Z, W float32
}

// Mat4 is a 4x4 column-major matrix, typically used to represent
// object transformations.
type Mat4 struct {
	Data [16]float32
}

// Extents3D represents the world-space extents of a 3D object as a
// component-wise min/max corner pair.
type Extents3D struct {
	Min Vec3
	Max Vec3
}

// Transform represents the position, rotation and scale of an object in
// the world. Transforms can have a parent whose own transform is then
// taken into account. Mutate through the setters so the local matrix is
// regenerated when needed.
type Transform struct {
	Position Vec3
	Rotation Quaternion
	Scale    Vec3

	isDirty bool
	local   Mat4
	Parent  *Transform
}
