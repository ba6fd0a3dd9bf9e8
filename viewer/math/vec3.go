package math

func NewVec3Zero() Vec3 {
	return Vec3{}
}

func NewVec3One() Vec3 {
	return Vec3{X: 1, Y: 1, Z: 1}
}

func NewVec3Up() Vec3 {
	return Vec3{Y: 1}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

func (v Vec3) MulScalar(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Length() float32 {
	return Sqrt(v.LengthSquared())
}

func (v Vec3) Normalized() Vec3 {
	length := v.Length()
	if length <= FloatEpsilon {
		return Vec3{}
	}
	return v.MulScalar(1.0 / length)
}

func (v Vec3) Distance(o Vec3) float32 {
	return v.Sub(o).Length()
}

// Compare returns true if all elements of v are within tolerance of o.
func (v Vec3) Compare(o Vec3, tolerance float32) bool {
	return Abs(v.X-o.X) <= tolerance &&
		Abs(v.Y-o.Y) <= tolerance &&
		Abs(v.Z-o.Z) <= tolerance
}

// ComponentMin returns the component-wise minimum of v and o.
func (v Vec3) ComponentMin(o Vec3) Vec3 {
	return Vec3{Min(v.X, o.X), Min(v.Y, o.Y), Min(v.Z, o.Z)}
}

// ComponentMax returns the component-wise maximum of v and o.
func (v Vec3) ComponentMax(o Vec3) Vec3 {
	return Vec3{Max(v.X, o.X), Max(v.Y, o.Y), Max(v.Z, o.Z)}
}

func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return v.Add(o.Sub(v).MulScalar(t))
}
