package math

func NewQuatIdentity() Quaternion {
	return Quaternion{W: 1}
}

func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

func (q Quaternion) Normalized() Quaternion {
	length := Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if length <= FloatEpsilon {
		return NewQuatIdentity()
	}
	inv := 1.0 / length
	return Quaternion{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}
