package math

// Matrices are column-major: element (row r, column c) lives at Data[c*4+r].

func NewMat4Identity() Mat4 {
	var m Mat4
	m.Data[0] = 1
	m.Data[5] = 1
	m.Data[10] = 1
	m.Data[15] = 1
	return m
}

func NewMat4Translation(position Vec3) Mat4 {
	m := NewMat4Identity()
	m.Data[12] = position.X
	m.Data[13] = position.Y
	m.Data[14] = position.Z
	return m
}

func NewMat4Scale(scale Vec3) Mat4 {
	m := NewMat4Identity()
	m.Data[0] = scale.X
	m.Data[5] = scale.Y
	m.Data[10] = scale.Z
	return m
}

// NewMat4FromQuaternion builds a rotation matrix from a normalized
// quaternion.
func NewMat4FromQuaternion(q Quaternion) Mat4 {
	m := NewMat4Identity()

	xx := q.X * q.X
	yy := q.Y * q.Y
	zz := q.Z * q.Z
	xy := q.X * q.Y
	xz := q.X * q.Z
	yz := q.Y * q.Z
	wx := q.W * q.X
	wy := q.W * q.Y
	wz := q.W * q.Z

	m.Data[0] = 1 - 2*(yy+zz)
	m.Data[1] = 2 * (xy + wz)
	m.Data[2] = 2 * (xz - wy)

	m.Data[4] = 2 * (xy - wz)
	m.Data[5] = 1 - 2*(xx+zz)
	m.Data[6] = 2 * (yz + wx)

	m.Data[8] = 2 * (xz + wy)
	m.Data[9] = 2 * (yz - wx)
	m.Data[10] = 1 - 2*(xx+yy)

	return m
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m.Data[k*4+r] * o.Data[c*4+k]
			}
			out.Data[c*4+r] = sum
		}
	}
	return out
}

// TransformPoint applies the matrix to a point (w = 1).
func (m Mat4) TransformPoint(v Vec3) Vec3 {
	return Vec3{
		X: m.Data[0]*v.X + m.Data[4]*v.Y + m.Data[8]*v.Z + m.Data[12],
		Y: m.Data[1]*v.X + m.Data[5]*v.Y + m.Data[9]*v.Z + m.Data[13],
		Z: m.Data[2]*v.X + m.Data[6]*v.Y + m.Data[10]*v.Z + m.Data[14],
	}
}

// NewMat4LookAt builds a right-handed view matrix looking from eye
// towards target.
func NewMat4LookAt(eye, target, up Vec3) Mat4 {
	zAxis := eye.Sub(target).Normalized()
	xAxis := up.Cross(zAxis).Normalized()
	yAxis := zAxis.Cross(xAxis)

	var m Mat4
	m.Data[0] = xAxis.X
	m.Data[1] = yAxis.X
	m.Data[2] = zAxis.X
	m.Data[4] = xAxis.Y
	m.Data[5] = yAxis.Y
	m.Data[6] = zAxis.Y
	m.Data[8] = xAxis.Z
	m.Data[9] = yAxis.Z
	m.Data[10] = zAxis.Z
	m.Data[12] = -xAxis.Dot(eye)
	m.Data[13] = -yAxis.Dot(eye)
	m.Data[14] = -zAxis.Dot(eye)
	m.Data[15] = 1
	return m
}

// NewMat4Perspective builds a right-handed perspective projection.
func NewMat4Perspective(fovRadians, aspect, near, far float32) Mat4 {
	halfTan := Tan(fovRadians * 0.5)
	var m Mat4
	m.Data[0] = 1.0 / (aspect * halfTan)
	m.Data[5] = 1.0 / halfTan
	m.Data[10] = -(far + near) / (far - near)
	m.Data[11] = -1
	m.Data[14] = -(2.0 * far * near) / (far - near)
	return m
}
