package math

func TransformCreate() *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(NewVec3Zero(), NewQuatIdentity(), NewVec3One())
	t.local = NewMat4Identity()
	return t
}

func TransformFromPosition(position Vec3) *Transform {
	t := TransformCreate()
	t.SetPosition(position)
	return t
}

func (t *Transform) SetPosition(position Vec3) {
	t.Position = position
	t.isDirty = true
}

func (t *Transform) Translate(translation Vec3) {
	t.Position = t.Position.Add(translation)
	t.isDirty = true
}

func (t *Transform) SetRotation(rotation Quaternion) {
	t.Rotation = rotation
	t.isDirty = true
}

func (t *Transform) SetScale(scale Vec3) {
	t.Scale = scale
	t.isDirty = true
}

func (t *Transform) SetPositionRotationScale(position Vec3, rotation Quaternion, scale Vec3) {
	t.Position = position
	t.Rotation = rotation
	t.Scale = scale
	t.isDirty = true
}

// Local returns the local transformation matrix, regenerating it if any
// of position, rotation or scale changed since the last call.
func (t *Transform) LocalMatrix() Mat4 {
	if t.isDirty {
		translation := NewMat4Translation(t.Position)
		rotation := NewMat4FromQuaternion(t.Rotation.Normalized())
		scale := NewMat4Scale(t.Scale)
		t.local = translation.Mul(rotation).Mul(scale)
		t.isDirty = false
	}
	return t.local
}

// WorldMatrix walks the parent chain and composes the full world
// transformation. Parents are recomputed as needed, so this is safe to
// call right after a re-parenting.
func (t *Transform) WorldMatrix() Mat4 {
	local := t.LocalMatrix()
	if t.Parent == nil {
		return local
	}
	return t.Parent.WorldMatrix().Mul(local)
}
