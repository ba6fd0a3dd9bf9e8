package assets

import (
	"bytes"
	"context"
	"fmt"

	"github.com/qmuntal/gltf"

	"github.com/quillon/prism/viewer/core"
	"github.com/quillon/prism/viewer/math"
	"github.com/quillon/prism/viewer/scene"
)

// GLTFLoader loads .gltf and .glb documents through qmuntal/gltf and
// converts them into scene containers.
type GLTFLoader struct{}

func (l *GLTFLoader) Load(ctx context.Context, src Source, alloc *scene.IDAllocator) (*scene.Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc *gltf.Document
	var err error
	if src.IsEmbedded() {
		doc = new(gltf.Document)
		err = gltf.NewDecoder(bytes.NewReader(src.Data)).Decode(doc)
	} else {
		doc, err = gltf.Open(src.Identifier)
	}
	if err != nil {
		return nil, fmt.Errorf("glTF parse failed: %w", err)
	}

	return l.buildContainer(doc, alloc)
}

func (l *GLTFLoader) buildContainer(doc *gltf.Document, alloc *scene.IDAllocator) (*scene.Container, error) {
	root := scene.NewNode(alloc, InternalRootName, scene.KindTransform)
	container := scene.NewContainer(root)

	materials := make([]*scene.Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		materials[i] = l.convertMaterial(doc, gm, alloc)
	}
	container.Materials = materials

	meshExtents := make([]math.Extents3D, len(doc.Meshes))
	for i, gmesh := range doc.Meshes {
		meshExtents[i] = primitiveExtents(doc, gmesh)
	}

	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = int(*doc.Scene)
	}
	if sceneIdx >= len(doc.Scenes) {
		return nil, fmt.Errorf("glTF document has no usable scene")
	}

	for _, nodeIdx := range doc.Scenes[sceneIdx].Nodes {
		child, err := l.convertNode(doc, int(nodeIdx), alloc, container, materials, meshExtents)
		if err != nil {
			return nil, err
		}
		root.AddChild(child)
	}

	for _, ga := range doc.Animations {
		container.Groups = append(container.Groups, l.convertAnimation(doc, ga))
	}

	return container, nil
}

func (l *GLTFLoader) convertNode(doc *gltf.Document, idx int, alloc *scene.IDAllocator, container *scene.Container, materials []*scene.Material, meshExtents []math.Extents3D) (*scene.Node, error) {
	if idx < 0 || idx >= len(doc.Nodes) {
		return nil, fmt.Errorf("glTF node index %d out of range", idx)
	}
	gn := doc.Nodes[idx]

	var node *scene.Node
	if gn.Mesh != nil {
		meshIdx := int(*gn.Mesh)
		if meshIdx >= len(doc.Meshes) {
			return nil, fmt.Errorf("glTF mesh index %d out of range", meshIdx)
		}
		name := gn.Name
		if name == "" {
			name = doc.Meshes[meshIdx].Name
		}
		mesh := scene.NewMesh(alloc, name, meshExtents[meshIdx])
		mesh.Material = primitiveMaterial(doc, doc.Meshes[meshIdx], alloc, materials, container)
		container.Meshes = append(container.Meshes, mesh)
		node = &mesh.Node
	} else {
		node = scene.NewNode(alloc, gn.Name, scene.KindTransform)
	}

	applyTRS(node, gn)

	for _, childIdx := range gn.Children {
		child, err := l.convertNode(doc, int(childIdx), alloc, container, materials, meshExtents)
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}
	return node, nil
}

func applyTRS(node *scene.Node, gn *gltf.Node) {
	position := math.Vec3{
		X: float32(gn.Translation[0]),
		Y: float32(gn.Translation[1]),
		Z: float32(gn.Translation[2]),
	}
	rotation := math.Quaternion{
		X: float32(gn.Rotation[0]),
		Y: float32(gn.Rotation[1]),
		Z: float32(gn.Rotation[2]),
		W: float32(gn.Rotation[3]),
	}
	// An all-zero quaternion means the field was absent; so does an
	// all-zero scale. Fall back to identity in both cases.
	if rotation.X == 0 && rotation.Y == 0 && rotation.Z == 0 && rotation.W == 0 {
		rotation = math.NewQuatIdentity()
	}
	scl := math.Vec3{
		X: float32(gn.Scale[0]),
		Y: float32(gn.Scale[1]),
		Z: float32(gn.Scale[2]),
	}
	if scl.X == 0 && scl.Y == 0 && scl.Z == 0 {
		scl = math.NewVec3One()
	}
	node.Transform.SetPositionRotationScale(position, rotation, scl)
}

// primitiveMaterial resolves a glTF mesh's material: the material of
// its single primitive, or a composite material when primitives use
// several.
func primitiveMaterial(doc *gltf.Document, gmesh *gltf.Mesh, alloc *scene.IDAllocator, materials []*scene.Material, container *scene.Container) *scene.Material {
	var used []*scene.Material
	seen := make(map[uint32]bool)
	for _, prim := range gmesh.Primitives {
		if prim.Material == nil {
			continue
		}
		idx := int(*prim.Material)
		if idx < 0 || idx >= len(materials) {
			continue
		}
		m := materials[idx]
		if !seen[m.ID] {
			seen[m.ID] = true
			used = append(used, m)
		}
	}
	switch len(used) {
	case 0:
		return nil
	case 1:
		return used[0]
	default:
		multi := scene.NewMultiMaterial(alloc, gmesh.Name+".multi", used)
		container.Materials = append(container.Materials, multi)
		return multi
	}
}

func (l *GLTFLoader) convertMaterial(doc *gltf.Document, gm *gltf.Material, alloc *scene.IDAllocator) *scene.Material {
	m := scene.NewMaterial(alloc, gm.Name, scene.MaterialPBR)
	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			m.Alpha = float32(pbr.BaseColorFactor[3])
		}
		if gm.AlphaMode == gltf.AlphaBlend && pbr.BaseColorTexture != nil {
			m.AlphaFromTexture = textureHasAlpha(doc, int(pbr.BaseColorTexture.Index))
		}
	}
	return m
}

// textureHasAlpha decodes an embedded base-color texture and checks for
// translucent pixels. Failures only cost the alpha hint, never the load.
func textureHasAlpha(doc *gltf.Document, textureIdx int) bool {
	if textureIdx < 0 || textureIdx >= len(doc.Textures) {
		return false
	}
	tex := doc.Textures[textureIdx]
	if tex.Source == nil {
		return false
	}
	imgIdx := int(*tex.Source)
	if imgIdx >= len(doc.Images) {
		return false
	}
	img := doc.Images[imgIdx]
	if img.BufferView == nil {
		return false
	}
	bvIdx := int(*img.BufferView)
	if bvIdx >= len(doc.BufferViews) {
		return false
	}
	bv := doc.BufferViews[bvIdx]
	bufIdx := int(bv.Buffer)
	if bufIdx >= len(doc.Buffers) {
		return false
	}
	buf := doc.Buffers[bufIdx]
	offset := int(bv.ByteOffset)
	length := int(bv.ByteLength)
	if offset+length > len(buf.Data) {
		return false
	}
	decoded, err := DecodeTexture(buf.Data[offset:offset+length], MaxTextureDim)
	if err != nil {
		core.LogWarn("could not decode embedded texture: %v", err)
		return false
	}
	return HasTranslucentPixels(decoded)
}

func (l *GLTFLoader) convertAnimation(doc *gltf.Document, ga *gltf.Animation) *scene.AnimationGroup {
	group := &scene.AnimationGroup{
		Name: ga.Name,
		Loop: true,
	}

	var maxSeconds float64
	for _, ch := range ga.Channels {
		if ch.Sampler == nil {
			continue
		}
		samplerIdx := int(*ch.Sampler)
		if samplerIdx >= len(ga.Samplers) {
			continue
		}
		inputIdx := int(ga.Samplers[samplerIdx].Input)
		if inputIdx >= len(doc.Accessors) {
			continue
		}
		input := doc.Accessors[inputIdx]
		if len(input.Max) > 0 {
			if seconds := float64(input.Max[0]); seconds > maxSeconds {
				maxSeconds = seconds
			}
		}

		target := ""
		if ch.Target.Node != nil {
			nodeIdx := int(*ch.Target.Node)
			if nodeIdx < len(doc.Nodes) {
				target = doc.Nodes[nodeIdx].Name
			}
		}
		group.Channels = append(group.Channels, &scene.AnimationChannel{
			TargetName: target,
			FrameRate:  scene.DefaultFrameRate,
		})
	}

	group.To = float32(maxSeconds) * scene.DefaultFrameRate
	return group
}

// primitiveExtents unions the POSITION accessor bounds of every
// primitive in the mesh. Accessor min/max are mandatory for POSITION
// per the glTF spec; primitives without them are skipped.
func primitiveExtents(doc *gltf.Document, gmesh *gltf.Mesh) math.Extents3D {
	extents := math.NewExtentsEmpty()
	for _, prim := range gmesh.Primitives {
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		idx := int(posIdx)
		if idx < 0 || idx >= len(doc.Accessors) {
			continue
		}
		accessor := doc.Accessors[idx]
		if len(accessor.Min) < 3 || len(accessor.Max) < 3 {
			continue
		}
		extents = extents.ExpandPoint(math.Vec3{
			X: float32(accessor.Min[0]), Y: float32(accessor.Min[1]), Z: float32(accessor.Min[2]),
		})
		extents = extents.ExpandPoint(math.Vec3{
			X: float32(accessor.Max[0]), Y: float32(accessor.Max[1]), Z: float32(accessor.Max[2]),
		})
	}
	if extents.IsEmpty() {
		core.LogWarn("mesh '%s' has no position bounds, using unit extents", gmesh.Name)
		extents = extents.ExpandPoint(math.Vec3{X: -0.5, Y: -0.5, Z: -0.5})
		extents = extents.ExpandPoint(math.Vec3{X: 0.5, Y: 0.5, Z: 0.5})
	}
	return extents
}
