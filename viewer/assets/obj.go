package assets

import (
	"context"
	"fmt"

	"github.com/udhos/gwob"

	"github.com/quillon/prism/viewer/core"
	"github.com/quillon/prism/viewer/math"
	"github.com/quillon/prism/viewer/scene"
)

// OBJLoader loads Wavefront OBJ models through gwob. OBJ material
// definitions live in a sibling .mtl file, which is only resolvable for
// path-addressable sources.
type OBJLoader struct{}

func (l *OBJLoader) Load(ctx context.Context, src Source, alloc *scene.IDAllocator) (*scene.Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options := &gwob.ObjParserOptions{
		LogStats: false,
		Logger:   func(msg string) { core.LogDebug("obj parser: %s", msg) },
	}

	var obj *gwob.Obj
	var err error
	if src.IsEmbedded() {
		obj, err = gwob.NewObjFromBuf("embedded.obj", src.Data, options)
	} else {
		obj, err = gwob.NewObjFromFile(src.Identifier, options)
	}
	if err != nil {
		return nil, fmt.Errorf("OBJ parse failed: %w", err)
	}

	return l.buildContainer(obj, src, alloc)
}

func (l *OBJLoader) buildContainer(obj *gwob.Obj, src Source, alloc *scene.IDAllocator) (*scene.Container, error) {
	root := scene.NewNode(alloc, InternalRootName, scene.KindTransform)
	container := scene.NewContainer(root)

	mtl := l.materialLib(obj, src)
	extents := objExtents(obj)

	materials := make(map[string]*scene.Material)
	for _, group := range obj.Groups {
		mesh := scene.NewMesh(alloc, group.Name, extents)
		if group.Usemtl != "" {
			m, ok := materials[group.Usemtl]
			if !ok {
				m = scene.NewMaterial(alloc, group.Usemtl, scene.MaterialStandard)
				if mtl != nil {
					if def, found := mtl.Lib[group.Usemtl]; found {
						m.Alpha = float32(def.D)
					}
				}
				materials[group.Usemtl] = m
				container.Materials = append(container.Materials, m)
			}
			mesh.Material = m
		}
		container.Meshes = append(container.Meshes, mesh)
		root.AddChild(&mesh.Node)
	}

	return container, nil
}

// materialLib resolves the sibling .mtl library named by the OBJ file.
// Missing or unreadable libraries degrade to default materials.
func (l *OBJLoader) materialLib(obj *gwob.Obj, src Source) *gwob.MaterialLib {
	if obj.Mtllib == "" || src.IsEmbedded() {
		return nil
	}
	basePath, _ := src.Split()
	lib, err := gwob.ReadMaterialLibFromFile(basePath+obj.Mtllib, nil)
	if err != nil {
		core.LogWarn("material library %q not loaded: %v", obj.Mtllib, err)
		return nil
	}
	return &lib
}

// objExtents scans the interleaved vertex buffer for position bounds.
// gwob strides are in bytes; the coord buffer holds float32s.
func objExtents(obj *gwob.Obj) math.Extents3D {
	out := math.NewExtentsEmpty()
	if obj.StrideSize <= 0 {
		return out
	}
	strideFloats := obj.StrideSize / 4
	offset := obj.StrideOffsetPosition / 4
	for i := offset; i+2 < len(obj.Coord); i += strideFloats {
		out = out.ExpandPoint(math.Vec3{
			X: obj.Coord[i],
			Y: obj.Coord[i+1],
			Z: obj.Coord[i+2],
		})
	}
	return out
}
