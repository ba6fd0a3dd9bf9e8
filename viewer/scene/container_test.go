package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillon/prism/viewer/math"
)

func testContainer() (*Container, *Mesh) {
	alloc := NewIDAllocator()
	root := NewNode(alloc, "__root__", KindTransform)
	container := NewContainer(root)
	mesh := NewMesh(alloc, "mesh", math.Extents3D{
		Min: math.Vec3{X: -1, Y: -1, Z: -1},
		Max: math.Vec3{X: 1, Y: 1, Z: 1},
	})
	mesh.EdgeOverlay = true
	container.Meshes = append(container.Meshes, mesh)
	root.AddChild(&mesh.Node)
	return container, mesh
}

func TestDisposeDisablesEdgeOverlays(t *testing.T) {
	container, mesh := testContainer()

	container.Dispose()
	assert.True(t, container.Disposed())
	assert.False(t, mesh.EdgeOverlay)
	assert.Nil(t, container.Meshes)
	assert.Nil(t, container.Root)
}

func TestDisposeIsIdempotent(t *testing.T) {
	container, _ := testContainer()

	container.Dispose()
	container.Dispose()
	assert.True(t, container.Disposed())
	assert.Equal(t, 2, container.DisposeCalls())
}

func TestMeshByID(t *testing.T) {
	container, mesh := testContainer()
	assert.Same(t, mesh, container.MeshByID(mesh.ID))
	assert.Nil(t, container.MeshByID(99999))
}

func TestAddChildReparents(t *testing.T) {
	alloc := NewIDAllocator()
	a := NewNode(alloc, "a", KindTransform)
	b := NewNode(alloc, "b", KindTransform)
	child := NewNode(alloc, "child", KindMesh)

	a.AddChild(child)
	assert.Same(t, a, child.Parent)
	assert.Len(t, a.Children, 1)

	b.AddChild(child)
	assert.Same(t, b, child.Parent)
	assert.Empty(t, a.Children)
	assert.Same(t, b.Transform, child.Transform.Parent)
}

func TestCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, math.NewVec3Zero(), c.Target)
	assert.Equal(t, DefaultCameraRadius, c.Radius)

	c.SetRadius(0.0001)
	assert.Equal(t, MinCameraRadius, c.Radius)

	c.SetTarget(math.Vec3{X: 5})
	c.Zoom(2)
	c.Reset()
	assert.Equal(t, math.NewVec3Zero(), c.Target)
	assert.Equal(t, DefaultCameraRadius, c.Radius)
}

func TestCameraResetKeepsClipPlanes(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, DefaultNearClip, c.NearClip)
	assert.Equal(t, DefaultFarClip, c.FarClip)

	c.SetClipPlanes(0.5, 250)
	c.Reset()
	assert.Equal(t, float32(0.5), c.NearClip)
	assert.Equal(t, float32(250), c.FarClip)
}

func TestCameraOrbitClampsElevation(t *testing.T) {
	c := NewCamera()
	c.Orbit(0, 100)
	assert.LessOrEqual(t, c.Beta, math.Pi-0.05)
	c.Orbit(0, -100)
	assert.GreaterOrEqual(t, c.Beta, float32(0.05))
}

func TestAnimationGroupAdvance(t *testing.T) {
	g := &AnimationGroup{
		From: 0, To: 120, Loop: false,
		Channels: []*AnimationChannel{{FrameRate: 30}},
	}

	g.Play()
	g.Advance(1.0)
	assert.InDelta(t, 30.0, float64(g.CurrentFrame()), 1e-4)

	g.Advance(10.0)
	assert.Equal(t, float32(120), g.CurrentFrame())
	assert.True(t, g.AtEnd())

	g.Stop()
	assert.Equal(t, float32(0), g.CurrentFrame())
	assert.False(t, g.IsPlaying())
}
