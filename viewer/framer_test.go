package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillon/prism/viewer/math"
	"github.com/quillon/prism/viewer/scene"
)

func framerFixture() (*scene.Camera, *scene.Grid, *scene.Environment, *scene.IDAllocator) {
	return scene.NewCamera(), scene.NewGrid(), scene.NewEnvironment(0), scene.NewIDAllocator()
}

func TestFrameSceneCentersOnBounds(t *testing.T) {
	camera, grid, env, alloc := framerFixture()
	meshes := []*scene.Mesh{
		scene.NewMesh(alloc, "a", math.Extents3D{
			Min: math.Vec3{X: -2, Y: 1, Z: -2},
			Max: math.Vec3{X: 0, Y: 3, Z: 0},
		}),
		scene.NewMesh(alloc, "b", math.Extents3D{
			Min: math.Vec3{X: 0, Y: 1, Z: 0},
			Max: math.Vec3{X: 2, Y: 5, Z: 2},
		}),
	}

	newEnv := FrameScene(camera, grid, env, meshes)

	assert.Equal(t, math.Vec3{X: 0, Y: 3, Z: 0}, camera.Target)
	diagonal := math.Vec3{X: 4, Y: 4, Z: 4}.Length()
	assert.InDelta(t, float64(diagonal*framingRadiusFactor), float64(camera.Radius), 1e-5)
	assert.Equal(t, float32(1), grid.OffsetY)

	assert.True(t, env.Disposed())
	require.NotNil(t, newEnv)
	assert.InDelta(t, float64(diagonal*environmentRadiusFactor), float64(newEnv.Radius), 1e-5)
}

func TestFrameSceneIdempotent(t *testing.T) {
	camera, grid, env, alloc := framerFixture()
	meshes := []*scene.Mesh{
		scene.NewMesh(alloc, "a", unitExtents(math.Vec3{X: 3, Y: 1, Z: -2})),
	}

	env = FrameScene(camera, grid, env, meshes)
	target, radius := camera.Target, camera.Radius

	FrameScene(camera, grid, env, meshes)
	assert.Equal(t, target, camera.Target)
	assert.Equal(t, radius, camera.Radius)
}

func TestFrameSceneEmptyFallsBackToDefaultPose(t *testing.T) {
	camera, grid, env, _ := framerFixture()
	camera.SetTarget(math.Vec3{X: 9, Y: 9, Z: 9})
	camera.SetRadius(99)
	grid.OffsetY = 5

	newEnv := FrameScene(camera, grid, env, nil)

	assert.Equal(t, math.NewVec3Zero(), camera.Target)
	assert.Equal(t, scene.DefaultCameraRadius, camera.Radius)
	assert.Equal(t, float32(0), grid.OffsetY)
	assert.Equal(t, scene.DefaultEnvironmentRadius, newEnv.Radius)
}

func TestFrameSceneIgnoresHiddenAndDisabledMeshes(t *testing.T) {
	camera, grid, env, alloc := framerFixture()
	visible := scene.NewMesh(alloc, "visible", unitExtents(math.NewVec3Zero()))
	hidden := scene.NewMesh(alloc, "hidden", unitExtents(math.Vec3{X: 100}))
	hidden.Visible = false
	disabled := scene.NewMesh(alloc, "disabled", unitExtents(math.Vec3{Y: 100}))
	disabled.Enabled = false

	FrameScene(camera, grid, env, []*scene.Mesh{visible, hidden, disabled})

	// Hidden and disabled meshes must not skew the framing.
	assert.Equal(t, math.NewVec3Zero(), camera.Target)
}

func TestFrameSceneFloorsDegenerateGeometry(t *testing.T) {
	camera, grid, env, alloc := framerFixture()
	point := scene.NewMesh(alloc, "point", math.Extents3D{
		Min: math.Vec3{X: 1, Y: 2, Z: 3},
		Max: math.Vec3{X: 1, Y: 2, Z: 3},
	})

	FrameScene(camera, grid, env, []*scene.Mesh{point})

	assert.Equal(t, math.Vec3{X: 1, Y: 2, Z: 3}, camera.Target)
	assert.Equal(t, scene.MinCameraRadius, camera.Radius)
}

func TestFrameSceneUsesWorldTransforms(t *testing.T) {
	camera, grid, env, alloc := framerFixture()
	mesh := scene.NewMesh(alloc, "offset", unitExtents(math.NewVec3Zero()))
	mesh.Transform.SetPosition(math.Vec3{X: 10})

	FrameScene(camera, grid, env, []*scene.Mesh{mesh})

	assert.InDelta(t, 10.0, float64(camera.Target.X), 1e-5)
}
