package viewer

import (
	"github.com/quillon/prism/viewer/core"
	"github.com/quillon/prism/viewer/math"
	"github.com/quillon/prism/viewer/scene"
)

// framingRadiusFactor converts a bounding-box diagonal into an orbit
// distance that leaves breathing room around the model.
const framingRadiusFactor float32 = 1.5

// environmentRadiusFactor sizes the ambient proxy from the same
// diagonal; larger models need a larger environment radius for a
// consistent ambient contribution.
const environmentRadiusFactor float32 = 2.0

// ComputeWorldBounds unions the world-space bounds of every mesh that
// is both visible and enabled. World matrices are recomputed on the
// way, since meshes may have just been re-parented. Returns an empty
// extents value when no mesh qualifies.
func ComputeWorldBounds(meshes []*scene.Mesh) math.Extents3D {
	bounds := math.NewExtentsEmpty()
	for _, mesh := range meshes {
		if mesh == nil || !mesh.Visible || !mesh.Enabled {
			continue
		}
		bounds = bounds.Union(mesh.WorldExtents())
	}
	return bounds
}

// FrameScene retargets the camera, seats the reference grid under the
// model and rebuilds the environment proxy, all sized from the union
// bounds of the usable meshes. The previous environment is disposed
// and a new one returned; the camera and grid are mutated in place.
//
// With no usable geometry the scene falls back to the canonical
// default pose. That is a valid state, not an error. The routine is a
// pure function of the mesh set, so invoking it twice in a row yields
// the same pose.
func FrameScene(camera *scene.Camera, grid *scene.Grid, env *scene.Environment, meshes []*scene.Mesh) *scene.Environment {
	if env != nil {
		env.Dispose()
	}

	bounds := ComputeWorldBounds(meshes)
	if bounds.IsEmpty() {
		camera.Reset()
		grid.OffsetY = 0
		return scene.NewEnvironment(scene.DefaultEnvironmentRadius)
	}

	diagonal := bounds.Diagonal()
	camera.SetTarget(bounds.Center())
	camera.SetRadius(diagonal * framingRadiusFactor)
	grid.OffsetY = bounds.Min.Y

	core.LogDebug("framed %d meshes, diagonal %.3f, radius %.3f", len(meshes), diagonal, camera.Radius)
	return scene.NewEnvironment(diagonal * environmentRadiusFactor)
}
