package assets

import (
	"context"
	"fmt"

	"github.com/quillon/prism/viewer/scene"
)

// InternalRootName is the name given to the wrapper node a loader puts
// above the model's own roots. Hierarchy extraction treats it as an
// internal helper.
const InternalRootName = "__root__"

// Loader produces a scene container from a source. Implementations are
// black boxes to the session: they run to completion or failure and are
// never cancelled mid-flight; superseded results are discarded by the
// caller instead.
type Loader interface {
	Load(ctx context.Context, src Source, alloc *scene.IDAllocator) (*scene.Container, error)
}

// Registry maps format hints to loaders.
type Registry struct {
	loaders map[string]Loader
}

func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]Loader)}
}

// DefaultRegistry returns a registry with the stock loaders registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("gltf", &GLTFLoader{})
	r.Register("glb", &GLTFLoader{})
	r.Register("obj", &OBJLoader{})
	return r
}

func (r *Registry) Register(format string, loader Loader) {
	r.loaders[format] = loader
}

// Resolve finds the loader for a source's effective format.
func (r *Registry) Resolve(src Source) (Loader, error) {
	format := src.Format()
	if format == "" {
		return nil, fmt.Errorf("cannot determine format of %q: no extension and no format hint", src.Identifier)
	}
	loader, ok := r.loaders[format]
	if !ok {
		return nil, fmt.Errorf("unsupported model format %q", format)
	}
	return loader, nil
}

// SiblingDependentFormats lists formats known to depend on companion
// resource files next to the model (OBJ needs its .mtl material
// library). Used to augment failure messages for embedded payloads.
func SiblingDependentFormat(format string) bool {
	return format == "obj"
}
