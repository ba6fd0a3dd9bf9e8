package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceIsEmpty(t *testing.T) {
	assert.True(t, Source{}.IsEmpty())
	assert.False(t, Source{Identifier: "model.gltf"}.IsEmpty())
	assert.False(t, Source{Data: []byte("x")}.IsEmpty())
}

func TestSourceIsEmbedded(t *testing.T) {
	assert.False(t, Source{Identifier: "assets/model.glb"}.IsEmbedded())
	assert.True(t, Source{Data: []byte("x")}.IsEmbedded())
	assert.True(t, Source{Identifier: "data:base64,AAAA"}.IsEmbedded())
}

func TestSourceIsRemote(t *testing.T) {
	assert.True(t, Source{Identifier: "https://example.com/model.glb"}.IsRemote())
	assert.True(t, Source{Identifier: "file://host/model.glb"}.IsRemote())
	assert.False(t, Source{Identifier: "assets/model.glb"}.IsRemote())
	assert.False(t, Source{Data: []byte("x")}.IsRemote())
}

func TestSourceSplit(t *testing.T) {
	base, file := Source{Identifier: "assets/models/ship.obj"}.Split()
	assert.Equal(t, "assets/models/", base)
	assert.Equal(t, "ship.obj", file)

	base, file = Source{Identifier: "ship.obj"}.Split()
	assert.Equal(t, "", base)
	assert.Equal(t, "ship.obj", file)

	base, file = Source{Identifier: `C:\models\ship.obj`}.Split()
	assert.Equal(t, `C:\models\`, base)
	assert.Equal(t, "ship.obj", file)

	base, file = Source{Identifier: "pasted", Data: []byte("x")}.Split()
	assert.Equal(t, "", base)
	assert.Equal(t, "pasted", file)
}

func TestSourceFormat(t *testing.T) {
	assert.Equal(t, "gltf", Source{Identifier: "a/b/model.GLTF"}.Format())
	assert.Equal(t, "obj", Source{Identifier: "model.gltf", FormatHint: ".OBJ"}.Format())
	assert.Equal(t, "glb", Source{Data: []byte("x"), FormatHint: "glb"}.Format())
	assert.Equal(t, "", Source{Identifier: "noextension"}.Format())
}

func TestRegistryResolve(t *testing.T) {
	r := DefaultRegistry()

	for _, format := range []string{"gltf", "glb", "obj"} {
		loader, err := r.Resolve(Source{Identifier: "model." + format})
		require.NoError(t, err)
		require.NotNil(t, loader)
	}

	_, err := r.Resolve(Source{Identifier: "model.fbx"})
	assert.ErrorContains(t, err, "unsupported model format")

	_, err = r.Resolve(Source{Identifier: "model"})
	assert.ErrorContains(t, err, "no extension")
}

func TestSiblingDependentFormat(t *testing.T) {
	assert.True(t, SiblingDependentFormat("obj"))
	assert.False(t, SiblingDependentFormat("gltf"))
	assert.False(t, SiblingDependentFormat("glb"))
}
