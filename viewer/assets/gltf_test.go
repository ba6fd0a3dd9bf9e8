package assets

import (
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertAnimationSkipsChannelWithoutSampler(t *testing.T) {
	doc := &gltf.Document{
		Accessors: []*gltf.Accessor{{Max: []float64{2.0}}},
		Nodes:     []*gltf.Node{{Name: "bone"}},
	}
	ga := &gltf.Animation{
		Name: "walk",
		Channels: []*gltf.Channel{
			{Target: gltf.ChannelTarget{Node: gltf.Index(0)}},
			{Sampler: gltf.Index(0), Target: gltf.ChannelTarget{Node: gltf.Index(0)}},
		},
		Samplers: []*gltf.AnimationSampler{{Input: 0}},
	}

	group := (&GLTFLoader{}).convertAnimation(doc, ga)

	require.Len(t, group.Channels, 1)
	assert.Equal(t, "bone", group.Channels[0].TargetName)
	assert.InDelta(t, 2.0, group.DurationSeconds(), 1e-6)
}

func TestTextureAlphaIgnoresMissingBufferView(t *testing.T) {
	doc := &gltf.Document{
		Textures: []*gltf.Texture{{Source: gltf.Index(0)}},
		Images:   []*gltf.Image{{BufferView: gltf.Index(5)}},
	}
	assert.False(t, textureHasAlpha(doc, 0))
}

func TestTextureAlphaIgnoresMissingBuffer(t *testing.T) {
	doc := &gltf.Document{
		Textures:    []*gltf.Texture{{Source: gltf.Index(0)}},
		Images:      []*gltf.Image{{BufferView: gltf.Index(0)}},
		BufferViews: []*gltf.BufferView{{Buffer: 3, ByteLength: 4}},
	}
	assert.False(t, textureHasAlpha(doc, 0))
}
