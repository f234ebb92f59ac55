package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/ember/engine/config"
	"github.com/spaghettifunk/ember/engine/renderer/metadata"
	"github.com/spaghettifunk/ember/engine/resources"
)

func TestNewSystemManagerWiresSystems(t *testing.T) {
	cfg, err := config.Parse([]byte(`
default_layout = "standard"

[layouts.standard]
attributes = [
    { name = "Vertex_Position", format = "float32x3" },
    { name = "Vertex_Normal", format = "float32x3" },
    { name = "Vertex_Uv", format = "float32x2" },
]
`))
	require.NoError(t, err)

	manager, err := NewSystemManager(cfg, resources.NewLocalContext())
	require.NoError(t, err)
	defer manager.Shutdown()

	cube := manager.GeometrySystem.GenerateCube(1.0, 1.0, 1.0)
	renderable := &metadata.Renderable{MeshID: manager.MeshManager.Register("cube", cube)}

	manager.TopologySystem.Specialize([]*metadata.Renderable{renderable}, nil)
	require.NoError(t, manager.MeshResourceSystem.Provide(renderable))

	assert.Equal(t, metadata.PrimitiveTopologyTriangle, renderable.Topology)
	require.NotNil(t, renderable.Binding)
	assert.True(t, renderable.Binding.HasIndices)
}
