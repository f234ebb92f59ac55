package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/ember/engine/assets"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/renderer/metadata"
	"github.com/spaghettifunk/ember/engine/resources"
)

type MeshResourceSystemConfig struct {
	/** @brief All named vertex layouts known to the renderer. */
	Layouts map[string]*metadata.VertexLayout
	/** @brief The layout meshes are provisioned against. */
	LayoutName string
	/** @brief The width index buffers are packed at. */
	IndexFormat metadata.IndexFormat
}

// MeshResourceSystem provisions GPU buffers for meshes: on the first
// request for a mesh identity it packs the mesh against the configured
// vertex layout, uploads through the resource context and registers
// the handles; every later request reuses the cached handles. The
// packers never run twice for the same identity.
type MeshResourceSystem struct {
	layout      *metadata.VertexLayout
	indexFormat metadata.IndexFormat
	meshManager *assets.MeshManager
	context     resources.ResourceContext

	// Serializes check-then-create-then-register per mesh identity so
	// concurrent passes over entities sharing a mesh cannot
	// double-create buffers.
	provisioning sync.Map // metadata.MeshID -> *sync.Mutex
}

func NewMeshResourceSystem(config *MeshResourceSystemConfig, mm *assets.MeshManager, rc resources.ResourceContext) (*MeshResourceSystem, error) {
	if len(config.Layouts) == 0 {
		return nil, fmt.Errorf("func NewMeshResourceSystem - config.Layouts must not be empty")
	}
	layout, ok := config.Layouts[config.LayoutName]
	if !ok {
		return nil, fmt.Errorf("func NewMeshResourceSystem - unknown vertex layout %q", config.LayoutName)
	}
	return &MeshResourceSystem{
		layout:      layout,
		indexFormat: config.IndexFormat,
		meshManager: mm,
		context:     rc,
	}, nil
}

func (mrs *MeshResourceSystem) Shutdown() error {
	return nil
}

// Provide resolves the vertex/index buffer handles for the
// renderable's mesh, creating and registering them on first use, and
// attaches them under the conventional vertex binding. A failure
// leaves the resource context untouched: nothing is uploaded unless
// the whole pack succeeds.
func (mrs *MeshResourceSystem) Provide(renderable *metadata.Renderable) error {
	id := renderable.MeshID

	lock := mrs.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	vertexBuffer, cached := mrs.context.BufferHandle(id, metadata.BufferSlotVertex)
	indexBuffer := metadata.NilBufferHandle
	hasIndices := false

	if cached {
		indexBuffer, hasIndices = mrs.context.BufferHandle(id, metadata.BufferSlotIndex)
		core.MetricsCacheHit()
	} else {
		core.MetricsCacheMiss()

		mesh, err := mrs.meshManager.Get(id)
		if err != nil {
			return fmt.Errorf("mesh %s: %w", id, err)
		}

		vertexBytes, err := mesh.VertexBufferBytes(mrs.layout)
		if err != nil {
			core.MetricsPackFailure()
			return fmt.Errorf("mesh %s: %w", id, err)
		}
		indexBytes := mesh.IndexBufferBytes(mrs.indexFormat)

		vertexBuffer, err = mrs.context.CreateBuffer(metadata.BufferUsageVertex, vertexBytes)
		if err != nil {
			return fmt.Errorf("mesh %s: vertex buffer: %w", id, err)
		}
		core.MetricsBufferBuilt()

		if indexBytes != nil {
			indexBuffer, err = mrs.context.CreateBuffer(metadata.BufferUsageIndex, indexBytes)
			if err != nil {
				return fmt.Errorf("mesh %s: index buffer: %w", id, err)
			}
			core.MetricsBufferBuilt()
			hasIndices = true
		}

		mrs.context.RegisterBuffer(id, metadata.BufferSlotVertex, vertexBuffer)
		if hasIndices {
			mrs.context.RegisterBuffer(id, metadata.BufferSlotIndex, indexBuffer)
		}
	}

	renderable.Binding = &metadata.VertexBufferBinding{
		Name:         metadata.DefaultVertexBindingName,
		VertexBuffer: vertexBuffer,
		IndexBuffer:  indexBuffer,
		HasIndices:   hasIndices,
	}
	return nil
}

// ProvideAll runs one provisioning pass. Failures are local to an
// entity: they are logged and skipped, never aborting the pass.
func (mrs *MeshResourceSystem) ProvideAll(renderables []*metadata.Renderable) {
	for _, renderable := range renderables {
		if err := mrs.Provide(renderable); err != nil {
			core.LogError("mesh provisioning failed: %s", err.Error())
		}
	}
}

func (mrs *MeshResourceSystem) lockFor(id metadata.MeshID) *sync.Mutex {
	lock, _ := mrs.provisioning.LoadOrStore(id, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
