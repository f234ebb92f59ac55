package systems

import (
	"fmt"

	"github.com/spaghettifunk/ember/engine/assets"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/renderer/metadata"
)

// TopologySystem propagates a mesh's primitive topology into the
// render configuration of every entity whose mesh reference or
// configuration changed since the last pass. Dirtiness is the host
// scheduler's concern and arrives as a predicate; with an
// always-false predicate the pass is a no-op.
type TopologySystem struct {
	meshManager *assets.MeshManager
}

func NewTopologySystem(mm *assets.MeshManager) (*TopologySystem, error) {
	return &TopologySystem{meshManager: mm}, nil
}

// Specialize copies the mesh topology into each changed renderable.
// Re-running with nothing marked changed leaves every configuration
// untouched. A renderable referencing an unknown mesh is logged and
// skipped, consistent with provisioning failures.
func (ts *TopologySystem) Specialize(renderables []*metadata.Renderable, changed func(*metadata.Renderable) bool) {
	for _, renderable := range renderables {
		if changed != nil && !changed(renderable) {
			continue
		}
		mesh, err := ts.meshManager.Get(renderable.MeshID)
		if err != nil {
			core.LogError("topology specialization failed: %s", fmt.Errorf("mesh %s: %w", renderable.MeshID, err).Error())
			continue
		}
		renderable.Topology = mesh.Topology
	}
}
