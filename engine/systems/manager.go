package systems

import (
	"github.com/spaghettifunk/ember/engine/assets"
	"github.com/spaghettifunk/ember/engine/assets/loaders"
	"github.com/spaghettifunk/ember/engine/config"
	"github.com/spaghettifunk/ember/engine/resources"
)

type SystemManager struct {
	MeshManager        *assets.MeshManager
	GeometrySystem     *GeometrySystem
	MeshResourceSystem *MeshResourceSystem
	TopologySystem     *TopologySystem
}

// NewSystemManager wires the provisioning systems against a resource
// context and a validated renderer configuration.
func NewSystemManager(cfg *config.RendererConfig, context resources.ResourceContext) (*SystemManager, error) {
	meshManager := assets.NewMeshManager()
	meshManager.RegisterLoader(".obj", &loaders.ObjLoader{})
	if cfg.AssetsDir != "" {
		if err := meshManager.WatchDirectory(cfg.AssetsDir); err != nil {
			return nil, err
		}
	}

	gs, err := NewGeometrySystem()
	if err != nil {
		return nil, err
	}

	layouts, err := cfg.VertexLayouts()
	if err != nil {
		return nil, err
	}
	mrs, err := NewMeshResourceSystem(&MeshResourceSystemConfig{
		Layouts:     layouts,
		LayoutName:  cfg.DefaultLayout,
		IndexFormat: cfg.IndexFormat(),
	}, meshManager, context)
	if err != nil {
		return nil, err
	}

	ts, err := NewTopologySystem(meshManager)
	if err != nil {
		return nil, err
	}

	return &SystemManager{
		MeshManager:        meshManager,
		GeometrySystem:     gs,
		MeshResourceSystem: mrs,
		TopologySystem:     ts,
	}, nil
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.MeshResourceSystem.Shutdown(); err != nil {
		return err
	}
	return sm.MeshManager.Shutdown()
}
