/*
This is an example of application that uses the engine packages to
generate primitive meshes and provision GPU buffers for them.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/ember/engine/config"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/renderer/metadata"
	"github.com/spaghettifunk/ember/engine/resources"
	"github.com/spaghettifunk/ember/engine/systems"
)

var rendererConfig = []byte(`
application_name = "Ember Demo"
index_width = 16
default_layout = "standard"

[layouts.standard]
attributes = [
    { name = "Vertex_Position", format = "float32x3" },
    { name = "Vertex_Normal", format = "float32x3" },
    { name = "Vertex_Uv", format = "float32x2" },
]
`)

func main() {
	cfg, err := config.Parse(rendererConfig)
	if err != nil {
		panic(err)
	}

	context := resources.NewLocalContext()
	manager, err := systems.NewSystemManager(cfg, context)
	if err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		_ = manager.Shutdown()
		os.Exit(0)
	}()

	cube := manager.GeometrySystem.GenerateCube(1.0, 1.0, 1.0)
	quad := manager.GeometrySystem.GenerateQuad(2.0, 2.0)
	sphere := manager.GeometrySystem.GenerateSphere(0.5, 16, 8)

	renderables := []*metadata.Renderable{
		{MeshID: manager.MeshManager.Register("cube", cube)},
		{MeshID: manager.MeshManager.Register("quad", quad)},
		{MeshID: manager.MeshManager.Register("sphere", sphere)},
	}

	manager.TopologySystem.Specialize(renderables, nil)
	manager.MeshResourceSystem.ProvideAll(renderables)

	for _, renderable := range renderables {
		if renderable.Binding == nil {
			continue
		}
		core.LogInfo("mesh %s provisioned: topology=%s vertex=%s indexed=%t",
			renderable.MeshID, renderable.Topology,
			renderable.Binding.VertexBuffer, renderable.Binding.HasIndices)
	}

	// A second pass hits the handle cache; no new buffers are created.
	manager.MeshResourceSystem.ProvideAll(renderables)
	core.LogInfo("buffers created: %d", context.CreateCount())

	if err := manager.Shutdown(); err != nil {
		panic(err)
	}
}
