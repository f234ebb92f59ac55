package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/ember/engine/containers"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/renderer/metadata"
)

/** @brief Returned when a mesh identity is not present in the store. */
var ErrUnknownMesh = errors.New("unknown mesh identity")

// ReloadEvent records that a watched mesh file was loaded or reloaded.
type ReloadEvent struct {
	Name string
	ID   metadata.MeshID
}

const reloadQueueSize = 256

// MeshManager is the asset store for meshes: it owns the identity of
// every registered mesh and hands out immutable snapshots to the
// provisioning systems. Optionally it watches a directory and
// (re)loads mesh files through registered loaders.
type MeshManager struct {
	mu      sync.RWMutex
	meshes  map[metadata.MeshID]*metadata.Mesh
	names   map[string]metadata.MeshID
	loaders map[string]Loader

	reloads *containers.RingQueue[ReloadEvent]

	watcher  *fsnotify.Watcher
	done     chan struct{}
	isClosed bool
}

func NewMeshManager() *MeshManager {
	return &MeshManager{
		meshes:  make(map[metadata.MeshID]*metadata.Mesh),
		names:   make(map[string]metadata.MeshID),
		loaders: make(map[string]Loader),
		reloads: containers.NewRingQueue[ReloadEvent](reloadQueueSize),
		done:    make(chan struct{}),
	}
}

// RegisterLoader associates a loader with a file extension (".obj").
func (mm *MeshManager) RegisterLoader(extension string, loader Loader) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	mm.loaders[extension] = loader
}

// Register stores the mesh under a fresh identity. If the name is
// already taken the mesh replaces the previous one and keeps its
// identity, so cached GPU resources for other names are unaffected.
func (mm *MeshManager) Register(name string, mesh *metadata.Mesh) metadata.MeshID {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	if id, exists := mm.names[name]; exists {
		mm.meshes[id] = mesh
		return id
	}

	id := metadata.NewMeshID()
	mm.meshes[id] = mesh
	mm.names[name] = id
	return id
}

// Get resolves a mesh identity. The returned mesh must be treated as
// read-only for the duration of the caller's pass.
func (mm *MeshManager) Get(id metadata.MeshID) (*metadata.Mesh, error) {
	mm.mu.RLock()
	defer mm.mu.RUnlock()

	mesh, ok := mm.meshes[id]
	if !ok {
		return nil, ErrUnknownMesh
	}
	return mesh, nil
}

// GetByName resolves a registered name to its identity.
func (mm *MeshManager) GetByName(name string) (metadata.MeshID, bool) {
	mm.mu.RLock()
	defer mm.mu.RUnlock()

	id, ok := mm.names[name]
	return id, ok
}

// Remove drops a mesh from the store. GPU resources cached under its
// identity are owned by the resource context and are not touched here.
func (mm *MeshManager) Remove(id metadata.MeshID) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	delete(mm.meshes, id)
	for name, named := range mm.names {
		if named == id {
			delete(mm.names, name)
			break
		}
	}
}

// NextReload dequeues the oldest pending reload notification.
func (mm *MeshManager) NextReload() (ReloadEvent, bool) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	event, err := mm.reloads.Dequeue()
	if err != nil {
		return ReloadEvent{}, false
	}
	return event, true
}

// WatchDirectory starts watching the named directory tree, loading
// every file a loader is registered for and reloading on changes.
func (mm *MeshManager) WatchDirectory(dir string) error {
	if mm.isClosed {
		return errors.New("mesh manager already shut down")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	mm.watcher = watcher

	go mm.watch()

	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return mm.watcher.Add(path)
		}
		mm.loadFile(path)
		return nil
	})
}

// Shutdown stops the watcher goroutine, if one is running.
func (mm *MeshManager) Shutdown() error {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	if mm.isClosed {
		return nil
	}
	mm.isClosed = true
	close(mm.done)
	if mm.watcher != nil {
		return mm.watcher.Close()
	}
	return nil
}

func (mm *MeshManager) watch() {
	for {
		select {
		case event, ok := <-mm.watcher.Events:
			if !ok {
				return
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if event.Op&fsnotify.Create != 0 {
					if err := mm.watcher.Add(event.Name); err != nil {
						core.LogError("failed to watch %s: %s", event.Name, err.Error())
					}
				}
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				mm.loadFile(event.Name)
			}

		case err, ok := <-mm.watcher.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-mm.done:
			return
		}
	}
}

func (mm *MeshManager) loadFile(path string) {
	mm.mu.RLock()
	loader, ok := mm.loaders[filepath.Ext(path)]
	mm.mu.RUnlock()
	if !ok {
		return
	}

	mesh, err := loader.Load(path)
	if err != nil {
		core.LogError("failed to load mesh %s: %s", path, err.Error())
		return
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	id := mm.Register(name, mesh)
	core.LogDebug("loaded mesh '%s' (%d vertices)", name, mesh.VertexCount())

	mm.mu.Lock()
	if err := mm.reloads.Enqueue(ReloadEvent{Name: name, ID: id}); err != nil {
		// Queue full: the oldest unconsumed notification is dropped.
		mm.reloads.Dequeue()
		mm.reloads.Enqueue(ReloadEvent{Name: name, ID: id})
	}
	mm.mu.Unlock()
}
