package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/ember/engine/assets/loaders"
	"github.com/spaghettifunk/ember/engine/math"
	"github.com/spaghettifunk/ember/engine/renderer/metadata"
)

func testMesh() *metadata.Mesh {
	mesh := metadata.NewMesh(metadata.PrimitiveTopologyTriangle)
	mesh.Attributes = []metadata.VertexAttribute{
		metadata.NewPositionAttribute([]math.Vec3{{X: 0, Y: 0, Z: 0}}),
	}
	return mesh
}

func TestRegisterAndGet(t *testing.T) {
	mm := NewMeshManager()
	defer mm.Shutdown()

	mesh := testMesh()
	id := mm.Register("tri", mesh)

	resolved, err := mm.Get(id)
	require.NoError(t, err)
	assert.Same(t, mesh, resolved)

	byName, ok := mm.GetByName("tri")
	require.True(t, ok)
	assert.Equal(t, id, byName)
}

func TestRegisterSameNameKeepsIdentity(t *testing.T) {
	mm := NewMeshManager()
	defer mm.Shutdown()

	first := testMesh()
	second := testMesh()

	id := mm.Register("tri", first)
	replacedID := mm.Register("tri", second)
	assert.Equal(t, id, replacedID)

	resolved, err := mm.Get(id)
	require.NoError(t, err)
	assert.Same(t, second, resolved)
}

func TestGetUnknownMesh(t *testing.T) {
	mm := NewMeshManager()
	defer mm.Shutdown()

	_, err := mm.Get(metadata.NewMeshID())
	assert.ErrorIs(t, err, ErrUnknownMesh)
}

func TestRemove(t *testing.T) {
	mm := NewMeshManager()
	defer mm.Shutdown()

	id := mm.Register("tri", testMesh())
	mm.Remove(id)

	_, err := mm.Get(id)
	assert.ErrorIs(t, err, ErrUnknownMesh)
	_, ok := mm.GetByName("tri")
	assert.False(t, ok)
}

func TestNextReloadEmpty(t *testing.T) {
	mm := NewMeshManager()
	defer mm.Shutdown()

	_, ok := mm.NextReload()
	assert.False(t, ok)
}

func TestWatchDirectoryLoadsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	source := "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 1 2 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri.obj"), []byte(source), 0o644))

	mm := NewMeshManager()
	defer mm.Shutdown()
	mm.RegisterLoader(".obj", &loaders.ObjLoader{})

	require.NoError(t, mm.WatchDirectory(dir))

	id, ok := mm.GetByName("tri")
	require.True(t, ok)
	mesh, err := mm.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 3, mesh.VertexCount())

	event, ok := mm.NextReload()
	require.True(t, ok)
	assert.Equal(t, "tri", event.Name)
	assert.Equal(t, id, event.ID)
}

func TestWatchDirectoryReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 1 1 0\nf 1 2 3\n"), 0o644))

	mm := NewMeshManager()
	defer mm.Shutdown()
	mm.RegisterLoader(".obj", &loaders.ObjLoader{})
	require.NoError(t, mm.WatchDirectory(dir))

	id, ok := mm.GetByName("tri")
	require.True(t, ok)
	mm.NextReload()

	// Two triangles after the rewrite.
	updated := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3\nf 1 3 4\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	deadline := time.After(2 * time.Second)
	for {
		if mesh, err := mm.Get(id); err == nil && mesh.VertexCount() == 6 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("mesh was not reloaded")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	mm := NewMeshManager()
	require.NoError(t, mm.Shutdown())
	require.NoError(t, mm.Shutdown())
}
