package assets

import "github.com/spaghettifunk/ember/engine/renderer/metadata"

// Loader turns a source file into a Mesh. Loaders are registered on
// the MeshManager per file extension.
type Loader interface {
	Load(path string) (*metadata.Mesh, error)
}
