package resources

import "github.com/spaghettifunk/ember/engine/renderer/metadata"

// ResourceContext is the narrow contract between the provisioning
// systems and whatever owns GPU memory. Implementations must treat a
// registered buffer as immutable and keep registrations alive for
// their own lifetime; eviction is not part of this contract.
type ResourceContext interface {
	// BufferHandle returns the cached handle registered for the mesh
	// identity and slot, if any.
	BufferHandle(id metadata.MeshID, slot metadata.BufferSlot) (metadata.BufferHandle, bool)
	// CreateBuffer allocates a device buffer of the given usage and
	// uploads data into it.
	CreateBuffer(usage metadata.BufferUsage, data []byte) (metadata.BufferHandle, error)
	// RegisterBuffer records the handle under (id, slot) for later
	// BufferHandle lookups.
	RegisterBuffer(id metadata.MeshID, slot metadata.BufferSlot, handle metadata.BufferHandle)
}
