package intel

// Descriptor is the static metadata describing a plugin's identity,
// applicability and ordering. Immutable once the discovery cycle freezes.
type Descriptor struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	EntityTypes []string `json:"entityTypes,omitempty"` // empty = applies to all
	Weight      int      `json:"weight"`
	Provider    string   `json:"provider"`
}

// AppliesTo implements the default applicability rule: an empty entity-type
// set matches everything, otherwise membership decides.
func (d Descriptor) AppliesTo(entityType string) bool {
	if len(d.EntityTypes) == 0 {
		return true
	}
	for _, t := range d.EntityTypes {
		if t == entityType {
			return true
		}
	}
	return false
}

// DescriptorAlterer rewrites the descriptor set before it is frozen for a
// discovery cycle. Hooks may add, remove, or mutate any descriptor.
type DescriptorAlterer func(descriptors map[string]Descriptor)
