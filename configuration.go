package strata

// Configuration is keyed read/write access to a hierarchical,
// case-insensitive configuration view. Root, Manager, and Section all
// implement it; sections returned by GetSection delegate every
// operation back to the owning Root or Manager.
type Configuration interface {
	// Get returns the value for a key, collapsing absence and
	// explicit null into nil.
	Get(key string) *string

	// TryGet returns the value and whether any provider contains the
	// key, distinguishing absence from an explicit null.
	TryGet(key string) (*string, bool)

	// GetRequired returns the value for a key, or a MissingKeyError
	// naming the queried path when resolution yields no value.
	GetRequired(key string) (string, error)

	// Set writes a value for a key.
	Set(key string, value *string)

	// GetSection returns the section at the given key. It always
	// succeeds, including for paths that do not exist.
	GetSection(key string) *Section

	// Children returns the immediate child sections.
	Children() []*Section
}

// sectionOwner is the surface a Section needs from the Root or
// Manager it is bound to.
type sectionOwner interface {
	Configuration
	childSections(parent string) []*Section
}
