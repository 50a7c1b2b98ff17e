package strata

// Section is a path-scoped view over an owning Root or Manager. It
// holds only its path and an owner reference; every operation
// delegates to the owner with the section path prefixed, so a Section
// has no storage or identity of its own.
type Section struct {
	owner sectionOwner
	path  string
	key   string
}

func newSection(owner sectionOwner, path string) *Section {
	return &Section{
		owner: owner,
		path:  path,
		key:   SectionKey(path),
	}
}

// Key returns the last segment of the section's path.
func (s *Section) Key() string {
	return s.key
}

// Path returns the full path of the section within the owner.
func (s *Section) Path() string {
	return s.path
}

// Value returns the value stored at the section's own path.
func (s *Section) Value() *string {
	return s.owner.Get(s.path)
}

// SetValue writes the value stored at the section's own path.
func (s *Section) SetValue(value *string) {
	s.owner.Set(s.path, value)
}

// Get returns the value for a key under this section.
func (s *Section) Get(key string) *string {
	return s.owner.Get(Combine(s.path, key))
}

// TryGet returns the value for a key under this section and whether
// it is present.
func (s *Section) TryGet(key string) (*string, bool) {
	return s.owner.TryGet(Combine(s.path, key))
}

// GetRequired returns the value for a key under this section, or a
// MissingKeyError carrying the full path.
func (s *Section) GetRequired(key string) (string, error) {
	return s.owner.GetRequired(Combine(s.path, key))
}

// Set writes a value for a key under this section.
func (s *Section) Set(key string, value *string) {
	s.owner.Set(Combine(s.path, key), value)
}

// GetSection returns the section for a key nested under this one,
// bound to the same owner.
func (s *Section) GetSection(key string) *Section {
	return s.owner.GetSection(Combine(s.path, key))
}

// Children returns the immediate child sections under this section's
// path.
func (s *Section) Children() []*Section {
	return s.owner.childSections(s.path)
}

// Ensure Section implements Configuration.
var _ Configuration = (*Section)(nil)
