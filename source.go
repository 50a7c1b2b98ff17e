package strata

// Source builds the Provider for one configuration source. Build is
// invoked once per registration; the returned provider is loaded by
// the owning Root or Manager.
type Source interface {
	Build() Provider
}
