package testutil

import (
	"github.com/dit-jay93/VersionManager/internal/store"
	"github.com/dit-jay93/VersionManager/internal/vfm"
)

// NewTestStore creates a new in-memory version store for testing.
func NewTestStore() *store.MemoryStore {
	return store.NewMemoryStore()
}

// NewTestRegistry wires a Registry from the given catalog and store with a
// stub clock and sequential id generator.
func NewTestRegistry(catalog vfm.Catalog, vs vfm.VersionStore) *vfm.Registry {
	return vfm.NewRegistry(catalog, vs, vfm.NewXXH3Hasher(), vfm.NewNopLogger(), FixedClock(), NewStubIDGenerator())
}
