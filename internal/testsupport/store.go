package testsupport

import (
	"testing"

	"curator/internal/config"
	"curator/internal/store"
)

// MustOpenStore opens a store for the given config and registers cleanup.
func MustOpenStore(t *testing.T, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return st
}
