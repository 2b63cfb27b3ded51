package kv

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBroken = errors.New("storage disabled")

// flakyBackend is an in-memory backend whose operations can be made to fail.
type flakyBackend struct {
	data      map[string]string
	failSet   bool
	failGet   bool
	failProbe bool
}

func newFlaky() *flakyBackend {
	return &flakyBackend{data: make(map[string]string)}
}

func (f *flakyBackend) Set(key, value string) error {
	if f.failSet || f.failProbe {
		return errBroken
	}
	f.data[key] = value
	return nil
}

func (f *flakyBackend) Get(key string) (string, bool, error) {
	if f.failGet {
		return "", false, errBroken
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *flakyBackend) Delete(key string) error {
	delete(f.data, key)
	return nil
}

func TestProbeLeavesNoSentinel(t *testing.T) {
	b := newFlaky()
	s := New(b)

	assert.True(t, s.Durable())
	assert.Empty(t, b.data)
}

func TestProbeFailureFallsBackToMemory(t *testing.T) {
	b := newFlaky()
	b.failProbe = true
	s := New(b)
	b.failProbe = false

	require.False(t, s.Durable())
	s.Set("manni-dev-theme", "dark")

	v, ok := s.Get("manni-dev-theme")
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
	assert.Empty(t, b.data, "memory store must not write through")
}

func TestGetAfterSet(t *testing.T) {
	tests := []struct {
		name    string
		backend func() Backend
		degrade func(b Backend)
	}{
		{"durable", func() Backend { return newFlaky() }, func(Backend) {}},
		{"no backend", func() Backend { return nil }, func(Backend) {}},
		{"set fails later", func() Backend { return newFlaky() }, func(b Backend) { b.(*flakyBackend).failSet = true }},
		{"get fails later", func() Backend { return newFlaky() }, func(b Backend) { b.(*flakyBackend).failGet = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.backend()
			s := New(b)
			tt.degrade(b)

			for _, v := range []string{"true", "false", "dark", "light"} {
				s.Set("k", v)
				got, ok := s.Get("k")
				require.True(t, ok)
				assert.Equal(t, v, got)
			}
		})
	}
}

func TestFailedWriteShadowsStaleDurableValue(t *testing.T) {
	b := newFlaky()
	s := New(b)

	s.Set("manni-dev-fkeys-enabled", "true")
	b.failSet = true
	s.Set("manni-dev-fkeys-enabled", "false")

	v, _ := s.Get("manni-dev-fkeys-enabled")
	assert.Equal(t, "false", v)
	assert.Equal(t, "true", b.data["manni-dev-fkeys-enabled"])
}

func TestGetMissing(t *testing.T) {
	s := New(newFlaky())
	_, ok := s.Get("nope")
	assert.False(t, ok)

	_, ok = Memory().Get("nope")
	assert.False(t, ok)
}

func TestSQLiteBackendPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")

	s, backend := Open(path)
	require.NotNil(t, backend)
	require.True(t, s.Durable())
	s.Set("manni-dev-theme", "light")
	s.Set("manni-dev-theme", "dark")
	require.NoError(t, backend.Close())

	s, backend = Open(path)
	require.NotNil(t, backend)
	defer backend.Close()

	v, ok := s.Get("manni-dev-theme")
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestOpenUnusablePathFallsBack(t *testing.T) {
	dir := t.TempDir()
	// A directory where the database file should be.
	s, backend := Open(dir)
	if backend != nil {
		defer backend.Close()
	}

	s.Set("k", "v")
	v, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
