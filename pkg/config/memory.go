package config

import (
	"context"
	"slices"
	"sync"
)

// MemoryBackend keeps values in process memory. Useful for tests and for
// sessions that should not leave anything behind.
type MemoryBackend struct {
	mu     sync.RWMutex
	groups map[string]map[string]string
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{groups: make(map[string]map[string]string)}
}

func (b *MemoryBackend) Get(ctx context.Context, group, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.groups[group][key]
	return v, ok, nil
}

func (b *MemoryBackend) Set(ctx context.Context, group, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	g, ok := b.groups[group]
	if !ok {
		g = make(map[string]string)
		b.groups[group] = g
	}
	g[key] = value
	return nil
}

func (b *MemoryBackend) Delete(ctx context.Context, group, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if g, ok := b.groups[group]; ok {
		delete(g, key)
		if len(g) == 0 {
			delete(b.groups, group)
		}
	}
	return nil
}

func (b *MemoryBackend) Keys(ctx context.Context, group string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.groups[group]))
	for k := range b.groups[group] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (b *MemoryBackend) Close() error { return nil }

var _ Backend = (*MemoryBackend)(nil)
