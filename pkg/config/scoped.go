package config

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/FunnySam/runelite/pkg/errors"
)

// ScopedBackend isolates one profile's configuration inside a shared
// backend by prefixing every group with "profile:<id>:".
//
// Example usage:
//
//	// Two accounts sharing one Redis without seeing each other's layout
//	main := NewScopedBackend(shared, mainProfileID)
//	alt := NewScopedBackend(shared, altProfileID)
type ScopedBackend struct {
	inner  Backend
	prefix string
}

// NewScopedBackend wraps inner so all groups live under profile.
// A nil inner falls back to a MemoryBackend.
func NewScopedBackend(inner Backend, profile string) *ScopedBackend {
	if inner == nil {
		inner = NewMemoryBackend()
	}
	return &ScopedBackend{inner: inner, prefix: "profile:" + profile + ":"}
}

// NewProfileID returns a fresh random profile identifier.
func NewProfileID() string {
	return uuid.NewString()
}

// ValidateProfileID checks that id is a UUID as produced by NewProfileID.
func ValidateProfileID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "invalid profile id %q", id)
	}
	return nil
}

func (b *ScopedBackend) Get(ctx context.Context, group, key string) (string, bool, error) {
	return b.inner.Get(ctx, b.prefix+group, key)
}

func (b *ScopedBackend) Set(ctx context.Context, group, key, value string) error {
	return b.inner.Set(ctx, b.prefix+group, key, value)
}

func (b *ScopedBackend) Delete(ctx context.Context, group, key string) error {
	return b.inner.Delete(ctx, b.prefix+group, key)
}

func (b *ScopedBackend) Keys(ctx context.Context, group string) ([]string, error) {
	return b.inner.Keys(ctx, b.prefix+group)
}

func (b *ScopedBackend) Close() error {
	return b.inner.Close()
}

var _ Backend = (*ScopedBackend)(nil)
