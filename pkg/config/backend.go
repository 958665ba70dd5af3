package config

import (
	"context"
	"errors"

	apperrors "github.com/FunnySam/runelite/pkg/errors"
)

// Backend stores raw configuration values addressed by group and key.
//
// Get returns "", false, nil when nothing is stored. Delete of a missing key
// is not an error. Implementations must be safe for concurrent use.
type Backend interface {
	Get(ctx context.Context, group, key string) (string, bool, error)
	Set(ctx context.Context, group, key, value string) error
	Delete(ctx context.Context, group, key string) error

	// Keys lists the keys stored in group, sorted.
	Keys(ctx context.Context, group string) ([]string, error)

	Close() error
}

// StorageKey is the flat "group.key" form used by backends that do not
// model groups natively.
func StorageKey(group, key string) string {
	return group + "." + key
}

// wrapBackendErr classifies a backend failure.
func wrapBackendErr(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.ErrCodeTimeout, err, format, args...)
	}
	return apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, err, format, args...)
}
