package config

import (
	"context"
	"encoding"
	"time"

	"github.com/charmbracelet/log"

	"github.com/FunnySam/runelite/pkg/observability"
)

// DefaultTimeout bounds a single backend call made through Manager.
const DefaultTimeout = 2 * time.Second

// Manager is the typed front of a Backend. Values are stored in their text
// form (encoding.TextMarshaler) and decoded on the way out.
//
// The Get/Set/Unset methods have no error result: a backend failure is
// logged and a lookup reports it as "nothing stored", the same as a value
// that no longer decodes. Callers fall back to defaults either way.
type Manager struct {
	backend Backend
	logger  *log.Logger
	timeout time.Duration
}

// NewManager creates a Manager over backend. A nil logger falls back to
// log.Default() and a non-positive timeout to DefaultTimeout.
func NewManager(backend Backend, logger *log.Logger, timeout time.Duration) *Manager {
	if backend == nil {
		backend = NewNullBackend()
	}
	if logger == nil {
		logger = log.Default()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{backend: backend, logger: logger, timeout: timeout}
}

// Backend returns the underlying backend.
func (m *Manager) Backend() Backend {
	return m.backend
}

// GetConfiguration decodes the value stored under group and key into v.
// It reports false if nothing is stored, the backend failed, or the stored
// text does not decode.
func (m *Manager) GetConfiguration(group, key string, v encoding.TextUnmarshaler) bool {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	raw, ok, err := m.backend.Get(ctx, group, key)
	if err != nil {
		m.logger.Warn("config lookup failed", "group", group, "key", key, "err", err)
		observability.Store().OnError(ctx, "get", group, key, err)
		return false
	}
	if !ok {
		observability.Store().OnGet(ctx, group, key, false)
		return false
	}
	if err := v.UnmarshalText([]byte(raw)); err != nil {
		m.logger.Debug("ignoring undecodable config value", "group", group, "key", key, "value", raw, "err", err)
		observability.Store().OnGet(ctx, group, key, false)
		return false
	}
	observability.Store().OnGet(ctx, group, key, true)
	return true
}

// SetConfiguration stores v under group and key, replacing any prior value.
func (m *Manager) SetConfiguration(group, key string, v encoding.TextMarshaler) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	text, err := v.MarshalText()
	if err != nil {
		m.logger.Warn("cannot encode config value", "group", group, "key", key, "err", err)
		observability.Store().OnError(ctx, "encode", group, key, err)
		return
	}
	if err := m.backend.Set(ctx, group, key, string(text)); err != nil {
		m.logger.Warn("config write failed", "group", group, "key", key, "err", err)
		observability.Store().OnError(ctx, "set", group, key, err)
		return
	}
	observability.Store().OnSet(ctx, group, key, len(text))
}

// UnsetConfiguration deletes whatever is stored under group and key.
func (m *Manager) UnsetConfiguration(group, key string) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	if err := m.backend.Delete(ctx, group, key); err != nil {
		m.logger.Warn("config delete failed", "group", group, "key", key, "err", err)
		observability.Store().OnError(ctx, "unset", group, key, err)
		return
	}
	observability.Store().OnUnset(ctx, group, key)
}

// GetString returns the raw stored text, surfacing backend errors.
func (m *Manager) GetString(ctx context.Context, group, key string) (string, bool, error) {
	return m.backend.Get(ctx, group, key)
}

// Keys lists the keys stored in group.
func (m *Manager) Keys(ctx context.Context, group string) ([]string, error) {
	return m.backend.Keys(ctx, group)
}

// Close closes the backend.
func (m *Manager) Close() error {
	return m.backend.Close()
}
