// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about overlay registration and configuration
// store traffic.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the overlay and config
// packages stay free of any metrics framework.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRegistryHooks(&myRegistryHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Registry().OnAdd(name, true)
//	observability.Store().OnGet(ctx, group, key, hit)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Registry Hooks
// =============================================================================

// RegistryHooks receives events from the overlay registry.
type RegistryHooks interface {
	// OnAdd records an add attempt. added is false for duplicates.
	OnAdd(name string, added bool)

	// OnRemove records a removal of count overlays (remove, removeIf, clear).
	OnRemove(op string, count int)

	// OnRebuild records a full layer rebuild with the resulting bucket sizes.
	OnRebuild(total int, layers map[string]int, duration time.Duration)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from configuration store operations.
type StoreHooks interface {
	// OnGet records a lookup. hit is false for absent or undecodable values.
	OnGet(ctx context.Context, group, key string, hit bool)

	// OnSet records a write.
	OnSet(ctx context.Context, group, key string, size int)

	// OnUnset records a deletion.
	OnUnset(ctx context.Context, group, key string)

	// OnError records a backend failure.
	OnError(ctx context.Context, op, group, key string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRegistryHooks is a no-op implementation of RegistryHooks.
type NoopRegistryHooks struct{}

func (NoopRegistryHooks) OnAdd(string, bool)                           {}
func (NoopRegistryHooks) OnRemove(string, int)                         {}
func (NoopRegistryHooks) OnRebuild(int, map[string]int, time.Duration) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnGet(context.Context, string, string, bool)            {}
func (NoopStoreHooks) OnSet(context.Context, string, string, int)             {}
func (NoopStoreHooks) OnUnset(context.Context, string, string)                {}
func (NoopStoreHooks) OnError(context.Context, string, string, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	registryHooks RegistryHooks = NoopRegistryHooks{}
	storeHooks    StoreHooks    = NoopStoreHooks{}
	hooksMu       sync.RWMutex
)

// SetRegistryHooks registers custom registry hooks.
// This should be called once at application startup before overlays are added.
func SetRegistryHooks(h RegistryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		registryHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Registry returns the registered registry hooks.
func Registry() RegistryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return registryHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	registryHooks = NoopRegistryHooks{}
	storeHooks = NoopStoreHooks{}
}
