// Package config stores overlay placement (and any other client
// configuration) as text values addressed by group and key.
//
// # Backends
//
// A Backend holds raw strings. The available implementations are:
//   - FileBackend: a TOML document with one table per group (default)
//   - RedisBackend: one Redis hash per group, for sharing across machines
//   - MongoBackend: one document per value
//   - MemoryBackend: process memory, for tests
//   - NullBackend: remembers nothing
//
// ScopedBackend wraps any of them to keep several profiles apart.
//
// # Manager
//
// Manager is the typed front the overlay registry talks to. It encodes values
// with encoding.TextMarshaler and decodes them with encoding.TextUnmarshaler,
// so a Point is stored as "10:20", a Dimension as "120x40" and a Position as
// its enum name. Missing values, undecodable values and backend failures all
// read as "nothing stored".
//
// # Usage
//
//	settings, err := config.LoadSettings(path)
//	if err != nil {
//	    return err
//	}
//	settings.ApplyEnv()
//
//	backend, err := config.Open(ctx, settings)
//	if err != nil {
//	    return err
//	}
//	store := config.NewManager(backend, logger, settings.Timeout)
//	defer store.Close()
//
//	overlays := overlay.NewManager(store, logger)
package config
