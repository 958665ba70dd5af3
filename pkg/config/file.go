package config

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"

	apperrors "github.com/FunnySam/runelite/pkg/errors"
)

// FileBackend stores configuration in a TOML document with one table per
// group:
//
//	[runelite]
//	XpTracker_preferredLocation = "10:20"
//	XpTracker_preferredSize = "120x40"
//
// The whole document is held in memory and rewritten atomically (temp file
// plus rename) after every change.
type FileBackend struct {
	mu     sync.RWMutex
	path   string
	groups map[string]map[string]string
}

// NewFileBackend opens the document at path, creating its directory if needed.
// A missing file is an empty store; a file that is not a table of string
// tables is rejected.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, DefaultStoreFile)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	b := &FileBackend{path: path, groups: make(map[string]map[string]string)}
	if _, err := toml.DecodeFile(path, &b.groups); err != nil && !os.IsNotExist(err) {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return b, nil
}

func (b *FileBackend) Get(ctx context.Context, group, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.groups[group][key]
	return v, ok, nil
}

// Set stores value and rewrites the document. If the write fails the
// in-memory state is left as it was.
func (b *FileBackend) Set(ctx context.Context, group, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	g, hadGroup := b.groups[group]
	old, hadKey := g[key]
	if hadKey && old == value {
		return nil
	}
	if !hadGroup {
		g = make(map[string]string)
		b.groups[group] = g
	}
	g[key] = value

	if err := b.flush(); err != nil {
		switch {
		case !hadGroup:
			delete(b.groups, group)
		case hadKey:
			g[key] = old
		default:
			delete(g, key)
		}
		return err
	}
	return nil
}

// Delete removes key and rewrites the document. If the write fails the key
// is kept.
func (b *FileBackend) Delete(ctx context.Context, group, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	g, ok := b.groups[group]
	if !ok {
		return nil
	}
	old, exists := g[key]
	if !exists {
		return nil
	}
	delete(g, key)
	if len(g) == 0 {
		delete(b.groups, group)
	}

	if err := b.flush(); err != nil {
		g[key] = old
		b.groups[group] = g
		return err
	}
	return nil
}

func (b *FileBackend) Keys(ctx context.Context, group string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.groups[group]))
	for k := range b.groups[group] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (b *FileBackend) Close() error { return nil }

// Path returns the location of the TOML document.
func (b *FileBackend) Path() string {
	return b.path
}

// flush rewrites the document. Callers hold b.mu for writing.
func (b *FileBackend) flush() error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(b.groups); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".settings-*.toml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close config: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

var _ Backend = (*FileBackend)(nil)
