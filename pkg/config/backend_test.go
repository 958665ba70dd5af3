package config

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	apperrors "github.com/FunnySam/runelite/pkg/errors"
)

// testBackendContract exercises the behaviour every Backend must share.
func testBackendContract(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	// Missing keys are not errors
	v, ok, err := b.Get(ctx, "runelite", "XpTracker_preferredLocation")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if ok || v != "" {
		t.Errorf("Get on empty backend = %q, %v; want miss", v, ok)
	}

	if err := b.Set(ctx, "runelite", "XpTracker_preferredLocation", "10:20"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := b.Set(ctx, "runelite", "XpTracker_preferredSize", "120x40"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := b.Set(ctx, "other", "XpTracker_preferredLocation", "1:1"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	v, ok, err = b.Get(ctx, "runelite", "XpTracker_preferredLocation")
	if err != nil || !ok || v != "10:20" {
		t.Errorf("Get = %q, %v, %v; want 10:20", v, ok, err)
	}

	// Overwrite
	if err := b.Set(ctx, "runelite", "XpTracker_preferredLocation", "30:40"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	v, _, _ = b.Get(ctx, "runelite", "XpTracker_preferredLocation")
	if v != "30:40" {
		t.Errorf("Get after overwrite = %q, want 30:40", v)
	}

	keys, err := b.Keys(ctx, "runelite")
	if err != nil {
		t.Fatalf("Keys error: %v", err)
	}
	want := []string{"XpTracker_preferredLocation", "XpTracker_preferredSize"}
	if !slices.Equal(keys, want) {
		t.Errorf("Keys = %v, want %v", keys, want)
	}

	// Delete is idempotent
	for i := 0; i < 2; i++ {
		if err := b.Delete(ctx, "runelite", "XpTracker_preferredSize"); err != nil {
			t.Fatalf("Delete #%d error: %v", i+1, err)
		}
	}
	if _, ok, _ := b.Get(ctx, "runelite", "XpTracker_preferredSize"); ok {
		t.Error("Get after Delete should miss")
	}

	// Groups are independent
	v, _, _ = b.Get(ctx, "other", "XpTracker_preferredLocation")
	if v != "1:1" {
		t.Errorf("Get other group = %q, want 1:1", v)
	}
}

func TestMemoryBackend(t *testing.T) {
	b := NewMemoryBackend()
	defer b.Close()
	testBackendContract(t, b)
}

func TestNullBackend(t *testing.T) {
	ctx := context.Background()
	b := NewNullBackend()
	defer b.Close()

	if err := b.Set(ctx, "runelite", "k", "v"); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, ok, _ := b.Get(ctx, "runelite", "k"); ok {
		t.Error("NullBackend should not store data")
	}
	if err := b.Delete(ctx, "runelite", "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	keys, err := b.Keys(ctx, "runelite")
	if err != nil || len(keys) != 0 {
		t.Errorf("Keys = %v, %v; want empty", keys, err)
	}
}

func TestFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")
	b, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("NewFileBackend error: %v", err)
	}
	testBackendContract(t, b)

	if b.Path() != path {
		t.Errorf("Path() = %q, want %q", b.Path(), path)
	}

	// Reopen and read back what was flushed.
	reopened, err := NewFileBackend(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	v, ok, _ := reopened.Get(context.Background(), "runelite", "XpTracker_preferredLocation")
	if !ok || v != "30:40" {
		t.Errorf("reopened Get = %q, %v; want 30:40", v, ok)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if !strings.Contains(string(data), "[runelite]") {
		t.Errorf("document should have a [runelite] table:\n%s", data)
	}
}

func TestFileBackendFailedWriteKeepsState(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "gone")
	b, err := NewFileBackend(filepath.Join(dir, "settings.toml"))
	if err != nil {
		t.Fatalf("NewFileBackend error: %v", err)
	}
	if err := b.Set(ctx, "runelite", "Kept_preferredLocation", "5:6"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}

	if err := b.Set(ctx, "runelite", "X_preferredLocation", "1:2"); err == nil {
		t.Fatal("Set should fail when the directory is gone")
	}
	if v, ok, _ := b.Get(ctx, "runelite", "X_preferredLocation"); ok {
		t.Errorf("Get after failed Set = %q, want miss", v)
	}

	if err := b.Set(ctx, "other", "Y", "1"); err == nil {
		t.Fatal("Set into a new group should fail")
	}
	if keys, _ := b.Keys(ctx, "other"); len(keys) != 0 {
		t.Errorf("Keys(other) after failed Set = %v, want empty", keys)
	}

	if err := b.Set(ctx, "runelite", "Kept_preferredLocation", "7:8"); err == nil {
		t.Fatal("overwrite should fail")
	}
	if err := b.Delete(ctx, "runelite", "Kept_preferredLocation"); err == nil {
		t.Fatal("Delete should fail")
	}
	if v, ok, _ := b.Get(ctx, "runelite", "Kept_preferredLocation"); !ok || v != "5:6" {
		t.Errorf("Get after failed writes = %q, %v; want 5:6", v, ok)
	}
}

func TestFileBackendRejectsMalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("runelite = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewFileBackend(path)
	if err == nil {
		t.Fatal("NewFileBackend should reject a non-table group")
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidConfig)
	}
}

func TestFileBackendDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	b, err := NewFileBackend("")
	if err != nil {
		t.Fatalf("NewFileBackend error: %v", err)
	}
	want := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), AppName, DefaultStoreFile)
	if b.Path() != want {
		t.Errorf("Path() = %q, want %q", b.Path(), want)
	}
}

func TestScopedBackend(t *testing.T) {
	ctx := context.Background()
	shared := NewMemoryBackend()
	a := NewScopedBackend(shared, NewProfileID())
	b := NewScopedBackend(shared, NewProfileID())

	testBackendContract(t, a)

	if _, ok, _ := b.Get(ctx, "runelite", "XpTracker_preferredLocation"); ok {
		t.Error("profiles should not see each other's values")
	}
	if _, ok, _ := shared.Get(ctx, "runelite", "XpTracker_preferredLocation"); ok {
		t.Error("scoped values should not land in the unscoped group")
	}
}

func TestScopedBackendNilInner(t *testing.T) {
	b := NewScopedBackend(nil, "p")
	ctx := context.Background()
	if err := b.Set(ctx, "g", "k", "v"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if v, ok, _ := b.Get(ctx, "g", "k"); !ok || v != "v" {
		t.Errorf("Get = %q, %v; want v", v, ok)
	}
}

func TestProfileID(t *testing.T) {
	id := NewProfileID()
	if err := ValidateProfileID(id); err != nil {
		t.Errorf("ValidateProfileID(%q) error: %v", id, err)
	}
	if NewProfileID() == id {
		t.Error("NewProfileID should not repeat")
	}
	if err := ValidateProfileID("main"); err == nil {
		t.Error("ValidateProfileID(main) should fail")
	}
}

func TestStorageKey(t *testing.T) {
	if got := StorageKey("runelite", "Xp_preferredSize"); got != "runelite.Xp_preferredSize" {
		t.Errorf("StorageKey() = %q", got)
	}
}
