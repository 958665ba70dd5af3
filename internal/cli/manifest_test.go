package cli

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/FunnySam/runelite/pkg/errors"
	"github.com/FunnySam/runelite/pkg/overlay"
)

const testManifest = `
[[overlay]]
name = "XpTracker"
layer = "UNDER_WIDGETS"
position = "TOP_LEFT"
priority = "HIGH"

[[overlay]]
name = "Agility"
layer = "above_scene"
position = "DYNAMIC"
priority = "LOW"

[[overlay]]
name = "Fps"
layer = "ALWAYS_ON_TOP"
position = "TOP_RIGHT"
priority = "7"

[[overlay]]
name = "Plain"
`

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlays.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	overlays, err := loadManifest(writeManifest(t, testManifest))
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if len(overlays) != 4 {
		t.Fatalf("got %d overlays, want 4", len(overlays))
	}

	tests := []struct {
		name     string
		layer    overlay.Layer
		position overlay.Position
		priority overlay.Priority
	}{
		{"XpTracker", overlay.LayerUnderWidgets, overlay.PositionTopLeft, overlay.PriorityHigh},
		{"Agility", overlay.LayerAboveScene, overlay.PositionDynamic, overlay.PriorityLow},
		{"Fps", overlay.LayerAlwaysOnTop, overlay.PositionTopRight, overlay.Priority(7)},
		{"Plain", overlay.LayerAboveScene, overlay.PositionTopLeft, overlay.PriorityNone},
	}
	for i, tt := range tests {
		o := overlays[i]
		if o.Name() != tt.name || o.Layer() != tt.layer || o.Position() != tt.position || o.Priority() != tt.priority {
			t.Errorf("overlay %d = %s/%v/%v/%v, want %s/%v/%v/%v", i,
				o.Name(), o.Layer(), o.Position(), o.Priority(),
				tt.name, tt.layer, tt.position, tt.priority)
		}
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code apperrors.Code
	}{
		{"syntax", "[[overlay]\n", apperrors.ErrCodeInvalidManifest},
		{"unknown field", "[[overlay]]\nname = \"A\"\ncolour = \"red\"\n", apperrors.ErrCodeInvalidManifest},
		{"missing name", "[[overlay]]\nlayer = \"MANUAL\"\n", apperrors.ErrCodeInvalidName},
		{"bad name", "[[overlay]]\nname = \"a.b\"\n", apperrors.ErrCodeInvalidName},
		{"bad layer", "[[overlay]]\nname = \"A\"\nlayer = \"SIDEWAYS\"\n", apperrors.ErrCodeInvalidLayer},
		{"bad position", "[[overlay]]\nname = \"A\"\nposition = \"MIDDLE\"\n", apperrors.ErrCodeInvalidPosition},
		{"bad priority", "[[overlay]]\nname = \"A\"\npriority = \"URGENT\"\n", apperrors.ErrCodeInvalidManifest},
		{"duplicate", "[[overlay]]\nname = \"A\"\n[[overlay]]\nname = \"A\"\n", apperrors.ErrCodeInvalidManifest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadManifest(writeManifest(t, tt.body))
			if got := apperrors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := loadManifest(filepath.Join(t.TempDir(), "absent.toml"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}
