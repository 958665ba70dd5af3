package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	apperrors "github.com/FunnySam/runelite/pkg/errors"
	"github.com/FunnySam/runelite/pkg/overlay"
)

// manifest declares a set of overlays:
//
//	[[overlay]]
//	name = "XpTracker"
//	layer = "UNDER_WIDGETS"
//	position = "TOP_LEFT"
//	priority = "HIGH"
//
// Omitted fields default to ABOVE_SCENE, TOP_LEFT and NONE.
type manifest struct {
	Overlays []manifestEntry `toml:"overlay"`
}

type manifestEntry struct {
	Name     string `toml:"name"`
	Layer    string `toml:"layer"`
	Position string `toml:"position"`
	Priority string `toml:"priority"`
}

// loadManifest reads a manifest file into overlays, in file order.
func loadManifest(path string) ([]*overlay.Base, error) {
	var m manifest
	md, err := toml.DecodeFile(path, &m)
	if os.IsNotExist(err) {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "manifest %s", path)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidManifest, err, "parse manifest %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidManifest, "unknown field %q in %s", undecoded[0].String(), path)
	}
	return m.overlays()
}

func (m manifest) overlays() ([]*overlay.Base, error) {
	out := make([]*overlay.Base, 0, len(m.Overlays))
	seen := make(map[string]bool, len(m.Overlays))
	for i, e := range m.Overlays {
		o, err := e.overlay()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.GetCode(err), err, "overlay #%d", i+1)
		}
		if seen[e.Name] {
			return nil, apperrors.New(apperrors.ErrCodeInvalidManifest, "overlay %q declared twice", e.Name)
		}
		seen[e.Name] = true
		out = append(out, o)
	}
	return out, nil
}

func (e manifestEntry) overlay() (*overlay.Base, error) {
	if err := apperrors.ValidateOverlayName(e.Name); err != nil {
		return nil, err
	}

	layer := overlay.LayerAboveScene
	if e.Layer != "" {
		l, err := overlay.ParseLayer(e.Layer)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidLayer, err, "%s", e.Name)
		}
		layer = l
	}

	position := overlay.PositionTopLeft
	if e.Position != "" {
		p, err := overlay.ParsePosition(e.Position)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPosition, err, "%s", e.Name)
		}
		position = p
	}

	priority := overlay.PriorityNone
	if e.Priority != "" {
		p, err := overlay.ParsePriority(e.Priority)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidManifest, err, "%s", e.Name)
		}
		priority = p
	}

	return overlay.NewBase(e.Name, layer, position, priority), nil
}
