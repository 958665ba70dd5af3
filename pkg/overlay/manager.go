package overlay

import (
	"cmp"
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/FunnySam/runelite/pkg/observability"
)

// ConfigGroup is the configuration group overlay placement is stored under.
const ConfigGroup = "runelite"

// Key suffixes appended to an overlay's name to form its configuration keys.
const (
	KeyPreferredLocation = "_preferredLocation"
	KeyPreferredPosition = "_preferredPosition"
	KeyPreferredSize     = "_preferredSize"
)

// ConfigStore persists overlay placement. Lookups that find nothing, or find
// something that does not decode into v, report false.
type ConfigStore interface {
	GetConfiguration(group, key string, v encoding.TextUnmarshaler) bool
	SetConfiguration(group, key string, v encoding.TextMarshaler)
	UnsetConfiguration(group, key string)
}

// snapshot is one published state of the registry. Neither the slice nor
// the map (nor the slices inside it) is modified after publication.
type snapshot struct {
	overlays []Overlay
	layers   map[Layer][]Overlay
}

var emptySnapshot = &snapshot{layers: map[Layer][]Overlay{}}

// Manager tracks the live overlays, keeps them in draw order and groups them
// into layers. Placement preferences are loaded from the ConfigStore when an
// overlay is added and written back by SaveOverlay.
//
// Readers never block: every mutation builds a new snapshot and publishes it
// atomically, so a renderer iterating Overlays or LayerOverlays sees either
// the state before or after a concurrent mutation. Mutations are serialized.
type Manager struct {
	store  ConfigStore
	logger *log.Logger

	mu   sync.Mutex
	snap atomic.Pointer[snapshot]
}

// NewManager creates an empty registry. A nil store disables persistence and
// a nil logger falls back to log.Default().
func NewManager(store ConfigStore, logger *log.Logger) *Manager {
	if store == nil {
		store = nopStore{}
	}
	if logger == nil {
		logger = log.Default()
	}
	m := &Manager{store: store, logger: logger}
	m.snap.Store(emptySnapshot)
	return m
}

// Add registers o. It returns false, without side effects, if o is already
// registered. Otherwise the stored preferences for o's name replace whatever
// o currently holds (absent values become nil).
//
// Overlays are tracked by identity, so o must be a non-nil pointer. Any other
// kind is refused and Add returns false.
func (m *Manager) Add(o Overlay) bool {
	if !isPointer(o) {
		m.logger.Warn("refusing overlay that is not a pointer", "type", fmt.Sprintf("%T", o))
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.snap.Load().overlays
	if slices.Contains(cur, o) {
		observability.Registry().OnAdd(o.Name(), false)
		return false
	}

	next := make([]Overlay, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, o)

	o.SetPreferredLocation(m.loadLocation(o))
	o.SetPreferredSize(m.loadSize(o))
	o.SetPreferredPosition(m.loadPosition(o))

	m.publish(next)
	m.logger.Debug("overlay added", "name", o.Name(), "layer", o.Layer(), "position", o.Position())
	observability.Registry().OnAdd(o.Name(), true)
	return true
}

func isPointer(o Overlay) bool {
	if o == nil {
		return false
	}
	v := reflect.ValueOf(o)
	return v.Kind() == reflect.Pointer && !v.IsNil()
}

// Remove unregisters o. It returns false if o was not registered.
// Stored preferences are kept for a future Add.
func (m *Manager) Remove(o Overlay) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.snap.Load().overlays
	i := slices.Index(cur, o)
	if i < 0 {
		return false
	}

	next := slices.Concat(cur[:i], cur[i+1:])
	m.publish(next)
	m.logger.Debug("overlay removed", "name", o.Name())
	observability.Registry().OnRemove("remove", 1)
	return true
}

// RemoveIf unregisters every overlay matching pred and reports whether any
// matched. The layers are rebuilt even when nothing matched.
func (m *Manager) RemoveIf(pred func(Overlay) bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.snap.Load().overlays
	next := make([]Overlay, 0, len(cur))
	for _, o := range cur {
		if !pred(o) {
			next = append(next, o)
		}
	}
	removed := len(cur) - len(next)

	m.publish(next)
	if removed > 0 {
		m.logger.Debug("overlays removed", "count", removed)
		observability.Registry().OnRemove("removeIf", removed)
	}
	return removed > 0
}

// Clear unregisters all overlays.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.snap.Load().overlays)
	m.publish(nil)
	observability.Registry().OnRemove("clear", n)
}

// SaveOverlay writes o's preferred position, size and location to the store,
// in that order. A nil preference deletes its key.
func (m *Manager) SaveOverlay(o Overlay) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := o.Name()
	if p := o.PreferredPosition(); p != nil {
		m.store.SetConfiguration(ConfigGroup, name+KeyPreferredPosition, *p)
	} else {
		m.store.UnsetConfiguration(ConfigGroup, name+KeyPreferredPosition)
	}
	if d := o.PreferredSize(); d != nil {
		m.store.SetConfiguration(ConfigGroup, name+KeyPreferredSize, *d)
	} else {
		m.store.UnsetConfiguration(ConfigGroup, name+KeyPreferredSize)
	}
	if p := o.PreferredLocation(); p != nil {
		m.store.SetConfiguration(ConfigGroup, name+KeyPreferredLocation, *p)
	} else {
		m.store.UnsetConfiguration(ConfigGroup, name+KeyPreferredLocation)
	}

	m.publish(slices.Clone(m.snap.Load().overlays))
	m.logger.Debug("overlay saved", "name", name)
}

// ResetOverlay deletes o's stored location, position and size. The
// preferences o holds in memory are left alone.
func (m *Manager) ResetOverlay(o Overlay) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := o.Name()
	m.store.UnsetConfiguration(ConfigGroup, name+KeyPreferredLocation)
	m.store.UnsetConfiguration(ConfigGroup, name+KeyPreferredPosition)
	m.store.UnsetConfiguration(ConfigGroup, name+KeyPreferredSize)

	m.publish(slices.Clone(m.snap.Load().overlays))
	m.logger.Debug("overlay reset", "name", name)
}

// Overlays returns the registered overlays in draw order.
func (m *Manager) Overlays() []Overlay {
	return slices.Clone(m.snap.Load().overlays)
}

// Len returns the number of registered overlays.
func (m *Manager) Len() int {
	return len(m.snap.Load().overlays)
}

// Layers returns every non-empty layer with its overlays in draw order.
func (m *Manager) Layers() map[Layer][]Overlay {
	layers := m.snap.Load().layers
	out := make(map[Layer][]Overlay, len(layers))
	for l, list := range layers {
		out[l] = slices.Clone(list)
	}
	return out
}

// LayerOverlays returns the overlays drawn on l in draw order, or nil.
func (m *Manager) LayerOverlays(l Layer) []Overlay {
	return slices.Clone(m.snap.Load().layers[l])
}

// publish sorts next in place, derives the layer grouping and makes both
// visible to readers. next must not be shared with a published snapshot.
// Callers hold m.mu.
func (m *Manager) publish(next []Overlay) {
	start := time.Now()
	SortOverlays(next)

	s := &snapshot{overlays: next, layers: buildLayers(next)}
	m.snap.Store(s)

	counts := make(map[string]int, len(s.layers))
	for l, list := range s.layers {
		counts[l.String()] = len(list)
	}
	observability.Registry().OnRebuild(len(next), counts, time.Since(start))
}

// buildLayers partitions sorted overlays by effective layer, preserving order.
func buildLayers(sorted []Overlay) map[Layer][]Overlay {
	layers := make(map[Layer][]Overlay)
	for _, o := range sorted {
		l := EffectiveLayer(o)
		layers[l] = append(layers[l], o)
	}
	return layers
}

// EffectiveLayer returns the layer o is grouped under. It is the declared
// layer, except that an UNDER_WIDGETS overlay the user dragged to a fixed
// location (preferred location set, no preferred position) moves to
// ABOVE_WIDGETS so it still draws over the game interface.
func EffectiveLayer(o Overlay) Layer {
	l := o.Layer()
	if l == LayerUnderWidgets && o.PreferredLocation() != nil && o.PreferredPosition() == nil {
		return LayerAboveWidgets
	}
	return l
}

// SortOverlays orders overlays for drawing. The sort is stable.
func SortOverlays(overlays []Overlay) {
	slices.SortStableFunc(overlays, compareOverlays)
}

func compareOverlays(a, b Overlay) int {
	pa, pb := a.Position(), b.Position()
	if pa != pb {
		// Dynamic overlays are generally in the scene, so they draw before
		// every anchored overlay.
		return cmp.Compare(pa, pb)
	}

	// The meaning of priority flips between the two modes.
	// DYNAMIC: higher priority draws later, so it ends up on top.
	// Anchored: higher priority draws first, so it sits closest to the anchor.
	if pa == PositionDynamic {
		return cmp.Compare(a.Priority(), b.Priority())
	}
	return cmp.Compare(b.Priority(), a.Priority())
}

func (m *Manager) loadLocation(o Overlay) *Point {
	var p Point
	if !m.store.GetConfiguration(ConfigGroup, o.Name()+KeyPreferredLocation, &p) {
		return nil
	}
	return &p
}

func (m *Manager) loadSize(o Overlay) *Dimension {
	var d Dimension
	if !m.store.GetConfiguration(ConfigGroup, o.Name()+KeyPreferredSize, &d) {
		return nil
	}
	return &d
}

func (m *Manager) loadPosition(o Overlay) *Position {
	var p Position
	if !m.store.GetConfiguration(ConfigGroup, o.Name()+KeyPreferredPosition, &p) {
		return nil
	}
	return &p
}

// nopStore is used when a Manager is created without a store.
type nopStore struct{}

func (nopStore) GetConfiguration(string, string, encoding.TextUnmarshaler) bool { return false }
func (nopStore) SetConfiguration(string, string, encoding.TextMarshaler)        {}
func (nopStore) UnsetConfiguration(string, string)                              {}
