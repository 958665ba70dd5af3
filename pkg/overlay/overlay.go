package overlay

import "sync"

// Overlay is the capability set the registry needs from an overlay.
// Implementations are supplied by feature code and must be pointer types:
// the registry tracks overlays by reference identity.
type Overlay interface {
	Name() string
	Layer() Layer
	Position() Position
	Priority() Priority

	PreferredLocation() *Point
	SetPreferredLocation(*Point)
	PreferredSize() *Dimension
	SetPreferredSize(*Dimension)
	PreferredPosition() *Position
	SetPreferredPosition(*Position)
}

// Base is an embeddable Overlay implementation holding the declared
// placement and the user's preferences. It is safe for concurrent use;
// getters return copies so callers cannot alias internal state.
type Base struct {
	mu sync.RWMutex

	name     string
	layer    Layer
	position Position
	priority Priority

	preferredLocation *Point
	preferredSize     *Dimension
	preferredPosition *Position
}

// NewBase creates an overlay with the given declared placement and no preferences.
func NewBase(name string, layer Layer, position Position, priority Priority) *Base {
	return &Base{
		name:     name,
		layer:    layer,
		position: position,
		priority: priority,
	}
}

func (b *Base) Name() string { return b.name }

func (b *Base) Layer() Layer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.layer
}

func (b *Base) Position() Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.position
}

func (b *Base) Priority() Priority {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.priority
}

// SetLayer changes the declared layer. Call Manager.SaveOverlay (or any
// other mutation) afterwards so the layer grouping picks it up.
func (b *Base) SetLayer(l Layer) {
	b.mu.Lock()
	b.layer = l
	b.mu.Unlock()
}

// SetPosition changes the declared position. The registry re-sorts on its next mutation.
func (b *Base) SetPosition(p Position) {
	b.mu.Lock()
	b.position = p
	b.mu.Unlock()
}

func (b *Base) SetPriority(p Priority) {
	b.mu.Lock()
	b.priority = p
	b.mu.Unlock()
}

func (b *Base) PreferredLocation() *Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return clonePtr(b.preferredLocation)
}

func (b *Base) SetPreferredLocation(p *Point) {
	b.mu.Lock()
	b.preferredLocation = clonePtr(p)
	b.mu.Unlock()
}

func (b *Base) PreferredSize() *Dimension {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return clonePtr(b.preferredSize)
}

func (b *Base) SetPreferredSize(d *Dimension) {
	b.mu.Lock()
	b.preferredSize = clonePtr(d)
	b.mu.Unlock()
}

func (b *Base) PreferredPosition() *Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return clonePtr(b.preferredPosition)
}

func (b *Base) SetPreferredPosition(p *Position) {
	b.mu.Lock()
	b.preferredPosition = clonePtr(p)
	b.mu.Unlock()
}

// ClearPreferences drops all user preferences in memory. Pair it with
// Manager.ResetOverlay to also forget the stored ones.
func (b *Base) ClearPreferences() {
	b.mu.Lock()
	b.preferredLocation = nil
	b.preferredSize = nil
	b.preferredPosition = nil
	b.mu.Unlock()
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

var _ Overlay = (*Base)(nil)
