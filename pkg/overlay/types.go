package overlay

import (
	"fmt"
	"strconv"
	"strings"
)

// Layer is the compositing layer an overlay is drawn on.
type Layer int

const (
	LayerAboveScene Layer = iota
	LayerUnderWidgets
	LayerAboveWidgets
	LayerAlwaysOnTop
	LayerAboveMap
	LayerManual
)

var layerNames = [...]string{
	LayerAboveScene:   "ABOVE_SCENE",
	LayerUnderWidgets: "UNDER_WIDGETS",
	LayerAboveWidgets: "ABOVE_WIDGETS",
	LayerAlwaysOnTop:  "ALWAYS_ON_TOP",
	LayerAboveMap:     "ABOVE_MAP",
	LayerManual:       "MANUAL",
}

// AllLayers lists every layer in declaration order.
func AllLayers() []Layer {
	out := make([]Layer, len(layerNames))
	for i := range layerNames {
		out[i] = Layer(i)
	}
	return out
}

func (l Layer) String() string {
	if l >= 0 && int(l) < len(layerNames) {
		return layerNames[l]
	}
	return "Layer(" + strconv.Itoa(int(l)) + ")"
}

// ParseLayer parses a layer name such as "UNDER_WIDGETS". Matching ignores
// case; UnmarshalText does not.
func ParseLayer(s string) (Layer, error) {
	return parseLayer(s, true)
}

func parseLayer(s string, fold bool) (Layer, error) {
	if i := nameIndex(layerNames[:], s, fold); i >= 0 {
		return Layer(i), nil
	}
	return 0, fmt.Errorf("unknown overlay layer %q", s)
}

func (l Layer) MarshalText() ([]byte, error) {
	if l < 0 || int(l) >= len(layerNames) {
		return nil, fmt.Errorf("invalid overlay layer %d", int(l))
	}
	return []byte(layerNames[l]), nil
}

func (l *Layer) UnmarshalText(text []byte) error {
	v, err := parseLayer(string(text), false)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Position is an overlay's placement mode. PositionDynamic must stay the
// lowest ordinal: sorting relies on dynamic overlays coming first.
type Position int

const (
	// PositionDynamic overlays place themselves, usually tracking something in the scene.
	PositionDynamic Position = iota
	PositionTooltip
	PositionTopLeft
	PositionTopCenter
	PositionTopRight
	PositionCanvasTopRight
	PositionAboveChatboxRight
	PositionBottomLeft
	PositionBottomRight
	PositionDetached
)

var positionNames = [...]string{
	PositionDynamic:           "DYNAMIC",
	PositionTooltip:           "TOOLTIP",
	PositionTopLeft:           "TOP_LEFT",
	PositionTopCenter:         "TOP_CENTER",
	PositionTopRight:          "TOP_RIGHT",
	PositionCanvasTopRight:    "CANVAS_TOP_RIGHT",
	PositionAboveChatboxRight: "ABOVE_CHATBOX_RIGHT",
	PositionBottomLeft:        "BOTTOM_LEFT",
	PositionBottomRight:       "BOTTOM_RIGHT",
	PositionDetached:          "DETACHED",
}

func (p Position) String() string {
	if p >= 0 && int(p) < len(positionNames) {
		return positionNames[p]
	}
	return "Position(" + strconv.Itoa(int(p)) + ")"
}

// ParsePosition parses a position name such as "TOP_LEFT". Matching ignores
// case; UnmarshalText, which decodes stored values, does not.
func ParsePosition(s string) (Position, error) {
	return parsePosition(s, true)
}

func parsePosition(s string, fold bool) (Position, error) {
	if i := nameIndex(positionNames[:], s, fold); i >= 0 {
		return Position(i), nil
	}
	return 0, fmt.Errorf("unknown overlay position %q", s)
}

// MarshalText encodes the position as its enum name, the stored form of
// the "_preferredPosition" key.
func (p Position) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= len(positionNames) {
		return nil, fmt.Errorf("invalid overlay position %d", int(p))
	}
	return []byte(positionNames[p]), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	v, err := parsePosition(string(text), false)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Priority breaks ties between overlays sharing a position. Any integer is
// valid; the named values are the common steps.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMed
	PriorityHigh
	PriorityHighest
)

var priorityNames = map[Priority]string{
	PriorityNone:    "NONE",
	PriorityLow:     "LOW",
	PriorityMed:     "MED",
	PriorityHigh:    "HIGH",
	PriorityHighest: "HIGHEST",
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return strconv.Itoa(int(p))
}

// ParsePriority accepts a priority name ("HIGH", any case) or a plain
// integer ("7").
func ParsePriority(s string) (Priority, error) {
	return parsePriority(s, true)
}

func parsePriority(s string, fold bool) (Priority, error) {
	for p, name := range priorityNames {
		if s == name || (fold && strings.EqualFold(s, name)) {
			return p, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown overlay priority %q", s)
	}
	return Priority(n), nil
}

func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(text []byte) error {
	v, err := parsePriority(string(text), false)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Point is a pixel coordinate on the client canvas. Stored as "X:Y".
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return strconv.Itoa(p.X) + ":" + strconv.Itoa(p.Y)
}

func (p Point) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Point) UnmarshalText(text []byte) error {
	x, y, err := splitPair(string(text), ":")
	if err != nil {
		return fmt.Errorf("parse point: %w", err)
	}
	p.X, p.Y = x, y
	return nil
}

// Dimension is a pixel size. Stored as "WxH".
type Dimension struct {
	Width, Height int
}

func (d Dimension) String() string {
	return strconv.Itoa(d.Width) + "x" + strconv.Itoa(d.Height)
}

func (d Dimension) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Dimension) UnmarshalText(text []byte) error {
	w, h, err := splitPair(string(text), "x")
	if err != nil {
		return fmt.Errorf("parse dimension: %w", err)
	}
	d.Width, d.Height = w, h
	return nil
}

// nameIndex returns the index of s in names, or -1.
func nameIndex(names []string, s string, fold bool) int {
	for i, name := range names {
		if s == name || (fold && strings.EqualFold(s, name)) {
			return i
		}
	}
	return -1
}

// splitPair parses "<int><sep><int>" with no surrounding whitespace.
func splitPair(s, sep string) (int, int, error) {
	a, b, ok := strings.Cut(s, sep)
	if !ok {
		return 0, 0, fmt.Errorf("%q: missing %q separator", s, sep)
	}
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("%q: %w", s, err)
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("%q: %w", s, err)
	}
	return x, y, nil
}
