package slam

import "sort"

// Map is the persistent world-frame line-segment map built up by the SLAM
// engine. It is kept sorted by descending squared length after every
// admission or merge; sort stability is not required.
type Map struct {
	Segments []Segment
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{}
}

// sortByLength re-sorts m.Segments by descending squared length.
func (m *Map) sortByLength() {
	sort.Slice(m.Segments, func(i, j int) bool {
		return sqDist(m.Segments[i]) > sqDist(m.Segments[j])
	})
}

// Len reports the number of segments currently in the map.
func (m *Map) Len() int {
	return len(m.Segments)
}

// Clone returns a deep copy of m, useful for tests and for snapshotting to
// internal/store without racing the engine's next tick.
func (m *Map) Clone() *Map {
	out := make([]Segment, len(m.Segments))
	copy(out, m.Segments)
	return &Map{Segments: out}
}
