// Package location abstracts where the map center comes from. The original
// client gets fixes from the device; a service deployment gets one
// configured coordinate. Either way the consumer just watches a channel
// and refreshes on every fix.
package location

import (
	"wildwatch/internal/models"
)

// Source emits coordinate fixes. The first fix triggers the initial
// refresh; later fixes recenter the map.
type Source interface {
	// Updates returns the fix channel. The channel closes when the source
	// has no more fixes to deliver.
	Updates() <-chan models.Coordinate
}

// StaticSource delivers a single configured fix and closes. It stands in
// for a device location manager in service deployments.
type StaticSource struct {
	ch chan models.Coordinate
}

// NewStaticSource creates a source that emits coord once.
func NewStaticSource(coord models.Coordinate) *StaticSource {
	ch := make(chan models.Coordinate, 1)
	ch <- coord
	close(ch)
	return &StaticSource{ch: ch}
}

// Updates implements Source.
func (s *StaticSource) Updates() <-chan models.Coordinate {
	return s.ch
}

// FuncSource adapts an externally fed channel into a Source, for tests and
// for wiring a real device feed.
type FuncSource struct {
	ch chan models.Coordinate
}

// NewFuncSource creates a source whose fixes are pushed via Emit.
func NewFuncSource() *FuncSource {
	return &FuncSource{ch: make(chan models.Coordinate, 8)}
}

// Emit delivers one fix to the consumer.
func (s *FuncSource) Emit(coord models.Coordinate) {
	s.ch <- coord
}

// Close ends the fix stream.
func (s *FuncSource) Close() {
	close(s.ch)
}

// Updates implements Source.
func (s *FuncSource) Updates() <-chan models.Coordinate {
	return s.ch
}
