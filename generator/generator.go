// Package generator defines the abstract boundary between a view of the
// model and whatever writes declarations out of it.
package generator

import "apyxlgo/view"

// Sink receives a generator's output. WriteChunk opens (or reopens) the
// output addressed by path for writing; the generator decides chunk
// boundaries, typically one per input chunk tag or one per namespace.
type Sink interface {
	WriteChunk(path string) (Writer, error)
}

// Writer is the minimal surface a generator needs to emit one chunk's
// text. Close must be called once the generator is done with the chunk.
type Writer interface {
	WriteString(s string) (int, error)
	Close() error
}

// Error is raised by a generator; it is opaque to the core; only the
// message is meaningful to callers outside the generator itself.
type Error struct {
	Generator string
	Msg       string
}

func (e Error) Error() string { return e.Generator + ": " + e.Msg }

// Generator is the contract every back end satisfies: it walks v and
// writes declarations to sink, deciding its own chunk boundaries.
type Generator interface {
	Generate(v view.View, sink Sink) error
}
