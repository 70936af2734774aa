package dbg

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apyxlgo/build"
	"apyxlgo/generator"
	"apyxlgo/model"
	"apyxlgo/view"
)

type memSink struct {
	chunks map[string]*strings.Builder
}

func newMemSink() *memSink { return &memSink{chunks: map[string]*strings.Builder{}} }

func (s *memSink) WriteChunk(path string) (generator.Writer, error) {
	b := &strings.Builder{}
	s.chunks[path] = b
	return memWriter{b}, nil
}

type memWriter struct{ b *strings.Builder }

func (w memWriter) WriteString(s string) (int, error) { return w.b.WriteString(s) }
func (w memWriter) Close() error                      { return nil }

func TestGenerateProducesOneChunkPerTag(t *testing.T) {
	b := build.New()
	root := model.NewNamespace("")
	a := model.NewNamespace("A")
	a.Dtos = append(a.Dtos, &model.Dto{Name: "X", Fields: []model.Field{
		{Name: "f", Type: model.Primitive(model.I32)},
	}})
	root.Namespaces = append(root.Namespaces, a)
	b.Merge(root, "a.json")

	m, errs := b.Build(context.Background(), build.Config{})
	require.Empty(t, errs)

	sink := newMemSink()
	g := New()
	require.NoError(t, g.Generate(view.New(m), sink))

	require.Contains(t, sink.chunks, "a.json")
	out := sink.chunks["a.json"].String()
	assert.Contains(t, out, "dto X")
	assert.Contains(t, out, "f: i32")
}
