package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apyxlgo/entity"
	"apyxlgo/model"
)

var nsA = entity.New(entity.Segment{Name: "A", Kind: entity.Namespace})

func sampleModel() *model.Model {
	root := model.NewNamespace("")
	a := model.NewNamespace("A")
	a.Dtos = append(a.Dtos,
		&model.Dto{Name: "X", Fields: []model.Field{{Name: "f", Type: model.Primitive(model.I32)}}, Attrs: model.Attributes{ChunkTag: "c1"}},
		&model.Dto{Name: "Y", Attrs: model.Attributes{ChunkTag: "c2"}},
	)
	root.Namespaces = append(root.Namespaces, a)
	return model.New(root)
}

type dropByName struct{ name string }

func (d dropByName) Filter(dto *model.Dto) bool               { return dto.Name != d.name }
func (d dropByName) Rename(name string) string                { return name }
func (d dropByName) FieldOrder(f []model.Field) []model.Field { return f }

type upperRename struct{}

func (upperRename) Filter(*model.Dto) bool                    { return true }
func (upperRename) Rename(name string) string                 { return name + "_v" }
func (upperRename) FieldOrder(f []model.Field) []model.Field { return f }

func TestFilterDropsEntity(t *testing.T) {
	m := sampleModel()
	v := New(m).WithTransforms(Transforms{Dto: []DtoTransform{dropByName{name: "Y"}}})

	sub, ok := v.SubView(nsA)
	require.True(t, ok)

	var names []string
	sub.EachDto(func(d DtoView) bool {
		names = append(names, d.Name)
		return true
	})
	assert.Equal(t, []string{"X"}, names)
}

func TestRenameChains(t *testing.T) {
	m := sampleModel()
	v := New(m).WithTransforms(Transforms{Dto: []DtoTransform{upperRename{}}})
	sub, ok := v.SubView(nsA)
	require.True(t, ok)

	var names []string
	sub.EachDto(func(d DtoView) bool {
		names = append(names, d.Name)
		return true
	})
	assert.Equal(t, []string{"X_v", "Y_v"}, names)
}

func TestViewPurityLeavesModelUnchanged(t *testing.T) {
	m := sampleModel()

	v := New(m).WithTransforms(Transforms{Dto: []DtoTransform{upperRename{}}})
	sub, _ := v.SubView(nsA)
	sub.EachDto(func(DtoView) bool { return true })

	a, ok := m.FindNamespace(nsA)
	require.True(t, ok)
	require.Len(t, a.Dtos, 2)
	assert.Equal(t, "X", a.Dtos[0].Name)
	assert.Equal(t, "Y", a.Dtos[1].Name)
}

func TestChunkedIterPartitions(t *testing.T) {
	m := sampleModel()
	v := New(m)
	chunks := v.ChunkedIter()
	require.Len(t, chunks, 2)

	var names []string
	chunks["c1"].EachNamespace(func(ns View) bool {
		ns.EachDto(func(d DtoView) bool { names = append(names, d.Name); return true })
		return true
	})
	assert.Equal(t, []string{"X"}, names)
}
