package build

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apyxlgo/entity"
	"apyxlgo/model"
)

func TestCrossChunkNamespaceMerge(t *testing.T) {
	b := New()

	chunk1 := model.NewNamespace("")
	a1 := model.NewNamespace("A")
	a1.Dtos = append(a1.Dtos, &model.Dto{Name: "X"})
	chunk1.Namespaces = append(chunk1.Namespaces, a1)

	chunk2 := model.NewNamespace("")
	a2 := model.NewNamespace("A")
	a2.Dtos = append(a2.Dtos, &model.Dto{Name: "Y"})
	chunk2.Namespaces = append(chunk2.Namespaces, a2)

	b.Merge(chunk1, "chunk1.json")
	b.Merge(chunk2, "chunk2.json")

	m, errs := b.Build(context.Background(), Config{})
	require.Empty(t, errs)
	require.NotNil(t, m)

	a, ok := m.FindNamespace(entity.New(entity.Segment{Name: "A", Kind: entity.Namespace}))
	require.True(t, ok)
	require.Len(t, a.Dtos, 2)
	assert.Equal(t, "X", a.Dtos[0].Name)
	assert.Equal(t, "Y", a.Dtos[1].Name)
	assert.Equal(t, "chunk1.json", a.Dtos[0].Attrs.ChunkTag)
	assert.Equal(t, "chunk2.json", a.Dtos[1].Attrs.ChunkTag)
}

func TestDuplicateAcrossChunksFailsBuild(t *testing.T) {
	b := New()
	mk := func() *model.Namespace {
		root := model.NewNamespace("")
		a := model.NewNamespace("A")
		a.Dtos = append(a.Dtos, &model.Dto{Name: "X"})
		root.Namespaces = append(root.Namespaces, a)
		return root
	}
	b.Merge(mk(), "chunk1.json")
	b.Merge(mk(), "chunk2.json")

	_, errs := b.Build(context.Background(), Config{})
	require.Len(t, errs, 1)
	assert.Equal(t, "duplicate_definition", errs[0].Kind.String())
}

// TestDeterminism checks that two builds merging identical chunks in
// identical order produce structurally equal models.
func TestDeterminism(t *testing.T) {
	chunk := func() *model.Namespace {
		root := model.NewNamespace("")
		a := model.NewNamespace("A")
		a.Dtos = append(a.Dtos, &model.Dto{Name: "X", Fields: []model.Field{
			{Name: "f", Type: model.Primitive(model.I32)},
		}})
		root.Namespaces = append(root.Namespaces, a)
		return root
	}

	b1 := New()
	b1.Merge(chunk(), "c.json")
	m1, errs1 := b1.Build(context.Background(), Config{})
	require.Empty(t, errs1)

	b2 := New()
	b2.Merge(chunk(), "c.json")
	m2, errs2 := b2.Build(context.Background(), Config{})
	require.Empty(t, errs2)

	typeRefCmp := cmp.Comparer(func(a, b model.TypeRef) bool { return a.Equal(b) })
	if diff := cmp.Diff(m1.Root, m2.Root, typeRefCmp); diff != "" {
		t.Fatalf("non-deterministic build:\n%s", diff)
	}
}

// TestMergeAssociativityForNamespaceSkeletons checks that merging three
// namespace-only chunks is associative regardless of how they're grouped,
// as long as merge order is preserved: Merge(Merge(A,B),C) and
// Merge(A,Merge(B,C)) describe the same final tree shape.
func TestMergeAssociativityForNamespaceSkeletons(t *testing.T) {
	skeleton := func(leaf string) *model.Namespace {
		root := model.NewNamespace("")
		p := model.NewNamespace("P")
		q := model.NewNamespace("Q")
		q.Dtos = append(q.Dtos, &model.Dto{Name: leaf})
		p.Namespaces = append(p.Namespaces, q)
		root.Namespaces = append(root.Namespaces, p)
		return root
	}

	leftAssoc := func() *model.Namespace {
		ab := model.NewNamespace("")
		mergeInto(ab, skeleton("A"))
		mergeInto(ab, skeleton("B"))
		out := model.NewNamespace("")
		mergeInto(out, ab)
		mergeInto(out, skeleton("C"))
		return out
	}()

	rightAssoc := func() *model.Namespace {
		bc := model.NewNamespace("")
		mergeInto(bc, skeleton("B"))
		mergeInto(bc, skeleton("C"))
		out := model.NewNamespace("")
		mergeInto(out, skeleton("A"))
		mergeInto(out, bc)
		return out
	}()

	typeRefCmp := cmp.Comparer(func(a, b model.TypeRef) bool { return a.Equal(b) })
	if diff := cmp.Diff(leftAssoc, rightAssoc, typeRefCmp); diff != "" {
		t.Fatalf("namespace merge not associative:\n%s", diff)
	}

	pq, ok := leftAssoc.Namespaces[0].Namespace("Q")
	require.True(t, ok)
	require.Len(t, pq.Dtos, 3)
	assert.Equal(t, "A", pq.Dtos[0].Name)
	assert.Equal(t, "B", pq.Dtos[1].Name)
	assert.Equal(t, "C", pq.Dtos[2].Name)
}

