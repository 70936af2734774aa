package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apyxlgo/entity"
)

func buildSample() *Model {
	root := NewNamespace("")
	a := NewNamespace("A")
	user := &Dto{Name: "User", Fields: []Field{
		{Name: "Id", Type: Primitive(String)},
		{Name: "Friend", Type: ApiType(entity.New(entity.Segment{Name: "User", Kind: entity.Dto}))},
	}}
	a.Dtos = append(a.Dtos, user)
	root.Namespaces = append(root.Namespaces, a)
	return New(root)
}

func TestFindEntity(t *testing.T) {
	m := buildSample()
	id := entity.New(entity.Segment{Name: "A", Kind: entity.Namespace}, entity.Segment{Name: "User", Kind: entity.Dto})
	e, ok := m.FindEntity(id)
	require.True(t, ok)
	require.NotNil(t, e.Dto)
	assert.Equal(t, "User", e.Dto.Name)
}

func TestFindQualifiedTypeRelativeInnermostFirst(t *testing.T) {
	m := buildSample()
	from := entity.New(entity.Segment{Name: "A", Kind: entity.Namespace}, entity.Segment{Name: "User", Kind: entity.Dto})
	ty := entity.New(entity.Segment{Name: "User", Kind: entity.Dto})
	abs, ok := m.FindQualifiedTypeRelative(from, ty)
	require.True(t, ok)
	assert.Equal(t, "A.dto:User", abs.String())
}

// TestFindQualifiedTypeRelativeProbesEveryAncestorLevel builds a three-level
// scope P.Q.R and places the target Dto only at the root, confirming the
// walk probes P.Q.R.T, P.Q.T, P.T, then T before succeeding at the last.
func TestFindQualifiedTypeRelativeProbesEveryAncestorLevel(t *testing.T) {
	root := NewNamespace("")
	root.Dtos = append(root.Dtos, &Dto{Name: "T"})
	p := NewNamespace("P")
	q := NewNamespace("Q")
	r := NewNamespace("R")
	q.Namespaces = append(q.Namespaces, r)
	p.Namespaces = append(p.Namespaces, q)
	root.Namespaces = append(root.Namespaces, p)
	m := New(root)

	from := entity.New(
		entity.Segment{Name: "P", Kind: entity.Namespace},
		entity.Segment{Name: "Q", Kind: entity.Namespace},
		entity.Segment{Name: "R", Kind: entity.Namespace},
	)
	ty := entity.New(entity.Segment{Name: "T", Kind: entity.Dto})

	abs, ok := m.FindQualifiedTypeRelative(from, ty)
	require.True(t, ok)
	assert.Equal(t, "dto:T", abs.String())
}

func TestFindQualifiedTypeRelativeMiss(t *testing.T) {
	m := buildSample()
	from := entity.New(entity.Segment{Name: "A", Kind: entity.Namespace})
	ty := entity.New(entity.Segment{Name: "Nope", Kind: entity.Dto})
	_, ok := m.FindQualifiedTypeRelative(from, ty)
	assert.False(t, ok)
}

func TestResolveAliasTargetChain(t *testing.T) {
	root := NewNamespace("")
	root.Aliases = append(root.Aliases,
		&TypeAlias{Name: "A", Target: ApiType(entity.New(entity.Segment{Name: "B", Kind: entity.TypeAlias}))},
		&TypeAlias{Name: "B", Target: Primitive(I32)},
	)
	m := New(root)
	target, err := m.ResolveAliasTarget(entity.New(entity.Segment{Name: "A", Kind: entity.TypeAlias}))
	require.NoError(t, err)
	k, ok := target.PrimitiveKind()
	require.True(t, ok)
	assert.Equal(t, I32, k)
}

func TestTypeRefEqualAndString(t *testing.T) {
	a := Array(Optional(Primitive(I32)))
	b := Array(Optional(Primitive(I32)))
	c := Array(Primitive(I32))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, "array<optional<i32>>", a.String())
}
