package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		id   ID
		str  string
	}{
		{"root", Root(), ""},
		{"single namespace", New(Segment{"A", Namespace}), "A"},
		{"nested namespace", New(Segment{"A", Namespace}, Segment{"B", Namespace}), "A.B"},
		{"dto", New(Segment{"A", Namespace}, Segment{"User", Dto}), "A.dto:User"},
		{
			"field of dto",
			New(Segment{"A", Namespace}, Segment{"User", Dto}, Segment{"Id", Field}),
			"A.dto:User.field:Id",
		},
		{"rpc param", New(Segment{"GetUser", Rpc}, Segment{"id", Param}), "rpc:GetUser.param:id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.id.String())
			parsed, err := Parse(tt.id.String())
			require.NoError(t, err)
			assert.True(t, tt.id.Equal(parsed), "round trip mismatch: %v != %v", tt.id, parsed)
		})
	}
}

func TestParentAndChild(t *testing.T) {
	id := New(Segment{"A", Namespace}, Segment{"B", Namespace}, Segment{"C", Dto})
	parent := id.Parent()
	assert.Equal(t, "A.B", parent.String())
	assert.True(t, parent.Child("C", Dto).Equal(id))
	assert.True(t, Root().Parent().Equal(Root()))
}

func TestAncestry(t *testing.T) {
	a := New(Segment{"A", Namespace})
	ab := a.Child("B", Namespace)
	abc := ab.Child("C", Dto)

	assert.True(t, a.IsAncestorOf(ab))
	assert.True(t, a.IsAncestorOf(abc))
	assert.True(t, abc.IsDescendantOf(a))
	assert.False(t, abc.IsAncestorOf(a))
	assert.False(t, a.IsAncestorOf(a))
	assert.True(t, abc.HasPrefix(a))
	assert.True(t, abc.HasPrefix(abc))
}

func TestInvalidNames(t *testing.T) {
	_, err := Parse("A..B")
	assert.Error(t, err)

	assert.Panics(t, func() { Root().Child("bad name", Namespace) })
	assert.Panics(t, func() { Root().Child("bad.name", Dto) })
	assert.False(t, IsValidName(""))
}

func TestEqualityIncludesKind(t *testing.T) {
	a := New(Segment{"X", Dto})
	b := New(Segment{"X", Enum})
	assert.False(t, a.Equal(b))
}

func TestAppend(t *testing.T) {
	ns := New(Segment{"A", Namespace}, Segment{"B", Namespace})
	rel := New(Segment{"C", Dto})
	assert.Equal(t, "A.B.dto:C", ns.Append(rel).String())
}
