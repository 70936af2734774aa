package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apyxlgo/entity"
	"apyxlgo/model"
)

func TestValidateTrivialModelStampsEntityIDs(t *testing.T) {
	root := model.NewNamespace("")
	a := model.NewNamespace("A")
	a.Dtos = append(a.Dtos, &model.Dto{Name: "D", Fields: []model.Field{
		{Name: "f", Type: model.Primitive(model.I32)},
	}})
	root.Namespaces = append(root.Namespaces, a)
	m := model.New(root)

	errs := Validate(m, Config{})
	require.Empty(t, errs)

	d, ok := m.FindDto(entity.New(entity.Segment{Name: "A", Kind: entity.Namespace}, entity.Segment{Name: "D", Kind: entity.Dto}))
	require.True(t, ok)
	k, ok := d.Fields[0].Type.PrimitiveKind()
	require.True(t, ok)
	assert.Equal(t, model.I32, k)
	require.NotNil(t, d.Attrs.EntityID)
	assert.Equal(t, "A.dto:D", d.Attrs.EntityID.String())
}

func TestDuplicateDefinitionAcrossMergedChunks(t *testing.T) {
	root := model.NewNamespace("")
	a1 := model.NewNamespace("A")
	a1.Dtos = append(a1.Dtos, &model.Dto{Name: "X"})
	a2 := model.NewNamespace("A")
	a2.Dtos = append(a2.Dtos, &model.Dto{Name: "X"})
	root.Namespaces = append(root.Namespaces, a1)
	// simulate builder merge: concatenate into one namespace "A"
	root.Namespaces[0].Dtos = append(root.Namespaces[0].Dtos, a2.Dtos...)

	m := model.New(root)
	errs := Validate(m, Config{})
	var dupes int
	for _, e := range errs {
		if e.Kind == DuplicateDefinition {
			dupes++
		}
	}
	assert.Equal(t, 1, dupes)
}

func TestRelativeQualificationResolvesSiblingType(t *testing.T) {
	root := model.NewNamespace("")
	a := model.NewNamespace("A")
	a.Dtos = append(a.Dtos,
		&model.Dto{Name: "Inner"},
		&model.Dto{Name: "Outer", Fields: []model.Field{
			{Name: "f", Type: model.ApiType(entity.New(entity.Segment{Name: "Inner", Kind: entity.Dto}))},
		}},
	)
	root.Namespaces = append(root.Namespaces, a)
	m := model.New(root)

	errs := Validate(m, Config{})
	require.Empty(t, errs)

	outer, ok := m.FindDto(entity.New(entity.Segment{Name: "A", Kind: entity.Namespace}, entity.Segment{Name: "Outer", Kind: entity.Dto}))
	require.True(t, ok)
	assert.Equal(t, "A.dto:Inner", outer.Fields[0].Type.ApiID().String())
}

func TestUserTypeReferenceSkipsQualification(t *testing.T) {
	root := model.NewNamespace("")
	root.Dtos = append(root.Dtos, &model.Dto{Name: "X", Fields: []model.Field{
		{Name: "f", Type: model.User("special", "MySpecialType")},
	}})
	m := model.New(root)
	errs := Validate(m, Config{UserTypes: map[string]bool{"special": true}})
	require.Empty(t, errs)
}

func TestAliasCycleIsDetected(t *testing.T) {
	root := model.NewNamespace("")
	root.Aliases = append(root.Aliases,
		&model.TypeAlias{Name: "A", Target: model.ApiType(entity.New(entity.Segment{Name: "B", Kind: entity.TypeAlias}))},
		&model.TypeAlias{Name: "B", Target: model.ApiType(entity.New(entity.Segment{Name: "A", Kind: entity.TypeAlias}))},
	)
	m := model.New(root)
	errs := Validate(m, Config{})
	var cycles int
	for _, e := range errs {
		if e.Kind == AliasCycle {
			cycles++
		}
	}
	assert.Equal(t, 1, cycles)
}

func TestEnumValueConflict(t *testing.T) {
	root := model.NewNamespace("")
	root.Enums = append(root.Enums, &model.Enum{Name: "E", Values: []model.EnumValue{
		{Name: "A", Number: 0},
		{Name: "B", Number: 0},
	}})
	m := model.New(root)
	errs := Validate(m, Config{})
	var conflicts int
	for _, e := range errs {
		if e.Kind == EnumValueConflict {
			conflicts++
		}
	}
	assert.Equal(t, 1, conflicts)
}
