package jsonidl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apyxlgo/build"
	"apyxlgo/entity"
	"apyxlgo/model"
	"apyxlgo/parser"
)

const sampleDoc = `{
  "namespaces": [
    {
      "name": "A",
      "dtos": [
        {
          "name": "User",
          "fields": [
            {"name": "id", "type": {"primitive": "string"}},
            {"name": "tags", "type": {"array": {"primitive": "string"}}},
            {"name": "nick", "type": {"optional": {"primitive": "string"}}}
          ],
          "attrs": {
            "comments": ["a user record"],
            "user_attrs": {"deprecated": "flag", "validate": ["required"], "http": {"method": "GET"}}
          }
        }
      ]
    }
  ]
}`

func TestParseIntoBuilder(t *testing.T) {
	b := build.New()
	p := New()
	require.NoError(t, p.Parse(b, "sample.json", []byte(sampleDoc), parser.Config{}))

	m, errs := b.Build(context.Background(), build.Config{})
	require.Empty(t, errs)

	d, ok := m.FindDto(entity.New(entity.Segment{Name: "A", Kind: entity.Namespace}, entity.Segment{Name: "User", Kind: entity.Dto}))
	require.True(t, ok)
	require.Len(t, d.Fields, 3)
	assert.Equal(t, "id", d.Fields[0].Name)

	flag, ok := d.Attrs.UserAttr("deprecated")
	require.True(t, ok)
	assert.True(t, flag.Flag())

	validate, ok := d.Attrs.UserAttr("validate")
	require.True(t, ok)
	assert.Equal(t, []string{"required"}, validate.List)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	root := model.NewNamespace("")
	a := model.NewNamespace("A")
	a.Dtos = append(a.Dtos, &model.Dto{
		Name: "X",
		Fields: []model.Field{
			{Name: "f", Type: model.Primitive(model.I32)},
			{Name: "g", Type: model.Array(model.Primitive(model.String))},
		},
	})
	root.Namespaces = append(root.Namespaces, a)

	encoded, err := Encode(root)
	require.NoError(t, err)

	b := build.New()
	p := New()
	require.NoError(t, p.Parse(b, "roundtrip.json", encoded, parser.Config{}))
	m, errs := b.Build(context.Background(), build.Config{})
	require.Empty(t, errs)

	d, ok := m.FindDto(entity.New(entity.Segment{Name: "A", Kind: entity.Namespace}, entity.Segment{Name: "X", Kind: entity.Dto}))
	require.True(t, ok)
	require.Len(t, d.Fields, 2)
	assert.Equal(t, "f", d.Fields[0].Name)
	assert.Equal(t, "g", d.Fields[1].Name)
}
