// Package jsonidl is a minimal reference parser.Parser reading a small
// JSON-encoded IDL shape directly into model.Namespace trees. It exists to
// exercise the Builder and Validator in integration tests and the CLI
// demo; it is not meant to parse any real-world IDL.
package jsonidl

import (
	"encoding/json"
	"fmt"

	"apyxlgo/build"
	"apyxlgo/entity"
	"apyxlgo/model"
	"apyxlgo/parser"
)

// Parser satisfies parser.Parser by decoding source as a jsonNamespace
// document and merging the resulting tree into builder.
type Parser struct{}

// New returns a ready-to-use jsonidl Parser.
func New() *Parser { return &Parser{} }

func (p *Parser) Parse(b *build.Builder, chunkTag string, source []byte, cfg parser.Config) error {
	var doc jsonNamespace
	if err := json.Unmarshal(source, &doc); err != nil {
		return parser.Error{Chunk: chunkTag, Msg: fmt.Sprintf("invalid json: %v", err)}
	}
	ns, err := doc.toNamespace()
	if err != nil {
		return parser.Error{Chunk: chunkTag, Msg: err.Error()}
	}
	b.Merge(ns, chunkTag)
	return nil
}

// --- JSON document shape ---

type jsonNamespace struct {
	Name       string          `json:"name,omitempty"`
	Namespaces []jsonNamespace `json:"namespaces,omitempty"`
	Dtos       []jsonDto       `json:"dtos,omitempty"`
	Rpcs       []jsonRpc       `json:"rpcs,omitempty"`
	Enums      []jsonEnum      `json:"enums,omitempty"`
	Aliases    []jsonAlias     `json:"aliases,omitempty"`
	Attrs      jsonAttrs       `json:"attrs,omitempty"`
}

type jsonField struct {
	Name  string    `json:"name"`
	Type  jsonType  `json:"type"`
	Attrs jsonAttrs `json:"attrs,omitempty"`
}

type jsonDto struct {
	Name   string      `json:"name"`
	Fields []jsonField `json:"fields,omitempty"`
	Attrs  jsonAttrs   `json:"attrs,omitempty"`
}

type jsonRpc struct {
	Name   string      `json:"name"`
	Params []jsonField `json:"params,omitempty"`
	Return *jsonType   `json:"return,omitempty"`
	Attrs  jsonAttrs   `json:"attrs,omitempty"`
}

type jsonEnumValue struct {
	Name   string    `json:"name"`
	Number int32     `json:"number"`
	Attrs  jsonAttrs `json:"attrs,omitempty"`
}

type jsonEnum struct {
	Name   string          `json:"name"`
	Values []jsonEnumValue `json:"values,omitempty"`
	Attrs  jsonAttrs       `json:"attrs,omitempty"`
}

type jsonAlias struct {
	Name   string    `json:"name"`
	Target jsonType  `json:"target"`
	Attrs  jsonAttrs `json:"attrs,omitempty"`
}

type jsonType struct {
	Primitive *string        `json:"primitive,omitempty"`
	Array     *jsonType      `json:"array,omitempty"`
	Map       *jsonMapType   `json:"map,omitempty"`
	Optional  *jsonType      `json:"optional,omitempty"`
	Api       *string        `json:"api,omitempty"`
	User      *jsonUserType  `json:"user,omitempty"`
	Fn        *jsonFuncType  `json:"fn,omitempty"`
}

type jsonMapType struct {
	Key   jsonType `json:"key"`
	Value jsonType `json:"value"`
}

type jsonUserType struct {
	Name    string `json:"name"`
	Payload string `json:"payload,omitempty"`
}

type jsonFuncType struct {
	Params []jsonType `json:"params,omitempty"`
	Ret    *jsonType  `json:"ret,omitempty"`
}

type jsonAttrs struct {
	Comments  []string                   `json:"comments,omitempty"`
	UserAttrs map[string]json.RawMessage `json:"user_attrs,omitempty"`
}

var primitiveNames = map[string]model.PrimitiveKind{
	"bool": model.Bool,
	"i8": model.I8, "i16": model.I16, "i32": model.I32, "i64": model.I64, "i128": model.I128, "isize": model.IMachine,
	"u8": model.U8, "u16": model.U16, "u32": model.U32, "u64": model.U64, "u128": model.U128, "usize": model.UMachine,
	"f32": model.F32, "f64": model.F64,
	"string": model.String, "bytes": model.Bytes,
}

func (t jsonType) toTypeRef() (model.TypeRef, error) {
	switch {
	case t.Primitive != nil:
		k, ok := primitiveNames[*t.Primitive]
		if !ok {
			return model.TypeRef{}, fmt.Errorf("jsonidl: unknown primitive %q", *t.Primitive)
		}
		return model.Primitive(k), nil
	case t.Array != nil:
		elem, err := t.Array.toTypeRef()
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.Array(elem), nil
	case t.Optional != nil:
		elem, err := t.Optional.toTypeRef()
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.Optional(elem), nil
	case t.Map != nil:
		k, err := t.Map.Key.toTypeRef()
		if err != nil {
			return model.TypeRef{}, err
		}
		v, err := t.Map.Value.toTypeRef()
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.Map(k, v), nil
	case t.Api != nil:
		id, err := entity.Parse(*t.Api)
		if err != nil {
			return model.TypeRef{}, fmt.Errorf("jsonidl: bad api type reference %q: %w", *t.Api, err)
		}
		return model.ApiType(id), nil
	case t.User != nil:
		return model.User(t.User.Name, t.User.Payload), nil
	case t.Fn != nil:
		params := make([]model.TypeRef, len(t.Fn.Params))
		for i, p := range t.Fn.Params {
			q, err := p.toTypeRef()
			if err != nil {
				return model.TypeRef{}, err
			}
			params[i] = q
		}
		var ret *model.TypeRef
		if t.Fn.Ret != nil {
			r, err := t.Fn.Ret.toTypeRef()
			if err != nil {
				return model.TypeRef{}, err
			}
			ret = &r
		}
		return model.Function(params, ret), nil
	}
	return model.TypeRef{}, fmt.Errorf("jsonidl: empty type reference")
}

func (a jsonAttrs) toAttributes() (model.Attributes, error) {
	out := model.Attributes{Comments: append([]string(nil), a.Comments...)}
	for name, raw := range a.UserAttrs {
		ua, err := decodeUserAttr(name, raw)
		if err != nil {
			return model.Attributes{}, err
		}
		out.UserAttrs = append(out.UserAttrs, ua)
	}
	return out, nil
}

func decodeUserAttr(name string, raw json.RawMessage) (model.UserAttribute, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString != "flag" {
			return model.UserAttribute{}, fmt.Errorf("jsonidl: user attribute %q: string value must be \"flag\", got %q", name, asString)
		}
		return model.UserAttribute{Name: name, Kind: model.AttrFlag}, nil
	}
	var asList []string
	if err := json.Unmarshal(raw, &asList); err == nil {
		return model.UserAttribute{Name: name, Kind: model.AttrList, List: asList}, nil
	}
	var asMap map[string]string
	if err := json.Unmarshal(raw, &asMap); err == nil {
		return model.UserAttribute{Name: name, Kind: model.AttrMap, Map: asMap}, nil
	}
	return model.UserAttribute{}, fmt.Errorf("jsonidl: user attribute %q: unrecognized value shape", name)
}

func (f jsonField) toField() (model.Field, error) {
	ty, err := f.Type.toTypeRef()
	if err != nil {
		return model.Field{}, err
	}
	attrs, err := f.Attrs.toAttributes()
	if err != nil {
		return model.Field{}, err
	}
	return model.Field{Name: f.Name, Type: ty, Attrs: attrs}, nil
}

func (d jsonDto) toDto() (*model.Dto, error) {
	attrs, err := d.Attrs.toAttributes()
	if err != nil {
		return nil, err
	}
	out := &model.Dto{Name: d.Name, Attrs: attrs}
	for _, jf := range d.Fields {
		f, err := jf.toField()
		if err != nil {
			return nil, err
		}
		out.Fields = append(out.Fields, f)
	}
	return out, nil
}

func (r jsonRpc) toRpc() (*model.Rpc, error) {
	attrs, err := r.Attrs.toAttributes()
	if err != nil {
		return nil, err
	}
	out := &model.Rpc{Name: r.Name, Attrs: attrs}
	for _, jp := range r.Params {
		p, err := jp.toField()
		if err != nil {
			return nil, err
		}
		out.Params = append(out.Params, model.Param{Name: p.Name, Type: p.Type, Attrs: p.Attrs})
	}
	if r.Return != nil {
		ret, err := r.Return.toTypeRef()
		if err != nil {
			return nil, err
		}
		out.ReturnType = &ret
	}
	return out, nil
}

func (e jsonEnum) toEnum() (*model.Enum, error) {
	attrs, err := e.Attrs.toAttributes()
	if err != nil {
		return nil, err
	}
	out := &model.Enum{Name: e.Name, Attrs: attrs}
	for _, jv := range e.Values {
		vattrs, err := jv.Attrs.toAttributes()
		if err != nil {
			return nil, err
		}
		out.Values = append(out.Values, model.EnumValue{Name: jv.Name, Number: jv.Number, Attrs: vattrs})
	}
	return out, nil
}

func (a jsonAlias) toAlias() (*model.TypeAlias, error) {
	attrs, err := a.Attrs.toAttributes()
	if err != nil {
		return nil, err
	}
	target, err := a.Target.toTypeRef()
	if err != nil {
		return nil, err
	}
	return &model.TypeAlias{Name: a.Name, Target: target, Attrs: attrs}, nil
}

func (n jsonNamespace) toNamespace() (*model.Namespace, error) {
	attrs, err := n.Attrs.toAttributes()
	if err != nil {
		return nil, err
	}
	out := &model.Namespace{Name: n.Name, Attrs: attrs}
	for _, jd := range n.Dtos {
		d, err := jd.toDto()
		if err != nil {
			return nil, err
		}
		out.Dtos = append(out.Dtos, d)
	}
	for _, jr := range n.Rpcs {
		r, err := jr.toRpc()
		if err != nil {
			return nil, err
		}
		out.Rpcs = append(out.Rpcs, r)
	}
	for _, je := range n.Enums {
		e, err := je.toEnum()
		if err != nil {
			return nil, err
		}
		out.Enums = append(out.Enums, e)
	}
	for _, ja := range n.Aliases {
		a, err := ja.toAlias()
		if err != nil {
			return nil, err
		}
		out.Aliases = append(out.Aliases, a)
	}
	for _, jn := range n.Namespaces {
		child, err := jn.toNamespace()
		if err != nil {
			return nil, err
		}
		out.Namespaces = append(out.Namespaces, child)
	}
	return out, nil
}
