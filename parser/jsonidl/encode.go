package jsonidl

import (
	"encoding/json"
	"fmt"

	"apyxlgo/model"
)

// Encode renders ns back into this package's JSON document shape. It is
// the inverse of Parse's decoding step, used by the round-trip tests that
// check the demo parser and the model agree on structure.
func Encode(ns *model.Namespace) ([]byte, error) {
	doc, err := fromNamespace(ns)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

var primitiveText = func() map[model.PrimitiveKind]string {
	m := make(map[model.PrimitiveKind]string, len(primitiveNames))
	for name, k := range primitiveNames {
		m[k] = name
	}
	return m
}()

func fromTypeRef(t model.TypeRef) (jsonType, error) {
	switch t.Tag() {
	case model.TagPrimitive:
		k, _ := t.PrimitiveKind()
		name, ok := primitiveText[k]
		if !ok {
			return jsonType{}, fmt.Errorf("jsonidl: unknown primitive kind %v", k)
		}
		return jsonType{Primitive: &name}, nil
	case model.TagArray:
		elem, err := fromTypeRef(*t.Elem())
		if err != nil {
			return jsonType{}, err
		}
		return jsonType{Array: &elem}, nil
	case model.TagOptional:
		elem, err := fromTypeRef(*t.Elem())
		if err != nil {
			return jsonType{}, err
		}
		return jsonType{Optional: &elem}, nil
	case model.TagMap:
		k, v := t.KeyValue()
		jk, err := fromTypeRef(*k)
		if err != nil {
			return jsonType{}, err
		}
		jv, err := fromTypeRef(*v)
		if err != nil {
			return jsonType{}, err
		}
		return jsonType{Map: &jsonMapType{Key: jk, Value: jv}}, nil
	case model.TagApiType:
		s := t.ApiID().String()
		return jsonType{Api: &s}, nil
	case model.TagUser:
		name, payload := t.User()
		return jsonType{User: &jsonUserType{Name: name, Payload: payload}}, nil
	case model.TagFunction:
		params, ret := t.FuncSig()
		jparams := make([]jsonType, len(params))
		for i, p := range params {
			jp, err := fromTypeRef(p)
			if err != nil {
				return jsonType{}, err
			}
			jparams[i] = jp
		}
		var jret *jsonType
		if ret != nil {
			r, err := fromTypeRef(*ret)
			if err != nil {
				return jsonType{}, err
			}
			jret = &r
		}
		return jsonType{Fn: &jsonFuncType{Params: jparams, Ret: jret}}, nil
	}
	return jsonType{}, fmt.Errorf("jsonidl: unknown type tag")
}

func fromAttributes(a model.Attributes) (jsonAttrs, error) {
	out := jsonAttrs{Comments: a.Comments}
	for _, ua := range a.UserAttrs {
		raw, err := encodeUserAttr(ua)
		if err != nil {
			return jsonAttrs{}, err
		}
		if out.UserAttrs == nil {
			out.UserAttrs = map[string]json.RawMessage{}
		}
		out.UserAttrs[ua.Name] = raw
	}
	return out, nil
}

func encodeUserAttr(ua model.UserAttribute) (json.RawMessage, error) {
	switch ua.Kind {
	case model.AttrFlag:
		return json.Marshal("flag")
	case model.AttrList:
		return json.Marshal(ua.List)
	case model.AttrMap:
		return json.Marshal(ua.Map)
	}
	return nil, fmt.Errorf("jsonidl: unknown user attribute kind for %q", ua.Name)
}

func fromField(f model.Field) (jsonField, error) {
	ty, err := fromTypeRef(f.Type)
	if err != nil {
		return jsonField{}, err
	}
	attrs, err := fromAttributes(f.Attrs)
	if err != nil {
		return jsonField{}, err
	}
	return jsonField{Name: f.Name, Type: ty, Attrs: attrs}, nil
}

func fromDto(d *model.Dto) (jsonDto, error) {
	attrs, err := fromAttributes(d.Attrs)
	if err != nil {
		return jsonDto{}, err
	}
	out := jsonDto{Name: d.Name, Attrs: attrs}
	for _, f := range d.Fields {
		jf, err := fromField(f)
		if err != nil {
			return jsonDto{}, err
		}
		out.Fields = append(out.Fields, jf)
	}
	return out, nil
}

func fromRpc(r *model.Rpc) (jsonRpc, error) {
	attrs, err := fromAttributes(r.Attrs)
	if err != nil {
		return jsonRpc{}, err
	}
	out := jsonRpc{Name: r.Name, Attrs: attrs}
	for _, p := range r.Params {
		jp, err := fromField(model.Field{Name: p.Name, Type: p.Type, Attrs: p.Attrs})
		if err != nil {
			return jsonRpc{}, err
		}
		out.Params = append(out.Params, jp)
	}
	if r.ReturnType != nil {
		ret, err := fromTypeRef(*r.ReturnType)
		if err != nil {
			return jsonRpc{}, err
		}
		out.Return = &ret
	}
	return out, nil
}

func fromEnum(e *model.Enum) (jsonEnum, error) {
	attrs, err := fromAttributes(e.Attrs)
	if err != nil {
		return jsonEnum{}, err
	}
	out := jsonEnum{Name: e.Name, Attrs: attrs}
	for _, v := range e.Values {
		vattrs, err := fromAttributes(v.Attrs)
		if err != nil {
			return jsonEnum{}, err
		}
		out.Values = append(out.Values, jsonEnumValue{Name: v.Name, Number: v.Number, Attrs: vattrs})
	}
	return out, nil
}

func fromAlias(a *model.TypeAlias) (jsonAlias, error) {
	attrs, err := fromAttributes(a.Attrs)
	if err != nil {
		return jsonAlias{}, err
	}
	target, err := fromTypeRef(a.Target)
	if err != nil {
		return jsonAlias{}, err
	}
	return jsonAlias{Name: a.Name, Target: target, Attrs: attrs}, nil
}

func fromNamespace(ns *model.Namespace) (jsonNamespace, error) {
	attrs, err := fromAttributes(ns.Attrs)
	if err != nil {
		return jsonNamespace{}, err
	}
	out := jsonNamespace{Name: ns.Name, Attrs: attrs}
	for _, d := range ns.Dtos {
		jd, err := fromDto(d)
		if err != nil {
			return jsonNamespace{}, err
		}
		out.Dtos = append(out.Dtos, jd)
	}
	for _, r := range ns.Rpcs {
		jr, err := fromRpc(r)
		if err != nil {
			return jsonNamespace{}, err
		}
		out.Rpcs = append(out.Rpcs, jr)
	}
	for _, e := range ns.Enums {
		je, err := fromEnum(e)
		if err != nil {
			return jsonNamespace{}, err
		}
		out.Enums = append(out.Enums, je)
	}
	for _, a := range ns.Aliases {
		ja, err := fromAlias(a)
		if err != nil {
			return jsonNamespace{}, err
		}
		out.Aliases = append(out.Aliases, ja)
	}
	for _, child := range ns.Namespaces {
		jn, err := fromNamespace(child)
		if err != nil {
			return jsonNamespace{}, err
		}
		out.Namespaces = append(out.Namespaces, jn)
	}
	return out, nil
}
