package model

import (
	"fmt"
	"strings"

	"apyxlgo/entity"
)

// PrimitiveKind enumerates the built-in scalar types.
type PrimitiveKind int

const (
	Bool PrimitiveKind = iota
	I8
	I16
	I32
	I64
	I128
	IMachine
	U8
	U16
	U32
	U64
	U128
	UMachine
	F32
	F64
	String
	Bytes
)

var primitiveNames = map[PrimitiveKind]string{
	Bool: "bool", I8: "i8", I16: "i16", I32: "i32", I64: "i64", I128: "i128", IMachine: "isize",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64", U128: "u128", UMachine: "usize",
	F32: "f32", F64: "f64", String: "string", Bytes: "bytes",
}

func (k PrimitiveKind) String() string {
	if s, ok := primitiveNames[k]; ok {
		return s
	}
	return "invalid"
}

// TypeRef is the tagged variant of every shape a type reference can take.
// Exactly one of the embedded accessors is meaningful at a time; callers
// should switch on Tag.
type TypeRef struct {
	tag typeTag

	primitive PrimitiveKind
	elem      *TypeRef // Array(T), Optional(T)
	key       *TypeRef // Map(K, V)
	value     *TypeRef
	apiID     entity.ID // ApiType
	userName  string    // User(name, payload)
	userData  string
	params    []TypeRef // Function(params, ret)
	ret       *TypeRef
}

type typeTag int

const (
	TagPrimitive typeTag = iota
	TagArray
	TagMap
	TagOptional
	TagApiType
	TagUser
	TagFunction
)

func (t TypeRef) Tag() typeTag { return t.tag }

func Primitive(k PrimitiveKind) TypeRef { return TypeRef{tag: TagPrimitive, primitive: k} }
func Array(elem TypeRef) TypeRef        { return TypeRef{tag: TagArray, elem: &elem} }
func Optional(elem TypeRef) TypeRef     { return TypeRef{tag: TagOptional, elem: &elem} }
func Map(key, value TypeRef) TypeRef    { return TypeRef{tag: TagMap, key: &key, value: &value} }
func ApiType(id entity.ID) TypeRef      { return TypeRef{tag: TagApiType, apiID: id} }
func User(name, payload string) TypeRef {
	return TypeRef{tag: TagUser, userName: name, userData: payload}
}
func Function(params []TypeRef, ret *TypeRef) TypeRef {
	return TypeRef{tag: TagFunction, params: append([]TypeRef(nil), params...), ret: ret}
}

// PrimitiveKind returns the primitive kind and true iff t is a Primitive.
func (t TypeRef) PrimitiveKind() (PrimitiveKind, bool) {
	if t.tag != TagPrimitive {
		return 0, false
	}
	return t.primitive, true
}

// Elem returns the element type of an Array or Optional, or nil.
func (t TypeRef) Elem() *TypeRef { return t.elem }

// KeyValue returns the key and value types of a Map, or (nil, nil).
func (t TypeRef) KeyValue() (*TypeRef, *TypeRef) { return t.key, t.value }

// ApiID returns the entity id of an ApiType reference, or the zero ID.
func (t TypeRef) ApiID() entity.ID {
	if t.tag != TagApiType {
		return entity.ID{}
	}
	return t.apiID
}

// User returns the name/payload of a User type reference.
func (t TypeRef) User() (name, payload string) { return t.userName, t.userData }

// FuncSig returns the params/return of a Function type reference.
func (t TypeRef) FuncSig() (params []TypeRef, ret *TypeRef) { return t.params, t.ret }

// Equal reports structural equality, descending into composite types.
func (t TypeRef) Equal(o TypeRef) bool {
	if t.tag != o.tag {
		return false
	}
	switch t.tag {
	case TagPrimitive:
		return t.primitive == o.primitive
	case TagArray, TagOptional:
		return t.elem.Equal(*o.elem)
	case TagMap:
		return t.key.Equal(*o.key) && t.value.Equal(*o.value)
	case TagApiType:
		return t.apiID.Equal(o.apiID)
	case TagUser:
		return t.userName == o.userName && t.userData == o.userData
	case TagFunction:
		if len(t.params) != len(o.params) {
			return false
		}
		for i := range t.params {
			if !t.params[i].Equal(o.params[i]) {
				return false
			}
		}
		if (t.ret == nil) != (o.ret == nil) {
			return false
		}
		return t.ret == nil || t.ret.Equal(*o.ret)
	}
	return false
}

// String renders a printable form, e.g. "array<optional<api:A.B>>".
func (t TypeRef) String() string {
	switch t.tag {
	case TagPrimitive:
		return t.primitive.String()
	case TagArray:
		return fmt.Sprintf("array<%s>", t.elem.String())
	case TagOptional:
		return fmt.Sprintf("optional<%s>", t.elem.String())
	case TagMap:
		return fmt.Sprintf("map<%s,%s>", t.key.String(), t.value.String())
	case TagApiType:
		return fmt.Sprintf("api:%s", t.apiID.String())
	case TagUser:
		if t.userData != "" {
			return fmt.Sprintf("user:%s(%s)", t.userName, t.userData)
		}
		return fmt.Sprintf("user:%s", t.userName)
	case TagFunction:
		parts := make([]string, len(t.params))
		for i, p := range t.params {
			parts[i] = p.String()
		}
		ret := "void"
		if t.ret != nil {
			ret = t.ret.String()
		}
		return fmt.Sprintf("fn(%s)->%s", strings.Join(parts, ","), ret)
	}
	return "invalid"
}

// Qualify replaces every contained ApiType(id) with ApiType(absoluteId)
// using m's relative lookup rooted at from. User references whose name is
// in userTypes are left untouched; a User reference whose name is not in
// userTypes produces an error. An unresolved ApiType produces an error
// naming the offending (still-relative) id; it is never reinterpreted as a
// User reference.
func (t TypeRef) Qualify(m *Model, from entity.ID, userTypes map[string]bool) (TypeRef, error) {
	switch t.tag {
	case TagApiType:
		abs, ok := m.FindQualifiedTypeRelative(from, t.apiID)
		if !ok {
			return TypeRef{}, fmt.Errorf("unresolved type reference %q from %q", t.apiID.String(), from.String())
		}
		return ApiType(abs), nil
	case TagArray:
		q, err := t.elem.Qualify(m, from, userTypes)
		if err != nil {
			return TypeRef{}, err
		}
		return Array(q), nil
	case TagOptional:
		q, err := t.elem.Qualify(m, from, userTypes)
		if err != nil {
			return TypeRef{}, err
		}
		return Optional(q), nil
	case TagMap:
		qk, err := t.key.Qualify(m, from, userTypes)
		if err != nil {
			return TypeRef{}, err
		}
		qv, err := t.value.Qualify(m, from, userTypes)
		if err != nil {
			return TypeRef{}, err
		}
		return Map(qk, qv), nil
	case TagFunction:
		params := make([]TypeRef, len(t.params))
		for i, p := range t.params {
			q, err := p.Qualify(m, from, userTypes)
			if err != nil {
				return TypeRef{}, err
			}
			params[i] = q
		}
		var ret *TypeRef
		if t.ret != nil {
			q, err := t.ret.Qualify(m, from, userTypes)
			if err != nil {
				return TypeRef{}, err
			}
			ret = &q
		}
		return Function(params, ret), nil
	case TagUser:
		// A User reference is already tagged as such by the parser; it is
		// accepted as-is when its name was declared in userTypes.
		if !userTypes[t.userName] {
			return TypeRef{}, fmt.Errorf("undeclared user type %q from %q", t.userName, from.String())
		}
		return t, nil
	default: // TagPrimitive
		return t, nil
	}
}
