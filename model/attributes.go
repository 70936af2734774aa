package model

import "apyxlgo/entity"

// UserAttributeKind tags the shape of a single user attribute.
type UserAttributeKind int

const (
	// AttrFlag is a bare name with no payload, e.g. `deprecated`.
	AttrFlag UserAttributeKind = iota
	// AttrList is a name followed by a positional list of tokens,
	// e.g. `validate(required, min=1)` rendered as tokens ["required", "min=1"].
	AttrList
	// AttrMap is a name followed by a key/value map of tokens,
	// e.g. `http(method=GET, path=/users)`.
	AttrMap
)

// UserAttribute is a single free-form annotation carried on an entity. It
// round-trips verbatim through the model; the core never interprets it.
type UserAttribute struct {
	Name string
	Kind UserAttributeKind
	List []string
	Map  map[string]string
}

// Flag reports whether a is a bare, payload-less attribute.
func (a UserAttribute) Flag() bool { return a.Kind == AttrFlag }

// Attributes is carried by every entity in the model: namespaces, Dtos,
// Rpcs, Enums, TypeAliases, fields, params, and enum values.
type Attributes struct {
	UserAttrs []UserAttribute
	Comments  []string

	// EntityID is filled in by the validator's stamping pass, which runs
	// whether or not validation reports errors. It is nil until that pass
	// has run.
	EntityID *entity.ID

	// ChunkTag is filled in by the Builder for every non-namespace child it
	// merges. Namespaces have no single chunk origin and leave this empty.
	ChunkTag string
}

// Clone returns a deep copy of a, safe to hand to a second owner (used by
// the view layer's AttributesTransform rewrite hook, which must never
// mutate the shared model).
func (a Attributes) Clone() Attributes {
	out := Attributes{ChunkTag: a.ChunkTag}
	if len(a.UserAttrs) > 0 {
		out.UserAttrs = make([]UserAttribute, len(a.UserAttrs))
		for i, ua := range a.UserAttrs {
			out.UserAttrs[i] = ua.clone()
		}
	}
	if len(a.Comments) > 0 {
		out.Comments = append([]string(nil), a.Comments...)
	}
	if a.EntityID != nil {
		id := *a.EntityID
		out.EntityID = &id
	}
	return out
}

func (a UserAttribute) clone() UserAttribute {
	out := UserAttribute{Name: a.Name, Kind: a.Kind}
	if a.List != nil {
		out.List = append([]string(nil), a.List...)
	}
	if a.Map != nil {
		out.Map = make(map[string]string, len(a.Map))
		for k, v := range a.Map {
			out.Map[k] = v
		}
	}
	return out
}

// UserAttr looks up the first user attribute named name.
func (a Attributes) UserAttr(name string) (UserAttribute, bool) {
	for _, ua := range a.UserAttrs {
		if ua.Name == name {
			return ua, true
		}
	}
	return UserAttribute{}, false
}
