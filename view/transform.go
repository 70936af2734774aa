package view

import "apyxlgo/model"

// NamespaceTransform reshapes a namespace as a view renders it.
type NamespaceTransform interface {
	Filter(ns *model.Namespace) bool
	Rename(name string) string
}

// DtoTransform reshapes a Dto as a view renders it.
type DtoTransform interface {
	Filter(d *model.Dto) bool
	Rename(name string) string
	// FieldOrder returns a reordering of fields (by original index);
	// implementations that don't care about order return fields unchanged.
	FieldOrder(fields []model.Field) []model.Field
}

// RpcTransform reshapes an Rpc as a view renders it.
type RpcTransform interface {
	Filter(r *model.Rpc) bool
	Rename(name string) string
}

// EnumTransform reshapes an Enum as a view renders it.
type EnumTransform interface {
	Filter(e *model.Enum) bool
	Rename(name string) string
}

// FieldTransform reshapes a single field as a view renders it.
type FieldTransform interface {
	Filter(f *model.Field) bool
	Rename(name string) string
	RewriteType(t model.TypeRef) model.TypeRef
}

// TypeAliasTransform reshapes a TypeAlias as a view renders it.
type TypeAliasTransform interface {
	Filter(a *model.TypeAlias) bool
	Rename(name string) string
}

// AttributesTransform reshapes an entity's Attributes as a view renders it.
type AttributesTransform interface {
	Rewrite(a model.Attributes) model.Attributes
}

// Transforms is the ordered chain of per-kind transforms a View applies.
// Chains apply in slice order: later transforms observe earlier
// transforms' output. The zero Transforms is the identity chain.
type Transforms struct {
	Namespace  []NamespaceTransform
	Dto        []DtoTransform
	Rpc        []RpcTransform
	Enum       []EnumTransform
	Field      []FieldTransform
	TypeAlias  []TypeAliasTransform
	Attributes []AttributesTransform
}

// Clone returns a shallow copy of t: the chain slices are duplicated (so
// appending to the clone doesn't affect the original) but the transform
// values themselves are shared, since they're treated as immutable.
func (t Transforms) Clone() Transforms {
	return Transforms{
		Namespace:  append([]NamespaceTransform(nil), t.Namespace...),
		Dto:        append([]DtoTransform(nil), t.Dto...),
		Rpc:        append([]RpcTransform(nil), t.Rpc...),
		Enum:       append([]EnumTransform(nil), t.Enum...),
		Field:      append([]FieldTransform(nil), t.Field...),
		TypeAlias:  append([]TypeAliasTransform(nil), t.TypeAlias...),
		Attributes: append([]AttributesTransform(nil), t.Attributes...),
	}
}

func (t Transforms) filterNamespace(ns *model.Namespace) bool {
	for _, tr := range t.Namespace {
		if !tr.Filter(ns) {
			return false
		}
	}
	return true
}

func (t Transforms) renameNamespace(name string) string {
	for _, tr := range t.Namespace {
		name = tr.Rename(name)
	}
	return name
}

func (t Transforms) filterDto(d *model.Dto) bool {
	for _, tr := range t.Dto {
		if !tr.Filter(d) {
			return false
		}
	}
	return true
}

func (t Transforms) renameDto(name string) string {
	for _, tr := range t.Dto {
		name = tr.Rename(name)
	}
	return name
}

func (t Transforms) orderFields(fields []model.Field) []model.Field {
	for _, tr := range t.Dto {
		fields = tr.FieldOrder(fields)
	}
	return fields
}

func (t Transforms) filterRpc(r *model.Rpc) bool {
	for _, tr := range t.Rpc {
		if !tr.Filter(r) {
			return false
		}
	}
	return true
}

func (t Transforms) renameRpc(name string) string {
	for _, tr := range t.Rpc {
		name = tr.Rename(name)
	}
	return name
}

func (t Transforms) filterEnum(e *model.Enum) bool {
	for _, tr := range t.Enum {
		if !tr.Filter(e) {
			return false
		}
	}
	return true
}

func (t Transforms) renameEnum(name string) string {
	for _, tr := range t.Enum {
		name = tr.Rename(name)
	}
	return name
}

func (t Transforms) filterField(f *model.Field) bool {
	for _, tr := range t.Field {
		if !tr.Filter(f) {
			return false
		}
	}
	return true
}

func (t Transforms) renameField(name string) string {
	for _, tr := range t.Field {
		name = tr.Rename(name)
	}
	return name
}

func (t Transforms) rewriteFieldType(ty model.TypeRef) model.TypeRef {
	for _, tr := range t.Field {
		ty = tr.RewriteType(ty)
	}
	return ty
}

func (t Transforms) filterAlias(a *model.TypeAlias) bool {
	for _, tr := range t.TypeAlias {
		if !tr.Filter(a) {
			return false
		}
	}
	return true
}

func (t Transforms) renameAlias(name string) string {
	for _, tr := range t.TypeAlias {
		name = tr.Rename(name)
	}
	return name
}

func (t Transforms) rewriteAttrs(a model.Attributes) model.Attributes {
	for _, tr := range t.Attributes {
		a = tr.Rewrite(a)
	}
	return a
}
