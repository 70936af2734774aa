// Package view exposes the immutable model through cloneable, per-consumer
// transform chains that reshape what a generator sees without mutating the
// shared model.
package view

import (
	"apyxlgo/entity"
	"apyxlgo/model"
)

// View is a read-only projection rooted at a namespace within m, reshaped
// by an ordered Transforms chain. Views never mutate m; every rewrite hook
// produces a new value handed to the caller.
type View struct {
	m          *model.Model
	root       *model.Namespace
	rootID     entity.ID
	transforms Transforms
}

// New returns a View over m's entire tree with no transforms applied.
func New(m *model.Model) View {
	return View{m: m, root: m.Root, rootID: entity.Root()}
}

// WithTransforms returns a copy of v with chain appended after v's own
// transforms (later transforms observe earlier transforms' output).
func (v View) WithTransforms(chain Transforms) View {
	merged := v.transforms.Clone()
	merged.Namespace = append(merged.Namespace, chain.Namespace...)
	merged.Dto = append(merged.Dto, chain.Dto...)
	merged.Rpc = append(merged.Rpc, chain.Rpc...)
	merged.Enum = append(merged.Enum, chain.Enum...)
	merged.Field = append(merged.Field, chain.Field...)
	merged.TypeAlias = append(merged.TypeAlias, chain.TypeAlias...)
	merged.Attributes = append(merged.Attributes, chain.Attributes...)
	v.transforms = merged
	return v
}

// Clone duplicates v's transform chain and model borrow; the underlying
// model is never copied, so two clones can be handed to two generators
// that each append their own transforms independently.
func (v View) Clone() View {
	v.transforms = v.transforms.Clone()
	return v
}

// SubView restricts v to the sub-tree rooted at id, keeping the same
// transform chain. id must name a namespace; for any other id (a Dto, Rpc,
// Enum or alias) or an id that does not resolve, it returns false.
func (v View) SubView(id entity.ID) (View, bool) {
	ns, ok := v.m.FindNamespace(id)
	if !ok {
		return View{}, false
	}
	v.root = ns
	v.rootID = id
	return v, true
}

// Name returns the (possibly renamed) name of v's root namespace.
func (v View) Name() string { return v.transforms.renameNamespace(v.root.Name) }

// RootID returns the absolute id v is rooted at.
func (v View) RootID() entity.ID { return v.rootID }

// EachNamespace visits each direct child namespace surviving the filter
// chain, yielding a sub-view rooted there with the same transform chain.
func (v View) EachNamespace(fn func(View) bool) {
	for _, ns := range v.root.Namespaces {
		if !v.transforms.filterNamespace(ns) {
			continue
		}
		child := v
		child.root = ns
		child.rootID = v.rootID.Child(ns.Name, entity.Namespace)
		if !fn(child) {
			return
		}
	}
}

// DtoView is the read-only, transformed projection of a model.Dto.
type DtoView struct {
	Name   string
	Fields []FieldView
	Attrs  model.Attributes
}

// FieldView is the read-only, transformed projection of a model.Field.
type FieldView struct {
	Name string
	Type model.TypeRef
	Attrs model.Attributes
}

// EachDto visits each direct child Dto surviving the filter chain.
func (v View) EachDto(fn func(DtoView) bool) {
	for _, d := range v.root.Dtos {
		if !v.transforms.filterDto(d) {
			continue
		}
		fields := v.transforms.orderFields(append([]model.Field(nil), d.Fields...))
		fvs := make([]FieldView, 0, len(fields))
		for _, f := range fields {
			if !v.transforms.filterField(&f) {
				continue
			}
			fvs = append(fvs, FieldView{
				Name:  v.transforms.renameField(f.Name),
				Type:  v.transforms.rewriteFieldType(f.Type),
				Attrs: v.transforms.rewriteAttrs(f.Attrs.Clone()),
			})
		}
		if !fn(DtoView{
			Name:   v.transforms.renameDto(d.Name),
			Fields: fvs,
			Attrs:  v.transforms.rewriteAttrs(d.Attrs.Clone()),
		}) {
			return
		}
	}
}

// RpcView is the read-only, transformed projection of a model.Rpc.
type RpcView struct {
	Name       string
	Params     []FieldView
	ReturnType *model.TypeRef
	Attrs      model.Attributes
}

// EachRpc visits each direct child Rpc surviving the filter chain.
func (v View) EachRpc(fn func(RpcView) bool) {
	for _, r := range v.root.Rpcs {
		if !v.transforms.filterRpc(r) {
			continue
		}
		pvs := make([]FieldView, 0, len(r.Params))
		for _, p := range r.Params {
			pvs = append(pvs, FieldView{
				Name:  v.transforms.renameField(p.Name),
				Type:  v.transforms.rewriteFieldType(p.Type),
				Attrs: v.transforms.rewriteAttrs(p.Attrs.Clone()),
			})
		}
		var ret *model.TypeRef
		if r.ReturnType != nil {
			rt := v.transforms.rewriteFieldType(*r.ReturnType)
			ret = &rt
		}
		if !fn(RpcView{
			Name:       v.transforms.renameRpc(r.Name),
			Params:     pvs,
			ReturnType: ret,
			Attrs:      v.transforms.rewriteAttrs(r.Attrs.Clone()),
		}) {
			return
		}
	}
}

// EnumView is the read-only, transformed projection of a model.Enum.
type EnumView struct {
	Name   string
	Values []model.EnumValue
	Attrs  model.Attributes
}

// EachEnum visits each direct child Enum surviving the filter chain.
func (v View) EachEnum(fn func(EnumView) bool) {
	for _, e := range v.root.Enums {
		if !v.transforms.filterEnum(e) {
			continue
		}
		if !fn(EnumView{
			Name:   v.transforms.renameEnum(e.Name),
			Values: append([]model.EnumValue(nil), e.Values...),
			Attrs:  v.transforms.rewriteAttrs(e.Attrs.Clone()),
		}) {
			return
		}
	}
}

// AliasView is the read-only, transformed projection of a model.TypeAlias.
type AliasView struct {
	Name   string
	Target model.TypeRef
	Attrs  model.Attributes
}

// EachAlias visits each direct child TypeAlias surviving the filter chain.
func (v View) EachAlias(fn func(AliasView) bool) {
	for _, a := range v.root.Aliases {
		if !v.transforms.filterAlias(a) {
			continue
		}
		if !fn(AliasView{
			Name:   v.transforms.renameAlias(a.Name),
			Target: v.transforms.rewriteFieldType(a.Target),
			Attrs:  v.transforms.rewriteAttrs(a.Attrs.Clone()),
		}) {
			return
		}
	}
}

// ChunkedIter partitions v into one sub-view per chunk tag observed among
// v's descendants, each exposing only the entities stamped with that tag
// plus the namespace skeleton needed to address them.
func (v View) ChunkedIter() map[string]View {
	tags := map[string]bool{}
	collectTags(v.root, tags)

	out := make(map[string]View, len(tags))
	for tag := range tags {
		cv := v
		cv.transforms = v.transforms.Clone()
		cv.root = pruneToChunk(v.root, tag)
		out[tag] = cv
	}
	return out
}

func collectTags(ns *model.Namespace, into map[string]bool) {
	for _, tag := range ns.ChunkTags() {
		into[tag] = true
	}
	for _, child := range ns.Namespaces {
		collectTags(child, into)
	}
}

func pruneToChunk(ns *model.Namespace, tag string) *model.Namespace {
	out := &model.Namespace{Name: ns.Name, Attrs: ns.Attrs}
	for _, d := range ns.Dtos {
		if d.Attrs.ChunkTag == tag {
			out.Dtos = append(out.Dtos, d)
		}
	}
	for _, r := range ns.Rpcs {
		if r.Attrs.ChunkTag == tag {
			out.Rpcs = append(out.Rpcs, r)
		}
	}
	for _, e := range ns.Enums {
		if e.Attrs.ChunkTag == tag {
			out.Enums = append(out.Enums, e)
		}
	}
	for _, a := range ns.Aliases {
		if a.Attrs.ChunkTag == tag {
			out.Aliases = append(out.Aliases, a)
		}
	}
	for _, child := range ns.Namespaces {
		pruned := pruneToChunk(child, tag)
		if len(pruned.Dtos)+len(pruned.Rpcs)+len(pruned.Enums)+len(pruned.Aliases)+len(pruned.Namespaces) > 0 {
			out.Namespaces = append(out.Namespaces, pruned)
		}
	}
	return out
}

