// Package validate checks a merged model's invariants and rewrites every
// type reference within it to a fully-qualified form.
package validate

import (
	"sort"

	"apyxlgo/entity"
	"apyxlgo/model"
)

// Config carries the inputs a validation run needs beyond the model itself.
type Config struct {
	// UserTypes is the set of semantic user-type names declared by the
	// builder config (build.Config.UserTypes, collapsed to names).
	UserTypes map[string]bool
}

// Validate runs the fixed pass sequence over m's root and returns every
// accumulated error. All passes run regardless of earlier failures so a
// caller sees every problem in one invocation. An empty return means m is
// fully valid and every ApiType reference in it is now absolute.
func Validate(m *model.Model, cfg Config) []Error {
	var errs []Error

	errs = append(errs, shapePass(m.Root, entity.Root())...)
	errs = append(errs, duplicatesPass(m.Root, entity.Root())...)
	stampingPass(m.Root, entity.Root())
	errs = append(errs, typeQualificationPass(m, cfg)...)
	errs = append(errs, aliasAcyclicityPass(m)...)

	return errs
}

// shapePass checks identifier-grammar validity, non-empty names, enum-value
// uniqueness within each enum, and field/param name uniqueness within each
// Dto/Rpc.
func shapePass(ns *model.Namespace, id entity.ID) []Error {
	var errs []Error
	check := func(name string, childID entity.ID) {
		if !entity.IsValidName(name) {
			errs = append(errs, Error{Kind: InvalidName, EntityID: childID.String(), Name: name})
		}
	}

	for _, d := range ns.Dtos {
		did := id.Child(safeName(d.Name), entity.Dto)
		check(d.Name, did)
		seen := map[string]bool{}
		for _, f := range d.Fields {
			check(f.Name, did.Child(safeName(f.Name), entity.Field))
			if seen[f.Name] {
				errs = append(errs, Error{Kind: DuplicateDefinition, EntityID: did.Child(safeName(f.Name), entity.Field).String()})
			}
			seen[f.Name] = true
		}
	}
	for _, r := range ns.Rpcs {
		rid := id.Child(safeName(r.Name), entity.Rpc)
		check(r.Name, rid)
		seen := map[string]bool{}
		for _, p := range r.Params {
			check(p.Name, rid.Child(safeName(p.Name), entity.Param))
			if seen[p.Name] {
				errs = append(errs, Error{Kind: DuplicateDefinition, EntityID: rid.Child(safeName(p.Name), entity.Param).String()})
			}
			seen[p.Name] = true
		}
	}
	for _, e := range ns.Enums {
		eid := id.Child(safeName(e.Name), entity.Enum)
		check(e.Name, eid)
		seenVal := map[int32]bool{}
		for _, v := range e.Values {
			check(v.Name, eid)
			if seenVal[v.Number] {
				errs = append(errs, Error{Kind: EnumValueConflict, EntityID: eid.String(), Value: v.Number})
			}
			seenVal[v.Number] = true
		}
	}
	for _, a := range ns.Aliases {
		check(a.Name, id.Child(safeName(a.Name), entity.TypeAlias))
	}
	for _, child := range ns.Namespaces {
		check(child.Name, id.Child(safeName(child.Name), entity.Namespace))
		errs = append(errs, shapePass(child, id.Child(safeName(child.Name), entity.Namespace))...)
	}
	return errs
}

// safeName guards Child against panicking on an already-invalid name
// during the shape pass itself; it substitutes a placeholder so the walk
// can keep going and still locate nested problems.
func safeName(name string) string {
	if entity.IsValidName(name) {
		return name
	}
	return "_invalid_"
}

// duplicatesPass checks that within each namespace, no two non-namespace
// children share a name regardless of kind.
func duplicatesPass(ns *model.Namespace, id entity.ID) []Error {
	var errs []Error
	counts := map[string]int{}
	ns.EachChild(func(c model.Child) bool {
		if c.Namespace != nil {
			return true
		}
		counts[c.Name()]++
		return true
	})
	reported := map[string]bool{}
	ns.EachChild(func(c model.Child) bool {
		if c.Namespace != nil {
			return true
		}
		name := c.Name()
		if counts[name] > 1 && !reported[name] {
			reported[name] = true
			errs = append(errs, Error{Kind: DuplicateDefinition, EntityID: id.Child(safeName(name), c.Kind()).String()})
		}
		return true
	})
	for _, child := range ns.Namespaces {
		errs = append(errs, duplicatesPass(child, id.Child(safeName(child.Name), entity.Namespace))...)
	}
	return errs
}

// stampingPass assigns every entity's Attributes.EntityID to its absolute
// identifier, before type qualification runs.
func stampingPass(ns *model.Namespace, id entity.ID) {
	stamp := func(a *model.Attributes, eid entity.ID) {
		cp := eid
		a.EntityID = &cp
	}
	stamp(&ns.Attrs, id)
	for _, d := range ns.Dtos {
		did := id.Child(safeName(d.Name), entity.Dto)
		stamp(&d.Attrs, did)
		for i := range d.Fields {
			stamp(&d.Fields[i].Attrs, did.Child(safeName(d.Fields[i].Name), entity.Field))
		}
	}
	for _, r := range ns.Rpcs {
		rid := id.Child(safeName(r.Name), entity.Rpc)
		stamp(&r.Attrs, rid)
		for i := range r.Params {
			stamp(&r.Params[i].Attrs, rid.Child(safeName(r.Params[i].Name), entity.Param))
		}
	}
	for _, e := range ns.Enums {
		eid := id.Child(safeName(e.Name), entity.Enum)
		stamp(&e.Attrs, eid)
	}
	for _, a := range ns.Aliases {
		stamp(&a.Attrs, id.Child(safeName(a.Name), entity.TypeAlias))
	}
	for _, child := range ns.Namespaces {
		stampingPass(child, id.Child(safeName(child.Name), entity.Namespace))
	}
}

// typeQualificationPass rewrites every type reference at a field/param/
// return/alias-target site to its fully-qualified form.
func typeQualificationPass(m *model.Model, cfg Config) []Error {
	var errs []Error
	qualify := func(t model.TypeRef, from entity.ID) model.TypeRef {
		q, err := t.Qualify(m, from, cfg.UserTypes)
		if err != nil {
			errs = append(errs, Error{
				Kind:     InvalidType,
				EntityID: from.String(),
				TypeRef:  t.String(),
				Reason:   err.Error(),
			})
			return t
		}
		return q
	}

	var walk func(ns *model.Namespace, id entity.ID)
	walk = func(ns *model.Namespace, id entity.ID) {
		for _, d := range ns.Dtos {
			did := id.Child(safeName(d.Name), entity.Dto)
			for i := range d.Fields {
				d.Fields[i].Type = qualify(d.Fields[i].Type, did)
			}
		}
		for _, r := range ns.Rpcs {
			rid := id.Child(safeName(r.Name), entity.Rpc)
			for i := range r.Params {
				r.Params[i].Type = qualify(r.Params[i].Type, rid)
			}
			if r.ReturnType != nil {
				q := qualify(*r.ReturnType, rid)
				r.ReturnType = &q
			}
		}
		for _, a := range ns.Aliases {
			aid := id.Child(safeName(a.Name), entity.TypeAlias)
			a.Target = qualify(a.Target, aid)
		}
		for _, child := range ns.Namespaces {
			walk(child, id.Child(safeName(child.Name), entity.Namespace))
		}
	}
	walk(m.Root, entity.Root())
	return errs
}

// aliasAcyclicityPass builds the TypeAlias -> TypeAlias edge graph and
// reports one AliasCycle error per cycle found.
func aliasAcyclicityPass(m *model.Model) []Error {
	type node struct {
		id   entity.ID
		next *entity.ID
	}
	var nodes []node
	var collect func(ns *model.Namespace, id entity.ID)
	collect = func(ns *model.Namespace, id entity.ID) {
		for _, a := range ns.Aliases {
			aid := id.Child(safeName(a.Name), entity.TypeAlias)
			n := node{id: aid}
			if a.Target.Tag() == model.TagApiType {
				next := a.Target.ApiID()
				if _, ok := m.FindTypeAlias(next); ok {
					n.next = &next
				}
			}
			nodes = append(nodes, n)
		}
		for _, child := range ns.Namespaces {
			collect(child, id.Child(safeName(child.Name), entity.Namespace))
		}
	}
	collect(m.Root, entity.Root())

	byID := map[string]*entity.ID{}
	for i := range nodes {
		n := nodes[i]
		byID[n.id.String()] = n.next
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[string]int{}
	var errs []Error
	var path []string

	var visit func(key string)
	visit = func(key string) {
		color[key] = gray
		path = append(path, key)
		if next := byID[key]; next != nil {
			nk := next.String()
			switch color[nk] {
			case white:
				visit(nk)
			case gray:
				cycle := cycleFrom(path, nk)
				errs = append(errs, Error{Kind: AliasCycle, Cycle: cycle})
			}
		}
		path = path[:len(path)-1]
		color[key] = black
	}

	keys := make([]string, 0, len(nodes))
	for _, n := range nodes {
		keys = append(keys, n.id.String())
	}
	sort.Strings(keys)
	for _, k := range keys {
		if color[k] == white {
			visit(k)
		}
	}
	return errs
}

// cycleFrom extracts the sub-slice of path starting at the first
// occurrence of target, which is the cycle itself.
func cycleFrom(path []string, target string) []string {
	for i, p := range path {
		if p == target {
			return append([]string(nil), path[i:]...)
		}
	}
	return []string{target}
}
