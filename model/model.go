package model

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"apyxlgo/entity"
)

// relativeCacheSize bounds the memoization table used by
// FindQualifiedTypeRelative. Sized generously; a model with more distinct
// (from, ty) lookup pairs than this just pays occasional cache misses.
const relativeCacheSize = 4096

// Model is the root of a fully merged, and possibly validated, API tree. It
// wraps a single root Namespace plus the bookkeeping needed for qualified
// type lookups.
type Model struct {
	Root *Namespace

	// Validated is set by build.Builder.Build once validation succeeds;
	// validate.Validate itself does not set it. Callers must not
	// rely on EntityID/ChunkTag stamps, or on ResolveAliasTarget, before
	// this is true.
	Validated bool

	relCache *lru.Cache[relKey, relVal]
}

type relKey struct {
	from string
	ty   string
}

type relVal struct {
	id entity.ID
	ok bool
}

// New wraps root in a Model, ready for qualification lookups.
func New(root *Namespace) *Model {
	c, err := lru.New[relKey, relVal](relativeCacheSize)
	if err != nil {
		// Only possible if relativeCacheSize <= 0, which it never is.
		panic(fmt.Sprintf("model: cache init: %v", err))
	}
	return &Model{Root: root, relCache: c}
}

// resolved is what walkTo returns: the child found at the end of an
// absolute id, tagged with its kind.
type resolved struct {
	namespace *Namespace
	dto       *Dto
	rpc       *Rpc
	enum      *Enum
	alias     *TypeAlias
}

func (r resolved) ok() bool {
	return r.namespace != nil || r.dto != nil || r.rpc != nil || r.enum != nil || r.alias != nil
}

// walkTo resolves an absolute id to the entity at its end, starting from the
// model root. Every intermediate segment must be a namespace; only the
// final segment may be any kind.
func (m *Model) walkTo(id entity.ID) resolved {
	cur := m.Root
	if id.IsRoot() {
		return resolved{namespace: cur}
	}
	for i, seg := range id.Path {
		last := i == len(id.Path)-1
		if !last {
			next, ok := cur.Namespace(seg.Name)
			if !ok {
				return resolved{}
			}
			cur = next
			continue
		}
		switch seg.Kind {
		case entity.Namespace:
			if ns, ok := cur.Namespace(seg.Name); ok {
				return resolved{namespace: ns}
			}
		case entity.Dto:
			if d, ok := cur.Dto(seg.Name); ok {
				return resolved{dto: d}
			}
		case entity.Rpc:
			if r, ok := cur.Rpc(seg.Name); ok {
				return resolved{rpc: r}
			}
		case entity.Enum:
			if e, ok := cur.Enum(seg.Name); ok {
				return resolved{enum: e}
			}
		case entity.TypeAlias:
			if a, ok := cur.Alias(seg.Name); ok {
				return resolved{alias: a}
			}
		}
		return resolved{}
	}
	return resolved{}
}

// FindNamespace resolves an absolute namespace id.
func (m *Model) FindNamespace(id entity.ID) (*Namespace, bool) {
	r := m.walkTo(id)
	return r.namespace, r.namespace != nil
}

// FindDto resolves an absolute Dto id.
func (m *Model) FindDto(id entity.ID) (*Dto, bool) {
	r := m.walkTo(id)
	return r.dto, r.dto != nil
}

// FindRpc resolves an absolute Rpc id.
func (m *Model) FindRpc(id entity.ID) (*Rpc, bool) {
	r := m.walkTo(id)
	return r.rpc, r.rpc != nil
}

// FindEnum resolves an absolute Enum id.
func (m *Model) FindEnum(id entity.ID) (*Enum, bool) {
	r := m.walkTo(id)
	return r.enum, r.enum != nil
}

// FindTypeAlias resolves an absolute TypeAlias id.
func (m *Model) FindTypeAlias(id entity.ID) (*TypeAlias, bool) {
	r := m.walkTo(id)
	return r.alias, r.alias != nil
}

// Entity is the polymorphic read accessor returned by FindEntity, mirroring
// Child but addressable by absolute id regardless of kind.
type Entity struct {
	Namespace *Namespace
	Dto       *Dto
	Rpc       *Rpc
	Enum      *Enum
	Alias     *TypeAlias
}

// FindEntity resolves an absolute id to whichever kind of entity it names.
func (m *Model) FindEntity(id entity.ID) (Entity, bool) {
	r := m.walkTo(id)
	if !r.ok() {
		return Entity{}, false
	}
	return Entity{Namespace: r.namespace, Dto: r.dto, Rpc: r.rpc, Enum: r.enum, Alias: r.alias}, true
}

// Attrs returns the Attributes of whichever variant e carries, or nil if e
// is the zero Entity.
func (e Entity) Attrs() *Attributes {
	switch {
	case e.Namespace != nil:
		return &e.Namespace.Attrs
	case e.Dto != nil:
		return &e.Dto.Attrs
	case e.Rpc != nil:
		return &e.Rpc.Attrs
	case e.Enum != nil:
		return &e.Enum.Attrs
	case e.Alias != nil:
		return &e.Alias.Attrs
	}
	return nil
}

// FindQualifiedTypeRelative resolves a possibly-relative type reference ty
// against the scope rooted at from, the id of the namespace (or other
// entity) the reference appeared in. It walks from upward to the root,
// trying `ancestor + ty` at each level, innermost first, and returns the
// first absolute id that resolves to an existing entity. Results are
// memoized per (from, ty) pair; the model must not be mutated for the
// lifetime of the cache, which holds for the single-pass Build->Validate
// pipeline.
func (m *Model) FindQualifiedTypeRelative(from, ty entity.ID) (entity.ID, bool) {
	key := relKey{from: from.String(), ty: ty.String()}
	if v, ok := m.relCache.Get(key); ok {
		return v.id, v.ok
	}
	id, ok := m.findQualifiedTypeRelativeUncached(from, ty)
	m.relCache.Add(key, relVal{id: id, ok: ok})
	return id, ok
}

func (m *Model) findQualifiedTypeRelativeUncached(from, ty entity.ID) (entity.ID, bool) {
	scope := from
	for {
		candidate := scope.Append(ty)
		if r := m.walkTo(candidate); r.ok() {
			return candidate, true
		}
		if scope.IsRoot() {
			return entity.ID{}, false
		}
		scope = scope.Parent()
	}
}

// maxAliasHops bounds ResolveAliasTarget's chain walk so a call against an
// unvalidated (possibly cyclic) model fails fast instead of looping.
const maxAliasHops = 64

// ResolveAliasTarget follows id's alias chain to its end and returns the
// final, non-alias TypeRef. It assumes the model has been validated (Build
// rejects alias cycles before this is safe to call unboundedly); against an
// unvalidated model it still terminates, returning an error once
// maxAliasHops is exceeded.
func (m *Model) ResolveAliasTarget(id entity.ID) (TypeRef, error) {
	seen := 0
	for {
		alias, ok := m.FindTypeAlias(id)
		if !ok {
			return TypeRef{}, fmt.Errorf("model: %q is not a type alias", id.String())
		}
		target := alias.Target
		if target.Tag() != TagApiType {
			return target, nil
		}
		next := target.ApiID()
		if _, ok := m.FindTypeAlias(next); ok {
			seen++
			if seen > maxAliasHops {
				return TypeRef{}, fmt.Errorf("model: alias chain from %q exceeds %d hops, possible cycle", id.String(), maxAliasHops)
			}
			id = next
			continue
		}
		return target, nil
	}
}
