package model

import "apyxlgo/entity"

// Namespace is a named container of child entities. The root of a Model is
// itself a Namespace with an empty name. Children are kept in insertion
// order; Builder.Merge appends rather than reorders, so iteration order is
// deterministic across a rebuild of the same chunk set.
type Namespace struct {
	Name       string
	Attrs      Attributes
	Namespaces []*Namespace
	Dtos       []*Dto
	Rpcs       []*Rpc
	Enums      []*Enum
	Aliases    []*TypeAlias
}

// NewNamespace returns an empty namespace named name.
func NewNamespace(name string) *Namespace {
	return &Namespace{Name: name}
}

// Namespace looks up a direct child namespace by name.
func (n *Namespace) Namespace(name string) (*Namespace, bool) {
	for _, c := range n.Namespaces {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Dto looks up a direct child Dto by name.
func (n *Namespace) Dto(name string) (*Dto, bool) {
	for _, c := range n.Dtos {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Rpc looks up a direct child Rpc by name.
func (n *Namespace) Rpc(name string) (*Rpc, bool) {
	for _, c := range n.Rpcs {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Enum looks up a direct child Enum by name.
func (n *Namespace) Enum(name string) (*Enum, bool) {
	for _, c := range n.Enums {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Alias looks up a direct child TypeAlias by name.
func (n *Namespace) Alias(name string) (*TypeAlias, bool) {
	for _, c := range n.Aliases {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// childKind reports the Kind and presence of any direct child named name,
// across all child collections (e.g. a Dto and an Rpc sharing a name). The
// validator does not call it; its duplicates pass counts names itself.
func (n *Namespace) childKind(name string) (entity.Kind, bool) {
	if _, ok := n.Namespace(name); ok {
		return entity.Namespace, true
	}
	if _, ok := n.Dto(name); ok {
		return entity.Dto, true
	}
	if _, ok := n.Rpc(name); ok {
		return entity.Rpc, true
	}
	if _, ok := n.Enum(name); ok {
		return entity.Enum, true
	}
	if _, ok := n.Alias(name); ok {
		return entity.TypeAlias, true
	}
	return entity.None, false
}

// Child is a polymorphic accessor over every kind of namespace child,
// returned by EachChild. Exactly one field is non-nil.
type Child struct {
	Namespace *Namespace
	Dto       *Dto
	Rpc       *Rpc
	Enum      *Enum
	Alias     *TypeAlias
}

// Name returns the name of whichever variant c carries.
func (c Child) Name() string {
	switch {
	case c.Namespace != nil:
		return c.Namespace.Name
	case c.Dto != nil:
		return c.Dto.Name
	case c.Rpc != nil:
		return c.Rpc.Name
	case c.Enum != nil:
		return c.Enum.Name
	case c.Alias != nil:
		return c.Alias.Name
	}
	return ""
}

// Kind returns the entity.Kind of whichever variant c carries.
func (c Child) Kind() entity.Kind {
	switch {
	case c.Namespace != nil:
		return entity.Namespace
	case c.Dto != nil:
		return entity.Dto
	case c.Rpc != nil:
		return entity.Rpc
	case c.Enum != nil:
		return entity.Enum
	case c.Alias != nil:
		return entity.TypeAlias
	}
	return entity.None
}

// Attrs returns the Attributes of whichever variant c carries.
func (c Child) Attrs() *Attributes {
	switch {
	case c.Namespace != nil:
		return &c.Namespace.Attrs
	case c.Dto != nil:
		return &c.Dto.Attrs
	case c.Rpc != nil:
		return &c.Rpc.Attrs
	case c.Enum != nil:
		return &c.Enum.Attrs
	case c.Alias != nil:
		return &c.Alias.Attrs
	}
	return nil
}

// EachChild visits every direct child of n, namespaces last, in the order:
// dtos, rpcs, enums, aliases, namespaces. That order matches the original's
// `recurse_namespaces` which descends into child namespaces only after
// processing the namespace's own entities.
func (n *Namespace) EachChild(fn func(Child) bool) {
	for _, d := range n.Dtos {
		if !fn(Child{Dto: d}) {
			return
		}
	}
	for _, r := range n.Rpcs {
		if !fn(Child{Rpc: r}) {
			return
		}
	}
	for _, e := range n.Enums {
		if !fn(Child{Enum: e}) {
			return
		}
	}
	for _, a := range n.Aliases {
		if !fn(Child{Alias: a}) {
			return
		}
	}
	for _, ns := range n.Namespaces {
		if !fn(Child{Namespace: ns}) {
			return
		}
	}
}

// ChunkTags returns the set of distinct chunk tags stamped on n's direct,
// non-namespace children. Used by view.ChunkedIter.
func (n *Namespace) ChunkTags() []string {
	seen := map[string]bool{}
	var tags []string
	n.EachChild(func(c Child) bool {
		if c.Namespace != nil {
			return true
		}
		tag := c.Attrs().ChunkTag
		if tag != "" && !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
		return true
	})
	return tags
}
