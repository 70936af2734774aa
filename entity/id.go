package entity

import (
	"fmt"
	"strings"
	"unicode"
)

// Segment is one (name, kind) pair in an ID's path.
type Segment struct {
	Name string
	Kind Kind
}

// ID is an ordered sequence of segments rooted at the anonymous root
// namespace. The zero ID is the root.
type ID struct {
	Path []Segment
}

// Root returns the empty identifier, addressing the top-level namespace.
func Root() ID { return ID{} }

// New builds an ID from a flat list of (name, kind) pairs. It panics if any
// name is invalid; callers that don't control the input should validate
// first with IsValidName.
func New(segs ...Segment) ID {
	id := ID{Path: make([]Segment, 0, len(segs))}
	for _, s := range segs {
		id = id.Child(s.Name, s.Kind)
	}
	return id
}

// IsValidName reports whether name may be used as a single ID segment: it
// must be non-empty and free of dots and whitespace.
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r == '.' || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Child returns a new ID with (name, kind) appended. Panics on an invalid
// name; see IsValidName.
func (id ID) Child(name string, kind Kind) ID {
	if !IsValidName(name) {
		panic(fmt.Sprintf("entity: invalid segment name %q", name))
	}
	path := make([]Segment, len(id.Path)+1)
	copy(path, id.Path)
	path[len(id.Path)] = Segment{Name: name, Kind: kind}
	return ID{Path: path}
}

// Append concatenates other's segments after id's, returning a new ID. Used
// by relative type-qualification lookups to build `level + ty` candidates.
func (id ID) Append(other ID) ID {
	path := make([]Segment, 0, len(id.Path)+len(other.Path))
	path = append(path, id.Path...)
	path = append(path, other.Path...)
	return ID{Path: path}
}

// Parent drops the last segment. The parent of the root is the root.
func (id ID) Parent() ID {
	if len(id.Path) == 0 {
		return id
	}
	return ID{Path: id.Path[:len(id.Path)-1]}
}

// IsRoot reports whether id addresses the top-level namespace itself.
func (id ID) IsRoot() bool { return len(id.Path) == 0 }

// Name returns the last segment's name, or "" for the root.
func (id ID) Name() string {
	if len(id.Path) == 0 {
		return ""
	}
	return id.Path[len(id.Path)-1].Name
}

// Kind returns the last segment's kind, or None for the root.
func (id ID) Kind() Kind {
	if len(id.Path) == 0 {
		return None
	}
	return id.Path[len(id.Path)-1].Kind
}

// Depth is the number of segments in the path.
func (id ID) Depth() int { return len(id.Path) }

// HasPrefix reports whether id is other, or a descendant of other.
func (id ID) HasPrefix(other ID) bool {
	if len(other.Path) > len(id.Path) {
		return false
	}
	for i, s := range other.Path {
		if id.Path[i] != s {
			return false
		}
	}
	return true
}

// IsAncestorOf reports whether id is a strict ancestor of other.
func (id ID) IsAncestorOf(other ID) bool {
	return len(id.Path) < len(other.Path) && other.HasPrefix(id)
}

// IsDescendantOf reports whether id is a strict descendant of other.
func (id ID) IsDescendantOf(other ID) bool {
	return other.IsAncestorOf(id)
}

// Equal reports segment-wise equality, including kind.
func (id ID) Equal(other ID) bool {
	if len(id.Path) != len(other.Path) {
		return false
	}
	for i, s := range id.Path {
		if other.Path[i] != s {
			return false
		}
	}
	return true
}

// String renders id as dotted names; every non-namespace segment carries an
// explicit "<kind>:" prefix so the result round-trips through Parse without
// loss of kind information.
func (id ID) String() string {
	parts := make([]string, len(id.Path))
	for i, s := range id.Path {
		if s.Kind == Namespace || s.Kind == None {
			parts[i] = s.Name
		} else {
			parts[i] = kindText[s.Kind] + ":" + s.Name
		}
	}
	return strings.Join(parts, ".")
}

// Parse parses the dotted, kind-annotated textual form produced by String.
// The empty string parses to the root ID.
func Parse(s string) (ID, error) {
	if s == "" {
		return Root(), nil
	}
	parts := strings.Split(s, ".")
	id := Root()
	for _, p := range parts {
		name := p
		kind := Namespace
		if idx := strings.IndexByte(p, ':'); idx >= 0 {
			prefix, rest := p[:idx], p[idx+1:]
			k, ok := textKind[prefix]
			if !ok {
				return ID{}, fmt.Errorf("entity: unknown kind prefix %q in segment %q", prefix, p)
			}
			kind, name = k, rest
		}
		if !IsValidName(name) {
			return ID{}, fmt.Errorf("entity: invalid segment name %q", name)
		}
		id = id.Child(name, kind)
	}
	return id, nil
}
