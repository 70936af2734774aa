// Package entity defines the fully-qualified, typed path used to address any
// node in an API model: namespaces, Dtos, Rpcs, Enums, type aliases, and the
// fields/params/types nested inside them.
package entity

// Kind tags a single segment of an ID with the variety of entity it names.
type Kind int

const (
	// None marks the zero Kind; only the empty (root) ID may carry it.
	None Kind = iota
	Namespace
	Dto
	Rpc
	Enum
	Field
	Param
	TypeAlias
	Type
)

// kindText/textKind round-trip a Kind through the short prefix used in
// the printable form of an ID. Namespace carries no prefix because it's the
// overwhelming majority of segments in any real API and the root/ancestor
// path reads better without one.
var kindText = map[Kind]string{
	Dto:       "dto",
	Rpc:       "rpc",
	Enum:      "enum",
	Field:     "field",
	Param:     "param",
	TypeAlias: "alias",
	Type:      "type",
}

var textKind = func() map[string]Kind {
	m := make(map[string]Kind, len(kindText))
	for k, v := range kindText {
		m[v] = k
	}
	return m
}()

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Namespace:
		return "namespace"
	}
	if s, ok := kindText[k]; ok {
		return s
	}
	return "invalid"
}
