package validate

import "fmt"

// Kind tags the distinct error taxonomy a Validate call can report. Kinds,
// not type names, are the stable contract: callers switch on Kind.
type Kind int

const (
	DuplicateDefinition Kind = iota
	InvalidName
	InvalidType
	AliasCycle
	EnumValueConflict
)

func (k Kind) String() string {
	switch k {
	case DuplicateDefinition:
		return "duplicate_definition"
	case InvalidName:
		return "invalid_name"
	case InvalidType:
		return "invalid_type"
	case AliasCycle:
		return "alias_cycle"
	case EnumValueConflict:
		return "enum_value_conflict"
	}
	return "unknown"
}

// Error is the single concrete error type every validation pass produces.
// Which fields are meaningful depends on Kind.
type Error struct {
	Kind Kind

	EntityID string // DuplicateDefinition, InvalidName, InvalidType, EnumValueConflict
	Name     string // InvalidName: the offending name
	TypeRef  string // InvalidType: printable form of the unresolved reference
	Reason   string // InvalidType: why it couldn't be qualified
	Value    int32  // EnumValueConflict: the repeated value
	Cycle    []string // AliasCycle: the ids forming the cycle, in order
}

func (e Error) Error() string {
	switch e.Kind {
	case DuplicateDefinition:
		return fmt.Sprintf("duplicate definition: %s", e.EntityID)
	case InvalidName:
		return fmt.Sprintf("invalid name %q at %s", e.Name, e.EntityID)
	case InvalidType:
		return fmt.Sprintf("invalid type %s at %s: %s", e.TypeRef, e.EntityID, e.Reason)
	case AliasCycle:
		return fmt.Sprintf("alias cycle: %v", e.Cycle)
	case EnumValueConflict:
		return fmt.Sprintf("enum value %d repeated at %s", e.Value, e.EntityID)
	}
	return "validate: unknown error"
}
