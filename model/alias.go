package model

// TypeAlias binds a name to another TypeRef. Aliases may chain to other
// aliases; the validator's acyclicity pass rejects cycles, and
// Model.ResolveAliasTarget follows the chain to its end.
type TypeAlias struct {
	Name   string
	Target TypeRef
	Attrs  Attributes
}
