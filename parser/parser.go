// Package parser defines the abstract boundary between source chunks and
// the model builder.
package parser

import "apyxlgo/build"

// UserType mirrors build.UserType for the parser config's own JSON schema;
// the two are kept as distinct types because a parser and a builder may
// evolve their config shapes independently even though today they match.
type UserType struct {
	ParseName string `json:"parse"`
	Name      string `json:"name"`
}

// Config controls how a Parser recognizes source constructs.
type Config struct {
	UserTypes          []UserType `json:"user_types"`
	EnableParsePrivate bool       `json:"enable_parse_private"`
}

// BuilderUserTypes projects c's user types into the shape build.Config
// expects, so a CLI driver can derive one config from the other.
func (c Config) BuilderUserTypes() []build.UserType {
	out := make([]build.UserType, len(c.UserTypes))
	for i, ut := range c.UserTypes {
		out[i] = build.UserType{ParseName: ut.ParseName, Name: ut.Name}
	}
	return out
}

// Error reports a chunk that failed to parse. Pos is a best-effort,
// parser-specific location string (e.g. "line 4"); it is empty when the
// parser has no position information to offer.
type Error struct {
	Chunk string
	Pos   string
	Msg   string
}

func (e Error) Error() string {
	if e.Pos != "" {
		return e.Chunk + ": " + e.Pos + ": " + e.Msg
	}
	return e.Chunk + ": " + e.Msg
}

// Parser is the contract every source front end satisfies: it consumes one
// raw chunk of source plus config and merges a sub-namespace into builder
// under chunkTag. On failure it must leave builder in its prior state for
// that chunk: either the whole chunk merges, or none of it does.
type Parser interface {
	Parse(builder *build.Builder, chunkTag string, source []byte, cfg Config) error
}
