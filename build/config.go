package build

// UserType names a type the parser recognizes in source (ParseName) and the
// semantic tag generators switch on (Name). The validator accepts a User
// reference only when its name is one of the declared Names. ParseName is
// not read by the builder or the validator, and a bare (ApiType) name that
// fails qualification is reported as an error, not turned into a User
// reference.
type UserType struct {
	ParseName string `json:"parse"`
	Name      string `json:"name"`
}

// Config controls a single Builder.Build call.
type Config struct {
	// PreValidationPrint, if set, dumps the merged (but not yet validated)
	// namespace tree through the configured log.Logger before validation
	// begins.
	PreValidationPrint bool       `json:"pre_validation_print"`
	UserTypes          []UserType `json:"user_types"`
}

// userTypeSet collapses Config.UserTypes into the map shape the validator
// and model.TypeRef.Qualify expect: semantic name -> present.
func (c Config) userTypeSet() map[string]bool {
	set := make(map[string]bool, len(c.UserTypes))
	for _, ut := range c.UserTypes {
		set[ut.Name] = true
	}
	return set
}
