package model

// Param is one positional parameter of an Rpc.
type Param struct {
	Name  string
	Type  TypeRef
	Attrs Attributes
}

// Rpc is a remote procedure: an ordered parameter list plus an optional
// return type. A nil ReturnType means the Rpc returns nothing.
type Rpc struct {
	Name       string
	Params     []Param
	ReturnType *TypeRef
	Attrs      Attributes
}

// Param looks up a parameter by name.
func (r *Rpc) Param(name string) (*Param, bool) {
	for i := range r.Params {
		if r.Params[i].Name == name {
			return &r.Params[i], true
		}
	}
	return nil, false
}
