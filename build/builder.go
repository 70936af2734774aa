// Package build merges independently-parsed source chunks into a single
// coherent model and drives validation.
package build

import (
	"context"

	"github.com/google/uuid"

	"apyxlgo/log"
	"apyxlgo/model"
	"apyxlgo/validate"
)

// Builder grows a single root namespace by repeatedly merging per-chunk
// sub-trees. It owns every merged node exclusively until Build returns the
// finished model to its caller.
type Builder struct {
	root *model.Namespace
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{root: model.NewNamespace("")}
}

// Merge grafts chunk into the builder's root, stamping chunkTag as the chunk
// tag on every non-namespace entity chunk introduces. chunk moves by value
// into the builder: callers must not retain or mutate it afterward.
func (b *Builder) Merge(chunk *model.Namespace, chunkTag string) {
	stampChunkTag(chunk, chunkTag)
	mergeInto(b.root, chunk)
}

// stampChunkTag recursively sets Attrs.ChunkTag on every non-namespace
// entity under ns. Namespaces are left untagged: they may span many chunks.
func stampChunkTag(ns *model.Namespace, tag string) {
	for _, d := range ns.Dtos {
		d.Attrs.ChunkTag = tag
		for i := range d.Fields {
			d.Fields[i].Attrs.ChunkTag = tag
		}
	}
	for _, r := range ns.Rpcs {
		r.Attrs.ChunkTag = tag
		for i := range r.Params {
			r.Params[i].Attrs.ChunkTag = tag
		}
	}
	for _, e := range ns.Enums {
		e.Attrs.ChunkTag = tag
		for i := range e.Values {
			e.Values[i].Attrs.ChunkTag = tag
		}
	}
	for _, a := range ns.Aliases {
		a.Attrs.ChunkTag = tag
	}
	for _, child := range ns.Namespaces {
		stampChunkTag(child, tag)
	}
}

// mergeInto deep-unions src into dst: a child namespace sharing a name at
// the same path has its children lists concatenated (dst's, then src's);
// every other kind of child is appended as-is, duplicates included. The
// validator's duplicates pass is what surfaces those duplicates to users.
func mergeInto(dst, src *model.Namespace) {
	for _, srcChild := range src.Namespaces {
		if dstChild, ok := dst.Namespace(srcChild.Name); ok {
			mergeInto(dstChild, srcChild)
			continue
		}
		dst.Namespaces = append(dst.Namespaces, srcChild)
	}
	dst.Dtos = append(dst.Dtos, src.Dtos...)
	dst.Rpcs = append(dst.Rpcs, src.Rpcs...)
	dst.Enums = append(dst.Enums, src.Enums...)
	dst.Aliases = append(dst.Aliases, src.Aliases...)
}

// Build finalizes the merged tree: it runs validation and either returns
// the resulting Model with a nil error slice, or a nil Model with every
// accumulated validate.Error. If config.PreValidationPrint is set, a debug
// rendering of the merged (not-yet-validated) tree is logged first.
func (b *Builder) Build(ctx context.Context, config Config) (*model.Model, []validate.Error) {
	buildID := uuid.New().String()
	logger := log.For(contextCarrier{ctx}).With("build_id", buildID)

	if config.PreValidationPrint {
		logger.Debug("pre-validation tree", "dump", dumpTree(b.root, 0))
	}

	m := model.New(b.root)
	errs := validate.Validate(m, validate.Config{UserTypes: config.userTypeSet()})
	if len(errs) > 0 {
		logger.Error("build failed", "error_count", len(errs))
		return nil, errs
	}
	m.Validated = true
	logger.Debug("build succeeded")
	return m, nil
}

type contextCarrier struct{ ctx context.Context }

func (c contextCarrier) Context() context.Context { return c.ctx }

func dumpTree(ns *model.Namespace, depth int) string {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	out := indent + "namespace " + ns.Name + "\n"
	ns.EachChild(func(c model.Child) bool {
		if c.Namespace != nil {
			out += dumpTree(c.Namespace, depth+1)
			return true
		}
		out += indent + "  " + c.Kind().String() + " " + c.Name() + "\n"
		return true
	})
	return out
}
