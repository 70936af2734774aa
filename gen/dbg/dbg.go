// Package dbg is a minimal reference generator.Generator: it walks a view
// and writes an indented, deterministic textual dump of every namespace
// and entity observed, one sink chunk per chunk tag.
package dbg

import (
	"fmt"
	"sort"
	"strings"

	"apyxlgo/generator"
	"apyxlgo/view"
)

// Generator writes the debug dump format.
type Generator struct{}

// New returns a ready-to-use dbg Generator.
func New() *Generator { return &Generator{} }

func (g *Generator) Generate(v view.View, sink generator.Sink) error {
	chunks := v.ChunkedIter()
	tags := make([]string, 0, len(chunks))
	for tag := range chunks {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		w, err := sink.WriteChunk(tag)
		if err != nil {
			return generator.Error{Generator: "dbg", Msg: fmt.Sprintf("open chunk %q: %v", tag, err)}
		}
		var b strings.Builder
		dumpView(&b, chunks[tag], 0)
		if _, err := w.WriteString(b.String()); err != nil {
			_ = w.Close()
			return generator.Error{Generator: "dbg", Msg: fmt.Sprintf("write chunk %q: %v", tag, err)}
		}
		if err := w.Close(); err != nil {
			return generator.Error{Generator: "dbg", Msg: fmt.Sprintf("close chunk %q: %v", tag, err)}
		}
	}
	return nil
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func dumpView(b *strings.Builder, v view.View, depth int) {
	indent(b, depth)
	fmt.Fprintf(b, "namespace %s {\n", v.Name())

	v.EachEnum(func(e view.EnumView) bool {
		indent(b, depth+1)
		fmt.Fprintf(b, "enum %s {\n", e.Name)
		for _, val := range e.Values {
			indent(b, depth+2)
			fmt.Fprintf(b, "%s = %d\n", val.Name, val.Number)
		}
		indent(b, depth+1)
		b.WriteString("}\n")
		return true
	})

	v.EachAlias(func(a view.AliasView) bool {
		indent(b, depth+1)
		fmt.Fprintf(b, "alias %s = %s\n", a.Name, a.Target.String())
		return true
	})

	v.EachDto(func(d view.DtoView) bool {
		indent(b, depth+1)
		fmt.Fprintf(b, "dto %s {\n", d.Name)
		for _, f := range d.Fields {
			indent(b, depth+2)
			fmt.Fprintf(b, "%s: %s\n", f.Name, f.Type.String())
		}
		indent(b, depth+1)
		b.WriteString("}\n")
		return true
	})

	v.EachRpc(func(r view.RpcView) bool {
		indent(b, depth+1)
		ret := "void"
		if r.ReturnType != nil {
			ret = r.ReturnType.String()
		}
		fmt.Fprintf(b, "rpc %s(", r.Name)
		for i, p := range r.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s: %s", p.Name, p.Type.String())
		}
		fmt.Fprintf(b, ") -> %s\n", ret)
		return true
	})

	v.EachNamespace(func(child view.View) bool {
		dumpView(b, child, depth+1)
		return true
	})

	indent(b, depth)
	b.WriteString("}\n")
}
