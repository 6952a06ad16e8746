package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/hierpart/pkg/hierpart"
)

// Options configures diagram generation.
type Options struct {
	// Detailed lists the elements of each module under its identifier.
	// When false, labels show the identifier and the module size.
	Detailed bool
	// MaxElements truncates detailed element lists. Zero means no limit.
	MaxElements int
	// Implicit draws the implicit singletons of refined modules.
	Implicit bool
}

// ToDOT converts p to Graphviz DOT. Modules are emitted in identifier order
// as nodes named "m<id>"; implicit singletons are named "m<id>_<n>".
func ToDOT[E comparable](p *hierpart.Partition[E], opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []string
	for id, elems := range p.Show() {
		label := fmtLabel(id, elems, opts)
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if p.IsLeaf(id) {
			attrs = append(attrs, "fillcolor=\"#e8f1fb\"")
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeName(id), strings.Join(attrs, ", "))
		if parent := p.Parent(id); parent != hierpart.NoModule {
			edges = append(edges, fmt.Sprintf("  %s -> %s;\n", nodeName(parent), nodeName(id)))
		}

		if !opts.Implicit || p.IsLeaf(id) {
			continue
		}
		n := 0
		for _, g := range p.Level(id) {
			if !g.IsImplicit() {
				continue
			}
			name := fmt.Sprintf("%s_%d", nodeName(id), n)
			n++
			fmt.Fprintf(&buf, "  %s [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey, fontcolor=black];\n",
				name, fmt.Sprint(g.Elements[0]))
			edges = append(edges, fmt.Sprintf("  %s -> %s [style=dashed];\n", nodeName(id), name))
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id hierpart.ModuleID) string {
	return fmt.Sprintf("m%d", id)
}

func fmtLabel[E comparable](id hierpart.ModuleID, elems []E, opts Options) string {
	head := fmt.Sprintf("%d (%d)", id, len(elems))
	if !opts.Detailed {
		return head
	}
	shown := elems
	if opts.MaxElements > 0 && len(shown) > opts.MaxElements {
		shown = shown[:opts.MaxElements]
	}
	parts := make([]string, len(shown))
	for i, e := range shown {
		parts[i] = fmt.Sprint(e)
	}
	body := strings.Join(parts, " ")
	if len(shown) < len(elems) {
		body += fmt.Sprintf(" … +%d", len(elems)-len(shown))
	}
	return head + "\n" + body
}
