// Package render draws hierarchical partitions as node-link diagrams.
//
// # Overview
//
// [ToDOT] turns a partition into Graphviz DOT source with one rounded box per
// module, laid out top to bottom from the root. Implicit singletons (elements
// of a refined module that no child claims) can be drawn as dashed grey
// boxes so partially refined hierarchies are visible at a glance.
//
//	dot := render.ToDOT(p, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// # Dependencies
//
// [RenderSVG] uses [github.com/goccy/go-graphviz] in process. [ToPDF] and
// [ToPNG] shell out to rsvg-convert from librsvg.
package render
