// Package depgraph renders the direct requirements of a Conan binary as a
// node-link diagram.
//
// Build a graph from a binary's requires list, convert it to Graphviz DOT,
// and optionally render SVG in-process:
//
//	g := depgraph.FromRequires("app/1.0", requires)
//	dot := g.ToDOT(depgraph.Options{})
//	svg, err := depgraph.RenderSVG(ctx, dot)
//
// SVG rendering uses [github.com/goccy/go-graphviz], which runs Graphviz
// via WebAssembly and needs no external binaries.
package depgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

// Graph is the one-level requirements graph of a single binary: the root
// reference and its direct dependencies.
type Graph struct {
	Root string
	Deps []string
}

// Options configures DOT generation.
type Options struct {
	// Full keeps revision and package-id suffixes in dependency labels.
	// When false, labels show the bare name/version reference.
	Full bool
}

// FromRequires builds a graph from a requires list as reported by package
// configurations. Duplicate entries are dropped, keeping first occurrence
// order.
func FromRequires(root string, requires []string) *Graph {
	seen := make(map[string]bool, len(requires))
	deps := make([]string, 0, len(requires))
	for _, r := range requires {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		deps = append(deps, r)
	}
	return &Graph{Root: root, Deps: deps}
}

// ToDOT converts the graph to Graphviz DOT. Dependency chains read left
// to right; the root node is highlighted.
func (g *Graph) ToDOT(opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph requirements {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightblue];\n", g.Root, displayRef(g.Root, opts.Full))
	for _, dep := range g.Deps {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", dep, displayRef(dep, opts.Full))
	}

	buf.WriteString("\n")
	for _, dep := range g.Deps {
		fmt.Fprintf(&buf, "  %q -> %q;\n", g.Root, dep)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// displayRef trims revision and package-id suffixes from a requires entry
// unless full output is requested.
func displayRef(ref string, full bool) string {
	if full {
		return ref
	}
	if i := strings.IndexAny(ref, "#:"); i >= 0 {
		return ref[:i]
	}
	return ref
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the opening svg tag with a zero-origin viewBox
// and explicit dimensions so the output embeds cleanly.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
