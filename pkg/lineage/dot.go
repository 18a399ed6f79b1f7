package lineage

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

// Node and edge colors. The queried individual is orange and its ancestors
// blue; parent-2 edges are magenta.
const (
	colorRoot       = "#F18F01"
	colorRootBorder = "#C73E1D"
	colorNode       = "#2E86AB"
	colorNodeBorder = "#1B5E7D"
	colorParentA    = "#2E86AB"
	colorParentB    = "#A23B72"
)

// DOTOptions configures [ToDOT].
type DOTOptions struct {
	// Detailed adds generation and tour length to node labels. Lengths come
	// from the source passed to ToDOT.
	Detailed bool
	// Layout pins every node at the coordinates computed by [Layout]. The
	// pinned positions are honored by the neato and fdp engines; dot ignores
	// them and ranks nodes by depth instead.
	Layout *LayoutOptions
}

// ToDOT converts an ancestry to Graphviz DOT format. Edges point from child to
// parent; nodes of equal depth share a rank so the tree reads top-down from
// the queried individual.
func ToDOT(src Source, a Ancestry, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Lineage {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"#F8F9FA\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica-Bold\", fontsize=10, fontcolor=\"#F8F9FA\"];\n")
	buf.WriteString("  edge [arrowhead=none, penwidth=2.2];\n\n")

	groups := GroupByDepth(a)
	var pos map[ID]Position
	if opts.Layout != nil {
		pos = Layout(groups, opts.Layout)
	}

	for _, id := range a.order {
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(src, id, opts.Detailed))}
		if id == a.Root {
			attrs = append(attrs,
				fmt.Sprintf("fillcolor=%q", colorRoot),
				fmt.Sprintf("color=%q", colorRootBorder),
				"fontcolor=\"#2C3E50\"")
		} else {
			attrs = append(attrs,
				fmt.Sprintf("fillcolor=%q", colorNode),
				fmt.Sprintf("color=%q", colorNodeBorder))
		}
		if p, ok := pos[id]; ok {
			attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(p.X), fmtFloat(-p.Y)))
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, depth := range Depths(groups) {
		ids := groups[depth]
		names := make([]string, len(ids))
		for i, id := range ids {
			names[i] = fmt.Sprintf("n%d", id)
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(names, "; "))
	}

	buf.WriteString("\n")
	for _, id := range a.order {
		e := a.entries[id]
		if _, ok := a.entries[e.ParentA]; ok && e.ParentA.Valid() {
			fmt.Fprintf(&buf, "  n%d -> n%d [color=%q];\n", id, e.ParentA, colorParentA)
		}
		if _, ok := a.entries[e.ParentB]; ok && e.ParentB.Valid() {
			fmt.Fprintf(&buf, "  n%d -> n%d [color=%q];\n", id, e.ParentB, colorParentB)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(src Source, id ID, detailed bool) string {
	label := strconv.FormatInt(int64(id), 10)
	if !detailed || src == nil {
		return label
	}
	ind, ok := src.Get(id)
	if !ok {
		return label
	}
	return fmt.Sprintf("%s\ngen %d\n%.2f", label, ind.Generation, ind.Length)
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT document as SVG.
//
// Errors are returned if Graphviz cannot initialize, the DOT is malformed, or
// rendering fails. All errors are wrapped with context.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT document as PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
