package graph

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/pkg/errors"
)

// WriteDOT writes G in Graphviz DOT format, one edge statement per multiplicity.
// If label is nil, vertices are labeled by their integer value.
func (G *Graph) WriteDOT(out io.Writer, name string, label func(v int) string) error {
	if label == nil {
		label = strconv.Itoa
	}

	buf := strings.Builder{}
	fmt.Fprintf(&buf, "graph %q {\n", name)
	for i, v := range G.verts {
		fmt.Fprintf(&buf, "  n%d [label=%q];\n", i, label(v))
	}
	for i := range G.verts {
		for j := i; j < len(G.verts); j++ {
			for m := G.mult[i][j]; m > 0; m-- {
				fmt.Fprintf(&buf, "  n%d -- n%d;\n", i, j)
			}
		}
	}
	buf.WriteString("}\n")

	_, err := io.WriteString(out, buf.String())
	return err
}

// RenderSVG renders G to SVG using Graphviz.
func (G *Graph) RenderSVG(ctx context.Context, name string, label func(v int) string) ([]byte, error) {
	dot := bytes.Buffer{}
	if err := G.WriteDOT(&dot, name, label); err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrapf(ErrBadDOT, "init graphviz: %v", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot.Bytes())
	if err != nil {
		return nil, errors.Wrapf(ErrBadDOT, "parse DOT: %v", err)
	}
	defer g.Close()

	var svg bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &svg); err != nil {
		return nil, errors.Wrapf(ErrBadDOT, "render: %v", err)
	}
	return svg.Bytes(), nil
}
