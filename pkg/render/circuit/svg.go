package circuit

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/gatesketch/pkg/gate"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style  Style
	labels bool
	title  string
}

// WithStyle sets the color scheme.
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithLabels prints every gate's display name under its symbol. INPUT
// gates are always labelled.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithTitle sets the document title, usually the source expression.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG draws a placed circuit.
func RenderSVG(p Placement, opts ...SVGOption) []byte {
	r := svgRenderer{style: Simple}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		p.Width, p.Height, p.Width, p.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.style.Background)

	fmt.Fprintf(&buf, `  <g class="wires" fill="none" stroke="%s" stroke-width="2">`+"\n", r.style.Stroke)
	for _, w := range p.Wires {
		fmt.Fprintf(&buf, `    <path d="M%d %d V%d H%d"/>`+"\n", w.X1, w.Y1, w.Y2, w.X2)
	}
	buf.WriteString("  </g>\n")

	fmt.Fprintf(&buf, `  <g class="gates" fill="%s" stroke="%s" stroke-width="1.5">`+"\n", r.style.Fill, r.style.Stroke)
	for _, c := range p.Cells {
		r.renderCell(&buf, c)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderCell(buf *bytes.Buffer, c Cell) {
	s := SpriteFor(c.Type)
	fmt.Fprintf(buf, `    <g id="%s" class="gate %s" transform="translate(%d %d)">`+"\n",
		c.ID, strings.ToLower(c.Type.String()), c.X, c.Y)
	fmt.Fprintf(buf, "      <title>%s</title>\n", escapeXML(c.Name))

	n := len(c.Inputs)
	switch c.Type {
	case gate.And:
		writeInputStubs(buf, s, n, 25)
		buf.WriteString(`      <path d="M25 4 H50 A15.5 15.5 0 0 1 50 35 H25 Z"/>` + "\n")
		fmt.Fprintf(buf, `      <path fill="none" d="M65.5 %d H%d"/>`+"\n", s.Output, CellWidth)
	case gate.Or:
		writeInputStubs(buf, s, n, 28)
		buf.WriteString(`      <path d="M22 4 Q44 4 66 19.5 Q44 35 22 35 Q32 19.5 22 4 Z"/>` + "\n")
		fmt.Fprintf(buf, `      <path fill="none" d="M66 %d H%d"/>`+"\n", s.Output, CellWidth)
	case gate.Not:
		writeInputStubs(buf, s, n, 28)
		buf.WriteString(`      <path d="M28 9 L28 33 L60 21 Z"/>` + "\n")
		buf.WriteString(`      <circle cx="64" cy="21" r="4"/>` + "\n")
		fmt.Fprintf(buf, `      <path fill="none" d="M68 %d H%d"/>`+"\n", s.Output, CellWidth)
	case gate.Input:
		fmt.Fprintf(buf, `      <circle cx="80" cy="%d" r="4" fill="%s"/>`+"\n", s.Output, r.style.Stroke)
		fmt.Fprintf(buf, `      <path fill="none" d="M84 %d H%d"/>`+"\n", s.Output, CellWidth)
		fmt.Fprintf(buf, `      <text x="39" y="%d" fill="%s" stroke="none" font-family="serif" font-size="20" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
			s.Output, r.style.Text, escapeXML(c.Name))
	}

	if r.labels && c.Type != gate.Input {
		fmt.Fprintf(buf, `      <text x="45" y="%d" fill="%s" stroke="none" font-family="monospace" font-size="9" text-anchor="middle">%s</text>`+"\n",
			CellHeight+4, r.style.Text, escapeXML(c.Name))
	}
	buf.WriteString("    </g>\n")
}

func writeInputStubs(buf *bytes.Buffer, s Sprite, n, bodyX int) {
	for i := range max(n, 1) {
		fmt.Fprintf(buf, `      <path fill="none" d="M0 %d H%d"/>`+"\n", s.InputAnchor(i, n), bodyX)
	}
}
