package circuit

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"

	"github.com/matzehuels/gatesketch/pkg/diagram"
)

// Style is a color scheme shared by the SVG and PNG renderers. Colors are
// "#rrggbb" strings.
type Style struct {
	Name       string
	Background string
	Stroke     string
	Fill       string
	Text       string
}

var (
	// Simple draws black symbols on white.
	Simple = Style{Name: diagram.StyleSimple, Background: "#ffffff", Stroke: "#000000", Fill: "#ffffff", Text: "#000000"}

	// Dark draws light symbols on a dark background.
	Dark = Style{Name: diagram.StyleDark, Background: "#1e1e2e", Stroke: "#cdd6f4", Fill: "#313244", Text: "#cdd6f4"}
)

// StyleByName looks up a built-in style.
func StyleByName(name string) (Style, bool) {
	switch name {
	case diagram.StyleSimple, "":
		return Simple, true
	case diagram.StyleDark:
		return Dark, true
	}
	return Style{}, false
}

// parseHex converts "#rrggbb" into an opaque color. Malformed input yields
// black.
func parseHex(s string) color.RGBA {
	c := color.RGBA{A: 0xff}
	if len(s) != 7 || s[0] != '#' {
		return c
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
