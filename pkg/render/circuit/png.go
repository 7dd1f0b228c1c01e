package circuit

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/matzehuels/gatesketch/pkg/errors"
	"github.com/matzehuels/gatesketch/pkg/gate"
)

// MaxPixels bounds the raster size RenderPNG will allocate.
const MaxPixels = 64 << 20

// PNGOption configures native PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	style  Style
	scale  float64
	labels bool
}

// WithPNGStyle sets the color scheme.
func WithPNGStyle(s Style) PNGOption { return func(r *pngRenderer) { r.style = s } }

// WithPNGScale sets the raster scale factor (default 1.0, one pixel per
// layout unit).
func WithPNGScale(f float64) PNGOption { return func(r *pngRenderer) { r.scale = f } }

// WithPNGLabels prints every gate's display name under its symbol.
func WithPNGLabels() PNGOption { return func(r *pngRenderer) { r.labels = true } }

// RenderPNG rasterizes a placed circuit without external tools. Wires are
// two units wide; INPUT gates are labelled with their variable name.
func RenderPNG(p Placement, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{style: Simple, scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", r.scale)
	}

	w := int(math.Ceil(float64(p.Width) * r.scale))
	h := int(math.Ceil(float64(p.Height) * r.scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "empty image %dx%d", w, h)
	}
	if int64(w)*int64(h) > MaxPixels {
		return nil, errors.New(errors.ErrCodeInvalidLayout,
			"image %dx%d exceeds %d pixels; lower the scale or render SVG", w, h, MaxPixels)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(parseHex(r.style.Background)), image.Point{}, draw.Src)

	c := &canvas{img: img, scale: float32(r.scale), z: vector.NewRasterizer(1, 1)}
	stroke := parseHex(r.style.Stroke)
	fill := parseHex(r.style.Fill)
	text := parseHex(r.style.Text)

	for _, wire := range p.Wires {
		c.line(pt{float32(wire.X1), float32(wire.Y1)}, pt{float32(wire.X1), float32(wire.Y2)}, 2, stroke)
		c.line(pt{float32(wire.X1), float32(wire.Y2)}, pt{float32(wire.X2), float32(wire.Y2)}, 2, stroke)
	}

	for _, cell := range p.Cells {
		c.drawCell(cell, stroke, fill)
		if cell.Type == gate.Input {
			c.text(cell.Name, float32(cell.X)+39, float32(cell.Y)+float32(SpriteFor(gate.Input).Output), text)
		} else if r.labels {
			c.text(cell.Name, float32(cell.X)+45, float32(cell.Y)+CellHeight, text)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

type pt struct{ x, y float32 }

func (p pt) add(x, y float32) pt { return pt{p.x + x, p.y + y} }

// canvas draws unscaled layout coordinates onto a scaled raster.
type canvas struct {
	img   *image.RGBA
	scale float32
	z     *vector.Rasterizer
}

// fill paints a closed polygon. The rasterizer is sized to the polygon's
// bounds so cost follows the shape, not the image.
func (c *canvas) fill(pts []pt, col color.Color) {
	if len(pts) < 3 {
		return
	}
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := float32(-math.MaxFloat32), float32(-math.MaxFloat32)
	scaled := make([]pt, len(pts))
	for i, p := range pts {
		s := pt{p.x * c.scale, p.y * c.scale}
		scaled[i] = s
		minX, minY = min(minX, s.x), min(minY, s.y)
		maxX, maxY = max(maxX, s.x), max(maxY, s.y)
	}

	r := image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX)))+1, int(math.Ceil(float64(maxY)))+1,
	).Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}

	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	c.z.Reset(r.Dx(), r.Dy())
	c.z.MoveTo(scaled[0].x-ox, scaled[0].y-oy)
	for _, s := range scaled[1:] {
		c.z.LineTo(s.x-ox, s.y-oy)
	}
	c.z.ClosePath()
	c.z.Draw(c.img, r, image.NewUniform(col), image.Point{})
}

// line strokes the segment a-b with the given width.
func (c *canvas) line(a, b pt, width float32, col color.Color) {
	dx, dy := b.x-a.x, b.y-a.y
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	c.fill([]pt{a.add(nx, ny), b.add(nx, ny), b.add(-nx, -ny), a.add(-nx, -ny)}, col)
}

// outline strokes a closed polyline.
func (c *canvas) outline(pts []pt, width float32, col color.Color) {
	for i := range pts {
		c.line(pts[i], pts[(i+1)%len(pts)], width, col)
	}
}

func (c *canvas) shape(pts []pt, stroke, fill color.Color) {
	c.fill(pts, fill)
	c.outline(pts, 1.5, stroke)
}

func (c *canvas) drawCell(cell Cell, stroke, fill color.Color) {
	o := pt{float32(cell.X), float32(cell.Y)}
	s := SpriteFor(cell.Type)
	at := func(x, y float32) pt { return o.add(x, y) }
	stubs := func(bodyX float32) {
		n := len(cell.Inputs)
		for i := range max(n, 1) {
			y := float32(s.InputAnchor(i, n))
			c.line(at(0, y), at(bodyX, y), 1.5, stroke)
		}
	}
	outputFrom := func(x float32) {
		y := float32(s.Output)
		c.line(at(x, y), at(CellWidth, y), 1.5, stroke)
	}

	switch cell.Type {
	case gate.And:
		stubs(25)
		body := []pt{at(25, 4), at(50, 4)}
		body = append(body, arc(at(50, 19.5), 15.5, -math.Pi/2, math.Pi/2, 16)...)
		body = append(body, at(50, 35), at(25, 35))
		c.shape(body, stroke, fill)
		outputFrom(65.5)
	case gate.Or:
		stubs(28)
		var body []pt
		body = append(body, quad(at(22, 4), at(44, 4), at(66, 19.5), 12)...)
		body = append(body, quad(at(66, 19.5), at(44, 35), at(22, 35), 12)...)
		body = append(body, quad(at(22, 35), at(32, 19.5), at(22, 4), 12)...)
		c.shape(body, stroke, fill)
		outputFrom(66)
	case gate.Not:
		stubs(28)
		c.shape([]pt{at(28, 9), at(28, 33), at(60, 21)}, stroke, fill)
		c.shape(arc(at(64, 21), 4, 0, 2*math.Pi, 16), stroke, fill)
		outputFrom(68)
	case gate.Input:
		c.fill(arc(at(80, float32(s.Output)), 4, 0, 2*math.Pi, 16), stroke)
		outputFrom(84)
	}
}

// text draws s centered horizontally on x and vertically on y.
func (c *canvas) text(s string, x, y float32, col color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: c.img, Src: image.NewUniform(col), Face: face}
	w := d.MeasureString(s).Ceil()
	m := face.Metrics()
	baseline := int(y*c.scale) + (m.Ascent.Ceil()-m.Descent.Ceil())/2
	d.Dot = fixed.P(int(x*c.scale)-w/2, baseline)
	d.DrawString(s)
}

// arc samples n+1 points on a circle from angle a0 to a1 (radians,
// clockwise in image space).
func arc(center pt, r, a0, a1 float64, n int) []pt {
	out := make([]pt, 0, n+1)
	for i := 0; i <= n; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		out = append(out, center.add(float32(r*math.Cos(a)), float32(r*math.Sin(a))))
	}
	return out
}

// quad samples a quadratic Bézier curve, excluding its end point.
func quad(p0, p1, p2 pt, n int) []pt {
	out := make([]pt, 0, n)
	for i := 0; i < n; i++ {
		t := float32(i) / float32(n)
		u := 1 - t
		out = append(out, pt{
			u*u*p0.x + 2*u*t*p1.x + t*t*p2.x,
			u*u*p0.y + 2*u*t*p1.y + t*t*p2.y,
		})
	}
	return out
}
