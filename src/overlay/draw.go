package overlay

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/pkg/errors"
)

// Color is an 8-bit straight-alpha RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGBA returns a Color.
func RGBA(r, g, b, a uint8) Color { return Color{r, g, b, a} }

func (c Color) rgba() gg.RGBA {
	return gg.RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// Point is a position in surface pixels, origin top-left.
type Point struct {
	X, Y float64
}

// Pt returns a Point.
func Pt(x, y float64) Point { return Point{x, y} }

// Shape selects the geometry of a Primitive.
type Shape int

const (
	ShapeText Shape = iota
	ShapeLine
	ShapeRect
	ShapeRoundedRect
	ShapeCircle
	ShapeEllipse
)

// Paint selects how a Primitive is colored.
type Paint int

const (
	PaintStroke Paint = iota
	PaintFill
	PaintLinearGradient
	PaintRadialGradient
)

// Primitive is one draw call. Which fields apply depends on Shape:
//
//	Text:        Pos (baseline start), Text, Color; PaintFill only
//	Line:        From, To, StrokeWidth
//	Rect:        Pos (top-left), Size
//	RoundedRect: Pos, Size, Radius (corner)
//	Circle:      Pos (center), Radius
//	Ellipse:     Pos (center), Size (x and y radii)
//
// Gradients run from Color to Color2. Linear gradients on rectangles run
// top to bottom when Vertical is set, left to right otherwise; on circles
// and ellipses they run left to right.
type Primitive struct {
	Shape       Shape
	Paint       Paint
	Pos         Point
	Size        Point
	From, To    Point
	Radius      float64
	StrokeWidth float64
	Color       Color
	Color2      Color
	Vertical    bool
	Text        string
}

// Draw renders p onto the current scene.
func (o *Overlay) Draw(p Primitive) error {
	if !o.state.rendering() || o.surface == nil {
		return ErrNoRenderTarget
	}
	dc := o.surface.Canvas()

	if p.Shape == ShapeText {
		if p.Paint != PaintFill {
			return errors.Wrap(ErrUnsupportedPaint, "text")
		}
		dc.SetColor(p.Color.rgba().Color())
		dc.DrawString(p.Text, p.Pos.X, p.Pos.Y)
		return nil
	}

	stroked := p.Shape == ShapeLine || p.Paint == PaintStroke
	if stroked && !(p.StrokeWidth > 0) {
		return ErrInvalidStrokeWidth
	}
	brush, err := p.brush()
	if err != nil {
		return err
	}

	dc.ClearPath()
	switch p.Shape {
	case ShapeLine:
		dc.DrawLine(p.From.X, p.From.Y, p.To.X, p.To.Y)
	case ShapeRect:
		dc.DrawRectangle(p.Pos.X, p.Pos.Y, p.Size.X, p.Size.Y)
	case ShapeRoundedRect:
		dc.DrawRoundedRectangle(p.Pos.X, p.Pos.Y, p.Size.X, p.Size.Y, p.Radius)
	case ShapeCircle:
		dc.DrawCircle(p.Pos.X, p.Pos.Y, p.Radius)
	case ShapeEllipse:
		dc.DrawEllipse(p.Pos.X, p.Pos.Y, p.Size.X, p.Size.Y)
	default:
		return errors.Wrapf(ErrUnsupportedPaint, "shape %d", p.Shape)
	}

	if stroked {
		dc.SetStrokeBrush(brush)
		dc.SetLineWidth(p.StrokeWidth)
		err = dc.Stroke()
	} else {
		dc.SetFillBrush(brush)
		err = dc.Fill()
	}
	if err != nil {
		return errors.Wrap(ErrDrawFailed, err.Error())
	}
	return nil
}

func (p Primitive) brush() (gg.Brush, error) {
	switch p.Paint {
	case PaintStroke, PaintFill:
		return gg.Solid(p.Color.rgba()), nil
	case PaintLinearGradient:
		x0, y0, x1, y1, ok := p.linearAxis()
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedPaint, "linear gradient on shape %d", p.Shape)
		}
		return gg.NewLinearGradientBrush(x0, y0, x1, y1).
			AddColorStop(0, p.Color.rgba()).
			AddColorStop(1, p.Color2.rgba()), nil
	case PaintRadialGradient:
		var r float64
		switch p.Shape {
		case ShapeCircle:
			r = p.Radius
		case ShapeEllipse:
			r = math.Max(p.Size.X, p.Size.Y)
		default:
			return nil, errors.Wrapf(ErrUnsupportedPaint, "radial gradient on shape %d", p.Shape)
		}
		return gg.NewRadialGradientBrush(p.Pos.X, p.Pos.Y, 0, r).
			AddColorStop(0, p.Color.rgba()).
			AddColorStop(1, p.Color2.rgba()), nil
	}
	return nil, errors.Wrapf(ErrUnsupportedPaint, "paint %d", p.Paint)
}

func (p Primitive) linearAxis() (x0, y0, x1, y1 float64, ok bool) {
	switch p.Shape {
	case ShapeLine:
		return p.From.X, p.From.Y, p.To.X, p.To.Y, true
	case ShapeRect, ShapeRoundedRect:
		if p.Vertical {
			return p.Pos.X, p.Pos.Y, p.Pos.X, p.Pos.Y + p.Size.Y, true
		}
		return p.Pos.X, p.Pos.Y, p.Pos.X + p.Size.X, p.Pos.Y, true
	case ShapeCircle:
		return p.Pos.X - p.Radius, p.Pos.Y, p.Pos.X + p.Radius, p.Pos.Y, true
	case ShapeEllipse:
		return p.Pos.X - p.Size.X, p.Pos.Y, p.Pos.X + p.Size.X, p.Pos.Y, true
	}
	return 0, 0, 0, 0, false
}

// DrawText draws s with its baseline starting at pos.
func (o *Overlay) DrawText(pos Point, s string, c Color) error {
	return o.Draw(Primitive{Shape: ShapeText, Paint: PaintFill, Pos: pos, Text: s, Color: c})
}

var outlineColor = Color{0, 0, 0, 255}

// DrawOutlinedText draws s in c over a one pixel black outline.
func (o *Overlay) DrawOutlinedText(pos Point, s string, c Color) error {
	for _, d := range [...]Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		if err := o.DrawText(Pt(pos.X+d.X, pos.Y+d.Y), s, outlineColor); err != nil {
			return err
		}
	}
	return o.DrawText(pos, s, c)
}

func (o *Overlay) DrawLine(from, to Point, width float64, c Color) error {
	return o.Draw(Primitive{Shape: ShapeLine, Paint: PaintStroke, From: from, To: to, StrokeWidth: width, Color: c})
}

func (o *Overlay) DrawGradientLine(from, to Point, width float64, c1, c2 Color) error {
	return o.Draw(Primitive{Shape: ShapeLine, Paint: PaintLinearGradient, From: from, To: to, StrokeWidth: width, Color: c1, Color2: c2})
}

func (o *Overlay) DrawRect(pos, size Point, width float64, c Color) error {
	return o.Draw(Primitive{Shape: ShapeRect, Paint: PaintStroke, Pos: pos, Size: size, StrokeWidth: width, Color: c})
}

func (o *Overlay) DrawFilledRect(pos, size Point, c Color) error {
	return o.Draw(Primitive{Shape: ShapeRect, Paint: PaintFill, Pos: pos, Size: size, Color: c})
}

func (o *Overlay) DrawGradientRect(pos, size Point, c1, c2 Color, vertical bool) error {
	return o.Draw(Primitive{Shape: ShapeRect, Paint: PaintLinearGradient, Pos: pos, Size: size, Color: c1, Color2: c2, Vertical: vertical})
}

func (o *Overlay) DrawRoundedRect(pos, size Point, radius, width float64, c Color) error {
	return o.Draw(Primitive{Shape: ShapeRoundedRect, Paint: PaintStroke, Pos: pos, Size: size, Radius: radius, StrokeWidth: width, Color: c})
}

func (o *Overlay) DrawFilledRoundedRect(pos, size Point, radius float64, c Color) error {
	return o.Draw(Primitive{Shape: ShapeRoundedRect, Paint: PaintFill, Pos: pos, Size: size, Radius: radius, Color: c})
}

func (o *Overlay) DrawGradientRoundedRect(pos, size Point, radius float64, c1, c2 Color, vertical bool) error {
	return o.Draw(Primitive{Shape: ShapeRoundedRect, Paint: PaintLinearGradient, Pos: pos, Size: size, Radius: radius, Color: c1, Color2: c2, Vertical: vertical})
}

func (o *Overlay) DrawCircle(center Point, radius, width float64, c Color) error {
	return o.Draw(Primitive{Shape: ShapeCircle, Paint: PaintStroke, Pos: center, Radius: radius, StrokeWidth: width, Color: c})
}

func (o *Overlay) DrawFilledCircle(center Point, radius float64, c Color) error {
	return o.Draw(Primitive{Shape: ShapeCircle, Paint: PaintFill, Pos: center, Radius: radius, Color: c})
}

// DrawGradientCircle fills a circle with a radial gradient from the center,
// or a left to right linear one when radial is false.
func (o *Overlay) DrawGradientCircle(center Point, radius float64, c1, c2 Color, radial bool) error {
	return o.Draw(Primitive{Shape: ShapeCircle, Paint: gradientPaint(radial), Pos: center, Radius: radius, Color: c1, Color2: c2})
}

func (o *Overlay) DrawEllipse(center, radii Point, width float64, c Color) error {
	return o.Draw(Primitive{Shape: ShapeEllipse, Paint: PaintStroke, Pos: center, Size: radii, StrokeWidth: width, Color: c})
}

func (o *Overlay) DrawFilledEllipse(center, radii Point, c Color) error {
	return o.Draw(Primitive{Shape: ShapeEllipse, Paint: PaintFill, Pos: center, Size: radii, Color: c})
}

func (o *Overlay) DrawGradientEllipse(center, radii Point, c1, c2 Color, radial bool) error {
	return o.Draw(Primitive{Shape: ShapeEllipse, Paint: gradientPaint(radial), Pos: center, Size: radii, Color: c1, Color2: c2})
}

func gradientPaint(radial bool) Paint {
	if radial {
		return PaintRadialGradient
	}
	return PaintLinearGradient
}
