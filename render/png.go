// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Supersample is the factor shapes are rasterized at before being
// scaled down, which smooths rounded corners.
const Supersample = 2

// WritePNG writes s to w as a PNG image.
func (s *Scene) WritePNG(w io.Writer) error {
	return png.Encode(w, s.Image())
}

// Image rasterizes s.
func (s *Scene) Image() *image.RGBA {
	width, height := int(math.Ceil(s.Width)), int(math.Ceil(s.Height))

	// Draw shapes at Supersample times the size.
	big := image.NewRGBA(image.Rect(0, 0, width*Supersample, height*Supersample))
	for _, r := range s.Rects {
		fillRect(big, r, Supersample)
	}
	for _, l := range s.Lines {
		strokeLine(big, l, Supersample)
	}

	// Scale down by a factor of Supersample.
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), big, big.Bounds(), draw.Src, nil)

	// Text is drawn at final size so the bitmap font stays crisp.
	for _, t := range s.Texts {
		drawText(dst, t)
	}
	return dst
}

// Color parses a "#rgb" or "#rrggbb" color or an SVG color name. It
// returns opaque black for anything else.
func Color(s string) color.RGBA {
	black := color.RGBA{A: 0xff}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return black
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return black
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return black
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}
}

// fillRect fills r scaled by k, rounding its corners.
func fillRect(dst *image.RGBA, r Rect, k float64) {
	x0, y0 := r.X*k, r.Y*k
	x1, y1 := x0+r.W*k, y0+r.H*k
	bounds := image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1))).Intersect(dst.Bounds())
	c := Color(r.Fill)
	rad := math.Min(r.R*k, math.Min(r.W*k/2, r.H*k/2))
	if rad <= 0 && x0 == math.Floor(x0) && y0 == math.Floor(y0) && x1 == math.Floor(x1) && y1 == math.Floor(y1) {
		draw.Draw(dst, bounds, image.NewUniform(c), image.Point{}, draw.Src)
		return
	}
	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		cy := float64(py) + 0.5
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			cx := float64(px) + 0.5
			if inRoundRect(cx, cy, x0, y0, x1, y1, rad) {
				dst.SetRGBA(px, py, c)
			}
		}
	}
}

// inRoundRect reports whether (x, y) is inside the rectangle
// [x0, x1] × [y0, y1] with corners rounded to radius rad.
func inRoundRect(x, y, x0, y0, x1, y1, rad float64) bool {
	if x < x0 || x > x1 || y < y0 || y > y1 {
		return false
	}
	if rad <= 0 {
		return true
	}
	// Distance from the inset rectangle whose corners are the
	// centers of the rounding arcs.
	dx := math.Max(0, math.Max(x0+rad-x, x-(x1-rad)))
	dy := math.Max(0, math.Max(y0+rad-y, y-(y1-rad)))
	return dx*dx+dy*dy <= rad*rad
}

// strokeLine draws l scaled by k with a width of k pixels.
func strokeLine(dst *image.RGBA, l Line, k float64) {
	c := Color(l.Stroke)
	x1, y1, x2, y2 := l.X1*k, l.Y1*k, l.X2*k, l.Y2*k
	half := k / 2
	if x1 == x2 || y1 == y2 {
		r := image.Rect(
			int(math.Floor(math.Min(x1, x2)-half)), int(math.Floor(math.Min(y1, y2)-half)),
			int(math.Ceil(math.Max(x1, x2)+half)), int(math.Ceil(math.Max(y1, y2)+half)),
		)
		draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
		return
	}
	// Step along the line half a pixel at a time.
	n := int(math.Ceil(2 * math.Hypot(x2-x1, y2-y1)))
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		x, y := x1+t*(x2-x1), y1+t*(y2-y1)
		r := image.Rect(int(x-half), int(y-half), int(math.Ceil(x+half)), int(math.Ceil(y+half)))
		draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
	}
}

// drawText draws t in the 7x13 bitmap font. Rotated text is placed
// glyph by glyph along its rotated baseline.
func drawText(dst draw.Image, t Text) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(Color(t.Fill)), Face: face}
	width := fromFixed(d.MeasureString(t.S))
	shift := 0.0
	switch t.Anchor {
	case Middle:
		shift = -width / 2
	case End:
		shift = -width
	}
	if t.Angle == 0 {
		d.Dot = toPoint(t.X+shift, t.Y)
		d.DrawString(t.S)
		return
	}
	rad := t.Angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	adv := shift
	for _, r := range t.S {
		d.Dot = toPoint(t.X+adv*cos, t.Y+adv*sin)
		d.DrawString(string(r))
		a, _ := face.GlyphAdvance(r)
		adv += fromFixed(a)
	}
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func toPoint(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))}
}
