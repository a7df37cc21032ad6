// Copyright 2026 The chartgeom Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bufio"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// FontSize is the size of SVG text, in pixels.
const FontSize = 11

// WriteSVG writes s to w as an SVG document.
func (s *Scene) WriteSVG(w io.Writer) error {
	// svgo doesn't report write errors, so collect them from a
	// buffered writer.
	bw := bufio.NewWriter(w)
	canvas := svg.New(bw)
	canvas.Start(px(s.Width), px(s.Height), `font-family="sans-serif"`, fmt.Sprintf(`font-size="%dpx"`, FontSize))

	for _, r := range s.Rects {
		style := fmt.Sprintf(`fill="%s"`, r.Fill)
		if r.Title != "" {
			canvas.Group()
			canvas.Title(r.Title)
		}
		if rad := px(r.R); rad > 0 {
			canvas.Roundrect(px(r.X), px(r.Y), px(r.W), px(r.H), rad, rad, style)
		} else {
			canvas.Rect(px(r.X), px(r.Y), px(r.W), px(r.H), style)
		}
		if r.Title != "" {
			canvas.Gend()
		}
	}
	for _, l := range s.Lines {
		canvas.Line(px(l.X1), px(l.Y1), px(l.X2), px(l.Y2), fmt.Sprintf(`stroke="%s"`, l.Stroke))
	}
	for _, t := range s.Texts {
		attrs := []string{fmt.Sprintf(`fill="%s"`, t.Fill)}
		switch t.Anchor {
		case Middle:
			attrs = append(attrs, `text-anchor="middle"`)
		case End:
			attrs = append(attrs, `text-anchor="end"`)
		}
		if t.Angle != 0 {
			attrs = append(attrs, fmt.Sprintf(`transform="rotate(%g %d %d)"`, t.Angle, px(t.X), px(t.Y)))
		}
		canvas.Text(px(t.X), px(t.Y), t.S, attrs...)
	}

	canvas.End()
	return bw.Flush()
}

func px(v float64) int {
	return int(math.Round(v))
}
