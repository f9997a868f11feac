package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/inkmark/mcp-pdf-annotator/internal/annotation/errors"
)

// GraphicsStates maps ExtGState resource names to their stroke alpha. The
// writer merges these into the page's resource dictionary before appending
// the content stream that references them.
type GraphicsStates map[string]float64

// ContentStream renders export-space strokes as a PDF content stream: each
// polyline is stroked with round caps and joins so segment boundaries stay
// invisible. Strokes with opacity below 1 reference an ExtGState entry from
// the returned map.
func ContentStream(strokes []StrokeExport) ([]byte, GraphicsStates) {
	var buf bytes.Buffer
	states := GraphicsStates{}
	alphaNames := map[float64]string{}

	for _, s := range strokes {
		if len(s.Points) < 2 {
			continue
		}
		r, g, b, err := parseHexColor(s.Color)
		if err != nil {
			r, g, b = 0, 0, 0
		}

		buf.WriteString("q\n")
		if s.Opacity < 1 {
			name, ok := alphaNames[s.Opacity]
			if !ok {
				name = fmt.Sprintf("GSA%d", len(alphaNames))
				alphaNames[s.Opacity] = name
				states[name] = s.Opacity
			}
			fmt.Fprintf(&buf, "/%s gs\n", name)
		}
		fmt.Fprintf(&buf, "%.3f %.3f %.3f RG\n", r, g, b)
		fmt.Fprintf(&buf, "%.2f w\n1 J\n1 j\n", s.Width)
		fmt.Fprintf(&buf, "%.2f %.2f m\n", s.Points[0].X, s.Points[0].Y)
		for _, p := range s.Points[1:] {
			fmt.Fprintf(&buf, "%.2f %.2f l\n", p.X, p.Y)
		}
		buf.WriteString("S\nQ\n")
	}

	return buf.Bytes(), states
}

// parseHexColor parses a #RRGGBB color into channel values in [0, 1].
func parseHexColor(s string) (r, g, b float64, err error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, 0, 0, errors.NewInvalidInput(fmt.Sprintf("invalid color %q: want #RRGGBB", s))
	}
	v, perr := strconv.ParseUint(hex, 16, 32)
	if perr != nil {
		return 0, 0, 0, errors.NewInvalidInput(fmt.Sprintf("invalid color %q: %v", s, perr))
	}
	r = float64(v>>16&0xFF) / 255
	g = float64(v>>8&0xFF) / 255
	b = float64(v&0xFF) / 255
	return r, g, b, nil
}
