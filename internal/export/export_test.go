package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkmark/mcp-pdf-annotator/internal/annotation"
	"github.com/inkmark/mcp-pdf-annotator/internal/geom"
)

func TestResolveFontVariant(t *testing.T) {
	tests := []struct {
		family       annotation.FontFamily
		bold, italic bool
		want         string
	}{
		{annotation.FontArial, false, false, "Helvetica"},
		{annotation.FontArial, true, false, "Helvetica-Bold"},
		{annotation.FontArial, false, true, "Helvetica-Oblique"},
		{annotation.FontArial, true, true, "Helvetica-BoldOblique"},
		{annotation.FontTimesNewRoman, false, false, "Times-Roman"},
		{annotation.FontTimesNewRoman, true, false, "Times-Bold"},
		{annotation.FontTimesNewRoman, false, true, "Times-Italic"},
		{annotation.FontTimesNewRoman, true, true, "Times-BoldItalic"},
		{annotation.FontCourierNew, false, false, "Courier"},
		{annotation.FontCourierNew, true, true, "Courier-BoldOblique"},
		{annotation.FontGeorgia, false, false, "Times-Roman"},
		{annotation.FontGeorgia, true, false, "Times-Bold"},
		{annotation.FontVerdana, false, false, "Helvetica"},
		{annotation.FontVerdana, false, true, "Helvetica-Oblique"},
		{annotation.FontFamily("Wingdings"), false, false, "Helvetica"},
		{annotation.FontFamily(""), true, false, "Helvetica-Bold"},
	}

	for _, tt := range tests {
		got := ResolveFontVariant(tt.family, tt.bold, tt.italic)
		assert.Equal(t, tt.want, got, "family=%s bold=%v italic=%v", tt.family, tt.bold, tt.italic)
	}
}

func TestBuildPage_FlipsStrokesIntoExportSpace(t *testing.T) {
	strokes := []annotation.PencilStroke{
		{
			ID:          "s1",
			Points:      []geom.Point{{X: 10, Y: 20}, {X: 30, Y: 40}},
			Color:       "#FF0000",
			StrokeWidth: 2,
			Opacity:     1,
			PageNumber:  1,
		},
	}

	page := buildPage(1, 300, 400, strokes, nil)

	require.Len(t, page.Strokes, 1)
	got := page.Strokes[0]
	assert.Equal(t, "s1", got.ID)
	// Two-point strokes pass through smoothing unchanged, so only the
	// vertical flip applies.
	require.Len(t, got.Points, 2)
	assert.InDelta(t, 10.0, got.Points[0].X, 1e-9)
	assert.InDelta(t, 380.0, got.Points[0].Y, 1e-9)
	assert.InDelta(t, 30.0, got.Points[1].X, 1e-9)
	assert.InDelta(t, 360.0, got.Points[1].Y, 1e-9)
}

func TestBuildPage_SmoothsLongerStrokes(t *testing.T) {
	strokes := []annotation.PencilStroke{
		{
			ID:          "s1",
			Points:      []geom.Point{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 40, Y: 0}},
			Color:       "#000000",
			StrokeWidth: 1,
			Opacity:     1,
			PageNumber:  1,
		},
	}

	page := buildPage(1, 300, 400, strokes, nil)

	require.Len(t, page.Strokes, 1)
	points := page.Strokes[0].Points
	assert.Greater(t, len(points), 3, "interior points densify under smoothing")
	assert.InDelta(t, 0.0, points[0].X, 1e-9)
	assert.InDelta(t, 40.0, points[len(points)-1].X, 1e-9)
}

func TestBuildPage_ResolvesTextAnchorAndFont(t *testing.T) {
	texts := []annotation.TextAnnotation{
		{
			ID:         "t1",
			Text:       "Approved",
			X:          50,
			Y:          100,
			FontSize:   12,
			Color:      "#0000FF",
			PageNumber: 1,
			FontFamily: annotation.FontTimesNewRoman,
			Bold:       true,
		},
	}

	page := buildPage(1, 300, 400, nil, texts)

	require.Len(t, page.Texts, 1)
	got := page.Texts[0]
	assert.Equal(t, "Times-Bold", got.FontName)
	assert.InDelta(t, 50.0, got.X, 1e-9)
	// bottom-left anchor: page height minus top edge minus box height
	assert.InDelta(t, 288.0, got.Y, 1e-9)
}

func TestContentStream_EmitsStrokeOperators(t *testing.T) {
	strokes := []StrokeExport{
		{
			ID:      "s1",
			Points:  []geom.Point{{X: 10, Y: 20}, {X: 30, Y: 40}, {X: 50, Y: 20}},
			Color:   "#FF0000",
			Width:   2,
			Opacity: 1,
		},
	}

	content, states := ContentStream(strokes)
	text := string(content)

	assert.Contains(t, text, "1.000 0.000 0.000 RG")
	assert.Contains(t, text, "2.00 w")
	assert.Contains(t, text, "1 J")
	assert.Contains(t, text, "1 j")
	assert.Contains(t, text, "10.00 20.00 m")
	assert.Contains(t, text, "30.00 40.00 l")
	assert.Contains(t, text, "50.00 20.00 l")
	assert.Contains(t, text, "S\nQ")
	assert.Empty(t, states, "fully opaque strokes need no ExtGState")
}

func TestContentStream_SharesExtGStatePerAlpha(t *testing.T) {
	strokes := []StrokeExport{
		{ID: "a", Points: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, Color: "#000000", Width: 1, Opacity: 0.5},
		{ID: "b", Points: []geom.Point{{X: 2, Y: 2}, {X: 3, Y: 3}}, Color: "#000000", Width: 1, Opacity: 0.5},
		{ID: "c", Points: []geom.Point{{X: 4, Y: 4}, {X: 5, Y: 5}}, Color: "#000000", Width: 1, Opacity: 0.25},
	}

	content, states := ContentStream(strokes)

	require.Len(t, states, 2)
	assert.Equal(t, 0.5, states["GSA0"])
	assert.Equal(t, 0.25, states["GSA1"])
	assert.Equal(t, 2, strings.Count(string(content), "/GSA0 gs"), "both half-opaque strokes share one state")
	assert.Equal(t, 1, strings.Count(string(content), "/GSA1 gs"))
}

func TestContentStream_SkipsDegeneratePolylines(t *testing.T) {
	strokes := []StrokeExport{
		{ID: "a", Points: []geom.Point{{X: 0, Y: 0}}, Color: "#000000", Width: 1, Opacity: 1},
	}
	content, states := ContentStream(strokes)
	assert.Empty(t, content)
	assert.Empty(t, states)
}

func TestParseHexColor(t *testing.T) {
	r, g, b, err := parseHexColor("#FF8000")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-9)
	assert.InDelta(t, 128.0/255.0, g, 1e-9)
	assert.InDelta(t, 0.0, b, 1e-9)

	_, _, _, err = parseHexColor("red")
	assert.Error(t, err)
	_, _, _, err = parseHexColor("#GGGGGG")
	assert.Error(t, err)
}

func TestUnderlineStrokes(t *testing.T) {
	texts := []TextExport{
		{ID: "t1", Text: "hello", X: 10, Y: 100, FontSize: 10, Color: "#000000", Underline: true, Opacity: 1},
		{ID: "t2", Text: "plain", X: 10, Y: 80, FontSize: 10, Color: "#000000", Underline: false, Opacity: 1},
		{ID: "t3", Text: "", X: 10, Y: 60, FontSize: 10, Color: "#000000", Underline: true, Opacity: 1},
	}

	lines := UnderlineStrokes(texts)

	require.Len(t, lines, 1, "only non-empty underlined runs produce a line")
	line := lines[0]
	assert.Equal(t, "t1-underline", line.ID)
	require.Len(t, line.Points, 2)
	assert.InDelta(t, 10.0, line.Points[0].X, 1e-9)
	assert.InDelta(t, 35.0, line.Points[1].X, 1e-9)
	assert.Less(t, line.Points[0].Y, 100.0, "underline sits below the anchor")
}
