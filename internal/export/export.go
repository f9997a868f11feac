// Package export converts the in-memory annotation store into the form the
// PDF writer consumes: strokes are smoothed and flipped into export space
// (origin bottom-left, y up), text annotations get their base-14 font name
// resolved and their anchor moved to the text box's bottom-left corner.
package export

import (
	"github.com/inkmark/mcp-pdf-annotator/internal/annotation"
	"github.com/inkmark/mcp-pdf-annotator/internal/document"
	"github.com/inkmark/mcp-pdf-annotator/internal/geom"
	"github.com/inkmark/mcp-pdf-annotator/internal/transform"
)

// StrokeExport is a smoothed stroke polyline in export space, ready to be
// re-rendered as straight line segments with round caps.
type StrokeExport struct {
	ID      string       `json:"id"`
	Points  []geom.Point `json:"points"`
	Color   string       `json:"color"`
	Width   float64      `json:"width"`
	Opacity float64      `json:"opacity"`
}

// TextExport is a text run with export-space bottom-left anchor and a
// resolved base-14 font name.
type TextExport struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	FontName  string  `json:"font_name"`
	FontSize  float64 `json:"font_size"`
	Color     string  `json:"color"`
	Underline bool    `json:"underline"`
	Opacity   float64 `json:"opacity"`
}

// PageExport holds everything to stamp onto one page.
type PageExport struct {
	PageNumber int            `json:"page_number"`
	WidthPts   float64        `json:"width_pts"`
	HeightPts  float64        `json:"height_pts"`
	Strokes    []StrokeExport `json:"strokes"`
	Texts      []TextExport   `json:"texts"`
}

// Exporter builds per-page export payloads from a document session and its
// annotation store.
type Exporter struct {
	session *document.Session
}

// NewExporter creates an exporter over the given session.
func NewExporter(session *document.Session) *Exporter {
	return &Exporter{session: session}
}

// BuildPage snapshots one page's annotations and converts them to export
// space. Fails with DocumentNotLoaded when no document is open.
func (e *Exporter) BuildPage(pageNumber int) (*PageExport, error) {
	width, height, err := e.session.PageSize(pageNumber)
	if err != nil {
		return nil, err
	}
	store := e.session.Store()
	page := buildPage(pageNumber, width, height,
		store.StrokesOnPage(pageNumber), store.TextsOnPage(pageNumber))
	return page, nil
}

// Build converts every page of the loaded document.
func (e *Exporter) Build() ([]PageExport, error) {
	count, err := e.session.PageCount()
	if err != nil {
		return nil, err
	}
	pages := make([]PageExport, 0, count)
	for n := 1; n <= count; n++ {
		page, err := e.BuildPage(n)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *page)
	}
	return pages, nil
}

func buildPage(pageNumber int, width, height float64, strokes []annotation.PencilStroke, texts []annotation.TextAnnotation) *PageExport {
	space := transform.PageSpace{HeightPts: height}

	out := &PageExport{
		PageNumber: pageNumber,
		WidthPts:   width,
		HeightPts:  height,
		Strokes:    make([]StrokeExport, 0, len(strokes)),
		Texts:      make([]TextExport, 0, len(texts)),
	}

	for _, s := range strokes {
		smoothed := geom.SmoothQuadratic(s.Points)
		points := make([]geom.Point, len(smoothed))
		for i, p := range smoothed {
			points[i] = space.DocumentToExport(p)
		}
		out.Strokes = append(out.Strokes, StrokeExport{
			ID:      s.ID,
			Points:  points,
			Color:   s.Color,
			Width:   s.StrokeWidth,
			Opacity: s.Opacity,
		})
	}

	for _, t := range texts {
		// The document-space anchor is the text box's top-left corner;
		// the stamped run is positioned by its bottom-left corner. The
		// font size stands in for the box height.
		anchor := space.TextAnchorToExport(geom.Point{X: t.X, Y: t.Y}, t.FontSize)
		out.Texts = append(out.Texts, TextExport{
			ID:        t.ID,
			Text:      t.Text,
			X:         anchor.X,
			Y:         anchor.Y,
			FontName:  ResolveFontVariant(t.FontFamily, t.Bold, t.Italic),
			FontSize:  t.FontSize,
			Color:     t.Color,
			Underline: t.Underline,
			Opacity:   1.0,
		})
	}

	return out
}
