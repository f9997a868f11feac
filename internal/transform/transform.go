// Package transform converts annotation coordinates between the three
// spaces the editor deals with: screen pixels (zoom-dependent, origin
// top-left of the canvas), document units (zoom-independent, origin
// top-left of the page) and export units (PDF points, origin bottom-left).
//
// Annotations are stored in document units only; conversion happens at the
// input and render boundaries, never inside the store.
package transform

import (
	"github.com/inkmark/mcp-pdf-annotator/internal/geom"
)

// Viewport captures the current zoom factor of the visible canvas
type Viewport struct {
	Zoom float64
}

// ScreenToDocument converts a screen-pixel point into document units
func (v Viewport) ScreenToDocument(p geom.Point) geom.Point {
	return geom.Point{X: p.X / v.Zoom, Y: p.Y / v.Zoom}
}

// DocumentToScreen converts a document-unit point into screen pixels
func (v Viewport) DocumentToScreen(p geom.Point) geom.Point {
	return geom.Point{X: p.X * v.Zoom, Y: p.Y * v.Zoom}
}

// ScreenLengthToDocument converts a scalar length (a radius, a width) from
// screen pixels into document units
func (v Viewport) ScreenLengthToDocument(length float64) float64 {
	return length / v.Zoom
}

// PageSpace flips between document units and export (PDF point) units for
// one page. Document y grows downward from the top edge; export y grows
// upward from the bottom edge.
type PageSpace struct {
	HeightPts float64
}

// DocumentToExport converts a stroke point into export space. Stroke
// points flip top-to-bottom with no height offset.
func (ps PageSpace) DocumentToExport(p geom.Point) geom.Point {
	return geom.Point{X: p.X, Y: ps.HeightPts - p.Y}
}

// ExportToDocument is the inverse of DocumentToExport
func (ps PageSpace) ExportToDocument(p geom.Point) geom.Point {
	return geom.Point{X: p.X, Y: ps.HeightPts - p.Y}
}

// TextAnchorToExport converts the top-left anchor of a text glyph box into
// export space. Document y anchors the top of the box while the PDF writer
// draws text upward from the baseline, so the element height is subtracted
// in addition to the flip.
func (ps PageSpace) TextAnchorToExport(p geom.Point, elementHeight float64) geom.Point {
	return geom.Point{X: p.X, Y: ps.HeightPts - p.Y - elementHeight}
}
