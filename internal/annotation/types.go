// Package annotation holds the data model for freehand pencil strokes and
// styled text annotations, the store that owns them for the active document,
// and the eraser engine that splits strokes against a circular footprint.
package annotation

import (
	"github.com/inkmark/mcp-pdf-annotator/internal/geom"
)

// PencilStroke represents a freehand annotation as an ordered point sequence
// plus style. Points are in document units and insertion order is draw
// order. A stroke with fewer than two points is never persisted.
type PencilStroke struct {
	ID          string       `json:"id"`
	Points      []geom.Point `json:"points"`
	Color       string       `json:"color"`
	StrokeWidth float64      `json:"stroke_width"`
	Opacity     float64      `json:"opacity"`
	PageNumber  int          `json:"page_number"`
}

// Clone returns a deep copy of the stroke
func (s PencilStroke) Clone() PencilStroke {
	out := s
	out.Points = make([]geom.Point, len(s.Points))
	copy(out.Points, s.Points)
	return out
}

// Style returns the stroke's style fields, used when the eraser derives
// replacement strokes from an original.
func (s PencilStroke) Style() StrokeStyle {
	return StrokeStyle{
		Color:       s.Color,
		StrokeWidth: s.StrokeWidth,
		Opacity:     s.Opacity,
	}
}

// StrokeStyle bundles the visual properties of a pencil stroke
type StrokeStyle struct {
	Color       string  `json:"color"`
	StrokeWidth float64 `json:"stroke_width"`
	Opacity     float64 `json:"opacity"`
}

// FontFamily enumerates the selectable text annotation fonts
type FontFamily string

const (
	FontArial         FontFamily = "Arial"
	FontTimesNewRoman FontFamily = "TimesNewRoman"
	FontCourierNew    FontFamily = "CourierNew"
	FontGeorgia       FontFamily = "Georgia"
	FontVerdana       FontFamily = "Verdana"
)

// Valid reports whether f is one of the selectable families
func (f FontFamily) Valid() bool {
	switch f {
	case FontArial, FontTimesNewRoman, FontCourierNew, FontGeorgia, FontVerdana:
		return true
	default:
		return false
	}
}

// TextAnnotation represents a positioned, styled text run. X and Y anchor
// the top-left corner of the glyph box in document units.
type TextAnnotation struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	FontSize   float64    `json:"font_size"`
	Color      string     `json:"color"`
	PageNumber int        `json:"page_number"`
	FontFamily FontFamily `json:"font_family"`
	Bold       bool       `json:"bold"`
	Italic     bool       `json:"italic"`
	Underline  bool       `json:"underline"`
}

// TextUpdate carries a partial field update for a text annotation. Nil
// fields are left unchanged.
type TextUpdate struct {
	Text       *string     `json:"text,omitempty"`
	X          *float64    `json:"x,omitempty"`
	Y          *float64    `json:"y,omitempty"`
	FontSize   *float64    `json:"font_size,omitempty"`
	Color      *string     `json:"color,omitempty"`
	FontFamily *FontFamily `json:"font_family,omitempty"`
	Bold       *bool       `json:"bold,omitempty"`
	Italic     *bool       `json:"italic,omitempty"`
	Underline  *bool       `json:"underline,omitempty"`
}

// Eraser is the ephemeral circular footprint swept by the eraser tool, in
// document units. It is never persisted.
type Eraser struct {
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
	Radius  float64 `json:"radius"`
}

// Center returns the footprint center as a point
func (e Eraser) Center() geom.Point {
	return geom.Point{X: e.CenterX, Y: e.CenterY}
}
