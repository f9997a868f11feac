package editor

import (
	"github.com/inkmark/mcp-pdf-annotator/internal/annotation"
	"github.com/inkmark/mcp-pdf-annotator/internal/document"
	"github.com/inkmark/mcp-pdf-annotator/internal/geom"
)

// Request Types

// OpenDocumentRequest represents a request to open a PDF document
type OpenDocumentRequest struct {
	Path string `json:"path"`
}

// AddStrokeRequest represents a request to add a freehand stroke. Points are
// screen-space pointer samples; Zoom converts them to document units.
type AddStrokeRequest struct {
	Points      []geom.Point `json:"points"`
	Color       string       `json:"color"`
	StrokeWidth float64      `json:"stroke_width"`
	Opacity     float64      `json:"opacity"`
	PageNumber  int          `json:"page_number"`
	Zoom        float64      `json:"zoom"`
}

// EraseAtRequest represents a single eraser tap at screen coordinates
type EraseAtRequest struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Radius     float64 `json:"radius"`
	PageNumber int     `json:"page_number"`
	Zoom       float64 `json:"zoom"`
}

// EraseDragRequest represents an eraser drag between two screen positions
type EraseDragRequest struct {
	FromX      float64 `json:"from_x"`
	FromY      float64 `json:"from_y"`
	ToX        float64 `json:"to_x"`
	ToY        float64 `json:"to_y"`
	Radius     float64 `json:"radius"`
	PageNumber int     `json:"page_number"`
	Zoom       float64 `json:"zoom"`
}

// AddTextRequest represents a request to place a text annotation. X and Y
// are the screen-space top-left anchor.
type AddTextRequest struct {
	Text       string  `json:"text"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	FontSize   float64 `json:"font_size"`
	Color      string  `json:"color"`
	PageNumber int     `json:"page_number"`
	FontFamily string  `json:"font_family"`
	Bold       bool    `json:"bold"`
	Italic     bool    `json:"italic"`
	Underline  bool    `json:"underline"`
	Zoom       float64 `json:"zoom"`
}

// UpdateTextRequest represents a partial field update for a text annotation,
// keyed by id. Nil fields are left unchanged.
type UpdateTextRequest struct {
	ID     string                `json:"id"`
	Update annotation.TextUpdate `json:"update"`
}

// RemoveAnnotationRequest represents a request to delete an annotation of
// either kind by id
type RemoveAnnotationRequest struct {
	ID string `json:"id"`
}

// ListAnnotationsRequest represents a request to list annotations. A zero
// PageNumber lists every page.
type ListAnnotationsRequest struct {
	PageNumber int `json:"page_number"`
}

// HitTestRequest represents a pick at screen coordinates
type HitTestRequest struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Tolerance  float64 `json:"tolerance"`
	PageNumber int     `json:"page_number"`
	Zoom       float64 `json:"zoom"`
}

// MoveAnnotationRequest represents a request to translate an annotation by a
// screen-space delta
type MoveAnnotationRequest struct {
	ID   string  `json:"id"`
	DX   float64 `json:"dx"`
	DY   float64 `json:"dy"`
	Zoom float64 `json:"zoom"`
}

// InsertPageRequest represents a request to insert a blank page. AfterIndex
// zero inserts before the first page.
type InsertPageRequest struct {
	AfterIndex int `json:"after_index"`
}

// RemovePageRequest represents a request to remove a page
type RemovePageRequest struct {
	PageNumber int `json:"page_number"`
}

// MovePageRequest represents a request to move a page to a new position
type MovePageRequest struct {
	FromIndex int `json:"from_index"`
	ToIndex   int `json:"to_index"`
}

// RotatePageRequest represents a request to rotate a page by a multiple of
// 90 degrees
type RotatePageRequest struct {
	PageNumber int `json:"page_number"`
	Degrees    int `json:"degrees"`
}

// ExportRequest represents a request to export the annotated document
type ExportRequest struct {
	OutputPath string `json:"output_path"`
}

// EditorInfoRequest represents a request for editor state and usage guidance
type EditorInfoRequest struct{}

// Response Types

// PageInfo describes one page of the open document
type PageInfo struct {
	PageNumber int     `json:"page_number"`
	ID         string  `json:"id"`
	WidthPts   float64 `json:"width_pts"`
	HeightPts  float64 `json:"height_pts"`
}

// OpenDocumentResult represents the result of opening a document
type OpenDocumentResult struct {
	Path  string     `json:"path"`
	Pages []PageInfo `json:"pages"`
}

// AddStrokeResult represents the result of adding a stroke
type AddStrokeResult struct {
	ID         string `json:"id"`
	PointCount int    `json:"point_count"`
}

// EraseOpResult represents the net effect of an erase operation
type EraseOpResult struct {
	RemovedIDs []string `json:"removed_ids"`
	AddedIDs   []string `json:"added_ids"`
	Touched    bool     `json:"touched"`
}

// AddTextResult represents the result of placing a text annotation
type AddTextResult struct {
	ID string `json:"id"`
}

// UpdateTextResult represents the result of a text update
type UpdateTextResult struct {
	ID string `json:"id"`
}

// RemoveAnnotationResult represents the result of deleting an annotation
type RemoveAnnotationResult struct {
	ID string `json:"id"`
}

// ListAnnotationsResult represents the annotations visible to the caller
type ListAnnotationsResult struct {
	Strokes     []annotation.PencilStroke   `json:"strokes"`
	Texts       []annotation.TextAnnotation `json:"texts"`
	StrokeCount int                         `json:"stroke_count"`
	TextCount   int                         `json:"text_count"`
}

// HitTestResult identifies the annotations under a pick point. Empty ids
// mean nothing was hit.
type HitTestResult struct {
	StrokeID string `json:"stroke_id,omitempty"`
	TextID   string `json:"text_id,omitempty"`
}

// MoveAnnotationResult represents the result of translating an annotation
type MoveAnnotationResult struct {
	ID string `json:"id"`
}

// PageOpResult represents the document shape after a structural page edit
type PageOpResult struct {
	Pages []PageInfo `json:"pages"`
}

// PageContent is one page's stroke rendering as a PDF content stream, with
// the ExtGState alpha entries the stream references.
type PageContent struct {
	PageNumber     int                `json:"page_number"`
	Content        string             `json:"content"`
	GraphicsStates map[string]float64 `json:"graphics_states,omitempty"`
}

// ExportResult represents the result of an export
type ExportResult struct {
	OutputPath  string        `json:"output_path"`
	Pages       int           `json:"pages"`
	StrokeCount int           `json:"stroke_count"`
	TextCount   int           `json:"text_count"`
	Contents    []PageContent `json:"contents"`
}

// ToolInfo describes one tool exposed on the host surface
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EditorInfoResult represents editor state and configuration
type EditorInfoResult struct {
	ServerName        string     `json:"server_name"`
	Version           string     `json:"version"`
	DocumentDirectory string     `json:"document_directory"`
	DocumentPath      string     `json:"document_path,omitempty"`
	Loaded            bool       `json:"loaded"`
	Pages             int        `json:"pages"`
	StrokeCount       int        `json:"stroke_count"`
	TextCount         int        `json:"text_count"`
	Tools             []ToolInfo `json:"tools"`
}

func pageInfos(pages []document.Page) []PageInfo {
	out := make([]PageInfo, len(pages))
	for i, p := range pages {
		out[i] = PageInfo{
			PageNumber: i + 1,
			ID:         p.ID,
			WidthPts:   p.WidthPts,
			HeightPts:  p.HeightPts,
		}
	}
	return out
}
