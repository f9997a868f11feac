// Package editor is the annotation engine's front door: it owns the document
// session and the annotation store, converts screen-space input to document
// units at this boundary, and exposes one request/result operation per edit.
package editor

import (
	"fmt"

	"github.com/inkmark/mcp-pdf-annotator/internal/annotation"
	"github.com/inkmark/mcp-pdf-annotator/internal/annotation/errors"
	"github.com/inkmark/mcp-pdf-annotator/internal/descriptions"
	"github.com/inkmark/mcp-pdf-annotator/internal/document"
	"github.com/inkmark/mcp-pdf-annotator/internal/document/security"
	"github.com/inkmark/mcp-pdf-annotator/internal/export"
	"github.com/inkmark/mcp-pdf-annotator/internal/geom"
	"github.com/inkmark/mcp-pdf-annotator/internal/render"
	"github.com/inkmark/mcp-pdf-annotator/internal/transform"
)

// Service orchestrates the document session, annotation store and export
// pipeline behind request/result operations.
type Service struct {
	session       *document.Session
	exporter      *export.Exporter
	writer        *export.Writer
	pathValidator *security.PathValidator
}

// NewService creates an editor service rooted at the configured document
// directory.
func NewService(configuredDirectory string, maxFileSize int64) (*Service, error) {
	session, err := document.NewSession(configuredDirectory, maxFileSize)
	if err != nil {
		return nil, err
	}
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}
	return &Service{
		session:       session,
		exporter:      export.NewExporter(session),
		writer:        export.NewWriter(),
		pathValidator: pathValidator,
	}, nil
}

// Session exposes the underlying document session, used by the render layer.
func (s *Service) Session() *document.Session {
	return s.session
}

// Store exposes the annotation store for render-invalidation subscriptions.
func (s *Service) Store() *annotation.Store {
	return s.session.Store()
}

// AttachScheduler subscribes the render scheduler to store mutations: every
// completed edit invalidates the main canvas and the page thumbnails so
// in-flight rasterizations of the old state are discarded.
func (s *Service) AttachScheduler(sched *render.Scheduler) {
	s.session.Store().Subscribe(func() {
		sched.Invalidate(render.MainCanvas)
		if n, err := s.session.PageCount(); err == nil {
			for page := 1; page <= n; page++ {
				sched.Invalidate(render.Thumbnail(page))
			}
		}
	})
}

// viewport builds the screen-to-document conversion for a request. A zoom
// that was never set means unity.
func viewport(zoom float64) transform.Viewport {
	if zoom <= 0 {
		zoom = 1
	}
	return transform.Viewport{Zoom: zoom}
}

// requireLoaded gates editing operations on an open document.
func (s *Service) requireLoaded(operation string) error {
	if !s.session.Loaded() {
		return errors.NewDocumentNotLoaded(operation)
	}
	return nil
}

// requirePage checks that a creation target page exists in the loaded
// document, so no annotation ever references a page that isn't there.
func (s *Service) requirePage(pageNumber int, operation string) error {
	count, err := s.session.PageCount()
	if err != nil {
		return err
	}
	if pageNumber < 1 || pageNumber > count {
		return errors.NewInvalidInput(
			fmt.Sprintf("page %d does not exist, document has %d pages", pageNumber, count)).
			WithContext(operation).WithPage(pageNumber)
	}
	return nil
}

// OpenDocument loads a PDF, replacing any previously open one and clearing
// the annotation store.
func (s *Service) OpenDocument(req OpenDocumentRequest) (*OpenDocumentResult, error) {
	if req.Path == "" {
		return nil, errors.NewInvalidInput("path cannot be empty")
	}
	if err := s.session.Open(req.Path); err != nil {
		return nil, err
	}
	pages, err := s.session.Pages()
	if err != nil {
		return nil, err
	}
	return &OpenDocumentResult{
		Path:  s.session.Path(),
		Pages: pageInfos(pages),
	}, nil
}

// AddStroke converts screen-space pointer samples to document units and
// stores them as a new stroke.
func (s *Service) AddStroke(req AddStrokeRequest) (*AddStrokeResult, error) {
	if err := s.requireLoaded("add_stroke"); err != nil {
		return nil, err
	}
	if len(req.Points) < 2 {
		return nil, errors.NewInvalidInput("a stroke needs at least two points")
	}
	if err := s.requirePage(req.PageNumber, "add_stroke"); err != nil {
		return nil, err
	}
	v := viewport(req.Zoom)
	points := make([]geom.Point, len(req.Points))
	for i, p := range req.Points {
		points[i] = v.ScreenToDocument(p)
	}
	style := annotation.StrokeStyle{
		Color:       req.Color,
		StrokeWidth: v.ScreenLengthToDocument(req.StrokeWidth),
		Opacity:     req.Opacity,
	}
	id, err := s.session.Store().AddStroke(points, style, req.PageNumber)
	if err != nil {
		return nil, err
	}
	return &AddStrokeResult{ID: id, PointCount: len(points)}, nil
}

// EraseAt applies one circular eraser footprint at a screen position.
func (s *Service) EraseAt(req EraseAtRequest) (*EraseOpResult, error) {
	if err := s.requireLoaded("erase"); err != nil {
		return nil, err
	}
	if req.Radius <= 0 {
		return nil, errors.NewInvalidInput("eraser radius must be positive")
	}
	v := viewport(req.Zoom)
	center := v.ScreenToDocument(geom.Point{X: req.X, Y: req.Y})
	footprint := annotation.Eraser{
		CenterX: center.X,
		CenterY: center.Y,
		Radius:  v.ScreenLengthToDocument(req.Radius),
	}
	result := s.session.Store().Erase(footprint, req.PageNumber)
	return eraseOpResult(result), nil
}

// EraseDrag sweeps the eraser between two screen positions, sampling the
// path densely enough that no stroke fits between consecutive footprints.
func (s *Service) EraseDrag(req EraseDragRequest) (*EraseOpResult, error) {
	if err := s.requireLoaded("erase"); err != nil {
		return nil, err
	}
	if req.Radius <= 0 {
		return nil, errors.NewInvalidInput("eraser radius must be positive")
	}
	v := viewport(req.Zoom)
	from := v.ScreenToDocument(geom.Point{X: req.FromX, Y: req.FromY})
	to := v.ScreenToDocument(geom.Point{X: req.ToX, Y: req.ToY})
	radius := v.ScreenLengthToDocument(req.Radius)
	result := s.session.Store().ErasePath(from, to, radius, req.PageNumber)
	return eraseOpResult(result), nil
}

func eraseOpResult(r annotation.EraseResult) *EraseOpResult {
	out := &EraseOpResult{
		RemovedIDs: r.Removed,
		AddedIDs:   make([]string, 0, len(r.Added)),
		Touched:    r.Touched(),
	}
	for _, a := range r.Added {
		out.AddedIDs = append(out.AddedIDs, a.ID)
	}
	return out
}

// AddText places a text annotation at a screen-space top-left anchor.
func (s *Service) AddText(req AddTextRequest) (*AddTextResult, error) {
	if err := s.requireLoaded("add_text"); err != nil {
		return nil, err
	}
	if err := s.requirePage(req.PageNumber, "add_text"); err != nil {
		return nil, err
	}
	v := viewport(req.Zoom)
	anchor := v.ScreenToDocument(geom.Point{X: req.X, Y: req.Y})
	id, err := s.session.Store().AddText(annotation.TextAnnotation{
		Text:       req.Text,
		X:          anchor.X,
		Y:          anchor.Y,
		FontSize:   v.ScreenLengthToDocument(req.FontSize),
		Color:      req.Color,
		PageNumber: req.PageNumber,
		FontFamily: annotation.FontFamily(req.FontFamily),
		Bold:       req.Bold,
		Italic:     req.Italic,
		Underline:  req.Underline,
	})
	if err != nil {
		return nil, err
	}
	return &AddTextResult{ID: id}, nil
}

// UpdateText applies a partial field update to a text annotation. Updating
// an id that no longer exists is a no-op, matching delete semantics.
func (s *Service) UpdateText(req UpdateTextRequest) (*UpdateTextResult, error) {
	if err := s.requireLoaded("update_text"); err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, errors.NewInvalidInput("id cannot be empty")
	}
	if err := s.session.Store().UpdateText(req.ID, req.Update); err != nil {
		return nil, err
	}
	return &UpdateTextResult{ID: req.ID}, nil
}

// RemoveAnnotation deletes a stroke or text annotation by id. Removing an
// absent id is a no-op.
func (s *Service) RemoveAnnotation(req RemoveAnnotationRequest) (*RemoveAnnotationResult, error) {
	if err := s.requireLoaded("remove_annotation"); err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, errors.NewInvalidInput("id cannot be empty")
	}
	store := s.session.Store()
	store.RemoveStroke(req.ID)
	store.RemoveText(req.ID)
	return &RemoveAnnotationResult{ID: req.ID}, nil
}

// ListAnnotations returns the annotations on one page, or on every page
// when PageNumber is zero.
func (s *Service) ListAnnotations(req ListAnnotationsRequest) (*ListAnnotationsResult, error) {
	if err := s.requireLoaded("list_annotations"); err != nil {
		return nil, err
	}
	if req.PageNumber < 0 {
		return nil, errors.NewInvalidInput("page number cannot be negative")
	}
	store := s.session.Store()
	var strokes []annotation.PencilStroke
	var texts []annotation.TextAnnotation
	if req.PageNumber == 0 {
		strokes = store.Strokes()
		texts = store.Texts()
	} else {
		strokes = store.StrokesOnPage(req.PageNumber)
		texts = store.TextsOnPage(req.PageNumber)
	}
	return &ListAnnotationsResult{
		Strokes:     strokes,
		Texts:       texts,
		StrokeCount: len(strokes),
		TextCount:   len(texts),
	}, nil
}

// HitTest picks the topmost annotations under a screen point: the last
// drawn stroke whose polyline passes within tolerance, and the last placed
// text annotation whose box contains the point.
func (s *Service) HitTest(req HitTestRequest) (*HitTestResult, error) {
	if err := s.requireLoaded("hit_test"); err != nil {
		return nil, err
	}
	if req.Tolerance < 0 {
		return nil, errors.NewInvalidInput("tolerance cannot be negative")
	}
	v := viewport(req.Zoom)
	p := v.ScreenToDocument(geom.Point{X: req.X, Y: req.Y})
	tolerance := v.ScreenLengthToDocument(req.Tolerance)
	store := s.session.Store()

	result := &HitTestResult{}
	for _, stroke := range store.StrokesOnPage(req.PageNumber) {
		if strokeHit(stroke, p, tolerance) {
			result.StrokeID = stroke.ID
		}
	}
	for _, t := range store.TextsOnPage(req.PageNumber) {
		if textBoxContains(t, p) {
			result.TextID = t.ID
		}
	}
	return result, nil
}

// strokeHit reports whether the point lies within tolerance of any segment
// of the stroke, counting half the stroke width as part of the target.
func strokeHit(stroke annotation.PencilStroke, p geom.Point, tolerance float64) bool {
	reach := tolerance + stroke.StrokeWidth/2
	for i := 0; i+1 < len(stroke.Points); i++ {
		if geom.DistanceToSegment(p, stroke.Points[i], stroke.Points[i+1]) <= reach {
			return true
		}
	}
	return false
}

// textBoxContains tests the point against the annotation's box. Width is
// approximated at half the font size per character, the same estimate the
// export underline uses.
func textBoxContains(t annotation.TextAnnotation, p geom.Point) bool {
	width := 0.5 * t.FontSize * float64(len([]rune(t.Text)))
	if width == 0 {
		width = t.FontSize
	}
	return p.X >= t.X && p.X <= t.X+width && p.Y >= t.Y && p.Y <= t.Y+t.FontSize
}

// MoveStroke translates a stroke by a screen-space delta. Absent ids are a
// no-op.
func (s *Service) MoveStroke(req MoveAnnotationRequest) (*MoveAnnotationResult, error) {
	if err := s.requireLoaded("move_annotation"); err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, errors.NewInvalidInput("id cannot be empty")
	}
	v := viewport(req.Zoom)
	delta := v.ScreenToDocument(geom.Point{X: req.DX, Y: req.DY})
	s.session.Store().MoveStroke(req.ID, delta.X, delta.Y)
	return &MoveAnnotationResult{ID: req.ID}, nil
}

// MoveText translates a text annotation by a screen-space delta.
func (s *Service) MoveText(req MoveAnnotationRequest) (*MoveAnnotationResult, error) {
	if err := s.requireLoaded("move_annotation"); err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, errors.NewInvalidInput("id cannot be empty")
	}
	v := viewport(req.Zoom)
	delta := v.ScreenToDocument(geom.Point{X: req.DX, Y: req.DY})
	s.session.Store().MoveText(req.ID, delta.X, delta.Y)
	return &MoveAnnotationResult{ID: req.ID}, nil
}

// MoveAnnotation translates a stroke or text annotation by a screen-space
// delta, whichever kind the id belongs to. Absent ids are a no-op, matching
// delete semantics.
func (s *Service) MoveAnnotation(req MoveAnnotationRequest) (*MoveAnnotationResult, error) {
	if err := s.requireLoaded("move_annotation"); err != nil {
		return nil, err
	}
	if req.ID == "" {
		return nil, errors.NewInvalidInput("id cannot be empty")
	}
	v := viewport(req.Zoom)
	delta := v.ScreenToDocument(geom.Point{X: req.DX, Y: req.DY})
	store := s.session.Store()
	store.MoveStroke(req.ID, delta.X, delta.Y)
	store.MoveText(req.ID, delta.X, delta.Y)
	return &MoveAnnotationResult{ID: req.ID}, nil
}

// InsertPage inserts a blank page after the given index and renumbers
// annotations in the same transaction.
func (s *Service) InsertPage(req InsertPageRequest) (*PageOpResult, error) {
	if err := s.session.InsertPage(req.AfterIndex); err != nil {
		return nil, err
	}
	return s.pageOpResult()
}

// RemovePage removes a page along with its annotations.
func (s *Service) RemovePage(req RemovePageRequest) (*PageOpResult, error) {
	if err := s.session.RemovePage(req.PageNumber); err != nil {
		return nil, err
	}
	return s.pageOpResult()
}

// MovePage moves a page to a new position, renumbering annotations on every
// page whose display number shifts.
func (s *Service) MovePage(req MovePageRequest) (*PageOpResult, error) {
	if err := s.session.MovePage(req.FromIndex, req.ToIndex); err != nil {
		return nil, err
	}
	return s.pageOpResult()
}

// RotatePage rotates a page by a multiple of 90 degrees.
func (s *Service) RotatePage(req RotatePageRequest) (*PageOpResult, error) {
	if err := s.session.RotatePage(req.PageNumber, req.Degrees); err != nil {
		return nil, err
	}
	return s.pageOpResult()
}

func (s *Service) pageOpResult() (*PageOpResult, error) {
	pages, err := s.session.Pages()
	if err != nil {
		return nil, err
	}
	return &PageOpResult{Pages: pageInfos(pages)}, nil
}

// Export writes an annotated copy of the open document to the output path:
// text runs are stamped into the copy, stroke renderings are returned as
// per-page content streams for the page-content collaborator.
func (s *Service) Export(req ExportRequest) (*ExportResult, error) {
	if req.OutputPath == "" {
		return nil, errors.NewInvalidInput("output path cannot be empty")
	}
	outputPath, err := s.pathValidator.NormalizePath(req.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	pages, err := s.exporter.Build()
	if err != nil {
		return nil, err
	}

	contents := make([]PageContent, 0, len(pages))
	for _, page := range pages {
		strokes := append(page.Strokes, export.UnderlineStrokes(page.Texts)...)
		raw, states := export.ContentStream(strokes)
		if len(raw) == 0 {
			continue
		}
		contents = append(contents, PageContent{
			PageNumber:     page.PageNumber,
			Content:        string(raw),
			GraphicsStates: states,
		})
	}

	if err := s.writer.ExportFile(s.session.Path(), outputPath, pages); err != nil {
		return nil, err
	}

	strokeCount, textCount := s.session.Store().Counts()
	return &ExportResult{
		OutputPath:  outputPath,
		Pages:       len(pages),
		StrokeCount: strokeCount,
		TextCount:   textCount,
		Contents:    contents,
	}, nil
}

// EditorInfo reports editor state for the server info surface.
func (s *Service) EditorInfo(req EditorInfoRequest, serverName, version string) (*EditorInfoResult, error) {
	strokeCount, textCount := s.session.Store().Counts()
	pages := 0
	if s.session.Loaded() {
		if n, err := s.session.PageCount(); err == nil {
			pages = n
		}
	}
	return &EditorInfoResult{
		ServerName:        serverName,
		Version:           version,
		DocumentDirectory: s.pathValidator.Root(),
		DocumentPath:      s.session.Path(),
		Loaded:            s.session.Loaded(),
		Pages:             pages,
		StrokeCount:       strokeCount,
		TextCount:         textCount,
		Tools:             availableTools(),
	}, nil
}

// availableTools lists the host-surface tools with their usage guidance.
func availableTools() []ToolInfo {
	names := []string{
		"annotator_open_document",
		"annotator_add_stroke",
		"annotator_erase",
		"annotator_add_text",
		"annotator_update_text",
		"annotator_move_annotation",
		"annotator_remove_annotation",
		"annotator_list_annotations",
		"annotator_hit_test",
		"annotator_page_insert",
		"annotator_page_remove",
		"annotator_page_move",
		"annotator_page_rotate",
		"annotator_export",
		"annotator_server_info",
	}
	tools := make([]ToolInfo, 0, len(names))
	for _, name := range names {
		tools = append(tools, ToolInfo{
			Name:        name,
			Description: descriptions.GetToolDescription(name),
		})
	}
	return tools
}
