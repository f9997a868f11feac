package annotation

import (
	"sync"

	"github.com/google/uuid"

	anerr "github.com/inkmark/mcp-pdf-annotator/internal/annotation/errors"
	"github.com/inkmark/mcp-pdf-annotator/internal/geom"
)

// Store owns every pencil stroke and text annotation of the active
// document. It is session-scoped: a new document load replaces its contents
// wholesale via Clear.
//
// All mutating operations are atomic: no observer or reader ever sees a
// half-applied erase or renumber. Observers are notified once per completed
// mutation, after the store is consistent again; this is the explicit
// checkpoint the thumbnail refresh hangs off, deliberately decoupled from
// every intermediate edit.
type Store struct {
	mu          sync.RWMutex
	strokes     map[string]*PencilStroke
	strokeOrder []string
	texts       map[string]*TextAnnotation
	textOrder   []string

	obsMu     sync.Mutex
	observers []func()
}

// NewStore creates an empty annotation store
func NewStore() *Store {
	return &Store{
		strokes: make(map[string]*PencilStroke),
		texts:   make(map[string]*TextAnnotation),
	}
}

// Subscribe registers fn to run after every completed mutation. The
// callback must not mutate the store.
func (s *Store) Subscribe(fn func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, fn)
}

// notify runs the observer callbacks. Called outside the store lock so
// observers may query the (now consistent) store.
func (s *Store) notify() {
	s.obsMu.Lock()
	observers := make([]func(), len(s.observers))
	copy(observers, s.observers)
	s.obsMu.Unlock()

	for _, fn := range observers {
		fn()
	}
}

// Clear removes every annotation. Invoked when a document loads or the
// editor resets.
func (s *Store) Clear() {
	s.mu.Lock()
	s.strokes = make(map[string]*PencilStroke)
	s.strokeOrder = nil
	s.texts = make(map[string]*TextAnnotation)
	s.textOrder = nil
	s.mu.Unlock()

	s.notify()
}

// AddStroke validates and persists a new pencil stroke, returning its id.
// Degenerate input (fewer than two points, non-positive width, opacity
// outside [0,1], page below 1) is rejected with InvalidInput and nothing is
// stored.
func (s *Store) AddStroke(points []geom.Point, style StrokeStyle, pageNumber int) (string, error) {
	if len(points) < 2 {
		return "", anerr.NewInvalidInput("stroke needs at least 2 points").WithContext("add_stroke")
	}
	if style.StrokeWidth <= 0 {
		return "", anerr.NewInvalidInput("stroke width must be positive").WithContext("add_stroke")
	}
	if style.Opacity < 0 || style.Opacity > 1 {
		return "", anerr.NewInvalidInput("opacity must be within [0,1]").WithContext("add_stroke")
	}
	if pageNumber < 1 {
		return "", anerr.NewInvalidInput("page number must be at least 1").WithContext("add_stroke")
	}

	stroke := &PencilStroke{
		ID:          uuid.New().String(),
		Points:      make([]geom.Point, len(points)),
		Color:       style.Color,
		StrokeWidth: style.StrokeWidth,
		Opacity:     style.Opacity,
		PageNumber:  pageNumber,
	}
	copy(stroke.Points, points)

	s.mu.Lock()
	s.strokes[stroke.ID] = stroke
	s.strokeOrder = append(s.strokeOrder, stroke.ID)
	s.mu.Unlock()

	s.notify()
	return stroke.ID, nil
}

// RemoveStroke deletes a stroke by id. Removing an absent id is a no-op.
func (s *Store) RemoveStroke(id string) {
	s.mu.Lock()
	if _, ok := s.strokes[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.strokes, id)
	s.strokeOrder = removeID(s.strokeOrder, id)
	s.mu.Unlock()

	s.notify()
}

// Stroke returns a copy of the stroke with the given id
func (s *Store) Stroke(id string) (PencilStroke, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stroke, ok := s.strokes[id]
	if !ok {
		return PencilStroke{}, false
	}
	return stroke.Clone(), true
}

// MoveStroke translates a stroke by a document-space delta. Moving an
// absent id is a no-op.
func (s *Store) MoveStroke(id string, dx, dy float64) {
	s.mu.Lock()
	stroke, ok := s.strokes[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	for i := range stroke.Points {
		stroke.Points[i].X += dx
		stroke.Points[i].Y += dy
	}
	s.mu.Unlock()

	s.notify()
}

// Strokes returns copies of all strokes in insertion (draw) order
func (s *Store) Strokes() []PencilStroke {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]PencilStroke, 0, len(s.strokeOrder))
	for _, id := range s.strokeOrder {
		out = append(out, s.strokes[id].Clone())
	}
	return out
}

// StrokesOnPage returns copies of the strokes on the given page, in draw order
func (s *Store) StrokesOnPage(pageNumber int) []PencilStroke {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []PencilStroke
	for _, id := range s.strokeOrder {
		if s.strokes[id].PageNumber == pageNumber {
			out = append(out, s.strokes[id].Clone())
		}
	}
	return out
}

// AddText validates and persists a new text annotation, returning its id.
// The ID field of the input is ignored.
func (s *Store) AddText(t TextAnnotation) (string, error) {
	if t.Text == "" {
		return "", anerr.NewInvalidInput("text cannot be empty").WithContext("add_text")
	}
	if t.FontSize <= 0 {
		return "", anerr.NewInvalidInput("font size must be positive").WithContext("add_text")
	}
	if t.PageNumber < 1 {
		return "", anerr.NewInvalidInput("page number must be at least 1").WithContext("add_text")
	}
	if t.FontFamily == "" {
		t.FontFamily = FontArial
	}
	if !t.FontFamily.Valid() {
		return "", anerr.NewInvalidInput("unknown font family").WithContext("add_text")
	}

	t.ID = uuid.New().String()

	s.mu.Lock()
	s.texts[t.ID] = &t
	s.textOrder = append(s.textOrder, t.ID)
	s.mu.Unlock()

	s.notify()
	return t.ID, nil
}

// UpdateText applies a partial field update to a text annotation. Updating
// an absent id is a no-op. Invalid field values reject the whole update.
func (s *Store) UpdateText(id string, upd TextUpdate) error {
	if upd.FontSize != nil && *upd.FontSize <= 0 {
		return anerr.NewInvalidInput("font size must be positive").WithContext("update_text")
	}
	if upd.Text != nil && *upd.Text == "" {
		return anerr.NewInvalidInput("text cannot be empty").WithContext("update_text")
	}
	if upd.FontFamily != nil && !upd.FontFamily.Valid() {
		return anerr.NewInvalidInput("unknown font family").WithContext("update_text")
	}

	s.mu.Lock()
	t, ok := s.texts[id]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	if upd.Text != nil {
		t.Text = *upd.Text
	}
	if upd.X != nil {
		t.X = *upd.X
	}
	if upd.Y != nil {
		t.Y = *upd.Y
	}
	if upd.FontSize != nil {
		t.FontSize = *upd.FontSize
	}
	if upd.Color != nil {
		t.Color = *upd.Color
	}
	if upd.FontFamily != nil {
		t.FontFamily = *upd.FontFamily
	}
	if upd.Bold != nil {
		t.Bold = *upd.Bold
	}
	if upd.Italic != nil {
		t.Italic = *upd.Italic
	}
	if upd.Underline != nil {
		t.Underline = *upd.Underline
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// RemoveText deletes a text annotation by id. Removing an absent id is a
// no-op.
func (s *Store) RemoveText(id string) {
	s.mu.Lock()
	if _, ok := s.texts[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.texts, id)
	s.textOrder = removeID(s.textOrder, id)
	s.mu.Unlock()

	s.notify()
}

// Text returns a copy of the text annotation with the given id
func (s *Store) Text(id string) (TextAnnotation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.texts[id]
	if !ok {
		return TextAnnotation{}, false
	}
	return *t, true
}

// MoveText translates a text annotation by a document-space delta. Moving
// an absent id is a no-op.
func (s *Store) MoveText(id string, dx, dy float64) {
	s.mu.Lock()
	t, ok := s.texts[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	t.X += dx
	t.Y += dy
	s.mu.Unlock()

	s.notify()
}

// Texts returns copies of all text annotations in insertion order
func (s *Store) Texts() []TextAnnotation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]TextAnnotation, 0, len(s.textOrder))
	for _, id := range s.textOrder {
		out = append(out, *s.texts[id])
	}
	return out
}

// TextsOnPage returns copies of the text annotations on the given page
func (s *Store) TextsOnPage(pageNumber int) []TextAnnotation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []TextAnnotation
	for _, id := range s.textOrder {
		if s.texts[id].PageNumber == pageNumber {
			out = append(out, *s.texts[id])
		}
	}
	return out
}

// Counts returns the number of strokes and text annotations
func (s *Store) Counts() (strokes, texts int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.strokes), len(s.texts)
}

// RenumberOnPageInsert shifts annotations after a page insertion: every
// annotation on a page past afterIndex moves one page down the sequence.
func (s *Store) RenumberOnPageInsert(afterIndex int) {
	s.mu.Lock()
	for _, stroke := range s.strokes {
		if stroke.PageNumber > afterIndex {
			stroke.PageNumber++
		}
	}
	for _, t := range s.texts {
		if t.PageNumber > afterIndex {
			t.PageNumber++
		}
	}
	s.mu.Unlock()

	s.notify()
}

// RenumberOnPageRemove drops every annotation on the removed page and
// decrements the page number of every annotation after it, atomically.
func (s *Store) RenumberOnPageRemove(removedIndex int) {
	s.mu.Lock()
	for id, stroke := range s.strokes {
		switch {
		case stroke.PageNumber == removedIndex:
			delete(s.strokes, id)
			s.strokeOrder = removeID(s.strokeOrder, id)
		case stroke.PageNumber > removedIndex:
			stroke.PageNumber--
		}
	}
	for id, t := range s.texts {
		switch {
		case t.PageNumber == removedIndex:
			delete(s.texts, id)
			s.textOrder = removeID(s.textOrder, id)
		case t.PageNumber > removedIndex:
			t.PageNumber--
		}
	}
	s.mu.Unlock()

	s.notify()
}

// RenumberOnPageMove applies the same permutation to annotation page
// numbers as the physical page move from fromIndex to toIndex applied to
// the pages.
func (s *Store) RenumberOnPageMove(fromIndex, toIndex int) {
	if fromIndex == toIndex {
		return
	}

	remap := func(page int) int {
		switch {
		case page == fromIndex:
			return toIndex
		case fromIndex < toIndex && page > fromIndex && page <= toIndex:
			return page - 1
		case fromIndex > toIndex && page >= toIndex && page < fromIndex:
			return page + 1
		default:
			return page
		}
	}

	s.mu.Lock()
	for _, stroke := range s.strokes {
		stroke.PageNumber = remap(stroke.PageNumber)
	}
	for _, t := range s.texts {
		t.PageNumber = remap(t.PageNumber)
	}
	s.mu.Unlock()

	s.notify()
}

// removeID removes the first occurrence of id from order, preserving the
// relative order of the rest.
func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
