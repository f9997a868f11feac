// Package document owns the editing session: the loaded PDF, its stable
// page identities, and the page-structural operations that keep the
// annotation store's page numbers valid.
package document

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/inkmark/mcp-pdf-annotator/internal/annotation"
	anerr "github.com/inkmark/mcp-pdf-annotator/internal/annotation/errors"
	"github.com/inkmark/mcp-pdf-annotator/internal/document/security"
)

// Page carries the stable identity and dimensions of one page. The ID
// never changes while the display page number shifts on insert, remove and
// reorder.
type Page struct {
	ID        string  `json:"id"`
	WidthPts  float64 `json:"width_pts"`
	HeightPts float64 `json:"height_pts"`
}

// Session is the explicit handle to the loaded document and its annotation
// store. It replaces any ambient document state: every operation takes the
// session it works on.
type Session struct {
	mu            sync.Mutex
	pathValidator *security.PathValidator
	validator     *Validator

	path   string
	pages  []Page
	loaded bool
	store  *annotation.Store
}

// NewSession creates a session rooted at the configured document directory
func NewSession(configuredDirectory string, maxFileSize int64) (*Session, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}
	return &Session{
		pathValidator: pathValidator,
		validator:     NewValidator(maxFileSize),
		store:         annotation.NewStore(),
	}, nil
}

// newConfiguration returns the pdfcpu configuration used for every
// document operation.
func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Store returns the annotation store owned by this session
func (s *Session) Store() *annotation.Store {
	return s.store
}

// Loaded reports whether a document is currently open
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Path returns the loaded document's path, or "" when none is loaded
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Open loads a PDF document, replacing any previously loaded one. The
// annotation store is cleared; the previous document's annotations do not
// carry over.
func (s *Session) Open(path string) error {
	normalized, err := s.pathValidator.NormalizePath(path)
	if err != nil {
		return fmt.Errorf("security validation failed: %w", err)
	}

	if err := s.validator.ValidateFile(normalized); err != nil {
		return fmt.Errorf("document validation failed: %w", err)
	}

	dims, err := readPageDims(normalized)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	pages := make([]Page, len(dims))
	for i, d := range dims {
		pages[i] = Page{ID: uuid.New().String(), WidthPts: d.Width, HeightPts: d.Height}
	}

	s.mu.Lock()
	s.path = normalized
	s.pages = pages
	s.loaded = true
	s.mu.Unlock()

	s.store.Clear()
	return nil
}

// readPageDims opens the document with pdfcpu and returns the media box
// dimensions of every page, in points.
func readPageDims(path string) ([]pageDim, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	ctx, err := api.ReadContext(file, newConfiguration())
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}

	out := make([]pageDim, len(dims))
	for i, d := range dims {
		out[i] = pageDim{Width: d.Width, Height: d.Height}
	}
	if len(out) != ctx.PageCount {
		return nil, fmt.Errorf("page dimension count %d does not match page count %d", len(out), ctx.PageCount)
	}
	return out, nil
}

// pageDim decouples the session from pdfcpu's dimension type
type pageDim struct {
	Width  float64
	Height float64
}

// PageCount returns the number of pages in the loaded document
func (s *Session) PageCount() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return 0, anerr.NewDocumentNotLoaded("page_count")
	}
	return len(s.pages), nil
}

// PageSize returns the dimensions in points of the given 1-based page
func (s *Session) PageSize(pageNumber int) (width, height float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return 0, 0, anerr.NewDocumentNotLoaded("page_size")
	}
	if pageNumber < 1 || pageNumber > len(s.pages) {
		return 0, 0, anerr.NewNotFound(strconv.Itoa(pageNumber)).WithContext("page_size").WithPage(pageNumber)
	}
	p := s.pages[pageNumber-1]
	return p.WidthPts, p.HeightPts, nil
}

// PageID returns the stable identifier of the given 1-based page
func (s *Session) PageID(pageNumber int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return "", anerr.NewDocumentNotLoaded("page_id")
	}
	if pageNumber < 1 || pageNumber > len(s.pages) {
		return "", anerr.NewNotFound(strconv.Itoa(pageNumber)).WithContext("page_id").WithPage(pageNumber)
	}
	return s.pages[pageNumber-1].ID, nil
}

// Pages returns a snapshot of the page sequence
func (s *Session) Pages() ([]Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, anerr.NewDocumentNotLoaded("pages")
	}
	out := make([]Page, len(s.pages))
	copy(out, s.pages)
	return out, nil
}

// InsertPage inserts a blank page after the given 1-based position; 0
// inserts before the first page. The new page inherits its neighbor's
// dimensions. The file operation and the store renumbering commit
// together: on failure the store is untouched.
func (s *Session) InsertPage(afterIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return anerr.NewDocumentNotLoaded("insert_page")
	}
	if afterIndex < 0 || afterIndex > len(s.pages) {
		return anerr.NewInvalidInput("insert position out of range").WithContext("insert_page")
	}

	conf := newConfiguration()
	var err error
	if afterIndex == 0 {
		err = api.InsertPagesFile(s.path, "", []string{"1"}, true, nil, conf)
	} else {
		err = api.InsertPagesFile(s.path, "", []string{strconv.Itoa(afterIndex)}, false, nil, conf)
	}
	if err != nil {
		return fmt.Errorf("failed to insert page: %w", err)
	}

	neighbor := afterIndex
	if neighbor == 0 {
		neighbor = 1
	}
	template := s.pages[neighbor-1]
	newPage := Page{ID: uuid.New().String(), WidthPts: template.WidthPts, HeightPts: template.HeightPts}

	s.pages = append(s.pages, Page{})
	copy(s.pages[afterIndex+1:], s.pages[afterIndex:])
	s.pages[afterIndex] = newPage

	s.store.RenumberOnPageInsert(afterIndex)
	return nil
}

// RemovePage deletes the given 1-based page. Annotations on it are
// dropped and later pages renumber, atomically with the file operation.
func (s *Session) RemovePage(pageNumber int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return anerr.NewDocumentNotLoaded("remove_page")
	}
	if pageNumber < 1 || pageNumber > len(s.pages) {
		return anerr.NewNotFound(strconv.Itoa(pageNumber)).WithContext("remove_page").WithPage(pageNumber)
	}
	if len(s.pages) == 1 {
		return anerr.NewInvalidInput("cannot remove the last remaining page").WithContext("remove_page")
	}

	if err := api.RemovePagesFile(s.path, "", []string{strconv.Itoa(pageNumber)}, newConfiguration()); err != nil {
		return fmt.Errorf("failed to remove page: %w", err)
	}

	s.pages = append(s.pages[:pageNumber-1], s.pages[pageNumber:]...)
	s.store.RenumberOnPageRemove(pageNumber)
	return nil
}

// MovePage moves the page at fromIndex to toIndex (both 1-based), shifting
// the pages in between. Annotation page numbers follow the same
// permutation.
func (s *Session) MovePage(fromIndex, toIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return anerr.NewDocumentNotLoaded("move_page")
	}
	count := len(s.pages)
	if fromIndex < 1 || fromIndex > count {
		return anerr.NewNotFound(strconv.Itoa(fromIndex)).WithContext("move_page").WithPage(fromIndex)
	}
	if toIndex < 1 || toIndex > count {
		return anerr.NewInvalidInput("target position out of range").WithContext("move_page")
	}
	if fromIndex == toIndex {
		return nil
	}

	order := moveOrder(count, fromIndex, toIndex)
	selected := make([]string, count)
	for i, page := range order {
		selected[i] = strconv.Itoa(page)
	}

	if err := api.CollectFile(s.path, "", selected, newConfiguration()); err != nil {
		return fmt.Errorf("failed to reorder pages: %w", err)
	}

	reordered := make([]Page, count)
	for i, page := range order {
		reordered[i] = s.pages[page-1]
	}
	s.pages = reordered

	s.store.RenumberOnPageMove(fromIndex, toIndex)
	return nil
}

// RotatePage rotates the given 1-based page by degrees (a multiple of 90).
// Page numbers are unaffected, so no renumbering happens.
func (s *Session) RotatePage(pageNumber, degrees int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return anerr.NewDocumentNotLoaded("rotate_page")
	}
	if pageNumber < 1 || pageNumber > len(s.pages) {
		return anerr.NewNotFound(strconv.Itoa(pageNumber)).WithContext("rotate_page").WithPage(pageNumber)
	}
	if degrees%90 != 0 {
		return anerr.NewInvalidInput("rotation must be a multiple of 90 degrees").WithContext("rotate_page")
	}

	if err := api.RotateFile(s.path, "", degrees, []string{strconv.Itoa(pageNumber)}, newConfiguration()); err != nil {
		return fmt.Errorf("failed to rotate page: %w", err)
	}

	if degrees%180 != 0 {
		p := &s.pages[pageNumber-1]
		p.WidthPts, p.HeightPts = p.HeightPts, p.WidthPts
	}
	return nil
}

// moveOrder builds the page permutation for moving fromIndex to toIndex in
// a document of count pages. The result lists old 1-based page numbers in
// their new order.
func moveOrder(count, fromIndex, toIndex int) []int {
	order := make([]int, 0, count)
	for page := 1; page <= count; page++ {
		if page != fromIndex {
			order = append(order, page)
		}
	}
	out := make([]int, 0, count)
	out = append(out, order[:toIndex-1]...)
	out = append(out, fromIndex)
	out = append(out, order[toIndex-1:]...)
	return out
}
