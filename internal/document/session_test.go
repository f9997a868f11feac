package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	anerr "github.com/inkmark/mcp-pdf-annotator/internal/annotation/errors"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(t.TempDir(), 100*1024*1024)
	require.NoError(t, err)
	return s
}

// writeFixturePDF writes a minimal n-page PDF into dir, tracking object
// offsets so the xref table is exact.
func writeFixturePDF(t *testing.T, dir string, pages int) string {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}
	obj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		obj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n", 3+i))
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefOffset)

	path := filepath.Join(dir, "fixture.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestSession_OpenValidDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeFixturePDF(t, dir, 2)

	s, err := NewSession(dir, 100*1024*1024)
	require.NoError(t, err)
	require.NoError(t, s.Open(path))

	assert.True(t, s.Loaded())
	assert.Equal(t, path, s.Path())

	count, err := s.PageCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	w, h, err := s.PageSize(1)
	require.NoError(t, err)
	assert.InDelta(t, 612.0, w, 1e-9)
	assert.InDelta(t, 792.0, h, 1e-9)

	id1, err := s.PageID(1)
	require.NoError(t, err)
	id2, err := s.PageID(2)
	require.NoError(t, err)
	assert.NotEmpty(t, id1)
	assert.NotEqual(t, id1, id2, "pages carry distinct stable identities")
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t)
	assert.NotNil(t, s.Store())
	assert.False(t, s.Loaded())
	assert.Empty(t, s.Path())

	_, err := NewSession("", 1024)
	assert.Error(t, err, "empty document directory must be rejected")
}

func TestSession_OperationsBeforeOpenFailDocumentNotLoaded(t *testing.T) {
	s := newTestSession(t)

	_, err := s.PageCount()
	assert.True(t, anerr.IsDocumentNotLoaded(err))

	_, _, err = s.PageSize(1)
	assert.True(t, anerr.IsDocumentNotLoaded(err))

	_, err = s.PageID(1)
	assert.True(t, anerr.IsDocumentNotLoaded(err))

	_, err = s.Pages()
	assert.True(t, anerr.IsDocumentNotLoaded(err))

	assert.True(t, anerr.IsDocumentNotLoaded(s.InsertPage(0)))
	assert.True(t, anerr.IsDocumentNotLoaded(s.RemovePage(1)))
	assert.True(t, anerr.IsDocumentNotLoaded(s.MovePage(1, 2)))
	assert.True(t, anerr.IsDocumentNotLoaded(s.RotatePage(1, 90)))
}

func TestSession_OpenRejectsInvalidFiles(t *testing.T) {
	s := newTestSession(t)

	err := s.Open("missing.pdf")
	assert.Error(t, err)
	assert.False(t, s.Loaded(), "a failed open must not mark the session loaded")

	err = s.Open("/outside/of/root.pdf")
	assert.Error(t, err, "paths outside the document directory are refused")
}

func TestMoveOrder(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		from, to  int
		wantOrder []int
	}{
		{"first to last of three", 3, 1, 3, []int{2, 3, 1}},
		{"last to first of three", 3, 3, 1, []int{3, 1, 2}},
		{"middle forward", 4, 2, 3, []int{1, 3, 2, 4}},
		{"middle backward", 4, 3, 2, []int{1, 3, 2, 4}},
		{"two pages swap", 2, 1, 2, []int{2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := moveOrder(tt.count, tt.from, tt.to)
			assert.Equal(t, tt.wantOrder, got)
		})
	}
}
