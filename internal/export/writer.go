package export

import (
	"fmt"
	"io"
	"os"
	"strconv"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/inkmark/mcp-pdf-annotator/internal/geom"
)

// Writer stamps export payloads into a PDF file. Text runs are applied as
// absolutely positioned text watermarks; stroke polylines are returned as
// content stream bytes for the page-content collaborator (see ContentStream).
type Writer struct {
	conf *model.Configuration
}

// NewWriter creates a writer with relaxed validation, matching the settings
// used when the document was opened.
func NewWriter() *Writer {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Writer{conf: conf}
}

// ExportFile copies the source document to dst and stamps every page's text
// runs onto the copy. The source file is never modified.
func (w *Writer) ExportFile(src, dst string, pages []PageExport) error {
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("failed to copy document: %w", err)
	}
	for _, page := range pages {
		if err := w.stampPage(dst, page); err != nil {
			os.Remove(dst)
			return err
		}
	}
	return nil
}

// stampPage applies one page's text runs as positioned text watermarks.
func (w *Writer) stampPage(path string, page PageExport) error {
	selected := []string{strconv.Itoa(page.PageNumber)}
	for _, t := range page.Texts {
		desc := fmt.Sprintf("fontname:%s, points:%d, scale:1 abs, pos:bl, rot:0, op:%.2f, fillcolor:%s",
			t.FontName, int(t.FontSize+0.5), t.Opacity, t.Color)
		wm, err := pdfcpu.ParseTextWatermarkDetails(t.Text, desc, true, types.POINTS)
		if err != nil {
			return fmt.Errorf("failed to parse text watermark for %s: %w", t.ID, err)
		}
		wm.Dx = t.X
		wm.Dy = t.Y
		if err := pdfapi.AddWatermarksFile(path, "", selected, wm, w.conf); err != nil {
			return fmt.Errorf("failed to stamp text %s on page %d: %w", t.ID, page.PageNumber, err)
		}
	}
	return nil
}

// UnderlineStrokes synthesizes a thin line under each underlined text run so
// underlines survive export even though the stamped font carries none. Text
// width is approximated at half the font size per character.
func UnderlineStrokes(texts []TextExport) []StrokeExport {
	var out []StrokeExport
	for _, t := range texts {
		if !t.Underline || t.Text == "" {
			continue
		}
		width := 0.5 * t.FontSize * float64(len([]rune(t.Text)))
		y := t.Y - 0.1*t.FontSize
		out = append(out, StrokeExport{
			ID: t.ID + "-underline",
			Points: []geom.Point{
				{X: t.X, Y: y},
				{X: t.X + width, Y: y},
			},
			Color:   t.Color,
			Width:   0.06 * t.FontSize,
			Opacity: t.Opacity,
		})
	}
	return out
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
