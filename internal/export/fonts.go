package export

import "github.com/inkmark/mcp-pdf-annotator/internal/annotation"

// Base-14 font families reachable from the annotation font selector.
// Georgia falls back to the Times family and Verdana to Helvetica, the
// closest standard faces; anything unrecognized resolves to Helvetica.
const (
	baseHelvetica = "Helvetica"
	baseTimes     = "Times"
	baseCourier   = "Courier"
)

// ResolveFontVariant maps a font family plus bold/italic flags onto one of
// the standard base-14 font names understood by every PDF viewer.
func ResolveFontVariant(family annotation.FontFamily, bold, italic bool) string {
	base := baseHelvetica
	switch family {
	case annotation.FontArial, annotation.FontVerdana:
		base = baseHelvetica
	case annotation.FontTimesNewRoman, annotation.FontGeorgia:
		base = baseTimes
	case annotation.FontCourierNew:
		base = baseCourier
	}

	if base == baseTimes {
		switch {
		case bold && italic:
			return "Times-BoldItalic"
		case bold:
			return "Times-Bold"
		case italic:
			return "Times-Italic"
		default:
			return "Times-Roman"
		}
	}

	switch {
	case bold && italic:
		return base + "-BoldOblique"
	case bold:
		return base + "-Bold"
	case italic:
		return base + "-Oblique"
	default:
		return base
	}
}
