package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/link2itinerary/core"
)

var (
	boldMarkers = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	codeMarkers = regexp.MustCompile("`([^`]+)`")
	linkSyntax  = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
)

// PDFRenderer lays out the Markdown rendering of an itinerary as an A4 PDF.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the itinerary into PDF bytes.
func (r *PDFRenderer) Render(resp *core.PlannerResponse, meta core.PageMetadata) ([]byte, error) {
	if resp == nil {
		return nil, fmt.Errorf("render pdf: nil itinerary")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(meta.Title, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(markdown(resp, meta), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			pdf.Ln(3)
		case strings.HasPrefix(line, "#"):
			level := len(line) - len(strings.TrimLeft(line, "#"))
			renderHeading(pdf, tr(strings.TrimSpace(line[level:])), level)
		case strings.HasPrefix(line, "- "):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr("• "+cleanInlineMarkdown(line[2:])), "", "L", false)
		case strings.HasPrefix(line, "  "):
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(90, 90, 90)
			pdf.SetX(pdf.GetX() + 4)
			pdf.MultiCell(0, 4.5, tr(cleanInlineMarkdown(trimmed)), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		case strings.HasPrefix(line, "Source: "):
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(100, 100, 100)
			pdf.MultiCell(0, 5, tr(line), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(line)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 14, 3: 12}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(1)
}

// cleanInlineMarkdown strips the inline formatting the Markdown renderer emits.
// Links keep their target since a printed page cannot be clicked.
func cleanInlineMarkdown(text string) string {
	text = boldMarkers.ReplaceAllString(text, "$1")
	text = codeMarkers.ReplaceAllString(text, "$1")
	text = linkSyntax.ReplaceAllString(text, "$1: $2")
	return strings.TrimSpace(text)
}
