package resume

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// RenderPDF lays the generated resume text out line by line on A4 pages.
func RenderPDF(content string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)

	// Core fonts are cp1252 only; translate so model output with typographic
	// punctuation does not abort the render.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(content, "\n") {
		// MultiCell wraps long lines and advances to the next page as needed.
		pdf.MultiCell(190, 6, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
