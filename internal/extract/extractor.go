// Package extract turns uploaded document bytes into plain text for
// the downstream parsers. Extraction is best-effort: callers treat any
// error as "no structured data for this upload" and move on.
package extract

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Result carries the extracted text together with the extractor's own
// confidence estimate (0-100). Confidence travels with the text, never
// through shared state.
type Result struct {
	Text       string `json:"text"`
	Confidence int    `json:"confidence"`
}

// Confidence levels per extraction path. The PDF text layer is not
// quite lossless (ligatures, column order), so it sits just below the
// plain-text path.
const (
	confidencePlainText = 100
	confidencePDFText   = 99
)

// Text extracts plain text from an uploaded file, branching on content
// type with a filename-extension fallback. Image uploads need an
// external OCR step this service does not run, so they return an error.
func Text(filename, contentType string, data []byte) (Result, error) {
	switch {
	case contentType == "application/pdf" || hasExt(filename, ".pdf"):
		return pdfText(data)
	case strings.HasPrefix(contentType, "image/") || hasAnyExt(filename, ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"):
		return Result{}, fmt.Errorf("image %s requires OCR, not extracted", filename)
	case strings.HasPrefix(contentType, "text/") || hasAnyExt(filename, ".txt", ".csv"):
		return plainText(data)
	default:
		return Result{}, fmt.Errorf("unsupported content type %q for %s", contentType, filename)
	}
}

func hasExt(filename, ext string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ext)
}

func hasAnyExt(filename string, exts ...string) bool {
	for _, ext := range exts {
		if hasExt(filename, ext) {
			return true
		}
	}
	return false
}

func pdfText(data []byte) (Result, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("failed to open PDF: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest.
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	text := cleanText(builder.String())
	if text == "" {
		return Result{}, fmt.Errorf("no text layer found in PDF")
	}
	return Result{Text: text, Confidence: confidencePDFText}, nil
}

func plainText(data []byte) (Result, error) {
	if len(data) == 0 {
		return Result{}, fmt.Errorf("empty text file")
	}

	// Strip a UTF-8 BOM if present.
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}
	if !utf8.Valid(data) {
		return Result{}, fmt.Errorf("text file is not valid UTF-8")
	}

	text := cleanText(string(data))
	if text == "" {
		return Result{}, fmt.Errorf("no text could be extracted from file")
	}
	return Result{Text: text, Confidence: confidencePlainText}, nil
}

// cleanText normalizes line endings, drops NUL bytes, and trims blank
// lines.
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\x00", "")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
