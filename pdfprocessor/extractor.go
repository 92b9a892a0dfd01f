// extractor.go implements text extraction from in-memory PDF uploads using
// the ledongthuc/pdf library.
package pdfprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"paperdesk/tokenizer"
)

// ErrNoContent is returned when a PDF contains no extractable text at all.
var ErrNoContent = errors.New("no text content found in PDF")

// Document is the extracted form of one uploaded PDF. It is immutable once
// built; token and character counts are derived from Text on demand rather
// than stored, so they cannot drift from the text they describe.
type Document struct {
	// Name is the document identity: the uploaded filename
	Name string

	// Text is the full concatenated text with page boundary markers
	Text string

	// TotalPages is the page count of the source PDF
	TotalPages int

	// ExtractedPages is the number of pages that yielded text
	ExtractedPages int

	// SkippedPages is the number of pages that yielded nothing (e.g.
	// scanned/image-only pages). Skipping is normal, not an error.
	SkippedPages int
}

// CharCount returns the character length of the extracted text.
func (d *Document) CharCount() int {
	return len(d.Text)
}

// TokenCount returns the cl100k_base token count of the extracted text.
func (d *Document) TokenCount() int {
	return tokenizer.Count(d.Text)
}

// Preview returns a head/tail display preview of the document text:
// full text up to 2000 characters, otherwise the first and last 1000
// characters with an elision marker.
func (d *Document) Preview() string {
	return Preview(d.Text, 2000, 1000)
}

// Extract reads a PDF from r and returns its Document. The stream cursor is
// reset to the start before reading, so callers (and caching layers above)
// may hand over a reader in any position.
func Extract(r io.ReadSeeker, name string) (*Document, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind PDF stream: %w", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF stream: %w", err)
	}
	return ExtractBytes(data, name)
}

// ExtractBytes parses an in-memory PDF and returns its Document.
//
// For each page in document order (1-indexed), the raw text is extracted and
// appended behind a page marker; a page whose extraction yields empty text or
// fails contributes nothing and is counted as skipped. Only a document with
// no extractable text anywhere is an error.
func ExtractBytes(data []byte, name string) (*Document, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}

	totalPages := reader.NumPage()
	pages := make([]string, totalPages)
	extracted := 0

	for i := 1; i <= totalPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A page that fails to yield text contributes nothing.
			continue
		}
		pages[i-1] = strings.TrimSpace(text)
		if pages[i-1] != "" {
			extracted++
		}
	}

	doc := &Document{
		Name:           name,
		Text:           assembleText(pages),
		TotalPages:     totalPages,
		ExtractedPages: extracted,
		SkippedPages:   totalPages - extracted,
	}

	if doc.Text == "" {
		return doc, ErrNoContent
	}
	return doc, nil
}
