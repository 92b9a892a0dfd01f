// Package pdfprocessor turns uploaded PDF binaries into page-addressable text
// for the reading session. This file holds the pure text atoms composed by
// the extractor.
package pdfprocessor

import (
	"fmt"
	"strings"
)

// PageMarkerFormat is the boundary marker inserted before each page's text.
// Pages are 1-indexed. The assistant is instructed to cite these markers, so
// the format is part of the prompt contract and must stay stable.
const PageMarkerFormat = "--- [Page %d] ---"

// PageMarker returns the boundary marker for a 1-indexed page number.
func PageMarker(page int) string {
	return fmt.Sprintf(PageMarkerFormat, page)
}

// assembleText concatenates per-page texts into the document text.
// Each page that yields non-blank text is prefixed with its page marker;
// pages with empty extraction contribute nothing, marker included. Page
// numbers follow the input order, 1-indexed, so a skipped page leaves a gap
// in the marker sequence rather than renumbering later pages.
func assembleText(pages []string) string {
	var b strings.Builder
	for i, page := range pages {
		text := strings.TrimSpace(page)
		if text == "" {
			continue
		}
		b.WriteString("\n\n")
		b.WriteString(PageMarker(i + 1))
		b.WriteString("\n\n")
		b.WriteString(text)
	}
	return b.String()
}

// Preview returns a head/tail preview of text for display.
// When text is longer than limit, the first and last edge characters are kept
// with an elision marker between them; otherwise text is returned unchanged.
func Preview(text string, limit, edge int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	if edge > len(text)/2 {
		edge = len(text) / 2
	}
	return text[:edge] + "\n\n... (middle content omitted) ...\n\n" + text[len(text)-edge:]
}
