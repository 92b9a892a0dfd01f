package pdfprocessor

import (
	"bytes"
	"io"
	"testing"
)

func TestExtractBytesRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", nil},
		{"not a pdf", []byte("plain text, definitely not a PDF")},
		{"truncated header", []byte("%PDF-1.4")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ExtractBytes(tt.data, "bad.pdf"); err == nil {
				t.Error("ExtractBytes succeeded on invalid input")
			}
		})
	}
}

func TestExtractRewindsStream(t *testing.T) {
	// Hand Extract a reader positioned at the end; it must seek back before
	// reading, as caching layers above may have consumed the stream already.
	data := []byte("not a pdf either")
	r := bytes.NewReader(data)
	if _, err := r.Seek(0, io.SeekEnd); err != nil {
		t.Fatal(err)
	}

	_, err := Extract(r, "x.pdf")
	if err == nil {
		t.Fatal("expected parse error for non-PDF input")
	}
	// The parse error must come from the full (rewound) input, not from an
	// empty read at EOF. Verify the reader was actually rewound and consumed.
	if r.Len() != 0 {
		t.Errorf("reader has %d unread bytes, want 0 (fully read after rewind)", r.Len())
	}
}

func TestDocumentDerivedCounts(t *testing.T) {
	doc := &Document{Name: "d.pdf", Text: "0123456789"}
	if got := doc.CharCount(); got != 10 {
		t.Errorf("CharCount = %d, want 10", got)
	}
	if got := doc.TokenCount(); got <= 0 {
		t.Errorf("TokenCount = %d, want > 0", got)
	}

	empty := &Document{Name: "e.pdf"}
	if got := empty.CharCount(); got != 0 {
		t.Errorf("empty CharCount = %d, want 0", got)
	}
	if got := empty.TokenCount(); got != 0 {
		t.Errorf("empty TokenCount = %d, want 0", got)
	}
}
