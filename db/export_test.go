package db

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"paperdesk/core"
)

func TestWriteNotesCSV(t *testing.T) {
	notes := []core.Note{
		{
			ID:        2,
			PaperName: "study.pdf",
			Question:  "what, exactly?",
			Answer:    "the \"primary\" outcome\nacross two lines",
			Tags:      "cardiology,trial",
			FilePath:  "paper_library/study.pdf",
			Summary:   "outcome defined",
			LoggedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:        1,
			PaperName: "review.pdf",
			Question:  "q",
			Answer:    "a",
			Tags:      "stats",
			LoggedAt:  time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	if err := WriteNotesCSV(&buf, notes); err != nil {
		t.Fatalf("WriteNotesCSV() error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(records))
	}
	if records[0][0] != "id" || records[0][7] != "log_time" {
		t.Errorf("header = %v", records[0])
	}
	// Commas, quotes and newlines inside fields survive the round trip.
	if records[1][3] != "the \"primary\" outcome\nacross two lines" {
		t.Errorf("answer = %q", records[1][3])
	}
	if records[1][7] != "2026-03-01 12:00:00" {
		t.Errorf("log_time = %q", records[1][7])
	}
	if records[2][1] != "review.pdf" {
		t.Errorf("row order changed: %v", records[2])
	}
}

func TestWriteNotesCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNotesCSV(&buf, nil); err != nil {
		t.Fatalf("WriteNotesCSV() error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("empty export has %d lines, want header only", len(lines))
	}
}
