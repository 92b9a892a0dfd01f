package db

import (
	"encoding/csv"
	"fmt"
	"io"

	"paperdesk/core"
)

// csvHeader matches the paper_notes column order.
var csvHeader = []string{"id", "paper_name", "question", "answer", "tags", "file_path", "summary", "log_time"}

// WriteNotesCSV writes notes as CSV with a header row. The notes keep the
// order they were given in.
func WriteNotesCSV(w io.Writer, notes []core.Note) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, note := range notes {
		record := []string{
			fmt.Sprintf("%d", note.ID),
			note.PaperName,
			note.Question,
			note.Answer,
			note.Tags,
			note.FilePath,
			note.Summary,
			note.LoggedAt.Format(timeLayout),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
