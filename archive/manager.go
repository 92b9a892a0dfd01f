// Package archive turns the latest chat exchange into a durable paper note.
//
// An archival action summarizes the exchange, merges the chosen tags into
// one record, and persists the note to both the local database and the
// bitable mirror. The action succeeds only when both sinks accept the note.
package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"paperdesk/core"
)

// SummaryFallback is recorded when the summary model fails or returns an
// empty line. Archival never fails on a bad summary.
const SummaryFallback = "summary unavailable"

// ErrNoExchange is returned when the session has no completed
// question/answer pair to archive.
var ErrNoExchange = errors.New("no completed exchange to archive")

// NoteStore persists notes to the local database.
type NoteStore interface {
	InsertNote(ctx context.Context, note core.Note) (int64, error)
}

// MirrorStore persists notes to the remote mirror.
type MirrorStore interface {
	CreateNote(ctx context.Context, note core.Note) error
}

// Summarizer produces a one-line summary of a question/answer pair.
type Summarizer interface {
	OneLineSummary(ctx context.Context, question, answer string) (string, error)
}

// Outcome reports what happened to each sink during an archival action.
type Outcome struct {
	Note        core.Note
	NoteID      int64
	StoreErr    error
	MirrorErr   error
	SummaryUsed bool // false when the fallback summary was recorded
}

// OK reports whether both sinks accepted the note.
func (o Outcome) OK() bool {
	return o.StoreErr == nil && o.MirrorErr == nil
}

// Err collapses the per-sink errors into one, naming the failed sink.
func (o Outcome) Err() error {
	switch {
	case o.StoreErr != nil && o.MirrorErr != nil:
		return fmt.Errorf("database: %v; mirror: %v", o.StoreErr, o.MirrorErr)
	case o.StoreErr != nil:
		return fmt.Errorf("database: %w", o.StoreErr)
	case o.MirrorErr != nil:
		return fmt.Errorf("mirror: %w", o.MirrorErr)
	default:
		return nil
	}
}

// Manager coordinates summary generation and dual persistence.
type Manager struct {
	store      NoteStore
	mirror     MirrorStore
	summarizer Summarizer
	now        func() time.Time
}

// NewManager creates an archival manager over the given sinks.
func NewManager(store NoteStore, mirror MirrorStore, summarizer Summarizer) *Manager {
	return &Manager{
		store:      store,
		mirror:     mirror,
		summarizer: summarizer,
		now:        time.Now,
	}
}

// Archive saves the session's latest exchange as a note tagged with the
// merged tag set. Selected tags come from the session vocabulary; typed is
// the free-form comma-separated input. New tags are learned back into the
// session vocabulary whatever the sinks decide.
//
// Both sinks are attempted in order, database first; a database failure
// does not stop the mirror attempt, so each sink's error is reported on
// its own.
func (m *Manager) Archive(ctx context.Context, session *core.Session, selected []string, typed string) (Outcome, error) {
	question, answer, ok := session.LastExchangePair()
	if !ok {
		return Outcome{}, ErrNoExchange
	}

	tags := MergeTags(selected, typed)
	for _, tag := range tags {
		session.LearnTag(tag)
	}

	summary, summaryOK := m.summarize(ctx, question, answer)

	note := core.Note{
		PaperName: session.DocumentName(),
		Question:  question,
		Answer:    answer,
		Tags:      core.JoinTags(tags),
		FilePath:  session.DocumentPath(),
		Summary:   summary,
		LoggedAt:  m.now(),
	}

	outcome := Outcome{Note: note, SummaryUsed: summaryOK}
	outcome.NoteID, outcome.StoreErr = m.store.InsertNote(ctx, note)
	outcome.MirrorErr = m.mirror.CreateNote(ctx, note)
	return outcome, outcome.Err()
}

func (m *Manager) summarize(ctx context.Context, question, answer string) (string, bool) {
	if m.summarizer == nil {
		return SummaryFallback, false
	}
	summary, err := m.summarizer.OneLineSummary(ctx, question, answer)
	if err != nil || summary == "" {
		return SummaryFallback, false
	}
	return summary, true
}
