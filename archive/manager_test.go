package archive

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"paperdesk/core"
)

type fakeStore struct {
	notes []core.Note
	err   error
}

func (f *fakeStore) InsertNote(_ context.Context, note core.Note) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.notes = append(f.notes, note)
	return int64(len(f.notes)), nil
}

type fakeMirror struct {
	notes []core.Note
	err   error
}

func (f *fakeMirror) CreateNote(_ context.Context, note core.Note) error {
	if f.err != nil {
		return f.err
	}
	f.notes = append(f.notes, note)
	return nil
}

type fakeSummarizer struct {
	summary string
	err     error
}

func (f *fakeSummarizer) OneLineSummary(_ context.Context, _, _ string) (string, error) {
	return f.summary, f.err
}

func readySession(t *testing.T) *core.Session {
	t.Helper()
	s := core.NewSession()
	s.SetDocument("study.pdf", "--- [Page 1] ---\n\ncontent", "paper_library/study.pdf")
	s.AppendExchange(core.RoleUser, "what was measured?")
	s.AppendExchange(core.RoleAssistant, "blood pressure (see Page 1)")
	return s
}

func newTestManager(store *fakeStore, mirror *fakeMirror, sum *fakeSummarizer) *Manager {
	m := NewManager(store, mirror, sum)
	m.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return m
}

func TestArchive(t *testing.T) {
	store := &fakeStore{}
	mirror := &fakeMirror{}
	m := newTestManager(store, mirror, &fakeSummarizer{summary: "bp measured"})
	session := readySession(t)

	outcome, err := m.Archive(context.Background(), session, []string{"cardiology"}, "trial, cardiology")
	if err != nil {
		t.Fatalf("Archive() error: %v", err)
	}
	if !outcome.OK() {
		t.Fatal("outcome not OK")
	}
	if outcome.NoteID != 1 {
		t.Errorf("NoteID = %d, want 1", outcome.NoteID)
	}
	if !outcome.SummaryUsed {
		t.Error("SummaryUsed = false for a working summarizer")
	}

	want := core.Note{
		PaperName: "study.pdf",
		Question:  "what was measured?",
		Answer:    "blood pressure (see Page 1)",
		Tags:      "cardiology,trial",
		FilePath:  "paper_library/study.pdf",
		Summary:   "bp measured",
		LoggedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if !reflect.DeepEqual(outcome.Note, want) {
		t.Errorf("note = %+v, want %+v", outcome.Note, want)
	}
	if len(store.notes) != 1 || len(mirror.notes) != 1 {
		t.Fatalf("persisted %d/%d notes, want 1/1", len(store.notes), len(mirror.notes))
	}
	if !reflect.DeepEqual(store.notes[0], mirror.notes[0]) {
		t.Error("database and mirror received different notes")
	}
}

func TestArchiveLearnsTags(t *testing.T) {
	m := newTestManager(&fakeStore{}, &fakeMirror{}, &fakeSummarizer{summary: "s"})
	session := readySession(t)
	session.SeedTags([]string{"cardiology"})

	if _, err := m.Archive(context.Background(), session, []string{"cardiology"}, "trial"); err != nil {
		t.Fatalf("Archive() error: %v", err)
	}
	if got := session.Tags(); !reflect.DeepEqual(got, []string{"cardiology", "trial"}) {
		t.Errorf("session tags = %v, want [cardiology trial]", got)
	}
}

func TestArchiveNoExchange(t *testing.T) {
	m := newTestManager(&fakeStore{}, &fakeMirror{}, &fakeSummarizer{summary: "s"})
	session := core.NewSession()
	session.SetDocument("study.pdf", "text", "study.pdf")

	_, err := m.Archive(context.Background(), session, nil, "")
	if !errors.Is(err, ErrNoExchange) {
		t.Errorf("err = %v, want ErrNoExchange", err)
	}
}

func TestArchiveSummaryFallback(t *testing.T) {
	tests := []struct {
		name string
		sum  *fakeSummarizer
	}{
		{"summarizer error", &fakeSummarizer{err: errors.New("model down")}},
		{"empty summary", &fakeSummarizer{summary: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			m := newTestManager(store, &fakeMirror{}, tt.sum)

			outcome, err := m.Archive(context.Background(), readySession(t), nil, "trial")
			if err != nil {
				t.Fatalf("Archive() error: %v", err)
			}
			if outcome.SummaryUsed {
				t.Error("SummaryUsed = true with a failing summarizer")
			}
			if store.notes[0].Summary != SummaryFallback {
				t.Errorf("summary = %q, want fallback", store.notes[0].Summary)
			}
		})
	}
}

func TestArchiveSinkFailures(t *testing.T) {
	tests := []struct {
		name       string
		storeErr   error
		mirrorErr  error
		wantInErr  []string
		wantMirror int
	}{
		{
			name:       "database failure still mirrors",
			storeErr:   errors.New("disk full"),
			wantInErr:  []string{"database", "disk full"},
			wantMirror: 1,
		},
		{
			name:      "mirror failure",
			mirrorErr: errors.New("code 99991663"),
			wantInErr: []string{"mirror", "99991663"},
		},
		{
			name:      "both fail",
			storeErr:  errors.New("disk full"),
			mirrorErr: errors.New("unreachable"),
			wantInErr: []string{"database", "mirror", "disk full", "unreachable"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mirror := &fakeMirror{err: tt.mirrorErr}
			m := newTestManager(&fakeStore{err: tt.storeErr}, mirror, &fakeSummarizer{summary: "s"})

			outcome, err := m.Archive(context.Background(), readySession(t), nil, "trial")
			if err == nil {
				t.Fatal("Archive() succeeded despite sink failure")
			}
			if outcome.OK() {
				t.Error("outcome OK despite sink failure")
			}
			for _, want := range tt.wantInErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q misses %q", err, want)
				}
			}
			if len(mirror.notes) != tt.wantMirror {
				t.Errorf("mirror received %d notes, want %d", len(mirror.notes), tt.wantMirror)
			}
		})
	}
}
