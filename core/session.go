package core

import "strings"

// Session holds the per-user interactive state: the active document, the
// running chat history, and the tag vocabulary offered on archival.
//
// A Session is created empty at startup and passed explicitly into every
// component call; there is no ambient global state. All mutation happens
// synchronously in response to a single user action, so Session performs no
// locking.
//
// The document lifecycle is a two-state machine: no document, or active
// document D. The only transition out of "active D" is SetDocument with a
// different identity, which clears the chat history as a mandatory side
// effect.
type Session struct {
	docName string
	docText string
	docPath string

	history []Exchange

	vocab       []string
	vocabSeeded bool
}

// NewSession creates an empty Session with no active document.
func NewSession() *Session {
	return &Session{}
}

// SetDocument activates a document by identity (filename). If the identity
// differs from the currently active document, the chat history is cleared and
// reset=true is returned so the caller can notify the user that memory was
// lost. Re-activating the same identity leaves the history untouched.
//
// path is the library-store location of the original file; it travels with
// archived notes.
func (s *Session) SetDocument(name, text, path string) (reset bool) {
	if s.docName != name {
		s.history = nil
		reset = s.docName != "" // first upload is not a reset
	}
	s.docName = name
	s.docText = text
	s.docPath = path
	return reset
}

// HasDocument reports whether a document is active. Chat input must be
// rejected by the caller while this is false.
func (s *Session) HasDocument() bool {
	return s.docName != ""
}

// DocumentName returns the active document identity, or "" if none.
func (s *Session) DocumentName() string {
	return s.docName
}

// DocumentText returns the full extracted text of the active document.
func (s *Session) DocumentText() string {
	return s.docText
}

// DocumentPath returns the library path of the active document's original file.
func (s *Session) DocumentPath() string {
	return s.docPath
}

// AppendExchange appends one turn to the chat history.
func (s *Session) AppendExchange(role, content string) {
	s.history = append(s.history, Exchange{Role: role, Content: content})
}

// History returns the chat history in original order. The returned slice is
// shared; callers must not mutate it.
func (s *Session) History() []Exchange {
	return s.history
}

// LastExchangePair returns the most recent user question and assistant answer,
// in that order. ok is false unless the history ends with a completed
// user/assistant pair.
func (s *Session) LastExchangePair() (question, answer string, ok bool) {
	n := len(s.history)
	if n < 2 {
		return "", "", false
	}
	q, a := s.history[n-2], s.history[n-1]
	if q.Role != RoleUser || a.Role != RoleAssistant {
		return "", "", false
	}
	return q.Content, a.Content, true
}

// SeedTags seeds the tag vocabulary from the archive. Seeding happens at most
// once per session; later calls are no-ops. Duplicates and blanks are dropped;
// order of first sight is preserved.
func (s *Session) SeedTags(tags []string) {
	if s.vocabSeeded {
		return
	}
	s.vocabSeeded = true
	for _, t := range tags {
		s.LearnTag(t)
	}
}

// LearnTag adds a tag to the session vocabulary if it is not already present.
// The vocabulary only ever grows within a session.
func (s *Session) LearnTag(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	for _, existing := range s.vocab {
		if existing == tag {
			return
		}
	}
	s.vocab = append(s.vocab, tag)
}

// Tags returns the current tag vocabulary in first-sight order. The returned
// slice is a copy.
func (s *Session) Tags() []string {
	out := make([]string, len(s.vocab))
	copy(out, s.vocab)
	return out
}
