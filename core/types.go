// Package core provides shared types, configuration, and session state for paperdesk.
package core

import (
	"strings"
	"time"
)

// Chat roles used in Exchange records. These match the wire-level roles
// expected by OpenAI-compatible chat endpoints.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Exchange is a single turn in the chat history: one user utterance or one
// assistant reply. Exchanges are appended in order and never mutated; the only
// way they disappear is the whole-history reset on a document switch.
type Exchange struct {
	// Role is either RoleUser or RoleAssistant
	Role string

	// Content is the message text
	Content string
}

// Note is one archived question/answer pair from a reading session.
// Notes are created only by an explicit archival action, never updated in
// place, and retrieved most-recent first.
type Note struct {
	ID int64

	// PaperName is the document identity (uploaded filename) at archival time
	PaperName string

	// Question is the user question that was archived
	Question string

	// Answer is the assistant reply that was archived
	Answer string

	// Tags is the comma-joined tag string as stored. Use TagSet for
	// set-semantics access on read.
	Tags string

	// FilePath references the stored original PDF in the library directory.
	// May be empty or point to a file that no longer exists locally.
	FilePath string

	// Summary is the one-line auto-generated summary of the exchange
	Summary string

	// LoggedAt is when the note was archived
	LoggedAt time.Time
}

// TagSet splits the stored comma-joined tag string into a set of tag tokens.
// Tokens are trimmed and blank tokens are discarded.
func (n Note) TagSet() map[string]bool {
	return SplitTags(n.Tags)
}

// HasAnyTag reports whether the note's tag set intersects the given tags.
// An empty filter matches nothing.
func (n Note) HasAnyTag(tags []string) bool {
	set := n.TagSet()
	for _, t := range tags {
		if set[t] {
			return true
		}
	}
	return false
}

// SplitTags parses a comma-joined tag string into a set.
// Blank and whitespace-only tokens are dropped.
func SplitTags(s string) map[string]bool {
	set := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			set[tag] = true
		}
	}
	return set
}

// JoinTags renders a tag list as the comma-joined storage form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// UsageRecord holds the per-call token accounting surfaced by the chat
// endpoint. It is ephemeral and advisory only: the numbers come straight from
// the upstream usage block and are never allowed to influence control flow.
//
// Upstream guarantees (not re-validated here):
//
//	CacheHitTokens + CacheMissTokens == InputTokens
//	InputTokens + OutputTokens == TotalTokens
type UsageRecord struct {
	// InputTokens is the full prompt cost (document + history + question)
	InputTokens int

	// CacheHitTokens is the portion of the prompt billed at the reduced
	// prefix-cache rate
	CacheHitTokens int

	// CacheMissTokens is the portion of the prompt read fresh
	CacheMissTokens int

	// OutputTokens is the completion cost
	OutputTokens int

	// TotalTokens is input plus output
	TotalTokens int
}
