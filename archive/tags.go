package archive

import (
	"strings"

	"paperdesk/core"
)

// NormalizeTags splits a comma-separated tag string into clean tags.
// Surrounding whitespace is trimmed and blank entries are dropped.
func NormalizeTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// MergeTags combines tags picked from the known vocabulary with free-typed
// ones. The result is a union that keeps each tag's first appearance order,
// selected tags before typed ones. Comparison is exact; "Cardio" and
// "cardio" stay distinct tags.
func MergeTags(selected []string, typed string) []string {
	var merged []string
	seen := make(map[string]bool)
	appendTag := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		merged = append(merged, tag)
	}
	for _, tag := range selected {
		appendTag(tag)
	}
	for _, tag := range NormalizeTags(typed) {
		appendTag(tag)
	}
	return merged
}

// JoinMerged is a convenience wrapper that merges and re-joins tags into
// the comma-separated storage form.
func JoinMerged(selected []string, typed string) string {
	return core.JoinTags(MergeTags(selected, typed))
}
