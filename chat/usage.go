// usage.go parses the completion response usage block into a UsageRecord.
package chat

import (
	"github.com/sashabaranov/go-openai"

	"paperdesk/core"
)

// ParseUsage extracts token accounting from a completion response's usage
// block. ok is false when the upstream omitted usage entirely, in which case
// accounting is skipped for the turn.
//
// The numbers are surfaced as reported, not validated. The one derived value
// is the cache-miss count: the wire format reports prompt and cached-prefix
// tokens, so the miss side is their difference by definition.
func ParseUsage(u openai.Usage) (core.UsageRecord, bool) {
	if u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0 {
		return core.UsageRecord{}, false
	}

	hit := 0
	if u.PromptTokensDetails != nil {
		hit = u.PromptTokensDetails.CachedTokens
	}

	return core.UsageRecord{
		InputTokens:     u.PromptTokens,
		CacheHitTokens:  hit,
		CacheMissTokens: u.PromptTokens - hit,
		OutputTokens:    u.CompletionTokens,
		TotalTokens:     u.TotalTokens,
	}, true
}
