package chat

import (
	"testing"

	"github.com/sashabaranov/go-openai"

	"paperdesk/core"
)

func TestParseUsage(t *testing.T) {
	tests := []struct {
		name   string
		usage  openai.Usage
		want   core.UsageRecord
		wantOK bool
	}{
		{
			name:   "absent usage block is skipped",
			usage:  openai.Usage{},
			wantOK: false,
		},
		{
			name: "usage with cached prefix",
			usage: openai.Usage{
				PromptTokens:     1000,
				CompletionTokens: 200,
				TotalTokens:      1200,
				PromptTokensDetails: &openai.PromptTokensDetails{
					CachedTokens: 900,
				},
			},
			want: core.UsageRecord{
				InputTokens:     1000,
				CacheHitTokens:  900,
				CacheMissTokens: 100,
				OutputTokens:    200,
				TotalTokens:     1200,
			},
			wantOK: true,
		},
		{
			name: "no prompt details means cold prompt",
			usage: openai.Usage{
				PromptTokens:     500,
				CompletionTokens: 50,
				TotalTokens:      550,
			},
			want: core.UsageRecord{
				InputTokens:     500,
				CacheHitTokens:  0,
				CacheMissTokens: 500,
				OutputTokens:    50,
				TotalTokens:     550,
			},
			wantOK: true,
		},
		{
			name: "upstream numbers pass through unvalidated",
			usage: openai.Usage{
				PromptTokens:     10,
				CompletionTokens: 5,
				TotalTokens:      999, // upstream arithmetic is trusted, not checked
			},
			want: core.UsageRecord{
				InputTokens:     10,
				CacheMissTokens: 10,
				OutputTokens:    5,
				TotalTokens:     999,
			},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseUsage(tt.usage)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("record = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseUsageInvariantHoldsByConstruction(t *testing.T) {
	got, ok := ParseUsage(openai.Usage{
		PromptTokens:        100,
		CompletionTokens:    10,
		TotalTokens:         110,
		PromptTokensDetails: &openai.PromptTokensDetails{CachedTokens: 64},
	})
	if !ok {
		t.Fatal("usage not parsed")
	}
	if got.CacheHitTokens+got.CacheMissTokens != got.InputTokens {
		t.Errorf("hit(%d) + miss(%d) != input(%d)", got.CacheHitTokens, got.CacheMissTokens, got.InputTokens)
	}
}
