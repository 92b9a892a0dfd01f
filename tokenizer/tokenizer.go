// Package tokenizer provides token counting using the cl100k_base encoding.
//
// The encoding is fixed: the same scheme the upstream chat models bill
// against, so counts shown to the user line up with the usage block returned
// by the endpoint. Counting is pure and stateless from the caller's point of
// view; the encoder itself is loaded once and cached.
package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// EncodingName is the fixed encoding used for all counting.
const EncodingName = "cl100k_base"

var (
	encoder     *tiktoken.Tiktoken
	encoderOnce sync.Once
	encoderErr  error
)

// getEncoder returns the cached cl100k_base encoder, initializing it on first use.
func getEncoder() (*tiktoken.Tiktoken, error) {
	encoderOnce.Do(func() {
		encoder, encoderErr = tiktoken.GetEncoding(EncodingName)
		if encoderErr != nil {
			encoderErr = fmt.Errorf("failed to load %s encoding: %w", EncodingName, encoderErr)
		}
	})
	return encoder, encoderErr
}

// Count returns the number of cl100k_base tokens in text.
// If the encoder cannot be initialized (e.g. the encoding data is
// unavailable), it falls back to the ~4 characters per token heuristic so
// display-only callers still get a usable estimate.
func Count(text string) int {
	if text == "" {
		return 0
	}
	enc, err := getEncoder()
	if err != nil {
		return EstimateCount(text)
	}
	return len(enc.Encode(text, nil, nil))
}

// CountExact returns the cl100k_base token count, or an error if the encoder
// is unavailable. Use Count for display purposes where a heuristic fallback
// is acceptable.
func CountExact(text string) (int, error) {
	enc, err := getEncoder()
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

// EstimateCount provides a rough token estimate using an average of 4
// characters per token, a reasonable heuristic for English text with
// GPT-style tokenizers.
func EstimateCount(text string) int {
	if len(text) == 0 {
		return 0
	}
	return len(text) / 4
}
