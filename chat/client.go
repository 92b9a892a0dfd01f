// client.go wraps the OpenAI-compatible completion endpoint.
package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"paperdesk/core"
)

// ErrEmptyReply is returned when the endpoint answers with no choices.
var ErrEmptyReply = errors.New("chat endpoint returned no choices")

// summaryPromptFormat is the auxiliary prompt for the one-line archive
// summary. It covers only the question/answer pair, never the full document,
// which keeps the cost of archival small.
const summaryPromptFormat = "Write a one-line core-conclusion summary of the following Q&A in at most 20 characters, no punctuation:\nQ: %s\nA: %s"

// Client calls the chat completion endpoint for both the grounded
// conversation and the short archive summaries.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
}

// NewClient creates a Client from configuration. The base URL defaults to
// the DeepSeek endpoint but any OpenAI-compatible server works.
func NewClient(cfg *core.Config) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.AITimeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.AITimeout}
	}
	return &Client{
		api:         openai.NewClientWithConfig(clientConfig),
		model:       cfg.ChatModel,
		temperature: cfg.Temperature,
	}
}

// Ask sends the full grounded conversation (document + history, where the
// last history entry is the new user question) and returns the assistant
// reply plus the usage record, if the response carried one.
//
// A nil usage pointer means the upstream omitted the usage block; that is
// not an error and accounting is simply skipped for the turn.
func (c *Client) Ask(ctx context.Context, docText string, history []core.Exchange) (string, *core.UsageRecord, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    BuildMessages(docText, history),
		Temperature: c.temperature,
	})
	if err != nil {
		return "", nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil, ErrEmptyReply
	}

	var usage *core.UsageRecord
	if record, ok := ParseUsage(resp.Usage); ok {
		usage = &record
	}
	return resp.Choices[0].Message.Content, usage, nil
}

// OneLineSummary generates the short archive summary for a question/answer
// pair with a single auxiliary completion call.
func (c *Client) OneLineSummary(ctx context.Context, question, answer string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(summaryPromptFormat, question, answer),
			},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
