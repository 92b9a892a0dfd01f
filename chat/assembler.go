// Package chat implements the document-grounded conversation: prompt
// assembly, the completion client, and usage accounting.
package chat

import (
	"github.com/sashabaranov/go-openai"

	"paperdesk/core"
)

// systemPromptPrefix is the fixed grounding instruction embedded in the
// system message, followed immediately by the full document text.
//
// The chat endpoint bills identical leading message content at a reduced
// prefix-cache rate, keyed on exact byte match. Everything in the system
// message must therefore be stable across turns for the same document: no
// timestamps, no counters, no reformatting.
const systemPromptPrefix = `You are a rigorous medical research assistant.
1. Answer questions based only on the supplied paper content.
2. Always cite the source: after each key claim, reference the page marker, e.g. (see Page 3).
3. If the paper does not contain the relevant information, reply "not mentioned in the paper" rather than fabricating.
4. Keep answers logically structured, using Markdown formatting (lists, bold).

Full paper text:
`

// SystemPrompt returns the complete system message content for a document.
// For a given docText the result is byte-identical on every call.
func SystemPrompt(docText string) string {
	return systemPromptPrefix + docText
}

// BuildMessages produces the exact ordered message sequence for one
// completion call: the system message (grounding instructions + document
// text), then every history exchange in original order. The caller appends
// the new user question to history before calling.
//
// BuildMessages assumes an active document; the interactive surface rejects
// chat input while no document is loaded.
func BuildMessages(docText string, history []core.Exchange) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: SystemPrompt(docText),
	})
	for _, ex := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    ex.Role,
			Content: ex.Content,
		})
	}
	return messages
}
