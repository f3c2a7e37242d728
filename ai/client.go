// Package ai wraps the Anthropic API for the app's three augmentation
// features: note summarization, description generation, and lecture
// translation with glossary extraction.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/sprintnotes/sprintnotes/models"
)

const defaultModel = anthropic.Model("claude-3-5-sonnet-20241022")

type Client struct {
	api   anthropic.Client
	model anthropic.Model
}

func NewClient(apiKey string) *Client {
	return &Client{
		api:   anthropic.NewClient(option.WithAPIKey(apiKey)),
		model: defaultModel,
	}
}

func (c *Client) complete(ctx context.Context, prompt string, maxTokens int64) (string, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("ai: completion: %w", err)
	}
	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", errors.New("ai: no text content in response")
}

// Summarize produces a concise summary of note content.
func (c *Client) Summarize(ctx context.Context, content string) (string, error) {
	prompt := "Please provide a concise summary of the following notes. " +
		"Focus on the key points and main ideas. Format the summary in a " +
		"clear, organized way:\n\n" + content
	return c.complete(ctx, prompt, 1024)
}

// GenerateDescription produces a one-to-two sentence description of a note
// for the sidebar preview.
func (c *Client) GenerateDescription(ctx context.Context, title, content string) (string, error) {
	prompt := fmt.Sprintf("Write a one or two sentence description of the "+
		"following note, suitable for a preview list. Respond with the "+
		"description only.\n\nTitle: %s\n\n%s", title, content)
	return c.complete(ctx, prompt, 256)
}

// LectureTranslation is the structured output of TranslateLecture.
type LectureTranslation struct {
	SimplifiedEnglish string                 `json:"simplifiedEnglish"`
	Translated        string                 `json:"translated"`
	Glossary          []models.GlossaryEntry `json:"glossary"`
	KeyPoints         []string               `json:"keyPoints"`
}

// TranslateLecture simplifies a lecture transcript, translates it to the
// target language, and extracts a glossary and key points.
func (c *Client) TranslateLecture(ctx context.Context, transcript, targetLanguage string) (*LectureTranslation, error) {
	prompt := fmt.Sprintf(`You are helping an international student follow a lecture.
Given the transcript below, respond with JSON only, using this shape:
{"simplifiedEnglish": "...", "translated": "...", "glossary": [{"term": "...", "definition": "...", "context": "..."}], "keyPoints": ["..."]}

"simplifiedEnglish" restates the transcript in plain English,
"translated" is the simplified version translated into %s,
"glossary" covers the technical terms a student might not know, and
"keyPoints" lists the main takeaways.

Transcript:
%s`, targetLanguage, transcript)

	raw, err := c.complete(ctx, prompt, 4096)
	if err != nil {
		return nil, err
	}

	var out LectureTranslation
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &out); err != nil {
		return nil, fmt.Errorf("ai: parse translation response: %w", err)
	}
	return &out, nil
}

// stripCodeFence unwraps ```json fences the model sometimes adds despite
// the JSON-only instruction.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
