// ABOUTME: Completion client for the x.ai OpenAI-compatible endpoint
// ABOUTME: Supports buffered, JSON-mode, and token-streamed completions
package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Message is one chat message sent to the completion service.
type Message struct {
	Role    string
	Content string
}

// System and User build messages with the corresponding roles.
func System(content string) Message { return Message{Role: openai.ChatMessageRoleSystem, Content: content} }
func User(content string) Message   { return Message{Role: openai.ChatMessageRoleUser, Content: content} }

// Options controls a single completion request.
type Options struct {
	Temperature float32
	// JSONMode requests a JSON-object response format. The returned text
	// must still be defensively unwrapped with StripJSONFences before
	// parsing, since some models fence JSON anyway.
	JSONMode bool
}

// ClientConfig holds configuration for the completion client.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client wraps the OpenAI-compatible chat completion API. No retries or
// timeouts are imposed here; each pipeline stage defines its own fallback
// when a call fails.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient creates a completion client for the configured endpoint.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("completion API key is required")
	}
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(apiCfg),
		model: cfg.Model,
	}, nil
}

// Complete issues a single buffered chat completion.
func (c *Client) Complete(ctx context.Context, msgs []Message, opts Options) (string, error) {
	req := c.buildRequest(msgs, opts)

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// CompleteStream issues a streaming chat completion and returns a channel
// of content deltas in generation order. The channel is closed when the
// stream ends, including on mid-stream errors.
func (c *Client) CompleteStream(ctx context.Context, msgs []Message, opts Options) (<-chan string, error) {
	req := c.buildRequest(msgs, opts)
	req.Stream = true

	stream, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion stream: %w", err)
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)
		defer stream.Close()
		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				return
			}
			if len(chunk.Choices) == 0 {
				continue
			}
			if delta := chunk.Choices[0].Delta.Content; delta != "" {
				select {
				case out <- delta:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (c *Client) buildRequest(msgs []Message, opts Options) openai.ChatCompletionRequest {
	apiMsgs := make([]openai.ChatCompletionMessage, len(msgs))
	for i, m := range msgs {
		apiMsgs[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    apiMsgs,
		Temperature: opts.Temperature,
	}
	if opts.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	return req
}

// StripJSONFences removes markdown code-fence markers that models wrap
// around JSON output despite a JSON response format being requested.
func StripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
