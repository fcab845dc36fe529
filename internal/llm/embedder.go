// ABOUTME: Embedding client using the OpenAI embeddings API
// ABOUTME: Batches inputs to stay under API request limits
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// embedBatchSize caps how many texts go into one embeddings request.
const embedBatchSize = 100

// Embedder converts texts to embedding vectors via the OpenAI API.
type Embedder struct {
	api   *openai.Client
	model openai.EmbeddingModel
}

// NewEmbedder creates an embedding client.
func NewEmbedder(apiKey, model string) (*Embedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("embedding API key is required")
	}
	return &Embedder{
		api:   openai.NewClient(apiKey),
		model: openai.EmbeddingModel(model),
	}, nil
}

// EmbedTexts returns one vector per input text, in input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, 0, len(texts))

	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		resp, err := e.api.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
			Input: texts[start:end],
			Model: e.model,
		})
		if err != nil {
			return nil, fmt.Errorf("create embeddings: %w", err)
		}
		if len(resp.Data) != end-start {
			return nil, fmt.Errorf("create embeddings: got %d vectors for %d inputs", len(resp.Data), end-start)
		}

		for _, d := range resp.Data {
			vec := make([]float64, len(d.Embedding))
			for i, v := range d.Embedding {
				vec[i] = float64(v)
			}
			vectors = append(vectors, vec)
		}
	}

	return vectors, nil
}

// EmbedText embeds a single text.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float64, error) {
	vecs, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}
