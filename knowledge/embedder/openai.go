package embedder

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	chromem "github.com/philippgille/chromem-go"
)

// OpenAI returns an embedding function backed by the OpenAI embeddings
// endpoint. The config's model defaults to text-embedding-3-small; API key
// and base URL, when set, take precedence over the client's environment
// defaults.
func OpenAI(cfg *Config, reqOpts ...option.RequestOption) chromem.EmbeddingFunc {
	model := openai.EmbeddingModelTextEmbedding3Small
	if cfg != nil {
		if cfg.Model != "" {
			model = openai.EmbeddingModel(cfg.Model)
		}
		if cfg.APIKey != "" {
			reqOpts = append(reqOpts, option.WithAPIKey(cfg.APIKey))
		}
		if cfg.BaseURL != "" {
			reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
		}
	}

	client := openai.NewClient(reqOpts...)
	return func(ctx context.Context, text string) ([]float32, error) {
		resp, err := client.Embeddings.New(ctx, openai.EmbeddingNewParams{
			Input: openai.F[openai.EmbeddingNewParamsInputUnion](openai.EmbeddingNewParamsInputArrayOfStrings{text}),
			Model: openai.F(model),
		})
		if err != nil {
			return nil, fmt.Errorf("embedder: create embedding: %w", err)
		}
		if len(resp.Data) == 0 {
			return nil, fmt.Errorf("embedder: empty embedding response")
		}

		embedding := resp.Data[0].Embedding
		vector := make([]float32, len(embedding))
		for i, v := range embedding {
			vector[i] = float32(v)
		}
		return vector, nil
	}
}
