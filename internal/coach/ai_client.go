package coach

import (
	"context"
	"fmt"

	"github.com/daud-shahbaz/pywallet/internal/config"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// AIClient turns a rule-based report into friendlier coaching text.
type AIClient interface {
	Summarize(report string) (string, error)
}

// GeminiClient implements AIClient against Google's Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient creates a client using the configured API key and model.
func NewGeminiClient(cfg *config.Config) (*GeminiClient, error) {
	apiKey := cfg.AI.APIKey
	if apiKey == "" {
		apiKey = config.GetGeminiAPIKey()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  client.GenerativeModel(cfg.AI.Model),
	}, nil
}

// Summarize asks the model to rewrite the report as short coaching advice.
func (g *GeminiClient) Summarize(report string) (string, error) {
	prompt := "You are a personal finance coach. Rewrite the following spending report " +
		"as a short, encouraging summary with one or two concrete suggestions. " +
		"Keep amounts and category names exactly as given.\n\n" + report

	resp, err := g.model.GenerateContent(context.Background(), genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// Close releases the underlying API client.
func (g *GeminiClient) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
