package gemini

import (
	"context"
	"fmt"
	"sync"

	"github.com/akolanti/PDFInsight/internal/analysis/llm"
	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
	"github.com/akolanti/PDFInsight/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *llmClient
var once sync.Once

// GetGeminiClient builds the process-wide Gemini client. The API key comes
// in through the constructor - nothing below this reads ambient config.
func GetGeminiClient(ctx context.Context, apikey string, modelName string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_gemini")
		newGeminiClient(ctx, apikey, modelName)
	})

	if geminiClient == nil {
		return nil
	}
	return geminiClient
}

func newGeminiClient(ctx context.Context, apikey string, modelName string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
		return
	}
	geminiClient = &llmClient{client: c, modelName: modelName}
	logger.Info("Gemini client created", "model", modelName)
	go closeClient(ctx, geminiClient)
}

func (c *llmClient) Generate(ctx context.Context, userPrompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(userPrompt),
		nil,
	)
	if err != nil {
		logger.Error("Gemini call failed", "error", err)
		return "", fmt.Errorf("%w: %v", commonModels.ErrGeneration, err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response from model", commonModels.ErrGeneration)
	}
	return text, nil
}

func closeClient(ctx context.Context, c *llmClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini client")
	c.client = nil
	c.modelName = ""
}
