package openaiLLM

import (
	"context"
	"fmt"
	"sync"

	llmprovider "github.com/akolanti/PDFInsight/internal/analysis/llm"
	"github.com/akolanti/PDFInsight/internal/domain/commonModels"
	"github.com/akolanti/PDFInsight/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type llmClient struct {
	client    openai.Client
	modelName string
}

var logger *logger_i.Logger
var openaiClient *llmClient
var once sync.Once

// GetOpenAIClient is the alternative provider behind the same interface,
// selected with LLM_PROVIDER=openai.
func GetOpenAIClient(apikey string, modelName string) llmprovider.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_openai")
		openaiClient = &llmClient{
			client:    openai.NewClient(option.WithAPIKey(apikey)),
			modelName: modelName,
		}
		logger.Info("OpenAI client created", "model", modelName)
	})
	return openaiClient
}

func (c *llmClient) Generate(ctx context.Context, userPrompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		logger.Error("OpenAI call failed", "error", err)
		return "", fmt.Errorf("%w: %v", commonModels.ErrGeneration, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty response from model", commonModels.ErrGeneration)
	}
	return resp.Choices[0].Message.Content, nil
}
