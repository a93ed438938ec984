package service

import (
	"context"

	"github.com/promptviz/backend/internal/model"
	"github.com/promptviz/backend/internal/pkg/llm"
)

// llmClient 生成类服务共用的 LLM 客户端能力
type llmClient interface {
	GenerateDiagram(ctx context.Context, userPrompt, modelName, diagramType string) *llm.GenerationResult
	GeneratePromptFromDiagram(ctx context.Context, structure *model.DiagramStructure, originalPrompt, outputFormat, modelName string) *llm.GenerationResult
	ValidateAPIKey(ctx context.Context, modelName, apiKey string) (bool, string)
	AvailableModels() []llm.ModelAvailability
	DefaultModel() string
}
