package service

import (
	"context"

	"github.com/promptviz/backend/internal/pkg/llm"
	"k8s.io/klog/v2"
)

// SystemPromptInfo 内置系统提示词元信息
type SystemPromptInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// KeyValidation 密钥校验结果
type KeyValidation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error"`
}

// CatalogService 模型目录与密钥校验服务接口
type CatalogService interface {
	// AvailableModels 列出模型目录，按提供商是否配置了 Key 标记可用状态
	AvailableModels() ([]llm.ModelAvailability, error)

	// ValidateKey 用一次最小请求校验模型与密钥组合
	ValidateKey(ctx context.Context, modelName, apiKey string) (*KeyValidation, error)

	// SystemPrompts 内置系统提示词元信息列表
	SystemPrompts() []SystemPromptInfo
}

// catalogService 目录服务实现
type catalogService struct {
	llm llmClient
}

// NewCatalogService 创建目录服务
func NewCatalogService(client *llm.Client) CatalogService {
	s := &catalogService{}
	if client != nil {
		s.llm = client
	}
	return s
}

// AvailableModels 列出模型目录及可用状态
func (s *catalogService) AvailableModels() ([]llm.ModelAvailability, error) {
	if s.llm == nil {
		return nil, ErrLLMUnavailable
	}
	return s.llm.AvailableModels(), nil
}

// ValidateKey 校验模型与密钥组合
func (s *catalogService) ValidateKey(ctx context.Context, modelName, apiKey string) (*KeyValidation, error) {
	if s.llm == nil {
		return nil, ErrLLMUnavailable
	}

	klog.V(6).Infof("ValidateKey: model=%s", modelName)
	valid, errMsg := s.llm.ValidateAPIKey(ctx, modelName, apiKey)
	return &KeyValidation{Valid: valid, Error: errMsg}, nil
}

// SystemPrompts 固定返回两个内置系统提示词的元信息
func (s *catalogService) SystemPrompts() []SystemPromptInfo {
	return []SystemPromptInfo{
		{
			Name:        "Mermaid Expert",
			Description: "Expert system prompt analyzer and Mermaid diagram generator",
			Type:        "diagram_generation",
		},
		{
			Name:        "Prompt Generator",
			Description: "Generate structured prompts from diagram representations",
			Type:        "prompt_generation",
		},
	}
}
