package llm

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/promptviz/backend/config"
	"github.com/promptviz/backend/internal/model"
	"github.com/promptviz/backend/internal/pkg/mermaid"
	"github.com/promptviz/backend/internal/utils"
	"k8s.io/klog/v2"
)

const (
	// 低温保证图结构输出稳定，提示词生成放宽一些
	diagramTemperature = 0.1
	promptTemperature  = 0.3

	validateTimeout   = 10 * time.Second
	validateMaxTokens = 10
)

// Client 多提供商 LLM 客户端。
// 每次调用按模型名推断提供商，并临时构建对应的 ChatModel。
type Client struct {
	apiKeys  map[string]string
	baseURLs map[string]string

	defaultModel     string
	timeout          time.Duration
	diagramMaxTokens int
	promptMaxTokens  int

	systemPrompt          string
	promptGeneratorPrompt string
}

// NewClient 创建客户端，要求至少配置一个提供商的 API Key
func NewClient(cfg *config.Config) (*Client, error) {
	c := &Client{
		apiKeys: map[string]string{
			config.ProviderOpenAI:    cfg.LLM.OpenAI.APIKey,
			config.ProviderAnthropic: cfg.LLM.Anthropic.APIKey,
			config.ProviderGoogle:    cfg.LLM.Google.APIKey,
		},
		baseURLs: map[string]string{
			config.ProviderOpenAI:    cfg.LLM.OpenAI.BaseURL,
			config.ProviderAnthropic: cfg.LLM.Anthropic.BaseURL,
		},
		defaultModel:     cfg.LLM.DefaultModel,
		timeout:          time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		diagramMaxTokens: cfg.LLM.DiagramMaxTokens,
		promptMaxTokens:  cfg.LLM.PromptMaxTokens,

		systemPrompt:          loadSystemPrompt(cfg.Prompts.Dir, diagramPromptFile),
		promptGeneratorPrompt: loadSystemPrompt(cfg.Prompts.Dir, generatorPromptFile),
	}

	configured := false
	for _, key := range c.apiKeys {
		if key != "" {
			configured = true
			break
		}
	}
	if !configured {
		return nil, fmt.Errorf("no API keys configured, set at least one of OPENAI_API_KEY, ANTHROPIC_API_KEY or GEMINI_API_KEY")
	}

	return c, nil
}

// chatModelFor 按模型名构建 ChatModel，keyOverride 用于密钥校验场景
func (c *Client) chatModelFor(modelName, keyOverride string, maxTokens int, temperature float32) (ChatModel, error) {
	provider := ProviderForModel(modelName)

	apiKey := keyOverride
	if apiKey == "" {
		apiKey = c.apiKeys[provider]
	}
	if apiKey == "" {
		return nil, fmt.Errorf("no API key configured for %s, set the %s environment variable", provider, providerKeyEnv[provider])
	}

	if provider == config.ProviderGoogle {
		return newGenAIChatModel(apiKey, googleModelName(modelName), maxTokens, temperature)
	}
	return newEinoChatModel(apiKey, c.baseURLs[provider], modelName, maxTokens, temperature)
}

// GenerateDiagram 调用模型把用户提示词转成 Mermaid 代码。
// 调用失败不返回 error，折叠进结果的 Success/ErrorMessage，耗时照常统计。
func (c *Client) GenerateDiagram(ctx context.Context, userPrompt, modelName, diagramType string) *GenerationResult {
	start := time.Now()
	if modelName == "" {
		modelName = c.defaultModel
	}
	klog.V(6).Infof("GenerateDiagram: model=%s, diagramType=%s, promptLength=%d", modelName, diagramType, len(userPrompt))

	chatModel, err := c.chatModelFor(modelName, "", c.diagramMaxTokens, diagramTemperature)
	if err != nil {
		return failedResult(modelName, start, err)
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: c.systemPrompt},
		{Role: schema.User, Content: fmt.Sprintf("Please analyze the following prompt and generate a Mermaid %s diagram:\n\n%s", diagramType, userPrompt)},
		// 前缀续写，让模型直接从代码块内部写起
		{Role: schema.Assistant, Content: "```mermaid"},
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := chatModel.Generate(ctx, messages)
	if err != nil {
		return failedResult(modelName, start, err)
	}

	return &GenerationResult{
		Content:        mermaid.ExtractCode(resp.Content),
		Success:        true,
		ModelUsed:      modelName,
		ProcessingTime: elapsedSeconds(start),
	}
}

// GeneratePromptFromDiagram 根据画布结构反向生成结构化提示词
func (c *Client) GeneratePromptFromDiagram(ctx context.Context, structure *model.DiagramStructure, originalPrompt, outputFormat, modelName string) *GenerationResult {
	start := time.Now()
	if modelName == "" {
		modelName = c.defaultModel
	}
	klog.V(6).Infof("GeneratePromptFromDiagram: model=%s, format=%s, nodes=%d, edges=%d",
		modelName, outputFormat, len(structure.Nodes), len(structure.Edges))

	chatModel, err := c.chatModelFor(modelName, "", c.promptMaxTokens, promptTemperature)
	if err != nil {
		return failedResult(modelName, start, err)
	}

	format := strings.ToUpper(outputFormat)
	parts := []string{
		fmt.Sprintf("Please generate a prompt in **%s** format based on the following diagram:\n", format),
		formatDiagramStructure(structure),
	}
	if originalPrompt != "" {
		parts = append(parts, fmt.Sprintf("\n\n## Original Prompt (for reference):\n\n%s", originalPrompt))
		parts = append(parts, "\n\nUse the original prompt as context to understand the intent, but generate the new prompt based on the diagram structure.")
	}
	parts = append(parts, fmt.Sprintf("\n\nGenerate the prompt in **%s** format. Output ONLY the prompt, no explanations.", format))

	messages := []*schema.Message{
		{Role: schema.System, Content: c.promptGeneratorPrompt},
		{Role: schema.User, Content: strings.Join(parts, "\n")},
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := chatModel.Generate(ctx, messages)
	if err != nil {
		return failedResult(modelName, start, err)
	}

	return &GenerationResult{
		Content:        strings.TrimSpace(utils.StripCodeFence(resp.Content)),
		Success:        true,
		ModelUsed:      modelName,
		ProcessingTime: elapsedSeconds(start),
	}
}

// ValidateAPIKey 用一次最小请求验证模型与密钥的组合是否可用
func (c *Client) ValidateAPIKey(ctx context.Context, modelName, apiKey string) (bool, string) {
	if modelName == "" {
		modelName = c.defaultModel
	}
	klog.V(6).Infof("ValidateAPIKey: model=%s", modelName)

	chatModel, err := c.chatModelFor(modelName, apiKey, validateMaxTokens, 0)
	if err != nil {
		return false, err.Error()
	}

	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	if _, err := chatModel.Generate(ctx, []*schema.Message{{Role: schema.User, Content: "Hello"}}); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// AvailableModels 返回完整模型目录并标记可用状态，可用的排前面，
// 同组内保持目录里的推荐顺序
func (c *Client) AvailableModels() []ModelAvailability {
	models := make([]ModelAvailability, 0, len(config.SupportedModels))
	for _, m := range config.SupportedModels {
		models = append(models, ModelAvailability{
			Name:      m.Name,
			Provider:  m.Provider,
			Available: c.apiKeys[m.Provider] != "",
		})
	}
	sort.SliceStable(models, func(i, j int) bool {
		return models[i].Available && !models[j].Available
	})
	return models
}

// DefaultModel 配置的默认模型名
func (c *Client) DefaultModel() string {
	return c.defaultModel
}

func failedResult(modelName string, start time.Time, err error) *GenerationResult {
	klog.Errorf("LLM 调用失败: model=%s, err=%v", modelName, err)
	return &GenerationResult{
		Success:        false,
		ModelUsed:      modelName,
		ProcessingTime: elapsedSeconds(start),
		ErrorMessage:   err.Error(),
	}
}

func elapsedSeconds(start time.Time) float64 {
	return math.Round(time.Since(start).Seconds()*100) / 100
}
