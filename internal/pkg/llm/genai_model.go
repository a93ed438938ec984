package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
	"k8s.io/klog/v2"
)

// genaiChatModel 走 Google 官方 SDK 的原生 Gemini 通道
type genaiChatModel struct {
	client      *genai.Client
	model       string
	maxTokens   int
	temperature float32
}

func newGenAIChatModel(apiKey, modelName string, maxTokens int, temperature float32) (ChatModel, error) {
	klog.V(6).Infof("[genaiChatModel] 创建 Gemini 客户端: model=%s", modelName)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		klog.Errorf("[genaiChatModel] 创建客户端失败: %v", err)
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &genaiChatModel{
		client:      client,
		model:       modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
	}, nil
}

// Generate 把通用消息转换成 Gemini 的会话格式：
// system 消息进 SystemInstruction，assistant 前缀续写映射为 model 角色
func (m *genaiChatModel) Generate(ctx context.Context, messages []*schema.Message) (*schema.Message, error) {
	klog.V(6).Infof("[genaiChatModel] Generate 开始: model=%s, messageCount=%d", m.model, len(messages))

	cfg := &genai.GenerateContentConfig{}
	if m.temperature > 0 {
		temperature := m.temperature
		cfg.Temperature = &temperature
	}
	if m.maxTokens > 0 {
		cfg.MaxOutputTokens = int32(m.maxTokens)
	}

	var contents []*genai.Content
	for _, msg := range messages {
		switch msg.Role {
		case schema.System:
			cfg.SystemInstruction = genai.NewContentFromText(msg.Content, genai.RoleUser)
		case schema.Assistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.model, contents, cfg)
	if err != nil {
		klog.Errorf("[genaiChatModel] GenerateContent 失败: %v", err)
		return nil, err
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("no response from LLM")
	}

	klog.V(6).Infof("[genaiChatModel] Generate 完成: responseLength=%d", len(text))
	return &schema.Message{Role: schema.Assistant, Content: text}, nil
}
