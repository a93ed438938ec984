package llm

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"
)

// einoChatModel 封装 Eino 原生的 OpenAI ChatModel。
// openai 与 anthropic（OpenAI 兼容端点）都走这条通道。
type einoChatModel struct {
	chatModel model.ToolCallingChatModel
}

// newEinoChatModel 创建 OpenAI 兼容的 ChatModel
// baseURL 为空时使用默认 OpenAI 地址
func newEinoChatModel(apiKey, baseURL, modelName string, maxTokens int, temperature float32) (ChatModel, error) {
	klog.V(6).Infof("[einoChatModel] 创建 ChatModel: model=%s, baseURL=%s", modelName, baseURL)

	cfg := &openai.ChatModelConfig{
		APIKey: apiKey,
		Model:  modelName,
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if maxTokens > 0 {
		cfg.MaxTokens = &maxTokens
	}
	if temperature > 0 {
		cfg.Temperature = &temperature
	}

	chatModel, err := openai.NewChatModel(context.Background(), cfg)
	if err != nil {
		klog.Errorf("[einoChatModel] 创建 ChatModel 失败: %v", err)
		return nil, err
	}
	return &einoChatModel{chatModel: chatModel}, nil
}

func (m *einoChatModel) Generate(ctx context.Context, messages []*schema.Message) (*schema.Message, error) {
	klog.V(6).Infof("[einoChatModel] Generate 开始: messageCount=%d", len(messages))

	resp, err := m.chatModel.Generate(ctx, messages)
	if err != nil {
		klog.Errorf("[einoChatModel] Generate 失败: %v", err)
		return nil, err
	}

	klog.V(6).Infof("[einoChatModel] Generate 完成: responseLength=%d", len(resp.Content))
	return resp, nil
}
