package llm

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// ChatModel 单次会话调用的最小接口，屏蔽各提供商差异
type ChatModel interface {
	Generate(ctx context.Context, messages []*schema.Message) (*schema.Message, error)
}

// GenerationResult 一次生成调用的结果。
// 调用失败不返回 error，折叠进 Success/ErrorMessage，耗时照常统计。
type GenerationResult struct {
	Content        string
	Success        bool
	ModelUsed      string
	ProcessingTime float64 // 秒，保留两位
	ErrorMessage   string
}

// ModelAvailability 模型目录条目及其可用状态
type ModelAvailability struct {
	Name      string `json:"name"`
	Provider  string `json:"provider"`
	Available bool   `json:"available"`
}
