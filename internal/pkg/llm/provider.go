package llm

import (
	"strings"

	"github.com/promptviz/backend/config"
)

// 各提供商 API Key 对应的环境变量
var providerKeyEnv = map[string]string{
	config.ProviderOpenAI:    "OPENAI_API_KEY",
	config.ProviderAnthropic: "ANTHROPIC_API_KEY",
	config.ProviderGoogle:    "GEMINI_API_KEY",
}

// ProviderForModel 根据模型名前缀推断提供商，未知前缀按 openai 处理
func ProviderForModel(model string) string {
	lower := strings.ToLower(model)
	switch {
	case strings.HasPrefix(lower, "gpt-") || strings.HasPrefix(lower, "o1"):
		return config.ProviderOpenAI
	case strings.HasPrefix(lower, "claude-"):
		return config.ProviderAnthropic
	case strings.HasPrefix(lower, "gemini/") || strings.HasPrefix(lower, "gemini-"):
		return config.ProviderGoogle
	default:
		return config.ProviderOpenAI
	}
}

// googleModelName 去掉目录名里的 gemini/ 路由前缀，得到真实模型名
func googleModelName(model string) string {
	return strings.TrimPrefix(model, "gemini/")
}
