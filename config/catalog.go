package config

// 提供商标识，与模型名前缀的推断规则对应
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
)

type ModelInfo struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// SupportedModels 同一提供商内的顺序即推荐顺序
var SupportedModels = []ModelInfo{
	{Name: "gemini/gemini-2.0-flash", Provider: ProviderGoogle},
	{Name: "gemini/gemini-2.5-flash-lite", Provider: ProviderGoogle},
	{Name: "gemini/gemini-1.5-pro", Provider: ProviderGoogle},
	{Name: "gemini/gemini-1.5-flash", Provider: ProviderGoogle},
	{Name: "gpt-4", Provider: ProviderOpenAI},
	{Name: "gpt-4-turbo", Provider: ProviderOpenAI},
	{Name: "gpt-3.5-turbo", Provider: ProviderOpenAI},
	{Name: "o1-preview", Provider: ProviderOpenAI},
	{Name: "o1-mini", Provider: ProviderOpenAI},
	{Name: "claude-3-5-sonnet-20241022", Provider: ProviderAnthropic},
	{Name: "claude-3-opus-20240229", Provider: ProviderAnthropic},
	{Name: "claude-3-sonnet-20240229", Provider: ProviderAnthropic},
	{Name: "claude-3-haiku-20240307", Provider: ProviderAnthropic},
}
