package llm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/promptviz/backend/config"
	"github.com/promptviz/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderForModel(t *testing.T) {
	cases := []struct {
		model    string
		expected string
	}{
		{"gpt-4", config.ProviderOpenAI},
		{"GPT-4-Turbo", config.ProviderOpenAI},
		{"o1-preview", config.ProviderOpenAI},
		{"o1-mini", config.ProviderOpenAI},
		{"claude-3-opus-20240229", config.ProviderAnthropic},
		{"Claude-3-5-Sonnet-20241022", config.ProviderAnthropic},
		{"gemini/gemini-2.5-flash-lite", config.ProviderGoogle},
		{"gemini-1.5-pro", config.ProviderGoogle},
		{"llama-3-70b", config.ProviderOpenAI},
		{"", config.ProviderOpenAI},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, ProviderForModel(c.model), "模型 %q 的提供商推断错误", c.model)
	}
}

func TestGoogleModelName(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", googleModelName("gemini/gemini-2.0-flash"))
	assert.Equal(t, "gemini-1.5-pro", googleModelName("gemini-1.5-pro"))
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	cfg := &config.Config{}
	cfg.LLM.DefaultModel = "gpt-4"

	_, err := NewClient(cfg)
	require.Error(t, err, "没有任何 API Key 时应该报错")
	assert.Contains(t, err.Error(), "no API keys configured")
}

func TestNewClientLoadsEmbeddedPrompts(t *testing.T) {
	cfg := &config.Config{}
	cfg.LLM.DefaultModel = "gemini/gemini-2.5-flash-lite"
	cfg.LLM.Google.APIKey = "test-key"

	client, err := NewClient(cfg)
	require.NoError(t, err)
	assert.Equal(t, "gemini/gemini-2.5-flash-lite", client.DefaultModel())
	assert.NotEmpty(t, client.systemPrompt, "内置图表系统提示词应该加载成功")
	assert.NotEmpty(t, client.promptGeneratorPrompt, "内置提示词生成系统提示词应该加载成功")
}

func TestLoadSystemPromptOverride(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, diagramPromptFile), []byte("custom prompt"), 0644)
	require.NoError(t, err)

	assert.Equal(t, "custom prompt", loadSystemPrompt(dir, diagramPromptFile))
	// override 目录没有该文件时退回内嵌版本
	assert.NotEmpty(t, loadSystemPrompt(dir, generatorPromptFile))
	assert.NotEqual(t, "custom prompt", loadSystemPrompt(dir, generatorPromptFile))
}

func TestAvailableModelsSortsAvailableFirst(t *testing.T) {
	c := &Client{
		apiKeys: map[string]string{
			config.ProviderOpenAI:    "",
			config.ProviderAnthropic: "sk-ant-test",
			config.ProviderGoogle:    "",
		},
	}

	models := c.AvailableModels()
	require.Len(t, models, len(config.SupportedModels), "目录中的模型应该全部返回")

	// anthropic 的 4 个模型排最前，且保持目录内顺序
	expected := []string{
		"claude-3-5-sonnet-20241022",
		"claude-3-opus-20240229",
		"claude-3-sonnet-20240229",
		"claude-3-haiku-20240307",
	}
	for i, name := range expected {
		assert.Equal(t, name, models[i].Name)
		assert.True(t, models[i].Available)
	}
	for _, m := range models[len(expected):] {
		assert.False(t, m.Available, "模型 %s 没有配置 Key，不应标记为可用", m.Name)
	}
}

func TestChatModelForMissingKey(t *testing.T) {
	c := &Client{
		apiKeys: map[string]string{config.ProviderOpenAI: "sk-test"},
	}

	_, err := c.chatModelFor("claude-3-haiku-20240307", "", 100, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY", "报错信息应该指出缺失的环境变量")
}

func TestFormatDiagramStructure(t *testing.T) {
	structure := &model.DiagramStructure{
		Nodes: []model.DiagramNode{
			{ID: "A", Type: "rectangle", Label: "Collect input"},
			{ID: "B", Type: "diamond", Label: "Valid?"},
			{ID: "C", Type: "rectangle", Label: ""},
		},
		Edges: []model.DiagramEdge{
			{ID: "e1", Source: "A", Target: "B", Label: "submit"},
			{ID: "e2", Source: "B", Target: "C"},
		},
	}

	expected := `## Diagram Structure

### Nodes:


**Main Instructions/Actions:**
- [A] Collect input
- [C] No label

**Decision Points:**
- [B] Valid?

### Flow/Connections:

- "Collect input" --[submit]--> "Valid?"
- "Valid?" --> "C"`

	assert.Equal(t, expected, formatDiagramStructure(structure))
}

func TestFormatDiagramStructureFallbacks(t *testing.T) {
	structure := &model.DiagramStructure{
		Nodes: []model.DiagramNode{
			// 未知类型用首字母大写的类型名做分组标题
			{ID: "N1", Type: "cloud", Label: "External"},
			// 空类型按 rectangle 处理
			{ID: "N2", Type: "", Label: "Fallback"},
		},
	}

	got := formatDiagramStructure(structure)
	assert.Contains(t, got, "**Cloud:**")
	assert.Contains(t, got, "**Main Instructions/Actions:**")
	assert.Contains(t, got, "- [N1] External")
	assert.Contains(t, got, "- [N2] Fallback")
}
