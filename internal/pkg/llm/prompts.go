package llm

import (
	"embed"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"
)

//go:embed system_prompts/*.md
var promptFiles embed.FS

const (
	diagramPromptFile   = "MermaidExpertSystemPrompt.md"
	generatorPromptFile = "PromptGeneratorSystemPrompt.md"
)

// loadSystemPrompt 优先读 override 目录里的同名文件，读不到时退回内嵌版本
func loadSystemPrompt(overrideDir, filename string) string {
	if overrideDir != "" {
		if data, err := os.ReadFile(filepath.Join(overrideDir, filename)); err == nil {
			klog.V(6).Infof("使用外部系统提示词: %s", filepath.Join(overrideDir, filename))
			return string(data)
		}
	}

	data, err := promptFiles.ReadFile("system_prompts/" + filename)
	if err != nil {
		klog.Errorf("读取内置系统提示词失败: %s: %v", filename, err)
		return ""
	}
	return string(data)
}
