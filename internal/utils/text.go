package utils

import (
	"strings"
	"unicode/utf8"
)

// ValidPromptText 校验提示词文本：去掉首尾空白后至少 10 个字符
func ValidPromptText(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= 10
}

// StripCodeFence 去掉包裹整段回复的 ``` 围栏（首行可带语言标记）
func StripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	if strings.HasPrefix(lines[0], "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
