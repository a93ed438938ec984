package mermaid

import (
	"regexp"
	"strings"

	"k8s.io/klog/v2"
)

// 修复模型输出里常见的语法破绽，规则顺序即执行顺序
var (
	parenLabelRe   = regexp.MustCompile(`\[([^\]]*)\(([^)]*)\)([^\]]*)\]`)
	trailingIDRe   = regexp.MustCompile(`\]\s+([A-Z]{2,})\s*(\n|$)`)
	lineEndIDRe    = regexp.MustCompile(`(?m)\]\s*([A-Z]{2,})\s*$`)
	edgeTrailingRe = regexp.MustCompile(`(-->[^\[\n]*\[[^\]]+\])\s+([A-Z]{2,})\s*(\n|$)`)
	multiSpaceRe   = regexp.MustCompile(`[ \t]{2,}`)
	nodeDefRe      = regexp.MustCompile(`^\s*[A-Z]+\s*[\[{]`)
	junkLineRe     = regexp.MustCompile(`^[^\p{L}\p{N}_\[\]{}|><-]+$`)
)

// ExtractCode 从模型回复中截取 Mermaid 代码并清理。
// 去掉第一个 ```mermaid 标记，截断到最后一个 ``` 为止；没有围栏时整体清理。
func ExtractCode(response string) string {
	code := strings.Replace(response, "```mermaid", "", 1)
	if idx := strings.LastIndex(code, "```"); idx != -1 {
		code = code[:idx]
	}
	sanitized := Sanitize(strings.TrimSpace(code))
	klog.V(6).Infof("[ExtractCode] 回复长度 %d，清理后代码长度 %d", len(response), len(sanitized))
	return sanitized
}

// Sanitize 清理 Mermaid 代码中的非法字符和常见语法问题。
// 只做逐行修复和过滤，输出行是输入行的子集，不做语法解析。
func Sanitize(code string) string {
	if code == "" {
		return code
	}

	sanitized := code

	// 节点标签里的括号改写成破折号：[Label (text)] -> [Label - text]
	// 同一标签里的多重括号逐轮改写
	for parenLabelRe.MatchString(sanitized) {
		sanitized = parenLabelRe.ReplaceAllString(sanitized, "[$1$3 - $2]")
	}

	// 去掉混进标签里的三反引号
	sanitized = strings.ReplaceAll(sanitized, "```", "")

	// 闭括号后残留的大写 ID：A[Label]  MCC -> A[Label]
	sanitized = trailingIDRe.ReplaceAllString(sanitized, "]$2")
	sanitized = lineEndIDRe.ReplaceAllString(sanitized, "]")

	// 连线目标节点后残留的大写 ID：A[x] --> B[y]  TEXT -> A[x] --> B[y]
	sanitized = edgeTrailingRe.ReplaceAllString(sanitized, "$1$3")

	// 压缩连续空白
	sanitized = multiSpaceRe.ReplaceAllString(sanitized, " ")

	// 丢掉既没有节点连线语法、又只剩符号的行
	lines := strings.Split(sanitized, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		lower := strings.ToLower(stripped)
		if strings.Contains(stripped, "[") ||
			strings.Contains(stripped, "]") ||
			strings.Contains(stripped, "-->") ||
			strings.Contains(lower, "flowchart") ||
			strings.Contains(lower, "graph") ||
			nodeDefRe.MatchString(stripped) {
			cleaned = append(cleaned, line)
			continue
		}
		if !junkLineRe.MatchString(stripped) {
			cleaned = append(cleaned, line)
		}
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
