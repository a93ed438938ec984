package mermaid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// 测试 ExtractCode - 标准围栏回复
func TestExtractCode_FencedResponse(t *testing.T) {
	response := "```mermaid\nflowchart TD\n    A[Start] --> B[End]\n```"
	code := ExtractCode(response)
	assert.Equal(t, "flowchart TD\n A[Start] --> B[End]", code, "应去掉围栏并压缩缩进")
}

// 测试 ExtractCode - 围栏后的闲话要截掉，围栏前的交给行过滤
func TestExtractCode_TrailingChatter(t *testing.T) {
	response := "Here is the diagram:\n```mermaid\nflowchart TD\nA[Start] --> B[End]\n```\nLet me know if it helps."
	code := ExtractCode(response)
	assert.Equal(t, "Here is the diagram:\nflowchart TD\nA[Start] --> B[End]", code)
	assert.NotContains(t, code, "Let me know", "最后一个 ``` 之后的内容应被截断")
}

// 测试 ExtractCode - 只有开头围栏（前缀续写的典型输出）
func TestExtractCode_UnclosedFence(t *testing.T) {
	response := "```mermaid\nflowchart LR\nA --> B"
	assert.Equal(t, "flowchart LR\nA --> B", ExtractCode(response))
}

// 测试 ExtractCode - 完全没有围栏
func TestExtractCode_NoFence(t *testing.T) {
	response := "flowchart LR\nA --> B"
	assert.Equal(t, "flowchart LR\nA --> B", ExtractCode(response))
}

// 测试 ExtractCode - 空回复
func TestExtractCode_Empty(t *testing.T) {
	assert.Equal(t, "", ExtractCode(""))
	assert.Equal(t, "", ExtractCode("   \n  "))
}

// 测试 Sanitize - 标签里的括号改写成破折号
func TestSanitize_ParenthesesInLabel(t *testing.T) {
	out := Sanitize("A[Process (validate)] --> B[Done]")
	assert.Equal(t, "A[Process - validate] --> B[Done]", out)
}

// 测试 Sanitize - 同一标签多重括号逐轮改写
func TestSanitize_MultipleParentheses(t *testing.T) {
	out := Sanitize("A[Check (x) and (y)]")
	assert.Equal(t, "A[Check and - y - x]", out, "每轮把一层括号内容移到末尾")
}

// 测试 Sanitize - 标签里混入的三反引号
func TestSanitize_BackticksInside(t *testing.T) {
	out := Sanitize("flowchart TD\nA[Code] --> B[Run```]")
	assert.Equal(t, "flowchart TD\nA[Code] --> B[Run]", out)
}

// 测试 Sanitize - 闭括号后残留的大写 ID
func TestSanitize_TrailingIDAfterBracket(t *testing.T) {
	out := Sanitize("flowchart TD\nA[Login]  MCC\nB[Home]")
	assert.Equal(t, "flowchart TD\nA[Login]\nB[Home]", out)
}

// 测试 Sanitize - 紧贴闭括号的大写 ID
func TestSanitize_GluedIDAtLineEnd(t *testing.T) {
	out := Sanitize("A[Login]MC")
	assert.Equal(t, "A[Login]", out)
}

// 测试 Sanitize - 连线目标后的残留文本
func TestSanitize_TrailingIDAfterEdge(t *testing.T) {
	out := Sanitize("flowchart TD\nA[x] --> B[y] DB\nC[z]")
	assert.Equal(t, "flowchart TD\nA[x] --> B[y]\nC[z]", out)
}

// 测试 Sanitize - 连续空白压缩成单个空格
func TestSanitize_CollapseSpaces(t *testing.T) {
	out := Sanitize("A[a]    -->\t\tB[b]")
	assert.Equal(t, "A[a] --> B[b]", out)
}

// 测试 Sanitize - 纯符号行被丢弃，破折号行保留
func TestSanitize_JunkLines(t *testing.T) {
	out := Sanitize("flowchart TD\n####\nA[x] --> B[y]\n....\n---")
	assert.Equal(t, "flowchart TD\nA[x] --> B[y]\n---", out, "`---` 可能是连线的一部分，不能丢")
}

// 测试 Sanitize - 空行被丢弃
func TestSanitize_BlankLines(t *testing.T) {
	out := Sanitize("flowchart TD\n\n\nA[x] --> B[y]\n")
	assert.Equal(t, "flowchart TD\nA[x] --> B[y]", out)
}

// 测试 Sanitize - 非 flowchart 图不会被过滤掉
func TestSanitize_SequenceDiagramSurvives(t *testing.T) {
	out := Sanitize("sequenceDiagram\n    participant Alice\n    Alice->>Bob: Hello")
	assert.Equal(t, "sequenceDiagram\n participant Alice\n Alice->>Bob: Hello", out)
}

// 测试 Sanitize - 空输入
func TestSanitize_Empty(t *testing.T) {
	assert.Equal(t, "", Sanitize(""))
}

// 测试 Sanitize - 输出行是输入行的子集（无需行内修复时）
func TestSanitize_OutputLinesSubsetOfInput(t *testing.T) {
	input := "Some explanation first\nflowchart TD\nA[x] --> B[y]\n####\nB[y] --> C[z]\n...\ndone"
	out := Sanitize(input)

	inputLines := make(map[string]bool)
	for _, line := range strings.Split(input, "\n") {
		inputLines[line] = true
	}
	for _, line := range strings.Split(out, "\n") {
		assert.True(t, inputLines[line], "输出行 %q 必须来自输入", line)
	}
	assert.NotContains(t, out, "####")
	assert.NotContains(t, out, "...")
}
