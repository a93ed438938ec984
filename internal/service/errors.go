package service

import "errors"

// 校验和可用性错误。错误文本会原样出现在接口响应里，由 handler 映射状态码。
var (
	// ErrLLMUnavailable LLM 客户端未初始化（没有配置任何 API Key）
	ErrLLMUnavailable = errors.New("LLM service not available")

	// ErrPromptTooShort 提示词过短
	ErrPromptTooShort = errors.New("Prompt text is too short or invalid")

	// ErrFileContentTooShort 文件内容过短
	ErrFileContentTooShort = errors.New("File content is too short or invalid")

	// ErrFileNotUTF8 文件编码不是 UTF-8
	ErrFileNotUTF8 = errors.New("File encoding not supported. Please use UTF-8 encoded files.")

	// ErrFileTooLarge 文件超出大小限制
	ErrFileTooLarge = errors.New("File too large")

	// ErrFileTypeNotAllowed 文件扩展名不在白名单内
	ErrFileTypeNotAllowed = errors.New("File type not allowed")

	// ErrDiagramEmpty 画布结构里没有节点
	ErrDiagramEmpty = errors.New("Diagram must have at least one node")

	// ErrInvalidPromptFormat 提示词输出格式不合法
	ErrInvalidPromptFormat = errors.New(`Invalid format. Must be "xml" or "markdown"`)
)

// IsValidationError 是否为请求校验类错误，对应 HTTP 400
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrPromptTooShort,
		ErrFileContentTooShort,
		ErrFileNotUTF8,
		ErrFileTypeNotAllowed,
		ErrDiagramEmpty,
		ErrInvalidPromptFormat,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
