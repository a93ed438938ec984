package repository

import (
	"context"
	"errors"

	"github.com/promptviz/backend/internal/model"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

// DiagramFilter 图记录的列表过滤条件
type DiagramFilter struct {
	Search      string // 模糊匹配 original_prompt 或 mermaid_code
	Model       string
	DiagramType string
	Limit       int
	Offset      int
}

// GeneratedPromptFilter 生成提示词的列表过滤条件
type GeneratedPromptFilter struct {
	DiagramID uint // 0 表示不过滤
	Format    string
	Limit     int
	Offset    int
}

// DiagramStats 图记录统计结果
type DiagramStats struct {
	Total         int64            `json:"total"`
	ByModel       map[string]int64 `json:"by_model"`
	ByDiagramType map[string]int64 `json:"by_diagram_type"`
}

type DiagramRepository interface {
	// Create 保存一次生成记录
	Create(ctx context.Context, diagram *model.Diagram) error

	// List 按条件分页列出记录，并返回过滤后的总数
	List(ctx context.Context, filter DiagramFilter) ([]model.Diagram, int64, error)

	// Get 根据 ID 获取记录
	Get(ctx context.Context, id uint) (*model.Diagram, error)

	// Delete 删除记录
	Delete(ctx context.Context, id uint) error

	// Stats 按模型、图类型统计记录数
	Stats(ctx context.Context) (*DiagramStats, error)
}

type GeneratedPromptRepository interface {
	// Create 保存一次生成记录
	Create(ctx context.Context, prompt *model.GeneratedPrompt) error

	// List 按条件分页列出记录，并返回过滤后的总数
	List(ctx context.Context, filter GeneratedPromptFilter) ([]model.GeneratedPrompt, int64, error)

	// Get 根据 ID 获取记录
	Get(ctx context.Context, id uint) (*model.GeneratedPrompt, error)

	// Delete 删除记录
	Delete(ctx context.Context, id uint) error
}
