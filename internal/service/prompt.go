package service

import (
	"context"

	"github.com/promptviz/backend/internal/model"
	"github.com/promptviz/backend/internal/pkg/llm"
	"github.com/promptviz/backend/internal/repository"
	"github.com/promptviz/backend/internal/utils"
	"k8s.io/klog/v2"
)

const defaultPromptFormat = "xml"

// PromptService 画布反向生成提示词与查询服务接口
type PromptService interface {
	// Generate 根据画布结构生成结构化提示词，成功时顺带保存记录
	Generate(ctx context.Context, req *GeneratePromptRequest) (*llm.GenerationResult, *model.GeneratedPrompt, error)

	// List 分页查询生成记录
	List(ctx context.Context, filter repository.GeneratedPromptFilter) ([]model.GeneratedPrompt, int64, error)

	// Get 根据 ID 获取记录
	Get(ctx context.Context, id uint) (*model.GeneratedPrompt, error)

	// Delete 删除记录
	Delete(ctx context.Context, id uint) error
}

// GeneratePromptRequest 画布生成提示词请求
type GeneratePromptRequest struct {
	Structure      *model.DiagramStructure
	OriginalPrompt string
	PromptFormat   string // xml 或 markdown，空值按 xml 处理
	Model          string
	DiagramID      *uint
}

// promptService 提示词服务实现
type promptService struct {
	repo repository.GeneratedPromptRepository
	llm  llmClient
}

// NewPromptService 创建提示词服务。client 为 nil 时 Generate 返回 ErrLLMUnavailable
func NewPromptService(repo repository.GeneratedPromptRepository, client *llm.Client) PromptService {
	s := &promptService{repo: repo}
	if client != nil {
		s.llm = client
	}
	return s
}

// Generate 根据画布结构生成结构化提示词
func (s *promptService) Generate(ctx context.Context, req *GeneratePromptRequest) (*llm.GenerationResult, *model.GeneratedPrompt, error) {
	if req.Structure == nil || len(req.Structure.Nodes) == 0 {
		return nil, nil, ErrDiagramEmpty
	}

	format := req.PromptFormat
	if format == "" {
		format = defaultPromptFormat
	}
	if format != "xml" && format != "markdown" {
		return nil, nil, ErrInvalidPromptFormat
	}

	if s.llm == nil {
		return nil, nil, ErrLLMUnavailable
	}

	klog.V(6).Infof("Generate: format=%s, model=%s, nodes=%d, edges=%d",
		format, req.Model, len(req.Structure.Nodes), len(req.Structure.Edges))
	result := s.llm.GeneratePromptFromDiagram(ctx, req.Structure, req.OriginalPrompt, format, req.Model)

	var saved *model.GeneratedPrompt
	if result.Success {
		record := &model.GeneratedPrompt{
			DiagramID:        req.DiagramID,
			DiagramStructure: utils.ToJSON(req.Structure),
			OriginalPrompt:   req.OriginalPrompt,
			GeneratedPrompt:  result.Content,
			PromptFormat:     format,
			ModelUsed:        result.ModelUsed,
			ProcessingTime:   result.ProcessingTime,
			Success:          true,
		}
		if err := s.repo.Create(ctx, record); err != nil {
			klog.Errorf("Generate: failed to save generated prompt: %v", err)
		} else {
			klog.V(6).Infof("Generate: saved generated prompt id=%d", record.ID)
			saved = record
		}
	}
	return result, saved, nil
}

// List 分页查询生成记录
func (s *promptService) List(ctx context.Context, filter repository.GeneratedPromptFilter) ([]model.GeneratedPrompt, int64, error) {
	return s.repo.List(ctx, filter)
}

// Get 根据 ID 获取记录
func (s *promptService) Get(ctx context.Context, id uint) (*model.GeneratedPrompt, error) {
	return s.repo.Get(ctx, id)
}

// Delete 删除记录
func (s *promptService) Delete(ctx context.Context, id uint) error {
	klog.V(6).Infof("Delete: deleting generated prompt id=%d", id)
	return s.repo.Delete(ctx, id)
}
