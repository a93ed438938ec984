package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/promptviz/backend/config"
	"github.com/promptviz/backend/internal/model"
	"github.com/promptviz/backend/internal/pkg/llm"
	"github.com/promptviz/backend/internal/repository"
	"github.com/promptviz/backend/internal/utils"
	"k8s.io/klog/v2"
)

const defaultDiagramType = "flowchart"

// DiagramService 图表生成与查询服务接口
type DiagramService interface {
	// Generate 根据文本提示词生成 Mermaid 图表，成功时顺带保存记录
	Generate(ctx context.Context, req *GenerateDiagramRequest) (*llm.GenerationResult, *model.Diagram, error)

	// GenerateFromFile 校验上传文件后用文件内容生成图表
	GenerateFromFile(ctx context.Context, filename string, content []byte, modelName, diagramType string) (*llm.GenerationResult, *model.Diagram, error)

	// List 分页查询生成记录
	List(ctx context.Context, filter repository.DiagramFilter) ([]model.Diagram, int64, error)

	// Get 根据 ID 获取记录
	Get(ctx context.Context, id uint) (*model.Diagram, error)

	// Delete 删除记录
	Delete(ctx context.Context, id uint) error

	// Stats 按模型和图类型统计记录分布
	Stats(ctx context.Context) (*repository.DiagramStats, error)
}

// GenerateDiagramRequest 文本生成图表请求
type GenerateDiagramRequest struct {
	Prompt      string `json:"prompt" binding:"required"`
	Model       string `json:"model"`
	DiagramType string `json:"diagram_type"`
}

// diagramService 图表服务实现
type diagramService struct {
	repo   repository.DiagramRepository
	llm    llmClient
	upload config.UploadConfig
}

// NewDiagramService 创建图表服务。client 为 nil 时生成类接口返回 ErrLLMUnavailable，
// 查询类接口不受影响
func NewDiagramService(cfg *config.Config, repo repository.DiagramRepository, client *llm.Client) DiagramService {
	s := &diagramService{repo: repo, upload: cfg.Upload}
	if client != nil {
		s.llm = client
	}
	return s
}

// Generate 根据文本提示词生成 Mermaid 图表
func (s *diagramService) Generate(ctx context.Context, req *GenerateDiagramRequest) (*llm.GenerationResult, *model.Diagram, error) {
	if !utils.ValidPromptText(req.Prompt) {
		return nil, nil, ErrPromptTooShort
	}
	if s.llm == nil {
		return nil, nil, ErrLLMUnavailable
	}

	diagramType := req.DiagramType
	if diagramType == "" {
		diagramType = defaultDiagramType
	}

	klog.V(6).Infof("Generate: model=%s, diagramType=%s, promptLength=%d", req.Model, diagramType, len(req.Prompt))
	result := s.llm.GenerateDiagram(ctx, req.Prompt, req.Model, diagramType)

	var saved *model.Diagram
	if result.Success {
		saved = s.saveDiagram(ctx, req.Prompt, diagramType, result)
	}
	return result, saved, nil
}

// GenerateFromFile 校验上传文件后用文件内容生成图表
func (s *diagramService) GenerateFromFile(ctx context.Context, filename string, content []byte, modelName, diagramType string) (*llm.GenerationResult, *model.Diagram, error) {
	if s.upload.MaxSize > 0 && int64(len(content)) > s.upload.MaxSize {
		return nil, nil, ErrFileTooLarge
	}
	if !utils.AllowedFile(filename, s.upload.AllowedExtensions) {
		return nil, nil, fmt.Errorf("%w. Allowed types: %s", ErrFileTypeNotAllowed, strings.Join(s.upload.AllowedExtensions, ", "))
	}
	if !utf8.Valid(content) {
		return nil, nil, ErrFileNotUTF8
	}

	text := string(content)
	if !utils.ValidPromptText(text) {
		return nil, nil, ErrFileContentTooShort
	}
	if s.llm == nil {
		return nil, nil, ErrLLMUnavailable
	}

	if diagramType == "" {
		diagramType = defaultDiagramType
	}

	klog.V(6).Infof("GenerateFromFile: file=%s, size=%d, model=%s, diagramType=%s", filename, len(content), modelName, diagramType)
	result := s.llm.GenerateDiagram(ctx, text, modelName, diagramType)

	var saved *model.Diagram
	if result.Success {
		saved = s.saveDiagram(ctx, text, diagramType, result)
	}
	return result, saved, nil
}

// saveDiagram 保存生成记录。保存失败只记日志，不影响本次请求返回
func (s *diagramService) saveDiagram(ctx context.Context, prompt, diagramType string, result *llm.GenerationResult) *model.Diagram {
	diagram := &model.Diagram{
		MermaidCode:    result.Content,
		OriginalPrompt: prompt,
		ModelUsed:      result.ModelUsed,
		DiagramType:    diagramType,
		ProcessingTime: result.ProcessingTime,
		Success:        result.Success,
		ErrorMessage:   result.ErrorMessage,
	}
	if err := s.repo.Create(ctx, diagram); err != nil {
		klog.Errorf("saveDiagram: failed to save diagram: %v", err)
		return nil
	}
	klog.V(6).Infof("saveDiagram: saved diagram id=%d", diagram.ID)
	return diagram
}

// List 分页查询生成记录
func (s *diagramService) List(ctx context.Context, filter repository.DiagramFilter) ([]model.Diagram, int64, error) {
	return s.repo.List(ctx, filter)
}

// Get 根据 ID 获取记录
func (s *diagramService) Get(ctx context.Context, id uint) (*model.Diagram, error) {
	return s.repo.Get(ctx, id)
}

// Delete 删除记录
func (s *diagramService) Delete(ctx context.Context, id uint) error {
	klog.V(6).Infof("Delete: deleting diagram id=%d", id)
	return s.repo.Delete(ctx, id)
}

// Stats 按模型和图类型统计记录分布
func (s *diagramService) Stats(ctx context.Context) (*repository.DiagramStats, error) {
	return s.repo.Stats(ctx)
}
