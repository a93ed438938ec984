package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/promptviz/backend/internal/model"
	"github.com/promptviz/backend/internal/repository"
	"github.com/promptviz/backend/internal/service"
	"k8s.io/klog/v2"
)

// PromptHandler 画布反向生成提示词处理器
type PromptHandler struct {
	service service.PromptService
}

// NewPromptHandler 创建提示词处理器
func NewPromptHandler(service service.PromptService) *PromptHandler {
	return &PromptHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *PromptHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/generate-prompt", h.GeneratePrompt)
	router.GET("/generated-prompts", h.ListGeneratedPrompts)
	router.GET("/generated-prompts/:id", h.GetGeneratedPrompt)
	router.DELETE("/generated-prompts/:id", h.DeleteGeneratedPrompt)
}

// GeneratePromptRequest 画布生成提示词请求
type GeneratePromptRequest struct {
	DiagramStructure *model.DiagramStructure `json:"diagram_structure" binding:"required"`
	OriginalPrompt   string                  `json:"original_prompt"`
	PromptFormat     string                  `json:"prompt_format"`
	Model            string                  `json:"model"`
	DiagramID        *uint                   `json:"diagram_id"`
}

// GeneratePromptResponse 提示词生成响应，保存失败时 id 为 null
type GeneratePromptResponse struct {
	ID              *uint   `json:"id"`
	GeneratedPrompt string  `json:"generated_prompt"`
	PromptFormat    string  `json:"prompt_format"`
	Success         bool    `json:"success"`
	AIModelUsed     string  `json:"ai_model_used"`
	ProcessingTime  float64 `json:"processing_time"`
	ErrorMessage    string  `json:"error_message"`
}

// GeneratePrompt 根据画布结构生成结构化提示词
func (h *PromptHandler) GeneratePrompt(c *gin.Context) {
	var req GeneratePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		klog.V(6).Infof("GeneratePrompt: invalid request: %v", err)
		if errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No JSON data provided"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation error: " + err.Error()})
		return
	}

	result, saved, err := h.service.Generate(c.Request.Context(), &service.GeneratePromptRequest{
		Structure:      req.DiagramStructure,
		OriginalPrompt: req.OriginalPrompt,
		PromptFormat:   req.PromptFormat,
		Model:          req.Model,
		DiagramID:      req.DiagramID,
	})
	if err != nil {
		if service.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		klog.Errorf("GeneratePrompt: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !result.Success {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.ErrorMessage})
		return
	}

	format := req.PromptFormat
	if format == "" {
		format = "xml"
	}
	resp := GeneratePromptResponse{
		GeneratedPrompt: result.Content,
		PromptFormat:    format,
		Success:         true,
		AIModelUsed:     result.ModelUsed,
		ProcessingTime:  result.ProcessingTime,
	}
	if saved != nil {
		resp.ID = &saved.ID
	}

	c.JSON(http.StatusOK, resp)
}

// ListGeneratedPrompts 分页查询生成记录
func (h *PromptHandler) ListGeneratedPrompts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	var diagramID uint
	if raw := c.Query("diagram_id"); raw != "" {
		if parsed, parseErr := strconv.ParseUint(raw, 10, 32); parseErr == nil {
			diagramID = uint(parsed)
		}
	}

	prompts, total, err := h.service.List(c.Request.Context(), repository.GeneratedPromptFilter{
		DiagramID: diagramID,
		Format:    strings.TrimSpace(c.Query("format")),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		klog.Errorf("ListGeneratedPrompts: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generated_prompts": prompts,
		"total":             total,
		"limit":             limit,
		"offset":            offset,
	})
}

// GetGeneratedPrompt 根据 ID 获取记录
func (h *PromptHandler) GetGeneratedPrompt(c *gin.Context) {
	id := c.Param("id")
	var promptID uint
	if _, err := fmt.Sscanf(id, "%d", &promptID); err != nil || promptID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	prompt, err := h.service.Get(c.Request.Context(), promptID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Generated prompt not found"})
			return
		}
		klog.Errorf("GetGeneratedPrompt: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, prompt)
}

// DeleteGeneratedPrompt 删除记录
func (h *PromptHandler) DeleteGeneratedPrompt(c *gin.Context) {
	id := c.Param("id")
	var promptID uint
	if _, err := fmt.Sscanf(id, "%d", &promptID); err != nil || promptID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), promptID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Generated prompt not found"})
			return
		}
		klog.Errorf("DeleteGeneratedPrompt: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Generated prompt deleted successfully"})
}
