package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/promptviz/backend/internal/repository"
	"github.com/promptviz/backend/internal/service"
	"k8s.io/klog/v2"
)

// DiagramHandler 图表生成与查询处理器
type DiagramHandler struct {
	service service.DiagramService
}

// NewDiagramHandler 创建图表处理器
func NewDiagramHandler(service service.DiagramService) *DiagramHandler {
	return &DiagramHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *DiagramHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/generate-diagram", h.GenerateDiagram)
	router.POST("/upload-file", h.UploadFile)
	router.GET("/diagrams", h.ListDiagrams)
	// stats 要注册在 :id 之前，避免被参数路由吞掉
	router.GET("/diagrams/stats", h.GetStats)
	router.GET("/diagrams/:id", h.GetDiagram)
	router.DELETE("/diagrams/:id", h.DeleteDiagram)
}

// GenerateDiagramRequest 文本生成图表请求
type GenerateDiagramRequest struct {
	Prompt      string `json:"prompt" binding:"required"`
	Model       string `json:"model"`
	DiagramType string `json:"diagram_type"`
}

// GenerateDiagramResponse 图表生成响应
type GenerateDiagramResponse struct {
	MermaidCode    string  `json:"mermaid_code"`
	Success        bool    `json:"success"`
	AIModelUsed    string  `json:"ai_model_used"`
	ProcessingTime float64 `json:"processing_time"`
	ErrorMessage   string  `json:"error_message"`
}

// GenerateDiagram 根据文本提示词生成 Mermaid 图表
func (h *DiagramHandler) GenerateDiagram(c *gin.Context) {
	var req GenerateDiagramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		klog.V(6).Infof("GenerateDiagram: invalid request: %v", err)
		if errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No JSON data provided"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation error: " + err.Error()})
		return
	}

	result, _, err := h.service.Generate(c.Request.Context(), &service.GenerateDiagramRequest{
		Prompt:      req.Prompt,
		Model:       req.Model,
		DiagramType: req.DiagramType,
	})
	if err != nil {
		if service.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		klog.Errorf("GenerateDiagram: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !result.Success {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.ErrorMessage})
		return
	}

	c.JSON(http.StatusOK, GenerateDiagramResponse{
		MermaidCode:    result.Content,
		Success:        result.Success,
		AIModelUsed:    result.ModelUsed,
		ProcessingTime: result.ProcessingTime,
		ErrorMessage:   result.ErrorMessage,
	})
}

// UploadFile 上传文件并用文件内容生成图表
func (h *DiagramHandler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	if fileHeader.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		klog.Errorf("UploadFile: failed to open upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		klog.Errorf("UploadFile: failed to read upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	modelName := c.PostForm("model")
	diagramType := c.PostForm("diagram_type")

	result, _, err := h.service.GenerateFromFile(c.Request.Context(), fileHeader.Filename, content, modelName, diagramType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		case service.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			klog.Errorf("UploadFile: failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	if !result.Success {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.ErrorMessage})
		return
	}

	c.JSON(http.StatusOK, GenerateDiagramResponse{
		MermaidCode:    result.Content,
		Success:        result.Success,
		AIModelUsed:    result.ModelUsed,
		ProcessingTime: result.ProcessingTime,
		ErrorMessage:   result.ErrorMessage,
	})
}

// ListDiagrams 分页查询生成记录
func (h *DiagramHandler) ListDiagrams(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	diagrams, total, err := h.service.List(c.Request.Context(), repository.DiagramFilter{
		Search:      strings.TrimSpace(c.Query("search")),
		Model:       strings.TrimSpace(c.Query("model")),
		DiagramType: strings.TrimSpace(c.Query("diagram_type")),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		klog.Errorf("ListDiagrams: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"diagrams": diagrams,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetDiagram 根据 ID 获取记录
func (h *DiagramHandler) GetDiagram(c *gin.Context) {
	id := c.Param("id")
	var diagramID uint
	if _, err := fmt.Sscanf(id, "%d", &diagramID); err != nil || diagramID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	diagram, err := h.service.Get(c.Request.Context(), diagramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Diagram not found"})
			return
		}
		klog.Errorf("GetDiagram: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, diagram)
}

// DeleteDiagram 删除记录
func (h *DiagramHandler) DeleteDiagram(c *gin.Context) {
	id := c.Param("id")
	var diagramID uint
	if _, err := fmt.Sscanf(id, "%d", &diagramID); err != nil || diagramID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), diagramID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Diagram not found"})
			return
		}
		klog.Errorf("DeleteDiagram: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Diagram deleted successfully"})
}

// GetStats 按模型和图类型统计记录分布
func (h *DiagramHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		klog.Errorf("GetStats: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
