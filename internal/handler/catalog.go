package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptviz/backend/internal/service"
	"k8s.io/klog/v2"
)

// CatalogHandler 模型目录、密钥校验与系统提示词处理器
type CatalogHandler struct {
	service service.CatalogService
}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler(service service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/models", h.GetModels)
	router.POST("/validate-key", h.ValidateKey)
	router.GET("/system-prompts", h.GetSystemPrompts)
}

// ValidateKeyRequest 密钥校验请求
type ValidateKeyRequest struct {
	Model  string `json:"model" binding:"required"`
	APIKey string `json:"api_key" binding:"required"`
}

// GetModels 列出模型目录及可用状态
func (h *CatalogHandler) GetModels(c *gin.Context) {
	models, err := h.service.AvailableModels()
	if err != nil {
		klog.Errorf("GetModels: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"models": models})
}

// ValidateKey 用一次最小请求校验模型与密钥组合
func (h *CatalogHandler) ValidateKey(c *gin.Context) {
	var req ValidateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		klog.V(6).Infof("ValidateKey: invalid request: %v", err)
		if errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No JSON data provided"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Model and API key are required"})
		return
	}

	validation, err := h.service.ValidateKey(c.Request.Context(), req.Model, req.APIKey)
	if err != nil {
		klog.Errorf("ValidateKey: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, validation)
}

// GetSystemPrompts 列出内置系统提示词元信息
func (h *CatalogHandler) GetSystemPrompts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"available_prompts": h.service.SystemPrompts()})
}
