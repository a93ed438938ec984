package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptviz/backend/config"
)

// ConfigHandler 运行配置查看处理器
type ConfigHandler struct {
	cfg *config.Config
}

// NewConfigHandler 创建配置处理器
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// RegisterRoutes 注册路由
func (h *ConfigHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/config", h.GetConfig)
}

// GetConfig 返回脱敏后的运行配置
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"server": gin.H{
			"port": h.cfg.Server.Port,
		},
		"database": gin.H{
			"type": h.cfg.Database.Type,
		},
		"llm": gin.H{
			"default_model":   h.cfg.LLM.DefaultModel,
			"timeout_seconds": h.cfg.LLM.TimeoutSeconds,
			"providers": gin.H{
				"openai": gin.H{
					"api_key":  maskAPIKey(h.cfg.LLM.OpenAI.APIKey),
					"base_url": h.cfg.LLM.OpenAI.BaseURL,
				},
				"anthropic": gin.H{
					"api_key":  maskAPIKey(h.cfg.LLM.Anthropic.APIKey),
					"base_url": h.cfg.LLM.Anthropic.BaseURL,
				},
				"google": gin.H{
					"api_key": maskAPIKey(h.cfg.LLM.Google.APIKey),
				},
			},
		},
		"upload": gin.H{
			"max_size":           h.cfg.Upload.MaxSize,
			"allowed_extensions": h.cfg.Upload.AllowedExtensions,
		},
	})
}

// maskAPIKey 脱敏 API Key（只显示前3位和后4位），未配置时返回空串
func maskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 7 {
		return "***"
	}
	return key[:3] + "***" + key[len(key)-4:]
}
