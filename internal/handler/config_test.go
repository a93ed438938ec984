package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/promptviz/backend/config"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"short", "***"},
		{"1234567", "***"},
		{"sk-abcdef1234", "sk-***1234"},
		{"AIzaSyTestKey9876", "AIz***9876"},
	}
	for _, tt := range tests {
		if got := maskAPIKey(tt.key); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestGetConfigHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server:   config.ServerConfig{Port: "8000"},
		Database: config.DatabaseConfig{Type: "sqlite"},
		LLM: config.LLMConfig{
			DefaultModel:   "gemini/gemini-2.5-flash-lite",
			TimeoutSeconds: 120,
			OpenAI:         config.ProviderConfig{APIKey: "sk-test-abcdef1234", BaseURL: "https://api.openai.com/v1"},
			Google:         config.ProviderConfig{APIKey: ""},
		},
		Upload: config.UploadConfig{
			MaxSize:           16 * 1024 * 1024,
			AllowedExtensions: []string{"txt", "md", "markdown"},
		},
	}
	router := gin.New()
	NewConfigHandler(cfg).RegisterRoutes(router.Group("/api"))

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp struct {
		Server struct {
			Port string `json:"port"`
		} `json:"server"`
		LLM struct {
			DefaultModel string `json:"default_model"`
			Providers    struct {
				OpenAI struct {
					APIKey string `json:"api_key"`
				} `json:"openai"`
				Google struct {
					APIKey string `json:"api_key"`
				} `json:"google"`
			} `json:"providers"`
		} `json:"llm"`
		Upload struct {
			MaxSize int64 `json:"max_size"`
		} `json:"upload"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response error: %v", err)
	}
	if resp.Server.Port != "8000" || resp.LLM.DefaultModel != "gemini/gemini-2.5-flash-lite" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	// API Key 必须脱敏返回
	if resp.LLM.Providers.OpenAI.APIKey != "sk-***1234" {
		t.Fatalf("expected masked openai key, got %q", resp.LLM.Providers.OpenAI.APIKey)
	}
	if resp.LLM.Providers.Google.APIKey != "" {
		t.Fatalf("expected empty google key, got %q", resp.LLM.Providers.Google.APIKey)
	}
	if resp.Upload.MaxSize != 16*1024*1024 {
		t.Fatalf("unexpected max_size: %d", resp.Upload.MaxSize)
	}
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHealthHandler().RegisterRoutes(router.Group("/api"))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
		Version   string `json:"version"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response error: %v", err)
	}
	if resp.Status != "ok" || resp.Version != apiVersion || resp.Timestamp == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
