package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
	Upload   UploadConfig   `yaml:"upload"`
	Data     DataConfig     `yaml:"data"`
	Prompts  PromptsConfig  `yaml:"prompts"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Type string `yaml:"type"` // sqlite, mysql
	DSN  string `yaml:"dsn"`
}

type LLMConfig struct {
	DefaultModel     string         `yaml:"default_model"`
	TimeoutSeconds   int            `yaml:"timeout_seconds"`
	DiagramMaxTokens int            `yaml:"diagram_max_tokens"`
	PromptMaxTokens  int            `yaml:"prompt_max_tokens"`
	OpenAI           ProviderConfig `yaml:"openai"`
	Anthropic        ProviderConfig `yaml:"anthropic"`
	Google           ProviderConfig `yaml:"google"`
}

type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type UploadConfig struct {
	MaxSize           int64    `yaml:"max_size"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
}

type DataConfig struct {
	Dir string `yaml:"dir"`
}

type PromptsConfig struct {
	Dir string `yaml:"dir"`
}

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		cfg = loadConfig()
	})
	return cfg
}

func loadConfig() *Config {
	godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: "5001",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			DSN:  "./data/promptviz.db",
		},
		LLM: LLMConfig{
			DefaultModel:     "gemini/gemini-2.5-flash-lite",
			TimeoutSeconds:   60,
			DiagramMaxTokens: 100000,
			PromptMaxTokens:  8000,
			OpenAI: ProviderConfig{
				BaseURL: "https://api.openai.com/v1",
			},
			Anthropic: ProviderConfig{
				BaseURL: "https://api.anthropic.com/v1",
			},
		},
		Upload: UploadConfig{
			MaxSize:           16 << 20,
			AllowedExtensions: []string{"txt", "md", "markdown"},
		},
		Data: DataConfig{
			Dir: "./data",
		},
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		yaml.Unmarshal(data, config)
	}

	// 环境变量优先级高于配置文件
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.LLM.OpenAI.APIKey = apiKey
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.LLM.OpenAI.BaseURL = baseURL
	}
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		config.LLM.Anthropic.APIKey = apiKey
	}
	if baseURL := os.Getenv("ANTHROPIC_BASE_URL"); baseURL != "" {
		config.LLM.Anthropic.BaseURL = baseURL
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.LLM.Google.APIKey = apiKey
	}
	if model := os.Getenv("LLM_DEFAULT_MODEL"); model != "" {
		config.LLM.DefaultModel = model
	}
	if timeout := os.Getenv("LLM_TIMEOUT"); timeout != "" {
		if seconds, err := strconv.Atoi(timeout); err == nil && seconds > 0 {
			config.LLM.TimeoutSeconds = seconds
		}
	}

	// 数据库环境变量
	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		config.Database.Type = dbType
	}
	if dbDSN := os.Getenv("DB_DSN"); dbDSN != "" {
		config.Database.DSN = dbDSN
	}

	// 数据目录环境变量
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		config.Data.Dir = dataDir
	}
	if promptsDir := os.Getenv("PROMPTS_DIR"); promptsDir != "" {
		config.Prompts.Dir = promptsDir
	}

	if port := os.Getenv("PORT"); port != "" {
		config.Server.Port = port
	}

	return config
}
