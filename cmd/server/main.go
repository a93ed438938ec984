package main

import (
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/promptviz/backend/config"
	"github.com/promptviz/backend/internal/handler"
	"github.com/promptviz/backend/internal/pkg/database"
	"github.com/promptviz/backend/internal/pkg/llm"
	"github.com/promptviz/backend/internal/repository"
	"github.com/promptviz/backend/internal/router"
	"github.com/promptviz/backend/internal/service"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化 Repository
	diagramRepo := repository.NewDiagramRepository(db)
	promptRepo := repository.NewGeneratedPromptRepository(db)

	// 初始化 LLM 客户端
	// 未配置 API Key 时服务降级运行，生成类接口返回 LLM 不可用错误
	llmClient, err := llm.NewClient(cfg)
	if err != nil {
		klog.Warningf("LLM 客户端初始化失败，生成功能不可用: %v", err)
		llmClient = nil
	}

	// 初始化 Service
	diagramService := service.NewDiagramService(cfg, diagramRepo, llmClient)
	promptService := service.NewPromptService(promptRepo, llmClient)
	catalogService := service.NewCatalogService(llmClient)

	// 初始化 Handler
	diagramHandler := handler.NewDiagramHandler(diagramService)
	promptHandler := handler.NewPromptHandler(promptService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	healthHandler := handler.NewHealthHandler()
	configHandler := handler.NewConfigHandler(cfg)

	// 设置路由
	r := router.Setup(cfg, diagramHandler, promptHandler, catalogHandler, healthHandler, configHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
