package model

import (
	"time"
)

// Diagram 一次提示词转 Mermaid 图的生成记录
type Diagram struct {
	ID               uint              `json:"id" gorm:"primaryKey"`
	MermaidCode      string            `json:"mermaid_code" gorm:"type:text;not null"`
	OriginalPrompt   string            `json:"original_prompt" gorm:"type:text;not null"`
	ModelUsed        string            `json:"model_used" gorm:"size:100;index:idx_diagrams_model_used"`
	DiagramType      string            `json:"diagram_type" gorm:"size:50;index:idx_diagrams_diagram_type"` // flowchart, sequence, class, ...
	ProcessingTime   float64           `json:"processing_time"`
	Success          bool              `json:"success" gorm:"default:true"`
	ErrorMessage     string            `json:"error_message" gorm:"type:text"`
	CreatedAt        time.Time         `json:"created_at" gorm:"index:idx_diagrams_created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	GeneratedPrompts []GeneratedPrompt `json:"generated_prompts,omitempty" gorm:"foreignKey:DiagramID"`
}

// TableName 指定表名
func (Diagram) TableName() string {
	return "diagrams"
}

// GeneratedPrompt 由画布图结构反向生成的结构化提示词
type GeneratedPrompt struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	DiagramID        *uint     `json:"diagram_id" gorm:"index:idx_generated_prompts_diagram_id"`
	DiagramStructure string    `json:"diagram_structure" gorm:"type:text;not null"` // DiagramStructure 的 JSON 序列化
	OriginalPrompt   string    `json:"original_prompt" gorm:"type:text"`
	GeneratedPrompt  string    `json:"generated_prompt" gorm:"type:text;not null"`
	PromptFormat     string    `json:"prompt_format" gorm:"size:20;index:idx_generated_prompts_prompt_format"` // xml, markdown
	ModelUsed        string    `json:"model_used" gorm:"size:100"`
	ProcessingTime   float64   `json:"processing_time"`
	Success          bool      `json:"success" gorm:"default:true"`
	ErrorMessage     string    `json:"error_message" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at" gorm:"index:idx_generated_prompts_created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName 指定表名
func (GeneratedPrompt) TableName() string {
	return "generated_prompts"
}
