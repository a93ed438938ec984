package repository

import (
	"context"
	"errors"

	"github.com/promptviz/backend/internal/model"
	"gorm.io/gorm"
)

type generatedPromptRepository struct {
	db *gorm.DB
}

func NewGeneratedPromptRepository(db *gorm.DB) GeneratedPromptRepository {
	return &generatedPromptRepository{db: db}
}

func (r *generatedPromptRepository) Create(ctx context.Context, prompt *model.GeneratedPrompt) error {
	return r.db.WithContext(ctx).Create(prompt).Error
}

func (r *generatedPromptRepository) List(ctx context.Context, filter GeneratedPromptFilter) ([]model.GeneratedPrompt, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.GeneratedPrompt{})

	if filter.DiagramID > 0 {
		query = query.Where("diagram_id = ?", filter.DiagramID)
	}
	if filter.Format != "" {
		query = query.Where("prompt_format = ?", filter.Format)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	// 空结果也返回空切片，保证 JSON 序列化为 [] 而不是 null
	prompts := make([]model.GeneratedPrompt, 0, limit)
	err := query.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&prompts).Error
	if err != nil {
		return nil, 0, err
	}
	return prompts, total, nil
}

func (r *generatedPromptRepository) Get(ctx context.Context, id uint) (*model.GeneratedPrompt, error) {
	var prompt model.GeneratedPrompt
	err := r.db.WithContext(ctx).First(&prompt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &prompt, nil
}

func (r *generatedPromptRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.GeneratedPrompt{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
