package repository

import (
	"context"
	"errors"

	"github.com/promptviz/backend/internal/model"
	"gorm.io/gorm"
)

type diagramRepository struct {
	db *gorm.DB
}

func NewDiagramRepository(db *gorm.DB) DiagramRepository {
	return &diagramRepository{db: db}
}

func (r *diagramRepository) Create(ctx context.Context, diagram *model.Diagram) error {
	return r.db.WithContext(ctx).Create(diagram).Error
}

func (r *diagramRepository) List(ctx context.Context, filter DiagramFilter) ([]model.Diagram, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Diagram{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("original_prompt LIKE ? OR mermaid_code LIKE ?", like, like)
	}
	if filter.Model != "" {
		query = query.Where("model_used = ?", filter.Model)
	}
	if filter.DiagramType != "" {
		query = query.Where("diagram_type = ?", filter.DiagramType)
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
	diagrams := make([]model.Diagram, 0, limit)
	err := query.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&diagrams).Error
	if err != nil {
		return nil, 0, err
	}
	return diagrams, total, nil
}

func (r *diagramRepository) Get(ctx context.Context, id uint) (*model.Diagram, error) {
	var diagram model.Diagram
	err := r.db.WithContext(ctx).First(&diagram, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &diagram, nil
}

func (r *diagramRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Diagram{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *diagramRepository) Stats(ctx context.Context) (*DiagramStats, error) {
	stats := &DiagramStats{
		ByModel:       make(map[string]int64),
		ByDiagramType: make(map[string]int64),
	}

	if err := r.db.WithContext(ctx).Model(&model.Diagram{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	type countRow struct {
		Name  string
		Count int64
	}

	var byModel []countRow
	err := r.db.WithContext(ctx).Model(&model.Diagram{}).
		Select("model_used as name, COUNT(*) as count").
		Group("model_used").
		Scan(&byModel).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byModel {
		stats.ByModel[row.Name] = row.Count
	}

	var byType []countRow
	err = r.db.WithContext(ctx).Model(&model.Diagram{}).
		Select("diagram_type as name, COUNT(*) as count").
		Group("diagram_type").
		Scan(&byType).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byType {
		stats.ByDiagramType[row.Name] = row.Count
	}

	return stats, nil
}
