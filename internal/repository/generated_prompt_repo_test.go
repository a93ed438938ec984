package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/promptviz/backend/internal/model"
	"gorm.io/gorm"
)

func TestGeneratedPromptRepositoryCreateAndGet(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(&model.GeneratedPrompt{}); err != nil {
		t.Fatalf("migrate error: %v", err)
	}

	repo := NewGeneratedPromptRepository(db)
	ctx := context.Background()

	diagramID := uint(7)
	prompt := &model.GeneratedPrompt{
		DiagramID:        &diagramID,
		DiagramStructure: `{"nodes":[{"id":"A","label":"Step"}],"edges":[]}`,
		OriginalPrompt:   "original",
		GeneratedPrompt:  "<task>do the step</task>",
		PromptFormat:     "xml",
		ModelUsed:        "gpt-4",
		ProcessingTime:   0.31,
		Success:          true,
	}
	if err := repo.Create(ctx, prompt); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.Get(ctx, prompt.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.DiagramID == nil || *got.DiagramID != diagramID {
		t.Fatalf("unexpected diagram_id: %v", got.DiagramID)
	}
	if got.GeneratedPrompt != prompt.GeneratedPrompt || got.PromptFormat != "xml" {
		t.Fatalf("unexpected row: %+v", got)
	}

	// diagram_id 可为空
	orphan := &model.GeneratedPrompt{
		DiagramStructure: `{"nodes":[],"edges":[]}`,
		GeneratedPrompt:  "# Task",
		PromptFormat:     "markdown",
		ModelUsed:        "gpt-4",
		Success:          true,
	}
	if err := repo.Create(ctx, orphan); err != nil {
		t.Fatalf("Create(orphan) error = %v", err)
	}
	got, err = repo.Get(ctx, orphan.ID)
	if err != nil {
		t.Fatalf("Get(orphan) error = %v", err)
	}
	if got.DiagramID != nil {
		t.Fatalf("expected nil diagram_id, got %v", *got.DiagramID)
	}

	if _, err := repo.Get(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestGeneratedPromptRepositoryListFilters(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(&model.GeneratedPrompt{}); err != nil {
		t.Fatalf("migrate error: %v", err)
	}

	repo := NewGeneratedPromptRepository(db)
	ctx := context.Background()

	diagramID := uint(3)
	seed := []model.GeneratedPrompt{
		{DiagramID: &diagramID, DiagramStructure: "{}", GeneratedPrompt: "<a/>", PromptFormat: "xml", ModelUsed: "gpt-4", Success: true},
		{DiagramID: &diagramID, DiagramStructure: "{}", GeneratedPrompt: "# b", PromptFormat: "markdown", ModelUsed: "gpt-4", Success: true},
		{DiagramStructure: "{}", GeneratedPrompt: "<c/>", PromptFormat: "xml", ModelUsed: "gpt-4", Success: true},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Create() seed %d error = %v", i, err)
		}
	}

	prompts, total, err := repo.List(ctx, GeneratedPromptFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 || len(prompts) != 3 {
		t.Fatalf("List() = %d rows, total %d, want 3/3", len(prompts), total)
	}
	if prompts[0].ID != seed[2].ID {
		t.Fatalf("expected newest row first, got id=%d", prompts[0].ID)
	}

	prompts, total, err = repo.List(ctx, GeneratedPromptFilter{DiagramID: diagramID})
	if err != nil {
		t.Fatalf("List(diagram) error = %v", err)
	}
	if total != 2 || len(prompts) != 2 {
		t.Fatalf("unexpected diagram filter result: total=%d rows=%d", total, len(prompts))
	}

	prompts, total, err = repo.List(ctx, GeneratedPromptFilter{Format: "markdown"})
	if err != nil {
		t.Fatalf("List(format) error = %v", err)
	}
	if total != 1 || prompts[0].PromptFormat != "markdown" {
		t.Fatalf("unexpected format filter result: total=%d", total)
	}

	prompts, total, err = repo.List(ctx, GeneratedPromptFilter{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("List(page) error = %v", err)
	}
	if total != 3 || len(prompts) != 1 {
		t.Fatalf("unexpected page result: total=%d rows=%d", total, len(prompts))
	}
}

func TestGeneratedPromptRepositoryDelete(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(&model.GeneratedPrompt{}); err != nil {
		t.Fatalf("migrate error: %v", err)
	}

	repo := NewGeneratedPromptRepository(db)
	ctx := context.Background()

	prompt := &model.GeneratedPrompt{
		DiagramStructure: "{}",
		GeneratedPrompt:  "<task/>",
		PromptFormat:     "xml",
		ModelUsed:        "gpt-4",
		Success:          true,
	}
	if err := repo.Create(ctx, prompt); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(ctx, prompt.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, prompt.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}
