package anamnesis

import (
	"context"
	"time"

	"github.com/draccessibility/clinic/pkg/clinicerr"
)

type Service struct {
	templates TemplateRepository
}

func NewService(templates TemplateRepository) *Service {
	return &Service{templates: templates}
}

func (s *Service) AddTemplate(ctx context.Context, t *Template) (int64, error) {
	if t.Name == "" {
		return 0, clinicerr.NewValidation("name", "is required")
	}
	if t.ImportedAt.IsZero() {
		t.ImportedAt = time.Now()
	}
	return s.templates.Add(ctx, t)
}

func (s *Service) GetTemplate(ctx context.Context, id int64) (*Template, error) {
	return s.templates.GetByID(ctx, id)
}

func (s *Service) GetTemplates(ctx context.Context) ([]*Template, error) {
	return s.templates.GetAll(ctx)
}
