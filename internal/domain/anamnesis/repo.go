package anamnesis

import "context"

// TemplateRepository is append-only: imported templates are never deleted.
type TemplateRepository interface {
	Add(ctx context.Context, t *Template) (int64, error)
	GetByID(ctx context.Context, id int64) (*Template, error)
	GetAll(ctx context.Context) ([]*Template, error)
}
