package prescribing

import "context"

type PrescriptionRepository interface {
	Add(ctx context.Context, p *Prescription) (int64, error)
	GetByID(ctx context.Context, id int64) (*Prescription, error)
	GetForPatient(ctx context.Context, patientID int64) ([]*Prescription, error)
	Delete(ctx context.Context, id int64) error
}

// TemplateRepository is append-only: templates are never deleted.
type TemplateRepository interface {
	Add(ctx context.Context, t *Template) (int64, error)
	GetByID(ctx context.Context, id int64) (*Template, error)
	GetAll(ctx context.Context) ([]*Template, error)
}
