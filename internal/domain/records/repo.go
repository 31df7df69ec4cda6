package records

import "context"

type PatientRepository interface {
	Add(ctx context.Context, p *Patient) (int64, error)
	GetByID(ctx context.Context, id int64) (*Patient, error)
	GetAll(ctx context.Context) ([]*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id int64) error
}

type ConsultationRepository interface {
	Add(ctx context.Context, c *Consultation) (int64, error)
	GetByID(ctx context.Context, id int64) (*Consultation, error)
	GetForPatient(ctx context.Context, patientID int64) ([]*Consultation, error)
	Update(ctx context.Context, c *Consultation) error
	Delete(ctx context.Context, id int64) error
}
