package prescribing

import (
	"context"
	"time"

	"github.com/draccessibility/clinic/pkg/clinicerr"
)

type Service struct {
	prescriptions PrescriptionRepository
	templates     TemplateRepository
}

func NewService(prescriptions PrescriptionRepository, templates TemplateRepository) *Service {
	return &Service{prescriptions: prescriptions, templates: templates}
}

// -- Prescription --

func (s *Service) AddPrescription(ctx context.Context, p *Prescription) (int64, error) {
	if p.PatientID == 0 {
		return 0, clinicerr.NewValidation("patient_id", "is required")
	}
	if p.Title == "" {
		return 0, clinicerr.NewValidation("title", "is required")
	}
	if p.Body == "" {
		return 0, clinicerr.NewValidation("body", "is required")
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return s.prescriptions.Add(ctx, p)
}

func (s *Service) GetPrescription(ctx context.Context, id int64) (*Prescription, error) {
	return s.prescriptions.GetByID(ctx, id)
}

func (s *Service) GetPrescriptionsForPatient(ctx context.Context, patientID int64) ([]*Prescription, error) {
	return s.prescriptions.GetForPatient(ctx, patientID)
}

func (s *Service) DeletePrescription(ctx context.Context, id int64) error {
	return s.prescriptions.Delete(ctx, id)
}

// -- Template --

func (s *Service) AddTemplate(ctx context.Context, t *Template) (int64, error) {
	if t.Name == "" {
		return 0, clinicerr.NewValidation("name", "is required")
	}
	if t.Body == "" {
		return 0, clinicerr.NewValidation("body", "is required")
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	return s.templates.Add(ctx, t)
}

func (s *Service) GetTemplate(ctx context.Context, id int64) (*Template, error) {
	return s.templates.GetByID(ctx, id)
}

func (s *Service) GetTemplates(ctx context.Context) ([]*Template, error) {
	return s.templates.GetAll(ctx)
}
