package records

import (
	"context"

	"github.com/draccessibility/clinic/pkg/clinicerr"
)

// Service validates patient and consultation writes before they reach storage.
type Service struct {
	patients      PatientRepository
	consultations ConsultationRepository
}

func NewService(patients PatientRepository, consultations ConsultationRepository) *Service {
	return &Service{patients: patients, consultations: consultations}
}

// -- Patient --

func (s *Service) AddPatient(ctx context.Context, p *Patient) (int64, error) {
	if p.FullName == "" {
		return 0, clinicerr.NewValidation("full_name", "is required")
	}
	return s.patients.Add(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) GetAllPatients(ctx context.Context) ([]*Patient, error) {
	return s.patients.GetAll(ctx)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.FullName == "" {
		return clinicerr.NewValidation("full_name", "is required")
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	return s.patients.Delete(ctx, id)
}

// -- Consultation --

func (s *Service) AddConsultation(ctx context.Context, c *Consultation) (int64, error) {
	if c.PatientID == 0 {
		return 0, clinicerr.NewValidation("patient_id", "is required")
	}
	if c.ScheduledDate.IsZero() {
		return 0, clinicerr.NewValidation("scheduled_date", "is required")
	}
	// The patient must resolve before any write is attempted.
	if _, err := s.patients.GetByID(ctx, c.PatientID); err != nil {
		return 0, err
	}
	return s.consultations.Add(ctx, c)
}

func (s *Service) GetConsultation(ctx context.Context, id int64) (*Consultation, error) {
	return s.consultations.GetByID(ctx, id)
}

func (s *Service) GetConsultationsForPatient(ctx context.Context, patientID int64) ([]*Consultation, error) {
	return s.consultations.GetForPatient(ctx, patientID)
}

func (s *Service) UpdateConsultation(ctx context.Context, c *Consultation) error {
	if c.ScheduledDate.IsZero() {
		return clinicerr.NewValidation("scheduled_date", "is required")
	}
	return s.consultations.Update(ctx, c)
}

func (s *Service) DeleteConsultation(ctx context.Context, id int64) error {
	return s.consultations.Delete(ctx, id)
}
