package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/draccessibility/clinic/pkg/clinicerr"
)

// -- Mock Patient Repository --

type mockPatientRepo struct {
	patients map[int64]*Patient
	nextID   int64
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[int64]*Patient)}
}

func (m *mockPatientRepo) Add(_ context.Context, p *Patient) (int64, error) {
	m.nextID++
	p.ID = m.nextID
	m.patients[p.ID] = p
	return p.ID, nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id int64) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, clinicerr.NewNotFound("patient", id)
	}
	return p, nil
}

func (m *mockPatientRepo) GetAll(_ context.Context) ([]*Patient, error) {
	var result []*Patient
	for _, p := range m.patients {
		result = append(result, p)
	}
	return result, nil
}

func (m *mockPatientRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; ok {
		m.patients[p.ID] = p
	}
	return nil
}

func (m *mockPatientRepo) Delete(_ context.Context, id int64) error {
	delete(m.patients, id)
	return nil
}

// -- Mock Consultation Repository --

type mockConsultationRepo struct {
	consultations map[int64]*Consultation
	nextID        int64
}

func newMockConsultationRepo() *mockConsultationRepo {
	return &mockConsultationRepo{consultations: make(map[int64]*Consultation)}
}

func (m *mockConsultationRepo) Add(_ context.Context, c *Consultation) (int64, error) {
	m.nextID++
	c.ID = m.nextID
	m.consultations[c.ID] = c
	return c.ID, nil
}

func (m *mockConsultationRepo) GetByID(_ context.Context, id int64) (*Consultation, error) {
	c, ok := m.consultations[id]
	if !ok {
		return nil, clinicerr.NewNotFound("consultation", id)
	}
	return c, nil
}

func (m *mockConsultationRepo) GetForPatient(_ context.Context, patientID int64) ([]*Consultation, error) {
	var result []*Consultation
	for _, c := range m.consultations {
		if c.PatientID == patientID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockConsultationRepo) Update(_ context.Context, c *Consultation) error {
	if _, ok := m.consultations[c.ID]; ok {
		m.consultations[c.ID] = c
	}
	return nil
}

func (m *mockConsultationRepo) Delete(_ context.Context, id int64) error {
	delete(m.consultations, id)
	return nil
}

// -- Tests --

func newTestService() *Service {
	return NewService(newMockPatientRepo(), newMockConsultationRepo())
}

func TestAddPatient(t *testing.T) {
	svc := newTestService()

	id, err := svc.AddPatient(context.Background(), &Patient{FullName: "Ana Silva"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == 0 {
		t.Error("expected ID to be set")
	}
}

func TestAddPatient_NameRequired(t *testing.T) {
	svc := newTestService()

	_, err := svc.AddPatient(context.Background(), &Patient{Gender: "F"})
	if err == nil {
		t.Fatal("expected error for missing full_name")
	}
	var vErr *clinicerr.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "full_name" {
		t.Errorf("expected full_name validation error, got %v", err)
	}
}

func TestAddPatient_BirthDateOptional(t *testing.T) {
	svc := newTestService()

	id, err := svc.AddPatient(context.Background(), &Patient{FullName: "Sem Nascimento"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := svc.GetPatient(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.BirthDate != nil {
		t.Error("expected nil birth date")
	}
}

func TestUpdatePatient_NameRequired(t *testing.T) {
	svc := newTestService()

	id, _ := svc.AddPatient(context.Background(), &Patient{FullName: "Ana Silva"})
	err := svc.UpdatePatient(context.Background(), &Patient{ID: id})
	if err == nil {
		t.Error("expected error for missing full_name")
	}
}

func TestDeletePatient(t *testing.T) {
	svc := newTestService()

	id, _ := svc.AddPatient(context.Background(), &Patient{FullName: "Ana Silva"})
	if err := svc.DeletePatient(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetPatient(context.Background(), id); err == nil {
		t.Error("expected not found after delete")
	}
}

func TestAddConsultation(t *testing.T) {
	svc := newTestService()

	patientID, _ := svc.AddPatient(context.Background(), &Patient{FullName: "Ana Silva"})
	id, err := svc.AddConsultation(context.Background(), &Consultation{
		PatientID:     patientID,
		ScheduledDate: time.Now().AddDate(0, 0, 7),
		Notes:         "retorno",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == 0 {
		t.Error("expected ID to be set")
	}
}

func TestAddConsultation_PatientMustExist(t *testing.T) {
	svc := newTestService()

	_, err := svc.AddConsultation(context.Background(), &Consultation{
		PatientID:     99,
		ScheduledDate: time.Now(),
	})
	if err == nil {
		t.Fatal("expected error for unknown patient")
	}
	var nfErr *clinicerr.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestAddConsultation_DateRequired(t *testing.T) {
	svc := newTestService()

	patientID, _ := svc.AddPatient(context.Background(), &Patient{FullName: "Ana Silva"})
	_, err := svc.AddConsultation(context.Background(), &Consultation{PatientID: patientID})
	if err == nil {
		t.Error("expected error for missing scheduled_date")
	}
}

func TestGetConsultationsForPatient(t *testing.T) {
	svc := newTestService()

	firstID, _ := svc.AddPatient(context.Background(), &Patient{FullName: "Ana Silva"})
	secondID, _ := svc.AddPatient(context.Background(), &Patient{FullName: "Bruno Costa"})

	svc.AddConsultation(context.Background(), &Consultation{PatientID: firstID, ScheduledDate: time.Now()})
	svc.AddConsultation(context.Background(), &Consultation{PatientID: firstID, ScheduledDate: time.Now().AddDate(0, 1, 0)})
	svc.AddConsultation(context.Background(), &Consultation{PatientID: secondID, ScheduledDate: time.Now()})

	consultations, err := svc.GetConsultationsForPatient(context.Background(), firstID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(consultations) != 2 {
		t.Errorf("expected 2 consultations, got %d", len(consultations))
	}
}
