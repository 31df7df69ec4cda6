package profile

import (
	"context"
	"testing"
)

type mockRepo struct {
	saved *Doctor
}

func (m *mockRepo) Get(_ context.Context) (*Doctor, error) {
	if m.saved == nil {
		return &Doctor{ID: 1}, nil
	}
	return m.saved, nil
}

func (m *mockRepo) Upsert(_ context.Context, d *Doctor) error {
	d.ID = 1
	m.saved = d
	return nil
}

func TestGet_EmptyProfile(t *testing.T) {
	svc := NewService(&mockRepo{})

	d, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID != 1 {
		t.Errorf("expected singleton id 1, got %d", d.ID)
	}
	if d.IsComplete() {
		t.Error("expected empty profile to be incomplete")
	}
}

func TestSave(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	d := &Doctor{FullName: "Dra. Helena Ramos", RegistrationNumber: "CRM 12345"}
	if err := svc.Save(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.saved == nil || repo.saved.FullName != "Dra. Helena Ramos" {
		t.Error("expected profile to be persisted")
	}
	if !d.IsComplete() {
		t.Error("expected saved profile to be complete")
	}
}

func TestSave_MandatoryFields(t *testing.T) {
	svc := NewService(&mockRepo{})

	if err := svc.Save(context.Background(), &Doctor{RegistrationNumber: "CRM 1"}); err == nil {
		t.Error("expected error for missing full_name")
	}
	if err := svc.Save(context.Background(), &Doctor{FullName: "Dra. Helena"}); err == nil {
		t.Error("expected error for missing registration_number")
	}
}

func TestSave_OverwritesPrevious(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	svc.Save(context.Background(), &Doctor{FullName: "Dra. Helena Ramos", RegistrationNumber: "CRM 12345"})
	svc.Save(context.Background(), &Doctor{FullName: "Dra. Helena Ramos", RegistrationNumber: "CRM 99999"})

	d, _ := svc.Get(context.Background())
	if d.RegistrationNumber != "CRM 99999" {
		t.Errorf("expected latest registration number, got %q", d.RegistrationNumber)
	}
}
