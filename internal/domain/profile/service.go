package profile

import (
	"context"

	"github.com/draccessibility/clinic/pkg/clinicerr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (*Doctor, error) {
	return s.repo.Get(ctx)
}

// Save upserts the singleton profile. Both mandatory fields must be present;
// the optional fields may be empty.
func (s *Service) Save(ctx context.Context, d *Doctor) error {
	if d.FullName == "" {
		return clinicerr.NewValidation("full_name", "is required")
	}
	if d.RegistrationNumber == "" {
		return clinicerr.NewValidation("registration_number", "is required")
	}
	return s.repo.Upsert(ctx, d)
}
