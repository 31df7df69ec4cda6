package profile

import (
	"context"
	"database/sql"
	"errors"

	"github.com/draccessibility/clinic/pkg/clinicerr"
)

type repoSQLite struct {
	handle *sql.DB
}

func NewRepo(handle *sql.DB) Repository {
	return &repoSQLite{handle: handle}
}

func (r *repoSQLite) Get(ctx context.Context) (*Doctor, error) {
	var d Doctor
	err := r.handle.QueryRowContext(ctx, `
		SELECT id, full_name, registration_number, specialty, clinic_address, contact_info
		FROM doctor_profile LIMIT 1`).
		Scan(&d.ID, &d.FullName, &d.RegistrationNumber, &d.Specialty, &d.ClinicAddress, &d.ContactInfo)
	if errors.Is(err, sql.ErrNoRows) {
		return &Doctor{ID: 1}, nil
	}
	if err != nil {
		return nil, clinicerr.NewStorage("get doctor profile", err)
	}
	return &d, nil
}

func (r *repoSQLite) Upsert(ctx context.Context, d *Doctor) error {
	_, err := r.handle.ExecContext(ctx, `
		INSERT INTO doctor_profile (id, full_name, registration_number, specialty, clinic_address, contact_info)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			full_name = excluded.full_name,
			registration_number = excluded.registration_number,
			specialty = excluded.specialty,
			clinic_address = excluded.clinic_address,
			contact_info = excluded.contact_info`,
		d.FullName, d.RegistrationNumber, d.Specialty, d.ClinicAddress, d.ContactInfo,
	)
	if err != nil {
		return clinicerr.NewStorage("upsert doctor profile", err)
	}
	d.ID = 1
	return nil
}
