package profile

// Doctor maps to the doctor_profile singleton table. Exactly zero or one row
// exists, always keyed to id 1. Full name and registration number are required
// before any document export.
type Doctor struct {
	ID                 int64  `db:"id" json:"id"`
	FullName           string `db:"full_name" json:"full_name"`
	RegistrationNumber string `db:"registration_number" json:"registration_number"`
	Specialty          string `db:"specialty" json:"specialty"`
	ClinicAddress      string `db:"clinic_address" json:"clinic_address"`
	ContactInfo        string `db:"contact_info" json:"contact_info"`
}

// IsComplete reports whether the mandatory export fields are filled in.
func (d *Doctor) IsComplete() bool {
	return d.FullName != "" && d.RegistrationNumber != ""
}
