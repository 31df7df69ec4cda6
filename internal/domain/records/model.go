package records

import "time"

// Patient maps to the patients table. It is the root entity: deleting a
// patient cascades to its consultations and prescriptions.
type Patient struct {
	ID          int64      `db:"id" json:"id"`
	FullName    string     `db:"full_name" json:"full_name"`
	BirthDate   *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Gender      string     `db:"gender" json:"gender"`
	DocumentID  string     `db:"document_id" json:"document_id"`
	ContactInfo string     `db:"contact_info" json:"contact_info"`
	Address     string     `db:"address" json:"address"`
	Notes       string     `db:"notes" json:"notes"`
}

// Consultation maps to the consultations table. It never outlives its patient.
type Consultation struct {
	ID            int64     `db:"id" json:"id"`
	PatientID     int64     `db:"patient_id" json:"patient_id"`
	ScheduledDate time.Time `db:"scheduled_date" json:"scheduled_date"`
	Notes         string    `db:"notes" json:"notes"`
	Anamnesis     string    `db:"anamnesis" json:"anamnesis"`
}
