package prescribing

import "time"

// Prescription maps to the prescriptions table. The consultation link is
// optional; when the referenced consultation is deleted the link is cleared by
// the store while the prescription survives.
type Prescription struct {
	ID             int64     `db:"id" json:"id"`
	PatientID      int64     `db:"patient_id" json:"patient_id"`
	ConsultationID *int64    `db:"consultation_id" json:"consultation_id,omitempty"`
	Title          string    `db:"title" json:"title"`
	Body           string    `db:"body" json:"body"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Template maps to the prescription_templates table. The body may contain
// placeholder tokens resolved against a patient by ApplyTemplate.
type Template struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
