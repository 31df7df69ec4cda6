package prescribing

import (
	"context"
	"database/sql"
	"errors"

	"github.com/draccessibility/clinic/internal/platform/db"
	"github.com/draccessibility/clinic/pkg/clinicerr"
)

// -- Prescription Repository --

type prescriptionRepoSQLite struct {
	handle *sql.DB
}

func NewPrescriptionRepo(handle *sql.DB) PrescriptionRepository {
	return &prescriptionRepoSQLite{handle: handle}
}

const prescriptionCols = `id, patient_id, consultation_id, title, body, created_at`

func (r *prescriptionRepoSQLite) Add(ctx context.Context, p *Prescription) (int64, error) {
	res, err := r.handle.ExecContext(ctx, `
		INSERT INTO prescriptions (patient_id, consultation_id, title, body, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.PatientID, encodeConsultationID(p.ConsultationID), p.Title, p.Body, db.EncodeTime(p.CreatedAt),
	)
	if err != nil {
		return 0, clinicerr.NewStorage("add prescription", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, clinicerr.NewStorage("add prescription", err)
	}
	p.ID = id
	return id, nil
}

func (r *prescriptionRepoSQLite) GetByID(ctx context.Context, id int64) (*Prescription, error) {
	p, err := scanPrescription(r.handle.QueryRowContext(ctx,
		`SELECT `+prescriptionCols+` FROM prescriptions WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, clinicerr.NewNotFound("prescription", id)
	}
	if err != nil {
		return nil, clinicerr.NewStorage("get prescription by id", err)
	}
	return p, nil
}

func (r *prescriptionRepoSQLite) GetForPatient(ctx context.Context, patientID int64) ([]*Prescription, error) {
	rows, err := r.handle.QueryContext(ctx,
		`SELECT `+prescriptionCols+` FROM prescriptions WHERE patient_id = ? ORDER BY created_at DESC`, patientID)
	if err != nil {
		return nil, clinicerr.NewStorage("list prescriptions for patient", err)
	}
	defer rows.Close()

	var prescriptions []*Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, clinicerr.NewStorage("list prescriptions for patient", err)
		}
		prescriptions = append(prescriptions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, clinicerr.NewStorage("list prescriptions for patient", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepoSQLite) Delete(ctx context.Context, id int64) error {
	if _, err := r.handle.ExecContext(ctx, `DELETE FROM prescriptions WHERE id = ?`, id); err != nil {
		return clinicerr.NewStorage("delete prescription", err)
	}
	return nil
}

func encodeConsultationID(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

func scanPrescription(row interface{ Scan(...interface{}) error }) (*Prescription, error) {
	var (
		p              Prescription
		consultationID sql.NullInt64
		createdAt      string
	)
	if err := row.Scan(&p.ID, &p.PatientID, &consultationID, &p.Title, &p.Body, &createdAt); err != nil {
		return nil, err
	}
	if consultationID.Valid {
		id := consultationID.Int64
		p.ConsultationID = &id
	}
	t, err := db.DecodeTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = t
	return &p, nil
}

// -- Template Repository --

type templateRepoSQLite struct {
	handle *sql.DB
}

func NewTemplateRepo(handle *sql.DB) TemplateRepository {
	return &templateRepoSQLite{handle: handle}
}

const templateCols = `id, name, body, created_at`

func (r *templateRepoSQLite) Add(ctx context.Context, t *Template) (int64, error) {
	res, err := r.handle.ExecContext(ctx, `
		INSERT INTO prescription_templates (name, body, created_at)
		VALUES (?, ?, ?)`,
		t.Name, t.Body, db.EncodeTime(t.CreatedAt),
	)
	if err != nil {
		return 0, clinicerr.NewStorage("add prescription template", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, clinicerr.NewStorage("add prescription template", err)
	}
	t.ID = id
	return id, nil
}

func (r *templateRepoSQLite) GetByID(ctx context.Context, id int64) (*Template, error) {
	t, err := scanTemplate(r.handle.QueryRowContext(ctx,
		`SELECT `+templateCols+` FROM prescription_templates WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, clinicerr.NewNotFound("prescription template", id)
	}
	if err != nil {
		return nil, clinicerr.NewStorage("get prescription template by id", err)
	}
	return t, nil
}

func (r *templateRepoSQLite) GetAll(ctx context.Context) ([]*Template, error) {
	rows, err := r.handle.QueryContext(ctx,
		`SELECT `+templateCols+` FROM prescription_templates ORDER BY created_at DESC`)
	if err != nil {
		return nil, clinicerr.NewStorage("list prescription templates", err)
	}
	defer rows.Close()

	var templates []*Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, clinicerr.NewStorage("list prescription templates", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, clinicerr.NewStorage("list prescription templates", err)
	}
	return templates, nil
}

func scanTemplate(row interface{ Scan(...interface{}) error }) (*Template, error) {
	var (
		t         Template
		createdAt string
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Body, &createdAt); err != nil {
		return nil, err
	}
	ts, err := db.DecodeTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.CreatedAt = ts
	return &t, nil
}
