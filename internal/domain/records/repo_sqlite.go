package records

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/draccessibility/clinic/internal/platform/db"
	"github.com/draccessibility/clinic/pkg/clinicerr"
)

// -- Patient Repository --

type patientRepoSQLite struct {
	handle *sql.DB
}

func NewPatientRepo(handle *sql.DB) PatientRepository {
	return &patientRepoSQLite{handle: handle}
}

const patientCols = `id, full_name, birth_date, gender, document_id, contact_info, address, notes`

func (r *patientRepoSQLite) Add(ctx context.Context, p *Patient) (int64, error) {
	res, err := r.handle.ExecContext(ctx, `
		INSERT INTO patients (full_name, birth_date, gender, document_id, contact_info, address, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.FullName, encodeBirthDate(p.BirthDate), p.Gender, p.DocumentID, p.ContactInfo, p.Address, p.Notes,
	)
	if err != nil {
		return 0, clinicerr.NewStorage("add patient", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, clinicerr.NewStorage("add patient", err)
	}
	p.ID = id
	return id, nil
}

func (r *patientRepoSQLite) GetByID(ctx context.Context, id int64) (*Patient, error) {
	p, err := scanPatient(r.handle.QueryRowContext(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, clinicerr.NewNotFound("patient", id)
	}
	if err != nil {
		return nil, clinicerr.NewStorage("get patient by id", err)
	}
	return p, nil
}

func (r *patientRepoSQLite) GetAll(ctx context.Context) ([]*Patient, error) {
	rows, err := r.handle.QueryContext(ctx,
		`SELECT `+patientCols+` FROM patients ORDER BY full_name`)
	if err != nil {
		return nil, clinicerr.NewStorage("list patients", err)
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, clinicerr.NewStorage("list patients", err)
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, clinicerr.NewStorage("list patients", err)
	}
	return patients, nil
}

func (r *patientRepoSQLite) Update(ctx context.Context, p *Patient) error {
	_, err := r.handle.ExecContext(ctx, `
		UPDATE patients SET
			full_name = ?, birth_date = ?, gender = ?, document_id = ?,
			contact_info = ?, address = ?, notes = ?
		WHERE id = ?`,
		p.FullName, encodeBirthDate(p.BirthDate), p.Gender, p.DocumentID,
		p.ContactInfo, p.Address, p.Notes, p.ID,
	)
	if err != nil {
		return clinicerr.NewStorage("update patient", err)
	}
	return nil
}

func (r *patientRepoSQLite) Delete(ctx context.Context, id int64) error {
	if _, err := r.handle.ExecContext(ctx, `DELETE FROM patients WHERE id = ?`, id); err != nil {
		return clinicerr.NewStorage("delete patient", err)
	}
	return nil
}

// encodeBirthDate maps an absent birth date to NULL; the date itself is stored
// in the frozen textual format.
func encodeBirthDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return db.EncodeDate(*t)
}

func scanPatient(row interface{ Scan(...interface{}) error }) (*Patient, error) {
	var (
		p         Patient
		birthDate sql.NullString
	)
	err := row.Scan(&p.ID, &p.FullName, &birthDate, &p.Gender, &p.DocumentID,
		&p.ContactInfo, &p.Address, &p.Notes)
	if err != nil {
		return nil, err
	}
	if birthDate.Valid && birthDate.String != "" {
		t, err := db.DecodeDate(birthDate.String)
		if err != nil {
			return nil, err
		}
		p.BirthDate = &t
	}
	return &p, nil
}

// -- Consultation Repository --

type consultationRepoSQLite struct {
	handle *sql.DB
}

func NewConsultationRepo(handle *sql.DB) ConsultationRepository {
	return &consultationRepoSQLite{handle: handle}
}

const consultationCols = `id, patient_id, scheduled_date, notes, anamnesis`

func (r *consultationRepoSQLite) Add(ctx context.Context, c *Consultation) (int64, error) {
	res, err := r.handle.ExecContext(ctx, `
		INSERT INTO consultations (patient_id, scheduled_date, notes, anamnesis)
		VALUES (?, ?, ?, ?)`,
		c.PatientID, db.EncodeTime(c.ScheduledDate), c.Notes, c.Anamnesis,
	)
	if err != nil {
		return 0, clinicerr.NewStorage("add consultation", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, clinicerr.NewStorage("add consultation", err)
	}
	c.ID = id
	return id, nil
}

func (r *consultationRepoSQLite) GetByID(ctx context.Context, id int64) (*Consultation, error) {
	c, err := scanConsultation(r.handle.QueryRowContext(ctx,
		`SELECT `+consultationCols+` FROM consultations WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, clinicerr.NewNotFound("consultation", id)
	}
	if err != nil {
		return nil, clinicerr.NewStorage("get consultation by id", err)
	}
	return c, nil
}

func (r *consultationRepoSQLite) GetForPatient(ctx context.Context, patientID int64) ([]*Consultation, error) {
	rows, err := r.handle.QueryContext(ctx,
		`SELECT `+consultationCols+` FROM consultations WHERE patient_id = ? ORDER BY scheduled_date DESC`, patientID)
	if err != nil {
		return nil, clinicerr.NewStorage("list consultations for patient", err)
	}
	defer rows.Close()

	var consultations []*Consultation
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, clinicerr.NewStorage("list consultations for patient", err)
		}
		consultations = append(consultations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, clinicerr.NewStorage("list consultations for patient", err)
	}
	return consultations, nil
}

func (r *consultationRepoSQLite) Update(ctx context.Context, c *Consultation) error {
	_, err := r.handle.ExecContext(ctx, `
		UPDATE consultations SET
			scheduled_date = ?, notes = ?, anamnesis = ?
		WHERE id = ?`,
		db.EncodeTime(c.ScheduledDate), c.Notes, c.Anamnesis, c.ID,
	)
	if err != nil {
		return clinicerr.NewStorage("update consultation", err)
	}
	return nil
}

func (r *consultationRepoSQLite) Delete(ctx context.Context, id int64) error {
	if _, err := r.handle.ExecContext(ctx, `DELETE FROM consultations WHERE id = ?`, id); err != nil {
		return clinicerr.NewStorage("delete consultation", err)
	}
	return nil
}

func scanConsultation(row interface{ Scan(...interface{}) error }) (*Consultation, error) {
	var (
		c         Consultation
		scheduled string
	)
	if err := row.Scan(&c.ID, &c.PatientID, &scheduled, &c.Notes, &c.Anamnesis); err != nil {
		return nil, err
	}
	t, err := db.DecodeTime(scheduled)
	if err != nil {
		return nil, err
	}
	c.ScheduledDate = t
	return &c, nil
}
