package prescribing

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/draccessibility/clinic/internal/domain/records"
	"github.com/draccessibility/clinic/internal/platform/db"
	"github.com/draccessibility/clinic/pkg/clinicerr"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	handle, err := db.Open(ctx, filepath.Join(t.TempDir(), "clinic.db"))
	require.NoError(t, err)
	t.Cleanup(func() { handle.Close() })
	require.NoError(t, db.CreateSchema(ctx, handle))
	return handle
}

func seedPatient(t *testing.T, handle *sql.DB) int64 {
	t.Helper()
	id, err := records.NewPatientRepo(handle).Add(context.Background(), &records.Patient{FullName: "Ana Silva"})
	require.NoError(t, err)
	return id
}

func TestPrescriptionRepo_RoundTrip(t *testing.T) {
	handle := openTestDB(t)
	repo := NewPrescriptionRepo(handle)
	ctx := context.Background()
	patientID := seedPatient(t, handle)

	created := time.Date(2024, time.May, 10, 14, 30, 0, 0, time.Local)
	id, err := repo.Add(ctx, &Prescription{
		PatientID: patientID,
		Title:     "Dipirona",
		Body:      "1 comprimido de 8 em 8 horas",
		CreatedAt: created,
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Dipirona", got.Title)
	require.Nil(t, got.ConsultationID)
	require.True(t, got.CreatedAt.Equal(created))
}

func TestPrescriptionRepo_ConsultationDeleteClearsLink(t *testing.T) {
	handle := openTestDB(t)
	repo := NewPrescriptionRepo(handle)
	consultations := records.NewConsultationRepo(handle)
	ctx := context.Background()
	patientID := seedPatient(t, handle)

	consultationID, err := consultations.Add(ctx, &records.Consultation{
		PatientID:     patientID,
		ScheduledDate: time.Date(2024, time.May, 10, 9, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)

	id, err := repo.Add(ctx, &Prescription{
		PatientID:      patientID,
		ConsultationID: &consultationID,
		Title:          "t",
		Body:           "b",
		CreatedAt:      time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, consultations.Delete(ctx, consultationID))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Nil(t, got.ConsultationID, "deleting a consultation must keep the prescription and clear the link")
}

func TestPrescriptionRepo_PatientDeleteCascades(t *testing.T) {
	handle := openTestDB(t)
	repo := NewPrescriptionRepo(handle)
	patients := records.NewPatientRepo(handle)
	ctx := context.Background()
	patientID := seedPatient(t, handle)

	id, err := repo.Add(ctx, &Prescription{
		PatientID: patientID, Title: "t", Body: "b", CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, patients.Delete(ctx, patientID))

	_, err = repo.GetByID(ctx, id)
	var nfErr *clinicerr.NotFoundError
	require.True(t, errors.As(err, &nfErr))
}

func TestPrescriptionRepo_GetForPatient_NewestFirst(t *testing.T) {
	handle := openTestDB(t)
	repo := NewPrescriptionRepo(handle)
	ctx := context.Background()
	patientID := seedPatient(t, handle)

	older := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.Local)
	newer := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.Local)
	_, err := repo.Add(ctx, &Prescription{PatientID: patientID, Title: "antiga", Body: "b", CreatedAt: older})
	require.NoError(t, err)
	_, err = repo.Add(ctx, &Prescription{PatientID: patientID, Title: "recente", Body: "b", CreatedAt: newer})
	require.NoError(t, err)

	list, err := repo.GetForPatient(ctx, patientID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "recente", list[0].Title)
	require.Equal(t, "antiga", list[1].Title)
}

func TestTemplateRepo_RoundTrip(t *testing.T) {
	handle := openTestDB(t)
	repo := NewTemplateRepo(handle)
	ctx := context.Background()

	id, err := repo.Add(ctx, &Template{
		Name:      "Uso contínuo",
		Body:      "Para {{Paciente.Nome}}: tomar 1x ao dia.",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Uso contínuo", got.Name)
	require.Equal(t, "Para {{Paciente.Nome}}: tomar 1x ao dia.", got.Body)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}
