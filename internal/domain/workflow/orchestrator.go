// Package workflow coordinates the entity services: prescription creation with
// template resolution, the export guard, two-phase deletions, and the import
// flow. It owns no state beyond the in-flight deletion previews.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/draccessibility/clinic/internal/domain/anamnesis"
	"github.com/draccessibility/clinic/internal/domain/prescribing"
	"github.com/draccessibility/clinic/internal/domain/profile"
	"github.com/draccessibility/clinic/internal/domain/records"
	"github.com/draccessibility/clinic/pkg/clinicerr"
)

// ErrProfileIncomplete is returned by ExportPrescription while the doctor
// profile is missing its mandatory fields. Callers must complete the profile
// and retry; export is never attempted without it.
var ErrProfileIncomplete = errors.New("doctor profile incomplete: full name and registration number are required")

// Importer is the spreadsheet import boundary.
type Importer interface {
	ImportAnamnesis(path, name string) (*anamnesis.Template, error)
}

// Exporter is the document-rendering boundary. It receives a fully resolved
// triple and a destination path; the orchestrator guarantees the doctor
// profile is complete before calling it.
type Exporter interface {
	Export(input ExportInput) error
}

// ExportInput is the data crossing the export boundary.
type ExportInput struct {
	Prescription *prescribing.Prescription
	Patient      *records.Patient
	Doctor       *profile.Doctor
	FilePath     string
}

type Orchestrator struct {
	records     *records.Service
	prescribing *prescribing.Service
	anamnesis   *anamnesis.Service
	profile     *profile.Service
	importer    Importer
	exporter    Exporter
	logger      zerolog.Logger

	// Deletion previews observed but not yet confirmed. Single-operator
	// application, so plain maps without locking.
	pendingDeletes map[deleteKey]bool
}

type deleteKey struct {
	entity string
	id     int64
}

func NewOrchestrator(
	recordsSvc *records.Service,
	prescribingSvc *prescribing.Service,
	anamnesisSvc *anamnesis.Service,
	profileSvc *profile.Service,
	importer Importer,
	exporter Exporter,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		records:        recordsSvc,
		prescribing:    prescribingSvc,
		anamnesis:      anamnesisSvc,
		profile:        profileSvc,
		importer:       importer,
		exporter:       exporter,
		logger:         logger,
		pendingDeletes: make(map[deleteKey]bool),
	}
}

// -- Prescription creation --

// CreatePrescriptionInput describes one prescription to create. ConsultationID
// and TemplateID are optional; AdditionalNotes is only meaningful together
// with TemplateID.
type CreatePrescriptionInput struct {
	PatientID       int64
	ConsultationID  *int64
	TemplateID      *int64
	Title           string
	Body            string
	AdditionalNotes string
}

// CreatePrescription persists a prescription after resolving its optional
// consultation link and template. The consultation, when given, must belong to
// the same patient; this is verified against the patient's own consultation
// list rather than trusted from the foreign key.
func (o *Orchestrator) CreatePrescription(ctx context.Context, input CreatePrescriptionInput) (int64, error) {
	patient, err := o.records.GetPatient(ctx, input.PatientID)
	if err != nil {
		return 0, err
	}

	if input.ConsultationID != nil {
		ok, err := o.consultationBelongsToPatient(ctx, patient.ID, *input.ConsultationID)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, clinicerr.NewValidation("consultation_id",
				fmt.Sprintf("consultation %d does not belong to patient %d", *input.ConsultationID, patient.ID))
		}
	}

	title := input.Title
	body := input.Body
	if input.TemplateID != nil {
		template, err := o.prescribing.GetTemplate(ctx, *input.TemplateID)
		if err != nil {
			return 0, err
		}
		body = prescribing.ApplyTemplate(template.Body, patient)
		if input.AdditionalNotes != "" {
			body += "\n\nObservações adicionais:\n" + input.AdditionalNotes
		}
		if title == "" {
			title = template.Name
		}
	}

	id, err := o.prescribing.AddPrescription(ctx, &prescribing.Prescription{
		PatientID:      patient.ID,
		ConsultationID: input.ConsultationID,
		Title:          title,
		Body:           body,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		return 0, err
	}

	o.logger.Info().
		Int64("prescription_id", id).
		Int64("patient_id", patient.ID).
		Msg("prescription created")
	return id, nil
}

func (o *Orchestrator) consultationBelongsToPatient(ctx context.Context, patientID, consultationID int64) (bool, error) {
	consultations, err := o.records.GetConsultationsForPatient(ctx, patientID)
	if err != nil {
		return false, err
	}
	for _, c := range consultations {
		if c.ID == consultationID {
			return true, nil
		}
	}
	return false, nil
}

// -- Consultation scheduling --

// ScheduleConsultationInput describes one consultation to schedule. When
// AnamnesisTemplateID is set, that template's content becomes the
// consultation's anamnesis; otherwise the free-text Anamnesis is used.
type ScheduleConsultationInput struct {
	PatientID           int64
	ScheduledDate       time.Time
	Notes               string
	Anamnesis           string
	AnamnesisTemplateID *int64
}

func (o *Orchestrator) ScheduleConsultation(ctx context.Context, input ScheduleConsultationInput) (int64, error) {
	text := input.Anamnesis
	if input.AnamnesisTemplateID != nil {
		template, err := o.anamnesis.GetTemplate(ctx, *input.AnamnesisTemplateID)
		if err != nil {
			return 0, err
		}
		text = template.Content
	}

	id, err := o.records.AddConsultation(ctx, &records.Consultation{
		PatientID:     input.PatientID,
		ScheduledDate: input.ScheduledDate,
		Notes:         input.Notes,
		Anamnesis:     text,
	})
	if err != nil {
		return 0, err
	}

	o.logger.Info().
		Int64("consultation_id", id).
		Int64("patient_id", input.PatientID).
		Msg("consultation scheduled")
	return id, nil
}

// -- Anamnesis import --

// ImportAnamnesis runs the import boundary on the given file and persists the
// resulting template under name.
func (o *Orchestrator) ImportAnamnesis(ctx context.Context, path, name string) (int64, error) {
	template, err := o.importer.ImportAnamnesis(path, name)
	if err != nil {
		return 0, err
	}

	id, err := o.anamnesis.AddTemplate(ctx, template)
	if err != nil {
		return 0, err
	}

	o.logger.Info().
		Int64("template_id", id).
		Str("name", name).
		Msg("anamnesis template imported")
	return id, nil
}

// -- Export --

// ExportPrescription resolves the (prescription, patient, doctor) triple and
// hands it to the export boundary. It refuses with ErrProfileIncomplete while
// the doctor profile is missing a full name or registration number.
func (o *Orchestrator) ExportPrescription(ctx context.Context, prescriptionID int64, path string) error {
	prescription, err := o.prescribing.GetPrescription(ctx, prescriptionID)
	if err != nil {
		return err
	}

	patient, err := o.records.GetPatient(ctx, prescription.PatientID)
	if err != nil {
		return err
	}

	doctor, err := o.profile.Get(ctx)
	if err != nil {
		return err
	}
	if !doctor.IsComplete() {
		return ErrProfileIncomplete
	}

	if err := o.exporter.Export(ExportInput{
		Prescription: prescription,
		Patient:      patient,
		Doctor:       doctor,
		FilePath:     path,
	}); err != nil {
		return err
	}

	o.logger.Info().
		Int64("prescription_id", prescriptionID).
		Str("path", path).
		Msg("prescription exported")
	return nil
}

// -- Two-phase deletion --

// Deletes go through a preview step followed by an explicit confirm step;
// confirming an id that was never previewed is rejected, so nothing is ever
// deleted without the caller having observed it first.

func (o *Orchestrator) PreviewPatientDeletion(ctx context.Context, id int64) (*records.Patient, error) {
	p, err := o.records.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	o.pendingDeletes[deleteKey{"patient", id}] = true
	return p, nil
}

// ConfirmPatientDeletion removes the patient; its consultations and
// prescriptions are removed with it by the store's cascade rules.
func (o *Orchestrator) ConfirmPatientDeletion(ctx context.Context, id int64) error {
	if err := o.takePending("patient", id); err != nil {
		return err
	}
	if err := o.records.DeletePatient(ctx, id); err != nil {
		return err
	}
	o.logger.Info().Int64("patient_id", id).Msg("patient deleted")
	return nil
}

func (o *Orchestrator) PreviewConsultationDeletion(ctx context.Context, id int64) (*records.Consultation, error) {
	c, err := o.records.GetConsultation(ctx, id)
	if err != nil {
		return nil, err
	}
	o.pendingDeletes[deleteKey{"consultation", id}] = true
	return c, nil
}

// ConfirmConsultationDeletion removes the consultation; prescriptions that
// referenced it keep existing with the link cleared by the store.
func (o *Orchestrator) ConfirmConsultationDeletion(ctx context.Context, id int64) error {
	if err := o.takePending("consultation", id); err != nil {
		return err
	}
	if err := o.records.DeleteConsultation(ctx, id); err != nil {
		return err
	}
	o.logger.Info().Int64("consultation_id", id).Msg("consultation deleted")
	return nil
}

func (o *Orchestrator) PreviewPrescriptionDeletion(ctx context.Context, id int64) (*prescribing.Prescription, error) {
	p, err := o.prescribing.GetPrescription(ctx, id)
	if err != nil {
		return nil, err
	}
	o.pendingDeletes[deleteKey{"prescription", id}] = true
	return p, nil
}

func (o *Orchestrator) ConfirmPrescriptionDeletion(ctx context.Context, id int64) error {
	if err := o.takePending("prescription", id); err != nil {
		return err
	}
	if err := o.prescribing.DeletePrescription(ctx, id); err != nil {
		return err
	}
	o.logger.Info().Int64("prescription_id", id).Msg("prescription deleted")
	return nil
}

// CancelDeletion discards a pending preview without deleting anything.
func (o *Orchestrator) CancelDeletion(entity string, id int64) {
	delete(o.pendingDeletes, deleteKey{entity, id})
}

func (o *Orchestrator) takePending(entity string, id int64) error {
	key := deleteKey{entity, id}
	if !o.pendingDeletes[key] {
		return clinicerr.NewValidation("id",
			fmt.Sprintf("%s %d was not previewed for deletion", entity, id))
	}
	delete(o.pendingDeletes, key)
	return nil
}
