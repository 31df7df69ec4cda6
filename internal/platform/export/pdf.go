// Package export renders prescriptions into PDF documents.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/draccessibility/clinic/internal/domain/prescribing"
	"github.com/draccessibility/clinic/internal/domain/workflow"
	"github.com/draccessibility/clinic/pkg/clinicerr"
)

// PDF renders A4 prescription documents. It is stateless; each Export call
// builds a fresh document.
type PDF struct{}

func NewPDF() *PDF {
	return &PDF{}
}

// DefaultFileName returns a collision-free file name for callers that did not
// choose one.
func (p *PDF) DefaultFileName() string {
	return fmt.Sprintf("receita-%s.pdf", uuid.NewString())
}

// Export writes the prescription to input.FilePath, creating parent
// directories as needed. The orchestrator guarantees the doctor profile is
// complete before this is called.
func (p *PDF) Export(input workflow.ExportInput) error {
	if input.FilePath == "" {
		return clinicerr.NewValidation("file_path", "is required")
	}

	doc := fpdf.New("P", "mm", "A4", "")
	// Translates UTF-8 into the core fonts' cp1252 so accented Portuguese
	// text renders correctly.
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(tr(input.Prescription.Title), false)
	doc.AddPage()

	p.writeDoctorHeader(doc, tr, input)
	p.writePatientBlock(doc, tr, input)
	p.writeBody(doc, tr, input)
	p.writeFooter(doc, tr)

	dir := filepath.Dir(input.FilePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &clinicerr.ExportError{Path: input.FilePath, Err: err}
	}
	if err := doc.OutputFileAndClose(input.FilePath); err != nil {
		return &clinicerr.ExportError{Path: input.FilePath, Err: err}
	}
	return nil
}

func (p *PDF) writeDoctorHeader(doc *fpdf.Fpdf, tr func(string) string, input workflow.ExportInput) {
	doctor := input.Doctor

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 8, tr(doctor.FullName), "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, tr("CRM: "+doctor.RegistrationNumber), "", 1, "C", false, 0, "")
	if doctor.Specialty != "" {
		doc.CellFormat(0, 5, tr(doctor.Specialty), "", 1, "C", false, 0, "")
	}
	if doctor.ClinicAddress != "" {
		doc.CellFormat(0, 5, tr(doctor.ClinicAddress), "", 1, "C", false, 0, "")
	}
	if doctor.ContactInfo != "" {
		doc.CellFormat(0, 5, tr(doctor.ContactInfo), "", 1, "C", false, 0, "")
	}

	doc.Ln(3)
	left, _, right, _ := doc.GetMargins()
	width, _ := doc.GetPageSize()
	y := doc.GetY()
	doc.Line(left, y, width-right, y)
	doc.Ln(5)
}

func (p *PDF) writePatientBlock(doc *fpdf.Fpdf, tr func(string) string, input workflow.ExportInput) {
	patient := input.Patient

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 6, tr("Paciente: "+patient.FullName), "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	if patient.BirthDate != nil {
		birth := *patient.BirthDate
		line := fmt.Sprintf("Data de nascimento: %s (Idade: %d anos)",
			birth.Format("02/01/2006"), prescribing.Age(birth, time.Now()))
		doc.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
	if patient.DocumentID != "" {
		doc.CellFormat(0, 5, tr("Documento: "+patient.DocumentID), "", 1, "L", false, 0, "")
	}
	if patient.ContactInfo != "" {
		doc.CellFormat(0, 5, tr("Contato: "+patient.ContactInfo), "", 1, "L", false, 0, "")
	}
	doc.Ln(4)
}

func (p *PDF) writeBody(doc *fpdf.Fpdf, tr func(string) string, input workflow.ExportInput) {
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 7, tr(input.Prescription.Title), "", 1, "L", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(0, 5, tr(input.Prescription.Body), "", "L", false)
}

func (p *PDF) writeFooter(doc *fpdf.Fpdf, tr func(string) string) {
	doc.SetY(-25)
	doc.SetFont("Helvetica", "I", 8)
	stamp := "Emitido em " + time.Now().Format("02/01/2006 15:04")
	doc.CellFormat(0, 5, tr(stamp), "", 1, "R", false, 0, "")
}
