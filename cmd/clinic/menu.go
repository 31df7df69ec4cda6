package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/draccessibility/clinic/internal/config"
	"github.com/draccessibility/clinic/internal/domain/anamnesis"
	"github.com/draccessibility/clinic/internal/domain/prescribing"
	"github.com/draccessibility/clinic/internal/domain/profile"
	"github.com/draccessibility/clinic/internal/domain/records"
	"github.com/draccessibility/clinic/internal/domain/workflow"
	"github.com/draccessibility/clinic/internal/platform/export"
)

const dateLayout = "02/01/2006"

type menuDeps struct {
	orch        *workflow.Orchestrator
	records     *records.Service
	prescribing *prescribing.Service
	anamnesis   *anamnesis.Service
	profile     *profile.Service
	pdf         *export.PDF
	cfg         *config.Config
}

// menu is the single-operator console loop. Every option maps to one service
// or orchestrator call; errors are printed and the loop continues.
type menu struct {
	deps menuDeps
	in   *bufio.Reader
	out  io.Writer
}

func newMenu(deps menuDeps, in io.Reader, out io.Writer) *menu {
	return &menu{deps: deps, in: bufio.NewReader(in), out: out}
}

func (m *menu) Run(ctx context.Context) error {
	for {
		m.printMenu()
		choice := m.readLine("Opção: ")
		if choice == "0" {
			fmt.Fprintln(m.out, "Até logo.")
			return nil
		}

		var err error
		switch choice {
		case "1":
			err = m.addPatient(ctx)
		case "2":
			err = m.listPatients(ctx)
		case "3":
			err = m.editPatient(ctx)
		case "4":
			err = m.deletePatient(ctx)
		case "5":
			err = m.scheduleConsultation(ctx)
		case "6":
			err = m.listConsultations(ctx)
		case "7":
			err = m.deleteConsultation(ctx)
		case "8":
			err = m.createPrescription(ctx)
		case "9":
			err = m.listPrescriptions(ctx)
		case "10":
			err = m.exportPrescription(ctx)
		case "11":
			err = m.deletePrescription(ctx)
		case "12":
			err = m.addPrescriptionTemplate(ctx)
		case "13":
			err = m.listPrescriptionTemplates(ctx)
		case "14":
			err = m.importAnamnesis(ctx)
		case "15":
			err = m.listAnamnesisTemplates(ctx)
		case "16":
			err = m.editDoctorProfile(ctx)
		default:
			fmt.Fprintln(m.out, "Opção inválida.")
		}
		if err != nil {
			fmt.Fprintf(m.out, "Erro: %v\n", err)
		}
		fmt.Fprintln(m.out)
	}
}

func (m *menu) printMenu() {
	fmt.Fprintln(m.out, "===== DrAccessibility =====")
	fmt.Fprintln(m.out, " 1 - Cadastrar paciente")
	fmt.Fprintln(m.out, " 2 - Listar pacientes")
	fmt.Fprintln(m.out, " 3 - Editar paciente")
	fmt.Fprintln(m.out, " 4 - Excluir paciente")
	fmt.Fprintln(m.out, " 5 - Agendar consulta")
	fmt.Fprintln(m.out, " 6 - Listar consultas de um paciente")
	fmt.Fprintln(m.out, " 7 - Excluir consulta")
	fmt.Fprintln(m.out, " 8 - Criar receita")
	fmt.Fprintln(m.out, " 9 - Listar receitas de um paciente")
	fmt.Fprintln(m.out, "10 - Exportar receita em PDF")
	fmt.Fprintln(m.out, "11 - Excluir receita")
	fmt.Fprintln(m.out, "12 - Cadastrar modelo de receita")
	fmt.Fprintln(m.out, "13 - Listar modelos de receita")
	fmt.Fprintln(m.out, "14 - Importar anamnese de planilha")
	fmt.Fprintln(m.out, "15 - Listar modelos de anamnese")
	fmt.Fprintln(m.out, "16 - Perfil do médico")
	fmt.Fprintln(m.out, " 0 - Sair")
}

// -- Input helpers --

func (m *menu) readLine(prompt string) string {
	fmt.Fprint(m.out, prompt)
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

// readMultiline collects lines until an empty one.
func (m *menu) readMultiline(prompt string) string {
	fmt.Fprintln(m.out, prompt+" (linha em branco para terminar)")
	var lines []string
	for {
		line, err := m.in.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" || (err != nil && line == "") {
			break
		}
		lines = append(lines, trimmed)
	}
	return strings.Join(lines, "\n")
}

func (m *menu) readID(prompt string) (int64, error) {
	raw := m.readLine(prompt)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("identificador inválido: %q", raw)
	}
	return id, nil
}

// readOptionalID returns nil when the operator leaves the field blank.
func (m *menu) readOptionalID(prompt string) (*int64, error) {
	raw := m.readLine(prompt)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("identificador inválido: %q", raw)
	}
	return &id, nil
}

func (m *menu) readDate(prompt string) (time.Time, error) {
	raw := m.readLine(prompt)
	t, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("data inválida, use dd/mm/aaaa: %q", raw)
	}
	return t, nil
}

func (m *menu) readOptionalDate(prompt string) (*time.Time, error) {
	raw := m.readLine(prompt)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("data inválida, use dd/mm/aaaa: %q", raw)
	}
	return &t, nil
}

func (m *menu) confirm(prompt string) bool {
	answer := strings.ToLower(m.readLine(prompt + " (s/n): "))
	return answer == "s" || answer == "sim"
}

// -- Patients --

func (m *menu) addPatient(ctx context.Context) error {
	p := &records.Patient{FullName: m.readLine("Nome completo: ")}
	birth, err := m.readOptionalDate("Data de nascimento (dd/mm/aaaa, opcional): ")
	if err != nil {
		return err
	}
	p.BirthDate = birth
	p.Gender = m.readLine("Sexo (opcional): ")
	p.DocumentID = m.readLine("Documento (opcional): ")
	p.ContactInfo = m.readLine("Contato (opcional): ")
	p.Address = m.readLine("Endereço (opcional): ")
	p.Notes = m.readLine("Observações (opcional): ")

	id, err := m.deps.records.AddPatient(ctx, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Paciente cadastrado com id %d.\n", id)
	return nil
}

func (m *menu) listPatients(ctx context.Context) error {
	patients, err := m.deps.records.GetAllPatients(ctx)
	if err != nil {
		return err
	}
	if len(patients) == 0 {
		fmt.Fprintln(m.out, "Nenhum paciente cadastrado.")
		return nil
	}
	for _, p := range patients {
		birth := "-"
		if p.BirthDate != nil {
			birth = p.BirthDate.Format(dateLayout)
		}
		fmt.Fprintf(m.out, "%4d  %-40s nascimento: %s\n", p.ID, p.FullName, birth)
	}
	return nil
}

func (m *menu) editPatient(ctx context.Context) error {
	id, err := m.readID("Id do paciente: ")
	if err != nil {
		return err
	}
	p, err := m.deps.records.GetPatient(ctx, id)
	if err != nil {
		return err
	}

	if v := m.readLine(fmt.Sprintf("Nome completo [%s]: ", p.FullName)); v != "" {
		p.FullName = v
	}
	current := "-"
	if p.BirthDate != nil {
		current = p.BirthDate.Format(dateLayout)
	}
	if v := m.readLine(fmt.Sprintf("Data de nascimento [%s]: ", current)); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return fmt.Errorf("data inválida, use dd/mm/aaaa: %q", v)
		}
		p.BirthDate = &t
	}
	if v := m.readLine(fmt.Sprintf("Sexo [%s]: ", p.Gender)); v != "" {
		p.Gender = v
	}
	if v := m.readLine(fmt.Sprintf("Documento [%s]: ", p.DocumentID)); v != "" {
		p.DocumentID = v
	}
	if v := m.readLine(fmt.Sprintf("Contato [%s]: ", p.ContactInfo)); v != "" {
		p.ContactInfo = v
	}
	if v := m.readLine(fmt.Sprintf("Endereço [%s]: ", p.Address)); v != "" {
		p.Address = v
	}
	if v := m.readLine(fmt.Sprintf("Observações [%s]: ", p.Notes)); v != "" {
		p.Notes = v
	}

	if err := m.deps.records.UpdatePatient(ctx, p); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Paciente atualizado.")
	return nil
}

func (m *menu) deletePatient(ctx context.Context) error {
	id, err := m.readID("Id do paciente: ")
	if err != nil {
		return err
	}
	p, err := m.deps.orch.PreviewPatientDeletion(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Excluir %s? As consultas e receitas deste paciente também serão removidas.\n", p.FullName)
	if !m.confirm("Confirma") {
		m.deps.orch.CancelDeletion("patient", id)
		fmt.Fprintln(m.out, "Exclusão cancelada.")
		return nil
	}
	if err := m.deps.orch.ConfirmPatientDeletion(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Paciente excluído.")
	return nil
}

// -- Consultations --

func (m *menu) scheduleConsultation(ctx context.Context) error {
	patientID, err := m.readID("Id do paciente: ")
	if err != nil {
		return err
	}
	date, err := m.readDate("Data da consulta (dd/mm/aaaa): ")
	if err != nil {
		return err
	}

	input := workflow.ScheduleConsultationInput{
		PatientID:     patientID,
		ScheduledDate: date,
		Notes:         m.readLine("Anotações (opcional): "),
	}

	templates, err := m.deps.anamnesis.GetTemplates(ctx)
	if err != nil {
		return err
	}
	if len(templates) > 0 {
		fmt.Fprintln(m.out, "Modelos de anamnese disponíveis:")
		for _, t := range templates {
			fmt.Fprintf(m.out, "%4d  %s\n", t.ID, t.Name)
		}
		templateID, err := m.readOptionalID("Id do modelo de anamnese (em branco para texto livre): ")
		if err != nil {
			return err
		}
		input.AnamnesisTemplateID = templateID
	}
	if input.AnamnesisTemplateID == nil {
		input.Anamnesis = m.readMultiline("Anamnese")
	}

	id, err := m.deps.orch.ScheduleConsultation(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Consulta agendada com id %d.\n", id)
	return nil
}

func (m *menu) listConsultations(ctx context.Context) error {
	patientID, err := m.readID("Id do paciente: ")
	if err != nil {
		return err
	}
	consultations, err := m.deps.records.GetConsultationsForPatient(ctx, patientID)
	if err != nil {
		return err
	}
	if len(consultations) == 0 {
		fmt.Fprintln(m.out, "Nenhuma consulta para este paciente.")
		return nil
	}
	for _, c := range consultations {
		fmt.Fprintf(m.out, "%4d  %s  %s\n", c.ID, c.ScheduledDate.Format(dateLayout), c.Notes)
	}
	return nil
}

func (m *menu) deleteConsultation(ctx context.Context) error {
	id, err := m.readID("Id da consulta: ")
	if err != nil {
		return err
	}
	c, err := m.deps.orch.PreviewConsultationDeletion(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Excluir consulta de %s? As receitas vinculadas serão mantidas sem o vínculo.\n",
		c.ScheduledDate.Format(dateLayout))
	if !m.confirm("Confirma") {
		m.deps.orch.CancelDeletion("consultation", id)
		fmt.Fprintln(m.out, "Exclusão cancelada.")
		return nil
	}
	if err := m.deps.orch.ConfirmConsultationDeletion(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Consulta excluída.")
	return nil
}

// -- Prescriptions --

func (m *menu) createPrescription(ctx context.Context) error {
	patientID, err := m.readID("Id do paciente: ")
	if err != nil {
		return err
	}

	input := workflow.CreatePrescriptionInput{PatientID: patientID}

	consultations, err := m.deps.records.GetConsultationsForPatient(ctx, patientID)
	if err != nil {
		return err
	}
	if len(consultations) > 0 {
		fmt.Fprintln(m.out, "Consultas do paciente:")
		for _, c := range consultations {
			fmt.Fprintf(m.out, "%4d  %s\n", c.ID, c.ScheduledDate.Format(dateLayout))
		}
		consultationID, err := m.readOptionalID("Id da consulta (opcional): ")
		if err != nil {
			return err
		}
		input.ConsultationID = consultationID
	}

	templates, err := m.deps.prescribing.GetTemplates(ctx)
	if err != nil {
		return err
	}
	if len(templates) > 0 {
		fmt.Fprintln(m.out, "Modelos de receita disponíveis:")
		for _, t := range templates {
			fmt.Fprintf(m.out, "%4d  %s\n", t.ID, t.Name)
		}
		templateID, err := m.readOptionalID("Id do modelo (em branco para receita livre): ")
		if err != nil {
			return err
		}
		input.TemplateID = templateID
	}

	if input.TemplateID != nil {
		input.Title = m.readLine("Título (em branco usa o nome do modelo): ")
		input.AdditionalNotes = m.readMultiline("Observações adicionais")
	} else {
		input.Title = m.readLine("Título: ")
		input.Body = m.readMultiline("Conteúdo da receita")
	}

	id, err := m.deps.orch.CreatePrescription(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Receita criada com id %d.\n", id)
	return nil
}

func (m *menu) listPrescriptions(ctx context.Context) error {
	patientID, err := m.readID("Id do paciente: ")
	if err != nil {
		return err
	}
	prescriptions, err := m.deps.prescribing.GetPrescriptionsForPatient(ctx, patientID)
	if err != nil {
		return err
	}
	if len(prescriptions) == 0 {
		fmt.Fprintln(m.out, "Nenhuma receita para este paciente.")
		return nil
	}
	for _, p := range prescriptions {
		fmt.Fprintf(m.out, "%4d  %s  %s\n", p.ID, p.CreatedAt.Format(dateLayout), p.Title)
	}
	return nil
}

func (m *menu) exportPrescription(ctx context.Context) error {
	id, err := m.readID("Id da receita: ")
	if err != nil {
		return err
	}
	path := m.readLine("Arquivo de destino (em branco para nome automático): ")
	if path == "" {
		path = filepath.Join(m.deps.cfg.ExportDir, m.deps.pdf.DefaultFileName())
	}

	err = m.deps.orch.ExportPrescription(ctx, id, path)
	if errors.Is(err, workflow.ErrProfileIncomplete) {
		// The document carries the doctor header, so the profile has to be
		// completed before anything is written.
		fmt.Fprintln(m.out, "Preencha o perfil do médico (nome e CRM) antes de exportar.")
		if err := m.editDoctorProfile(ctx); err != nil {
			return err
		}
		err = m.deps.orch.ExportPrescription(ctx, id, path)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Receita exportada para %s.\n", path)
	return nil
}

func (m *menu) deletePrescription(ctx context.Context) error {
	id, err := m.readID("Id da receita: ")
	if err != nil {
		return err
	}
	p, err := m.deps.orch.PreviewPrescriptionDeletion(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Excluir a receita \"%s\"?\n", p.Title)
	if !m.confirm("Confirma") {
		m.deps.orch.CancelDeletion("prescription", id)
		fmt.Fprintln(m.out, "Exclusão cancelada.")
		return nil
	}
	if err := m.deps.orch.ConfirmPrescriptionDeletion(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Receita excluída.")
	return nil
}

// -- Templates --

func (m *menu) addPrescriptionTemplate(ctx context.Context) error {
	t := &prescribing.Template{
		Name: m.readLine("Nome do modelo: "),
		Body: m.readMultiline("Conteúdo do modelo"),
	}
	id, err := m.deps.prescribing.AddTemplate(ctx, t)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Modelo cadastrado com id %d.\n", id)
	return nil
}

func (m *menu) listPrescriptionTemplates(ctx context.Context) error {
	templates, err := m.deps.prescribing.GetTemplates(ctx)
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		fmt.Fprintln(m.out, "Nenhum modelo de receita cadastrado.")
		return nil
	}
	for _, t := range templates {
		fmt.Fprintf(m.out, "%4d  %s\n", t.ID, t.Name)
	}
	return nil
}

func (m *menu) importAnamnesis(ctx context.Context) error {
	path := m.readLine("Arquivo .xlsx: ")
	name := m.readLine("Nome do modelo: ")
	id, err := m.deps.orch.ImportAnamnesis(ctx, path, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Anamnese importada com id %d.\n", id)
	return nil
}

func (m *menu) listAnamnesisTemplates(ctx context.Context) error {
	templates, err := m.deps.anamnesis.GetTemplates(ctx)
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		fmt.Fprintln(m.out, "Nenhum modelo de anamnese importado.")
		return nil
	}
	for _, t := range templates {
		fmt.Fprintf(m.out, "%4d  %s  importado em %s\n", t.ID, t.Name, t.ImportedAt.Format(dateLayout))
	}
	return nil
}

// -- Doctor profile --

func (m *menu) editDoctorProfile(ctx context.Context) error {
	d, err := m.deps.profile.Get(ctx)
	if err != nil {
		return err
	}

	if v := m.readLine(fmt.Sprintf("Nome completo [%s]: ", d.FullName)); v != "" {
		d.FullName = v
	}
	if v := m.readLine(fmt.Sprintf("CRM [%s]: ", d.RegistrationNumber)); v != "" {
		d.RegistrationNumber = v
	}
	if v := m.readLine(fmt.Sprintf("Especialidade [%s]: ", d.Specialty)); v != "" {
		d.Specialty = v
	}
	if v := m.readLine(fmt.Sprintf("Endereço do consultório [%s]: ", d.ClinicAddress)); v != "" {
		d.ClinicAddress = v
	}
	if v := m.readLine(fmt.Sprintf("Contato [%s]: ", d.ContactInfo)); v != "" {
		d.ContactInfo = v
	}

	if err := m.deps.profile.Save(ctx, d); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Perfil salvo.")
	return nil
}
