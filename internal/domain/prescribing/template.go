package prescribing

import (
	"regexp"
	"strconv"
	"time"

	"github.com/draccessibility/clinic/internal/domain/records"
)

// Placeholder tokens recognized in template bodies. Matching is
// case-insensitive; stored templates in the field use mixed casings.
const (
	TokenPatientName      = "{{Paciente.Nome}}"
	TokenPatientAge       = "{{Paciente.Idade}}"
	TokenPatientBirthDate = "{{Paciente.DataNascimento}}"
)

var (
	nameToken      = tokenPattern(TokenPatientName)
	ageToken       = tokenPattern(TokenPatientAge)
	birthDateToken = tokenPattern(TokenPatientBirthDate)
)

func tokenPattern(token string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(token))
}

// ApplyTemplate resolves the recognized placeholder tokens in body against the
// patient. Replacement is textual and global; unrecognized tokens are left
// untouched. When the patient has no birth date, the age and birth-date tokens
// resolve to an empty string rather than surviving as literals.
func ApplyTemplate(body string, patient *records.Patient) string {
	return applyTemplateAt(body, patient, time.Now())
}

func applyTemplateAt(body string, patient *records.Patient, now time.Time) string {
	result := nameToken.ReplaceAllLiteralString(body, patient.FullName)

	if patient.BirthDate != nil {
		age := Age(*patient.BirthDate, now)
		result = ageToken.ReplaceAllLiteralString(result, strconv.Itoa(age))
		result = birthDateToken.ReplaceAllLiteralString(result, patient.BirthDate.Format("02/01/2006"))
	} else {
		result = ageToken.ReplaceAllLiteralString(result, "")
		result = birthDateToken.ReplaceAllLiteralString(result, "")
	}

	return result
}

// Age returns the whole years between birthDate and now, anniversary-based:
// the year difference, minus one if the birthday has not yet occurred in the
// current year. This feeds printed documents, so the rule is frozen.
func Age(birthDate, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	birth := time.Date(birthDate.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)

	age := today.Year() - birth.Year()
	if birth.After(today.AddDate(-age, 0, 0)) {
		age--
	}
	return age
}
