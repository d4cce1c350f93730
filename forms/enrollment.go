package forms

import (
	"strconv"

	"health-portal/models"
)

// Селекты отдают id строками, пустая строка — "не выбрано".
type EnrollmentValues struct {
	ClientID       string `form:"client_id"`
	ProgramID      string `form:"program_id"`
	EnrollmentDate string `form:"enrollment_date"`
	Notes          string `form:"notes"`
}

func (v *EnrollmentValues) Rules() []Rule {
	return []Rule{
		{"client_id", v.ClientID, "required", "Client is required"},
		{"client_id", v.ClientID, "number", "Client is required"},
		{"program_id", v.ProgramID, "required", "Program is required"},
		{"program_id", v.ProgramID, "number", "Program is required"},
		{"enrollment_date", v.EnrollmentDate, "required", "Enrollment date is required"},
		{"enrollment_date", v.EnrollmentDate, "datetime=2006-01-02", "Invalid date"},
	}
}

func (v *EnrollmentValues) ClientIDInt() int {
	id, _ := strconv.Atoi(v.ClientID)
	return id
}

func (v *EnrollmentValues) Input() models.EnrollmentInput {
	programID, _ := strconv.Atoi(v.ProgramID)
	return models.EnrollmentInput{
		ProgramID:      programID,
		EnrollmentDate: v.EnrollmentDate,
		Notes:          v.Notes,
	}
}
