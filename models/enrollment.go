package models

type Enrollment struct {
	ID             int    `json:"id"`
	ClientID       int    `json:"client_id"`
	ProgramID      int    `json:"program_id"`
	ProgramName    string `json:"program_name"`
	EnrollmentDate string `json:"enrollment_date"`
	Status         string `json:"status"`
	Notes          string `json:"notes,omitempty"`
}

// StatusBadge — css-класс бейджа по статусу, как в оригинальном UI.
func (e *Enrollment) StatusBadge() string {
	switch e.Status {
	case "Active":
		return "bg-success"
	case "Completed":
		return "bg-info"
	case "Inactive":
		return "bg-warning"
	default:
		return "bg-secondary"
	}
}

// EnrollmentInput — payload для POST /clients/{id}/enroll/.
type EnrollmentInput struct {
	ProgramID      int    `json:"program_id"`
	EnrollmentDate string `json:"enrollment_date"`
	Notes          string `json:"notes"`
}
