package models

import "time"

// Client приходит из REST-бэкенда как есть; портал ничего не хранит.
type Client struct {
	ID             int       `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	DateOfBirth    string    `json:"date_of_birth"`
	Gender         string    `json:"gender"`
	ContactNumber  string    `json:"contact_number"`
	Email          string    `json:"email,omitempty"`
	Address        string    `json:"address"`
	MedicalHistory string    `json:"medical_history,omitempty"`
	Age            *int      `json:"age,omitempty"`
	Programs       []Program `json:"programs,omitempty"`
	// nil — бэкенд не вложил enrollments, нужен отдельный запрос
	Enrollments []Enrollment `json:"enrollments,omitempty"`
}

func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

func (c *Client) GenderLabel() string {
	return GenderLabel(c.Gender)
}

func (c *Client) ProgramCount() int {
	return len(c.Programs)
}

func GenderLabel(code string) string {
	switch code {
	case "M":
		return "Male"
	case "F":
		return "Female"
	default:
		return "Other"
	}
}

// ClientInput — payload для POST/PUT /clients/.
type ClientInput struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DateOfBirth    string `json:"date_of_birth"`
	Gender         string `json:"gender"`
	ContactNumber  string `json:"contact_number"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medical_history"`
}

// DateOnly обрезает ISO-8601 метку до YYYY-MM-DD для input[type=date].
func DateOnly(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2006-01-02")
	}
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}

// DisplayDate форматирует дату для страниц (Jan 2, 2006).
func DisplayDate(s string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}
