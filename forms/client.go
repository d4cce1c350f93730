package forms

import "health-portal/models"

// ClientValues — поля формы клиента в том виде, как они приходят из POST.
type ClientValues struct {
	FirstName      string `form:"first_name"`
	LastName       string `form:"last_name"`
	DateOfBirth    string `form:"date_of_birth"`
	Gender         string `form:"gender"`
	ContactNumber  string `form:"contact_number"`
	Email          string `form:"email"`
	Address        string `form:"address"`
	MedicalHistory string `form:"medical_history"`
}

func ClientValuesFrom(c *models.Client) ClientValues {
	return ClientValues{
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		DateOfBirth:    models.DateOnly(c.DateOfBirth),
		Gender:         c.Gender,
		ContactNumber:  c.ContactNumber,
		Email:          c.Email,
		Address:        c.Address,
		MedicalHistory: c.MedicalHistory,
	}
}

func (v *ClientValues) Rules() []Rule {
	return []Rule{
		{"first_name", v.FirstName, "required", "Required"},
		{"first_name", v.FirstName, "min=2", "Too Short!"},
		{"first_name", v.FirstName, "max=50", "Too Long!"},
		{"last_name", v.LastName, "required", "Required"},
		{"last_name", v.LastName, "min=2", "Too Short!"},
		{"last_name", v.LastName, "max=50", "Too Long!"},
		{"date_of_birth", v.DateOfBirth, "required", "Required"},
		{"date_of_birth", v.DateOfBirth, "datetime=2006-01-02", "Invalid date"},
		{"date_of_birth", v.DateOfBirth, "pastdate", "Date of birth cannot be in the future"},
		{"gender", v.Gender, "required", "Required"},
		{"gender", v.Gender, "oneof=M F O", "Invalid gender"},
		{"contact_number", v.ContactNumber, "required", "Required"},
		{"email", v.Email, "omitempty,email", "Invalid email"},
		{"address", v.Address, "required", "Required"},
	}
}

func (v *ClientValues) Input() models.ClientInput {
	return models.ClientInput{
		FirstName:      v.FirstName,
		LastName:       v.LastName,
		DateOfBirth:    v.DateOfBirth,
		Gender:         v.Gender,
		ContactNumber:  v.ContactNumber,
		Email:          v.Email,
		Address:        v.Address,
		MedicalHistory: v.MedicalHistory,
	}
}
