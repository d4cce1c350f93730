package forms

import "health-portal/models"

type ProgramValues struct {
	Name        string `form:"name"`
	Description string `form:"description"`
}

func ProgramValuesFrom(p *models.Program) ProgramValues {
	return ProgramValues{Name: p.Name, Description: p.Description}
}

func (v *ProgramValues) Rules() []Rule {
	return []Rule{
		{"name", v.Name, "required", "Required"},
		{"name", v.Name, "min=2", "Too Short!"},
		{"name", v.Name, "max=100", "Too Long!"},
		{"description", v.Description, "required", "Required"},
	}
}

func (v *ProgramValues) Input() models.ProgramInput {
	return models.ProgramInput{Name: v.Name, Description: v.Description}
}
