package models

type Program struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ShortDescription — первые 100 символов для карточек списка.
func (p *Program) ShortDescription() string {
	r := []rune(p.Description)
	if len(r) <= 100 {
		return p.Description
	}
	return string(r[:100]) + "..."
}

type ProgramInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
