package forms

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// формат даты проверяет отдельное datetime-правило,
	// здесь только запрет будущего
	validate.RegisterValidation("pastdate", func(fl validator.FieldLevel) bool {
		t, err := time.Parse("2006-01-02", fl.Field().String())
		if err != nil {
			return true
		}
		return !t.After(time.Now())
	})
}

// Rule — одно проверочное правило поля. Схемы сущностей задаются
// упорядоченными таблицами правил, предикаты — теги validator.
type Rule struct {
	Field   string
	Value   interface{}
	Tag     string
	Message string
}

// Validate прогоняет таблицу по порядку; на поле остаётся сообщение
// первого провалившегося правила. Пустая мапа не возвращается — либо
// nil, либо есть ошибки.
func Validate(rules []Rule) map[string]string {
	var errs map[string]string
	for _, r := range rules {
		if _, seen := errs[r.Field]; seen {
			continue
		}
		if err := validate.Var(r.Value, r.Tag); err != nil {
			if errs == nil {
				errs = make(map[string]string)
			}
			errs[r.Field] = r.Message
		}
	}
	return errs
}
