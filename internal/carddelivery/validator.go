package carddelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/lemuel-sousa/CashCard-spring-academy/internal/domain"
)

// ValidSortOrder validates "property" or "property,direction" sort parameters.
var ValidSortOrder validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		_, err := domain.ParseSort(s)
		return err == nil
	}

	return false
}
