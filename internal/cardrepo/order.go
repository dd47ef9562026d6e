package cardrepo

import (
	"strings"

	"github.com/lemuel-sousa/CashCard-spring-academy/internal/domain"
)

// orderBy renders sorts as an ORDER BY list.
//
// Only whitelisted columns reach the query text. Ties are broken by id so
// consecutive pages never overlap.
func orderBy(sorts []domain.Sort) (string, error) {
	if len(sorts) == 0 {
		sorts = domain.DefaultSort
	}

	terms := make([]string, 0, len(sorts)+1)
	hasID := false

	for _, s := range sorts {
		if !domain.SortableFields[s.Field] {
			return "", domain.ErrInvalidSort
		}

		if s.Direction != domain.Asc && s.Direction != domain.Desc {
			return "", domain.ErrInvalidSort
		}

		if s.Field == "id" {
			hasID = true
		}

		terms = append(terms, s.Field+" "+s.Direction)
	}

	if !hasID {
		terms = append(terms, "id ASC")
	}

	return strings.Join(terms, ", "), nil
}
