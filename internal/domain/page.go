package domain

import (
	"errors"
	"strings"
)

// ErrInvalidSort indicates an unknown sort property or direction.
var ErrInvalidSort = errors.New("invalid sort")

// Paging defaults and limits for list requests.
const (
	DefaultPageSize int32 = 20
	MaxPageSize     int32 = 2000
)

// Sort directions.
const (
	Asc  = "ASC"
	Desc = "DESC"
)

// SortableFields are the cash card properties a list can be ordered by.
var SortableFields = map[string]bool{
	"id":     true,
	"amount": true,
	"owner":  true,
}

// DefaultSort orders cash cards by amount, smallest first.
var DefaultSort = []Sort{{Field: "amount", Direction: Asc}}

// Sort is a single ordering criterion.
type Sort struct {
	Field     string
	Direction string
}

// PageRequest selects a zero-based page of the given size in the given order.
type PageRequest struct {
	Page int32
	Size int32
	Sort []Sort
}

// Offset returns the number of records preceding the page.
func (p PageRequest) Offset() int64 {
	return int64(p.Page) * int64(p.Size)
}

// ParseSort parses "field", "field,direction" or "field1,field2,...,direction".
//
// A trailing direction applies to every field before it. Empty tokens are
// skipped and a blank value yields no sort at all.
func ParseSort(s string) ([]Sort, error) {
	var tokens []string

	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}

	if len(tokens) == 0 {
		return nil, nil
	}

	direction := Asc

	if len(tokens) > 1 {
		switch strings.ToUpper(tokens[len(tokens)-1]) {
		case Asc:
			tokens = tokens[:len(tokens)-1]
		case Desc:
			direction = Desc
			tokens = tokens[:len(tokens)-1]
		}
	}

	sorts := make([]Sort, 0, len(tokens))

	for _, field := range tokens {
		if !SortableFields[field] {
			return nil, ErrInvalidSort
		}

		sorts = append(sorts, Sort{Field: field, Direction: direction})
	}

	return sorts, nil
}
