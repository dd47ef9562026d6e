// Package cardservice manages business logic layer of cash cards.
//
// Every operation is scoped to an owner: cards owned by someone else are
// reported exactly like cards that do not exist.
package cardservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/lemuel-sousa/CashCard-spring-academy/internal/domain"
)

// Repo provides data access layer interface needed by cash card service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package cardservice
type Repo interface {
	Create(ctx context.Context, owner string, amount decimal.Decimal) (domain.CashCard, error)
	Get(ctx context.Context, id int64) (domain.CashCard, error)
	List(ctx context.Context, owner string, page domain.PageRequest) ([]domain.CashCard, error)
	Update(ctx context.Context, id int64, owner string, amount decimal.Decimal) (domain.CashCard, error)
	Delete(ctx context.Context, id int64, owner string) error
}

// Service facilitates cash card service layer logic.
type Service struct {
	repo Repo
}

// New returns cash card service struct to manage cash card bussines logic.
func New(cr Repo) *Service {
	return &Service{repo: cr}
}

// FindOwned returns the cash card id if it is owned by owner.
func (s *Service) FindOwned(ctx context.Context, id int64, owner string) (domain.CashCard, error) {
	card, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.CashCard{}, err
	}

	if card.Owner != owner {
		zerolog.Ctx(ctx).Warn().
			Int64("cash_card_id", id).
			Str("principal", owner).
			Msg("access to a foreign cash card")

		return domain.CashCard{}, domain.ErrCashCardNotFound
	}

	return card, nil
}

// ListOwned returns one page of the cash cards owned by owner.
//
// Out-of-range paging is clamped: a negative page reads the first page, a
// non-positive size falls back to the default and sizes above the maximum are capped.
func (s *Service) ListOwned(ctx context.Context, owner string, page domain.PageRequest) ([]domain.CashCard, error) {
	if page.Page < 0 {
		page.Page = 0
	}

	switch {
	case page.Size <= 0:
		page.Size = domain.DefaultPageSize
	case page.Size > domain.MaxPageSize:
		page.Size = domain.MaxPageSize
	}

	if len(page.Sort) == 0 {
		page.Sort = domain.DefaultSort
	}

	return s.repo.List(ctx, owner, page)
}

// Create creates and returns a cash card for the given owner and amount.
func (s *Service) Create(ctx context.Context, owner string, amount decimal.Decimal) (domain.CashCard, error) {
	return s.repo.Create(ctx, owner, amount)
}

// Update replaces the amount of the cash card id owned by owner.
func (s *Service) Update(ctx context.Context, id int64, owner string, amount decimal.Decimal) (domain.CashCard, error) {
	if _, err := s.FindOwned(ctx, id, owner); err != nil {
		return domain.CashCard{}, err
	}

	return s.repo.Update(ctx, id, owner, amount)
}

// Delete removes the cash card id owned by owner.
func (s *Service) Delete(ctx context.Context, id int64, owner string) error {
	if _, err := s.FindOwned(ctx, id, owner); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id, owner)
}
