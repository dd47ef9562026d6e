// Package cardrepo manages repository layer of cash cards.
package cardrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/lemuel-sousa/CashCard-spring-academy/internal/domain"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/dbpkg"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/errorspkg"
)

// RepoPGS facilitates cash card repository layer logic on top of raw SQL.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns cash card RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO 
    cash_cards (amount, owner)
VALUES
    ($1, $2)
RETURNING id, amount, owner
`

// Create stores a new cash card and returns it with the assigned id.
func (r *RepoPGS) Create(ctx context.Context, owner string, amount decimal.Decimal) (domain.CashCard, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, amount, owner)

	var c domain.CashCard

	if err := row.Scan(&c.ID, &c.Amount, &c.Owner); err != nil {
		l.Error().Err(err).Send()
		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const getQuery = `
SELECT 
	id, amount, owner
FROM cash_cards
WHERE id = $1
`

// Get returns the cash card with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.CashCard, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var c domain.CashCard

	err := row.Scan(&c.ID, &c.Amount, &c.Owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, domain.ErrCashCardNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const listQuery = `
SELECT 
	id, amount, owner
FROM cash_cards
WHERE owner = $1
ORDER BY %s
LIMIT $2 OFFSET $3
`

// List returns one page of the cash cards of owner.
func (r *RepoPGS) List(ctx context.Context, owner string, page domain.PageRequest) ([]domain.CashCard, error) {
	l := zerolog.Ctx(ctx)

	order, err := orderBy(page.Sort)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(listQuery, order), owner, page.Size, page.Offset())
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.CashCard{}

	for rows.Next() {
		var c domain.CashCard
		if err := rows.Scan(&c.ID, &c.Amount, &c.Owner); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, c)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const updateQuery = `
UPDATE cash_cards
SET amount = $1, owner = $2
WHERE id = $3 AND owner = $2
RETURNING id, amount, owner
`

// Update replaces the amount of the cash card id owned by owner.
func (r *RepoPGS) Update(ctx context.Context, id int64, owner string, amount decimal.Decimal) (domain.CashCard, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updateQuery, amount, owner, id)

	var c domain.CashCard

	err := row.Scan(&c.ID, &c.Amount, &c.Owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, domain.ErrCashCardNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const deleteQuery = `
DELETE FROM cash_cards
WHERE id = $1 AND owner = $2
`

// Delete removes the cash card id owned by owner.
func (r *RepoPGS) Delete(ctx context.Context, id int64, owner string) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id, owner)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrCashCardNotFound
	}

	return nil
}
