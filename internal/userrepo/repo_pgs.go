// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/lemuel-sousa/CashCard-spring-academy/internal/domain"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/dbpkg"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/errorspkg"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// CreateQuery inserts the user and its roles in a single statement.
const CreateQuery = `
WITH new_user AS (
    INSERT INTO users (username, hashed_password)
    VALUES ($1, $2)
    RETURNING username, hashed_password, created_at
), new_roles AS (
    INSERT INTO user_roles (username, role)
    SELECT $1, unnest($3::text[])
)
SELECT username, hashed_password, created_at FROM new_user
`

// Create creates the user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	roles := arg.Roles
	if roles == nil {
		roles = []string{}
	}

	row := r.db.QueryRowContext(ctx, CreateQuery,
		arg.Username,
		arg.HashedPassword,
		pq.Array(roles),
	)

	var u domain.User

	err := row.Scan(
		&u.Username,
		&u.HashedPassword,
		&u.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == "users_pkey" {
				return domain.User{}, domain.ErrUsernameAlreadyExists
			}
		}

		return domain.User{}, errorspkg.ErrInternal
	}

	u.Roles = roles

	return u, nil
}

const getQuery = `
SELECT
	u.username,
	u.hashed_password,
	u.created_at,
	COALESCE(array_agg(r.role ORDER BY r.role) FILTER (WHERE r.role IS NOT NULL), '{}')
FROM users u
LEFT JOIN user_roles r ON r.username = u.username
WHERE u.username = $1
GROUP BY u.username
`

// Get returns the user with the given username.
func (r *RepoPGS) Get(ctx context.Context, username string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, username)

	var u domain.User

	err := row.Scan(
		&u.Username,
		&u.HashedPassword,
		&u.CreatedAt,
		pq.Array(&u.Roles),
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return domain.User{}, errorspkg.ErrInternal
	}

	return u, nil
}
