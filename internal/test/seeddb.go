// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lemuel-sousa/CashCard-spring-academy/internal/domain"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/passpkg"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/randompkg"
)

// UserCreator stores users.
type UserCreator interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
}

// CardCreator stores cash cards.
type CardCreator interface {
	Create(ctx context.Context, owner string, amount decimal.Decimal) (domain.CashCard, error)
}

// SeedUser creates a user with a random username, the given password and roles.
func SeedUser(t *testing.T, repo UserCreator, password string, roles ...string) domain.User {
	t.Helper()

	return SeedNamedUser(t, repo, randompkg.Owner(), password, roles...)
}

// SeedNamedUser creates the user username with the given password and roles.
func SeedNamedUser(t *testing.T, repo UserCreator, username, password string, roles ...string) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		t.Fatalf("passpkg.Hash(%q) returned error: %v", password, err)
	}

	arg := domain.CreateUserParams{
		Username:       username,
		HashedPassword: hashedPassword,
		Roles:          roles,
	}

	user, err := repo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("repo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedCashCard creates a cash card of owner holding amount.
func SeedCashCard(t *testing.T, repo CardCreator, owner, amount string) domain.CashCard {
	t.Helper()

	card, err := repo.Create(context.Background(), owner, decimal.RequireFromString(amount))
	if err != nil {
		t.Fatalf("repo.Create(context.Background(), %v, %v) returned error: %v", owner, amount, err)
	}

	return card
}
