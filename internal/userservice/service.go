// Package userservice manages business logic layer of users.
package userservice

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/lemuel-sousa/CashCard-spring-academy/internal/domain"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/errorspkg"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/passpkg"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, username string) (domain.User, error)
}

// decoyHash is checked against when the user does not exist, so unknown and
// known usernames take the same time to reject.
const decoyHash = "$2b$10$gByElJZA0URJKGLJ8i7X/ejcDGnxQRAfFGQuKRXjW.eaZRYUfwKAm"

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New return user service struct to manage user bussines logic.
func New(ur Repo) *Service {
	return &Service{
		repo: ur,
	}
}

// Create hashes password and stores the user with the given roles.
func (s *Service) Create(ctx context.Context, username, password string, roles []string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.User{}, errorspkg.ErrInternal
	}

	arg := domain.CreateUserParams{
		Username:       username,
		HashedPassword: hashedPassword,
		Roles:          roles,
	}

	return s.repo.Create(ctx, arg)
}

// Authenticate checks the password of username and returns its principal.
func (s *Service) Authenticate(ctx context.Context, username, password string) (domain.Principal, error) {
	l := zerolog.Ctx(ctx)

	user, err := s.repo.Get(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = passpkg.Check(password, decoyHash)
		}

		return domain.Principal{}, err
	}

	if err := passpkg.Check(password, user.HashedPassword); err != nil {
		l.Warn().Err(err).Str("username", username).Msg("wrong password")
		return domain.Principal{}, domain.ErrWrongPassword
	}

	return domain.Principal{Username: user.Username, Roles: user.Roles}, nil
}
