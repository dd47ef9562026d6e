// Package main adds a user to the credential directory.
//
//	useradd --username lemuk --password lemuk123 --roles CARD-OWNER
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"github.com/lemuel-sousa/CashCard-spring-academy/cmd/httpserver"
	"github.com/lemuel-sousa/CashCard-spring-academy/internal/domain"
	"github.com/lemuel-sousa/CashCard-spring-academy/internal/middleware"
	"github.com/lemuel-sousa/CashCard-spring-academy/internal/userservice"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/configpkg"
)

func main() {
	configPath := flag.String("config", "./configs", "directory holding app.env")
	username := flag.StringP("username", "u", "", "username of the new user")
	password := flag.StringP("password", "p", "", "password of the new user")
	roles := flag.StringSlice("roles", []string{domain.RoleCardOwner}, "comma separated roles")
	flag.Parse()

	if *username == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	config, err := configpkg.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)
	ctx := logger.WithContext(context.Background())

	store, closeStore, err := httpserver.OpenStore(ctx, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open store")
	}

	user, err := userservice.New(store.Users).Create(ctx, *username, *password, *roles)
	if cerr := closeStore(); cerr != nil {
		logger.Error().Err(cerr).Msg("cannot close store")
	}

	if err != nil {
		logger.Error().Err(err).Str("username", *username).Msg("cannot create user")
		os.Exit(1)
	}

	logger.Info().
		Str("username", user.Username).
		Strs("roles", user.Roles).
		Time("created_at", user.CreatedAt).
		Msg("user created")
}
