// Package httpserver manages server creation and api routing.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lemuel-sousa/CashCard-spring-academy/internal/cardcache"
	"github.com/lemuel-sousa/CashCard-spring-academy/internal/carddelivery"
	"github.com/lemuel-sousa/CashCard-spring-academy/internal/cardrepo"
	"github.com/lemuel-sousa/CashCard-spring-academy/internal/cardservice"
	"github.com/lemuel-sousa/CashCard-spring-academy/internal/domain"
	"github.com/lemuel-sousa/CashCard-spring-academy/internal/middleware"
	"github.com/lemuel-sousa/CashCard-spring-academy/internal/tokendelivery"
	"github.com/lemuel-sousa/CashCard-spring-academy/internal/userrepo"
	"github.com/lemuel-sousa/CashCard-spring-academy/internal/userservice"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/cachepkg"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/configpkg"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/dbpkg"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/tokenpkg"
)

// Store groups the repositories the server is built on.
type Store struct {
	Cards cardservice.Repo
	Users userservice.Repo
}

// Server holds handlers router and configuration.
type Server struct {
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(store Store, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	tokenMaker, err := tokenpkg.New(config.TokenType, config.TokenSymmetricKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	cardService := cardservice.New(store.Cards)
	userService := userservice.New(store.Users)

	cardHandler := carddelivery.NewHandler(cardService)
	tokenHandler := tokendelivery.NewHandler(tokenMaker, config.AccessTokenDuration)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("sortorder", carddelivery.ValidSortOrder)
		if err != nil {
			return nil, errors.New("cannot register sortorder validator")
		}
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/health", func(gctx *gin.Context) {
		gctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Tokens are only issued against credentials, a token cannot renew itself.
	tokenHandler.Register(engine.Group("/").Use(middleware.AuthMiddleware(userService, nil)))

	auth := middleware.AuthMiddleware(userService, tokenMaker)
	cardHandler.Register(engine.Group("/").Use(auth, middleware.RequireRole(domain.RoleCardOwner)))

	server := &Server{
		Engine: engine,
		Config: config,
	}

	return server, nil
}

// OpenStore connects the storage layer selected by config.
//
// The returned close func releases every connection opened on the way.
func OpenStore(ctx context.Context, config configpkg.Config) (Store, func() error, error) {
	var (
		store   Store
		closers []func() error
	)

	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}

		return errors.Join(errs...)
	}

	if config.UsesGORM() {
		conn, err := dbpkg.OpenGORM(config.DBDriver, config.DBSource)
		if err != nil {
			return store, nil, err
		}

		closers = append(closers, func() error { return dbpkg.CloseGORM(conn) })

		cardRepo := cardrepo.NewRepoGORM(conn)
		userRepo := userrepo.NewRepoGORM(conn)

		if err := cardRepo.AutoMigrate(ctx); err != nil {
			return store, nil, errors.Join(fmt.Errorf("cannot migrate cash cards: %w", err), closeAll())
		}

		if err := userRepo.AutoMigrate(ctx); err != nil {
			return store, nil, errors.Join(fmt.Errorf("cannot migrate users: %w", err), closeAll())
		}

		store.Cards, store.Users = cardRepo, userRepo
	} else {
		db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
		if err != nil {
			return store, nil, err
		}

		closers = append(closers, db.Close)

		store.Cards, store.Users = cardrepo.NewRepoPGS(db), userrepo.NewRepoPGS(db)
	}

	if config.RedisAddr != "" {
		client, err := cachepkg.NewClient(ctx, config.RedisAddr, config.RedisPassword, config.RedisDB)
		if err != nil {
			return store, nil, errors.Join(err, closeAll())
		}

		closers = append(closers, client.Close)

		store.Cards = cardcache.New(store.Cards, client, config.CacheTTL)
	}

	return store, closeAll, nil
}

// Open connects the storage layer and builds the server on top of it.
func Open(ctx context.Context, logger zerolog.Logger, config configpkg.Config) (*Server, func() error, error) {
	store, closeStore, err := OpenStore(ctx, config)
	if err != nil {
		return nil, nil, err
	}

	server, err := New(store, logger, config)
	if err != nil {
		return nil, nil, errors.Join(err, closeStore())
	}

	return server, closeStore, nil
}
