// Package middleware provides the gin middlewares shared by all routes.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lemuel-sousa/CashCard-spring-academy/internal/domain"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/errorspkg"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/tokenpkg"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/web"
)

const (
	AuthHeaderKey    = "authorization"
	AuthTypeBasic    = "basic"
	AuthTypeBearer   = "bearer"
	AuthPrincipalKey = "auth_principal"
	// Challenge is sent with every 401 response.
	Challenge = `Basic realm="cashcards"`
)

var (
	ErrAuthHeaderNotFound  = errors.New("authorization header is not provided")
	ErrBadAuthHeaderFormat = errors.New("invalid authorization header format")
	ErrUnsupportedAuthType = errors.New("unsupported authorization type")
	ErrBadCredentials      = errors.New("bad credentials")
	ErrAccessDenied        = errors.New("access denied")
)

// Authenticator checks username and password against the credential directory.
//
//go:generate mockgen -source auth.go -destination auth_mock.go -package middleware
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (domain.Principal, error)
}

// AddAuthorization sets a bearer-style authorization header of authType on r.
func AddAuthorization(r *http.Request, tokenMaker tokenpkg.Maker, authType, username string, roles []string, duration time.Duration) error {
	token, _, err := tokenMaker.CreateToken(username, roles, duration)
	if err != nil {
		return err
	}

	r.Header.Set(AuthHeaderKey, strings.TrimSpace(fmt.Sprintf("%s %s", authType, token)))

	return nil
}

func unauthorized(gctx *gin.Context, err error) {
	gctx.Header("WWW-Authenticate", Challenge)
	gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
}

// AuthMiddleware authenticates the request with Basic credentials or a bearer token
// and stores the resulting principal in the gin context.
//
// A nil authenticator disables Basic, a nil tokenMaker disables Bearer.
func AuthMiddleware(authenticator Authenticator, tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		l := zerolog.Ctx(gctx.Request.Context())

		authHeader := gctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			unauthorized(gctx, ErrAuthHeaderNotFound)
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) != 2 {
			unauthorized(gctx, ErrBadAuthHeaderFormat)
			return
		}

		var principal domain.Principal

		switch authType := strings.ToLower(fields[0]); {
		case authType == AuthTypeBasic && authenticator != nil:
			username, password, ok := gctx.Request.BasicAuth()
			if !ok {
				unauthorized(gctx, ErrBadAuthHeaderFormat)
				return
			}

			p, err := authenticator.Authenticate(gctx.Request.Context(), username, password)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrWrongPassword) {
					l.Info().Str("username", username).Msg("bad credentials")
					unauthorized(gctx, ErrBadCredentials)

					return
				}

				gctx.AbortWithStatusJSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

				return
			}

			principal = p

		case authType == AuthTypeBearer && tokenMaker != nil:
			payload, err := tokenMaker.VerifyToken(fields[1])
			if err != nil {
				unauthorized(gctx, err)
				return
			}

			principal = domain.Principal{Username: payload.Username, Roles: payload.Roles}

		default:
			unauthorized(gctx, ErrUnsupportedAuthType)
			return
		}

		gctx.Set(AuthPrincipalKey, principal)
		gctx.Next()
	}
}

// PrincipalFrom returns the principal stored by AuthMiddleware.
func PrincipalFrom(gctx *gin.Context) (domain.Principal, bool) {
	v, ok := gctx.Get(AuthPrincipalKey)
	if !ok {
		return domain.Principal{}, false
	}

	p, ok := v.(domain.Principal)

	return p, ok
}

// RequireRole rejects authenticated principals lacking role with 403.
func RequireRole(role string) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		principal, ok := PrincipalFrom(gctx)
		if !ok {
			unauthorized(gctx, ErrAuthHeaderNotFound)
			return
		}

		if !principal.HasRole(role) {
			zerolog.Ctx(gctx.Request.Context()).Info().
				Str("principal", principal.Username).
				Str("role", role).
				Msg("missing role")
			gctx.AbortWithStatusJSON(http.StatusForbidden, web.Error(ErrAccessDenied))

			return
		}

		gctx.Next()
	}
}
