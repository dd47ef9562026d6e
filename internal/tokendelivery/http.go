// Package tokendelivery issues bearer tokens to authenticated principals.
package tokendelivery

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lemuel-sousa/CashCard-spring-academy/internal/middleware"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/errorspkg"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/tokenpkg"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/web"
)

// Path is where the token handler is mounted.
const Path = "/tokens"

// Handler facilitates token delivery layer logic.
type Handler struct {
	tokenMaker tokenpkg.Maker
	duration   time.Duration
}

// NewHandler returns token handler issuing tokens valid for duration.
func NewHandler(tm tokenpkg.Maker, duration time.Duration) Handler {
	return Handler{tokenMaker: tm, duration: duration}
}

// Register mounts the token route on rg.
func (h *Handler) Register(rg gin.IRoutes) {
	rg.POST(Path, h.Create)
}

// Create handles http request to issue an access token for the authenticated principal.
func (h *Handler) Create(gctx *gin.Context) {
	l := zerolog.Ctx(gctx.Request.Context())

	principal, ok := middleware.PrincipalFrom(gctx)
	if !ok {
		gctx.JSON(http.StatusUnauthorized, web.Error(middleware.ErrAuthHeaderNotFound))
		return
	}

	token, payload, err := h.tokenMaker.CreateToken(principal.Username, principal.Roles, h.duration)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{
		AccessToken:          token,
		AccessTokenExpiresAt: payload.ExpiredAt.Format(time.RFC3339),
		Data:                 principal,
	})
}
