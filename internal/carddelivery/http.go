// Package carddelivery manages delivery layer of cash cards.
package carddelivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/lemuel-sousa/CashCard-spring-academy/internal/domain"
	"github.com/lemuel-sousa/CashCard-spring-academy/internal/middleware"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/errorspkg"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/web"
)

// BasePath is the collection path the handlers are mounted on.
const BasePath = "/cashcards"

// Service provides service layer interface needed by cash card delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package carddelivery
type Service interface {
	FindOwned(ctx context.Context, id int64, owner string) (domain.CashCard, error)
	ListOwned(ctx context.Context, owner string, page domain.PageRequest) ([]domain.CashCard, error)
	Create(ctx context.Context, owner string, amount decimal.Decimal) (domain.CashCard, error)
	Update(ctx context.Context, id int64, owner string, amount decimal.Decimal) (domain.CashCard, error)
	Delete(ctx context.Context, id int64, owner string) error
}

// Handler facilitates cash card delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns cash card handler.
func NewHandler(cs Service) Handler {
	return Handler{service: cs}
}

// Register mounts the cash card routes on rg.
func (h *Handler) Register(rg gin.IRoutes) {
	rg.GET(BasePath+"/:id", h.Get)
	rg.GET(BasePath, h.List)
	rg.POST(BasePath, h.Create)
	rg.PUT(BasePath+"/:id", h.Update)
	rg.DELETE(BasePath+"/:id", h.Delete)
}

// idRequest only requires a numeric id, unknown ids are answered by the store.
type idRequest struct {
	ID int64 `uri:"id" binding:"-"`
}

// amountRequest is the create and update body. Client supplied id and owner are ignored.
type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// listRequest leaves out-of-range page and size to the service, which clamps them.
type listRequest struct {
	Page int32    `form:"page,default=0"`
	Size int32    `form:"size,default=20"`
	Sort []string `form:"sort" binding:"dive,sortorder"`
}

func principal(gctx *gin.Context) string {
	p, _ := middleware.PrincipalFrom(gctx)
	return p.Username
}

func badRequest(gctx *gin.Context, err error) {
	zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()
	gctx.JSON(http.StatusBadRequest, web.BindError(err))
}

func serviceError(gctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCashCardNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(domain.ErrCashCardNotFound))
	case errors.Is(err, domain.ErrInvalidSort):
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidSort))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

// Get handles http request to get an owned cash card.
func (h *Handler) Get(gctx *gin.Context) {
	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	card, err := h.service.FindOwned(gctx.Request.Context(), req.ID, principal(gctx))
	if err != nil {
		serviceError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, card)
}

// List handles http request to list one page of owned cash cards.
func (h *Handler) List(gctx *gin.Context) {
	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	page := domain.PageRequest{Page: req.Page, Size: req.Size}

	for _, s := range req.Sort {
		sorts, err := domain.ParseSort(s)
		if err != nil {
			badRequest(gctx, err)
			return
		}

		page.Sort = append(page.Sort, sorts...)
	}

	cards, err := h.service.ListOwned(gctx.Request.Context(), principal(gctx), page)
	if err != nil {
		serviceError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, cards)
}

// Create handles http request to create a cash card owned by the caller.
func (h *Handler) Create(gctx *gin.Context) {
	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	card, err := h.service.Create(gctx.Request.Context(), principal(gctx), req.Amount)
	if err != nil {
		serviceError(gctx, err)
		return
	}

	gctx.Header("Location", fmt.Sprintf("%s/%d", BasePath, card.ID))
	gctx.Status(http.StatusCreated)
}

// Update handles http request to replace the amount of an owned cash card.
func (h *Handler) Update(gctx *gin.Context) {
	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		badRequest(gctx, err)
		return
	}

	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	if _, err := h.service.Update(gctx.Request.Context(), uri.ID, principal(gctx), req.Amount); err != nil {
		serviceError(gctx, err)
		return
	}

	gctx.Status(http.StatusNoContent)
}

// Delete handles http request to delete an owned cash card.
func (h *Handler) Delete(gctx *gin.Context) {
	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	if err := h.service.Delete(gctx.Request.Context(), req.ID, principal(gctx)); err != nil {
		serviceError(gctx, err)
		return
	}

	gctx.Status(http.StatusNoContent)
}
