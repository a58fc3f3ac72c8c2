package http

import (
	"context"
	"net/http"
	"strings"

	"opsplatform-backend/internal/domain/access"
	domain "opsplatform-backend/internal/domain/fundingsource"
	"opsplatform-backend/internal/domain/reconcile"
	"opsplatform-backend/internal/usecase/fundingsource"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type FundingSourceHandler struct {
	uc  *fundingsource.Usecase
	log logrus.FieldLogger
}

func NewFundingSourceHandler(uc *fundingsource.Usecase, log logrus.FieldLogger) *FundingSourceHandler {
	return &FundingSourceHandler{uc: uc, log: log}
}

type saveSourceReq struct {
	Name          string          `json:"name" validate:"required,max=100"`
	Type          string          `json:"type" validate:"required,oneof=BANK PETTY_CASH REIMBURSE CASH"`
	Provider      string          `json:"provider"`
	AccountNumber string          `json:"account_number" validate:"max=50"`
	Balance       decimal.Decimal `json:"balance" validate:"dec_gte0"`
}

func (r saveSourceReq) input() fundingsource.SaveInput {
	return fundingsource.SaveInput{
		Name:          r.Name,
		Type:          domain.Type(r.Type),
		Provider:      domain.Provider(strings.ToUpper(strings.TrimSpace(r.Provider))),
		AccountNumber: r.AccountNumber,
		Balance:       r.Balance,
	}
}

type toggleReq struct {
	Value *bool `json:"value" validate:"required"`
}

type moveSourceReq struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
	View      string `json:"view" validate:"omitempty,oneof=active archived selectable"`
}

type topUpReq struct {
	Amount decimal.Decimal `json:"amount" validate:"dec_gt0"`
}

func viewOf(raw string) (domain.View, bool) {
	if raw == "" {
		return domain.ViewActive, true
	}
	v := domain.View(strings.ToLower(raw))
	return v, v.Valid()
}

// List shows ?view=active (default), archived or selectable sources in their
// manual order.
func (h *FundingSourceHandler) List(c echo.Context) error {
	view, ok := viewOf(c.QueryParam("view"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "view must be one of active, archived, selectable"})
	}
	list, err := h.uc.List(c.Request().Context(), view)
	if err != nil {
		return writeError(c, h.log, reconcile.FundingSave, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *FundingSourceHandler) Create(c echo.Context) error {
	var req saveSourceReq
	if ok, err := bind(c, reconcile.FundingSave, &req); !ok {
		return err
	}
	s, err := h.uc.Create(c.Request().Context(), actorOf(c), req.input())
	if err != nil {
		return writeError(c, h.log, reconcile.FundingSave, err)
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *FundingSourceHandler) Update(c echo.Context) error {
	sourceID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, reconcile.FundingSave, err)
	}
	var req saveSourceReq
	if ok, err := bind(c, reconcile.FundingSave, &req); !ok {
		return err
	}
	s, err := h.uc.Update(c.Request().Context(), actorOf(c), sourceID, req.input())
	if err != nil {
		return writeError(c, h.log, reconcile.FundingSave, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *FundingSourceHandler) Delete(c echo.Context) error {
	sourceID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, reconcile.FundingDelete, err)
	}
	if err := h.uc.Delete(c.Request().Context(), actorOf(c), sourceID); err != nil {
		return writeError(c, h.log, reconcile.FundingDelete, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FundingSourceHandler) SetActive(c echo.Context) error {
	return h.toggle(c, reconcile.FundingActive, h.uc.SetActive)
}

func (h *FundingSourceHandler) SetArchived(c echo.Context) error {
	return h.toggle(c, reconcile.FundingArchive, h.uc.SetArchived)
}

func (h *FundingSourceHandler) toggle(c echo.Context, action string, fn func(context.Context, access.Actor, string, bool) (*domain.Source, error)) error {
	sourceID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, action, err)
	}
	var req toggleReq
	if ok, err := bind(c, action, &req); !ok {
		return err
	}
	s, err := fn(c.Request().Context(), actorOf(c), sourceID, *req.Value)
	if err != nil {
		return writeError(c, h.log, action, err)
	}
	return c.JSON(http.StatusOK, s)
}

// Move swaps the source with its neighbour in the given view and returns the
// reordered view.
func (h *FundingSourceHandler) Move(c echo.Context) error {
	sourceID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, reconcile.FundingMove, err)
	}
	var req moveSourceReq
	if ok, err := bind(c, reconcile.FundingMove, &req); !ok {
		return err
	}
	view, _ := viewOf(req.View)
	list, err := h.uc.Move(c.Request().Context(), actorOf(c), sourceID, view, domain.Direction(req.Direction))
	if err != nil {
		return writeError(c, h.log, reconcile.FundingMove, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *FundingSourceHandler) TopUp(c echo.Context) error {
	sourceID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, reconcile.FundingTopUp, err)
	}
	var req topUpReq
	if ok, err := bind(c, reconcile.FundingTopUp, &req); !ok {
		return err
	}
	s, err := h.uc.TopUp(c.Request().Context(), actorOf(c), sourceID, req.Amount)
	if err != nil {
		return writeError(c, h.log, reconcile.FundingTopUp, err)
	}
	return c.JSON(http.StatusOK, s)
}
