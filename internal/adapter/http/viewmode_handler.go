package http

import (
	"net/http"

	"opsplatform-backend/internal/domain/reconcile"
	domain "opsplatform-backend/internal/domain/viewmode"
	"opsplatform-backend/internal/usecase/viewmode"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ViewModeHandler struct {
	uc  *viewmode.Usecase
	log logrus.FieldLogger
}

func NewViewModeHandler(uc *viewmode.Usecase, log logrus.FieldLogger) *ViewModeHandler {
	return &ViewModeHandler{uc: uc, log: log}
}

type setViewModeReq struct {
	Mode string `json:"mode" validate:"required,oneof=personal team"`
}

// Get resolves the session mode; ?view= overrides the stored value.
func (h *ViewModeHandler) Get(c echo.Context) error {
	st, err := h.uc.Resolve(c.Request().Context(), actorOf(c), c.QueryParam("view"))
	if err != nil {
		return writeError(c, h.log, reconcile.ViewModeSet, err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *ViewModeHandler) Set(c echo.Context) error {
	var req setViewModeReq
	if ok, err := bind(c, reconcile.ViewModeSet, &req); !ok {
		return err
	}
	st, err := h.uc.Set(c.Request().Context(), actorOf(c), domain.Mode(req.Mode))
	if err != nil {
		return writeError(c, h.log, reconcile.ViewModeSet, err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *ViewModeHandler) Clear(c echo.Context) error {
	if err := h.uc.Clear(c.Request().Context(), actorOf(c)); err != nil {
		return writeError(c, h.log, reconcile.ViewModeSet, err)
	}
	return c.NoContent(http.StatusNoContent)
}
