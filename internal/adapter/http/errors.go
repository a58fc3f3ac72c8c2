package http

import (
	"errors"
	"net/http"

	"opsplatform-backend/internal/domain/files"
	"opsplatform-backend/internal/domain/fundingsource"
	"opsplatform-backend/internal/domain/permission"
	"opsplatform-backend/internal/domain/purchase"
	"opsplatform-backend/internal/domain/reconcile"
	"opsplatform-backend/internal/domain/reimburse"
	"opsplatform-backend/internal/domain/role"
	"opsplatform-backend/internal/domain/viewmode"
	"opsplatform-backend/internal/domain/workflow"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// statusOf maps a usecase error onto an HTTP status. Unknown errors are 500.
func statusOf(err error) int {
	var guard *workflow.GuardError
	switch {
	case errors.As(err, &guard), errors.Is(err, workflow.ErrReasonRequired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrForbidden),
		errors.Is(err, viewmode.ErrTeamNotAllowed),
		errors.Is(err, files.ErrInvalidToken):
		return http.StatusForbidden
	case errors.Is(err, purchase.ErrNotFound),
		errors.Is(err, reimburse.ErrNotFound),
		errors.Is(err, fundingsource.ErrNotFound),
		errors.Is(err, role.ErrNotFound),
		errors.Is(err, files.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, purchase.ErrNotEditable),
		errors.Is(err, reimburse.ErrNotEditable),
		errors.Is(err, fundingsource.ErrNotSelectable),
		errors.Is(err, role.ErrDuplicateCode):
		return http.StatusConflict
	case errors.Is(err, permission.ErrUnknownFlag),
		errors.Is(err, files.ErrInvalidPath),
		errors.Is(err, errMissingParam):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError renders err with the reconciliation policy of action.
func writeError(c echo.Context, log logrus.FieldLogger, action string, err error) error {
	code := statusOf(err)
	resp := ErrorResponse{Error: err.Error(), Reconcile: string(reconcile.For(action))}
	var guard *workflow.GuardError
	if errors.As(err, &guard) {
		resp.Error = "precondition failed"
		for _, v := range guard.Violations {
			resp.Details = append(resp.Details, FieldError{Field: "_", Message: v})
		}
	}
	if code == http.StatusInternalServerError {
		log.WithError(err).WithFields(logrus.Fields{
			"action": action,
			"method": c.Request().Method,
			"uri":    c.Request().RequestURI,
		}).Error("request failed")
		resp.Error = "internal error"
	}
	return c.JSON(code, resp)
}

func invalidBody(c echo.Context, action string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body", Reconcile: string(reconcile.For(action))})
}

func validationFailed(c echo.Context, action string, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:     "validation failed",
		Details:   ToFieldErrors(err),
		Reconcile: string(reconcile.For(action)),
	})
}

// bind decodes and validates req, writing the error response itself. It
// reports false when the handler must stop.
func bind(c echo.Context, action string, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, invalidBody(c, action)
	}
	if err := c.Validate(req); err != nil {
		return false, validationFailed(c, action, err)
	}
	return true, nil
}
