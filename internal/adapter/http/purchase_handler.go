package http

import (
	"net/http"

	domain "opsplatform-backend/internal/domain/purchase"
	"opsplatform-backend/internal/domain/reconcile"
	domainreport "opsplatform-backend/internal/domain/report"
	"opsplatform-backend/internal/domain/status"
	"opsplatform-backend/internal/domain/workflow"
	"opsplatform-backend/internal/usecase/purchase"
	"opsplatform-backend/internal/usecase/report"
	"opsplatform-backend/internal/usecase/viewmode"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type PurchaseHandler struct {
	uc       *purchase.Usecase
	views    *viewmode.Usecase
	renderer domainreport.Renderer
	log      logrus.FieldLogger
}

func NewPurchaseHandler(uc *purchase.Usecase, views *viewmode.Usecase, renderer domainreport.Renderer, log logrus.FieldLogger) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, views: views, renderer: renderer, log: log}
}

type savePurchaseReq struct {
	Date          string               `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ProjectID     string               `json:"project_id" validate:"max=64"`
	Vendor        string               `json:"vendor" validate:"max=150"`
	Description   string               `json:"description"`
	Type          string               `json:"type" validate:"omitempty,oneof=MATERIAL TOOL SERVICE SUPPORT"`
	Subcategory   string               `json:"subcategory" validate:"max=40"`
	Items         []itemReq            `json:"items" validate:"dive"`
	PurchaseStage string               `json:"purchase_stage"`
	InvoiceURL    string               `json:"invoice_url"`
	Beneficiary   workflow.Beneficiary `json:"beneficiary"`
	// Submit saves and submits in one call.
	Submit bool `json:"submit"`
}

// input converts the payload; the returned details are field problems the
// validator cannot see.
func (r savePurchaseReq) input() (purchase.SaveInput, []FieldError) {
	var details []FieldError
	date, err := parseDate(r.Date)
	if err != nil {
		details = append(details, FieldError{Field: "Date", Message: "must be a date formatted YYYY-MM-DD"})
	}
	var stage status.Stage
	if r.PurchaseStage != "" {
		if stage, err = status.ParseStage(r.PurchaseStage); err != nil {
			details = append(details, FieldError{Field: "PurchaseStage", Message: err.Error()})
		}
	}
	return purchase.SaveInput{
		Date:          date,
		ProjectID:     r.ProjectID,
		Vendor:        r.Vendor,
		Description:   r.Description,
		Type:          domain.Type(r.Type),
		Subcategory:   r.Subcategory,
		Items:         toItems(r.Items),
		PurchaseStage: stage,
		InvoiceURL:    r.InvoiceURL,
		Beneficiary:   r.Beneficiary,
		Submit:        r.Submit,
	}, details
}

type approvePurchaseReq struct {
	// ApprovedAmount is optional; without it the requested amount stands.
	ApprovedAmount decimal.NullDecimal `json:"approved_amount" validate:"omitempty,dec_gt0"`
}

type stageReq struct {
	Stage string `json:"stage" validate:"required"`
}

func (h *PurchaseHandler) List(c echo.Context) error {
	lc, err := resolveList(c, h.views)
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	rows, err := h.uc.List(c.Request().Context(), actorOf(c), lc.state.Mode, lc.query)
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	return c.JSON(http.StatusOK, listResp[*purchase.RequestDTO]{ViewMode: lc.state, Data: rows})
}

// Export renders the same list List would return.
func (h *PurchaseHandler) Export(c echo.Context) error {
	lc, err := resolveList(c, h.views)
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	rows, err := h.uc.List(c.Request().Context(), actorOf(c), lc.state.Mode, lc.query)
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	if err := sendReport(c, h.renderer, report.Purchases(lc.export(c), rows), "purchasing-requests"); err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	return nil
}

func (h *PurchaseHandler) Get(c echo.Context) error {
	reqID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	dto, err := h.uc.Get(c.Request().Context(), actorOf(c), reqID)
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PurchaseHandler) bindSave(c echo.Context) (purchase.SaveInput, bool, error) {
	var req savePurchaseReq
	if ok, err := bind(c, reconcile.RequestSave, &req); !ok {
		return purchase.SaveInput{}, false, err
	}
	in, details := req.input()
	if len(details) > 0 {
		return in, false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:     "validation failed",
			Details:   details,
			Reconcile: string(reconcile.For(reconcile.RequestSave)),
		})
	}
	return in, true, nil
}

func (h *PurchaseHandler) Create(c echo.Context) error {
	in, ok, err := h.bindSave(c)
	if !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), actorOf(c), in)
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PurchaseHandler) Update(c echo.Context) error {
	reqID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	in, ok, err := h.bindSave(c)
	if !ok {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), actorOf(c), reqID, in)
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PurchaseHandler) Delete(c echo.Context) error {
	reqID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, reconcile.RequestDelete, err)
	}
	if err := h.uc.Delete(c.Request().Context(), actorOf(c), reqID); err != nil {
		return writeError(c, h.log, reconcile.RequestDelete, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// transition runs a workflow step that needs no payload beyond the path id.
func (h *PurchaseHandler) transition(c echo.Context, step func(reqID string) (*purchase.RequestDTO, error)) error {
	reqID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, reconcile.RequestTransition, err)
	}
	dto, err := step(reqID)
	if err != nil {
		return writeError(c, h.log, reconcile.RequestTransition, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PurchaseHandler) Submit(c echo.Context) error {
	return h.transition(c, func(reqID string) (*purchase.RequestDTO, error) {
		return h.uc.Submit(c.Request().Context(), actorOf(c), reqID)
	})
}

func (h *PurchaseHandler) Cancel(c echo.Context) error {
	return h.transition(c, func(reqID string) (*purchase.RequestDTO, error) {
		return h.uc.Cancel(c.Request().Context(), actorOf(c), reqID)
	})
}

func (h *PurchaseHandler) Approve(c echo.Context) error {
	var req approvePurchaseReq
	if ok, err := bind(c, reconcile.RequestTransition, &req); !ok {
		return err
	}
	return h.transition(c, func(reqID string) (*purchase.RequestDTO, error) {
		return h.uc.Approve(c.Request().Context(), actorOf(c), reqID, req.ApprovedAmount)
	})
}

func (h *PurchaseHandler) RequestRevision(c echo.Context) error {
	var req reasonReq
	if ok, err := bind(c, reconcile.RequestTransition, &req); !ok {
		return err
	}
	return h.transition(c, func(reqID string) (*purchase.RequestDTO, error) {
		return h.uc.RequestRevision(c.Request().Context(), actorOf(c), reqID, req.Reason)
	})
}

func (h *PurchaseHandler) Reject(c echo.Context) error {
	var req reasonReq
	if ok, err := bind(c, reconcile.RequestTransition, &req); !ok {
		return err
	}
	return h.transition(c, func(reqID string) (*purchase.RequestDTO, error) {
		return h.uc.Reject(c.Request().Context(), actorOf(c), reqID, req.Reason)
	})
}

func (h *PurchaseHandler) UpdateStage(c echo.Context) error {
	var req stageReq
	if ok, err := bind(c, reconcile.RequestTransition, &req); !ok {
		return err
	}
	stage, err := status.ParseStage(req.Stage)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:     "validation failed",
			Details:   []FieldError{{Field: "Stage", Message: err.Error()}},
			Reconcile: string(reconcile.For(reconcile.RequestTransition)),
		})
	}
	return h.transition(c, func(reqID string) (*purchase.RequestDTO, error) {
		return h.uc.UpdateStage(c.Request().Context(), actorOf(c), reqID, stage)
	})
}

func (h *PurchaseHandler) Pay(c echo.Context) error {
	var req payReq
	if ok, err := bind(c, reconcile.RequestTransition, &req); !ok {
		return err
	}
	date, _ := parseDate(req.Date)
	proof, done, err := proofOf(c)
	if err != nil {
		return invalidBody(c, reconcile.RequestTransition)
	}
	defer done()
	return h.transition(c, func(reqID string) (*purchase.RequestDTO, error) {
		return h.uc.Pay(c.Request().Context(), actorOf(c), reqID, purchase.PayInput{
			SourceOfFundID: req.SourceOfFundID,
			Date:           date,
			Notes:          req.Notes,
			Proof:          proof,
		})
	})
}

func (h *PurchaseHandler) History(c echo.Context) error {
	reqID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	events, err := h.uc.History(c.Request().Context(), actorOf(c), reqID)
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	return c.JSON(http.StatusOK, events)
}
