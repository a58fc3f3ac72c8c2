package http

import (
	"net/http"

	"opsplatform-backend/internal/domain/reconcile"
	domain "opsplatform-backend/internal/domain/reimburse"
	domainreport "opsplatform-backend/internal/domain/report"
	"opsplatform-backend/internal/domain/workflow"
	"opsplatform-backend/internal/usecase/reimburse"
	"opsplatform-backend/internal/usecase/report"
	"opsplatform-backend/internal/usecase/viewmode"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ReimburseHandler struct {
	uc       *reimburse.Usecase
	views    *viewmode.Usecase
	renderer domainreport.Renderer
	log      logrus.FieldLogger
}

func NewReimburseHandler(uc *reimburse.Usecase, views *viewmode.Usecase, renderer domainreport.Renderer, log logrus.FieldLogger) *ReimburseHandler {
	return &ReimburseHandler{uc: uc, views: views, renderer: renderer, log: log}
}

type tripReq struct {
	Origin      string              `json:"origin" validate:"max=150"`
	Destination string              `json:"destination" validate:"max=150"`
	DistanceKM  decimal.NullDecimal `json:"distance_km" validate:"omitempty,dec_gte0"`
}

type saveReimburseReq struct {
	Date        string               `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ProjectID   string               `json:"project_id" validate:"max=64"`
	Category    string               `json:"category" validate:"omitempty,oneof=TRANSPORTATION MEAL ACCOMMODATION OPERATIONAL OTHER"`
	Subcategory string               `json:"subcategory" validate:"max=40"`
	Description string               `json:"description"`
	Items       []itemReq            `json:"items" validate:"dive"`
	Trip        tripReq              `json:"trip"`
	InvoiceURL  string               `json:"invoice_url"`
	Beneficiary workflow.Beneficiary `json:"beneficiary"`
	Submit      bool                 `json:"submit"`
}

func (r saveReimburseReq) input() reimburse.SaveInput {
	date, _ := parseDate(r.Date)
	return reimburse.SaveInput{
		Date:        date,
		ProjectID:   r.ProjectID,
		Category:    domain.Category(r.Category),
		Subcategory: r.Subcategory,
		Description: r.Description,
		Items:       toItems(r.Items),
		Trip:        domain.Trip{Origin: r.Trip.Origin, Destination: r.Trip.Destination, DistanceKM: r.Trip.DistanceKM},
		InvoiceURL:  r.InvoiceURL,
		Beneficiary: r.Beneficiary,
		Submit:      r.Submit,
	}
}

type approveReimburseReq struct {
	ApprovedAmount decimal.Decimal `json:"approved_amount" validate:"dec_gt0"`
}

func (h *ReimburseHandler) List(c echo.Context) error {
	lc, err := resolveList(c, h.views)
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	rows, err := h.uc.List(c.Request().Context(), actorOf(c), lc.state.Mode, lc.query)
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	return c.JSON(http.StatusOK, listResp[*reimburse.RequestDTO]{ViewMode: lc.state, Data: rows})
}

func (h *ReimburseHandler) Export(c echo.Context) error {
	lc, err := resolveList(c, h.views)
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	rows, err := h.uc.List(c.Request().Context(), actorOf(c), lc.state.Mode, lc.query)
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	if err := sendReport(c, h.renderer, report.Reimburses(lc.export(c), rows), "reimbursement-requests"); err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	return nil
}

func (h *ReimburseHandler) Get(c echo.Context) error {
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

func (h *ReimburseHandler) Create(c echo.Context) error {
	var req saveReimburseReq
	if ok, err := bind(c, reconcile.RequestSave, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), actorOf(c), req.input())
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// Update edits a DRAFT or PENDING claim; a PENDING claim must still pass the
// submit checks afterwards.
func (h *ReimburseHandler) Update(c echo.Context) error {
	reqID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	var req saveReimburseReq
	if ok, err := bind(c, reconcile.RequestSave, &req); !ok {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), actorOf(c), reqID, req.input())
	if err != nil {
		return writeError(c, h.log, reconcile.RequestSave, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReimburseHandler) Delete(c echo.Context) error {
	reqID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.log, reconcile.RequestDelete, err)
	}
	if err := h.uc.Delete(c.Request().Context(), actorOf(c), reqID); err != nil {
		return writeError(c, h.log, reconcile.RequestDelete, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ReimburseHandler) transition(c echo.Context, step func(reqID string) (*reimburse.RequestDTO, error)) error {
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

func (h *ReimburseHandler) Submit(c echo.Context) error {
	return h.transition(c, func(reqID string) (*reimburse.RequestDTO, error) {
		return h.uc.Submit(c.Request().Context(), actorOf(c), reqID)
	})
}

func (h *ReimburseHandler) Approve(c echo.Context) error {
	var req approveReimburseReq
	if ok, err := bind(c, reconcile.RequestTransition, &req); !ok {
		return err
	}
	return h.transition(c, func(reqID string) (*reimburse.RequestDTO, error) {
		return h.uc.Approve(c.Request().Context(), actorOf(c), reqID, req.ApprovedAmount)
	})
}

func (h *ReimburseHandler) Reject(c echo.Context) error {
	var req reasonReq
	if ok, err := bind(c, reconcile.RequestTransition, &req); !ok {
		return err
	}
	return h.transition(c, func(reqID string) (*reimburse.RequestDTO, error) {
		return h.uc.Reject(c.Request().Context(), actorOf(c), reqID, req.Reason)
	})
}

func (h *ReimburseHandler) Pay(c echo.Context) error {
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
	return h.transition(c, func(reqID string) (*reimburse.RequestDTO, error) {
		return h.uc.Pay(c.Request().Context(), actorOf(c), reqID, reimburse.PayInput{
			SourceOfFundID: req.SourceOfFundID,
			Date:           date,
			Notes:          req.Notes,
			Proof:          proof,
		})
	})
}

func (h *ReimburseHandler) History(c echo.Context) error {
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
