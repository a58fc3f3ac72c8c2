package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"opsplatform-backend/internal/domain/files"
	"opsplatform-backend/internal/domain/lineitem"
	"opsplatform-backend/internal/domain/listing"
	domainreport "opsplatform-backend/internal/domain/report"
	"opsplatform-backend/internal/usecase/report"
	"opsplatform-backend/internal/usecase/viewmode"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// listResp carries the resolved view mode with every finance list so the
// client can render the toggle without another round trip.
type listResp[T any] struct {
	ViewMode viewmode.State `json:"view_mode"`
	Data     []T            `json:"data"`
}

type itemReq struct {
	Name      string          `json:"name" validate:"max=200"`
	Qty       decimal.Decimal `json:"qty" validate:"dec_gte0"`
	Unit      string          `json:"unit" validate:"max=30"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"dec_gte0"`
}

func toItems(in []itemReq) []lineitem.Item {
	out := make([]lineitem.Item, len(in))
	for i, it := range in {
		out[i] = lineitem.Item{Name: it.Name, Qty: it.Qty, Unit: it.Unit, UnitPrice: it.UnitPrice}
	}
	return out
}

type reasonReq struct {
	Reason string `json:"reason"`
}

// payReq is accepted as JSON or as multipart with an optional "proof" file.
type payReq struct {
	SourceOfFundID string `json:"source_of_fund_id" form:"source_of_fund_id" validate:"required,hex32"`
	Date           string `json:"date" form:"date" validate:"omitempty,datetime=2006-01-02"`
	Notes          string `json:"notes" form:"notes"`
}

// proofOf opens the optional "proof" upload. The returned closer is never nil.
func proofOf(c echo.Context) (*files.Attachment, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, noop, nil
	}
	fh, err := c.FormFile("proof")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	return &files.Attachment{Reader: f, Filename: fh.Filename}, func() { _ = f.Close() }, nil
}

// listContext resolves the view mode and the list filters of a finance list.
type listContext struct {
	state viewmode.State
	query listing.Query
}

func resolveList(c echo.Context, views *viewmode.Usecase) (listContext, error) {
	q, err := parseQuery(c)
	if err != nil {
		return listContext{}, err
	}
	st, err := views.Resolve(c.Request().Context(), actorOf(c), c.QueryParam("view"))
	if err != nil {
		return listContext{}, err
	}
	return listContext{state: st, query: q}, nil
}

func (lc listContext) export(c echo.Context) report.Context {
	return report.Context{Actor: actorOf(c), Mode: lc.state.Mode, Query: lc.query, At: time.Now()}
}

// sendReport renders r as an attachment named base plus the renderer's extension.
func sendReport(c echo.Context, renderer domainreport.Renderer, r domainreport.Report, base string) error {
	b, err := renderer.Render(r)
	if err != nil {
		return err
	}
	name := base + "-" + time.Now().UTC().Format("20060102-150405") + renderer.Extension()
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, renderer.ContentType(), b)
}
