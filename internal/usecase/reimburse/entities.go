package reimburse

import (
	"time"

	"opsplatform-backend/internal/domain/files"
	"opsplatform-backend/internal/domain/lineitem"
	domain "opsplatform-backend/internal/domain/reimburse"
	"opsplatform-backend/internal/domain/status"
	"opsplatform-backend/internal/domain/workflow"

	"github.com/shopspring/decimal"
)

type SaveInput struct {
	Date        time.Time
	ProjectID   string
	Category    domain.Category
	Subcategory string
	Description string
	Items       []lineitem.Item
	Trip        domain.Trip
	InvoiceURL  string
	Beneficiary workflow.Beneficiary
	Submit      bool
}

type PayInput struct {
	SourceOfFundID string
	Date           time.Time
	Notes          string
	Proof          *files.Attachment
}

// RequestDTO carries both amounts so a client can strike the original
// through when the reviewer corrected it.
type RequestDTO struct {
	*domain.Request
	DisplayStatus   status.Display  `json:"display_status"`
	StatusLabel     string          `json:"status_label"`
	EffectiveAmount decimal.Decimal `json:"effective_amount"`
	AmountCorrected bool            `json:"amount_corrected"`
	TripRequired    bool            `json:"trip_required"`
}

func toDTO(r *domain.Request) *RequestDTO {
	d := r.DisplayStatus()
	return &RequestDTO{
		Request:         r,
		DisplayStatus:   d,
		StatusLabel:     d.Label(),
		EffectiveAmount: r.EffectiveAmount(),
		AmountCorrected: r.AmountCorrected(),
		TripRequired:    domain.RequiresTrip(r.Category, r.Subcategory),
	}
}
