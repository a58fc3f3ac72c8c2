package purchase

import (
	"time"

	"opsplatform-backend/internal/domain/files"
	"opsplatform-backend/internal/domain/lineitem"
	domain "opsplatform-backend/internal/domain/purchase"
	"opsplatform-backend/internal/domain/status"
	"opsplatform-backend/internal/domain/workflow"

	"github.com/shopspring/decimal"
)

// SaveInput carries the requester-editable fields. Amount is derived from Items.
type SaveInput struct {
	Date          time.Time
	ProjectID     string
	Vendor        string
	Description   string
	Type          domain.Type
	Subcategory   string
	Items         []lineitem.Item
	PurchaseStage status.Stage
	InvoiceURL    string
	Beneficiary   workflow.Beneficiary
	// Submit moves the request to SUBMITTED in the same write.
	Submit bool
}

type PayInput struct {
	SourceOfFundID string
	Date           time.Time
	Notes          string
	// Proof is optional; a failed upload does not block the payment.
	Proof *files.Attachment
}

// RequestDTO adds the derived display fields to a request.
type RequestDTO struct {
	*domain.Request
	DisplayStatus   status.Display   `json:"display_status"`
	StatusLabel     string           `json:"status_label"`
	Badges          []status.Display `json:"badges"`
	EffectiveAmount decimal.Decimal  `json:"effective_amount"`
	AmountCorrected bool             `json:"amount_corrected"`
	Payable         bool             `json:"payable"`
}

func toDTO(r *domain.Request) *RequestDTO {
	d := r.DisplayStatus()
	return &RequestDTO{
		Request:         r,
		DisplayStatus:   d,
		StatusLabel:     d.Label(),
		Badges:          r.Badges(),
		EffectiveAmount: r.EffectiveAmount(),
		AmountCorrected: r.ApprovedAmount.Valid && !r.ApprovedAmount.Decimal.Equal(r.Amount),
		Payable:         r.Payable(),
	}
}
