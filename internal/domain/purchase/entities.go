package purchase

import (
	"errors"
	"time"

	"opsplatform-backend/internal/domain/lineitem"
	"opsplatform-backend/internal/domain/status"
	"opsplatform-backend/internal/domain/workflow"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = errors.New("purchasing request not found")
	ErrNotEditable = errors.New("purchasing request is not editable in its current status")
)

type Type string

const (
	TypeMaterial Type = "MATERIAL"
	TypeTool     Type = "TOOL"
	TypeService  Type = "SERVICE"
	TypeSupport  Type = "SUPPORT"
)

// Subcategories is the fixed subcategory set of every purchase type.
var Subcategories = map[Type][]string{
	TypeMaterial: {"STRUCTURAL", "FINISHING", "MEP", "CONSUMABLE"},
	TypeTool:     {"HAND_TOOL", "POWER_TOOL", "HEAVY_EQUIPMENT", "SAFETY"},
	TypeService:  {"SUBCONTRACT", "RENTAL", "TRANSPORT", "CONSULTING"},
	TypeSupport:  {"OFFICE", "LOGISTICS", "PERMIT", "OTHER"},
}

var typeLabels = map[Type]string{
	TypeMaterial: "Material",
	TypeTool:     "Tool",
	TypeService:  "Service",
	TypeSupport:  "Support",
}

func (t Type) Valid() bool { _, ok := Subcategories[t]; return ok }
func (t Type) Label() string { return typeLabels[t] }

// HasSubcategory reports whether sub belongs to t.
func (t Type) HasSubcategory(sub string) bool {
	for _, s := range Subcategories[t] {
		if s == sub {
			return true
		}
	}
	return false
}

// Table: purchasing_requests
type Request struct {
	ID              string               `gorm:"column:id;primaryKey;size:32" json:"id"`
	RequesterID     string               `gorm:"column:requester_id;size:64;not null;index" json:"requester_id"`
	Date            time.Time            `gorm:"column:date;type:date;not null" json:"date"`
	ProjectID       string               `gorm:"column:project_id;size:64;index" json:"project_id"`
	Vendor          string               `gorm:"column:vendor;size:150" json:"vendor"`
	Description     string               `gorm:"column:description;type:text" json:"description"`
	Type            Type                 `gorm:"column:type;size:20" json:"type"`
	Subcategory     string               `gorm:"column:subcategory;size:40" json:"subcategory"`
	Items           []lineitem.Item      `gorm:"column:items;type:text;serializer:json" json:"items"`
	Amount          decimal.Decimal      `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	ApprovedAmount  decimal.NullDecimal  `gorm:"column:approved_amount;type:decimal(18,2)" json:"approved_amount"`
	ApprovalStatus  status.Approval      `gorm:"column:approval_status;size:20;not null;index" json:"approval_status"`
	PurchaseStage   status.Stage         `gorm:"column:purchase_stage;size:20;not null" json:"purchase_stage"`
	FinancialStatus status.Financial     `gorm:"column:financial_status;size:20;not null" json:"financial_status"`
	InvoiceURL      string               `gorm:"column:invoice_url;type:text" json:"invoice_url"`
	Beneficiary     workflow.Beneficiary `gorm:"embedded;embeddedPrefix:beneficiary_" json:"beneficiary"`
	RejectionReason string               `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	RevisionReason  string               `gorm:"column:revision_reason;type:text" json:"revision_reason,omitempty"`
	Payment         workflow.Payment     `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Request) TableName() string { return "purchasing_requests" }

// SetItems normalizes items and re-derives Amount; Amount is never set directly.
func (r *Request) SetItems(items []lineitem.Item) {
	r.Items = lineitem.Normalize(items)
	r.Amount = lineitem.Sum(r.Items)
}

// EffectiveAmount is the reviewer-corrected amount when one was given.
func (r *Request) EffectiveAmount() decimal.Decimal {
	if r.ApprovedAmount.Valid {
		return r.ApprovedAmount.Decimal
	}
	return r.Amount
}

func (r *Request) DisplayStatus() status.Display {
	return status.Resolve(r.ApprovalStatus, r.PurchaseStage, r.FinancialStatus)
}

func (r *Request) Badges() []status.Display {
	return status.Badges(r.ApprovalStatus, r.PurchaseStage, r.FinancialStatus)
}
