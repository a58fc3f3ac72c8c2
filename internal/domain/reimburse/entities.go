package reimburse

import (
	"errors"
	"time"

	"opsplatform-backend/internal/domain/lineitem"
	"opsplatform-backend/internal/domain/status"
	"opsplatform-backend/internal/domain/workflow"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = errors.New("reimbursement request not found")
	ErrNotEditable = errors.New("reimbursement request is not editable in its current status")
)

type Category string

const (
	CategoryTransportation Category = "TRANSPORTATION"
	CategoryMeal           Category = "MEAL"
	CategoryAccommodation  Category = "ACCOMMODATION"
	CategoryOperational    Category = "OPERATIONAL"
	CategoryOther          Category = "OTHER"
)

const (
	SubMotorPersonal   = "MOTOR_PERSONAL"
	SubCarPersonal     = "CAR_PERSONAL"
	SubTaxi            = "TAXI"
	SubOnlineRide      = "ONLINE_RIDE"
	SubPublicTransport = "PUBLIC_TRANSPORT"
	SubToll            = "TOLL"
	SubParking         = "PARKING"
	SubFuel            = "FUEL"
)

var Subcategories = map[Category][]string{
	CategoryTransportation: {SubMotorPersonal, SubCarPersonal, SubTaxi, SubOnlineRide, SubPublicTransport, SubToll, SubParking, SubFuel},
	CategoryMeal:           {"BREAKFAST", "LUNCH", "DINNER", "CLIENT_MEAL"},
	CategoryAccommodation:  {"HOTEL", "MESS", "LAUNDRY"},
	CategoryOperational:    {"SITE_SUPPLIES", "COMMUNICATION", "PRINTING", "POSTAGE"},
	CategoryOther:          {"OTHER"},
}

var categoryLabels = map[Category]string{
	CategoryTransportation: "Transportation",
	CategoryMeal:           "Meal",
	CategoryAccommodation:  "Accommodation",
	CategoryOperational:    "Operational",
	CategoryOther:          "Other",
}

func (c Category) Valid() bool { _, ok := Subcategories[c]; return ok }
func (c Category) Label() string { return categoryLabels[c] }

func (c Category) HasSubcategory(sub string) bool {
	for _, s := range Subcategories[c] {
		if s == sub {
			return true
		}
	}
	return false
}

// tripRequired lists the transport subcategories whose claims need origin,
// destination and distance.
var tripRequired = map[string]bool{
	SubMotorPersonal: true,
	SubCarPersonal:   true,
	SubTaxi:          true,
	SubOnlineRide:    true,
}

// MileageRates is the per-km allowance of personal vehicles, in rupiah.
var MileageRates = map[string]decimal.Decimal{
	SubMotorPersonal: decimal.NewFromInt(3000),
	SubCarPersonal:   decimal.NewFromInt(6000),
}

func RequiresTrip(c Category, sub string) bool {
	return c == CategoryTransportation && tripRequired[sub]
}

// EstimatedCost is distance × rate for personal vehicles; ok is false for any
// other subcategory.
func EstimatedCost(sub string, distanceKM decimal.Decimal) (decimal.Decimal, bool) {
	rate, ok := MileageRates[sub]
	if !ok {
		return decimal.Zero, false
	}
	return workflow.Money(distanceKM.Mul(rate)), true
}

// Trip holds transport details for trip-required subcategories.
type Trip struct {
	Origin        string              `gorm:"size:150" json:"origin"`
	Destination   string              `gorm:"size:150" json:"destination"`
	DistanceKM    decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"distance_km"`
	EstimatedCost decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"estimated_cost"`
}

// Table: reimburse_requests
type Request struct {
	ID              string               `gorm:"column:id;primaryKey;size:32" json:"id"`
	RequesterID     string               `gorm:"column:requester_id;size:64;not null;index" json:"requester_id"`
	Date            time.Time            `gorm:"column:date;type:date;not null" json:"date"`
	ProjectID       string               `gorm:"column:project_id;size:64;index" json:"project_id"`
	Category        Category             `gorm:"column:category;size:20" json:"category"`
	Subcategory     string               `gorm:"column:subcategory;size:40" json:"subcategory"`
	Description     string               `gorm:"column:description;type:text" json:"description"`
	Items           []lineitem.Item      `gorm:"column:items;type:text;serializer:json" json:"items"`
	Amount          decimal.Decimal      `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	ApprovedAmount  decimal.NullDecimal  `gorm:"column:approved_amount;type:decimal(18,2)" json:"approved_amount"`
	Status          status.Reimburse     `gorm:"column:status;size:20;not null;index" json:"status"`
	Trip            Trip                 `gorm:"embedded;embeddedPrefix:trip_" json:"trip"`
	Beneficiary     workflow.Beneficiary `gorm:"embedded;embeddedPrefix:beneficiary_" json:"beneficiary"`
	InvoiceURL      string               `gorm:"column:invoice_url;type:text" json:"invoice_url"`
	RejectionReason string               `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`
	Payment         workflow.Payment     `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Request) TableName() string { return "reimburse_requests" }

func (r *Request) SetItems(items []lineitem.Item) {
	r.Items = lineitem.Normalize(items)
	r.Amount = lineitem.Sum(r.Items)
}

// SetTrip stores trip details and recomputes the estimated cost. Trips are
// dropped for subcategories that do not take one.
func (r *Request) SetTrip(t Trip) {
	if r.Category != CategoryTransportation || !r.Category.HasSubcategory(r.Subcategory) {
		r.Trip = Trip{}
		return
	}
	t.EstimatedCost = decimal.NullDecimal{}
	if t.DistanceKM.Valid {
		if cost, ok := EstimatedCost(r.Subcategory, t.DistanceKM.Decimal); ok {
			t.EstimatedCost = decimal.NewNullDecimal(cost)
		}
	}
	r.Trip = t
}

func (r *Request) EffectiveAmount() decimal.Decimal {
	if r.ApprovedAmount.Valid {
		return r.ApprovedAmount.Decimal
	}
	return r.Amount
}

// AmountCorrected reports whether the reviewer approved a different amount
// than requested; clients show the original struck through.
func (r *Request) AmountCorrected() bool {
	return r.ApprovedAmount.Valid && !r.ApprovedAmount.Decimal.Equal(r.Amount)
}

func (r *Request) DisplayStatus() status.Display { return status.ResolveReimburse(r.Status) }
