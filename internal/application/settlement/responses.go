package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tourops/backend/internal/domain/settlement"
)

// FinanceResponse is the API view of a booking's settlement ledger
type FinanceResponse struct {
	ID          uuid.UUID          `json:"id"`
	BookingID   uuid.UUID          `json:"booking_id"`
	PatternID   *uuid.UUID         `json:"pattern_id"`
	AssignedAt  time.Time          `json:"assigned_at"`
	ValidatedAt *time.Time         `json:"validated_at"`
	IsLocked    bool               `json:"is_locked"`
	Items       []ItemResponse     `json:"items"`
	Summary     settlement.Summary `json:"summary"`
}

// ItemResponse is the API view of one ledger item
type ItemResponse struct {
	ID            uuid.UUID                `json:"id"`
	ServiceItemID *uuid.UUID               `json:"service_item_id"`
	Name          string                   `json:"name"`
	CategoryID    uuid.UUID                `json:"category_id"`
	CategoryName  string                   `json:"category_name"`
	IsCommission  bool                     `json:"is_commission"`
	Direction     string                   `json:"direction"`
	IsManual      bool                     `json:"is_manual"`
	UnitType      string                   `json:"unit_type"`
	UnitQty       decimal.Decimal          `json:"unit_qty"`
	UnitPrice     decimal.Decimal          `json:"unit_price"`
	Amount        decimal.Decimal          `json:"amount"`
	DriverID      *uuid.UUID               `json:"driver_id"`
	PartnerID     *uuid.UUID               `json:"partner_id"`
	PayeeType     string                   `json:"payee_type"`
	RelatedItemID *uuid.UUID               `json:"related_item_id"`
	RelationType  *settlement.RelationType `json:"relation_type"`
	Paid          bool                     `json:"paid"`
	PaidAt        *time.Time               `json:"paid_at"`
	PaidBy        string                   `json:"paid_by,omitempty"`
	PaidNote      string                   `json:"paid_note,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
}

func toItemResponse(item *settlement.FinanceItem) ItemResponse {
	return ItemResponse{
		ID:            item.ID,
		ServiceItemID: item.ServiceItemID,
		Name:          item.NameSnapshot,
		CategoryID:    item.Snapshot.CategoryID,
		CategoryName:  item.Snapshot.CategoryName,
		IsCommission:  item.Snapshot.IsCommission,
		Direction:     item.Direction.String(),
		IsManual:      item.IsManual,
		UnitType:      item.UnitType.String(),
		UnitQty:       item.UnitQty,
		UnitPrice:     item.UnitPrice,
		Amount:        item.Amount,
		DriverID:      item.DriverID,
		PartnerID:     item.PartnerID,
		PayeeType:     item.PayeeType.String(),
		RelatedItemID: item.RelatedItemID,
		RelationType:  item.RelationType,
		Paid:          item.Paid,
		PaidAt:        item.PaidAt,
		PaidBy:        item.PaidBy,
		PaidNote:      item.PaidNote,
		Notes:         item.Notes,
	}
}

func toFinanceResponse(f *settlement.BookingFinance) *FinanceResponse {
	items := make([]ItemResponse, 0, len(f.Items))
	for idx := range f.Items {
		items = append(items, toItemResponse(&f.Items[idx]))
	}
	return &FinanceResponse{
		ID:          f.ID,
		BookingID:   f.BookingID,
		PatternID:   f.PatternID,
		AssignedAt:  f.AssignedAt,
		ValidatedAt: f.ValidatedAt,
		IsLocked:    f.IsLocked,
		Items:       items,
		Summary:     f.Summarize(),
	}
}
