package settlement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tourops/backend/internal/domain/booking"
	"github.com/tourops/backend/internal/domain/catalog"
	"github.com/tourops/backend/internal/domain/shared"
)

// BuildItemsFromPattern instantiates a cost pattern against a booking's
// facts, producing the priced, payee-resolved item set for the ledger.
//
// Per pattern item:
//   - base quantity scales with the booking pax counts per the unit type
//   - unitQty = baseQty * defaultQty, amount = unitQty * defaultPrice
//   - driver attaches only when the category's payee mode allows drivers and
//     the category auto-pulls the booking's assigned driver
//   - partner attaches only when the payee mode allows partners, preferring
//     the pattern item's default over the service item's default
//   - category policy fields are copied as snapshots
//
// The function is pure; it never touches storage.
func BuildItemsFromPattern(b *booking.Booking, pattern *catalog.CostPattern) ([]FinanceItem, error) {
	items := make([]FinanceItem, 0, len(pattern.Items))

	for idx := range pattern.Items {
		pi := &pattern.Items[idx]
		if pi.ServiceItem == nil || pi.ServiceItem.Category == nil {
			return nil, shared.NewDomainError("INVALID_PATTERN", "Pattern item is missing its service item or category")
		}
		if !pi.DefaultUnitType.IsValid() {
			return nil, shared.NewDomainError("INVALID_UNIT_TYPE", "Pattern item unit type is not valid")
		}
		category := pi.ServiceItem.Category

		baseQty := decimal.NewFromInt(pi.DefaultUnitType.BaseQty(b.NumberOfAdult, b.NumberOfChild))
		unitQty := baseQty.Mul(pi.DefaultQty)

		var driverID *uuid.UUID
		if category.PayeeMode.AllowsDriver() && category.AutoDriverFromBooking {
			driverID = b.AssignedDriverID
		}
		var partnerID *uuid.UUID
		if category.PayeeMode.AllowsPartner() {
			partnerID = pi.ResolvedPartnerID()
		}

		serviceItemID := pi.ServiceItemID
		item := FinanceItem{
			BaseEntity:    shared.NewBaseEntity(),
			ServiceItemID: &serviceItemID,
			NameSnapshot:  pi.ServiceItem.Name,
			Snapshot:      SnapshotOf(category),
			Direction:     category.DefaultDirection,
			IsManual:      false,
			UnitType:      pi.DefaultUnitType,
			UnitQty:       unitQty,
			UnitPrice:     pi.DefaultPrice,
			DriverID:      driverID,
			PartnerID:     partnerID,
		}
		item.recompute()
		items = append(items, item)
	}

	return items, nil
}
