package settlement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tourops/backend/internal/domain/catalog"
	"github.com/tourops/backend/internal/domain/shared"
)

// CommissionSplit is the recording convention for commission-bearing items:
// a gross commission amount is expressed as an independently payable
// driver-cut plus the company remainder, both linked to the source item.
type CommissionSplit struct {
	DriverPortion decimal.Decimal `json:"driver_portion"`
	Remainder     decimal.Decimal `json:"remainder"`
}

// SplitCommission divides a gross commission into driver-cut and remainder.
// Invariants: driverPortion + remainder == total, and
// driverPortion == min(max(driverCommission, 0), total).
func SplitCommission(total, driverCommission decimal.Decimal) CommissionSplit {
	driverPortion := driverCommission
	if driverPortion.IsNegative() {
		driverPortion = decimal.Zero
	}
	if driverPortion.GreaterThan(total) {
		driverPortion = total
	}
	return CommissionSplit{
		DriverPortion: driverPortion,
		Remainder:     total.Sub(driverPortion),
	}
}

// SplitCommissionItem expands one commission-bearing source item into up to
// two linked EXPENSE entries on this ledger: the driver cut (payee DRIVER)
// and the company remainder (payee NONE). Zero portions are not emitted.
// The source item's amount is the gross commission.
func (f *BookingFinance) SplitCommissionItem(sourceItemID uuid.UUID, driverCommission decimal.Decimal, commissionCategory CategorySnapshot, driverID *uuid.UUID) ([]uuid.UUID, error) {
	if f.IsLocked {
		return nil, shared.ErrFinanceLocked
	}
	source, err := f.Item(sourceItemID)
	if err != nil {
		return nil, err
	}
	if !source.Snapshot.AllowRelatedItem && !commissionCategory.AllowRelatedItem {
		return nil, shared.NewDomainError("INVALID_STATE", "Source item category does not allow related items")
	}

	split := SplitCommission(source.Amount, driverCommission)
	sourceID := source.ID
	relation := RelationCommissionFor

	snapshot := commissionCategory
	snapshot.IsCommission = true

	appendPortion := func(name string, amount decimal.Decimal, portionDriverID *uuid.UUID) uuid.UUID {
		item := FinanceItem{
			BaseEntity:    shared.NewBaseEntity(),
			FinanceID:     f.ID,
			NameSnapshot:  name,
			Snapshot:      snapshot,
			Direction:     catalog.DirectionExpense,
			IsManual:      true,
			UnitType:      catalog.UnitPerBooking,
			UnitQty:       decimal.NewFromInt(1),
			UnitPrice:     amount,
			DriverID:      portionDriverID,
			RelatedItemID: &sourceID,
			RelationType:  &relation,
		}
		item.recompute()
		f.Items = append(f.Items, item)
		return item.ID
	}

	var created []uuid.UUID
	if split.DriverPortion.IsPositive() {
		created = append(created, appendPortion(source.NameSnapshot+" (driver commission)", split.DriverPortion, driverID))
	}
	if split.Remainder.IsPositive() {
		created = append(created, appendPortion(source.NameSnapshot+" (commission remainder)", split.Remainder, nil))
	}
	return created, nil
}
