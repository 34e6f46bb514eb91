package settlement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourops/backend/internal/domain/catalog"
)

func TestDerivePayeeType(t *testing.T) {
	driver := uuid.New()
	partner := uuid.New()
	nilID := uuid.Nil

	t.Run("driver wins over partner", func(t *testing.T) {
		assert.Equal(t, PayeeDriver, DerivePayeeType(&driver, &partner))
	})

	t.Run("partner when no driver", func(t *testing.T) {
		assert.Equal(t, PayeePartner, DerivePayeeType(nil, &partner))
	})

	t.Run("none when neither is attached", func(t *testing.T) {
		assert.Equal(t, PayeeNone, DerivePayeeType(nil, nil))
	})

	t.Run("nil uuid counts as absent", func(t *testing.T) {
		assert.Equal(t, PayeePartner, DerivePayeeType(&nilID, &partner))
		assert.Equal(t, PayeeNone, DerivePayeeType(&nilID, &nilID))
	})
}

func TestBookingFinance_PatchItem(t *testing.T) {
	qty := func(n int64) *decimal.Decimal { d := decimal.NewFromInt(n); return &d }

	t.Run("patching qty re-derives amount", func(t *testing.T) {
		f, itemID := ledgerWithItem(t)

		item, err := f.PatchItem(itemID, ItemPatch{UnitQty: qty(3)})
		require.NoError(t, err)
		assert.True(t, item.Amount.Equal(decimal.NewFromInt(750000)))
	})

	t.Run("patching price re-derives amount", func(t *testing.T) {
		f, itemID := ledgerWithItem(t)

		item, err := f.PatchItem(itemID, ItemPatch{UnitPrice: qty(1000)})
		require.NoError(t, err)
		assert.True(t, item.Amount.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("attaching driver re-derives payee type", func(t *testing.T) {
		f, itemID := ledgerWithItem(t)
		driverID := uuid.New()

		item, err := f.PatchItem(itemID, ItemPatch{DriverID: &driverID})
		require.NoError(t, err)
		assert.Equal(t, PayeeDriver, item.PayeeType)
	})

	t.Run("clearing payee drops back to none", func(t *testing.T) {
		f, itemID := ledgerWithItem(t)
		driverID := uuid.New()
		_, err := f.PatchItem(itemID, ItemPatch{DriverID: &driverID})
		require.NoError(t, err)

		item, err := f.PatchItem(itemID, ItemPatch{ClearDriver: true})
		require.NoError(t, err)
		assert.Nil(t, item.DriverID)
		assert.Equal(t, PayeeNone, item.PayeeType)
	})

	t.Run("marking paid defaults paidAt to now", func(t *testing.T) {
		f, itemID := ledgerWithItem(t)
		paid := true

		item, err := f.PatchItem(itemID, ItemPatch{Paid: &paid})
		require.NoError(t, err)
		assert.True(t, item.Paid)
		require.NotNil(t, item.PaidAt)
	})

	t.Run("unmarking paid clears settlement attribution", func(t *testing.T) {
		f, itemID := ledgerWithItem(t)
		paid := true
		by := "staff"
		_, err := f.PatchItem(itemID, ItemPatch{Paid: &paid, PaidBy: &by})
		require.NoError(t, err)

		unpaid := false
		item, err := f.PatchItem(itemID, ItemPatch{Paid: &unpaid})
		require.NoError(t, err)
		assert.False(t, item.Paid)
		assert.Nil(t, item.PaidAt)
		assert.Empty(t, item.PaidBy)
		assert.Empty(t, item.PaidNote)
	})

	t.Run("explicit paidAt wins", func(t *testing.T) {
		f, itemID := ledgerWithItem(t)
		paid := true
		at := time.Now().Add(-48 * time.Hour)

		item, err := f.PatchItem(itemID, ItemPatch{Paid: &paid, PaidAt: &at})
		require.NoError(t, err)
		require.NotNil(t, item.PaidAt)
		assert.True(t, item.PaidAt.Equal(at))
	})

	t.Run("category override replaces the snapshot", func(t *testing.T) {
		f, itemID := ledgerWithItem(t)
		snap := CategorySnapshot{CategoryID: uuid.New(), CategoryName: "Fuel", IsCommission: false}

		item, err := f.PatchItem(itemID, ItemPatch{Snapshot: &snap})
		require.NoError(t, err)
		assert.Equal(t, snap.CategoryID, item.Snapshot.CategoryID)
		assert.Equal(t, "Fuel", item.Snapshot.CategoryName)
	})

	t.Run("invalid direction rejected", func(t *testing.T) {
		f, itemID := ledgerWithItem(t)
		bad := catalog.Direction("X")

		_, err := f.PatchItem(itemID, ItemPatch{Direction: &bad})
		require.Error(t, err)
	})

	t.Run("invalid unit type rejected", func(t *testing.T) {
		f, itemID := ledgerWithItem(t)
		bad := catalog.UnitType("PER_GROUP")

		_, err := f.PatchItem(itemID, ItemPatch{UnitType: &bad})
		require.Error(t, err)
	})

	t.Run("rejected on locked ledger", func(t *testing.T) {
		f, itemID := ledgerWithItem(t)
		f.SetLocked(true)

		_, err := f.PatchItem(itemID, ItemPatch{UnitQty: qty(2)})
		require.Error(t, err)
	})

	t.Run("unknown item rejected", func(t *testing.T) {
		f, _ := ledgerWithItem(t)

		_, err := f.PatchItem(uuid.New(), ItemPatch{UnitQty: qty(2)})
		require.Error(t, err)
	})
}
