package settlement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourops/backend/internal/domain/catalog"
)

func TestSplitCommission(t *testing.T) {
	total := decimal.NewFromInt(100000)

	tests := []struct {
		name          string
		driverCut     decimal.Decimal
		wantDriver    decimal.Decimal
		wantRemainder decimal.Decimal
	}{
		{"regular split", decimal.NewFromInt(30000), decimal.NewFromInt(30000), decimal.NewFromInt(70000)},
		{"negative driver cut clamps to zero", decimal.NewFromInt(-500), decimal.Zero, total},
		{"driver cut above total clamps to total", decimal.NewFromInt(150000), total, decimal.Zero},
		{"zero driver cut", decimal.Zero, decimal.Zero, total},
		{"full driver cut", total, total, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := SplitCommission(total, tt.driverCut)
			assert.True(t, split.DriverPortion.Equal(tt.wantDriver), "driver portion %s", split.DriverPortion)
			assert.True(t, split.Remainder.Equal(tt.wantRemainder), "remainder %s", split.Remainder)
			// portions always reassemble the gross amount
			assert.True(t, split.DriverPortion.Add(split.Remainder).Equal(total))
		})
	}
}

func commissionLedger(t *testing.T, sourceAmount decimal.Decimal, allowRelated bool) (*BookingFinance, uuid.UUID) {
	t.Helper()
	f, err := NewBookingFinance(uuid.New())
	require.NoError(t, err)

	item, err := f.AddManualItem("Volcano tour sale", CategorySnapshot{
		CategoryID:       uuid.New(),
		CategoryName:     "Sales",
		AllowRelatedItem: allowRelated,
	}, catalog.DirectionIncome, decimal.NewFromInt(1), sourceAmount)
	require.NoError(t, err)
	return f, item.ID
}

func commissionSnapshot() CategorySnapshot {
	return CategorySnapshot{
		CategoryID:       uuid.New(),
		CategoryName:     "Commission",
		IsCommission:     true,
		AllowRelatedItem: true,
	}
}

func TestBookingFinance_SplitCommissionItem(t *testing.T) {
	t.Run("creates two linked expense entries", func(t *testing.T) {
		f, sourceID := commissionLedger(t, decimal.NewFromInt(100000), true)
		driverID := uuid.New()

		created, err := f.SplitCommissionItem(sourceID, decimal.NewFromInt(30000), commissionSnapshot(), &driverID)
		require.NoError(t, err)
		require.Len(t, created, 2)
		require.Len(t, f.Items, 3)

		driverCut, err := f.Item(created[0])
		require.NoError(t, err)
		remainder, err := f.Item(created[1])
		require.NoError(t, err)

		assert.True(t, driverCut.Amount.Equal(decimal.NewFromInt(30000)))
		assert.Equal(t, PayeeDriver, driverCut.PayeeType)
		assert.Equal(t, driverID, *driverCut.DriverID)

		assert.True(t, remainder.Amount.Equal(decimal.NewFromInt(70000)))
		assert.Equal(t, PayeeNone, remainder.PayeeType)

		for _, it := range []*FinanceItem{driverCut, remainder} {
			assert.Equal(t, catalog.DirectionExpense, it.Direction)
			assert.True(t, it.Snapshot.IsCommission)
			require.NotNil(t, it.RelatedItemID)
			assert.Equal(t, sourceID, *it.RelatedItemID)
			require.NotNil(t, it.RelationType)
			assert.Equal(t, RelationCommissionFor, *it.RelationType)
		}
	})

	t.Run("zero driver cut emits only the remainder", func(t *testing.T) {
		f, sourceID := commissionLedger(t, decimal.NewFromInt(100000), true)

		created, err := f.SplitCommissionItem(sourceID, decimal.Zero, commissionSnapshot(), nil)
		require.NoError(t, err)
		require.Len(t, created, 1)

		only, err := f.Item(created[0])
		require.NoError(t, err)
		assert.True(t, only.Amount.Equal(decimal.NewFromInt(100000)))
		assert.Nil(t, only.DriverID)
	})

	t.Run("full driver cut emits only the driver portion", func(t *testing.T) {
		f, sourceID := commissionLedger(t, decimal.NewFromInt(100000), true)
		driverID := uuid.New()

		created, err := f.SplitCommissionItem(sourceID, decimal.NewFromInt(100000), commissionSnapshot(), &driverID)
		require.NoError(t, err)
		require.Len(t, created, 1)

		only, err := f.Item(created[0])
		require.NoError(t, err)
		assert.Equal(t, PayeeDriver, only.PayeeType)
		assert.True(t, only.Amount.Equal(decimal.NewFromInt(100000)))
	})

	t.Run("rejects split on locked ledger", func(t *testing.T) {
		f, sourceID := commissionLedger(t, decimal.NewFromInt(100000), true)
		f.SetLocked(true)

		_, err := f.SplitCommissionItem(sourceID, decimal.NewFromInt(30000), commissionSnapshot(), nil)
		require.Error(t, err)
	})

	t.Run("rejects unknown source item", func(t *testing.T) {
		f, _ := commissionLedger(t, decimal.NewFromInt(100000), true)

		_, err := f.SplitCommissionItem(uuid.New(), decimal.NewFromInt(30000), commissionSnapshot(), nil)
		require.Error(t, err)
	})

	t.Run("rejects when neither category allows related items", func(t *testing.T) {
		f, sourceID := commissionLedger(t, decimal.NewFromInt(100000), false)
		snap := commissionSnapshot()
		snap.AllowRelatedItem = false

		_, err := f.SplitCommissionItem(sourceID, decimal.NewFromInt(30000), snap, nil)
		require.Error(t, err)
	})
}
