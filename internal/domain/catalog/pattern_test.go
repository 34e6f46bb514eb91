package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitType_BaseQty(t *testing.T) {
	tests := []struct {
		name     string
		unit     UnitType
		adults   int
		children int
		want     int64
	}{
		{"per adult counts adults", UnitPerAdult, 3, 2, 3},
		{"per child counts children", UnitPerChild, 3, 2, 2},
		{"per pax counts everyone", UnitPerPax, 3, 2, 5},
		{"per booking is always one", UnitPerBooking, 3, 2, 1},
		{"per adult with zero adults", UnitPerAdult, 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.unit.BaseQty(tt.adults, tt.children))
		})
	}
}

func TestUnitType_IsValid(t *testing.T) {
	for _, u := range []UnitType{UnitPerAdult, UnitPerChild, UnitPerPax, UnitPerBooking} {
		assert.True(t, u.IsValid(), u.String())
	}
	assert.False(t, UnitType("PER_GROUP").IsValid())
}

func TestCostPatternItem_ResolvedPartnerID(t *testing.T) {
	patternPartner := uuid.New()
	servicePartner := uuid.New()

	t.Run("pattern item default wins", func(t *testing.T) {
		pi := CostPatternItem{
			DefaultPartnerID: &patternPartner,
			ServiceItem:      &ServiceItem{DefaultPartnerID: &servicePartner},
		}
		require.NotNil(t, pi.ResolvedPartnerID())
		assert.Equal(t, patternPartner, *pi.ResolvedPartnerID())
	})

	t.Run("falls back to service item default", func(t *testing.T) {
		pi := CostPatternItem{
			ServiceItem: &ServiceItem{DefaultPartnerID: &servicePartner},
		}
		require.NotNil(t, pi.ResolvedPartnerID())
		assert.Equal(t, servicePartner, *pi.ResolvedPartnerID())
	})

	t.Run("nil when neither is set", func(t *testing.T) {
		pi := CostPatternItem{ServiceItem: &ServiceItem{}}
		assert.Nil(t, pi.ResolvedPartnerID())
	})
}

func TestNewCostPattern(t *testing.T) {
	t.Run("creates active pattern", func(t *testing.T) {
		p, err := NewCostPattern("Standard day tour", uuid.New())
		require.NoError(t, err)
		assert.True(t, p.IsActive)
		assert.Empty(t, p.Items)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCostPattern("", uuid.New())
		require.Error(t, err)
	})

	t.Run("fails with nil package", func(t *testing.T) {
		_, err := NewCostPattern("Standard", uuid.Nil)
		require.Error(t, err)
	})
}

func TestServiceItem_Eligibility(t *testing.T) {
	partner := uuid.New()
	driver := uuid.New()

	t.Run("empty sets allow anyone", func(t *testing.T) {
		s, err := NewServiceItem("Lunch", uuid.New())
		require.NoError(t, err)
		assert.True(t, s.IsPartnerEligible(partner))
		assert.True(t, s.IsDriverEligible(driver))
	})

	t.Run("non-empty sets restrict", func(t *testing.T) {
		s, err := NewServiceItem("Lunch", uuid.New())
		require.NoError(t, err)
		s.EligiblePartnerIDs = []uuid.UUID{partner}
		s.EligibleDriverIDs = []uuid.UUID{driver}

		assert.True(t, s.IsPartnerEligible(partner))
		assert.False(t, s.IsPartnerEligible(uuid.New()))
		assert.True(t, s.IsDriverEligible(driver))
		assert.False(t, s.IsDriverEligible(uuid.New()))
	})
}
