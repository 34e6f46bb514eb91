package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tourops/backend/internal/domain/booking"
	"github.com/tourops/backend/internal/domain/settlement"
	"github.com/tourops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MockFinanceRepository is a mock implementation of settlement.Repository
type MockFinanceRepository struct {
	mock.Mock
}

func (m *MockFinanceRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*settlement.BookingFinance, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.BookingFinance), args.Error(1)
}

func (m *MockFinanceRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) (*settlement.BookingFinance, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settlement.BookingFinance), args.Error(1)
}

func (m *MockFinanceRepository) FindOwners(ctx context.Context, itemIDs []uuid.UUID) ([]settlement.BookingFinance, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]settlement.BookingFinance), args.Error(1)
}

func (m *MockFinanceRepository) Replace(ctx context.Context, finance *settlement.BookingFinance) error {
	args := m.Called(ctx, finance)
	return args.Error(0)
}

func (m *MockFinanceRepository) Save(ctx context.Context, finance *settlement.BookingFinance) error {
	args := m.Called(ctx, finance)
	return args.Error(0)
}

func (m *MockFinanceRepository) ListByValidation(ctx context.Context, validated bool) ([]settlement.BookingFinance, error) {
	args := m.Called(ctx, validated)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]settlement.BookingFinance), args.Error(1)
}

func ledgerWithPattern(t *testing.T, bookingID uuid.UUID) *settlement.BookingFinance {
	t.Helper()
	f, err := settlement.NewBookingFinance(bookingID)
	require.NoError(t, err)
	require.NoError(t, f.ReplaceItems(uuid.New(), []settlement.FinanceItem{{
		BaseEntity:   shared.NewBaseEntity(),
		NameSnapshot: "Entrance",
	}}))
	return f
}

func TestStatusService_ResolveBooking(t *testing.T) {
	t.Run("driver and pattern promote the booking to ready", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		financeRepo := new(MockFinanceRepository)
		svc := NewStatusService(bookingRepo, financeRepo, zap.NewNop())

		b := ingestedBooking(t, "OTA-600")
		require.NoError(t, b.AssignDriver(uuid.New()))
		f := ledgerWithPattern(t, b.ID)

		bookingRepo.On("FindByID", mock.Anything, b.ID).Return(b, nil)
		financeRepo.On("FindByBookingID", mock.Anything, b.ID).Return(f, nil)
		bookingRepo.On("Save", mock.Anything, b).Return(nil)

		changed, err := svc.ResolveBooking(context.Background(), b.ID)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, booking.StatusReady, b.Status)
		bookingRepo.AssertExpectations(t)
	})

	t.Run("missing ledger resolves from zero facts", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		financeRepo := new(MockFinanceRepository)
		svc := NewStatusService(bookingRepo, financeRepo, zap.NewNop())

		b := ingestedBooking(t, "OTA-601")

		bookingRepo.On("FindByID", mock.Anything, b.ID).Return(b, nil)
		financeRepo.On("FindByBookingID", mock.Anything, b.ID).Return(nil, shared.ErrNotFound)

		changed, err := svc.ResolveBooking(context.Background(), b.ID)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, booking.StatusNew, b.Status)
		bookingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unchanged status skips the write", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		financeRepo := new(MockFinanceRepository)
		svc := NewStatusService(bookingRepo, financeRepo, zap.NewNop())

		b := ingestedBooking(t, "OTA-602")
		require.NoError(t, b.AssignDriver(uuid.New()))
		b.Status = booking.StatusReady
		f := ledgerWithPattern(t, b.ID)

		bookingRepo.On("FindByID", mock.Anything, b.ID).Return(b, nil)
		financeRepo.On("FindByBookingID", mock.Anything, b.ID).Return(f, nil)

		changed, err := svc.ResolveBooking(context.Background(), b.ID)
		require.NoError(t, err)
		assert.False(t, changed)
		bookingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestStatusService_ResyncAll(t *testing.T) {
	t.Run("sweeps the active set and counts updates", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		financeRepo := new(MockFinanceRepository)
		svc := NewStatusService(bookingRepo, financeRepo, zap.NewNop())

		promoted := ingestedBooking(t, "OTA-610")
		require.NoError(t, promoted.AssignDriver(uuid.New()))
		promotedLedger := ledgerWithPattern(t, promoted.ID)

		unchanged := ingestedBooking(t, "OTA-611")

		bookingRepo.On("FindActiveIDs", mock.Anything).Return([]uuid.UUID{promoted.ID, unchanged.ID}, nil)
		bookingRepo.On("FindByID", mock.Anything, promoted.ID).Return(promoted, nil)
		financeRepo.On("FindByBookingID", mock.Anything, promoted.ID).Return(promotedLedger, nil)
		bookingRepo.On("Save", mock.Anything, promoted).Return(nil)
		bookingRepo.On("FindByID", mock.Anything, unchanged.ID).Return(unchanged, nil)
		financeRepo.On("FindByBookingID", mock.Anything, unchanged.ID).Return(nil, shared.ErrNotFound)

		result, err := svc.ResyncAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, result.Checked)
		assert.Equal(t, 1, result.Updated)
	})

	t.Run("a failing booking does not abort the sweep", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		financeRepo := new(MockFinanceRepository)
		svc := NewStatusService(bookingRepo, financeRepo, zap.NewNop())

		broken := uuid.New()
		healthy := ingestedBooking(t, "OTA-612")

		bookingRepo.On("FindActiveIDs", mock.Anything).Return([]uuid.UUID{broken, healthy.ID}, nil)
		bookingRepo.On("FindByID", mock.Anything, broken).Return(nil, errors.New("connection reset"))
		bookingRepo.On("FindByID", mock.Anything, healthy.ID).Return(healthy, nil)
		financeRepo.On("FindByBookingID", mock.Anything, healthy.ID).Return(nil, shared.ErrNotFound)

		result, err := svc.ResyncAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, result.Checked)
		assert.Equal(t, 0, result.Updated)
	})
}
