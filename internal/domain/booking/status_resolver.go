package booking

import "time"

// FinanceFacts is the slice of ledger state the resolver needs. Passing facts
// instead of the aggregate keeps the resolver pure and free of import cycles.
type FinanceFacts struct {
	HasItems        bool
	AllItemsPaid    bool
	Validated       bool
	PatternAssigned bool
}

// ResolveStatus derives the booking status from underlying facts. Rules are
// evaluated in priority order, first match wins. The function is pure and
// deterministic given now; invoking it repeatedly converges to a fixed point.
//
//  1. CANCELLED stays CANCELLED (terminal, external override only)
//  2. NO_SHOW stays NO_SHOW (terminal)
//  3. ledger non-empty and fully paid -> DONE
//  4. finance validated -> COMPLETED
//  5. tour date on or before ops-calendar today -> ATTENTION
//  6. UPDATED stays UPDATED until manually re-reviewed
//  7. driver assigned and pattern set -> READY
//  8. otherwise -> NEW
func ResolveStatus(current Status, facts FinanceFacts, driverAssigned bool, tourDate, now time.Time) Status {
	switch {
	case current == StatusCancelled:
		return StatusCancelled
	case current == StatusNoShow:
		return StatusNoShow
	case facts.HasItems && facts.AllItemsPaid:
		return StatusDone
	case facts.Validated:
		return StatusCompleted
	case OnOrBeforeOpsToday(tourDate, now):
		return StatusAttention
	case current == StatusUpdated:
		return StatusUpdated
	case driverAssigned && facts.PatternAssigned:
		return StatusReady
	default:
		return StatusNew
	}
}

// Resolve applies ResolveStatus to the booking and reports whether the stored
// status changed. Safe to invoke redundantly.
func (b *Booking) Resolve(facts FinanceFacts, now time.Time) bool {
	next := ResolveStatus(b.Status, facts, b.DriverAssigned(), b.TourDate, now)
	return b.SetStatus(next)
}
