package booking

// Status represents the single authoritative booking lifecycle status.
// It is derived by the resolver from ledger + driver + date facts; only the
// terminal overrides CANCELLED and NO_SHOW are set directly by an external
// actor.
type Status string

const (
	StatusNew       Status = "NEW"       // freshly ingested, nothing assigned
	StatusReady     Status = "READY"     // driver assigned and pattern set
	StatusAttention Status = "ATTENTION" // tour date reached without completion
	StatusUpdated   Status = "UPDATED"   // change event received, needs re-review
	StatusCompleted Status = "COMPLETED" // finance validated
	StatusDone      Status = "DONE"      // all ledger items paid
	StatusCancelled Status = "CANCELLED" // terminal
	StatusNoShow    Status = "NO_SHOW"   // terminal
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusReady, StatusAttention, StatusUpdated,
		StatusCompleted, StatusDone, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if the status can never be left by the resolver
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusNoShow
}

// IsActive returns true for statuses where settlement flags may still move
func (s Status) IsActive() bool {
	return s.IsValid() && !s.IsTerminal()
}
