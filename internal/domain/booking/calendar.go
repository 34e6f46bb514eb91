package booking

import "time"

// opsZone is the fixed UTC+8 business calendar used for all operational date
// comparisons. Tours run on Bali local days regardless of where the server
// happens to be deployed.
var opsZone = time.FixedZone("UTC+8", 8*60*60)

// OpsDay truncates t to its calendar date in the operations timezone
func OpsDay(t time.Time) time.Time {
	local := t.In(opsZone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, opsZone)
}

// OnOrBeforeOpsToday reports whether tourDate falls on or before "today" in
// the operations calendar, evaluated at now.
func OnOrBeforeOpsToday(tourDate, now time.Time) bool {
	return !OpsDay(tourDate).After(OpsDay(now))
}
