package types

import "time"

// Activity statuses written by the lock.
const (
	StatusUnlocked        = "Unlocked"
	StatusLocked          = "Locked"
	StatusPasswordCreated = "Password Created"
	StatusPasswordReset   = "Password Reset"
	StatusCardEnrolled    = "Card Enrolled"
	StatusAccessDenied    = "Access Denied"
)

// Date and time layouts of an activity entry (MM-DD-YY, HH:MM:SS).
const (
	ActivityDateLayout = "01-02-06"
	ActivityTimeLayout = "15:04:05"
)

// ActivityEntry is one immutable record of the activity log.
type ActivityEntry struct {
	Status string
	Date   string
	Time   string

	// At is the instant the entry was stamped. Backends that keep only the
	// formatted Date/Time leave it zero on read.
	At time.Time
}

// NewActivityEntry stamps status with the date and time of at.
func NewActivityEntry(status string, at time.Time) ActivityEntry {
	return ActivityEntry{
		Status: status,
		Date:   at.Format(ActivityDateLayout),
		Time:   at.Format(ActivityTimeLayout),
		At:     at,
	}
}
