package types

import (
	"time"
)

// IsWithinWindow reports whether d falls inside the validity window
// [from, to]. A nil to means the window is open-ended.
func IsWithinWindow(d, from time.Time, to *time.Time) bool {
	if d.Before(from) {
		return false
	}
	if to != nil && d.After(*to) {
		return false
	}
	return true
}
