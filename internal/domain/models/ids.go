package models

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh random (v4) identifier for a locally generated primary key.
// User ids are never generated here; they come from the identity provider.
func NewID() string {
	return uuid.NewString()
}

// Now returns the current time in canonical timestamp form: UTC, truncated to
// microseconds so values survive a Postgres timestamptz round trip unchanged.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NextTimestamp returns Now, or prev plus one microsecond when the clock has not
// moved past prev. Used to keep updated_at and message order strictly increasing.
func NextTimestamp(prev time.Time) time.Time {
	now := Now()
	if !now.After(prev) {
		return prev.UTC().Add(time.Microsecond)
	}
	return now
}
