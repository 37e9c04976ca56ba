package types

import (
	"time"

	"github.com/google/uuid"
)

// SessionID represents a UUIDv7 evaluation-session identifier.
// String alias enables type safety while maintaining JSON string serialization.
// Every Bind() of the function registry stamps the session scope with one, so
// a rule failure record can be correlated to the session that produced it.
type SessionID string

// NewSessionID generates a UUIDv7 session identifier.
// Time-ordered IDs keep session logs naturally sorted.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewSessionID() SessionID {
	return SessionID(uuid.Must(uuid.NewV7()).String())
}

// ParseSessionID validates and converts a string to SessionID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the system.
func ParseSessionID(s string) (SessionID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return SessionID(s), nil
}

// SessionIDTime extracts the timestamp embedded in a UUIDv7 ID.
// Returns zero time for invalid UUIDs; caller should check IsZero().
func SessionIDTime(id SessionID) time.Time {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}
