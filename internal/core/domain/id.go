package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewRecordID builds a time-prefixed record ID, e.g. "cb-1714988112345-1a2b3c4d".
// The embedded millisecond timestamp is what the duplicate-cleanup routine
// orders on, so the scheme is shared by every collection.
func NewRecordID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// IDTimestamp extracts the embedded millisecond timestamp from a record ID.
// IDs without a parseable timestamp segment report ok=false; callers fall
// back to comparing the raw ID string.
func IDTimestamp(id string) (int64, bool) {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return 0, false
	}
	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}

// IDBefore reports whether id a sorts before id b for duplicate retention:
// by embedded timestamp when both have one, lexicographically otherwise.
func IDBefore(a, b string) bool {
	ta, aok := IDTimestamp(a)
	tb, bok := IDTimestamp(b)
	if aok && bok && ta != tb {
		return ta < tb
	}
	return a < b
}
