package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitala/gitala_branch/internal/core/domain"
)

func TestNewRecordID(t *testing.T) {
	id := domain.NewRecordID("cb")

	assert.True(t, strings.HasPrefix(id, "cb-"))
	ts, ok := domain.IDTimestamp(id)
	assert.True(t, ok)
	assert.Greater(t, ts, int64(0))
}

func TestIDTimestamp_Unparseable(t *testing.T) {
	_, ok := domain.IDTimestamp("legacy_id_without_timestamp")
	assert.False(t, ok)

	_, ok = domain.IDTimestamp("cb-notanumber-abc")
	assert.False(t, ok)
}

func TestIDBefore(t *testing.T) {
	assert.True(t, domain.IDBefore("cb-1000-zzzz", "cb-2000-aaaa"))
	assert.False(t, domain.IDBefore("cb-2000-aaaa", "cb-1000-zzzz"))

	// Falls back to lexicographic order when a timestamp is missing.
	assert.True(t, domain.IDBefore("abc", "abd"))
	assert.True(t, domain.IDBefore("cb-x-1", "cb-y-1"))
}
