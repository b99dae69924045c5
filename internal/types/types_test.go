package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fieldhouse/capledger/internal/types"
)

func TestSafeString(t *testing.T) {
	assert.Equal(t, "", types.SafeString(nil))
	assert.Equal(t, "team-a", types.SafeString(types.StringPtr("team-a")))
}

func TestStringNilOrEmpty(t *testing.T) {
	assert.True(t, types.StringNilOrEmpty(nil))
	assert.True(t, types.StringNilOrEmpty(types.StringPtr("")))
	assert.False(t, types.StringNilOrEmpty(types.StringPtr("x")))
}

func TestSameString(t *testing.T) {
	assert.True(t, types.SameString(nil, nil))
	assert.True(t, types.SameString(nil, types.StringPtr("")))
	assert.True(t, types.SameString(types.StringPtr("a"), types.StringPtr("a")))
	assert.False(t, types.SameString(types.StringPtr("a"), types.StringPtr("b")))
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	stamp := time.Date(2030, 7, 15, 2, 30, 0, 0, loc)

	// 02:30 UTC+5 is 21:30 the previous day in UTC
	assert.Equal(t, time.Date(2030, 7, 14, 0, 0, 0, 0, time.UTC), types.DateOf(stamp))

	midnight := time.Date(2030, 7, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, midnight, types.DateOf(midnight))
	assert.Equal(t, midnight, types.DateOf(midnight.Add(23*time.Hour+59*time.Minute)))
}
