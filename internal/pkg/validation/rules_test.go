package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseWeekday(t *testing.T) {
	d, ok := ParseWeekday(" Saturday ")
	assert.True(t, ok)
	assert.Equal(t, time.Saturday, d)

	_, ok = ParseWeekday("someday")
	assert.False(t, ok)
}

func TestIsClock(t *testing.T) {
	for _, s := range []string{"00:00", "09:30", "16:00", "23:59"} {
		assert.True(t, IsClock(s), s)
	}
	for _, s := range []string{"24:00", "9:30", "12:60", "noon", ""} {
		assert.False(t, IsClock(s), s)
	}
}

func TestIsPhone(t *testing.T) {
	assert.True(t, IsPhone("01012345678"))
	assert.True(t, IsPhone("+20 101 234 5678"))
	assert.True(t, IsPhone("(010) 1234-5678"))
	assert.False(t, IsPhone("abc"))
	assert.False(t, IsPhone("12"))
}

func TestIsWeekday(t *testing.T) {
	assert.True(t, IsWeekday("Tuesday"))
	assert.False(t, IsWeekday("tues"))
}
