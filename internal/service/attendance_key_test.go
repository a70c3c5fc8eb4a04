package service

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAttendanceKey_FourDigits(t *testing.T) {
	for i := 0; i < 200; i++ {
		key := NewAttendanceKey()

		assert.Len(t, key, 4)
		n, err := strconv.Atoi(key)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1000)
		assert.LessOrEqual(t, n, 9999)
	}
}

func TestVerifyAttendanceKey_Match(t *testing.T) {
	stored := "1234"
	assert.True(t, VerifyAttendanceKey(&stored, "1234"))
}

func TestVerifyAttendanceKey_Mismatch(t *testing.T) {
	stored := "1234"
	assert.False(t, VerifyAttendanceKey(&stored, "4321"))
	assert.False(t, VerifyAttendanceKey(&stored, "123"))
	assert.False(t, VerifyAttendanceKey(&stored, "12345"))
	assert.False(t, VerifyAttendanceKey(&stored, ""))
}

func TestVerifyAttendanceKey_NoStoredKey(t *testing.T) {
	assert.False(t, VerifyAttendanceKey(nil, "1234"))
}

func TestAttendanceRate(t *testing.T) {
	assert.Equal(t, 0, attendanceRate(0, 0))
	assert.Equal(t, 0, attendanceRate(0, 10))
	assert.Equal(t, 50, attendanceRate(1, 2))
	assert.Equal(t, 33, attendanceRate(1, 3))
	assert.Equal(t, 67, attendanceRate(2, 3))
	assert.Equal(t, 100, attendanceRate(5, 5))
}
