package service

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"
	"strconv"
)

// NewAttendanceKey draws a 4-digit key in [1000, 9999]. Organisers read it
// out in the room; registrants submit it to prove presence.
func NewAttendanceKey() string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		// crypto/rand failing means the platform is broken anyway
		panic(err)
	}
	return strconv.FormatInt(1000+n.Int64(), 10)
}

// VerifyAttendanceKey compares a submitted key against the stored one in
// constant time. A nil stored key never matches.
func VerifyAttendanceKey(stored *string, candidate string) bool {
	if stored == nil || candidate == "" {
		return false
	}
	if len(*stored) != len(candidate) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*stored), []byte(candidate)) == 1
}
