package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns a deterministic seed for a date key using
// HMAC(salt, key). Hosts sharing a salt deal the same sequence all day.
func Seed(dateKey, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dateKey))
	sum := h.Sum(nil)
	// first 8 bytes to uint64, sign bit cleared for a non-negative seed
	n := binary.BigEndian.Uint64(sum[:8]) &^ (1 << 63)
	return int64(n)
}
