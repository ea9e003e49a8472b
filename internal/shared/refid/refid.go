// Package refid mints the human-readable reference tokens used for order and
// tracking numbers: a base36 timestamp plus a short random suffix, unique in
// practice without a coordination service.
package refid

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// TimeToken encodes the current unix milliseconds in upper-case base36.
func TimeToken() string {
	return strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
}

// Suffix returns n random upper-case base36 characters.
func Suffix(n int) string {
	var b strings.Builder
	b.Grow(n)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// fall back to a time-derived character rather than panic.
			b.WriteByte(alphabet[time.Now().Nanosecond()%len(alphabet)])
			continue
		}
		b.WriteByte(alphabet[idx.Int64()])
	}
	return b.String()
}
