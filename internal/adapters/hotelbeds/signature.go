package hotelbeds

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// signature computes the per-call request signature the supplier expects:
// SHA256(key ++ secret ++ unix seconds). It is recomputed for every request so
// each call is bound to a fresh timestamp; the supplier accepts a tolerance
// window around it.
func signature(key, secret string, at time.Time) string {
	sum := sha256.Sum256([]byte(key + secret + strconv.FormatInt(at.Unix(), 10)))
	return hex.EncodeToString(sum[:])
}
