package usecase

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// NewQuoteNumber formats GE + YYYYMMDD + a zero-padded suffix in [0,999].
// Uniqueness is not checked; collisions surface as storage errors.
func NewQuoteNumber(now time.Time, suffix func(n int) int) string {
	if suffix == nil {
		suffix = rand.IntN
	}
	return fmt.Sprintf("GE%s%03d", now.Format("20060102"), suffix(1000))
}
