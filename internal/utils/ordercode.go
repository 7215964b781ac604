package utils

import (
	"fmt"
	"time"
)

// GenerateOrderCode returns the human-readable order code, ORD- followed by
// the last six digits of the unix millisecond clock.
func GenerateOrderCode(now time.Time) string {
	return fmt.Sprintf("ORD-%06d", now.UnixMilli()%1_000_000)
}
