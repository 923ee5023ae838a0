package models

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ConfirmationCode builds a booking reference: the first three letters of the
// booking type, the last six digits of the millisecond clock and three random
// base36 characters, e.g. HOT482913K2Q.
func ConfirmationCode(t BookingType, now time.Time) string {
	prefix := strings.ToUpper(string(t))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	ms := fmt.Sprintf("%06d", now.UnixMilli()%1_000_000)
	return prefix + ms + randomBase36(3)
}

// PlanCode is the user-facing trip confirmation, e.g. GG7K2QX9.
func PlanCode() string {
	return "GG" + randomBase36(6)
}

func randomBase36(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[rand.IntN(len(base36))]
	}
	return string(b)
}
