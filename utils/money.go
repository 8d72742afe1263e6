package utils

import (
	"strconv"
	"strings"
)

// FormatBRL formats an integer amount in centavos as a string like
// "R$ 1.234,56". Uses dot as thousands separator and comma before the cents
// (Brazilian convention).
func FormatBRL(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}

	reais := cents / 100
	rem := cents % 100

	s := strconv.FormatInt(reais, 10)

	var b strings.Builder
	// Pre-allocate: digits + separators + prefix + cents
	b.Grow(len(s) + len(s)/3 + 8)
	if neg {
		b.WriteString("-R$ ")
	} else {
		b.WriteString("R$ ")
	}

	// Insert thousands separators from the left.
	first := len(s) % 3
	if first == 0 {
		first = 3
	}
	b.WriteString(s[:first])
	for i := first; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}

	b.WriteByte(',')
	if rem < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(rem, 10))

	return b.String()
}
