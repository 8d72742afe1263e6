package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	n := NewOrderNumber(now)
	assert.Regexp(t, regexp.MustCompile(`^ORD-20260115-[0-9A-F]{8}$`), n)

	// Two order numbers for the same instant must not collide.
	assert.NotEqual(t, n, NewOrderNumber(now))
}
