package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderNumber generates an order number like ORD-20260115-4F2A91C3:
// the current date plus the first uuid block, uppercased.
func NewOrderNumber(now time.Time) string {
	id := uuid.New().String()
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), strings.ToUpper(id[:8]))
}
