// services/id_allocator.go
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrStorageUnavailable wraps any persistence failure surfaced by the core
// services. Handlers map it to a 5xx.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Namespaces for sequential IDs. Closed set; each owns one counter row.
const (
	NamespaceCustomerID = "customerId"
	NamespaceServiceID  = "serviceId"
)

var namespacePrefixes = map[string]string{
	NamespaceCustomerID: "CUST",
	NamespaceServiceID:  "SRV",
}

// IDAllocator issues monotonically increasing human-readable IDs backed by a
// shared counter row per namespace.
type IDAllocator struct {
	db *gorm.DB
}

func NewIDAllocator(db *gorm.DB) *IDAllocator {
	return &IDAllocator{db: db}
}

// Next increments the namespace counter and returns the formatted ID. The
// increment is a single upsert statement so concurrent callers can never
// observe the same value; a read-then-write here would reintroduce the
// duplicate-ID race the counter exists to prevent.
func (a *IDAllocator) Next(ctx context.Context, namespace string) (string, error) {
	prefix, ok := namespacePrefixes[namespace]
	if !ok {
		return "", fmt.Errorf("unknown id namespace: %s", namespace)
	}

	var value int64
	err := a.db.WithContext(ctx).Raw(`
		INSERT INTO counters (name, value) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value
	`, namespace).Scan(&value).Error
	if err != nil {
		return "", fmt.Errorf("%w: increment counter %s: %v", ErrStorageUnavailable, namespace, err)
	}

	// Padding is cosmetic; past 9999 the ID simply grows.
	return fmt.Sprintf("%s-%04d", prefix, value), nil
}
