package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"agencydesk-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Single connection keeps the in-memory database alive and serializes
	// concurrent statements the way the production pool does.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.ServiceRequest{},
		&models.Service{},
		&models.Counter{},
		&models.ReminderLog{},
	))
	return db
}

func TestAllocatorSequentialMonotonic(t *testing.T) {
	allocator := NewIDAllocator(newTestDB(t))
	ctx := context.Background()

	first, err := allocator.Next(ctx, NamespaceCustomerID)
	require.NoError(t, err)
	second, err := allocator.Next(ctx, NamespaceCustomerID)
	require.NoError(t, err)
	third, err := allocator.Next(ctx, NamespaceCustomerID)
	require.NoError(t, err)

	assert.Equal(t, "CUST-0001", first)
	assert.Equal(t, "CUST-0002", second)
	assert.Equal(t, "CUST-0003", third)
}

func TestAllocatorPadding(t *testing.T) {
	db := newTestDB(t)
	allocator := NewIDAllocator(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Counter{Name: NamespaceServiceID, Value: 6}).Error)
	id, err := allocator.Next(ctx, NamespaceServiceID)
	require.NoError(t, err)
	assert.Equal(t, "SRV-0007", id)

	// Past four digits the ID grows without truncation.
	require.NoError(t, db.Model(&models.Counter{}).
		Where("name = ?", NamespaceServiceID).
		Update("value", 10041).Error)
	id, err = allocator.Next(ctx, NamespaceServiceID)
	require.NoError(t, err)
	assert.Equal(t, "SRV-10042", id)
}

func TestAllocatorNamespacesIndependent(t *testing.T) {
	allocator := NewIDAllocator(newTestDB(t))
	ctx := context.Background()

	cust, err := allocator.Next(ctx, NamespaceCustomerID)
	require.NoError(t, err)
	srv, err := allocator.Next(ctx, NamespaceServiceID)
	require.NoError(t, err)

	assert.Equal(t, "CUST-0001", cust)
	assert.Equal(t, "SRV-0001", srv)
}

func TestAllocatorUnknownNamespace(t *testing.T) {
	allocator := NewIDAllocator(newTestDB(t))

	_, err := allocator.Next(context.Background(), "invoiceId")
	assert.Error(t, err)
}

func TestAllocatorConcurrentUnique(t *testing.T) {
	allocator := NewIDAllocator(newTestDB(t))
	ctx := context.Background()

	const workers = 25
	var wg sync.WaitGroup
	results := make(chan string, workers)
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := allocator.Next(ctx, NamespaceCustomerID)
			if err != nil {
				errs <- err
				return
			}
			results <- id
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("allocate failed: %v", err)
	}

	var ids []string
	seen := make(map[string]bool)
	for id := range results {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		ids = append(ids, id)
	}
	require.Len(t, ids, workers)

	// The issued values form a contiguous run starting at 1.
	sort.Strings(ids)
	for i, id := range ids {
		assert.Equal(t, fmt.Sprintf("CUST-%04d", i+1), id)
	}
}
