package services

import (
	"context"
	"testing"
	"time"

	"agencydesk-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var reportNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newReportService(db *gorm.DB) *ReportService {
	svc := NewReportService(db)
	svc.now = func() time.Time { return reportNow }
	return svc
}

// seedEmployee inserts a user without running hooks; report tests do not need
// real password hashes.
func seedEmployee(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	user := models.User{
		ID:         uuid.New(),
		FullName:   name,
		EmployeeID: "EMP-" + uuid.NewString()[:8],
		Username:   "u-" + uuid.NewString()[:8],
		Email:      uuid.NewString()[:8] + "@test.local",
		Password:   "irrelevant",
		Role:       models.RoleEmployee,
	}
	require.NoError(t, db.Session(&gorm.Session{SkipHooks: true}).Create(&user).Error)
	return user
}

type seedRequest struct {
	amount     float64
	status     models.RequestStatus
	assignedTo *uuid.UUID
}

func seedCustomer(t *testing.T, db *gorm.DB, ownerID uuid.UUID, paid, due float64, delivery time.Time, requests ...seedRequest) models.Customer {
	t.Helper()

	var selected []models.ServiceRequest
	var total float64
	for _, r := range requests {
		total += r.amount
		selected = append(selected, models.ServiceRequest{
			ServiceID:     uuid.New(),
			ServiceName:   "Test Service",
			ServiceAmount: r.amount,
			ServiceStatus: r.status,
			AssignedTo:    r.assignedTo,
		})
	}

	customer := models.Customer{
		UserID:           ownerID,
		CustomerID:       "CUST-" + uuid.NewString()[:8],
		FullName:         "Test Customer",
		MobileNumber:     "+919876543210",
		TotalAmount:      total,
		PaidAmount:       paid,
		DueAmount:        due,
		DeliveryDate:     &delivery,
		SelectedServices: selected,
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func TestDashboardSpecExample(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)
	owner := uuid.New()
	emp := seedEmployee(t, db, "Asha Patel")

	seedCustomer(t, db, owner, 1000, 500, reportNow.AddDate(0, 0, -1),
		seedRequest{amount: 300, status: models.StatusCompleted, assignedTo: &emp.ID},
		seedRequest{amount: 200, status: models.StatusPending, assignedTo: &emp.ID},
	)

	report, err := svc.Dashboard(context.Background(), owner, "life", nil)
	require.NoError(t, err)

	assert.Equal(t, 500.0, report.OverallStats.TotalRevenue)
	assert.Equal(t, 1000.0, report.OverallStats.TotalPaid)
	assert.Equal(t, 500.0, report.OverallStats.TotalDue)
	assert.Equal(t, 1, report.OverallStats.TotalCustomers)

	counts := make(map[models.RequestStatus]int)
	for _, s := range report.ServiceStats {
		counts[s.ServiceStatus] = s.Count
	}
	assert.Equal(t, map[models.RequestStatus]int{
		models.StatusCompleted: 1,
		models.StatusPending:   1,
	}, counts)

	require.Len(t, report.EmployeeStats, 1)
	stat := report.EmployeeStats[0]
	require.NotNil(t, stat.EmployeeID)
	assert.Equal(t, emp.ID, *stat.EmployeeID)
	assert.Equal(t, "Asha Patel", stat.Name)
	assert.Equal(t, 500.0, stat.Revenue)
	assert.Equal(t, 2, stat.Services)
	assert.Equal(t, 50.0, stat.CompletedPercent)
	assert.Equal(t, 1, stat.CustomersCompleted)

	require.Len(t, report.RevenueTrend, 1)
	assert.Equal(t, "2024", report.RevenueTrend[0].Date)
	assert.Equal(t, 500.0, report.RevenueTrend[0].Revenue)
}

func TestDashboardEmptyScope(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)

	report, err := svc.Dashboard(context.Background(), uuid.New(), "1m", nil)
	require.NoError(t, err)

	assert.Equal(t, OverallStats{}, report.OverallStats)
	assert.Empty(t, report.ServiceStats)
	assert.Empty(t, report.EmployeeStats)
	assert.Empty(t, report.RevenueTrend)
	assert.NotNil(t, report.ServiceStats)
	assert.NotNil(t, report.EmployeeStats)
	assert.NotNil(t, report.RevenueTrend)
}

func TestDashboardPaidDueCountedOncePerCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)
	owner := uuid.New()

	// Three requests on one customer: paid/due must not triple.
	seedCustomer(t, db, owner, 900, 100, reportNow.AddDate(0, 0, -1),
		seedRequest{amount: 400, status: models.StatusPending},
		seedRequest{amount: 300, status: models.StatusPending},
		seedRequest{amount: 300, status: models.StatusPending},
	)

	report, err := svc.Dashboard(context.Background(), owner, "life", nil)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, report.OverallStats.TotalRevenue)
	assert.Equal(t, 900.0, report.OverallStats.TotalPaid)
	assert.Equal(t, 100.0, report.OverallStats.TotalDue)
	assert.Equal(t, 1, report.OverallStats.TotalCustomers)
}

func TestDashboardTenantIsolation(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)
	ownerA := uuid.New()
	ownerB := uuid.New()

	seedCustomer(t, db, ownerA, 100, 0, reportNow.AddDate(0, 0, -1),
		seedRequest{amount: 100, status: models.StatusCompleted})
	seedCustomer(t, db, ownerB, 999, 999, reportNow.AddDate(0, 0, -1),
		seedRequest{amount: 999, status: models.StatusPending})

	report, err := svc.Dashboard(context.Background(), ownerA, "life", nil)
	require.NoError(t, err)

	assert.Equal(t, 100.0, report.OverallStats.TotalRevenue)
	assert.Equal(t, 1, report.OverallStats.TotalCustomers)
	require.Len(t, report.ServiceStats, 1)
	assert.Equal(t, models.StatusCompleted, report.ServiceStats[0].ServiceStatus)
}

func TestDashboardEmployeeFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)
	owner := uuid.New()
	empA := seedEmployee(t, db, "A")
	empB := seedEmployee(t, db, "B")

	seedCustomer(t, db, owner, 500, 0, reportNow.AddDate(0, 0, -1),
		seedRequest{amount: 300, status: models.StatusCompleted, assignedTo: &empA.ID},
		seedRequest{amount: 200, status: models.StatusPending, assignedTo: &empB.ID},
	)

	report, err := svc.Dashboard(context.Background(), owner, "life", &empA.ID)
	require.NoError(t, err)

	assert.Equal(t, 300.0, report.OverallStats.TotalRevenue)
	assert.Equal(t, 1, report.OverallStats.TotalCustomers)
	require.Len(t, report.EmployeeStats, 1)
	assert.Equal(t, "A", report.EmployeeStats[0].Name)
	require.Len(t, report.ServiceStats, 1)
	assert.Equal(t, models.StatusCompleted, report.ServiceStats[0].ServiceStatus)
}

func TestDashboardUnknownEmployeeYieldsEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)
	owner := uuid.New()

	seedCustomer(t, db, owner, 500, 0, reportNow.AddDate(0, 0, -1),
		seedRequest{amount: 500, status: models.StatusPending})

	ghost := uuid.New()
	report, err := svc.Dashboard(context.Background(), owner, "life", &ghost)
	require.NoError(t, err)

	assert.Equal(t, OverallStats{}, report.OverallStats)
	assert.Empty(t, report.ServiceStats)
	assert.Empty(t, report.EmployeeStats)
	assert.Empty(t, report.RevenueTrend)
}

func TestDashboardUnassignedRequestsKept(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)
	owner := uuid.New()

	seedCustomer(t, db, owner, 0, 0, reportNow.AddDate(0, 0, -1),
		seedRequest{amount: 250, status: models.StatusPending, assignedTo: nil})

	report, err := svc.Dashboard(context.Background(), owner, "life", nil)
	require.NoError(t, err)

	require.Len(t, report.EmployeeStats, 1)
	stat := report.EmployeeStats[0]
	assert.Nil(t, stat.EmployeeID)
	assert.Empty(t, stat.Name)
	assert.Equal(t, 250.0, stat.Revenue)
	assert.Equal(t, 1, stat.Services)
	assert.Equal(t, 0.0, stat.CompletedPercent)
}

func TestDashboardRangeFallback(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)
	owner := uuid.New()

	seedCustomer(t, db, owner, 100, 0, reportNow.AddDate(0, 0, -2),
		seedRequest{amount: 100, status: models.StatusPending})

	fromBogus, err := svc.Dashboard(context.Background(), owner, "bogus", nil)
	require.NoError(t, err)
	fromDefault, err := svc.Dashboard(context.Background(), owner, "7d", nil)
	require.NoError(t, err)

	assert.Equal(t, fromDefault, fromBogus)
}

func TestDashboardRevenueTrendWindowAndBuckets(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)
	owner := uuid.New()

	// Inside the 1y window, different months.
	seedCustomer(t, db, owner, 0, 0, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		seedRequest{amount: 100, status: models.StatusPending})
	seedCustomer(t, db, owner, 0, 0, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		seedRequest{amount: 150, status: models.StatusPending})
	seedCustomer(t, db, owner, 0, 0, time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC),
		seedRequest{amount: 50, status: models.StatusPending})
	// Two years back: outside the window, excluded from the trend but still
	// counted in the other views.
	seedCustomer(t, db, owner, 0, 0, time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC),
		seedRequest{amount: 999, status: models.StatusPending})

	report, err := svc.Dashboard(context.Background(), owner, "1y", nil)
	require.NoError(t, err)

	require.Len(t, report.RevenueTrend, 2)
	assert.Equal(t, TrendPoint{Date: "2024-02", Revenue: 100}, report.RevenueTrend[0])
	assert.Equal(t, TrendPoint{Date: "2024-05", Revenue: 200}, report.RevenueTrend[1])

	assert.Equal(t, 1299.0, report.OverallStats.TotalRevenue)
}

func TestDashboardWeeklyBuckets(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)
	owner := uuid.New()

	// Sunday June 2 2024 opens a new week; June 6 is inside it, June 9 opens
	// the next.
	seedCustomer(t, db, owner, 0, 0, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		seedRequest{amount: 10, status: models.StatusPending})
	seedCustomer(t, db, owner, 0, 0, time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC),
		seedRequest{amount: 20, status: models.StatusPending})
	seedCustomer(t, db, owner, 0, 0, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		seedRequest{amount: 40, status: models.StatusPending})

	report, err := svc.Dashboard(context.Background(), owner, "1m", nil)
	require.NoError(t, err)

	require.Len(t, report.RevenueTrend, 2)
	assert.Equal(t, 30.0, report.RevenueTrend[0].Revenue)
	assert.Equal(t, 40.0, report.RevenueTrend[1].Revenue)
	assert.Less(t, report.RevenueTrend[0].Date, report.RevenueTrend[1].Date)
}

func TestDashboardDeletedCustomersExcluded(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(db)
	owner := uuid.New()

	seedCustomer(t, db, owner, 100, 0, reportNow.AddDate(0, 0, -1),
		seedRequest{amount: 100, status: models.StatusPending})
	gone := seedCustomer(t, db, owner, 900, 0, reportNow.AddDate(0, 0, -1),
		seedRequest{amount: 900, status: models.StatusPending})
	require.NoError(t, db.Delete(&gone).Error)

	report, err := svc.Dashboard(context.Background(), owner, "life", nil)
	require.NoError(t, err)

	assert.Equal(t, 100.0, report.OverallStats.TotalRevenue)
	assert.Equal(t, 1, report.OverallStats.TotalCustomers)
}
