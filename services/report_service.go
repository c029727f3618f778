// services/report_service.go
package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"agencydesk-backend/models"
	"agencydesk-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OverallStats struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalPaid      float64 `json:"totalPaid"`
	TotalDue       float64 `json:"totalDue"`
	TotalCustomers int     `json:"totalCustomers"`
}

type ServiceStat struct {
	ServiceStatus models.RequestStatus `json:"serviceStatus"`
	Count         int                  `json:"count"`
}

type EmployeeStat struct {
	EmployeeID         *uuid.UUID `json:"employeeId"`
	Name               string     `json:"name"`
	Revenue            float64    `json:"revenue"`
	Services           int        `json:"services"`
	CompletedPercent   float64    `json:"completedPercent"`
	CustomersCompleted int        `json:"customersCompleted"`
}

type TrendPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type DashboardReport struct {
	OverallStats  OverallStats   `json:"overallStats"`
	ServiceStats  []ServiceStat  `json:"serviceStats"`
	EmployeeStats []EmployeeStat `json:"employeeStats"`
	RevenueTrend  []TrendPoint   `json:"revenueTrend"`
}

// ReportService computes the dashboard statistics by fanning each customer's
// service requests out to one row per request, then filtering and grouping.
// All queries are scoped to the owning user.
type ReportService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db, now: time.Now}
}

// Dashboard computes the four dashboard views for one owner, range and
// employee filter. A nil employee filter means all employees. The four views
// run as independent queries; a write landing between them may show up in one
// and not another, which is accepted.
func (s *ReportService) Dashboard(ctx context.Context, ownerID uuid.UUID, rangeSel string, employee *uuid.UUID) (*DashboardReport, error) {
	rangeSel = utils.NormalizeRange(rangeSel)

	report := &DashboardReport{
		ServiceStats:  []ServiceStat{},
		EmployeeStats: []EmployeeStat{},
		RevenueTrend:  []TrendPoint{},
	}

	if err := s.overallStats(ctx, ownerID, employee, &report.OverallStats); err != nil {
		return nil, err
	}
	if err := s.serviceStats(ctx, ownerID, employee, &report.ServiceStats); err != nil {
		return nil, err
	}
	if err := s.employeeStats(ctx, ownerID, employee, &report.EmployeeStats); err != nil {
		return nil, err
	}
	if err := s.revenueTrend(ctx, ownerID, rangeSel, employee, &report.RevenueTrend); err != nil {
		return nil, err
	}

	return report, nil
}

// requestRows is the base fan-out: one row per service request, joined to its
// live parent customer.
func (s *ReportService) requestRows(ctx context.Context, ownerID uuid.UUID, employee *uuid.UUID) *gorm.DB {
	q := s.db.WithContext(ctx).
		Table("customer_services AS sr").
		Joins("JOIN customers c ON c.id = sr.customer_ref AND c.deleted_at IS NULL").
		Where("c.user_id = ?", ownerID)
	if employee != nil {
		q = q.Where("sr.assigned_to = ?", *employee)
	}
	return q
}

func (s *ReportService) overallStats(ctx context.Context, ownerID uuid.UUID, employee *uuid.UUID, out *OverallStats) error {
	var revenue struct {
		TotalRevenue   float64
		TotalCustomers int
	}
	err := s.requestRows(ctx, ownerID, employee).
		Select("COALESCE(SUM(sr.service_amount), 0) AS total_revenue, COUNT(DISTINCT c.id) AS total_customers").
		Scan(&revenue).Error
	if err != nil {
		return fmt.Errorf("%w: overall revenue: %v", ErrStorageUnavailable, err)
	}

	// Paid/due are customer-level amounts, summed once per distinct customer
	// with at least one matching request, not once per fanned-out row.
	exists := s.db.Table("customer_services AS sr").
		Select("1").
		Where("sr.customer_ref = c.id")
	if employee != nil {
		exists = exists.Where("sr.assigned_to = ?", *employee)
	}

	var paid struct {
		TotalPaid float64
		TotalDue  float64
	}
	err = s.db.WithContext(ctx).
		Table("customers c").
		Select("COALESCE(SUM(c.paid_amount), 0) AS total_paid, COALESCE(SUM(c.due_amount), 0) AS total_due").
		Where("c.user_id = ? AND c.deleted_at IS NULL", ownerID).
		Where("EXISTS (?)", exists).
		Scan(&paid).Error
	if err != nil {
		return fmt.Errorf("%w: overall paid/due: %v", ErrStorageUnavailable, err)
	}

	out.TotalRevenue = revenue.TotalRevenue
	out.TotalCustomers = revenue.TotalCustomers
	out.TotalPaid = paid.TotalPaid
	out.TotalDue = paid.TotalDue
	return nil
}

func (s *ReportService) serviceStats(ctx context.Context, ownerID uuid.UUID, employee *uuid.UUID, out *[]ServiceStat) error {
	var stats []ServiceStat
	err := s.requestRows(ctx, ownerID, employee).
		Select("sr.service_status AS service_status, COUNT(*) AS count").
		Group("sr.service_status").
		Order("sr.service_status").
		Scan(&stats).Error
	if err != nil {
		return fmt.Errorf("%w: service stats: %v", ErrStorageUnavailable, err)
	}
	if stats != nil {
		*out = stats
	}
	return nil
}

func (s *ReportService) employeeStats(ctx context.Context, ownerID uuid.UUID, employee *uuid.UUID, out *[]EmployeeStat) error {
	var rows []struct {
		EmployeeID         *uuid.UUID
		Name               *string
		Revenue            float64
		Services           int
		CompletedCount     int
		CustomersCompleted int
	}
	// Left join keeps requests whose assignee is missing or deleted; they are
	// reported with an empty name rather than dropped.
	err := s.requestRows(ctx, ownerID, employee).
		Joins("LEFT JOIN users u ON u.id = sr.assigned_to").
		Select(`sr.assigned_to AS employee_id,
			u.full_name AS name,
			COALESCE(SUM(sr.service_amount), 0) AS revenue,
			COUNT(*) AS services,
			SUM(CASE WHEN sr.service_status = ? THEN 1 ELSE 0 END) AS completed_count,
			COUNT(DISTINCT CASE WHEN sr.service_status = ? THEN c.id END) AS customers_completed`,
			models.StatusCompleted, models.StatusCompleted).
		Group("sr.assigned_to, u.full_name").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("%w: employee stats: %v", ErrStorageUnavailable, err)
	}

	stats := make([]EmployeeStat, 0, len(rows))
	for _, r := range rows {
		stat := EmployeeStat{
			EmployeeID:         r.EmployeeID,
			Revenue:            r.Revenue,
			Services:           r.Services,
			CustomersCompleted: r.CustomersCompleted,
		}
		if r.Name != nil {
			stat.Name = *r.Name
		}
		if r.Services > 0 {
			stat.CompletedPercent = 100 * float64(r.CompletedCount) / float64(r.Services)
		}
		stats = append(stats, stat)
	}
	*out = stats
	return nil
}

func (s *ReportService) revenueTrend(ctx context.Context, ownerID uuid.UUID, rangeSel string, employee *uuid.UUID, out *[]TrendPoint) error {
	now := s.now()
	windowStart := utils.RangeWindowStart(rangeSel, now)

	var rows []struct {
		Amount       float64
		DeliveryDate time.Time
	}
	err := s.requestRows(ctx, ownerID, employee).
		Select("sr.service_amount AS amount, c.delivery_date AS delivery_date").
		Where("c.delivery_date IS NOT NULL AND c.delivery_date BETWEEN ? AND ?", windowStart, now).
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("%w: revenue trend: %v", ErrStorageUnavailable, err)
	}

	buckets := make(map[string]float64, len(rows))
	for _, r := range rows {
		buckets[utils.BucketKey(rangeSel, r.DeliveryDate)] += r.Amount
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	trend := make([]TrendPoint, 0, len(keys))
	for _, k := range keys {
		trend = append(trend, TrendPoint{Date: k, Revenue: buckets[k]})
	}
	*out = trend
	return nil
}
