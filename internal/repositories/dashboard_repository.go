package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbm "seraphina/internal/models/db_models"
)

type DashboardRepository interface {
	// KPIs / counts
	CountTotalUsers(ctx context.Context) (int64, error)
	CountNewUsers(ctx context.Context, start, end time.Time) (int64, error)
	UsersByVerification(ctx context.Context) ([]StatusCount, error)
	PlansByStatus(ctx context.Context) ([]StatusCount, error)
	CountActivePurchases(ctx context.Context) (int64, decimal.Decimal, error)

	// Plan mix (active plans per tier)
	PlanMix(ctx context.Context) ([]PlanMixRow, error)

	// Ledger
	LedgerTotals(ctx context.Context, start, end time.Time) ([]LedgerTotalRow, error)
	RevenueSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error)
	RecentTransactions(ctx context.Context, limit int) ([]RecentTransactionRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type BucketSum struct {
	Bucket time.Time       `gorm:"column:bucket"`
	Sum    decimal.Decimal `gorm:"column:sum"`
}

type StatusCount struct {
	Status string `gorm:"column:status"`
	Count  int64  `gorm:"column:count"`
}

type PlanMixRow struct {
	Tier  string          `gorm:"column:tier"`
	Count int64           `gorm:"column:count"`
	Total decimal.Decimal `gorm:"column:total"`
}

type LedgerTotalRow struct {
	Type  string          `gorm:"column:type"`
	Count int64           `gorm:"column:count"`
	Total decimal.Decimal `gorm:"column:total"`
}

type RecentTransactionRow struct {
	TransactionID string          `gorm:"column:transaction_id"`
	CreatedAt     int64           `gorm:"column:created_at"`
	Amount        decimal.Decimal `gorm:"column:amount"`
	Type          string          `gorm:"column:type"`
	Status        string          `gorm:"column:status"`
	Description   string          `gorm:"column:description"`
	Phone         string          `gorm:"column:phone"`
}

var revenueTypes = []dbm.TransactionType{dbm.TxnTypePlanPurchase, dbm.TxnTypePlanUpgrade, dbm.TxnTypePlanRenewal}

// ---------- Helpers ----------
func dateTrunc(tz string, nanosColumn string) string {
	// BaseModel timestamps are unix nanoseconds.
	// Example: date_trunc('day', timezone('Asia/Kolkata', to_timestamp(created_at / 1e9)))
	if tz == "" {
		return "date_trunc(?, to_timestamp(" + nanosColumn + " / 1e9))"
	}
	return "date_trunc(?, timezone(?, to_timestamp(" + nanosColumn + " / 1e9)))"
}

// ---------- Counts ----------
func (r *dashboardRepository) CountTotalUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.User{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountNewUsers(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.User{}).
		Where("created_at BETWEEN ? AND ?", start.UnixNano(), end.UnixNano()).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) UsersByVerification(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Model(&dbm.User{}).
		Select("admin_verified AS status, COUNT(*) AS count").
		Group("admin_verified").
		Order("admin_verified").
		Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) PlansByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Model(&dbm.Plan{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) CountActivePurchases(ctx context.Context) (int64, decimal.Decimal, error) {
	var row struct {
		Count int64           `gorm:"column:count"`
		Total decimal.Decimal `gorm:"column:total"`
	}
	err := r.db.WithContext(ctx).
		Model(&dbm.InvestmentPurchase{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Where("status = ?", dbm.PurchaseActive).
		Scan(&row).Error
	return row.Count, row.Total, err
}

// ---------- Plan mix ----------
func (r *dashboardRepository) PlanMix(ctx context.Context) ([]PlanMixRow, error) {
	var rows []PlanMixRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Plan{}).
		Select("service_choice AS tier, COUNT(*) AS count, COALESCE(SUM(total_price), 0) AS total").
		Where("status = ?", dbm.PlanStatusActive).
		Group("service_choice").
		Order("count DESC").
		Find(&rows).Error
	return rows, err
}

// ---------- Ledger ----------
func (r *dashboardRepository) LedgerTotals(ctx context.Context, start, end time.Time) ([]LedgerTotalRow, error) {
	var rows []LedgerTotalRow
	err := r.db.WithContext(ctx).
		Model(&dbm.Transaction{}).
		Select("type, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Where("status = ?", dbm.TxnStatusSuccess).
		Where("created_at BETWEEN ? AND ?", start.UnixNano(), end.UnixNano()).
		Group("type").
		Order("type").
		Find(&rows).Error
	return rows, err
}

// RevenueSeries buckets plan revenue with postgres date_trunc.
func (r *dashboardRepository) RevenueSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	var rows []BucketSum
	truncExpr := dateTrunc(tz, "created_at")
	args := []interface{}{interval}
	if tz != "" {
		args = append(args, tz)
	}
	err := r.db.WithContext(ctx).
		Table("transactions").
		Select(truncExpr+" AS bucket, SUM(amount) AS sum", args...).
		Where("status = ?", dbm.TxnStatusSuccess).
		Where("type IN ?", revenueTypes).
		Where("created_at BETWEEN ? AND ?", start.UnixNano(), end.UnixNano()).
		Where("deleted_at IS NULL").
		Group("bucket").
		Order("bucket ASC").
		Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) RecentTransactions(ctx context.Context, limit int) ([]RecentTransactionRow, error) {
	var rows []RecentTransactionRow
	// Join users for phone
	err := r.db.WithContext(ctx).
		Table("transactions t").
		Select(`
			t.transaction_id,
			t.created_at,
			t.amount,
			t.type,
			t.status,
			t.description,
			u.phone`).
		Joins("LEFT JOIN users u ON u.id = t.user_id").
		Where("t.deleted_at IS NULL").
		Order("t.created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
