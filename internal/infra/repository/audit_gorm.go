package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

type AuditGormStore struct {
	db *gorm.DB
}

func NewAuditGormStore(db *gorm.DB) *AuditGormStore {
	return &AuditGormStore{db: db}
}

func (s *AuditGormStore) AppendAudit(ctx context.Context, l *models.AuditLog) error {
	return translate("insert_audit_log", "audit_log", "", s.db.WithContext(ctx).Create(l).Error)
}

func (s *AuditGormStore) ListAudit(
	ctx context.Context,
	f audit.Filter,
) ([]models.AuditLog, int64, error) {

	// --------------------------------------------------
	// Base query, optional filters
	// --------------------------------------------------

	q := s.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.CompanyID != "" {
		q = q.Where("company_id = ?", f.CompanyID)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate("count_audit_logs", "audit_log", "", err)
	}

	logs := []models.AuditLog{}
	q = q.Order("created_at DESC").Offset(f.Offset)
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if err := q.Find(&logs).Error; err != nil {
		return nil, 0, translate("list_audit_logs", "audit_log", "", err)
	}

	return logs, total, nil
}

// Compile-time check
var _ audit.Store = (*AuditGormStore)(nil)
