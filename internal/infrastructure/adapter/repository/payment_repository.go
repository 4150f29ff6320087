package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yawboadu/churchledger/internal/domain/entity"
	errs "github.com/yawboadu/churchledger/internal/domain/error"
	coreport "github.com/yawboadu/churchledger/internal/domain/port/core"
	"github.com/yawboadu/churchledger/internal/infrastructure/adapter/model"
)

// PaymentRepository implements the payment persistence port using GORM
type PaymentRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewPaymentRepository creates a new PaymentRepository instance
func NewPaymentRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *PaymentRepository {
	return &PaymentRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *PaymentRepository) modelToEntity(m *model.PaymentRecord) *entity.PaymentRecord {
	return &entity.PaymentRecord{
		ID:                   m.ID,
		PledgeID:             m.PledgeID,
		ChurchID:             m.ChurchID,
		Amount:               m.Amount,
		Currency:             m.Currency,
		PaymentDate:          m.PaymentDate,
		Method:               entity.PaymentMethod(m.Method),
		TransactionReference: m.TransactionReference,
		Notes:                m.Notes,
		RecordedBy:           m.RecordedBy,
		CreatedAt:            m.CreatedAt,
	}
}

func (r *PaymentRepository) handleDatabaseError(operation string, err error, paymentID uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrPaymentNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"payment_id": paymentID.String(),
		"error":      err.Error(),
	})

	if r.errorClassifier.IsConstraintError(err) {
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create persists a new payment record
func (r *PaymentRepository) Create(ctx context.Context, record *entity.PaymentRecord) error {
	m := model.PaymentRecord{
		ID:                   record.ID,
		PledgeID:             record.PledgeID,
		ChurchID:             record.ChurchID,
		Amount:               record.Amount,
		Currency:             record.Currency,
		PaymentDate:          record.PaymentDate,
		Method:               string(record.Method),
		TransactionReference: record.TransactionReference,
		Notes:                record.Notes,
		RecordedBy:           record.RecordedBy,
		CreatedAt:            record.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		return r.handleDatabaseError("creating payment", result.Error, record.ID)
	}
	return nil
}

// GetByID retrieves a payment record scoped to a church
func (r *PaymentRepository) GetByID(ctx context.Context, churchID, id uuid.UUID) (*entity.PaymentRecord, error) {
	var m model.PaymentRecord
	result := r.db.WithContext(ctx).
		Where("id = ? AND church_id = ?", id, churchID).
		First(&m)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting payment", result.Error, id)
	}
	return r.modelToEntity(&m), nil
}

// Delete removes a payment record
func (r *PaymentRepository) Delete(ctx context.Context, churchID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND church_id = ?", id, churchID).
		Delete(&model.PaymentRecord{})
	if result.Error != nil {
		return r.handleDatabaseError("deleting payment", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrPaymentNotFound
	}
	return nil
}

// ListByPledge returns a pledge's payment records, most recent payment first
func (r *PaymentRepository) ListByPledge(ctx context.Context, churchID, pledgeID uuid.UUID) ([]*entity.PaymentRecord, error) {
	var models []model.PaymentRecord
	result := r.db.WithContext(ctx).
		Where("pledge_id = ? AND church_id = ?", pledgeID, churchID).
		Order("payment_date DESC, created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing payments", result.Error, pledgeID)
	}

	records := make([]*entity.PaymentRecord, 0, len(models))
	for i := range models {
		records = append(records, r.modelToEntity(&models[i]))
	}
	return records, nil
}

// SumByPledge totals the live payment rows for a pledge. This is the ground
// truth the recompute strategy writes back into the cached balance.
func (r *PaymentRepository) SumByPledge(ctx context.Context, churchID, pledgeID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	row := r.db.WithContext(ctx).Model(&model.PaymentRecord{}).
		Where("pledge_id = ? AND church_id = ?", pledgeID, churchID).
		Select("COALESCE(SUM(amount), 0)").
		Row()
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, r.handleDatabaseError("summing payments", err, pledgeID)
	}
	return sum, nil
}

// CountByPledge returns the number of payment rows for a pledge
func (r *PaymentRepository) CountByPledge(ctx context.Context, churchID, pledgeID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.PaymentRecord{}).
		Where("pledge_id = ? AND church_id = ?", pledgeID, churchID).
		Count(&count)
	if result.Error != nil {
		return 0, r.handleDatabaseError("counting payments", result.Error, pledgeID)
	}
	return count, nil
}
