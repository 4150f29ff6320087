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

// CommitmentRepository implements the commitment persistence port using GORM
type CommitmentRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewCommitmentRepository creates a new CommitmentRepository instance
func NewCommitmentRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *CommitmentRepository {
	return &CommitmentRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a commitment model to a domain entity
func (r *CommitmentRepository) modelToEntity(m *model.Commitment) (*entity.Commitment, error) {
	contributor := entity.Contributor{
		Kind:      entity.ContributorKind(m.ContributorKind),
		FirstName: m.VisitorFirstName,
		LastName:  m.VisitorLastName,
		Phone:     m.VisitorPhone,
		Email:     m.VisitorEmail,
	}
	if m.MemberID != nil {
		contributor.MemberID = *m.MemberID
	}
	if err := contributor.Validate(); err != nil {
		r.logger.Error("Stored commitment has an invalid contributor", map[string]any{
			"pledge_id": m.ID.String(),
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("%w: corrupt contributor on pledge %s", errs.ErrInternalServer, m.ID)
	}

	c := &entity.Commitment{
		ID:           m.ID,
		ChurchID:     m.ChurchID,
		Contributor:  contributor,
		CategoryID:   m.CategoryID,
		PledgeAmount: m.PledgeAmount,
		Currency:     m.Currency,
		IsFulfilled:  m.IsFulfilled,
		PledgeDate:   m.PledgeDate,
		DueDate:      m.DueDate,
		Notes:        m.Notes,
		Version:      m.Version,
	}
	c.SetAmountPaid(m.AmountPaid, r.timeProvider)
	c.CreatedAt = m.CreatedAt
	c.UpdatedAt = m.UpdatedAt
	return c, nil
}

func (r *CommitmentRepository) entityToModel(c *entity.Commitment) *model.Commitment {
	m := &model.Commitment{
		ID:              c.ID,
		ChurchID:        c.ChurchID,
		ContributorKind: string(c.Contributor.Kind),
		CategoryID:      c.CategoryID,
		PledgeAmount:    c.PledgeAmount,
		Currency:        c.Currency,
		AmountPaid:      c.AmountPaid(),
		IsFulfilled:     c.IsFulfilled,
		PledgeDate:      c.PledgeDate,
		DueDate:         c.DueDate,
		Notes:           c.Notes,
		Version:         c.Version,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if c.Contributor.IsMember() {
		id := c.Contributor.MemberID
		m.MemberID = &id
	} else {
		m.VisitorFirstName = c.Contributor.FirstName
		m.VisitorLastName = c.Contributor.LastName
		m.VisitorPhone = c.Contributor.Phone
		m.VisitorEmail = c.Contributor.Email
	}
	return m
}

// handleDatabaseError standardizes database error handling
func (r *CommitmentRepository) handleDatabaseError(operation string, err error, pledgeID uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrPledgeNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"pledge_id": pledgeID.String(),
		"error":     err.Error(),
	})

	switch r.errorClassifier.Classify(err) {
	case LockError:
		return fmt.Errorf("%w: %s", errs.ErrConflict, err.Error())
	case DuplicateKeyError, ConstraintError:
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	default:
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
}

// GetByID retrieves a commitment scoped to a church. An id that exists under
// a different church is reported as not found.
func (r *CommitmentRepository) GetByID(ctx context.Context, churchID, id uuid.UUID) (*entity.Commitment, error) {
	var m model.Commitment
	result := r.db.WithContext(ctx).
		Where("id = ? AND church_id = ?", id, churchID).
		First(&m)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting commitment", result.Error, id)
	}
	return r.modelToEntity(&m)
}

// Create persists a new commitment
func (r *CommitmentRepository) Create(ctx context.Context, commitment *entity.Commitment) error {
	result := r.db.WithContext(ctx).Create(r.entityToModel(commitment))
	if result.Error != nil {
		return r.handleDatabaseError("creating commitment", result.Error, commitment.ID)
	}

	r.logger.Info("Commitment created", map[string]any{
		"pledge_id": commitment.ID.String(),
		"church_id": commitment.ChurchID.String(),
		"amount":    entity.FormatAmount(commitment.PledgeAmount),
		"currency":  commitment.Currency,
	})
	return nil
}

// UpdateBalance writes the cached balance with a version compare-and-swap.
// The update only lands if the stored version still equals expectedVersion;
// otherwise another writer got there first and ErrConflict is returned so
// the caller can re-read and retry.
func (r *CommitmentRepository) UpdateBalance(
	ctx context.Context,
	churchID, id uuid.UUID,
	amountPaid decimal.Decimal,
	fulfilled bool,
	expectedVersion uint64,
) (*entity.Commitment, error) {
	now := r.timeProvider.Now()
	result := r.db.WithContext(ctx).Model(&model.Commitment{}).
		Where("id = ? AND church_id = ? AND version = ?", id, churchID, expectedVersion).
		Updates(map[string]interface{}{
			"amount_paid":  amountPaid,
			"is_fulfilled": fulfilled,
			"version":      expectedVersion + 1,
			"updated_at":   now,
		})
	if result.Error != nil {
		return nil, r.handleDatabaseError("updating balance", result.Error, id)
	}

	if result.RowsAffected == 0 {
		// Zero rows means either the pledge is gone or the version moved.
		// A follow-up read tells them apart.
		var m model.Commitment
		check := r.db.WithContext(ctx).
			Where("id = ? AND church_id = ?", id, churchID).
			First(&m)
		if check.Error != nil {
			return nil, r.handleDatabaseError("checking balance conflict", check.Error, id)
		}
		r.logger.Warn("Balance write lost to a concurrent update", map[string]any{
			"pledge_id":        id.String(),
			"expected_version": expectedVersion,
			"actual_version":   m.Version,
		})
		return nil, errs.ErrConflict
	}

	var m model.Commitment
	result = r.db.WithContext(ctx).
		Where("id = ? AND church_id = ?", id, churchID).
		First(&m)
	if result.Error != nil {
		return nil, r.handleDatabaseError("reloading commitment", result.Error, id)
	}
	return r.modelToEntity(&m)
}

// Delete removes a commitment. Callers enforce the no-payments rule first.
func (r *CommitmentRepository) Delete(ctx context.Context, churchID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND church_id = ?", id, churchID).
		Delete(&model.Commitment{})
	if result.Error != nil {
		return r.handleDatabaseError("deleting commitment", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrPledgeNotFound
	}

	r.logger.Info("Commitment deleted", map[string]any{
		"pledge_id": id.String(),
		"church_id": churchID.String(),
	})
	return nil
}

// ListByChurch returns all commitments for a church, newest pledges first
func (r *CommitmentRepository) ListByChurch(ctx context.Context, churchID uuid.UUID) ([]*entity.Commitment, error) {
	var models []model.Commitment
	result := r.db.WithContext(ctx).
		Where("church_id = ?", churchID).
		Order("pledge_date DESC, created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing commitments", result.Error, uuid.Nil)
	}

	commitments := make([]*entity.Commitment, 0, len(models))
	for i := range models {
		c, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		commitments = append(commitments, c)
	}
	return commitments, nil
}
