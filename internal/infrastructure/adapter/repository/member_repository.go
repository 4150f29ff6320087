package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	errs "github.com/yawboadu/churchledger/internal/domain/error"
	coreport "github.com/yawboadu/churchledger/internal/domain/port/core"
	"github.com/yawboadu/churchledger/internal/infrastructure/adapter/model"
)

// MemberRepository resolves member contributors against the members table
type MemberRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewMemberRepository creates a new MemberRepository instance
func NewMemberRepository(db *gorm.DB, logger coreport.Logger) *MemberRepository {
	return &MemberRepository{
		db:     db,
		logger: logger,
	}
}

// ResolveMember reports whether the member exists within the church
func (r *MemberRepository) ResolveMember(ctx context.Context, churchID, memberID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Member{}).
		Where("id = ? AND church_id = ?", memberID, churchID).
		Count(&count)
	if result.Error != nil {
		r.logger.Error("Database error when resolving member", map[string]any{
			"member_id": memberID.String(),
			"error":     result.Error.Error(),
		})
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return count > 0, nil
}
