package pledge

import (
	"context"
	"fmt"

	"github.com/yawboadu/churchledger/internal/domain/entity"
	errs "github.com/yawboadu/churchledger/internal/domain/error"
	"github.com/yawboadu/churchledger/internal/domain/port/usecase"
)

// CreateCommitment validates and persists a new pledge. Member contributors
// must resolve in the caller's church; a missing member is a validation
// failure, not a ledger fault.
func (s *Service) CreateCommitment(ctx context.Context, in usecase.CreateCommitmentInput) (*entity.Commitment, error) {
	commitment, err := entity.NewCommitment(
		in.ChurchID,
		in.Contributor,
		in.PledgeAmount,
		in.Currency,
		in.CategoryID,
		in.PledgeDate,
		in.DueDate,
		in.Notes,
		s.timeProvider,
	)
	if err != nil {
		return nil, err
	}

	if in.Contributor.IsMember() {
		exists, err := s.resolver.ResolveMember(ctx, in.ChurchID, in.Contributor.MemberID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve member: %w", err)
		}
		if !exists {
			s.logger.Warn("Pledge creation referenced unknown member", map[string]any{
				"church_id": in.ChurchID.String(),
				"member_id": in.Contributor.MemberID.String(),
			})
			return nil, errs.ErrMemberNotFound
		}
	}

	if err := s.uow.GetCommitmentRepository(ctx).Create(ctx, commitment); err != nil {
		return nil, err
	}

	s.logger.Info("Commitment created", map[string]any{
		"pledge_id":     commitment.ID.String(),
		"church_id":     commitment.ChurchID.String(),
		"contributor":   commitment.Contributor.DisplayName(),
		"pledge_amount": entity.FormatAmount(commitment.PledgeAmount),
		"currency":      commitment.Currency,
	})
	return commitment, nil
}
