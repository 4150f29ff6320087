package persistence

import (
	"context"

	"github.com/google/uuid"
)

// ContributorResolver resolves member references when a commitment is
// created. A false result is a validation failure on the caller's side,
// not a ledger fault.
type ContributorResolver interface {
	// ResolveMember reports whether the member exists in the given church
	ResolveMember(ctx context.Context, churchID, memberID uuid.UUID) (bool, error)
}
