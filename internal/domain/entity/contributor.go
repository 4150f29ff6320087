package entity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	errs "github.com/yawboadu/churchledger/internal/domain/error"
)

// ContributorKind discriminates the contributor union
type ContributorKind string

// Contributor kinds
const (
	ContributorMember  ContributorKind = "member"
	ContributorVisitor ContributorKind = "visitor"
)

// Contributor identifies who made a pledge: either a registered member
// (by id) or an unregistered visitor (by name and optional contact details).
// Exactly one branch is populated; the constructors enforce this so the
// invariant never has to be re-checked at read time.
type Contributor struct {
	Kind ContributorKind

	// Member branch
	MemberID uuid.UUID

	// Visitor branch
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// NewMemberContributor creates a contributor referencing a registered member
func NewMemberContributor(memberID uuid.UUID) (Contributor, error) {
	if memberID == uuid.Nil {
		return Contributor{}, fmt.Errorf("%w: member id is required", errs.ErrInvalidContributor)
	}
	return Contributor{
		Kind:     ContributorMember,
		MemberID: memberID,
	}, nil
}

// NewVisitorContributor creates a contributor for an unregistered visitor
func NewVisitorContributor(firstName, lastName, phone, email string) (Contributor, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return Contributor{}, fmt.Errorf("%w: visitor first and last name are required", errs.ErrInvalidContributor)
	}
	return Contributor{
		Kind:      ContributorVisitor,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     strings.TrimSpace(phone),
		Email:     strings.TrimSpace(email),
	}, nil
}

// IsMember returns true for the member branch
func (c Contributor) IsMember() bool {
	return c.Kind == ContributorMember
}

// Validate re-checks the exactly-one-branch invariant. Constructors already
// guarantee it; this exists for values rebuilt from storage.
func (c Contributor) Validate() error {
	switch c.Kind {
	case ContributorMember:
		if c.MemberID == uuid.Nil {
			return fmt.Errorf("%w: member contributor without member id", errs.ErrInvalidContributor)
		}
		if c.FirstName != "" || c.LastName != "" {
			return fmt.Errorf("%w: member contributor carries visitor fields", errs.ErrInvalidContributor)
		}
	case ContributorVisitor:
		if c.FirstName == "" || c.LastName == "" {
			return fmt.Errorf("%w: visitor contributor without name", errs.ErrInvalidContributor)
		}
		if c.MemberID != uuid.Nil {
			return fmt.Errorf("%w: visitor contributor carries member id", errs.ErrInvalidContributor)
		}
	default:
		return fmt.Errorf("%w: unknown contributor kind %q", errs.ErrInvalidContributor, c.Kind)
	}
	return nil
}

// DisplayName returns a human-readable name for lists and logs
func (c Contributor) DisplayName() string {
	if c.Kind == ContributorVisitor {
		return c.FirstName + " " + c.LastName
	}
	return "member:" + c.MemberID.String()
}
