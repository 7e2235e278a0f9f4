package auth

import (
	"context"
	"errors"

	reporting "creator-finance/internal/reporting/domain"
)

var (
	// ErrForbidden indicates the caller may not access the requested subject.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthenticated indicates the request carries no identity.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// AuthorizeSubject checks the caller in ctx may read reports of subject. Admins read every
// subject; brands and influencers only their own; the platform subject requires admin.
// A context without identity is allowed when enforce is false.
func AuthorizeSubject(ctx context.Context, subject reporting.Subject, enforce bool) error {
	role := RoleFromContext(ctx)
	if role == "" {
		if enforce {
			return ErrUnauthenticated
		}
		return nil
	}
	if role == RoleAdmin {
		return nil
	}
	if subject.IsPlatform() {
		return ErrForbidden
	}
	if string(role) != string(subject.Kind) || SubjectFromContext(ctx) != subject.ID {
		return ErrForbidden
	}
	return nil
}

// AuthorizeBrand checks the caller in ctx may read campaign reports of brandID.
func AuthorizeBrand(ctx context.Context, brandID string, enforce bool) error {
	return AuthorizeSubject(ctx, reporting.Subject{ID: brandID, Kind: reporting.SubjectBrand}, enforce)
}
