package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/weddingbazaar/wedding-bazaar-backend/api/middleware"
	"github.com/weddingbazaar/wedding-bazaar-backend/api/validators"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/bookings"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
)

const (
	maxNameLen        = 160
	maxDescriptionLen = 4000
	maxLocationLen    = 255
)

// sanitizeOptional trims and caps a free-text field, leaving nil untouched.
func sanitizeOptional(s *string, maxLen int) *string {
	if s == nil {
		return nil
	}
	clean := validators.SanitizeString(*s, maxLen)
	return &clean
}

// actorFromRequest rebuilds the acting identity from the token claims the
// auth middleware stored on the context.
func actorFromRequest(r *http.Request) (bookings.Actor, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return bookings.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return bookings.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user identity")
	}

	actor := bookings.Actor{
		UserID: userID,
		Role:   enums.UserRole(middleware.RoleFromContext(r.Context())),
	}
	if rawVendor := middleware.VendorIDFromContext(r.Context()); rawVendor != "" {
		vendorID, err := uuid.Parse(rawVendor)
		if err != nil {
			return bookings.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid vendor identity")
		}
		actor.VendorID = &vendorID
	}
	return actor, nil
}

// vendorIDFromRequest returns the vendor identity or a forbidden error when
// the token carries none.
func vendorIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.VendorIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor context missing")
	}
	vendorID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "invalid vendor identity")
	}
	return vendorID, nil
}

// userIDFromRequest returns the authenticated user id.
func userIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user identity")
	}
	return userID, nil
}
