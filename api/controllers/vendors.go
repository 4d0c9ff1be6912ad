package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/weddingbazaar/wedding-bazaar-backend/api/responses"
	"github.com/weddingbazaar/wedding-bazaar-backend/api/validators"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/catalog"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/vendors"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/logger"
)

// ListVendors returns the public vendor directory.
func ListVendors(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		params, err := listParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var categoryID *uuid.UUID
		if raw := strings.TrimSpace(r.URL.Query().Get("category_id")); raw != "" {
			id, err := validators.ParsePathUUID(raw, "category_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			categoryID = &id
		}

		list, err := svc.List(r.Context(), params, categoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// GetVendor resolves either a canonical UUID or a legacy VEN-XXXXX reference.
func GetVendor(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		vendor, err := svc.Resolve(r.Context(), chi.URLParam(r, "vendorRef"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

// ListVendorCatalog returns a vendor's active services for the public page.
func ListVendorCatalog(vendorSvc vendors.Service, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if vendorSvc == nil || catalogSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		vendor, err := vendorSvc.Resolve(r.Context(), chi.URLParam(r, "vendorRef"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		services, err := catalogSvc.ListVendorServices(r.Context(), vendor.ID, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"services": services})
	}
}

type updateProfileRequest struct {
	BusinessName *string `json:"business_name,omitempty" validate:"omitempty,min=2"`
	CategoryID   *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Description  *string `json:"description,omitempty"`
	Location     *string `json:"location,omitempty"`
}

// VendorUpdateProfile edits the authenticated vendor's own profile.
func VendorUpdateProfile(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		vendorID, err := vendorIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := vendors.UpdateProfileInput{
			VendorID:     vendorID,
			BusinessName: sanitizeOptional(body.BusinessName, maxNameLen),
			Description:  sanitizeOptional(body.Description, maxDescriptionLen),
			Location:     sanitizeOptional(body.Location, maxLocationLen),
		}
		if body.CategoryID != nil {
			id, err := validators.ParsePathUUID(*body.CategoryID, "category_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.CategoryID = &id
		}

		vendor, err := svc.UpdateProfile(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

type fixMappingsRequest struct {
	Mappings []vendors.MappingInput `json:"mappings" validate:"required,min=1,dive"`
}

// AdminFixMappings re-points legacy vendor references at canonical vendors.
func AdminFixMappings(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		var body fixMappingsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		results, err := svc.FixMappings(r.Context(), body.Mappings)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"results": results})
	}
}
