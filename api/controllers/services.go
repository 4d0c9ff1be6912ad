package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/weddingbazaar/wedding-bazaar-backend/api/responses"
	"github.com/weddingbazaar/wedding-bazaar-backend/api/validators"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/catalog"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/logger"
)

type createServiceRequest struct {
	CategoryID    string   `json:"category_id" validate:"required,uuid"`
	Name          string   `json:"name" validate:"required,min=2"`
	Description   *string  `json:"description,omitempty"`
	PriceCentavos int64    `json:"price_centavos" validate:"required,gt=0"`
	Images        []string `json:"images,omitempty"`
}

// VendorCreateService adds a listing to the vendor's catalog, subject to the
// plan's active-service limit.
func VendorCreateService(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		vendorID, err := vendorIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createServiceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		categoryID, err := validators.ParsePathUUID(body.CategoryID, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		service, err := svc.CreateService(r.Context(), catalog.CreateServiceInput{
			VendorID:      vendorID,
			CategoryID:    categoryID,
			Name:          validators.SanitizeString(body.Name, maxNameLen),
			Description:   sanitizeOptional(body.Description, maxDescriptionLen),
			PriceCentavos: body.PriceCentavos,
			Images:        body.Images,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, service)
	}
}

type updateServiceRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=2"`
	Description   *string  `json:"description,omitempty"`
	PriceCentavos *int64   `json:"price_centavos,omitempty" validate:"omitempty,gt=0"`
	Images        []string `json:"images,omitempty"`
	Active        *bool    `json:"active,omitempty"`
}

// VendorUpdateService partially edits one of the vendor's own listings.
func VendorUpdateService(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		vendorID, err := vendorIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		serviceID, err := validators.ParsePathUUID(chi.URLParam(r, "serviceID"), "serviceID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateServiceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		service, err := svc.UpdateService(r.Context(), catalog.UpdateServiceInput{
			VendorID:      vendorID,
			ServiceID:     serviceID,
			Name:          sanitizeOptional(body.Name, maxNameLen),
			Description:   sanitizeOptional(body.Description, maxDescriptionLen),
			PriceCentavos: body.PriceCentavos,
			Images:        body.Images,
			Active:        body.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, service)
	}
}

// VendorDeactivateService retires a listing without deleting its history.
func VendorDeactivateService(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		vendorID, err := vendorIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		serviceID, err := validators.ParsePathUUID(chi.URLParam(r, "serviceID"), "serviceID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeactivateService(r.Context(), vendorID, serviceID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}

// VendorListServices lists the vendor's own catalog, inactive included unless
// active_only is set.
func VendorListServices(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		vendorID, err := vendorIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		activeOnly := false
		if raw := strings.TrimSpace(r.URL.Query().Get("active_only")); raw != "" {
			value, err := strconv.ParseBool(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "active_only must be a boolean"))
				return
			}
			activeOnly = value
		}

		services, err := svc.ListVendorServices(r.Context(), vendorID, activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"services": services})
	}
}
