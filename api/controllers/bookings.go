package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/weddingbazaar/wedding-bazaar-backend/api/responses"
	"github.com/weddingbazaar/wedding-bazaar-backend/api/validators"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/bookings"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/vendors"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	pkgerrors "github.com/weddingbazaar/wedding-bazaar-backend/pkg/errors"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/logger"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/pagination"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/types"
)

const (
	maxListLimit     = 100
	defaultListLimit = 20
)

type createBookingRequest struct {
	VendorRef     string  `json:"vendor_ref" validate:"required"`
	ServiceID     string  `json:"service_id" validate:"required,uuid"`
	EventDate     string  `json:"event_date" validate:"required,datetime=2006-01-02"`
	EventTime     *string `json:"event_time,omitempty"`
	EventLocation *string `json:"event_location,omitempty"`
	GuestCount    *int    `json:"guest_count,omitempty" validate:"omitempty,gt=0"`
	Draft         bool    `json:"draft,omitempty"`
}

// CreateBooking accepts a couple's booking request. The vendor reference is
// resolved first so legacy VEN-XXXXX ids keep working.
func CreateBooking(svc bookings.Service, vendorSvc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || vendorSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createBookingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := vendorSvc.Resolve(r.Context(), body.VendorRef)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		serviceID, err := validators.ParsePathUUID(body.ServiceID, "service_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		eventDate, err := time.Parse("2006-01-02", body.EventDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "event_date must be a YYYY-MM-DD date"))
			return
		}

		booking, err := svc.CreateRequest(r.Context(), bookings.CreateRequestInput{
			Actor:         actor,
			VendorID:      vendor.ID,
			ServiceID:     serviceID,
			EventDate:     eventDate,
			EventTime:     body.EventTime,
			EventLocation: sanitizeOptional(body.EventLocation, maxLocationLen),
			GuestCount:    body.GuestCount,
			Draft:         body.Draft,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, booking)
	}
}

// GetBooking returns a booking with its event audit trail.
func GetBooking(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bookingID, err := validators.ParsePathUUID(chi.URLParam(r, "bookingID"), "bookingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), actor, bookingID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// ListCoupleBookings returns the authenticated couple's bookings.
func ListCoupleBookings(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return listBookings(svc, logg, false)
}

// ListVendorBookings returns the authenticated vendor's bookings.
func ListVendorBookings(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return listBookings(svc, logg, true)
}

func listBookings(svc bookings.Service, logg *logger.Logger, vendorSide bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := listParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters, err := bookingFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var list *bookings.BookingList
		if vendorSide {
			list, err = svc.ListForVendor(r.Context(), actor, params, filters)
		} else {
			list, err = svc.ListForCouple(r.Context(), actor, params, filters)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type transitionRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// TransitionBooking builds a handler that drives one lifecycle event. The
// optional body reason lands on the audit row.
func TransitionBooking(svc bookings.Service, logg *logger.Logger, event enums.BookingEvent) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bookingID, err := validators.ParsePathUUID(chi.URLParam(r, "bookingID"), "bookingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := bookings.TransitionInput{Actor: actor, BookingID: bookingID, Event: event}
		if r.Body != nil && r.ContentLength > 0 {
			var body transitionRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Note = body.Reason
		}

		booking, err := svc.Transition(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, booking)
	}
}

type sendQuoteRequest struct {
	Itemization    []quoteLineItem `json:"itemization" validate:"required,min=1,dive"`
	DepositPercent int64           `json:"deposit_percent" validate:"required,gt=0,max=100"`
}

type quoteLineItem struct {
	Description   string `json:"description" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,gt=0"`
	UnitCentavos  int64  `json:"unit_centavos" validate:"required,gt=0"`
	TotalCentavos int64  `json:"total_centavos" validate:"required,gt=0"`
}

// VendorSendQuote attaches an itemized quote to a pending booking request.
func VendorSendQuote(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bookingID, err := validators.ParsePathUUID(chi.URLParam(r, "bookingID"), "bookingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body sendQuoteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemization := make(types.QuoteItemization, 0, len(body.Itemization))
		for _, item := range body.Itemization {
			itemization = append(itemization, types.QuoteLineItem{
				Description:   item.Description,
				Quantity:      item.Quantity,
				UnitCentavos:  item.UnitCentavos,
				TotalCentavos: item.TotalCentavos,
			})
		}

		booking, err := svc.SendQuote(r.Context(), bookings.SendQuoteInput{
			Actor:          actor,
			BookingID:      bookingID,
			Itemization:    itemization,
			DepositPercent: body.DepositPercent,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, booking)
	}
}

func listParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", defaultListLimit, 1, maxListLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{
		Limit:  limit,
		Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
	}, nil
}

func bookingFilters(r *http.Request) (bookings.ListFilters, error) {
	var filters bookings.ListFilters

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := enums.ParseBookingStatus(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		filters.Status = &status
	}

	from, err := validators.ParseQueryDate(r, "date_from")
	if err != nil {
		return filters, err
	}
	filters.DateFrom = from

	to, err := validators.ParseQueryDate(r, "date_to")
	if err != nil {
		return filters, err
	}
	filters.DateTo = to

	return filters, nil
}
