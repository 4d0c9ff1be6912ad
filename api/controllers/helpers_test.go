package controllers

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/weddingbazaar/wedding-bazaar-backend/api/middleware"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func addRouteParam(r *http.Request, key, value string) *http.Request {
	routeCtx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || routeCtx == nil {
		routeCtx = chi.NewRouteContext()
	}
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

func asCouple(t *testing.T, r *http.Request, userID uuid.UUID) *http.Request {
	t.Helper()
	ctx := middleware.WithUserID(r.Context(), userID.String())
	ctx = middleware.WithRole(ctx, "couple")
	return r.WithContext(ctx)
}

func asVendor(t *testing.T, r *http.Request, vendorID uuid.UUID) *http.Request {
	t.Helper()
	ctx := middleware.WithUserID(r.Context(), vendorID.String())
	ctx = middleware.WithRole(ctx, "vendor")
	ctx = middleware.WithVendorID(ctx, vendorID.String())
	return r.WithContext(ctx)
}
