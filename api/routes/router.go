package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/weddingbazaar/wedding-bazaar-backend/api/controllers"
	webhookcontrollers "github.com/weddingbazaar/wedding-bazaar-backend/api/controllers/webhooks"
	"github.com/weddingbazaar/wedding-bazaar-backend/api/middleware"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/auth"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/bookings"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/catalog"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/categories"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/notifications"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/offdays"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/payments"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/subscriptions"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/vendors"
	"github.com/weddingbazaar/wedding-bazaar-backend/internal/wallet"
	squarewebhook "github.com/weddingbazaar/wedding-bazaar-backend/internal/webhooks/square"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/auth/session"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/config"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/db"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/enums"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/logger"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/metrics"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/redis"
	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/square"
)

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	AuthService     auth.Service
	RegisterService auth.RegisterService
	Bookings        bookings.Service
	Payments        payments.Service
	Vendors         vendors.Service
	Catalog         catalog.Service
	Categories      categories.Service
	OffDays         offdays.Service
	Notifications   notifications.Service
	Subscriptions   subscriptions.Service
	Wallet          wallet.Service

	SquareClient *square.Client
	WebhookSvc   *squarewebhook.Service
	WebhookGuard *squarewebhook.IdempotencyGuard
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(p.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})
	if p.MetricsHandler != nil {
		r.Handle("/metrics", p.MetricsHandler)
	}

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/square", webhookcontrollers.SquareWebhook(p.WebhookSvc, p.SquareClient, p.WebhookGuard, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register", controllers.AuthRegister(p.RegisterService, p.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(p.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))
	})

	// Public catalog surface: no token required to browse.
	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Get("/", controllers.ListCategories(p.Categories, logg))
		r.Get("/{categoryID}", controllers.GetCategory(p.Categories, logg))
		r.Get("/{categoryID}/fields", controllers.ListCategoryFields(p.Categories, logg))
	})
	r.Route("/api/v1/vendors", func(r chi.Router) {
		r.Get("/", controllers.ListVendors(p.Vendors, logg))
		r.Get("/{vendorRef}", controllers.GetVendor(p.Vendors, logg))
		r.Get("/{vendorRef}/services", controllers.ListVendorCatalog(p.Vendors, p.Catalog, logg))
	})
	r.Get("/api/v1/plans", controllers.ListPlans(p.Subscriptions, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionChecker, logg))
		r.Use(middleware.Idempotency(p.Redis, logg))

		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", controllers.CreateBooking(p.Bookings, p.Vendors, logg))
			r.Get("/", controllers.ListCoupleBookings(p.Bookings, logg))
			r.Get("/{bookingID}", controllers.GetBooking(p.Bookings, logg))
			r.Post("/{bookingID}/submit", controllers.TransitionBooking(p.Bookings, logg, enums.BookingEventSubmitRequest))
			r.Post("/{bookingID}/request-quote", controllers.TransitionBooking(p.Bookings, logg, enums.BookingEventRequestQuote))
			r.Post("/{bookingID}/accept-quote", controllers.TransitionBooking(p.Bookings, logg, enums.BookingEventAcceptQuote))
			r.Post("/{bookingID}/decline-quote", controllers.TransitionBooking(p.Bookings, logg, enums.BookingEventDeclineQuote))
			r.Post("/{bookingID}/cancel", controllers.TransitionBooking(p.Bookings, logg, enums.BookingEventCancel))
			r.Post("/{bookingID}/dispute", controllers.TransitionBooking(p.Bookings, logg, enums.BookingEventDispute))
			r.Post("/{bookingID}/complete", controllers.TransitionBooking(p.Bookings, logg, enums.BookingEventComplete))
			r.Post("/{bookingID}/payments", controllers.CreatePayment(p.Payments, logg))
			r.Get("/{bookingID}/receipts", controllers.ListReceipts(p.Payments, logg))
		})

		r.Route("/vendor", func(r chi.Router) {
			r.Use(middleware.VendorContext(logg))

			r.Get("/bookings", controllers.ListVendorBookings(p.Bookings, logg))
			r.Post("/bookings/{bookingID}/quote", controllers.VendorSendQuote(p.Bookings, logg))
			r.Post("/bookings/{bookingID}/confirm", controllers.TransitionBooking(p.Bookings, logg, enums.BookingEventConfirm))
			r.Post("/bookings/{bookingID}/progress", controllers.TransitionBooking(p.Bookings, logg, enums.BookingEventStartService))
			r.Post("/bookings/{bookingID}/cancel", controllers.TransitionBooking(p.Bookings, logg, enums.BookingEventCancel))

			r.Put("/profile", controllers.VendorUpdateProfile(p.Vendors, logg))

			r.Route("/services", func(r chi.Router) {
				r.Get("/", controllers.VendorListServices(p.Catalog, logg))
				r.Post("/", controllers.VendorCreateService(p.Catalog, logg))
				r.Patch("/{serviceID}", controllers.VendorUpdateService(p.Catalog, logg))
				r.Delete("/{serviceID}", controllers.VendorDeactivateService(p.Catalog, logg))
			})

			r.Route("/off-days", func(r chi.Router) {
				r.Get("/", controllers.VendorListOffDays(p.OffDays, logg))
				r.Post("/", controllers.VendorAddOffDay(p.OffDays, logg))
				r.Delete("/{date}", controllers.VendorRemoveOffDay(p.OffDays, logg))
			})

			r.Route("/subscription", func(r chi.Router) {
				r.Get("/", controllers.VendorSubscriptionFetch(p.Subscriptions, logg))
				r.Post("/", controllers.VendorSubscriptionCreate(p.Subscriptions, logg))
				r.Post("/cancel", controllers.VendorSubscriptionCancel(p.Subscriptions, logg))
			})

			r.Route("/wallet", func(r chi.Router) {
				r.Get("/", controllers.VendorWalletEntries(p.Wallet, logg))
				r.Get("/balance", controllers.VendorWalletBalance(p.Wallet, logg))
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(p.Notifications, logg))
			r.Post("/{notificationID}/read", controllers.MarkNotificationRead(p.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(p.Notifications, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionChecker, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
		r.Use(middleware.Idempotency(p.Redis, logg))

		r.Post("/vendors/fix-mappings", controllers.AdminFixMappings(p.Vendors, logg))
		r.Post("/bookings/{bookingID}/refund", controllers.AdminRefundBooking(p.Payments, logg))
	})

	return r
}
