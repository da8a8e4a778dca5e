package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/stockledger-backend/api/controllers"
	"github.com/angelmondragon/stockledger-backend/api/middleware"
	"github.com/angelmondragon/stockledger-backend/internal/accounts"
	"github.com/angelmondragon/stockledger-backend/internal/expenses"
	"github.com/angelmondragon/stockledger-backend/internal/ledger"
	"github.com/angelmondragon/stockledger-backend/internal/parties"
	"github.com/angelmondragon/stockledger-backend/internal/payments"
	"github.com/angelmondragon/stockledger-backend/internal/products"
	"github.com/angelmondragon/stockledger-backend/internal/purchases"
	"github.com/angelmondragon/stockledger-backend/internal/sales"
	"github.com/angelmondragon/stockledger-backend/pkg/config"
	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
	"github.com/angelmondragon/stockledger-backend/pkg/logger"
	"github.com/angelmondragon/stockledger-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/stockledger-backend/pkg/redis"
)

// Services bundles the domain services mounted under /api.
type Services struct {
	Accounts         accounts.Service
	Customers        parties.Service[models.Customer]
	Vendors          parties.Service[models.Vendor]
	Products         products.Service
	Expenses         expenses.Service
	Purchases        purchases.Service
	Sales            sales.Service
	PurchasePayments payments.PurchasePaymentService
	SalesPayments    payments.SalesPaymentService
	Ledger           ledger.Service
}

// Infra carries the operational dependencies. Redis and Idempotency are nil
// when redis is not configured.
type Infra struct {
	DB          controllers.Pinger
	Redis       controllers.Pinger
	Idempotency pkgredis.IdempotencyStore
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
}

func NewRouter(cfg *config.Config, logg *logger.Logger, infra Infra, svc Services) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(infra.HTTPMetrics),
		middleware.SecureHeaders(cfg.App.IsDev()),
		middleware.CORS(cfg.App.CORSAllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, infra.DB, infra.Redis))
	})

	if infra.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(infra.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(logg, cfg.RateLimit.Requests, cfg.RateLimit.Window))
		r.Use(middleware.Idempotency(infra.Idempotency, cfg.Eventing.IdempotencyTTL, logg))

		mount[models.Account, accounts.AccountInput](r, "/account", svc.Accounts, controllers.AccountResource, logg)
		mount[models.Customer, parties.PartyInput](r, "/customer", svc.Customers, controllers.CustomerResource, logg)
		mount[models.Vendor, parties.PartyInput](r, "/vendor", svc.Vendors, controllers.VendorResource, logg)
		mount[models.Product, products.ProductInput](r, "/product", svc.Products, controllers.ProductResource, logg)
		mount[models.Expense, expenses.ExpenseInput](r, "/expense", svc.Expenses, controllers.ExpenseResource, logg)
		mount[models.Purchase, purchases.PurchaseInput](r, "/purchase", svc.Purchases, controllers.PurchaseResource, logg)
		mount[models.Sale, sales.SaleInput](r, "/sale", svc.Sales, controllers.SaleResource, logg)
		mount[models.PurchasePayment, payments.PurchasePaymentInput](r, "/purchase-payment", svc.PurchasePayments, controllers.PurchasePaymentResource, logg)
		mount[models.SalesPayment, payments.SalesPaymentInput](r, "/sales-payment", svc.SalesPayments, controllers.SalesPaymentResource, logg)

		if svc.Ledger != nil {
			list, get := controllers.Transactions(svc.Ledger, logg)
			r.Route("/transaction", func(r chi.Router) {
				r.Get("/", list)
				r.Get("/{id}", get)
			})
		}
	})

	return r
}

// mount registers the five routes of a resource. Updates go through POST /{id}.
func mount[T any, I any](r chi.Router, path string, svc controllers.Service[T, I], res controllers.Resource, logg *logger.Logger) {
	if svc == nil {
		return
	}
	r.Route(path, func(r chi.Router) {
		r.Get("/", controllers.List[T](svc, res, logg))
		r.Post("/", controllers.Create[T, I](svc, res, logg))
		r.Get("/{id}", controllers.Get[T](svc, res, logg))
		r.Post("/{id}", controllers.Update[T, I](svc, res, logg))
		r.Delete("/{id}", controllers.Delete[T, I](svc, res, logg))
	})
}
