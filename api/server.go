package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/angelmondragon/stockledger-backend/api/routes"
	"github.com/angelmondragon/stockledger-backend/internal/accounts"
	"github.com/angelmondragon/stockledger-backend/internal/expenses"
	"github.com/angelmondragon/stockledger-backend/internal/inventory"
	"github.com/angelmondragon/stockledger-backend/internal/ledger"
	"github.com/angelmondragon/stockledger-backend/internal/parties"
	"github.com/angelmondragon/stockledger-backend/internal/payments"
	"github.com/angelmondragon/stockledger-backend/internal/products"
	"github.com/angelmondragon/stockledger-backend/internal/purchases"
	"github.com/angelmondragon/stockledger-backend/internal/repo"
	"github.com/angelmondragon/stockledger-backend/internal/sales"
	"github.com/angelmondragon/stockledger-backend/pkg/db"
	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
	"github.com/angelmondragon/stockledger-backend/pkg/metrics"
)

// BuildServices wires every domain service over one database client.
func BuildServices(client *db.Client, flows *metrics.FlowMetrics) (routes.Services, error) {
	if client == nil {
		return routes.Services{}, fmt.Errorf("database client required")
	}
	conn := client.DB()

	accountSvc, err := accounts.NewService(repo.NewStore[models.Account](conn))
	if err != nil {
		return routes.Services{}, err
	}
	customerSvc, err := parties.NewCustomerService(repo.NewStore[models.Customer](conn))
	if err != nil {
		return routes.Services{}, err
	}
	vendorSvc, err := parties.NewVendorService(repo.NewStore[models.Vendor](conn))
	if err != nil {
		return routes.Services{}, err
	}
	productSvc, err := products.NewService(repo.NewStore[models.Product](conn))
	if err != nil {
		return routes.Services{}, err
	}
	expenseSvc, err := expenses.NewService(repo.NewStore[models.Expense](conn), accountSvc)
	if err != nil {
		return routes.Services{}, err
	}
	ledgerSvc, err := ledger.NewService(ledger.NewRepository(conn))
	if err != nil {
		return routes.Services{}, err
	}

	stock := inventory.NewRepository(conn)
	purchaseRepo := purchases.NewRepository(conn)
	saleRepo := sales.NewRepository(conn)

	purchaseSvc, err := purchases.NewService(client, purchaseRepo, stock, ledgerSvc, vendorSvc, accountSvc, productSvc, flows)
	if err != nil {
		return routes.Services{}, err
	}
	saleSvc, err := sales.NewService(client, saleRepo, stock, ledgerSvc, customerSvc, accountSvc, productSvc, flows)
	if err != nil {
		return routes.Services{}, err
	}
	purchasePaymentSvc, err := payments.NewPurchasePaymentService(client, repo.NewStore[models.PurchasePayment](conn), purchaseRepo, accountSvc, ledgerSvc, flows)
	if err != nil {
		return routes.Services{}, err
	}
	salesPaymentSvc, err := payments.NewSalesPaymentService(client, repo.NewStore[models.SalesPayment](conn), saleRepo, accountSvc, ledgerSvc, flows)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Accounts:         accountSvc,
		Customers:        customerSvc,
		Vendors:          vendorSvc,
		Products:         productSvc,
		Expenses:         expenseSvc,
		Purchases:        purchaseSvc,
		Sales:            saleSvc,
		PurchasePayments: purchasePaymentSvc,
		SalesPayments:    salesPaymentSvc,
		Ledger:           ledgerSvc,
	}, nil
}

// NewServer returns the HTTP server used by cmd/api.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
