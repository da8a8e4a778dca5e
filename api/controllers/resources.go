package controllers

import (
	"github.com/angelmondragon/stockledger-backend/internal/accounts"
	"github.com/angelmondragon/stockledger-backend/internal/expenses"
	"github.com/angelmondragon/stockledger-backend/internal/parties"
	"github.com/angelmondragon/stockledger-backend/internal/payments"
	"github.com/angelmondragon/stockledger-backend/internal/products"
	"github.com/angelmondragon/stockledger-backend/internal/purchases"
	"github.com/angelmondragon/stockledger-backend/internal/sales"
)

var (
	AccountResource         = Resource{Singular: "account", Plural: "accounts", Deleted: accounts.MessageDeleted}
	CustomerResource        = Resource{Singular: "customer", Plural: "customers", Deleted: parties.CustomerMessages.Deleted}
	VendorResource          = Resource{Singular: "vendor", Plural: "vendors", Deleted: parties.VendorMessages.Deleted}
	ProductResource         = Resource{Singular: "product", Plural: "products", Deleted: products.MessageDeleted}
	ExpenseResource         = Resource{Singular: "expense", Plural: "expenses", Deleted: expenses.MessageDeleted}
	PurchaseResource        = Resource{Singular: "purchase", Plural: "purchases", Deleted: purchases.MessageDeleted}
	SaleResource            = Resource{Singular: "sale", Plural: "sales", Deleted: sales.MessageDeleted}
	PurchasePaymentResource = Resource{Singular: "purchasePayment", Plural: "purchasePayments", Deleted: payments.MessagePurchasePaymentDeleted}
	SalesPaymentResource    = Resource{Singular: "salesPayment", Plural: "salesPayments", Deleted: payments.MessageSalesPaymentDeleted}
	TransactionResource     = Resource{Singular: "transaction", Plural: "transactions"}
)
