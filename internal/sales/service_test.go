package sales

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/stockledger-backend/internal/accounts"
	"github.com/angelmondragon/stockledger-backend/internal/inventory"
	"github.com/angelmondragon/stockledger-backend/internal/ledger"
	"github.com/angelmondragon/stockledger-backend/internal/parties"
	"github.com/angelmondragon/stockledger-backend/internal/products"
	"github.com/angelmondragon/stockledger-backend/internal/repo"
	"github.com/angelmondragon/stockledger-backend/internal/testdb"
	"github.com/angelmondragon/stockledger-backend/pkg/db"
	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
	"github.com/angelmondragon/stockledger-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stockledger-backend/pkg/errors"
	"github.com/angelmondragon/stockledger-backend/pkg/metrics"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

type fixture struct {
	client   *db.Client
	svc      Service
	ledger   ledger.Service
	customer uint
	account  uint
	widget   uint
	gadget   uint
}

type failingLedger struct {
	ledgerWriter
}

func (failingLedger) Record(context.Context, *gorm.DB, ledger.RecordInput) (*models.Transaction, error) {
	return nil, errors.New("ledger unavailable")
}

type failingReversal struct {
	ledgerWriter
}

func (failingReversal) ReverseForSalesPayments(context.Context, *gorm.DB, []uint) ([]models.Transaction, error) {
	return nil, errors.New("ledger unavailable")
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	return newLedgerFixture(t, nil)
}

func newLedgerFixture(t *testing.T, wrap func(ledgerWriter) ledgerWriter) fixture {
	t.Helper()
	ctx := context.Background()
	client := testdb.Open(t)
	conn := client.DB()

	accountSvc, err := accounts.NewService(repo.NewStore[models.Account](conn))
	require.NoError(t, err)
	customerSvc, err := parties.NewCustomerService(repo.NewStore[models.Customer](conn))
	require.NoError(t, err)
	productSvc, err := products.NewService(repo.NewStore[models.Product](conn))
	require.NoError(t, err)
	ledgerSvc, err := ledger.NewService(ledger.NewRepository(conn))
	require.NoError(t, err)

	var writer ledgerWriter = ledgerSvc
	if wrap != nil {
		writer = wrap(ledgerSvc)
	}
	svc, err := NewService(client, NewRepository(conn), inventory.NewRepository(conn), writer, customerSvc, accountSvc, productSvc, metrics.NewFlowMetrics(nil))
	require.NoError(t, err)

	balance := 0.0
	account, err := accountSvc.Create(ctx, accounts.AccountInput{Name: "Till", AccountType: "asset", Balance: &balance})
	require.NoError(t, err)
	customer, err := customerSvc.Create(ctx, parties.PartyInput{Name: "Jane"})
	require.NoError(t, err)
	widget, err := productSvc.Create(ctx, products.ProductInput{Name: "Widget", CostPrice: floatPtr(5), SellingPrice: floatPtr(8), Stock: intPtr(20)})
	require.NoError(t, err)
	gadget, err := productSvc.Create(ctx, products.ProductInput{Name: "Gadget", CostPrice: floatPtr(7), SellingPrice: floatPtr(12), Stock: intPtr(10)})
	require.NoError(t, err)

	return fixture{client: client, svc: svc, ledger: ledgerSvc, customer: customer.ID, account: account.ID, widget: widget.ID, gadget: gadget.ID}
}

func (f fixture) input(no string, lines ...SaleDetailInput) SaleInput {
	return SaleInput{
		SalesNo:      no,
		CustomerID:   f.customer,
		SaleDate:     "2024-03-01",
		SalesDetails: lines,
		Total:        floatPtr(40),
		Discount:     floatPtr(2),
		AccountID:    f.account,
	}
}

func line(productID uint, qty int) SaleDetailInput {
	return SaleDetailInput{ProductID: productID, Quantity: qty, UnitPrice: floatPtr(8)}
}

func (f fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.client.DB().Model(model).Count(&n).Error)
	return n
}

func (f fixture) stock(t *testing.T, productID uint) int {
	t.Helper()
	var product models.Product
	require.NoError(t, f.client.DB().First(&product, productID).Error)
	return product.Stock
}

func TestCreateSaleDecrementsStock(t *testing.T) {
	f := newFixture(t)

	sale, err := f.svc.Create(context.Background(), f.input("S-001", line(f.widget, 3), line(f.gadget, 1)))
	require.NoError(t, err)

	assert.Equal(t, enums.TransactionStatusPending, sale.Status)
	require.NotNil(t, sale.Customer)
	assert.Equal(t, "Jane", sale.Customer.Name)
	assert.Len(t, sale.SalesDetails, 2)
	assert.Empty(t, sale.SalesPayments)
	assert.Equal(t, 17, f.stock(t, f.widget))
	assert.Equal(t, 9, f.stock(t, f.gadget))
}

func TestCreateSaleWithPaid(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	in := f.input("S-002", line(f.widget, 1))
	in.Paid = floatPtr(8)
	in.Status = "complete"
	sale, err := f.svc.Create(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, enums.TransactionStatusComplete, sale.Status)
	require.Len(t, sale.SalesPayments, 1)
	entries, err := f.ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].SalesPaymentID)
	assert.Equal(t, sale.SalesPayments[0].ID, *entries[0].SalesPaymentID)
	assert.Nil(t, entries[0].PurchasePaymentID)
}

func TestCreateSaleZeroPaidSkipsPayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	in := f.input("S-003", line(f.widget, 1))
	in.Paid = floatPtr(0)
	sale, err := f.svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Empty(t, sale.SalesPayments)

	entries, err := f.ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateSaleRollsBackWhenLedgerFails(t *testing.T) {
	f := newLedgerFixture(t, func(w ledgerWriter) ledgerWriter { return failingLedger{w} })

	in := f.input("S-005", line(f.widget, 4), line(f.gadget, 2))
	in.Paid = floatPtr(16)
	_, err := f.svc.Create(context.Background(), in)
	require.Error(t, err)

	assert.Equal(t, 20, f.stock(t, f.widget))
	assert.Equal(t, 10, f.stock(t, f.gadget))
	assert.Zero(t, f.count(t, &models.Sale{}))
	assert.Zero(t, f.count(t, &models.SaleDetail{}))
	assert.Zero(t, f.count(t, &models.SalesPayment{}))
	assert.Zero(t, f.count(t, &models.Transaction{}))
}

func TestCreateSaleMissingCustomer(t *testing.T) {
	f := newFixture(t)

	in := f.input("S-004", line(f.widget, 5))
	in.CustomerID = 4040
	_, err := f.svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, "Customer not found", pkgerrors.As(err).Message())
	assert.Equal(t, 20, f.stock(t, f.widget))
}

func TestUpdateSaleSwapsLines(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.Create(ctx, f.input("S-010", line(f.widget, 5)))
	require.NoError(t, err)
	require.Equal(t, 15, f.stock(t, f.widget))

	updated, err := f.svc.Update(ctx, created.ID, f.input("S-010", line(f.widget, 2), line(f.gadget, 4)))
	require.NoError(t, err)

	assert.Len(t, updated.SalesDetails, 2)
	assert.Equal(t, 18, f.stock(t, f.widget))
	assert.Equal(t, 6, f.stock(t, f.gadget))
}

func TestUpdateSaleKeepsStatusWhenOmitted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	in := f.input("S-011", line(f.widget, 1))
	in.Status = "complete"
	created, err := f.svc.Create(ctx, in)
	require.NoError(t, err)
	require.Equal(t, enums.TransactionStatusComplete, created.Status)

	updated, err := f.svc.Update(ctx, created.ID, f.input("S-011", line(f.widget, 2)))
	require.NoError(t, err)
	assert.Equal(t, enums.TransactionStatusComplete, updated.Status)

	in = f.input("S-011", line(f.widget, 2))
	in.Status = "pending"
	updated, err = f.svc.Update(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, enums.TransactionStatusPending, updated.Status)
}

func TestUpdateSaleRollsBackWhenSaveFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Create(ctx, f.input("S-012", line(f.widget, 1)))
	require.NoError(t, err)
	target, err := f.svc.Create(ctx, f.input("S-013", line(f.gadget, 2)))
	require.NoError(t, err)
	require.Equal(t, 19, f.stock(t, f.widget))
	require.Equal(t, 8, f.stock(t, f.gadget))

	_, err = f.svc.Update(ctx, target.ID, f.input("S-012", line(f.widget, 5)))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeTransaction))

	assert.Equal(t, 19, f.stock(t, f.widget))
	assert.Equal(t, 8, f.stock(t, f.gadget))

	got, err := f.svc.Get(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, "S-013", got.SalesNo)
	require.Len(t, got.SalesDetails, 1)
	assert.Equal(t, f.gadget, got.SalesDetails[0].ProductID)
	assert.Equal(t, 2, got.SalesDetails[0].Quantity)
}

func TestDeleteSaleRollsBackWhenReversalFails(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t, func(w ledgerWriter) ledgerWriter { return failingReversal{w} })

	in := f.input("S-021", line(f.widget, 3))
	in.Paid = floatPtr(24)
	created, err := f.svc.Create(ctx, in)
	require.NoError(t, err)

	err = f.svc.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, MessageDeleteFailed, pkgerrors.As(err).Message())

	assert.Equal(t, 17, f.stock(t, f.widget))
	assert.Equal(t, int64(1), f.count(t, &models.SaleDetail{}))
	assert.Equal(t, int64(1), f.count(t, &models.SalesPayment{}))
	assert.Equal(t, int64(1), f.count(t, &models.Transaction{}))
}

func TestDeleteSaleRestoresStockAndReversesLedger(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	in := f.input("S-020", line(f.gadget, 4))
	in.Paid = floatPtr(48)
	created, err := f.svc.Create(ctx, in)
	require.NoError(t, err)
	require.Equal(t, 6, f.stock(t, f.gadget))

	require.NoError(t, f.svc.Delete(ctx, created.ID))
	assert.Equal(t, 10, f.stock(t, f.gadget))

	entries, err := f.ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Amount.Add(entries[1].Amount).Equal(decimal.Zero))
	assert.Equal(t, enums.LedgerEntryKindReversal, entries[1].Kind)

	_, err = f.svc.Get(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, MessageNotFound, pkgerrors.As(err).Message())
}

func TestDeleteMissingSale(t *testing.T) {
	f := newFixture(t)
	err := f.svc.Delete(context.Background(), 77)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
