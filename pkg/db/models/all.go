package models

// All lists every model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&Account{},
		&Customer{},
		&Vendor{},
		&Product{},
		&Expense{},
		&Purchase{},
		&PurchaseDetail{},
		&PurchasePayment{},
		&Sale{},
		&SaleDetail{},
		&SalesPayment{},
		&Transaction{},
	}
}
