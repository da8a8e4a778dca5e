package migrate

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMigration(t *testing.T, suffix string) string {
	t.Helper()
	matches, err := fs.Glob(Migrations, EmbeddedDir+"/*_"+suffix+".sql")
	require.NoError(t, err)
	require.NotEmpty(t, matches, "no migration matching %s", suffix)

	data, err := fs.ReadFile(Migrations, matches[0])
	require.NoError(t, err)
	return string(data)
}

func TestPurchaseMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "create_purchases")

	for _, sub := range []string{
		"CREATE TABLE IF NOT EXISTS purchases",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_purchases_purchase_no",
		"FOREIGN KEY (vendor_id) REFERENCES vendors(id)",
		"FOREIGN KEY (product_id) REFERENCES products(id)",
		"CHECK (quantity > 0)",
		"CHECK (status IN ('pending', 'complete'))",
		"DROP TABLE IF EXISTS purchases",
	} {
		assert.Contains(t, content, sub)
	}
}

func TestSalesMigrationMirrorsPurchases(t *testing.T) {
	content := readMigration(t, "create_sales")

	for _, sub := range []string{
		"CREATE TABLE IF NOT EXISTS sales",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_sales_sales_no",
		"FOREIGN KEY (customer_id) REFERENCES customers(id)",
		"FOREIGN KEY (sale_id) REFERENCES sales(id)",
		"DROP TABLE IF EXISTS sales_payments",
	} {
		assert.Contains(t, content, sub)
	}
	assert.NotContains(t, content, "purchase")
}

func TestTransactionMigrationHasNoPaymentForeignKeys(t *testing.T) {
	content := readMigration(t, "create_transactions")

	assert.Contains(t, content, "CHECK (kind IN ('payment', 'reversal'))")
	assert.NotContains(t, content, "REFERENCES purchase_payments")
	assert.NotContains(t, content, "REFERENCES sales_payments")
}

func TestValidateDirAcceptsEmbeddedMigrations(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad-name.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))

	err := ValidateDir(dir)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid migration filename"))
}

func TestCreateSQLMigrationWritesTemplate(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Expense Notes")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_add_expense_notes.sql"))
	require.NoError(t, ValidateDir(dir))
}
