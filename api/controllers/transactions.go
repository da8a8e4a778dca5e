package controllers

import (
	"net/http"

	"github.com/angelmondragon/stockledger-backend/pkg/db/models"
	"github.com/angelmondragon/stockledger-backend/pkg/logger"
)

// Transactions exposes the ledger read-only. Entries are written by the
// purchase, sale and payment flows.
func Transactions(svc Reader[models.Transaction], logg *logger.Logger) (list, get http.HandlerFunc) {
	return List(svc, TransactionResource, logg), Get(svc, TransactionResource, logg)
}
