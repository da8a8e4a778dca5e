package models

import "github.com/shopspring/decimal"

func init() {
	// money serialises as a JSON number, matching the request payloads
	decimal.MarshalJSONWithoutQuotes = true
}
