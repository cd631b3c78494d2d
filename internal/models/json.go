package models

import "github.com/shopspring/decimal"

// Money is rendered as a JSON number, matching what API clients already
// parse.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
