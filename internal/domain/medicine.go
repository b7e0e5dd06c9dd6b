package domain

import "github.com/shopspring/decimal"

// Medicine is one generic-medicine catalog entry from the Jan Aushadhi
// product list.
type Medicine struct {
	Code     string
	Name     string
	UnitSize string
	MRP      decimal.Decimal
}
