// Package valueobject contains domain value objects for the expense ledger.
package valueobject

import "github.com/shopspring/decimal"

// ReconciliationConfig contains the thresholds used to classify invoices as open.
type ReconciliationConfig struct {
	// OpenTolerance is the balance an invoice may still owe and be considered settled.
	OpenTolerance decimal.Decimal // 1.00
	// RoundPlaces is applied to the balance before comparing it with OpenTolerance.
	RoundPlaces int32 // 2
}

// DefaultReconciliationConfig returns the default reconciliation configuration.
func DefaultReconciliationConfig() ReconciliationConfig {
	return ReconciliationConfig{
		OpenTolerance: decimal.NewFromInt(1),
		RoundPlaces:   MoneyPlaces,
	}
}

// IsOpen reports whether the rounded balance exceeds the tolerance.
func (c ReconciliationConfig) IsOpen(status PaymentStatus) bool {
	return status.BalanceDue.Round(c.RoundPlaces).GreaterThan(c.OpenTolerance)
}
