// Package valueobject contains domain value objects for the expense ledger.
package valueobject

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of fractional digits stored for currency amounts.
const MoneyPlaces int32 = 2

// PaymentStatus is the payment state of an invoice derived from its payments.
// It is never stored.
type PaymentStatus struct {
	ExpectedAmount decimal.Decimal
	TotalPaid      decimal.Decimal
	BalanceDue     decimal.Decimal
	IsPaid         bool
	PaymentCount   int
}

// ComputePaymentStatus sums the payments with exact decimal addition and derives
// the balance due. Payments are summed regardless of their transaction type.
func ComputePaymentStatus(expectedAmount decimal.Decimal, payments []decimal.Decimal) PaymentStatus {
	totalPaid := decimal.Zero
	for _, amount := range payments {
		totalPaid = totalPaid.Add(amount)
	}

	balance := expectedAmount.Sub(totalPaid)

	return PaymentStatus{
		ExpectedAmount: expectedAmount,
		TotalPaid:      totalPaid,
		BalanceDue:     balance,
		IsPaid:         balance.LessThanOrEqual(decimal.Zero),
		PaymentCount:   len(payments),
	}
}

// FormatMoney renders an amount with exactly two fractional digits.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyPlaces)
}

// IsValidAmount reports whether d is a positive amount with at most two fractional digits.
func IsValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Round(MoneyPlaces))
}
