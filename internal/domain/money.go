package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// MaxAmount is the exclusive upper bound of every stored amount.
var MaxAmount = decimal.New(1, 10)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// MinorUnits converts the amount to the smallest currency unit, e.g. cents,
// rounding half away from zero.
func (m Money) MinorUnits() int64 {
	return m.Amount.Shift(m.scale()).Round(0).IntPart()
}

// String renders the amount with the standard number of decimals of its currency.
func (m Money) String() string {
	return m.Amount.StringFixed(m.scale())
}

func (m Money) scale() int32 {
	scale, _ := currency.Standard.Rounding(m.Currency)
	return int32(scale)
}

// ValidAmount reports whether amount is non-negative, below MaxAmount and
// carries no more decimals than the currency allows.
func ValidAmount(amount decimal.Decimal, unit currency.Unit) bool {
	if amount.IsNegative() || !amount.LessThan(MaxAmount) {
		return false
	}

	m := Money{Amount: amount, Currency: unit}
	return amount.Equal(amount.Truncate(m.scale()))
}
