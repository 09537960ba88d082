package entity

import "github.com/shopspring/decimal"

// MoneyScale decimales admitidos en montos; las columnas son numeric(18,2).
const MoneyScale = 2

// HasMoneyScale indica si d se puede guardar sin redondeo (1.50 sí, 0.004 no).
func HasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}
