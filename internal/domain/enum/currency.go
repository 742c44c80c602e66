package enum

// Currency identifies the currency an invoice was issued in. CFA is the
// base currency every conversion value is normalized into.
type Currency string

const (
	CurrencyCFA Currency = "CFA"
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

func (c Currency) String() string {
	return string(c)
}

// Valid reports whether c is a supported currency
func (c Currency) Valid() bool {
	switch c {
	case CurrencyCFA, CurrencyEUR, CurrencyUSD:
		return true
	}
	return false
}
