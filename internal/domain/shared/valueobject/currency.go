package valueobject

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	IDR Currency = "IDR" // Indonesian Rupiah (default)
	USD Currency = "USD" // US Dollar
	EUR Currency = "EUR" // Euro
	AUD Currency = "AUD" // Australian Dollar
	SGD Currency = "SGD" // Singapore Dollar
	MYR Currency = "MYR" // Malaysian Ringgit
)

// DefaultCurrency is the currency assumed when an ingestion event omits one.
// Untyped so it assigns to both Currency and plain string fields.
const DefaultCurrency = "IDR"

// IsValid checks if the currency is one the system settles in
func (c Currency) IsValid() bool {
	switch c {
	case IDR, USD, EUR, AUD, SGD, MYR:
		return true
	}
	return false
}

// String returns the string representation of Currency
func (c Currency) String() string {
	return string(c)
}
