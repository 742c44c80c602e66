package enum

// InvoiceType distinguishes quotes from invoices. Both share one schema;
// only invoices count toward financial statistics.
type InvoiceType string

const (
	InvoiceTypeQuote   InvoiceType = "quote"
	InvoiceTypeInvoice InvoiceType = "invoice"
)

func (t InvoiceType) String() string {
	return string(t)
}

// Valid reports whether t is a known document type
func (t InvoiceType) Valid() bool {
	return t == InvoiceTypeQuote || t == InvoiceTypeInvoice
}
