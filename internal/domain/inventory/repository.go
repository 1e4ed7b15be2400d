package inventory

import "github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"

type ProductRepository interface {
	domain.Repository[Product, CreateProductInput, UpdateProductInput]

	Search(query string) []Product
	GetByStatus(status StockStatus) []Product

	// RefreshStatuses recomputes every product's status and returns the ones
	// whose stored status was stale.
	RefreshStatuses() []Product
}

type SupplierInvoiceRepository interface {
	domain.Repository[SupplierInvoice, CreateSupplierInvoiceInput, UpdateSupplierInvoiceInput]

	GetByStatus(status InvoiceStatus) []SupplierInvoice

	// SweepOverdue moves pending invoices due before today to overdue and
	// returns the invoices it changed.
	SweepOverdue(today domain.Date) []SupplierInvoice
}
