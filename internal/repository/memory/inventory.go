package memory

import (
	"strings"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/inventory"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/store"
)

type productTable = table[inventory.Product, inventory.CreateProductInput, inventory.UpdateProductInput]

type ProductRepository struct {
	*productTable
}

var _ inventory.ProductRepository = (*ProductRepository)(nil)

func NewProductRepository(opts Options) *ProductRepository {
	s := store.New("products",
		store.WithIDs[inventory.Product](opts.ids("prd_")),
		store.WithDerive(inventory.RefreshStatus),
		store.WithIndex("status", func(p inventory.Product) string { return string(p.Status) }),
	)
	return &ProductRepository{productTable: &productTable{s: s, now: opts.clock()}}
}

// Search matches name, category or supplier case-insensitively. A blank
// query returns every product.
func (r *ProductRepository) Search(query string) []inventory.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.s.All()
	}
	return r.s.Filter(func(p inventory.Product) bool { return p.Matches(query) })
}

func (r *ProductRepository) GetByStatus(status inventory.StockStatus) []inventory.Product {
	return r.s.Lookup("status", string(status))
}

func (r *ProductRepository) RefreshStatuses() []inventory.Product {
	stale := func(p inventory.Product) bool {
		return p.Status != inventory.DeriveStockStatus(p.Stock, p.MinStock)
	}
	return r.s.UpdateWhere(stale, inventory.RefreshStatus)
}

type supplierInvoiceTable = table[inventory.SupplierInvoice, inventory.CreateSupplierInvoiceInput, inventory.UpdateSupplierInvoiceInput]

type SupplierInvoiceRepository struct {
	*supplierInvoiceTable
}

var _ inventory.SupplierInvoiceRepository = (*SupplierInvoiceRepository)(nil)

func NewSupplierInvoiceRepository(opts Options) *SupplierInvoiceRepository {
	s := store.New("supplier_invoices",
		store.WithIDs[inventory.SupplierInvoice](opts.ids("sinv_")),
		store.WithIndex("status", func(i inventory.SupplierInvoice) string { return string(i.Status) }),
	)
	return &SupplierInvoiceRepository{supplierInvoiceTable: &supplierInvoiceTable{s: s, now: opts.clock()}}
}

func (r *SupplierInvoiceRepository) GetByStatus(status inventory.InvoiceStatus) []inventory.SupplierInvoice {
	return r.s.Lookup("status", string(status))
}

func (r *SupplierInvoiceRepository) SweepOverdue(today domain.Date) []inventory.SupplierInvoice {
	return r.s.UpdateWhere(
		func(i inventory.SupplierInvoice) bool { return i.IsOverdue(today) },
		inventory.MarkOverdue,
	)
}
