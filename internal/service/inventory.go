package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/inventory"
	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain/notification"
)

type (
	ProductResource = ResourceService[
		inventory.Product, inventory.CreateProductInput, inventory.UpdateProductInput,
	]
	SupplierInvoiceResource = ResourceService[
		inventory.SupplierInvoice, inventory.CreateSupplierInvoiceInput, inventory.UpdateSupplierInvoiceInput,
	]
)

type InventoryService struct {
	Products         *ProductResource
	SupplierInvoices *SupplierInvoiceResource

	products      inventory.ProductRepository
	invoices      inventory.SupplierInvoiceRepository
	notifications *NotificationService
	deps          Deps
}

// NewInventoryService wires both inventory resources. notifications may be
// nil, in which case low-stock alerts are only logged.
func NewInventoryService(
	products inventory.ProductRepository,
	invoices inventory.SupplierInvoiceRepository,
	notifications *NotificationService,
	deps Deps,
) *InventoryService {
	s := &InventoryService{
		products:      products,
		invoices:      invoices,
		notifications: notifications,
		deps:          deps,
	}

	s.Products = NewResourceService("products", products, inventory.ErrProductNotFound, deps).
		WithFilter("status", byEnum("status", products.GetByStatus)).
		WithFilter("q", byKey(products.Search)).
		OnSave(s.alertLowStock)

	s.SupplierInvoices = NewResourceService("supplier-invoices", invoices, inventory.ErrSupplierInvoiceNotFound, deps).
		WithFilter("status", byEnum("status", invoices.GetByStatus))

	return s
}

func (s *InventoryService) Search(ctx context.Context, query string) []inventory.Product {
	_, span := s.Products.start(ctx, "Search", attribute.String("query", query))
	defer span.End()
	return s.products.Search(query)
}

// LowStock lists products that are low or out of stock, in store order.
func (s *InventoryService) LowStock(ctx context.Context) []inventory.Product {
	_, span := s.Products.start(ctx, "LowStock")
	defer span.End()

	var out []inventory.Product
	for _, p := range s.products.GetAll() {
		if p.NeedsAttention() {
			out = append(out, p)
		}
	}
	return out
}

// RefreshStockStatuses recomputes every stored product status and reports how
// many were stale.
func (s *InventoryService) RefreshStockStatuses(ctx context.Context, actor Actor) int {
	ctx, span := s.Products.start(ctx, "RefreshStatuses")
	defer span.End()

	changed := s.products.RefreshStatuses()
	for _, p := range changed {
		s.deps.Audit.LogAsync(ctx, AuditEntry{
			Actor: actor, Action: domain.ActionSweep, ResourceType: s.Products.Resource(), ResourceID: p.ID,
			Changes: map[string]inventory.StockStatus{"status": p.Status},
		})
	}
	span.SetAttributes(attribute.Int("changed", len(changed)))
	return len(changed)
}

// SweepOverdueInvoices flips pending supplier invoices whose due date is
// before today to overdue.
func (s *InventoryService) SweepOverdueInvoices(ctx context.Context, actor Actor) []inventory.SupplierInvoice {
	ctx, span := s.SupplierInvoices.start(ctx, "SweepOverdue")
	defer span.End()

	today := s.deps.Today()
	changed := s.invoices.SweepOverdue(today)
	for _, inv := range changed {
		s.deps.Audit.LogAsync(ctx, AuditEntry{
			Actor: actor, Action: domain.ActionSweep, ResourceType: s.SupplierInvoices.Resource(), ResourceID: inv.ID,
			Changes: map[string]inventory.InvoiceStatus{"status": inv.Status},
		})
	}
	if s.deps.Metrics != nil {
		s.deps.Metrics.SweepTransitions.WithLabelValues("supplier_invoice").Add(float64(len(changed)))
	}
	if len(changed) > 0 {
		s.deps.Log.Info("supplier invoices marked overdue",
			zap.Int("count", len(changed)),
			zap.String("today", today.String()),
		)
	}
	span.SetAttributes(attribute.Int("changed", len(changed)))
	return changed
}

// alertLowStock notifies once when a product crosses into low or out of stock.
func (s *InventoryService) alertLowStock(ctx context.Context, actor Actor, before *inventory.Product, after inventory.Product) {
	if !after.NeedsAttention() || (before != nil && before.NeedsAttention()) {
		return
	}
	if s.deps.Metrics != nil {
		s.deps.Metrics.LowStockAlertsTotal.Inc()
	}

	in := notification.CreateNotificationInput{
		Title:   "Düşük Stok Uyarısı",
		Message: fmt.Sprintf("%s stoku azaldı (%d adet kaldı)", after.Name, after.Stock),
		Type:    notification.TypeWarning,
		UserID:  actor.UserID,
	}
	if after.Status == inventory.StockOut {
		in.Title = "Stok Tükendi"
		in.Message = fmt.Sprintf("%s stokta kalmadı", after.Name)
		in.Type = notification.TypeError
	}

	s.deps.Log.Warn("product needs restocking",
		zap.String("product_id", after.ID),
		zap.String("status", string(after.Status)),
		zap.Int("stock", after.Stock),
	)
	if s.notifications != nil {
		s.notifications.Notify(ctx, in)
	}
}
