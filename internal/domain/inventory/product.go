package inventory

import (
	"strings"
	"time"

	"github.com/dmehra2102/prod-golang-projects/psiklinik/internal/domain"
	"github.com/shopspring/decimal"
)

type StockStatus string

const (
	StockNormal StockStatus = "normal"
	StockLow    StockStatus = "low"
	StockOut    StockStatus = "out"
)

func (s StockStatus) IsValid() bool {
	switch s {
	case StockNormal, StockLow, StockOut:
		return true
	}
	return false
}

// DeriveStockStatus: out iff stock is zero, low iff 0 < stock <= minStock.
func DeriveStockStatus(stock, minStock int) StockStatus {
	switch {
	case stock == 0:
		return StockOut
	case stock <= minStock:
		return StockLow
	}
	return StockNormal
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"minStock"`
	Price       decimal.Decimal `json:"price"`
	Supplier    string          `json:"supplier"`
	LastUpdated domain.Date     `json:"lastUpdated"`
	Status      StockStatus     `json:"status"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
}

func (p Product) Identifier() string { return p.ID }

// StockValue is stock × price.
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// NeedsAttention is true for low and out-of-stock products.
func (p Product) NeedsAttention() bool {
	return p.Status == StockLow || p.Status == StockOut
}

// RefreshStatus is the store derive hook for products.
func RefreshStatus(p *Product) {
	p.Status = DeriveStockStatus(p.Stock, p.MinStock)
}

// Matches performs the case-insensitive name/category/supplier search.
func (p Product) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Category), q) ||
		strings.Contains(strings.ToLower(p.Supplier), q)
}

type CreateProductInput struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"minStock"`
	Price       decimal.Decimal `json:"price"`
	Supplier    string          `json:"supplier"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
}

func (in CreateProductInput) Validate() error {
	var v domain.Validator
	v.Required(in.Name, "name")
	v.Check(in.Stock >= 0, "stock must not be negative")
	v.Check(in.MinStock >= 0, "minStock must not be negative")
	v.NonNegative(in.Price, "price")
	return v.Err()
}

func (in CreateProductInput) Build(id string, now time.Time) Product {
	return Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Category:    in.Category,
		Stock:       in.Stock,
		MinStock:    in.MinStock,
		Price:       in.Price,
		Supplier:    in.Supplier,
		LastUpdated: domain.DateOf(now),
		Description: in.Description,
		Image:       in.Image,
	}
}

type UpdateProductInput struct {
	Name        *string          `json:"name,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	MinStock    *int             `json:"minStock,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Supplier    *string          `json:"supplier,omitempty"`
	Description *string          `json:"description,omitempty"`
	Image       *string          `json:"image,omitempty"`
}

func (in UpdateProductInput) Validate() error {
	var v domain.Validator
	if in.Name != nil {
		v.Required(*in.Name, "name")
	}
	if in.Stock != nil {
		v.Check(*in.Stock >= 0, "stock must not be negative")
	}
	if in.MinStock != nil {
		v.Check(*in.MinStock >= 0, "minStock must not be negative")
	}
	if in.Price != nil {
		v.NonNegative(*in.Price, "price")
	}
	return v.Err()
}

// Apply merges the patch; status is recomputed by the store afterwards.
func (in UpdateProductInput) Apply(p *Product, now time.Time) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.MinStock != nil {
		p.MinStock = *in.MinStock
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Supplier != nil {
		p.Supplier = *in.Supplier
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	p.LastUpdated = domain.DateOf(now)
}
