package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidName     = errors.New("product name must not be empty")
	ErrNegativePrice   = errors.New("product price must not be negative")
	ErrNegativeStock   = errors.New("product inventory must not be negative")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)

// Product is the catalog entry the order workflow reads prices and
// availability from. The catalog service owns everything else about it.
type Product struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	Brand     string
	Category  string
	Price     decimal.Decimal
	Images    []string
	Inventory int
	Active    bool
}

// Validate enforces invariants on the product.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Inventory < 0 {
		return ErrNegativeStock
	}
	return nil
}

// Available reports whether the requested quantity can be fulfilled.
func (p *Product) Available(quantity int) bool {
	return p.Active && quantity > 0 && p.Inventory >= quantity
}

// PrimaryImage returns the first catalog image, if any.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
