package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product is a shop item. Stock is expected to stay non-negative but the
// mutation layer does not enforce a floor; validation happens at the caller
// boundary.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	PurchasePrice float64 `json:"purchasePrice"`
	SalePrice     float64 `json:"salePrice"`
	Stock         int     `json:"stock"`
	MinStock      int     `json:"minStock"`
}

// NewProduct creates a product with a generated ID.
func NewProduct(name, category string, purchasePrice, salePrice float64, stock, minStock int) *Product {
	return &Product{
		ID:            uuid.New().String(),
		Name:          name,
		Category:      category,
		PurchasePrice: purchasePrice,
		SalePrice:     salePrice,
		Stock:         stock,
		MinStock:      minStock,
	}
}

// Validate validates the product data.
func (p *Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("product ID is required")
	}

	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product name is required")
	}

	if p.SalePrice <= 0 {
		return fmt.Errorf("sale price must be positive")
	}

	if p.PurchasePrice < 0 {
		return fmt.Errorf("purchase price cannot be negative")
	}

	return nil
}

// Sale is an immutable shop sale record. TotalPrice snapshots the product's
// sale price at sale time.
type Sale struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	ProductID  string    `json:"productId"`
	Quantity   int       `json:"quantity"`
	TotalPrice float64   `json:"totalPrice"`
}

// NewSale builds a sale for the given product and quantity at the product's
// current sale price.
func NewSale(product *Product, quantity int) *Sale {
	return &Sale{
		ID:         uuid.New().String(),
		Timestamp:  time.Now(),
		ProductID:  product.ID,
		Quantity:   quantity,
		TotalPrice: product.SalePrice * float64(quantity),
	}
}

// RestockRecord is an immutable inbound inventory event. PurchasePrice
// snapshots the product's purchase price at restock time. History is kept
// most-recent-first.
type RestockRecord struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"productId"`
	Quantity      int       `json:"quantity"`
	PurchasePrice float64   `json:"purchasePrice"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewRestockRecord builds a restock event for the given product.
func NewRestockRecord(product *Product, quantity int) *RestockRecord {
	return &RestockRecord{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		Quantity:      quantity,
		PurchasePrice: product.PurchasePrice,
		Timestamp:     time.Now(),
	}
}
