// Package services is the caller boundary over the mutation catalogue: it
// validates every request against the current snapshot before invoking an
// engine transition, and wraps the aggregation and insight collaborators.
package services

import (
	"context"
	"time"

	"stationpro-api/internal/models"
	"stationpro-api/internal/reports"
)

// CompleteShiftRequest proposes a new end meter index for a pump. Volume,
// unit price and amount are computed by the service at commit time.
type CompleteShiftRequest struct {
	PumpID   string  `json:"pumpId" validate:"required"`
	EndIndex float64 `json:"endIndex" validate:"required,gt=0"`
}

// RecordSaleRequest records a shop sale. The stock decrement is composed
// with the sale append into one snapshot transition.
type RecordSaleRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// AdjustStockRequest applies a signed stock delta to a product.
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// RestockRequest records an inbound delivery for a product. The purchase
// price is snapshotted from the product at restock time.
type RestockRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// ProductRequest creates or replaces a product.
type ProductRequest struct {
	Name          string  `json:"name" validate:"required,min=1,max=255"`
	Category      string  `json:"category" validate:"required"`
	PurchasePrice float64 `json:"purchasePrice" validate:"gte=0"`
	SalePrice     float64 `json:"salePrice" validate:"required,gt=0"`
	Stock         int     `json:"stock" validate:"gte=0"`
	MinStock      int     `json:"minStock" validate:"gte=0"`
}

// ExpenseRequest records an expense.
type ExpenseRequest struct {
	Label    string    `json:"label" validate:"required"`
	Category string    `json:"category" validate:"required"`
	Amount   float64   `json:"amount" validate:"required,gt=0"`
	Date     time.Time `json:"date" validate:"required"`
}

// SetFuelPriceRequest updates the unit price of an existing fuel type.
type SetFuelPriceRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

// AddFuelTypeRequest introduces a new fuel type with its initial price.
type AddFuelTypeRequest struct {
	FuelType     string  `json:"fuelType" validate:"required"`
	InitialPrice float64 `json:"initialPrice" validate:"required,gt=0"`
}

// RenameFuelTypeRequest moves a fuel type to a new name, rewriting every
// tank and pump that references it.
type RenameFuelTypeRequest struct {
	NewType string `json:"newType" validate:"required"`
}

// UpdateTankRequest edits a tank. The current level is preserved; it only
// changes through completed shifts.
type UpdateTankRequest struct {
	FuelType      string  `json:"fuelType" validate:"required"`
	Capacity      float64 `json:"capacity" validate:"required,gt=0"`
	CriticalLevel float64 `json:"criticalLevel" validate:"gte=0"`
}

// AddPumpRequest attaches a new pump to a tank. The pump's fuel type is
// derived from the tank.
type AddPumpRequest struct {
	Name      string  `json:"name" validate:"required"`
	TankID    string  `json:"tankId" validate:"required"`
	LastIndex float64 `json:"lastIndex" validate:"gte=0"`
}

// UpdatePumpRequest edits a pump. The fuel type is re-derived from the
// (possibly new) tank; a provided meter index may only move forward.
type UpdatePumpRequest struct {
	Name      string   `json:"name" validate:"required"`
	TankID    string   `json:"tankId" validate:"required"`
	LastIndex *float64 `json:"lastIndex,omitempty"`
}

// SettingsRequest replaces the station settings wholesale.
type SettingsRequest struct {
	StationName  string `json:"stationName" validate:"required"`
	ManagerName  string `json:"managerName" validate:"required"`
	Phone        string `json:"phone"`
	Email        string `json:"email" validate:"omitempty,email"`
	Address      string `json:"address"`
	Currency     string `json:"currency" validate:"required"`
	OpeningHours string `json:"openingHours"`
}

// StationService validates requests and applies mutation transitions through
// the synchronization layer.
type StationService interface {
	State(ctx context.Context) *models.StationState

	CompleteShift(ctx context.Context, req *CompleteShiftRequest) (*models.ShiftRecord, error)

	RecordSale(ctx context.Context, req *RecordSaleRequest) (*models.Sale, error)
	AdjustStock(ctx context.Context, productID string, req *AdjustStockRequest) error
	AddRestock(ctx context.Context, productID string, req *RestockRequest) (*models.RestockRecord, error)
	AddProduct(ctx context.Context, req *ProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, req *ProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	AddExpense(ctx context.Context, req *ExpenseRequest) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id string) error

	SetFuelPrice(ctx context.Context, fuelType string, req *SetFuelPriceRequest) error
	AddFuelType(ctx context.Context, req *AddFuelTypeRequest) error
	DeleteFuelType(ctx context.Context, fuelType string) error
	RenameFuelType(ctx context.Context, oldType string, req *RenameFuelTypeRequest) error

	UpdateTank(ctx context.Context, id string, req *UpdateTankRequest) (*models.Tank, error)
	AddPump(ctx context.Context, req *AddPumpRequest) (*models.Pump, error)
	UpdatePump(ctx context.Context, id string, req *UpdatePumpRequest) (*models.Pump, error)

	UpdateSettings(ctx context.Context, req *SettingsRequest) error
}

// StockAlert is the dashboard's stock state for one product.
type StockAlert struct {
	ProductID string             `json:"productId"`
	Name      string             `json:"name"`
	Stock     int                `json:"stock"`
	MinStock  int                `json:"minStock"`
	Status    reports.StockLevel `json:"status"`
}

// Dashboard bundles the KPI summary, tank status and stock state rendered on
// the main view.
type Dashboard struct {
	Summary  reports.Summary      `json:"summary"`
	Tanks    []reports.TankStatus `json:"tanks"`
	Stock    []StockAlert         `json:"stock"`
	Currency string               `json:"currency"`
}

// ReportService computes derived views over the current snapshot.
type ReportService interface {
	Dashboard(ctx context.Context) *Dashboard
	PeriodReport(ctx context.Context, start, end time.Time) *reports.PeriodReport
	ExportReport(ctx context.Context, start, end time.Time, format string) ([]byte, string, error)
}

// InsightService drives the external insight generator. Generation failures
// surface as a static message, never as an error to the caller.
type InsightService interface {
	Generate(ctx context.Context) (string, error)
	Generating() bool
	LastInsight() string
}
