// Package reports computes derived views over a station snapshot: dashboard
// KPIs, tank fill status, stock classification and period reports. Every
// function is pure and deterministic; calling twice with the same snapshot
// yields identical results.
package reports

import (
	"math"
	"time"

	"stationpro-api/internal/models"
)

// UnknownLabel is the fallback group label used when a shift or sale
// references a pump or product that no longer exists in the snapshot.
const UnknownLabel = "Unknown"

// Tank severity band thresholds, in percent of capacity. These are fixed
// design constants; a tank's own CriticalLevel field is not consulted.
const (
	criticalPercent = 20
	warningPercent  = 40
)

// Severity classifies a tank fill ratio.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityNormal   Severity = "normal"
)

// StockLevel classifies a product's stock against its minimum.
type StockLevel string

const (
	StockOut       StockLevel = "out_of_stock"
	StockLow       StockLevel = "low_stock"
	StockAvailable StockLevel = "available"
)

// Summary holds the headline KPIs over a set of records.
type Summary struct {
	FuelRevenue   float64 `json:"fuelRevenue"`
	ShopRevenue   float64 `json:"shopRevenue"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetProfit     float64 `json:"netProfit"`
}

// Summarize computes the KPI summary over the whole snapshot.
func Summarize(state *models.StationState) Summary {
	return summarize(state.Shifts, state.Sales, state.Expenses)
}

func summarize(shifts []models.ShiftRecord, sales []models.Sale, expenses []models.Expense) Summary {
	var s Summary
	for _, shift := range shifts {
		s.FuelRevenue += shift.TotalAmount
	}
	for _, sale := range sales {
		s.ShopRevenue += sale.TotalPrice
	}
	for _, e := range expenses {
		s.TotalExpenses += e.Amount
	}
	s.NetProfit = s.FuelRevenue + s.ShopRevenue - s.TotalExpenses
	return s
}

// TankStatus is the fill state of one tank.
type TankStatus struct {
	TankID       string   `json:"tankId"`
	FuelType     string   `json:"fuelType"`
	CurrentLevel float64  `json:"currentLevel"`
	Capacity     float64  `json:"capacity"`
	Percentage   int      `json:"percentage"`
	Severity     Severity `json:"severity"`
}

// TankStatuses computes the fill ratio and severity band for every tank, in
// snapshot order.
func TankStatuses(state *models.StationState) []TankStatus {
	statuses := make([]TankStatus, 0, len(state.Tanks))
	for _, t := range state.Tanks {
		pct := 0
		if t.Capacity > 0 {
			pct = int(math.Round(t.CurrentLevel / t.Capacity * 100))
		}
		statuses = append(statuses, TankStatus{
			TankID:       t.ID,
			FuelType:     t.FuelType,
			CurrentLevel: t.CurrentLevel,
			Capacity:     t.Capacity,
			Percentage:   pct,
			Severity:     classifyFill(pct),
		})
	}
	return statuses
}

func classifyFill(percentage int) Severity {
	switch {
	case percentage < criticalPercent:
		return SeverityCritical
	case percentage < warningPercent:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}

// ClassifyStock classifies a product's stock. Boundaries are exact: zero is
// out of stock, stock equal to the minimum is low, one above is available.
func ClassifyStock(p models.Product) StockLevel {
	switch {
	case p.Stock == 0:
		return StockOut
	case p.Stock <= p.MinStock:
		return StockLow
	default:
		return StockAvailable
	}
}

// LowStockProducts returns the products at or below their minimum stock, in
// snapshot order.
func LowStockProducts(state *models.StationState) []models.Product {
	var low []models.Product
	for _, p := range state.Products {
		if p.Stock <= p.MinStock {
			low = append(low, p)
		}
	}
	return low
}

// Period is an inclusive calendar-day range. End is extended to the last
// millisecond of its day; there is no timezone normalization beyond the local
// calendar day.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewPeriod builds a period from two dates, extending the end to 23:59:59.999
// local time of its day.
func NewPeriod(start, end time.Time) Period {
	endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999000000, end.Location())
	return Period{Start: start, End: endOfDay}
}

// Contains reports whether t falls within the period, inclusive on both ends.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// FilterPeriod selects the shifts, sales and expenses whose timestamp falls
// within the period. The result is a strict subset of the snapshot's history.
func FilterPeriod(state *models.StationState, period Period) ([]models.ShiftRecord, []models.Sale, []models.Expense) {
	var shifts []models.ShiftRecord
	for _, s := range state.Shifts {
		if period.Contains(s.Timestamp) {
			shifts = append(shifts, s)
		}
	}

	var sales []models.Sale
	for _, s := range state.Sales {
		if period.Contains(s.Timestamp) {
			sales = append(sales, s)
		}
	}

	var expenses []models.Expense
	for _, e := range state.Expenses {
		if period.Contains(e.Date) {
			expenses = append(expenses, e)
		}
	}

	return shifts, sales, expenses
}

// FuelRollup totals shift volume and revenue for one fuel type.
type FuelRollup struct {
	FuelType string  `json:"fuelType"`
	Volume   float64 `json:"volume"`
	Amount   float64 `json:"amount"`
}

// ProductRollup totals sold quantity and revenue for one product name.
type ProductRollup struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// ExpenseRollup totals expense amount for one category.
type ExpenseRollup struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// FuelSalesByType groups shifts by the fuel type of their resolved pump,
// falling back to UnknownLabel when the pump is missing. Groups appear in
// insertion order of first occurrence.
func FuelSalesByType(state *models.StationState, shifts []models.ShiftRecord) []FuelRollup {
	index := make(map[string]int)
	var rollups []FuelRollup

	for _, s := range shifts {
		fuelType := UnknownLabel
		if pump := state.PumpByID(s.PumpID); pump != nil {
			fuelType = pump.FuelType
		}

		i, ok := index[fuelType]
		if !ok {
			i = len(rollups)
			index[fuelType] = i
			rollups = append(rollups, FuelRollup{FuelType: fuelType})
		}
		rollups[i].Volume += s.VolumeSold
		rollups[i].Amount += s.TotalAmount
	}

	return rollups
}

// ShopSalesByProduct groups sales by the resolved product name, falling back
// to UnknownLabel when the product is missing. Groups appear in insertion
// order of first occurrence.
func ShopSalesByProduct(state *models.StationState, sales []models.Sale) []ProductRollup {
	index := make(map[string]int)
	var rollups []ProductRollup

	for _, s := range sales {
		name := UnknownLabel
		if product := state.ProductByID(s.ProductID); product != nil {
			name = product.Name
		}

		i, ok := index[name]
		if !ok {
			i = len(rollups)
			index[name] = i
			rollups = append(rollups, ProductRollup{Name: name})
		}
		rollups[i].Quantity += s.Quantity
		rollups[i].Revenue += s.TotalPrice
	}

	return rollups
}

// ExpensesByCategory groups expenses by category in insertion order of first
// occurrence.
func ExpensesByCategory(expenses []models.Expense) []ExpenseRollup {
	index := make(map[string]int)
	var rollups []ExpenseRollup

	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(rollups)
			index[e.Category] = i
			rollups = append(rollups, ExpenseRollup{Category: e.Category})
		}
		rollups[i].Amount += e.Amount
	}

	return rollups
}

// PeriodReport is the full report over one period: per-dimension rollups plus
// the period KPI summary.
type PeriodReport struct {
	Period     Period          `json:"period"`
	FuelSales  []FuelRollup    `json:"fuelSales"`
	FuelVolume float64         `json:"fuelVolume"`
	ShopSales  []ProductRollup `json:"shopSales"`
	Expenses   []ExpenseRollup `json:"expenses"`
	Summary    Summary         `json:"summary"`
	Currency   string          `json:"currency"`
}

// BuildPeriodReport filters the snapshot to the period and rolls the result
// up per fuel type, product and expense category.
func BuildPeriodReport(state *models.StationState, period Period) *PeriodReport {
	shifts, sales, expenses := FilterPeriod(state, period)

	report := &PeriodReport{
		Period:    period,
		FuelSales: FuelSalesByType(state, shifts),
		ShopSales: ShopSalesByProduct(state, sales),
		Expenses:  ExpensesByCategory(expenses),
		Summary:   summarize(shifts, sales, expenses),
		Currency:  state.Settings.Currency,
	}

	for _, r := range report.FuelSales {
		report.FuelVolume += r.Volume
	}

	return report
}

// TankLevel is a level/capacity pair for the insight summary.
type TankLevel struct {
	FuelType string  `json:"fuelType"`
	Level    float64 `json:"level"`
	Capacity float64 `json:"capacity"`
}

// StationSummary is the aggregate handed to the insight generator.
type StationSummary struct {
	FuelRevenue   float64     `json:"fuelRevenue"`
	ShopRevenue   float64     `json:"shopRevenue"`
	TotalExpenses float64     `json:"totalExpenses"`
	LowStock      []string    `json:"lowStock"`
	Tanks         []TankLevel `json:"tanks"`
	Currency      string      `json:"currency"`
}

// BuildStationSummary condenses the snapshot into the shape the insight
// generator consumes.
func BuildStationSummary(state *models.StationState) StationSummary {
	kpi := Summarize(state)

	summary := StationSummary{
		FuelRevenue:   kpi.FuelRevenue,
		ShopRevenue:   kpi.ShopRevenue,
		TotalExpenses: kpi.TotalExpenses,
		Currency:      state.Settings.Currency,
	}

	for _, p := range LowStockProducts(state) {
		summary.LowStock = append(summary.LowStock, p.Name)
	}

	for _, t := range state.Tanks {
		summary.Tanks = append(summary.Tanks, TankLevel{FuelType: t.FuelType, Level: t.CurrentLevel, Capacity: t.Capacity})
	}

	return summary
}
