package mutation

import (
	"testing"
	"time"

	"stationpro-api/internal/models"
)

func TestCompleteShift(t *testing.T) {
	state := models.DefaultStationData()

	pump := state.PumpByID("p1")
	shift := models.NewShiftRecord(pump, 124600, 750)
	next := CompleteShift(state, *shift, "t1", "p1", 124600)

	if len(next.Shifts) != 1 {
		t.Fatalf("Expected 1 shift in history, got %d", len(next.Shifts))
	}
	if next.Shifts[0].VolumeSold != 100 {
		t.Errorf("Expected volume 100, got %v", next.Shifts[0].VolumeSold)
	}
	if next.Shifts[0].TotalAmount != 75000 {
		t.Errorf("Expected amount 75000, got %v", next.Shifts[0].TotalAmount)
	}
	if got := next.TankByID("t1").CurrentLevel; got != 14900 {
		t.Errorf("Expected tank level 14900, got %v", got)
	}
	if got := next.PumpByID("p1").LastIndex; got != 124600 {
		t.Errorf("Expected pump index 124600, got %v", got)
	}

	// The input snapshot must be untouched.
	if len(state.Shifts) != 0 {
		t.Error("Input state shifts modified")
	}
	if state.TankByID("t1").CurrentLevel != 15000 {
		t.Error("Input state tank level modified")
	}
	if state.PumpByID("p1").LastIndex != 124500 {
		t.Error("Input state pump index modified")
	}
}

func TestRecordSaleLeavesStockAlone(t *testing.T) {
	state := models.DefaultStationData()

	sale := models.NewSale(state.ProductByID("prod1"), 2)
	next := RecordSale(state, *sale)

	if len(next.Sales) != 1 {
		t.Fatalf("Expected 1 sale, got %d", len(next.Sales))
	}
	if next.Sales[0].TotalPrice != 50000 {
		t.Errorf("Expected total price 50000, got %v", next.Sales[0].TotalPrice)
	}
	if got := next.ProductByID("prod1").Stock; got != 45 {
		t.Errorf("Expected stock unchanged at 45, got %d", got)
	}
}

func TestAdjustStock(t *testing.T) {
	state := models.DefaultStationData()

	next := AdjustStock(state, "prod1", -3)
	if got := next.ProductByID("prod1").Stock; got != 42 {
		t.Errorf("Expected stock 42, got %d", got)
	}

	// No floor is applied here; the caller boundary enforces it.
	next = AdjustStock(state, "prod2", -100)
	if got := next.ProductByID("prod2").Stock; got != -92 {
		t.Errorf("Expected stock -92, got %d", got)
	}

	// Unknown product is a no-op.
	next = AdjustStock(state, "missing", 5)
	if len(next.Products) != 3 {
		t.Errorf("Expected 3 products, got %d", len(next.Products))
	}
}

func TestAddRestockIsAtomic(t *testing.T) {
	state := models.DefaultStationData()

	first := models.NewRestockRecord(state.ProductByID("prod2"), 20)
	next := AddRestock(state, *first)

	if got := next.ProductByID("prod2").Stock; got != 28 {
		t.Errorf("Expected stock 28 after restock, got %d", got)
	}
	if len(next.Restocks) != 1 {
		t.Fatalf("Expected 1 restock record, got %d", len(next.Restocks))
	}
	if next.Restocks[0].PurchasePrice != 3000 {
		t.Errorf("Expected purchase price snapshot 3000, got %v", next.Restocks[0].PurchasePrice)
	}

	// History is most-recent-first.
	second := models.NewRestockRecord(next.ProductByID("prod2"), 5)
	next = AddRestock(next, *second)
	if next.Restocks[0].ID != second.ID {
		t.Error("Expected newest restock first")
	}
	if next.Restocks[1].ID != first.ID {
		t.Error("Expected older restock second")
	}
}

func TestDeleteProductKeepsHistory(t *testing.T) {
	state := models.DefaultStationData()

	sale := models.NewSale(state.ProductByID("prod1"), 1)
	state = RecordSale(state, *sale)
	restock := models.NewRestockRecord(state.ProductByID("prod1"), 10)
	state = AddRestock(state, *restock)

	next := DeleteProduct(state, "prod1")

	if next.ProductByID("prod1") != nil {
		t.Error("Expected product removed from catalogue")
	}
	if len(next.Sales) != 1 || next.Sales[0].ProductID != "prod1" {
		t.Error("Expected sale history to keep the dangling product reference")
	}
	if len(next.Restocks) != 1 || next.Restocks[0].ProductID != "prod1" {
		t.Error("Expected restock history to keep the dangling product reference")
	}
}

func TestRenameFuelType(t *testing.T) {
	state := models.DefaultStationData()

	next := RenameFuelType(state, "Essence", "Super95")

	if _, ok := next.FuelPrices["Essence"]; ok {
		t.Error("Expected old price key removed")
	}
	if got := next.FuelPrices["Super95"]; got != 750 {
		t.Errorf("Expected price 750 under new key, got %v", got)
	}
	if got := next.TankByID("t1").FuelType; got != "Super95" {
		t.Errorf("Expected tank t1 renamed, got %s", got)
	}
	if got := next.PumpByID("p1").FuelType; got != "Super95" {
		t.Errorf("Expected pump p1 renamed, got %s", got)
	}
	if got := next.PumpByID("p2").FuelType; got != "Super95" {
		t.Errorf("Expected pump p2 renamed, got %s", got)
	}
	// Diesel entities are untouched.
	if got := next.TankByID("t2").FuelType; got != "Diesel" {
		t.Errorf("Expected tank t2 untouched, got %s", got)
	}
	if got := next.PumpByID("p3").FuelType; got != "Diesel" {
		t.Errorf("Expected pump p3 untouched, got %s", got)
	}
}

func TestDeleteFuelType(t *testing.T) {
	state := models.DefaultStationData()

	next := DeleteFuelType(state, "Super")
	if _, ok := next.FuelPrices["Super"]; ok {
		t.Error("Expected Super price entry removed")
	}
	if len(next.FuelPrices) != 3 {
		t.Errorf("Expected 3 price entries, got %d", len(next.FuelPrices))
	}
}

func TestUpdatePumpRederivesFuelType(t *testing.T) {
	state := models.DefaultStationData()

	// Move p1 onto the diesel tank; the stale fuel type on the input must be
	// overridden from the tank.
	pump := *state.PumpByID("p1")
	pump.TankID = "t2"
	pump.FuelType = "Essence"

	next := UpdatePump(state, pump)
	if got := next.PumpByID("p1").FuelType; got != "Diesel" {
		t.Errorf("Expected fuel type re-derived to Diesel, got %s", got)
	}
	if got := next.PumpByID("p1").TankID; got != "t2" {
		t.Errorf("Expected tank t2, got %s", got)
	}
}

func TestDeleteExpense(t *testing.T) {
	state := models.DefaultStationData()

	expense := models.NewExpense("Electricité", "Utilities", 45000, time.Now())
	state = AddExpense(state, *expense)
	other := models.NewExpense("Salaires", "Personnel", 300000, time.Now())
	state = AddExpense(state, *other)

	next := DeleteExpense(state, expense.ID)
	if len(next.Expenses) != 1 {
		t.Fatalf("Expected 1 expense, got %d", len(next.Expenses))
	}
	if next.Expenses[0].ID != other.ID {
		t.Error("Expected the other expense to survive")
	}
}

func TestUpdateSettings(t *testing.T) {
	state := models.DefaultStationData()

	settings := state.Settings
	settings.StationName = "Station Pro Nord"
	settings.Currency = "XOF"

	next := UpdateSettings(state, settings)
	if next.Settings.StationName != "Station Pro Nord" {
		t.Errorf("Expected settings replaced, got %s", next.Settings.StationName)
	}
	if state.Settings.StationName != "Station Pro Centre-Ville" {
		t.Error("Input state settings modified")
	}
}
