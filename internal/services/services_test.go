package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"stationpro-api/internal/reports"
	stationsync "stationpro-api/internal/sync"
)

func newTestService(t *testing.T) (StationService, *stationsync.Synchronizer) {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	sync := stationsync.NewSynchronizer(stationsync.NewMemoryStore(), logger)
	if err := sync.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(sync.Close)

	return NewStationService(sync, logger), sync
}

func TestCompleteShift(t *testing.T) {
	svc, sync := newTestService(t)

	shift, err := svc.CompleteShift(context.Background(), &CompleteShiftRequest{
		PumpID:   "p1",
		EndIndex: 124650,
	})
	if err != nil {
		t.Fatalf("CompleteShift() error = %v", err)
	}

	if shift.VolumeSold != 150 {
		t.Errorf("Expected volume 150, got %v", shift.VolumeSold)
	}
	if shift.UnitPrice != 750 {
		t.Errorf("Expected unit price 750 from the price list, got %v", shift.UnitPrice)
	}
	if shift.TotalAmount != 112500 {
		t.Errorf("Expected amount 112500, got %v", shift.TotalAmount)
	}

	state := sync.Snapshot()
	if got := state.TankByID("t1").CurrentLevel; got != 14850 {
		t.Errorf("Expected tank level 14850, got %v", got)
	}
	if got := state.PumpByID("p1").LastIndex; got != 124650 {
		t.Errorf("Expected pump index 124650, got %v", got)
	}
}

func TestCompleteShiftRejectsBackwardIndex(t *testing.T) {
	svc, sync := newTestService(t)

	_, err := svc.CompleteShift(context.Background(), &CompleteShiftRequest{
		PumpID:   "p1",
		EndIndex: 124500, // equal to the current index
	})
	if err == nil {
		t.Fatal("Expected error for non-advancing index")
	}
	if !strings.Contains(err.Error(), "greater than current index") {
		t.Errorf("Unexpected error: %v", err)
	}

	if len(sync.Snapshot().Shifts) != 0 {
		t.Error("Expected no shift recorded")
	}
}

func TestCompleteShiftUnknownPump(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CompleteShift(context.Background(), &CompleteShiftRequest{
		PumpID:   "nope",
		EndIndex: 1,
	})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestRecordSaleIsAtomic(t *testing.T) {
	svc, sync := newTestService(t)

	sale, err := svc.RecordSale(context.Background(), &RecordSaleRequest{
		ProductID: "prod3",
		Quantity:  5,
	})
	if err != nil {
		t.Fatalf("RecordSale() error = %v", err)
	}
	if sale.TotalPrice != 3000 {
		t.Errorf("Expected total 3000, got %v", sale.TotalPrice)
	}

	state := sync.Snapshot()
	if len(state.Sales) != 1 {
		t.Fatalf("Expected 1 sale, got %d", len(state.Sales))
	}
	if got := state.ProductByID("prod3").Stock; got != 115 {
		t.Errorf("Expected stock 115 after sale, got %d", got)
	}
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	svc, sync := newTestService(t)

	_, err := svc.RecordSale(context.Background(), &RecordSaleRequest{
		ProductID: "prod2", // stock 8
		Quantity:  9,
	})
	if err == nil || !strings.Contains(err.Error(), "insufficient stock") {
		t.Fatalf("Expected insufficient stock error, got %v", err)
	}

	state := sync.Snapshot()
	if len(state.Sales) != 0 {
		t.Error("Expected no sale recorded")
	}
	if got := state.ProductByID("prod2").Stock; got != 8 {
		t.Errorf("Expected stock untouched at 8, got %d", got)
	}
}

func TestRecordSaleRejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RecordSale(context.Background(), &RecordSaleRequest{
		ProductID: "prod1",
		Quantity:  -1,
	})
	if err == nil || !strings.Contains(err.Error(), "validation") {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestAdjustStockFloor(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.AdjustStock(context.Background(), "prod2", &AdjustStockRequest{Delta: -9})
	if err == nil || !strings.Contains(err.Error(), "below zero") {
		t.Errorf("Expected floor violation, got %v", err)
	}

	if err := svc.AdjustStock(context.Background(), "prod2", &AdjustStockRequest{Delta: -8}); err != nil {
		t.Errorf("Expected drain to zero allowed, got %v", err)
	}
}

func TestAddRestock(t *testing.T) {
	svc, sync := newTestService(t)

	record, err := svc.AddRestock(context.Background(), "prod2", &RestockRequest{Quantity: 20})
	if err != nil {
		t.Fatalf("AddRestock() error = %v", err)
	}
	if record.PurchasePrice != 3000 {
		t.Errorf("Expected purchase price snapshot 3000, got %v", record.PurchasePrice)
	}

	state := sync.Snapshot()
	if got := state.ProductByID("prod2").Stock; got != 28 {
		t.Errorf("Expected stock 28, got %d", got)
	}
	if len(state.Restocks) != 1 {
		t.Errorf("Expected 1 restock record, got %d", len(state.Restocks))
	}
}

func TestAddFuelTypeRejectsDuplicate(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.AddFuelType(context.Background(), &AddFuelTypeRequest{
		FuelType:     "Essence",
		InitialPrice: 700,
	})
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Expected duplicate error, got %v", err)
	}
}

func TestDeleteFuelTypeInUse(t *testing.T) {
	svc, sync := newTestService(t)

	err := svc.DeleteFuelType(context.Background(), "Diesel")
	if err == nil || !strings.Contains(err.Error(), "still referenced") {
		t.Errorf("Expected in-use rejection, got %v", err)
	}

	// Unreferenced types delete cleanly.
	if err := svc.DeleteFuelType(context.Background(), "LPG"); err != nil {
		t.Fatalf("DeleteFuelType(LPG) error = %v", err)
	}
	if sync.Snapshot().HasFuelType("LPG") {
		t.Error("Expected LPG removed")
	}
}

func TestRenameFuelTypePropagates(t *testing.T) {
	svc, sync := newTestService(t)

	err := svc.RenameFuelType(context.Background(), "Essence", &RenameFuelTypeRequest{NewType: "Super95"})
	if err != nil {
		t.Fatalf("RenameFuelType() error = %v", err)
	}

	state := sync.Snapshot()
	if got := state.FuelPrices["Super95"]; got != 750 {
		t.Errorf("Expected price preserved at 750, got %v", got)
	}
	if got := state.TankByID("t1").FuelType; got != "Super95" {
		t.Errorf("Expected tank renamed, got %s", got)
	}
	if got := state.PumpByID("p2").FuelType; got != "Super95" {
		t.Errorf("Expected pump renamed, got %s", got)
	}
}

func TestRenameFuelTypeRejectsCollision(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.RenameFuelType(context.Background(), "Essence", &RenameFuelTypeRequest{NewType: "Diesel"})
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Expected collision rejection, got %v", err)
	}
}

func TestUpdateTankPreservesLevel(t *testing.T) {
	svc, sync := newTestService(t)

	tank, err := svc.UpdateTank(context.Background(), "t1", &UpdateTankRequest{
		FuelType:      "Super",
		Capacity:      25000,
		CriticalLevel: 2500,
	})
	if err != nil {
		t.Fatalf("UpdateTank() error = %v", err)
	}
	if tank.CurrentLevel != 15000 {
		t.Errorf("Expected current level preserved at 15000, got %v", tank.CurrentLevel)
	}
	if got := sync.Snapshot().TankByID("t1").Capacity; got != 25000 {
		t.Errorf("Expected capacity 25000, got %v", got)
	}
}

func TestUpdatePumpRederivesFuelType(t *testing.T) {
	svc, _ := newTestService(t)

	pump, err := svc.UpdatePump(context.Background(), "p1", &UpdatePumpRequest{
		Name:   "Pompe 01",
		TankID: "t2",
	})
	if err != nil {
		t.Fatalf("UpdatePump() error = %v", err)
	}
	if pump.FuelType != "Diesel" {
		t.Errorf("Expected fuel type re-derived to Diesel, got %s", pump.FuelType)
	}
}

func TestUpdatePumpRejectsBackwardIndex(t *testing.T) {
	svc, _ := newTestService(t)

	back := 100.0
	_, err := svc.UpdatePump(context.Background(), "p1", &UpdatePumpRequest{
		Name:      "Pompe 01",
		TankID:    "t1",
		LastIndex: &back,
	})
	if err == nil || !strings.Contains(err.Error(), "cannot decrease") {
		t.Errorf("Expected backward index rejection, got %v", err)
	}
}

func TestDeleteProductKeepsHistory(t *testing.T) {
	svc, sync := newTestService(t)

	if _, err := svc.RecordSale(context.Background(), &RecordSaleRequest{ProductID: "prod1", Quantity: 1}); err != nil {
		t.Fatalf("RecordSale() error = %v", err)
	}
	if err := svc.DeleteProduct(context.Background(), "prod1"); err != nil {
		t.Fatalf("DeleteProduct() error = %v", err)
	}

	state := sync.Snapshot()
	if state.ProductByID("prod1") != nil {
		t.Error("Expected product removed")
	}
	if len(state.Sales) != 1 {
		t.Error("Expected sale history kept")
	}

	// The dangling reference rolls up under the Unknown label.
	rollups := reports.ShopSalesByProduct(state, state.Sales)
	if len(rollups) != 1 || rollups[0].Name != reports.UnknownLabel {
		t.Errorf("Expected Unknown rollup, got %+v", rollups)
	}
}

type stubGenerator struct {
	text string
	err  error
}

func (g *stubGenerator) Generate(ctx context.Context, summary reports.StationSummary) (string, error) {
	return g.text, g.err
}

func TestInsightServiceSuccess(t *testing.T) {
	_, sync := newTestService(t)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	svc := NewInsightService(sync, &stubGenerator{text: "Augmentez le stock de lave glace."}, logger)

	text, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "Augmentez le stock de lave glace." {
		t.Errorf("Unexpected insight: %s", text)
	}
	if svc.LastInsight() != text {
		t.Error("Expected last insight stored")
	}
}

func TestInsightServiceFailureReturnsStaticMessage(t *testing.T) {
	_, sync := newTestService(t)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	svc := NewInsightService(sync, &stubGenerator{err: errors.New("api down")}, logger)

	text, err := svc.Generate(context.Background())
	if err != nil {
		t.Fatalf("Expected failure swallowed, got error %v", err)
	}
	if text != insightFailureMessage {
		t.Errorf("Expected the static failure message, got %q", text)
	}
	if svc.LastInsight() != "" {
		t.Error("Expected no insight stored on failure")
	}
}

func TestReportServiceDashboard(t *testing.T) {
	_, sync := newTestService(t)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	svc := NewReportService(sync, logger)
	dashboard := svc.Dashboard(context.Background())

	if len(dashboard.Tanks) != 2 {
		t.Errorf("Expected 2 tank statuses, got %d", len(dashboard.Tanks))
	}
	if len(dashboard.Stock) != 3 {
		t.Fatalf("Expected 3 stock entries, got %d", len(dashboard.Stock))
	}
	// prod2 sits at 8 with minimum 15.
	if dashboard.Stock[1].Status != reports.StockLow {
		t.Errorf("Expected low stock for prod2, got %s", dashboard.Stock[1].Status)
	}
	if dashboard.Currency != "FCFA" {
		t.Errorf("Expected currency FCFA, got %s", dashboard.Currency)
	}
}
