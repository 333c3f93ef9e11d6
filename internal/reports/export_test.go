package reports

import (
	"bytes"
	"testing"
	"time"

	"stationpro-api/internal/models"
	"stationpro-api/internal/mutation"
)

func exportFixture(t *testing.T) *PeriodReport {
	t.Helper()

	state := models.DefaultStationData()

	pump := state.PumpByID("p1")
	shift := models.NewShiftRecord(pump, 124600, 750)
	shift.Timestamp = time.Date(2026, 3, 5, 8, 0, 0, 0, time.Local)
	state = mutation.CompleteShift(state, *shift, "t1", "p1", 124600)

	sale := models.NewSale(state.ProductByID("prod1"), 2)
	sale.Timestamp = time.Date(2026, 3, 6, 10, 0, 0, 0, time.Local)
	state = mutation.RecordSale(state, *sale)

	expense := models.NewExpense("Electricité", "Utilities", 45000, time.Date(2026, 3, 7, 0, 0, 0, 0, time.Local))
	state = mutation.AddExpense(state, *expense)

	period := NewPeriod(
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.Local),
	)
	return BuildPeriodReport(state, period)
}

func TestBuildReportXLSX(t *testing.T) {
	report := exportFixture(t)

	data, err := BuildReportXLSX(report)
	if err != nil {
		t.Fatalf("BuildReportXLSX() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Expected non-empty workbook")
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("Expected zip container signature")
	}
}

func TestBuildReportPDF(t *testing.T) {
	report := exportFixture(t)

	data, err := BuildReportPDF(report)
	if err != nil {
		t.Fatalf("BuildReportPDF() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Expected non-empty document")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("Expected PDF signature")
	}
}
