package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"stationpro-api/internal/reports"
	stationsync "stationpro-api/internal/sync"
)

type reportService struct {
	sync   *stationsync.Synchronizer
	logger *logrus.Logger
}

// NewReportService creates a report service reading from the synchronizer's
// snapshots.
func NewReportService(sync *stationsync.Synchronizer, logger *logrus.Logger) ReportService {
	return &reportService{sync: sync, logger: logger}
}

func (s *reportService) Dashboard(ctx context.Context) *Dashboard {
	state := s.sync.Snapshot()

	stock := make([]StockAlert, 0, len(state.Products))
	for _, p := range state.Products {
		stock = append(stock, StockAlert{
			ProductID: p.ID,
			Name:      p.Name,
			Stock:     p.Stock,
			MinStock:  p.MinStock,
			Status:    reports.ClassifyStock(p),
		})
	}

	return &Dashboard{
		Summary:  reports.Summarize(state),
		Tanks:    reports.TankStatuses(state),
		Stock:    stock,
		Currency: state.Settings.Currency,
	}
}

func (s *reportService) PeriodReport(ctx context.Context, start, end time.Time) *reports.PeriodReport {
	return reports.BuildPeriodReport(s.sync.Snapshot(), reports.NewPeriod(start, end))
}

func (s *reportService) ExportReport(ctx context.Context, start, end time.Time, format string) ([]byte, string, error) {
	report := s.PeriodReport(ctx, start, end)

	switch format {
	case "xlsx":
		data, err := reports.BuildReportXLSX(report)
		if err != nil {
			return nil, "", fmt.Errorf("failed to build xlsx report: %w", err)
		}
		return data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	case "pdf":
		data, err := reports.BuildReportPDF(report)
		if err != nil {
			return nil, "", fmt.Errorf("failed to build pdf report: %w", err)
		}
		return data, "application/pdf", nil
	default:
		return nil, "", fmt.Errorf("validation failed: unsupported export format %s", format)
	}
}
