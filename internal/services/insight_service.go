package services

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"stationpro-api/internal/insight"
	"stationpro-api/internal/observability/metrics"
	"stationpro-api/internal/reports"
	stationsync "stationpro-api/internal/sync"
)

// insightFailureMessage is returned verbatim when the generator fails; the
// underlying error stays in the logs.
const insightFailureMessage = "Une erreur est survenue lors de la génération des recommandations."

var errGenerationInProgress = errors.New("insight generation already in progress")

type insightService struct {
	sync      *stationsync.Synchronizer
	generator insight.Generator
	logger    *logrus.Logger

	mu          sync.Mutex
	generating  bool
	lastInsight string
}

// NewInsightService creates an insight service over the given generator.
func NewInsightService(sync *stationsync.Synchronizer, generator insight.Generator, logger *logrus.Logger) InsightService {
	return &insightService{
		sync:      sync,
		generator: generator,
		logger:    logger,
	}
}

func (s *insightService) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating
}

func (s *insightService) LastInsight() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastInsight
}

func (s *insightService) Generate(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return "", errGenerationInProgress
	}
	s.generating = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.generating = false
		s.mu.Unlock()
	}()

	summary := reports.BuildStationSummary(s.sync.Snapshot())
	text, err := s.generator.Generate(ctx, summary)
	if err != nil {
		metrics.InsightRequest("error")
		s.logger.WithError(err).Error("Insight generation failed")
		return insightFailureMessage, nil
	}

	metrics.InsightRequest("success")
	s.mu.Lock()
	s.lastInsight = text
	s.mu.Unlock()
	return text, nil
}
