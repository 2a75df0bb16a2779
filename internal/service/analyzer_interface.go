package service

import (
	"context"

	"github.com/cypherlabdev/golf-edge-service/internal/models"
	"github.com/cypherlabdev/golf-edge-service/pkg/arbitrage"
)

// Analyzer is an interface that abstracts the arbitrage engine
// This allows for easier testing and mocking
type Analyzer interface {
	Run(mode models.Mode, offers []arbitrage.Offer, ref arbitrage.Reference) (*arbitrage.Report, error)
}

// EdgeAnalyzer is the service surface used by the Kafka consumer and the
// HTTP handler
type EdgeAnalyzer interface {
	Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.Report, error)
	GetReport(ctx context.Context, eventID string) (*models.Report, error)
	ListEvents(ctx context.Context) ([]string, error)
}
