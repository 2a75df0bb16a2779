package service

import (
	"context"

	"github.com/cypherlabdev/golf-edge-service/internal/models"
)

// Cache is an interface that abstracts report cache operations
// This allows for easier testing and mocking
type Cache interface {
	SetReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, eventID string) (*models.Report, error)
	ListEvents(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}
