package service

import (
	"context"

	"github.com/cypherlabdev/golf-edge-service/internal/models"
)

// Publisher sends finished reports downstream
type Publisher interface {
	PublishReport(ctx context.Context, report *models.Report) error
}
