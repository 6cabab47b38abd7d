package usecases

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"motorhub.backend/pkg/logger"
	"motorhub.backend/pkg/metrics"
)

// recordTransition logs and counts a transition once it has been persisted.
// An empty from marks record creation.
func recordTransition(ctx context.Context, machine string, id uuid.UUID, from, to string) {
	if from == "" {
		from = "none"
	}
	metrics.ObserveTransition(machine, from, to)
	logger.Info(ctx, "State transition committed",
		zap.String("machine", machine),
		zap.String("id", id.String()),
		zap.String("from", from),
		zap.String("to", to),
	)
}
