package messaging

import (
	"context"

	"github.com/fieldhouse/capledger/internal/domain"
)

// Publisher defines the interface for publishing rebuild notifications to a
// message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishRebuildCompleted publishes a notice that a rebuild finished and
	// its output has been persisted
	PublishRebuildCompleted(ctx context.Context, notice *domain.RebuildNotice) error
	// Close closes the connection
	Close()
}
