package store

import (
	"context"

	"github.com/fieldhouse/capledger/internal/domain"
	"github.com/fieldhouse/capledger/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// ListTransactionEvents loads the full validated transaction log in
	// occurrence order
	ListTransactionEvents(ctx context.Context) ([]domain.TransactionEvent, error)
	// InsertTransactionEvents appends events to the log; used by backfill
	// tooling and tests, never by the engine
	InsertTransactionEvents(ctx context.Context, events []domain.TransactionEvent) error
	// ReplaceRebuildOutput atomically swaps the contract-period table and
	// rejection log for the output of one rebuild run
	ReplaceRebuildOutput(ctx context.Context, rebuildID string, periods []domain.ContractPeriod, rejections []domain.Rejection) error
	// GetContractPeriodsBySubject retrieves a subject's periods ordered by sequence
	GetContractPeriodsBySubject(ctx context.Context, subjectID string) ([]schema.ContractPeriod, error)
	// GetRejectedSubjects retrieves the rejection log for a rebuild run
	GetRejectedSubjects(ctx context.Context, rebuildID string) ([]schema.RejectedSubject, error)
	// GetLastRebuildID retrieves the identifier of the most recent persisted rebuild
	GetLastRebuildID(ctx context.Context) (string, error)
	// SetLastRebuildID stores the identifier of the most recent persisted rebuild
	SetLastRebuildID(ctx context.Context, rebuildID string) error
}
