package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/fieldhouse/capledger/internal/domain"
	"github.com/fieldhouse/capledger/internal/store/schema"
	"github.com/fieldhouse/capledger/internal/types"
)

const lastRebuildKey = "last_rebuild_id"

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to safe defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings
// into safe values.
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 10
	}
	if maxIdleConns == 0 {
		maxIdleConns = 2
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = time.Hour
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// calculateSafeBatchSize computes the batch size for bulk inserts that stays
// under PostgreSQL's extended-protocol limit of 65535 parameters per query.
// Each record consumes one parameter per inserted field, and a total headroom
// covers GORM-added timestamps and other batch-level overhead.
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000

	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// ListTransactionEvents loads the full validated transaction log in
// occurrence order, routed to the read replica when one is configured
func (s *pgStore) ListTransactionEvents(ctx context.Context) ([]domain.TransactionEvent, error) {
	db := s.db.WithContext(ctx)
	if hasDBResolver(s.db) {
		db = db.Clauses(dbresolver.Read)
	}

	var rows []schema.TransactionEvent
	err := db.
		Order("occurred_at ASC, event_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction events: %w", err)
	}

	return types.SchemaEventsToDomain(rows)
}

// InsertTransactionEvents appends events to the log
func (s *pgStore) InsertTransactionEvents(ctx context.Context, events []domain.TransactionEvent) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([]schema.TransactionEvent, 0, len(events))
	for _, ev := range events {
		row, err := types.DomainEventToSchema(ev)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	// 12 insertable fields per transaction_events row
	batchSize := calculateSafeBatchSize(len(rows), 12)
	err := s.db.WithContext(ctx).CreateInBatches(&rows, batchSize).Error
	if err != nil {
		return fmt.Errorf("failed to insert transaction events: %w", err)
	}

	return nil
}

// ReplaceRebuildOutput atomically swaps the contract-period table and
// rejection log for the output of one rebuild run. The previous dimension is
// removed wholesale; rebuilds replace history, they never patch it.
func (s *pgStore) ReplaceRebuildOutput(ctx context.Context, rebuildID string, periods []domain.ContractPeriod, rejections []domain.Rejection) error {
	periodRows := make([]schema.ContractPeriod, 0, len(periods))
	for _, p := range periods {
		periodRows = append(periodRows, types.DomainPeriodToSchema(rebuildID, p))
	}
	rejectionRows := make([]schema.RejectedSubject, 0, len(rejections))
	for _, r := range rejections {
		rejectionRows = append(rejectionRows, types.DomainRejectionToSchema(rebuildID, r))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&schema.ContractPeriod{}).Error; err != nil {
			return fmt.Errorf("failed to clear contract periods: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&schema.RejectedSubject{}).Error; err != nil {
			return fmt.Errorf("failed to clear rejected subjects: %w", err)
		}

		if len(periodRows) > 0 {
			// 15 insertable fields per contract_periods row
			batchSize := calculateSafeBatchSize(len(periodRows), 15)
			if err := tx.CreateInBatches(&periodRows, batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert contract periods: %w", err)
			}
		}
		if len(rejectionRows) > 0 {
			if err := tx.Create(&rejectionRows).Error; err != nil {
				return fmt.Errorf("failed to insert rejected subjects: %w", err)
			}
		}

		kv := schema.KeyValueStore{
			Key:   lastRebuildKey,
			Value: rebuildID,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&kv).Error; err != nil {
			return fmt.Errorf("failed to set last rebuild marker: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace rebuild output: %w", err)
	}

	return nil
}

// GetContractPeriodsBySubject retrieves a subject's periods ordered by sequence
func (s *pgStore) GetContractPeriodsBySubject(ctx context.Context, subjectID string) ([]schema.ContractPeriod, error) {
	var rows []schema.ContractPeriod
	err := s.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("period_sequence ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get contract periods: %w", err)
	}

	return rows, nil
}

// GetRejectedSubjects retrieves the rejection log for a rebuild run
func (s *pgStore) GetRejectedSubjects(ctx context.Context, rebuildID string) ([]schema.RejectedSubject, error) {
	var rows []schema.RejectedSubject
	err := s.db.WithContext(ctx).
		Where("rebuild_id = ?", rebuildID).
		Order("subject_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get rejected subjects: %w", err)
	}

	return rows, nil
}

// GetLastRebuildID retrieves the identifier of the most recent persisted rebuild
func (s *pgStore) GetLastRebuildID(ctx context.Context) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", lastRebuildKey).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get last rebuild marker: %w", err)
	}

	return kv.Value, nil
}

// SetLastRebuildID stores the identifier of the most recent persisted rebuild
func (s *pgStore) SetLastRebuildID(ctx context.Context, rebuildID string) error {
	kv := schema.KeyValueStore{
		Key:   lastRebuildKey,
		Value: rebuildID,
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set last rebuild marker: %w", err)
	}

	return nil
}
