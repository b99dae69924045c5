package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/fieldhouse/capledger/internal/domain"
)

// TransactionEvent represents the transaction_events table - the validated,
// append-only roster transaction log this engine consumes. Rows are written
// by the upstream ingestion system and are immutable here.
type TransactionEvent struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// EventID is the upstream-assigned unique event identifier
	EventID string `gorm:"column:event_id;not null;uniqueIndex;type:text"`
	// OccurredAt is the human-entered transaction date
	OccurredAt time.Time `gorm:"column:occurred_at;not null;type:timestamptz;index:idx_transaction_events_subject_occurred,priority:2"`
	// CycleYear is the nominal competitive cycle the event belongs to
	CycleYear int `gorm:"column:cycle_year;not null"`
	// CyclePhase is either preseason or inseason
	CyclePhase domain.CyclePhase `gorm:"column:cycle_phase;not null;type:text"`
	// EventKind classifies the transaction (entry_acquisition, extension, ...)
	EventKind domain.EventKind `gorm:"column:event_kind;not null;type:text"`
	// SubjectID is the canonical player identifier ("unresolved" when identity
	// resolution failed upstream)
	SubjectID string `gorm:"column:subject_id;not null;type:text;index:idx_transaction_events_subject_occurred,priority:1"`
	// AcquiringOwnerID is the destination franchise (nil for exits to the open pool)
	AcquiringOwnerID *string `gorm:"column:acquiring_owner_id;type:text"`
	// ReleasingOwnerID is the source franchise (populated for transfer/termination)
	ReleasingOwnerID *string `gorm:"column:releasing_owner_id;type:text"`
	// ContractTotal is the advisory total contract value in whole currency units
	ContractTotal *int64 `gorm:"column:contract_total;type:bigint"`
	// ContractLength is the advisory contract length in cycle years
	ContractLength *int `gorm:"column:contract_length"`
	// ContractSchedule is the authoritative ordered list of yearly amounts,
	// when supplied (JSON array of integers)
	ContractSchedule datatypes.JSON `gorm:"column:contract_schedule;type:jsonb"`
	// Aux carries compensation indicators and other pass-through flags as JSON
	Aux datatypes.JSON `gorm:"column:aux;type:jsonb"`
	// CreatedAt is the timestamp when this record was ingested
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the TransactionEvent model
func (TransactionEvent) TableName() string {
	return "transaction_events"
}
