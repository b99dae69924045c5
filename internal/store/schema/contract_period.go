package schema

import (
	"time"

	"github.com/fieldhouse/capledger/internal/domain"
)

// ContractPeriod represents the contract_periods table - the derived Type-2
// dimension of who owes what, to whom, for how long. The table is replaced
// wholesale on every rebuild, never patched in place.
type ContractPeriod struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// RebuildID identifies the rebuild run that produced this row
	RebuildID string `gorm:"column:rebuild_id;not null;type:text;index"`
	// SubjectID is the player whose contract this period tracks
	SubjectID string `gorm:"column:subject_id;not null;type:text;uniqueIndex:idx_contract_periods_subject_sequence,priority:1"`
	// OwnerID is the franchise holding the contract during this period
	OwnerID string `gorm:"column:owner_id;not null;type:text"`
	// PeriodSequence is the 1-based period ordinal per subject
	PeriodSequence int `gorm:"column:period_sequence;not null;uniqueIndex:idx_contract_periods_subject_sequence,priority:2"`
	// OriginKind classifies the event that created the period
	OriginKind domain.EventKind `gorm:"column:origin_kind;not null;type:text"`
	// ContractTotal is the total contract value in whole currency units
	ContractTotal int64 `gorm:"column:contract_total;not null;type:bigint"`
	// ContractLength is the contract length in cycle years
	ContractLength int `gorm:"column:contract_length;not null"`
	// AnnualAmount is total divided by length
	AnnualAmount float64 `gorm:"column:annual_amount;not null;type:numeric(14,2)"`
	// PeriodStartCycle is the first cycle year the contract covers (inclusive)
	PeriodStartCycle int `gorm:"column:period_start_cycle;not null"`
	// PeriodEndCycle is the last cycle year the contract covers (inclusive)
	PeriodEndCycle int `gorm:"column:period_end_cycle;not null"`
	// EffectiveAt is the corrected ordering timestamp the period starts at
	EffectiveAt time.Time `gorm:"column:effective_at;not null;type:timestamptz"`
	// ExpiresAt is the day before the next creation or termination event;
	// NULL is the open sentinel for the currently active period
	ExpiresAt *time.Time `gorm:"column:expires_at;type:timestamptz"`
	// IsActive is computed against the rebuild's as-of date
	IsActive bool `gorm:"column:is_active;not null"`
	// TerminationLiability is the cost of ending the contract at the as-of
	// date; NULL for inactive periods
	TerminationLiability *float64 `gorm:"column:termination_liability;type:numeric(14,2)"`
	// SourceEventID back-references the surviving event that created the period
	SourceEventID string `gorm:"column:source_event_id;not null;type:text"`
	// CreatedAt is the timestamp when this row was written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ContractPeriod model
func (ContractPeriod) TableName() string {
	return "contract_periods"
}
