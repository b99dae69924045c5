package schema

import (
	"time"

	"github.com/fieldhouse/capledger/internal/domain"
)

// RejectedSubject represents the rejected_subjects table - the rejection log
// of subjects excluded from a rebuild due to unresolvable ordering conflicts,
// routed to manual review instead of aborting the run.
type RejectedSubject struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// RebuildID identifies the rebuild run that rejected the subject
	RebuildID string `gorm:"column:rebuild_id;not null;type:text;index"`
	// SubjectID is the excluded player
	SubjectID string `gorm:"column:subject_id;not null;type:text"`
	// Reason is the machine-readable rejection code
	Reason domain.RejectionReason `gorm:"column:reason;not null;type:text"`
	// CreatedAt is the timestamp when this row was written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the RejectedSubject model
func (RejectedSubject) TableName() string {
	return "rejected_subjects"
}
