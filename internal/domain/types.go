package domain

import (
	"encoding/json"
	"time"
)

// CyclePhase identifies which half of a competitive cycle an event belongs to
type CyclePhase string

const (
	// PhasePreseason covers events dated before the competitive cycle starts
	PhasePreseason CyclePhase = "preseason"
	// PhaseInSeason covers events dated during the competitive cycle
	PhaseInSeason CyclePhase = "inseason"
)

// IsValidCyclePhase checks if a phase is one of the two known values
func IsValidCyclePhase(phase CyclePhase) bool {
	return phase == PhasePreseason || phase == PhaseInSeason
}

// EventKind classifies a roster transaction
type EventKind string

const (
	// EventKindEntryAcquisition is a rookie/entry selection into the league
	EventKindEntryAcquisition EventKind = "entry_acquisition"
	// EventKindOpenMarketSigning is a free-agent signing from the open pool
	EventKindOpenMarketSigning EventKind = "open_market_signing"
	// EventKindInCycleSigning is a signing that happens mid-cycle
	EventKindInCycleSigning EventKind = "in_cycle_signing"
	// EventKindTransferIn is the acquiring side of a trade
	EventKindTransferIn EventKind = "transfer_in"
	// EventKindTransferOut is the releasing side of a trade
	EventKindTransferOut EventKind = "transfer_out"
	// EventKindExtension restates the full remaining schedule of an existing deal
	EventKindExtension EventKind = "extension"
	// EventKindRestructure re-papers an existing deal with new terms
	EventKindRestructure EventKind = "restructure"
	// EventKindTermination ends a contract early
	EventKindTermination EventKind = "termination"
	// EventKindTag is a one-cycle designation keeping a subject off the market
	EventKindTag EventKind = "tag"
)

// IsValidEventKind checks if a kind belongs to the closed event-kind set
func IsValidEventKind(kind EventKind) bool {
	switch kind {
	case EventKindEntryAcquisition, EventKindOpenMarketSigning, EventKindInCycleSigning,
		EventKindTransferIn, EventKindTransferOut, EventKindExtension,
		EventKindRestructure, EventKindTermination, EventKindTag:
		return true
	}
	return false
}

// IsTerminationKind reports whether a kind ends a period rather than creates one
func IsTerminationKind(kind EventKind) bool {
	return kind == EventKindTransferOut || kind == EventKindTermination
}

// TransactionEvent is one row of the append-only roster transaction log.
// OccurredAt is the human-entered date and is never mutated; EffectiveAt is
// the ordering key used downstream and starts equal to OccurredAt. Only the
// chronological correction pass may move EffectiveAt forward.
type TransactionEvent struct {
	EventID     string
	OccurredAt  time.Time
	EffectiveAt time.Time
	CycleYear   int
	CyclePhase  CyclePhase
	Kind        EventKind

	SubjectID        string
	AcquiringOwnerID *string
	ReleasingOwnerID *string

	ContractTotal    *int64
	ContractLength   *int
	ContractSchedule []int64

	// Aux carries compensation indicators and other pass-through flags.
	// Preserved for audit, never consulted by period math.
	Aux json.RawMessage
}

// SubjectResolved reports whether the event's subject has a canonical identity
func (e *TransactionEvent) SubjectResolved() bool {
	return e.SubjectID != "" && e.SubjectID != UNRESOLVED_SUBJECT_ID
}

// HasSchedule reports whether the event carries a full forward schedule
func (e *TransactionEvent) HasSchedule() bool {
	return len(e.ContractSchedule) > 0
}

// ScheduleTotal sums the yearly amounts of the forward schedule
func (e *TransactionEvent) ScheduleTotal() int64 {
	var total int64
	for _, amount := range e.ContractSchedule {
		total += amount
	}
	return total
}

// OrderingKey returns the effective ordering timestamp, falling back to the
// entered date when no correction has been applied
func (e *TransactionEvent) OrderingKey() time.Time {
	if e.EffectiveAt.IsZero() {
		return e.OccurredAt
	}
	return e.EffectiveAt
}

// ContractPeriod is one row of the derived contract dimension: a contiguous
// span during which one owner holds one contract for one subject. Periods are
// never mutated in place; a changed understanding of history produces a fresh
// full rebuild.
type ContractPeriod struct {
	SubjectID      string
	OwnerID        string
	PeriodSequence int
	OriginKind     EventKind

	ContractTotal  int64
	ContractLength int
	AnnualAmount   float64

	PeriodStartCycle int
	PeriodEndCycle   int

	EffectiveAt time.Time
	// ExpiresAt is nil for the currently open period
	ExpiresAt *time.Time

	// IsActive is computed against an explicit as-of date, not stored as a
	// frozen fact
	IsActive             bool
	TerminationLiability *float64

	SourceEventID string
}

// Open reports whether the period carries the open sentinel
func (p *ContractPeriod) Open() bool {
	return p.ExpiresAt == nil
}

// ActiveAt computes the period's activity against an as-of date: open periods
// are always active, closed periods are active until their expiry date passes
func (p *ContractPeriod) ActiveAt(asOf time.Time) bool {
	return p.ExpiresAt == nil || !p.ExpiresAt.Before(asOf)
}

// RejectionReason is a machine-readable code for why a subject was excluded
type RejectionReason string

const (
	// RejectionMultipleSameDateExtensions flags more than one extension for a
	// subject on a single date
	RejectionMultipleSameDateExtensions RejectionReason = "multiple_same_date_extensions"
	// RejectionUnorderableEvents flags duplicate effective timestamps with
	// conflicting owners after correction and merging
	RejectionUnorderableEvents RejectionReason = "unorderable_events"
)

// Rejection records a subject excluded from the rebuild for manual review
type Rejection struct {
	SubjectID string
	Reason    RejectionReason
}

// RebuildNotice is the envelope published after a successful rebuild persist
type RebuildNotice struct {
	NoticeID       string    `json:"notice_id"`
	RebuildID      string    `json:"rebuild_id"`
	AsOfDate       time.Time `json:"as_of_date"`
	AsOfCycle      int       `json:"as_of_cycle"`
	PeriodCount    int       `json:"period_count"`
	RejectionCount int       `json:"rejection_count"`
	CompletedAt    time.Time `json:"completed_at"`
}
