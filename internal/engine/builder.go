package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/fieldhouse/capledger/internal/domain"
	"github.com/fieldhouse/capledger/internal/types"
)

// buildSubjectPeriods turns one subject's merged creation stream and
// termination stream into its ordered, non-overlapping contract periods.
//
// A period runs from its creating event until whichever comes first: the next
// creating event for the subject, or the earliest termination event for the
// same (subject, owner) pair on or after the period's start. When neither
// exists the period is open-ended.
//
// A subject whose creations cannot be fully ordered (duplicate effective
// timestamps after merging) is excluded with a rejection rather than risking
// overlapping periods.
func buildSubjectPeriods(creations, terminations []domain.TransactionEvent, asOfDate time.Time) ([]domain.ContractPeriod, *domain.Rejection) {
	if len(creations) == 0 {
		return nil, nil
	}

	sorted := make([]domain.TransactionEvent, len(creations))
	copy(sorted, creations)
	sort.SliceStable(sorted, func(i, j int) bool {
		ki, kj := sorted[i].OrderingKey(), sorted[j].OrderingKey()
		if !ki.Equal(kj) {
			return ki.Before(kj)
		}
		return sorted[i].EventID < sorted[j].EventID
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].OrderingKey().Equal(sorted[i-1].OrderingKey()) {
			return nil, &domain.Rejection{
				SubjectID: sorted[i].SubjectID,
				Reason:    domain.RejectionUnorderableEvents,
			}
		}
	}

	periods := make([]domain.ContractPeriod, 0, len(sorted))
	for i, ev := range sorted {
		owner := types.SafeString(ev.AcquiringOwnerID)
		startDate := types.DateOf(ev.OrderingKey())

		var next *time.Time
		if i+1 < len(sorted) {
			next = types.TimePtr(types.DateOf(sorted[i+1].OrderingKey()))
		}
		term := earliestTermination(terminations, owner, startDate)

		var expiresAt *time.Time
		if end := earlierOf(next, term); end != nil {
			expiresAt = types.TimePtr(end.AddDate(0, 0, -1))
		}

		length := 1
		if ev.ContractLength != nil && *ev.ContractLength > 0 {
			length = *ev.ContractLength
		}
		total := *ev.ContractTotal

		startCycle := ev.CycleYear
		if ev.CyclePhase == domain.PhasePreseason {
			// Pre-season acquisitions take effect the following competitive cycle
			startCycle++
		}

		period := domain.ContractPeriod{
			SubjectID:        ev.SubjectID,
			OwnerID:          owner,
			PeriodSequence:   i + 1,
			OriginKind:       ev.Kind,
			ContractTotal:    total,
			ContractLength:   length,
			AnnualAmount:     float64(total) / float64(length),
			PeriodStartCycle: startCycle,
			PeriodEndCycle:   startCycle + length - 1,
			EffectiveAt:      ev.OrderingKey(),
			ExpiresAt:        expiresAt,
			SourceEventID:    ev.EventID,
		}
		period.IsActive = period.ActiveAt(asOfDate)
		periods = append(periods, period)
	}

	return periods, nil
}

// earliestTermination finds the first termination for (subject, owner) dated
// on or after the period start
func earliestTermination(terminations []domain.TransactionEvent, owner string, startDate time.Time) *time.Time {
	var earliest *time.Time
	for _, t := range terminations {
		if types.SafeString(t.ReleasingOwnerID) != owner {
			continue
		}
		date := types.DateOf(t.OrderingKey())
		if date.Before(startDate) {
			continue
		}
		if earliest == nil || date.Before(*earliest) {
			earliest = types.TimePtr(date)
		}
	}
	return earliest
}

func earlierOf(a, b *time.Time) *time.Time {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if b.Before(*a) {
		return b
	}
	return a
}

// verifySubjectInvariants checks the structural guarantees the builder must
// never break. A failure here is a logic defect, not a data defect, and
// aborts the whole rebuild.
func verifySubjectInvariants(subjectID string, periods []domain.ContractPeriod) error {
	open := 0
	for i, p := range periods {
		if p.PeriodSequence != i+1 {
			return invariantError(subjectID, "period_sequence must be 1-based and gapless")
		}
		if p.PeriodEndCycle < p.PeriodStartCycle {
			return invariantError(subjectID, "period_end_cycle before period_start_cycle")
		}
		if p.ExpiresAt == nil {
			open++
		}
		if i == 0 {
			continue
		}
		prev := periods[i-1]
		if !p.EffectiveAt.After(prev.EffectiveAt) {
			return invariantError(subjectID, "effective_at not strictly increasing")
		}
		if prev.ExpiresAt == nil {
			return invariantError(subjectID, "open period followed by a later period")
		}
		if !prev.ExpiresAt.Before(types.DateOf(p.EffectiveAt)) {
			return invariantError(subjectID, "overlapping periods")
		}
	}
	if open > 1 {
		return invariantError(subjectID, "more than one open period")
	}
	return nil
}

func invariantError(subjectID, detail string) error {
	return fmt.Errorf("%w: subject %s: %s", domain.ErrInvariantViolation, subjectID, detail)
}
