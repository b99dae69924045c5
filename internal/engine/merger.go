package engine

import (
	"sort"

	"github.com/fieldhouse/capledger/internal/domain"
	"github.com/fieldhouse/capledger/internal/types"
)

// occurrenceKey groups events that represent a single real-world transaction
type occurrenceKey struct {
	subjectID string
	date      string
}

// MergeSameOccurrence collapses a base contract-creating event and an
// extension sharing the same date for the same subject into one event: a
// signing immediately re-papered into a longer deal is one transaction, not
// two sequential one-day periods. The extension restates the complete forward
// schedule, so its terms supersede the base event's; the base event's
// identity, kind, and owner survive as the merged event's.
//
// More than one extension for a subject on a single date is a data-quality
// conflict: the whole subject is routed to the rejection log rather than
// resolved by picking one arbitrarily.
func MergeSameOccurrence(creations []domain.TransactionEvent) ([]domain.TransactionEvent, []domain.Rejection) {
	groups := make(map[occurrenceKey][]domain.TransactionEvent)
	order := make([]occurrenceKey, 0, len(creations))
	for _, ev := range creations {
		key := occurrenceKey{
			subjectID: ev.SubjectID,
			date:      types.DateOf(ev.OrderingKey()).Format("2006-01-02"),
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], ev)
	}

	rejected := make(map[string]bool)
	var merged []domain.TransactionEvent

	for _, key := range order {
		group := groups[key]

		var extensions, bases []domain.TransactionEvent
		for _, ev := range group {
			if ev.Kind == domain.EventKindExtension {
				extensions = append(extensions, ev)
			} else {
				bases = append(bases, ev)
			}
		}

		if len(extensions) > 1 {
			rejected[key.subjectID] = true
			continue
		}

		if len(extensions) == 1 && len(bases) > 0 {
			merged = append(merged, mergeGroup(bases, extensions[0]))
			continue
		}

		merged = append(merged, group...)
	}

	if len(rejected) == 0 {
		return merged, nil
	}

	// A rejected subject is excluded entirely, not just on the conflicting date
	var kept []domain.TransactionEvent
	for _, ev := range merged {
		if !rejected[ev.SubjectID] {
			kept = append(kept, ev)
		}
	}

	subjects := make([]string, 0, len(rejected))
	for subject := range rejected {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	rejections := make([]domain.Rejection, 0, len(subjects))
	for _, subject := range subjects {
		rejections = append(rejections, domain.Rejection{
			SubjectID: subject,
			Reason:    domain.RejectionMultipleSameDateExtensions,
		})
	}

	return kept, rejections
}

// mergeGroup folds one extension into the earliest base event of its group
func mergeGroup(bases []domain.TransactionEvent, extension domain.TransactionEvent) domain.TransactionEvent {
	base := bases[0]
	for _, ev := range bases[1:] {
		if ev.OrderingKey().Before(base.OrderingKey()) ||
			(ev.OrderingKey().Equal(base.OrderingKey()) && ev.EventID < base.EventID) {
			base = ev
		}
	}

	if extension.HasSchedule() {
		base.ContractSchedule = extension.ContractSchedule
		applyScheduleAuthority(&base)
	} else {
		// Extension without a restated schedule: its stated terms still
		// supersede the base event's
		base.ContractTotal = extension.ContractTotal
		base.ContractLength = extension.ContractLength
	}

	return base
}
