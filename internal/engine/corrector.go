package engine

import (
	"time"

	"github.com/fieldhouse/capledger/internal/domain"
)

// chronologyNudge is the smallest increment applied to a corrected ordering
// key. Source dates carry day granularity, so one second is enough to order a
// corrected event after its subject's entry event without reaching the next
// calendar day.
const chronologyNudge = time.Second

// CorrectChronology repairs a known data-entry defect: a pre-season event for
// a subject dated before that subject's entry acquisition in the same cycle
// year, which would order "traded" before "acquired". The effective ordering
// key of such an event is moved to just after the entry event's; the entered
// date is preserved untouched for audit. Both the creation stream and the
// termination stream are corrected against the same entry events.
//
// The pass is a monotonic nudge only. Events that were already causally
// valid, events in other cycle years, in-season events, and subjects with no
// entry event are all left as they are.
func CorrectChronology(creations, terminations []domain.TransactionEvent) ([]domain.TransactionEvent, []domain.TransactionEvent) {
	entries := make(map[string]domain.TransactionEvent)
	for _, ev := range creations {
		if ev.Kind != domain.EventKindEntryAcquisition {
			continue
		}
		prev, ok := entries[ev.SubjectID]
		if !ok || ev.OrderingKey().Before(prev.OrderingKey()) {
			entries[ev.SubjectID] = ev
		}
	}

	if len(entries) == 0 {
		return creations, terminations
	}

	return correctStream(creations, entries), correctStream(terminations, entries)
}

func correctStream(events []domain.TransactionEvent, entries map[string]domain.TransactionEvent) []domain.TransactionEvent {
	out := make([]domain.TransactionEvent, len(events))
	for i, ev := range events {
		entry, ok := entries[ev.SubjectID]
		if ok &&
			ev.EventID != entry.EventID &&
			ev.CycleYear == entry.CycleYear &&
			ev.CyclePhase == domain.PhasePreseason &&
			ev.OrderingKey().Before(entry.OrderingKey()) {
			ev.EffectiveAt = entry.OrderingKey().Add(chronologyNudge)
		}
		out[i] = ev
	}
	return out
}
