package engine

import (
	"github.com/fieldhouse/capledger/internal/domain"
)

// Stats counts events excluded during normalization. Exclusions are expected
// and observable, never raised as errors.
type Stats struct {
	// UnresolvedSubject counts events dropped for carrying the unresolved
	// subject sentinel
	UnresolvedSubject int
	// NoDestinationOwner counts events dropped for having no destination
	// franchise (exits to the open pool) and terminations with no releasing
	// franchise to key on
	NoDestinationOwner int
	// NoMonetaryTerms counts administrative events dropped for carrying no
	// contract value
	NoMonetaryTerms int
	// Creations counts events surviving into the creation stream
	Creations int
	// Terminations counts events routed into the termination stream
	Terminations int
}

// Normalize splits the raw transaction log into the contract-creation stream
// and the termination stream, dropping everything that cannot affect contract
// state. Termination kinds (transfer_out, termination) end periods and are
// keyed by (subject, releasing owner); they never create periods themselves.
//
// Schedule authority: when an event carries a full forward schedule, its
// length and total are recomputed from the schedule before the monetary
// filter runs; the entered total/length are advisory only.
func Normalize(events []domain.TransactionEvent) (creations, terminations []domain.TransactionEvent, stats Stats) {
	for _, ev := range events {
		if ev.EffectiveAt.IsZero() {
			ev.EffectiveAt = ev.OccurredAt
		}

		if !ev.SubjectResolved() {
			stats.UnresolvedSubject++
			continue
		}

		if domain.IsTerminationKind(ev.Kind) {
			if ev.ReleasingOwnerID == nil || *ev.ReleasingOwnerID == "" {
				stats.NoDestinationOwner++
				continue
			}
			stats.Terminations++
			terminations = append(terminations, ev)
			continue
		}

		applyScheduleAuthority(&ev)

		if ev.AcquiringOwnerID == nil || *ev.AcquiringOwnerID == "" {
			stats.NoDestinationOwner++
			continue
		}
		if ev.ContractTotal == nil {
			stats.NoMonetaryTerms++
			continue
		}

		stats.Creations++
		creations = append(creations, ev)
	}

	return creations, terminations, stats
}

// applyScheduleAuthority recomputes length and total from the forward
// schedule when one is present
func applyScheduleAuthority(ev *domain.TransactionEvent) {
	if !ev.HasSchedule() {
		return
	}
	length := len(ev.ContractSchedule)
	total := ev.ScheduleTotal()
	ev.ContractLength = &length
	ev.ContractTotal = &total
}
