package types

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/fieldhouse/capledger/internal/domain"
	"github.com/fieldhouse/capledger/internal/store/schema"
)

// SchemaEventToDomain converts a persisted transaction event into its engine form
func SchemaEventToDomain(ev schema.TransactionEvent) (domain.TransactionEvent, error) {
	var contractSchedule []int64
	if len(ev.ContractSchedule) > 0 {
		if err := json.Unmarshal(ev.ContractSchedule, &contractSchedule); err != nil {
			return domain.TransactionEvent{}, fmt.Errorf("failed to decode contract schedule for event %s: %w", ev.EventID, err)
		}
	}

	return domain.TransactionEvent{
		EventID:          ev.EventID,
		OccurredAt:       ev.OccurredAt,
		CycleYear:        ev.CycleYear,
		CyclePhase:       ev.CyclePhase,
		Kind:             ev.EventKind,
		SubjectID:        ev.SubjectID,
		AcquiringOwnerID: ev.AcquiringOwnerID,
		ReleasingOwnerID: ev.ReleasingOwnerID,
		ContractTotal:    ev.ContractTotal,
		ContractLength:   ev.ContractLength,
		ContractSchedule: contractSchedule,
		Aux:              json.RawMessage(ev.Aux),
	}, nil
}

// SchemaEventsToDomain converts a batch of persisted events, failing on the
// first undecodable row
func SchemaEventsToDomain(events []schema.TransactionEvent) ([]domain.TransactionEvent, error) {
	out := make([]domain.TransactionEvent, 0, len(events))
	for _, ev := range events {
		converted, err := SchemaEventToDomain(ev)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

// DomainPeriodToSchema converts an engine-built contract period into its
// persisted form
func DomainPeriodToSchema(rebuildID string, p domain.ContractPeriod) schema.ContractPeriod {
	return schema.ContractPeriod{
		RebuildID:            rebuildID,
		SubjectID:            p.SubjectID,
		OwnerID:              p.OwnerID,
		PeriodSequence:       p.PeriodSequence,
		OriginKind:           p.OriginKind,
		ContractTotal:        p.ContractTotal,
		ContractLength:       p.ContractLength,
		AnnualAmount:         p.AnnualAmount,
		PeriodStartCycle:     p.PeriodStartCycle,
		PeriodEndCycle:       p.PeriodEndCycle,
		EffectiveAt:          p.EffectiveAt,
		ExpiresAt:            p.ExpiresAt,
		IsActive:             p.IsActive,
		TerminationLiability: p.TerminationLiability,
		SourceEventID:        p.SourceEventID,
	}
}

// DomainRejectionToSchema converts an engine rejection into its persisted form
func DomainRejectionToSchema(rebuildID string, r domain.Rejection) schema.RejectedSubject {
	return schema.RejectedSubject{
		RebuildID: rebuildID,
		SubjectID: r.SubjectID,
		Reason:    r.Reason,
	}
}

// DomainEventToSchema converts an engine event into its persisted form;
// used by tests and backfill tooling
func DomainEventToSchema(ev domain.TransactionEvent) (schema.TransactionEvent, error) {
	var contractSchedule datatypes.JSON
	if len(ev.ContractSchedule) > 0 {
		raw, err := json.Marshal(ev.ContractSchedule)
		if err != nil {
			return schema.TransactionEvent{}, fmt.Errorf("failed to encode contract schedule for event %s: %w", ev.EventID, err)
		}
		contractSchedule = datatypes.JSON(raw)
	}

	return schema.TransactionEvent{
		EventID:          ev.EventID,
		OccurredAt:       ev.OccurredAt,
		CycleYear:        ev.CycleYear,
		CyclePhase:       ev.CyclePhase,
		EventKind:        ev.Kind,
		SubjectID:        ev.SubjectID,
		AcquiringOwnerID: ev.AcquiringOwnerID,
		ReleasingOwnerID: ev.ReleasingOwnerID,
		ContractTotal:    ev.ContractTotal,
		ContractLength:   ev.ContractLength,
		ContractSchedule: contractSchedule,
		Aux:              datatypes.JSON(ev.Aux),
	}, nil
}
