package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/fieldhouse/capledger/internal/domain"
	"github.com/fieldhouse/capledger/internal/store/schema"
	"github.com/fieldhouse/capledger/internal/types"
)

func TestSchemaEventToDomain_DecodesSchedule(t *testing.T) {
	row := schema.TransactionEvent{
		EventID:          "ev-1",
		OccurredAt:       time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC),
		CycleYear:        2030,
		CyclePhase:       domain.PhaseInSeason,
		EventKind:        domain.EventKindExtension,
		SubjectID:        "player-1",
		AcquiringOwnerID: types.StringPtr("team-a"),
		ContractSchedule: datatypes.JSON(`[5,5,10]`),
	}

	ev, err := types.SchemaEventToDomain(row)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 5, 10}, ev.ContractSchedule)
	assert.Equal(t, domain.EventKindExtension, ev.Kind)
}

func TestSchemaEventToDomain_RejectsMalformedSchedule(t *testing.T) {
	row := schema.TransactionEvent{
		EventID:          "ev-1",
		ContractSchedule: datatypes.JSON(`{"not":"an array"}`),
	}

	_, err := types.SchemaEventToDomain(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ev-1")
}

func TestDomainEventToSchema_RoundTripsSchedule(t *testing.T) {
	ev := domain.TransactionEvent{
		EventID:          "ev-1",
		OccurredAt:       time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC),
		CycleYear:        2030,
		CyclePhase:       domain.PhaseInSeason,
		Kind:             domain.EventKindOpenMarketSigning,
		SubjectID:        "player-1",
		AcquiringOwnerID: types.StringPtr("team-a"),
		ContractTotal:    types.Int64Ptr(20),
		ContractLength:   types.IntPtr(3),
		ContractSchedule: []int64{5, 5, 10},
	}

	row, err := types.DomainEventToSchema(ev)
	require.NoError(t, err)

	back, err := types.SchemaEventToDomain(row)
	require.NoError(t, err)
	assert.Equal(t, ev.ContractSchedule, back.ContractSchedule)
	assert.Equal(t, ev.EventID, back.EventID)
}

func TestDomainPeriodToSchema_TagsRebuildRun(t *testing.T) {
	expiry := time.Date(2030, 6, 30, 0, 0, 0, 0, time.UTC)
	p := domain.ContractPeriod{
		SubjectID:      "player-1",
		OwnerID:        "team-a",
		PeriodSequence: 2,
		OriginKind:     domain.EventKindTransferIn,
		ContractTotal:  20,
		ContractLength: 3,
		AnnualAmount:   20.0 / 3,
		ExpiresAt:      &expiry,
		SourceEventID:  "ev-1",
	}

	row := types.DomainPeriodToSchema("run-42", p)
	assert.Equal(t, "run-42", row.RebuildID)
	assert.Equal(t, 2, row.PeriodSequence)
	require.NotNil(t, row.ExpiresAt)
	assert.Equal(t, expiry, *row.ExpiresAt)
}
