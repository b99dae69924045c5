package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldhouse/capledger/internal/domain"
)

func TestNewLiabilitySchedule_RejectsEmpty(t *testing.T) {
	_, err := NewLiabilitySchedule(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)
}

func TestNewLiabilitySchedule_RejectsNonContiguousKeys(t *testing.T) {
	_, err := NewLiabilitySchedule(map[int]float64{1: 0.5, 3: 0.25})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)
}

func TestNewLiabilitySchedule_RejectsKeysNotStartingAtOne(t *testing.T) {
	_, err := NewLiabilitySchedule(map[int]float64{2: 0.5, 3: 0.25})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)
}

func TestNewLiabilitySchedule_RejectsFractionOutOfRange(t *testing.T) {
	_, err := NewLiabilitySchedule(map[int]float64{1: 1.5})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)

	_, err = NewLiabilitySchedule(map[int]float64{1: -0.1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)
}

func TestLiabilitySchedule_FractionClampsBothEdges(t *testing.T) {
	schedule := defaultTestSchedule(t)

	assert.Equal(t, 0.5, schedule.Fraction(0))
	assert.Equal(t, 0.5, schedule.Fraction(1))
	assert.Equal(t, 0.25, schedule.Fraction(4))
	assert.Equal(t, 0.25, schedule.Fraction(7))
}

func TestLiabilitySchedule_LiabilitySumsPerYearFractions(t *testing.T) {
	schedule := defaultTestSchedule(t)

	// 3 years remaining at 4.0/year: 4*(0.5 + 0.5 + 0.25)
	assert.Equal(t, 5.0, schedule.Liability(4.0, 3))
	assert.Equal(t, 0.0, schedule.Liability(4.0, 0))
	assert.Equal(t, 2.0, schedule.Liability(4.0, 1))
}

func TestLiabilitySchedule_LiabilityRoundsToCents(t *testing.T) {
	schedule, err := NewLiabilitySchedule(map[int]float64{1: 0.333})
	require.NoError(t, err)

	assert.Equal(t, 3.33, schedule.Liability(10.0, 1))
}

func TestApplyLiability_InactivePeriodsCarryNil(t *testing.T) {
	periods := []domain.ContractPeriod{
		{SubjectID: "player-1", IsActive: false, ContractTotal: 100, ContractLength: 4, AnnualAmount: 25, PeriodStartCycle: 2030, PeriodEndCycle: 2033},
	}

	require.NoError(t, ApplyLiability(periods, defaultTestSchedule(t), 2031))
	assert.Nil(t, periods[0].TerminationLiability)
}

func TestApplyLiability_ActivePeriodYearsRemaining(t *testing.T) {
	periods := []domain.ContractPeriod{
		{SubjectID: "player-1", IsActive: true, ContractTotal: 100, ContractLength: 4, AnnualAmount: 25, PeriodStartCycle: 2030, PeriodEndCycle: 2033},
	}

	// 2031 as-of: 2033 - 2031 + 1 = 3 years remaining
	require.NoError(t, ApplyLiability(periods, defaultTestSchedule(t), 2031))
	require.NotNil(t, periods[0].TerminationLiability)
	assert.Equal(t, 25*(0.5+0.5+0.25), *periods[0].TerminationLiability)
}

func TestApplyLiability_YearsRemainingCappedAtContractLength(t *testing.T) {
	// A pre-season period whose start cycle is still ahead of the as-of cycle
	periods := []domain.ContractPeriod{
		{SubjectID: "player-1", IsActive: true, ContractTotal: 100, ContractLength: 2, AnnualAmount: 50, PeriodStartCycle: 2032, PeriodEndCycle: 2033},
	}

	require.NoError(t, ApplyLiability(periods, defaultTestSchedule(t), 2030))
	require.NotNil(t, periods[0].TerminationLiability)
	// Capped at 2 years, not 2033 - 2030 + 1 = 4
	assert.Equal(t, 50*(0.5+0.5), *periods[0].TerminationLiability)
}

func TestApplyLiability_ExpiredCycleYieldsZero(t *testing.T) {
	periods := []domain.ContractPeriod{
		{SubjectID: "player-1", IsActive: true, ContractTotal: 100, ContractLength: 4, AnnualAmount: 25, PeriodStartCycle: 2020, PeriodEndCycle: 2023},
	}

	require.NoError(t, ApplyLiability(periods, defaultTestSchedule(t), 2030))
	require.NotNil(t, periods[0].TerminationLiability)
	assert.Equal(t, 0.0, *periods[0].TerminationLiability)
}

func TestApplyLiability_BoundedByContractTotal(t *testing.T) {
	schedule, err := NewLiabilitySchedule(map[int]float64{1: 1, 2: 1, 3: 1, 4: 1})
	require.NoError(t, err)
	periods := []domain.ContractPeriod{
		{SubjectID: "player-1", IsActive: true, ContractTotal: 100, ContractLength: 4, AnnualAmount: 25, PeriodStartCycle: 2030, PeriodEndCycle: 2033},
	}

	// Even the most punitive schedule tops out at the full contract value
	require.NoError(t, ApplyLiability(periods, schedule, 2030))
	require.NotNil(t, periods[0].TerminationLiability)
	liability := *periods[0].TerminationLiability
	assert.GreaterOrEqual(t, liability, 0.0)
	assert.LessOrEqual(t, liability, float64(periods[0].ContractTotal))
	assert.Equal(t, 100.0, liability)
}
