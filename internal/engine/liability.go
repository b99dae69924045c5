package engine

import (
	"fmt"
	"math"

	"github.com/fieldhouse/capledger/internal/domain"
)

// LiabilitySchedule maps "years remaining on a contract" to the fraction of
// the annual amount owed for that year if the contract is terminated early.
// Pure data, supplied as configuration, never derived.
type LiabilitySchedule struct {
	// fractions[0] is the fraction for one year remaining
	fractions []float64
}

// NewLiabilitySchedule validates and builds a schedule from a
// years-remaining → fraction map. Keys must run contiguously from 1 and
// fractions must sit in [0, 1].
func NewLiabilitySchedule(fractions map[int]float64) (*LiabilitySchedule, error) {
	if len(fractions) == 0 {
		return nil, fmt.Errorf("%w: empty schedule", domain.ErrInvalidSchedule)
	}

	ordered := make([]float64, len(fractions))
	for years, fraction := range fractions {
		if years < 1 || years > len(fractions) {
			return nil, fmt.Errorf("%w: years_remaining keys must run contiguously from 1, got %d", domain.ErrInvalidSchedule, years)
		}
		if fraction < 0 || fraction > 1 {
			return nil, fmt.Errorf("%w: fraction for %d years must be within [0, 1], got %v", domain.ErrInvalidSchedule, years, fraction)
		}
		ordered[years-1] = fraction
	}

	return &LiabilitySchedule{fractions: ordered}, nil
}

// Fraction looks up the fraction for a years-remaining value, clamped to the
// schedule's domain at both edges
func (s *LiabilitySchedule) Fraction(yearsRemaining int) float64 {
	if yearsRemaining < 1 {
		yearsRemaining = 1
	}
	if yearsRemaining > len(s.fractions) {
		yearsRemaining = len(s.fractions)
	}
	return s.fractions[yearsRemaining-1]
}

// Liability computes the cost of terminating a contract with the given annual
// amount and years remaining: the per-year fraction summed across each
// remaining contract year
func (s *LiabilitySchedule) Liability(annualAmount float64, yearsRemaining int) float64 {
	var liability float64
	for year := 1; year <= yearsRemaining; year++ {
		liability += annualAmount * s.Fraction(year)
	}
	return roundCents(liability)
}

// ApplyLiability populates termination liability on active periods. Years
// remaining derive from the period's cycle bounds against the as-of cycle,
// capped at the contract length so a period that has not started yet cannot
// owe more than its full value. Inactive periods carry nil.
func ApplyLiability(periods []domain.ContractPeriod, schedule *LiabilitySchedule, asOfCycle int) error {
	for i := range periods {
		p := &periods[i]
		p.TerminationLiability = nil
		if !p.IsActive {
			continue
		}

		yearsRemaining := p.PeriodEndCycle - asOfCycle + 1
		if yearsRemaining > p.ContractLength {
			yearsRemaining = p.ContractLength
		}
		if yearsRemaining < 0 {
			yearsRemaining = 0
		}

		liability := schedule.Liability(p.AnnualAmount, yearsRemaining)
		if liability < 0 || liability > float64(p.ContractTotal) {
			return invariantError(p.SubjectID, fmt.Sprintf("termination_liability %v outside [0, %d]", liability, p.ContractTotal))
		}
		p.TerminationLiability = &liability
	}
	return nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
