package engine

import (
	"context"
	"sort"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/fieldhouse/capledger/internal/domain"
	"github.com/fieldhouse/capledger/internal/logger"
)

const defaultPoolSize = 8

// AsOf pins the rebuild's point-in-time view. The engine never reaches for a
// wall clock; "now" defaulting belongs to the orchestration layer.
type AsOf struct {
	// Date controls is_active and termination liability
	Date time.Time
	// Cycle is the competitive cycle the date falls in
	Cycle int
}

// Result is the complete output of one rebuild: the contract-period dimension
// plus the parallel rejection log and exclusion counters
type Result struct {
	RebuildID  string
	AsOf       AsOf
	Periods    []domain.ContractPeriod
	Rejections []domain.Rejection
	Stats      Stats
}

// Config holds engine tuning
type Config struct {
	// PoolSize caps the number of subjects rebuilt concurrently
	PoolSize int
}

// Engine reconstructs the contract-period dimension from the transaction
// log. It is a pure batch transform: same events and as-of in, same periods
// out, no shared mutable state between subjects.
type Engine struct {
	schedule *LiabilitySchedule
	poolSize int
}

// New creates a rebuild engine with the given liability schedule
func New(schedule *LiabilitySchedule, cfg Config) *Engine {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	return &Engine{schedule: schedule, poolSize: poolSize}
}

// Rebuild runs the full pipeline: normalize → correct chronology → merge
// same-date occurrences → build periods per subject → apply liability.
// Subjects are sharded across a worker pool with no cross-shard
// communication; output ordering is deterministic (subject, then sequence)
// so identical input and as-of always produce identical output.
//
// A data-quality conflict routes the affected subject to the rejection log.
// An invariant violation aborts the whole rebuild: contract state feeds cap
// accounting downstream, where partially-correct output is worse than a
// hard stop.
func (e *Engine) Rebuild(ctx context.Context, events []domain.TransactionEvent, asOf AsOf) (*Result, error) {
	if len(events) == 0 {
		return nil, domain.ErrNoEvents
	}

	creations, terminations, stats := Normalize(events)
	creations, terminations = CorrectChronology(creations, terminations)
	creations, rejections := MergeSameOccurrence(creations)

	creationsBySubject := groupBySubject(creations)
	terminationsBySubject := groupBySubject(terminations)

	subjects := make([]string, 0, len(creationsBySubject))
	for subject := range creationsBySubject {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)

	logger.DebugCtx(ctx, "Rebuilding contract periods",
		zap.Int("subjects", len(subjects)),
		zap.Int("creations", stats.Creations),
		zap.Int("terminations", stats.Terminations),
	)

	type shard struct {
		periods   []domain.ContractPeriod
		rejection *domain.Rejection
	}
	shards := make([]shard, len(subjects))

	pool := pond.NewPool(e.poolSize, pond.WithContext(ctx))
	group := pool.NewGroup()
	for i, subject := range subjects {
		group.SubmitErr(func() error {
			periods, rejection := buildSubjectPeriods(
				creationsBySubject[subject],
				terminationsBySubject[subject],
				asOf.Date,
			)
			if rejection != nil {
				shards[i].rejection = rejection
				return nil
			}
			if err := verifySubjectInvariants(subject, periods); err != nil {
				return err
			}
			shards[i].periods = periods
			return nil
		})
	}
	err := group.Wait()
	pool.StopAndWait()
	if err != nil {
		return nil, err
	}

	var periods []domain.ContractPeriod
	for _, s := range shards {
		if s.rejection != nil {
			rejections = append(rejections, *s.rejection)
			continue
		}
		periods = append(periods, s.periods...)
	}
	sort.SliceStable(rejections, func(i, j int) bool {
		return rejections[i].SubjectID < rejections[j].SubjectID
	})

	if err := ApplyLiability(periods, e.schedule, asOf.Cycle); err != nil {
		return nil, err
	}

	return &Result{
		RebuildID:  newRebuildID(),
		AsOf:       asOf,
		Periods:    periods,
		Rejections: rejections,
		Stats:      stats,
	}, nil
}

func groupBySubject(events []domain.TransactionEvent) map[string][]domain.TransactionEvent {
	grouped := make(map[string][]domain.TransactionEvent)
	for _, ev := range events {
		grouped[ev.SubjectID] = append(grouped[ev.SubjectID], ev)
	}
	return grouped
}

// newRebuildID mints a lexicographically time-sortable run identifier
func newRebuildID() string {
	return ulid.Make().String()
}
