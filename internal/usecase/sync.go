package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/sports-intel/internal/domain/event"
	"github.com/riskibarqy/sports-intel/internal/domain/sport"
)

const defaultSyncWorkers = 4

type syncTask struct {
	sport sport.Sport
	kind  QueryKind
}

// SyncAll refreshes every sport schedule plus upcoming boxing, bypassing the cache.
// One sport failing, even by panicking, never affects the others.
func (a *Aggregator) SyncAll(ctx context.Context) (event.SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Aggregator.SyncAll")
	defer span.End()

	tasks := make([]syncTask, 0, len(sport.All())+1)
	for _, s := range sport.All() {
		tasks = append(tasks, syncTask{sport: s, kind: QuerySchedule})
	}
	tasks = append(tasks, syncTask{sport: sport.Boxing, kind: QueryBoxingUpcoming})

	workerCount := normalizeSyncWorkerCount(a.cfg.SyncWorkers, len(tasks))
	report := event.SyncReport{
		SyncedAt:    a.now().UTC(),
		WorkerCount: workerCount,
		Results:     make([]event.SportSyncResult, 0, len(tasks)),
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return event.SyncReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan event.SportSyncResult, len(tasks))
	var successCount, failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := a.runSyncTask(ctx, task)
			if row.Status == event.SyncStatusSuccess {
				successCount.Add(1)
			} else {
				failedCount.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			return event.SyncReport{}, fmt.Errorf("submit sync task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		report.Results = append(report.Results, row)
	}
	sort.SliceStable(report.Results, func(i, j int) bool {
		if report.Results[i].Sport != report.Results[j].Sport {
			return report.Results[i].Sport < report.Results[j].Sport
		}
		return report.Results[i].Kind > report.Results[j].Kind
	})

	report.SuccessCount = int(successCount.Load())
	report.FailedCount = int(failedCount.Load())
	a.logger.InfoContext(ctx, "sports sync finished",
		"success", report.SuccessCount,
		"failed", report.FailedCount,
		"workers", workerCount,
	)
	return report, nil
}

func (a *Aggregator) runSyncTask(ctx context.Context, task syncTask) (row event.SportSyncResult) {
	start := time.Now()
	row = event.SportSyncResult{
		Sport:  string(task.sport),
		Kind:   string(task.kind),
		Status: event.SyncStatusFailed,
	}
	defer func() {
		if rec := recover(); rec != nil {
			a.logger.ErrorContext(ctx, "sport sync panicked", "sport", task.sport, "kind", task.kind, "panic", fmt.Sprint(rec))
			row.Status = event.SyncStatusFailed
			row.Message = fmt.Sprintf("panic: %v", rec)
		}
		row.DurationMs = time.Since(start).Milliseconds()
	}()

	if err := ctx.Err(); err != nil {
		row.Message = err.Error()
		return row
	}

	var (
		res event.ScheduleResult
		err error
	)
	if task.kind == QueryBoxingUpcoming {
		res, err = a.FetchUpcomingBoxing(ctx, false)
	} else {
		res, err = a.FetchSchedule(ctx, string(task.sport), false)
	}
	if err != nil {
		row.Message = err.Error()
		a.logger.WarnContext(ctx, "sport sync failed", "sport", task.sport, "kind", task.kind, "error", err)
		return row
	}

	row.Status = event.SyncStatusSuccess
	row.Count = res.Count
	row.Mock = res.Mock
	row.Sources = res.SourcesUsed
	return row
}

func normalizeSyncWorkerCount(value, taskCount int) int {
	if value <= 0 {
		value = defaultSyncWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	if value < 1 {
		value = 1
	}
	return value
}
